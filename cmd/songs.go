package cmd

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var songsCmd = &cobra.Command{
	Use:   "songs [LIBRARY_ID|all]",
	Short: "List cataloged songs",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		libraryID := "all"
		if len(args) == 1 {
			libraryID = args[0]
		}
		songs := a.cat.SongsByLibrary(libraryID)
		if len(songs) == 0 {
			fmt.Println("No songs found.")
			return nil
		}
		for _, s := range songs {
			dur := time.Duration(s.Duration * float64(time.Second)).Round(time.Second)
			fmt.Printf("%s  %-30.30s %-20.20s %-20.20s %6s  %s\n",
				s.ID, s.Title, s.Artist, s.Album, dur, humanize.Bytes(uint64(s.FileSize)))
		}
		fmt.Printf("%d songs\n", len(songs))
		return nil
	},
}

var songCmd = &cobra.Command{
	Use:   "song ID",
	Short: "Show one song's full record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := a.cat.SongByID(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Title:        %s\n", s.Title)
		fmt.Printf("Artist:       %s\n", s.Artist)
		fmt.Printf("Album:        %s (%s)\n", s.Album, s.AlbumArtist)
		if s.Year > 0 {
			fmt.Printf("Year:         %d\n", s.Year)
		}
		fmt.Printf("Path:         %s\n", s.FilePath)
		fmt.Printf("Format:       %s, %d kbps, %d Hz, %d ch\n", s.Format, s.Bitrate, s.SampleRate, s.Channels)
		fmt.Printf("Duration:     %s\n", time.Duration(s.Duration*float64(time.Second)).Round(time.Second))
		fmt.Printf("Size:         %s\n", humanize.Bytes(uint64(s.FileSize)))
		fmt.Printf("Modified:     %s\n", time.UnixMilli(s.ModifiedAt).Format(time.RFC3339))
		fmt.Printf("Cover:        %v   Lyrics: %v   Plays: %d\n", s.HasCover, s.HasLyrics, s.PlayCount)
		return nil
	},
}

var playedCmd = &cobra.Command{
	Use:   "played ID",
	Short: "Record one playback of a song",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := a.cat.IncrementPlayCount(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s now has %d plays.\n", s.Title, s.PlayCount)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(songsCmd, songCmd, playedCmd)
}
