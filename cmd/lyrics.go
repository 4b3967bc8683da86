package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"cantabile/internal/lyrics"
)

var lyricsAt int64

var lyricsCmd = &cobra.Command{
	Use:   "lyrics SONG_ID",
	Short: "Show a song's lyrics",
	Long: `Lyrics prints a song's lyrics, embedded or from a sibling .lrc file.
With --at, the line active at that playback position is marked.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := a.lyrics.Get(args[0])
		if err != nil {
			return err
		}

		active := -1
		if lyricsAt >= 0 && res.Format == lyrics.FormatLRC {
			var offset int64
			if res.Metadata != nil {
				offset = lyrics.Document{Metadata: res.Metadata}.Offset()
			}
			active = lyrics.Locate(res.Lines, lyricsAt, offset)
		}

		fmt.Printf("Lyrics (%s, %s):\n", res.Format, res.Source)
		for i, line := range res.Lines {
			marker := "  "
			if i == active {
				marker = "> "
			}
			if line.Time == lyrics.Untimed {
				fmt.Printf("%s%s\n", marker, line.Text)
			} else {
				fmt.Printf("%s[%s] %s\n", marker, lyrics.FormatTime(line.Time), line.Text)
			}
		}
		return nil
	},
}

func init() {
	lyricsCmd.Flags().Int64Var(&lyricsAt, "at", -1, "playback position in milliseconds")
	rootCmd.AddCommand(lyricsCmd)
}
