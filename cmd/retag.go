package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"cantabile/internal/catalog"
	"cantabile/internal/tags"
)

var retagUpdate tags.Update

var retagCmd = &cobra.Command{
	Use:   "retag SONG_ID",
	Short: "Rewrite a song's file tags",
	Long: `Retag writes new tag values into the audio file itself, then refreshes
the catalog record from the rewritten file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		song, err := a.cat.SongByID(args[0])
		if err != nil {
			return err
		}

		u := mergeRetagUpdate(song, retagUpdate, cmd.Flags().Changed)

		if err := tags.Write(song.FilePath, &u); err != nil {
			return err
		}

		// Re-read the file so the catalog reflects what was written.
		fresh, err := tags.NewExtractor(a.log).ParseSong(song.FilePath, song.LibraryID)
		if err != nil {
			return fmt.Errorf("re-reading tags: %w", err)
		}
		if _, err := a.cat.Reconcile(song.LibraryID, []catalog.Song{*fresh}); err != nil {
			return err
		}
		a.covers.Invalidate(song.ID)

		fmt.Println("Tags updated.")
		return nil
	},
}

// mergeRetagUpdate fills fields whose flag was not set from the stored
// record, so retag rewrites only what the user asked for. A flag set to
// an empty value clears that tag.
func mergeRetagUpdate(song catalog.Song, u tags.Update, changed func(name string) bool) tags.Update {
	if !changed("title") {
		u.Title = song.Title
	}
	if !changed("artist") {
		u.Artist = song.Artist
	}
	if !changed("album") {
		u.Album = song.Album
	}
	if !changed("album-artist") {
		u.AlbumArtist = song.AlbumArtist
	}
	if !changed("year") {
		u.Year = song.Year
	}
	return u
}

func init() {
	retagCmd.Flags().StringVar(&retagUpdate.Title, "title", "", "new title")
	retagCmd.Flags().StringVar(&retagUpdate.Artist, "artist", "", "new artist")
	retagCmd.Flags().StringVar(&retagUpdate.Album, "album", "", "new album")
	retagCmd.Flags().StringVar(&retagUpdate.AlbumArtist, "album-artist", "", "new album artist")
	retagCmd.Flags().StringVar(&retagUpdate.Genre, "genre", "", "new genre")
	retagCmd.Flags().IntVar(&retagUpdate.Year, "year", 0, "new year")
	retagCmd.Flags().IntVar(&retagUpdate.TrackNumber, "track", 0, "new track number")
	rootCmd.AddCommand(retagCmd)
}
