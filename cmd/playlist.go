package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var playlistCmd = &cobra.Command{
	Use:   "playlist",
	Short: "Manage playlists",
}

var playlistCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create an empty playlist",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pl, err := a.cat.CreatePlaylist(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Created playlist %q (%s)\n", pl.Name, pl.ID)
		return nil
	},
}

var playlistListCmd = &cobra.Command{
	Use:   "list",
	Short: "List playlists",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pls := a.cat.Playlists()
		if len(pls) == 0 {
			fmt.Println("No playlists.")
			return nil
		}
		for _, pl := range pls {
			fmt.Printf("%s  %-20s %d songs\n", pl.ID, pl.Name, len(pl.SongIDs))
		}
		return nil
	},
}

var playlistShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show a playlist's songs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pl, err := a.cat.PlaylistByID(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s (%d songs)\n", pl.Name, len(pl.SongIDs))
		for _, sid := range pl.SongIDs {
			s, err := a.cat.SongByID(sid)
			if err != nil {
				fmt.Printf("  %s  (missing)\n", sid)
				continue
			}
			fmt.Printf("  %-30.30s %s\n", s.Title, s.Artist)
		}
		return nil
	},
}

var playlistAddCmd = &cobra.Command{
	Use:   "add PLAYLIST_ID SONG_ID",
	Short: "Add a song to a playlist",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return a.cat.AddToPlaylist(args[0], args[1])
	},
}

var playlistRemoveCmd = &cobra.Command{
	Use:   "remove PLAYLIST_ID SONG_ID",
	Short: "Remove a song from a playlist",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return a.cat.RemoveFromPlaylist(args[0], args[1])
	},
}

var playlistDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a playlist",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return a.cat.DeletePlaylist(args[0])
	},
}

func init() {
	playlistCmd.AddCommand(playlistCreateCmd, playlistListCmd, playlistShowCmd,
		playlistAddCmd, playlistRemoveCmd, playlistDeleteCmd)
	rootCmd.AddCommand(playlistCmd)
}
