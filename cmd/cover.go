package cmd

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cantabile/internal/covers"
)

var (
	coverOut  string
	coverSize uint
)

var coverCmd = &cobra.Command{
	Use:   "cover SONG_ID",
	Short: "Extract a song's cover art",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cover, err := a.covers.Get(args[0])
		if err != nil {
			return err
		}

		data, err := base64.StdEncoding.DecodeString(cover.Data)
		if err != nil {
			return fmt.Errorf("decoding cover: %w", err)
		}

		format := cover.Format
		if coverSize > 0 {
			data, format, err = covers.Thumbnail(data, coverSize)
			if err != nil {
				return err
			}
		}

		if coverOut == "" {
			fmt.Printf("Cover: %s, %d bytes (source: %s)\n", format, len(data), cover.Source)
			return nil
		}
		if err := os.WriteFile(coverOut, data, 0o644); err != nil {
			return err
		}
		fmt.Printf("Wrote %s (%s, source: %s)\n", coverOut, format, cover.Source)
		return nil
	},
}

func init() {
	coverCmd.Flags().StringVarP(&coverOut, "out", "o", "", "write the image to a file")
	coverCmd.Flags().UintVar(&coverSize, "thumbnail", 0, "scale down to at most N pixels on the longest side")
	rootCmd.AddCommand(coverCmd)
}
