package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"cantabile/internal/tags"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check cataloged files on disk",
	Long: `Validate checks every cataloged song against the file system. Songs
whose file has disappeared are dropped; files modified since their last
scan are re-read so the catalog reflects their current tags.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		extractor := tags.NewExtractor(a.log)
		res, err := a.cat.Validate(extractor.ParseSong)
		if err != nil {
			return err
		}
		fmt.Printf("Checked %d songs: %d missing (removed), %d updated.\n", res.Checked, res.Missing, res.Updated)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
