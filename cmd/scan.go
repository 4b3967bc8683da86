package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"cantabile/internal/scan"
)

var scanClear bool

var scanCmd = &cobra.Command{
	Use:   "scan LIBRARY_ID",
	Short: "Scan a library and merge the results into the catalog",
	Long: `Scan walks the library's directory tree, extracts metadata from every
supported audio file and reconciles the results into the catalog. Press
Ctrl-C to cancel; a canceled scan leaves the catalog as it was.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sigCh)
		go func() {
			<-sigCh
			fmt.Println("\nCanceling...")
			a.coord.Cancel()
		}()

		res, err := a.coord.Start(args[0], scanClear, printProgress)
		if err != nil {
			return err
		}
		if res.Canceled {
			fmt.Println("Scan canceled.")
			return nil
		}
		fmt.Printf("Scan finished: %d files, %d added, %d updated.\n", res.Total, res.Added, res.Updated)
		return nil
	},
}

func printProgress(p scan.Progress) {
	switch p.Phase {
	case scan.PhaseFindingFiles:
		if p.Processed > 0 {
			fmt.Printf("\rFinding files... %d", p.Processed)
		} else {
			fmt.Print("Finding files...")
		}
	case scan.PhaseParsing:
		fmt.Printf("\rParsing metadata... %d/%d (%d%%)", p.Processed, p.Total, p.Percent)
	case scan.PhaseSaving:
		fmt.Print("\nSaving to catalog...")
	case scan.PhaseComplete, scan.PhaseCanceled:
		fmt.Println()
	case scan.PhaseError:
		fmt.Printf("\nScan error: %s\n", p.Message)
	}
}

func init() {
	scanCmd.Flags().BoolVar(&scanClear, "clear", false, "remove the library's existing songs before scanning")
	rootCmd.AddCommand(scanCmd)
}
