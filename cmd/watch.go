package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"cantabile/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch all libraries and rescan on changes",
	Long: `Watch follows every registered library directory. When files change
and the activity settles, the affected library is rescanned. Runs until
interrupted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		libs := a.cat.Libraries()
		if len(libs) == 0 {
			return fmt.Errorf("no libraries registered")
		}

		w, err := watch.New(a.log, 0)
		if err != nil {
			return err
		}
		defer w.Close()

		for _, lib := range libs {
			if err := w.WatchLibrary(lib); err != nil {
				a.log.Warn().Str("library", lib.ID).Err(err).Msg("cannot watch library")
			}
		}

		w.OnChange = func(libID string) {
			go func() {
				res, err := a.coord.Start(libID, false, nil)
				if err != nil {
					a.log.Warn().Str("library", libID).Err(err).Msg("rescan failed")
					return
				}
				a.log.Info().Str("library", libID).Int("added", res.Added).Int("updated", res.Updated).Msg("rescan finished")
			}()
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			<-sigCh
			cancel()
		}()

		fmt.Printf("Watching %d libraries. Ctrl-C to stop.\n", len(libs))
		w.Run(ctx)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
