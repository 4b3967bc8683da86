package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage library root directories",
}

var libraryAddCmd = &cobra.Command{
	Use:   "add NAME PATH",
	Short: "Register a directory as a scannable library",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := filepath.Abs(args[1])
		if err != nil {
			return err
		}
		lib, err := a.cat.AddLibrary(args[0], path)
		if err != nil {
			return err
		}
		fmt.Printf("Added library %q (%s)\n", lib.Name, lib.ID)
		return nil
	},
}

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered libraries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		libs := a.cat.Libraries()
		if len(libs) == 0 {
			fmt.Println("No libraries registered.")
			return nil
		}
		for _, lib := range libs {
			count := a.cat.LibrarySongCount(lib.ID)
			created := time.UnixMilli(lib.CreatedAt).Format("2006-01-02")
			fmt.Printf("%s  %-20s %5d songs  added %s  %s\n", lib.ID, lib.Name, count, created, lib.Path)
		}
		return nil
	},
}

var libraryRenameCmd = &cobra.Command{
	Use:   "rename ID NAME",
	Short: "Rename a library",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := a.cat.RenameLibrary(args[0], args[1]); err != nil {
			return err
		}
		fmt.Println("Renamed.")
		return nil
	},
}

var libraryRemoveCmd = &cobra.Command{
	Use:   "remove ID",
	Short: "Remove a library and all its songs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if a.coord.Scanning() {
			return fmt.Errorf("cannot remove a library while a scan is running")
		}
		removed, err := a.cat.DeleteLibrary(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Removed library and %d songs.\n", removed)
		return nil
	},
}

func init() {
	libraryCmd.AddCommand(libraryAddCmd, libraryListCmd, libraryRenameCmd, libraryRemoveCmd)
	rootCmd.AddCommand(libraryCmd)
}
