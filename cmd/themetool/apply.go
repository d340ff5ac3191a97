package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitlab.com/tinyland/lab/chat-theme/pkg/storage"
	"gitlab.com/tinyland/lab/chat-theme/pkg/theme"
)

var applyDir string

var applyCmd = &cobra.Command{
	Use:   "apply <theme-file>",
	Short: "Apply a theme to a profile directory and persist it",
	Long: "apply runs the full preview-and-commit flow against a profile " +
		"directory: the theme is loaded, applied and written to disk the way " +
		"a chat client keeps it across restarts. If the directory already " +
		"holds a theme it is restored first, so the command reports what " +
		"actually changes.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := storage.NewStore(applyDir)
		if err != nil {
			return err
		}
		manager, err := theme.NewManager(theme.Options{Storage: store})
		if err != nil {
			return err
		}
		defer manager.Close()

		if rel, abs, content, cache, ok := store.ReadTheme(); ok {
			if err := manager.Load(rel, abs, content, cache); err != nil {
				fmt.Printf("stored theme unusable, starting fresh: %v\n", err)
			}
		}
		manager.Background().Start()
		before := manager.Background().ID()

		if err := manager.ApplyFile(args[0]); err != nil {
			return err
		}
		manager.KeepApplied()

		fmt.Printf("applied %s to %s\n", args[0], applyDir)
		fmt.Printf("background: %v -> %v, tiled=%v\n",
			before, manager.Background().ID(), manager.Background().Tile())
		return nil
	},
}

func init() {
	applyCmd.Flags().StringVarP(&applyDir, "dir", "d", ".chat-theme", "profile directory to persist into")
	rootCmd.AddCommand(applyCmd)
}
