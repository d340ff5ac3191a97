package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitlab.com/tinyland/lab/chat-theme/pkg/storage"
	"gitlab.com/tinyland/lab/chat-theme/pkg/theme"
)

var checkCmd = &cobra.Command{
	Use:   "check <theme-file>...",
	Short: "Validate theme packages, reporting the first error in each",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := theme.NewManager(theme.Options{Storage: storage.NewMemory()})
		if err != nil {
			return err
		}

		failed := 0
		for _, path := range args {
			if _, err := manager.LoadFromFile(path); err != nil {
				fmt.Printf("%s: %v\n", path, err)
				failed++
				continue
			}
			fmt.Printf("%s: ok\n", path)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d theme(s) failed validation", failed, len(args))
		}
		return nil
	},
}
