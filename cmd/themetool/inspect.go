package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"gitlab.com/tinyland/lab/chat-theme/pkg/storage"
	"gitlab.com/tinyland/lab/chat-theme/pkg/theme"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <theme-file>",
	Short: "Load a theme package and print its resolved palette",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := theme.NewManager(theme.Options{Storage: storage.NewMemory()})
		if err != nil {
			return err
		}
		preview, err := manager.LoadFromFile(args[0])
		if err != nil {
			return err
		}

		color := isatty.IsTerminal(os.Stdout.Fd()) &&
			termenv.ColorProfile() != termenv.Ascii

		pal := preview.Instance.Palette
		for _, name := range pal.Names() {
			value, _ := pal.Get(name)
			hex := value.Hex()
			if color {
				swatch := lipgloss.NewStyle().
					Background(lipgloss.Color(hex)).
					Render("      ")
				fmt.Printf("%s %-32s %s\n", swatch, name, hex)
			} else {
				fmt.Printf("%-32s %s\n", name, hex)
			}
		}

		if preview.Instance.Background != nil {
			bounds := preview.Instance.Background.Bounds()
			fmt.Printf("\nbackground: %dx%d, tiled=%v\n",
				bounds.Dx(), bounds.Dy(), preview.Instance.Tiled)
		} else {
			fmt.Println("\nbackground: none (palette-only theme)")
		}
		return nil
	},
}
