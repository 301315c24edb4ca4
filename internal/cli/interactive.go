package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"docwhisperer/internal/model"
	"docwhisperer/internal/tui"
)

var interactiveProvider string

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Start an interactive Q&A session",
	RunE:  runInteractive,
}

func init() {
	interactiveCmd.Flags().StringVarP(&interactiveProvider, "provider", "p", "", "model provider (anthropic, openai)")
	rootCmd.AddCommand(interactiveCmd)
}

func runInteractive(cmd *cobra.Command, _ []string) error {
	provider := application.DefaultProvider
	if interactiveProvider != "" {
		var err error
		provider, err = model.ParseProvider(interactiveProvider)
		if err != nil {
			return err
		}
	}

	program := tea.NewProgram(tui.New(application.Whisper, provider), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("interactive session failed: %w", err)
	}
	return nil
}
