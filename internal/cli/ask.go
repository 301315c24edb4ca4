package cli

import (
	"github.com/spf13/cobra"

	"docwhisperer/internal/model"
)

var askProvider string

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about your ingested documents",
	Args:  cobra.ExactArgs(1),
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askProvider, "provider", "p", "", "AI provider (anthropic or openai)")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	provider := application.DefaultProvider
	if askProvider != "" {
		var err error
		provider, err = model.ParseProvider(askProvider)
		if err != nil {
			return err
		}
	}

	result, err := application.Whisper.Ask(cmd.Context(), args[0], provider)
	if err != nil {
		return err
	}
	cmd.Println(result.Answer)
	if len(result.Chunks) > 0 {
		cmd.Println()
		cmd.Printf("(grounded on %d retrieved chunks)\n", len(result.Chunks))
	}
	return nil
}
