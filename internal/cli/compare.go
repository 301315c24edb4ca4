package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"docwhisperer/internal/model"
)

var compareTemplate string

var compareCmd = &cobra.Command{
	Use:   "compare [path]",
	Short: "Compare provider analyses for an ingested document",
	Long: `Runs the analysis for every configured provider against a document
that was previously ingested and writes a side-by-side Markdown
comparison report.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().StringVarP(&compareTemplate, "template", "t", "", "prompt template (research, educational, business, creative)")
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	template := application.DefaultTemplate
	if compareTemplate != "" {
		var err error
		template, err = model.ParseTemplate(compareTemplate)
		if err != nil {
			return err
		}
	}

	results, reportPath, err := application.Whisper.Compare(cmd.Context(), args[0], template)
	if err != nil {
		return err
	}

	for _, provider := range []model.Provider{model.ProviderAnthropic, model.ProviderOpenAI} {
		analysis, ok := results[provider]
		if !ok {
			continue
		}
		cmd.Printf("=== %s ===\n", strings.ToUpper(provider.String()))
		cmd.Printf("Summary: %s\n", clip(analysis.Summary, 200))
		if len(analysis.KeyConcepts) > 0 {
			cmd.Printf("Key concepts: %s\n", strings.Join(analysis.KeyConcepts, ", "))
		}
		cmd.Println()
	}
	if reportPath != "" {
		cmd.Printf("Comparison saved to %s\n", reportPath)
	}
	return nil
}

func clip(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
