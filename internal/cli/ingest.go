package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"docwhisperer/internal/model"
)

var (
	ingestProvider  string
	ingestTemplate  string
	ingestRecursive bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [path]",
	Short: "Ingest a document or directory into the knowledge base",
	Long: `Extracts text from the given file, chunks it into the vector store,
generates a summary/quiz analysis with the selected provider and
template, and persists the result. For a directory, every supported
file (.pdf, .txt, .md, .markdown) is processed; individual failures
are reported and skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestProvider, "provider", "p", "", "AI provider (anthropic or openai)")
	ingestCmd.Flags().StringVarP(&ingestTemplate, "template", "t", "", "prompt template (research, educational, business, creative)")
	ingestCmd.Flags().BoolVarP(&ingestRecursive, "recursive", "r", false, "process directories recursively")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	path := args[0]
	provider, template, err := resolveSelection(ingestProvider, ingestTemplate)
	if err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s failed: %w", path, err)
	}

	ctx := cmd.Context()
	if info.IsDir() {
		result, err := application.Whisper.IngestDir(ctx, path, ingestRecursive, provider, template)
		if err != nil {
			return err
		}
		cmd.Printf("Processed %d/%d files\n", result.Succeeded, result.Total)
		for _, failure := range result.Failures {
			cmd.Printf("  failed: %s\n", failure)
		}
		if result.Succeeded == 0 {
			return fmt.Errorf("no files processed successfully")
		}
		return nil
	}

	result, err := application.Whisper.IngestFile(ctx, path, provider, template)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}
	cmd.Printf("Extracted %d characters\n", result.Chars)
	cmd.Printf("Created %d chunks", result.ChunkCount)
	if !result.Indexed {
		cmd.Printf(" (not indexed, summary-only mode)")
	}
	cmd.Println()
	if result.SummaryPath != "" {
		cmd.Printf("Summary saved to %s\n", result.SummaryPath)
	}
	cmd.Printf("Successfully processed %s\n", path)
	return nil
}

func resolveSelection(providerRaw, templateRaw string) (model.Provider, model.Template, error) {
	provider := application.DefaultProvider
	template := application.DefaultTemplate
	if providerRaw != "" {
		var err error
		provider, err = model.ParseProvider(providerRaw)
		if err != nil {
			return "", "", err
		}
	}
	if templateRaw != "" {
		var err error
		template, err = model.ParseTemplate(templateRaw)
		if err != nil {
			return "", "", err
		}
	}
	return provider, template, nil
}
