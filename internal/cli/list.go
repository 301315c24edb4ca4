package cli

import (
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List ingested documents",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	docs := application.Whisper.ListDocuments()
	if len(docs) == 0 {
		cmd.Println("No documents ingested yet.")
		return nil
	}
	for _, doc := range docs {
		cmd.Printf("%s  (%d chars, ingested %s)\n", doc.Path, doc.FileSize, doc.IngestedAt.Format("2006-01-02 15:04"))
	}
	stats := application.Whisper.Stats(cmd.Context())
	cmd.Printf("\n%d documents, %d indexed chunks\n", stats.Documents, stats.Chunks)
	return nil
}
