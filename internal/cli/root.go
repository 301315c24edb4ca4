package cli

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"docwhisperer/internal/bootstrap"
)

// application is the wired service graph shared by all subcommands,
// built once in the persistent pre-run.
var application *bootstrap.App

var rootCmd = &cobra.Command{
	Use:   "docwhisperer",
	Short: "Digest documents and query them with hosted AI models",
	Long: `Doc-Whisperer ingests text and PDF documents, splits them into
overlapping chunks in a vector store, and answers questions by
retrieving relevant chunks and forwarding them to a hosted model.
It can also compare analyses from two model providers side by side.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := godotenv.Load(); err == nil {
			log.Printf("loaded environment from .env")
		}
		app, err := bootstrap.New(cmd.Context())
		if err != nil {
			return err
		}
		application = app
		return nil
	},
	PersistentPostRun: func(*cobra.Command, []string) {
		if application != nil {
			if err := application.Close(); err != nil {
				log.Printf("close resources failed: %v", err)
			}
		}
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}
