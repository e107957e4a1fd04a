package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "inkwell",
	Short: "Inkwell is an append-only session engine for drafting documents",
	Long: `Inkwell drafts structured educational documents (syllabi, exams,
assignments) field by field, persisting every change as a snapshot on an
append-only event log.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("data-dir", "", "Directory for the event log (default .inkwell/sessions)")
	rootCmd.PersistentFlags().String("docs-dir", "", "Directory where documents are written (default documents)")
	rootCmd.PersistentFlags().String("templates-dir", "", "Directory with additional *.yaml templates")
	rootCmd.PersistentFlags().String("redis", "", "Redis address for the event log (or INKWELL_REDIS_ADDR)")
}
