package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/okapen/inkwell/pkg/domain"
	"github.com/okapen/inkwell/pkg/session"
)

var finalizeCmd = &cobra.Command{
	Use:   "finalize",
	Short: "Write the final document and its derived export",
	Long: `Checks that all required fields are filled, writes the final markdown
document, and derives the binary export (HTML by default).`,
	Run: func(cmd *cobra.Command, args []string) {
		eng := mustEngine(cmd)
		ref, _ := cmd.Flags().GetString("session")

		result, err := eng.Finalize(cmd.Context(), ref)
		if err != nil {
			var incomplete *domain.IncompleteError
			var derivation *domain.DerivationError
			switch {
			case errors.As(err, &incomplete):
				fmt.Printf("Session is not ready: missing %s\n", strings.Join(incomplete.Missing, ", "))
			case errors.As(err, &derivation):
				fmt.Printf("Final document written, but export derivation failed: %v\n", derivation.Unwrap())
				fmt.Println("Fix the problem and run finalize again.")
			default:
				fmt.Printf("Error finalizing session: %v\n", err)
			}
			os.Exit(1)
		}

		fmt.Printf("Finalized %s\n", result.SessionID)
		fmt.Printf("Document: %s\n", result.TextLocation)
		fmt.Printf("Export:   %s\n", result.BinaryLocation)
	},
}

func init() {
	rootCmd.AddCommand(finalizeCmd)
	finalizeCmd.Flags().StringP("session", "s", session.Latest, "Session ID to target")
}
