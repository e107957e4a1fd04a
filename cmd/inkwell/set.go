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

var setCmd = &cobra.Command{
	Use:   "set <field> <value>",
	Short: "Set a field on a session and regenerate its draft",
	Long: `Records one field value and rewrites the draft document. Targets the
most recent session unless --session is given.`,
	Args: cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		eng := mustEngine(cmd)

		ref, _ := cmd.Flags().GetString("session")
		field := args[0]
		value := strings.Join(args[1:], " ")

		result, err := eng.SetField(cmd.Context(), ref, field, value)
		if err != nil {
			var unknown *domain.UnknownFieldError
			if errors.As(err, &unknown) {
				fmt.Printf("Unknown field '%s' for this template.\n", unknown.Field)
				fmt.Printf("Valid fields: %s\n", strings.Join(unknown.Valid, ", "))
			} else {
				fmt.Printf("Error setting field: %v\n", err)
			}
			os.Exit(1)
		}

		fmt.Printf("Set %s on %s\n", result.Field, result.SessionID)
		fmt.Printf("Progress: %s\n", result.Status.Progress())
		fmt.Printf("Draft: %s\n", result.TextLocation)
	},
}

func init() {
	rootCmd.AddCommand(setCmd)
	setCmd.Flags().StringP("session", "s", session.Latest, "Session ID to target")
}
