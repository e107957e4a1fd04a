package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/okapen/inkwell/pkg/session"
)

var regenCmd = &cobra.Command{
	Use:   "regen",
	Short: "Rewrite the draft from current session state",
	Run: func(cmd *cobra.Command, args []string) {
		eng := mustEngine(cmd)
		ref, _ := cmd.Flags().GetString("session")

		location, err := eng.Regenerate(cmd.Context(), ref)
		if err != nil {
			fmt.Printf("Error regenerating document: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Regenerated: %s\n", location)
	},
}

func init() {
	rootCmd.AddCommand(regenCmd)
	regenCmd.Flags().StringP("session", "s", session.Latest, "Session ID to target")
}
