package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:   "rm <session-id>...",
	Short: "Remove one or more sessions",
	Long: `Tombstones the given sessions on the event log. With --keep-artifacts
the written documents stay on disk.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		eng := mustEngine(cmd)
		keep, _ := cmd.Flags().GetBool("keep-artifacts")
		hasError := false

		for _, sessionID := range args {
			result, err := eng.Delete(cmd.Context(), sessionID, !keep)
			if err != nil {
				fmt.Printf("Error removing '%s': %v\n", sessionID, err)
				hasError = true
				continue
			}
			fmt.Printf("Removed session '%s'\n", result.SessionID)
			for _, loc := range result.Removed {
				fmt.Printf("  removed artifact %s\n", loc)
			}
			for loc, reason := range result.Failed {
				fmt.Printf("  could not remove artifact %s: %s\n", loc, reason)
			}
		}

		if hasError {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(rmCmd)
	rmCmd.Flags().Bool("keep-artifacts", false, "Keep written documents on disk")
}
