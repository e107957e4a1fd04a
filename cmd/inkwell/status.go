package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/okapen/inkwell/pkg/session"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show completion progress for a session",
	Run: func(cmd *cobra.Command, args []string) {
		eng := mustEngine(cmd)
		ref, _ := cmd.Flags().GetString("session")

		sess, err := eng.Get(cmd.Context(), ref)
		if err != nil {
			fmt.Printf("Error loading session: %v\n", err)
			os.Exit(1)
		}

		status, err := eng.Status(cmd.Context(), sess.ID)
		if err != nil {
			fmt.Printf("Error computing status: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Session:  %s\n", sess.ID)
		fmt.Printf("Kind:     %s\n", sess.Kind)
		fmt.Printf("Course:   %s - %s\n", sess.Identity.CourseCode, sess.Identity.Title)
		fmt.Printf("Progress: %s\n", status.Progress())
		if status.Complete {
			fmt.Println("Ready to finalize.")
		} else {
			fmt.Printf("Missing:  %s\n", strings.Join(status.Missing, ", "))
		}
		if sess.Finalized {
			fmt.Println("Finalized.")
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().StringP("session", "s", session.Latest, "Session ID to target")
}
