package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/okapen/inkwell/internal/presentation/tui"
	"github.com/okapen/inkwell/pkg/session"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Preview the current draft in the terminal",
	Long: `Renders the session's draft document as styled markdown. Use --raw to
print the plain bytes instead.`,
	Run: func(cmd *cobra.Command, args []string) {
		eng := mustEngine(cmd)
		ref, _ := cmd.Flags().GetString("session")
		raw, _ := cmd.Flags().GetBool("raw")

		sess, err := eng.Get(cmd.Context(), ref)
		if err != nil {
			fmt.Printf("Error loading session: %v\n", err)
			os.Exit(1)
		}

		docsDir, _ := cmd.Flags().GetString("docs-dir")
		if docsDir == "" {
			docsDir = "documents"
		}

		content, err := os.ReadFile(filepath.Join(docsDir, sess.Artifacts.Text))
		if err != nil {
			fmt.Printf("Error reading draft '%s': %v\n", sess.Artifacts.Text, err)
			os.Exit(1)
		}

		if raw {
			fmt.Print(string(content))
			return
		}

		render := tui.NewRenderer()
		out, err := render(string(content))
		if err != nil {
			// Fall back to plain output on rendering trouble.
			fmt.Print(string(content))
			return
		}
		fmt.Print(out)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().StringP("session", "s", session.Latest, "Session ID to target")
	showCmd.Flags().Bool("raw", false, "Print plain markdown without styling")
}
