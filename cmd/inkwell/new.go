package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/okapen/inkwell/pkg/domain"
)

var newCmd = &cobra.Command{
	Use:   "new <kind> <course-code> <title>",
	Short: "Start a new document drafting session",
	Long: `Creates a session for the given template kind and writes the initial
draft with placeholder markers for every unfilled field.`,
	Args: cobra.MinimumNArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		eng := mustEngine(cmd)

		kind := args[0]
		courseCode := args[1]
		title := strings.Join(args[2:], " ")

		result, err := eng.Create(cmd.Context(), kind, domain.Identity{
			CourseCode: courseCode,
			Title:      title,
		})
		if err != nil {
			fmt.Printf("Error creating session: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Created session %s\n", result.SessionID)
		fmt.Printf("Draft: %s\n", result.TextLocation)
		fmt.Printf("Required fields: %s\n", strings.Join(result.Required, ", "))
		if len(result.Optional) > 0 {
			fmt.Printf("Optional fields: %s\n", strings.Join(result.Optional, ", "))
		}
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
}
