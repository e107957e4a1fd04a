package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List all live sessions",
	Run: func(cmd *cobra.Command, args []string) {
		eng := mustEngine(cmd)

		sessions, err := eng.List(cmd.Context())
		if err != nil {
			fmt.Printf("Error listing sessions: %v\n", err)
			os.Exit(1)
		}

		if len(sessions) == 0 {
			fmt.Println("No live sessions found.")
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SESSION\tKIND\tCOURSE\tFINAL\tUPDATED")
		for _, s := range sessions {
			final := "-"
			if s.Finalized {
				final = "yes"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				s.ID, s.Kind, s.Identity.CourseCode, final,
				s.LastUpdated.Format("2006-01-02 15:04:05"))
		}
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(lsCmd)
}
