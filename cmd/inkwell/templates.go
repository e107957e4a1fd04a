package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var templatesCmd = &cobra.Command{
	Use:   "templates [kind]",
	Short: "List available document kinds and their fields",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		eng := mustEngine(cmd)
		registry := eng.Registry()

		if len(args) == 1 {
			desc, err := registry.Describe(args[0])
			if err != nil {
				fmt.Printf("Error describing template: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("%s - %s\n", desc.Kind, desc.Name)
			fmt.Println(desc.Description)
			fmt.Printf("Required: %s\n", strings.Join(desc.Required, ", "))
			if len(desc.Optional) > 0 {
				fmt.Printf("Optional: %s\n", strings.Join(desc.Optional, ", "))
			}
			return
		}

		fmt.Println("Available document kinds:")
		for _, kind := range registry.Kinds() {
			desc, err := registry.Describe(kind)
			if err != nil {
				continue
			}
			fmt.Printf("- %s: %s (%d required, %d optional)\n",
				desc.Kind, desc.Name, len(desc.Required), len(desc.Optional))
		}
	},
}

func init() {
	rootCmd.AddCommand(templatesCmd)
}
