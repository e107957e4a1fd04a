package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/okapen/inkwell"
	redislog "github.com/okapen/inkwell/pkg/adapters/redis"
)

// buildEngine wires an Engine from the persistent flags. The event log
// lives on Redis when --redis (or INKWELL_REDIS_ADDR) is set, otherwise
// in JSONL files under the data directory.
func buildEngine(cmd *cobra.Command) (*inkwell.Engine, error) {
	dataDir, _ := cmd.Flags().GetString("data-dir")
	docsDir, _ := cmd.Flags().GetString("docs-dir")
	templatesDir, _ := cmd.Flags().GetString("templates-dir")
	redisAddr, _ := cmd.Flags().GetString("redis")
	if redisAddr == "" {
		redisAddr = os.Getenv("INKWELL_REDIS_ADDR")
	}

	var opts []inkwell.Option
	if dataDir != "" {
		opts = append(opts, inkwell.WithDataDir(dataDir))
	}
	if docsDir != "" {
		opts = append(opts, inkwell.WithDocsDir(docsDir))
	}
	if templatesDir != "" {
		opts = append(opts, inkwell.WithTemplateDir(templatesDir))
	}
	if redisAddr != "" {
		opts = append(opts, inkwell.WithEventLog(redislog.New(redisAddr, os.Getenv("INKWELL_REDIS_PASSWORD"), 0)))
	}

	return inkwell.New(opts...)
}

// mustEngine builds the engine or exits with an error message.
func mustEngine(cmd *cobra.Command) *inkwell.Engine {
	eng, err := buildEngine(cmd)
	if err != nil {
		fmt.Printf("Error initializing inkwell: %v\n", err)
		os.Exit(1)
	}
	return eng
}
