// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Command jobxxdemo is a minimal smoke-test harness over the jobxx
// package, demonstrating a handful of end-to-end usage patterns as named
// scenarios run by its "run" cobra subcommand and listed by "list".
package main

import (
	"fmt"
	"os"

	"github.com/seanmiddleditch/jobxx/cmd/jobxxdemo/internal/scenario"
	"github.com/spf13/cobra"
)

func main() {
	if err := buildRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "jobxxdemo",
		Short: "Exercises the jobxx scheduler against a handful of usage scenarios",
	}
	root.AddCommand(buildRunCommand())
	root.AddCommand(buildListCommand())
	return root
}

func buildRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [scenario ...]",
		Short: "Run one or more named scenarios (default: all)",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := args
			if len(names) == 0 {
				names = scenario.Names()
			}
			for _, name := range names {
				s, ok := scenario.Lookup(name)
				if !ok {
					return fmt.Errorf("unknown scenario %q", name)
				}
				fmt.Printf("=== %s: %s ===\n", name, s.Description)
				if err := s.Run(); err != nil {
					return fmt.Errorf("%s: %w", name, err)
				}
				fmt.Printf("--- %s: ok ---\n", name)
			}
			return nil
		},
	}
	return cmd
}

func buildListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range scenario.Names() {
				s, _ := scenario.Lookup(name)
				fmt.Printf("%-16s %s\n", name, s.Description)
			}
			return nil
		},
	}
}
