package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"itd/internal/cli"
	"itd/internal/cli/commands"
	"itd/internal/config"
	"itd/internal/registry"
	_ "itd/internal/samples"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:           "itd",
		Short:         "Test runner with inconclusive test support",
		Long:          `Runs registered test fixtures in parallel. Tests marked inconclusive with a ticket reference report their failures as inconclusive instead of failed.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Create initial config with defaults, replaced once flags are parsed
	cfg := config.New()
	log := cli.NewLogger()

	var flags cli.Flags

	cmds := commands.NewCommands(cfg, registry.Default(), log)
	cmds.Register(rootCmd, &flags, cfg, log)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
