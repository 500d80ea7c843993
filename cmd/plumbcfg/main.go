package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/eniac111/plumbcfg/internal/agent"
	"github.com/eniac111/plumbcfg/internal/config"
	"github.com/eniac111/plumbcfg/internal/logging"
)

var (
	configPath    string
	inventoryPath string
	logPath       string
	verbose       bool
)

func main() {
	if err := buildRoot().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildRoot() *cobra.Command {
	root := &cobra.Command{
		Use:   "plumbcfg",
		Short: "Apply a declarative configuration to remote hosts over SSH",
		Long: `plumbcfg reads an ordered list of desired states (files, packages,
services) and an inventory of hosts, connects to each host over SSH and
drives it toward the declared state. Outcomes are reported through the
run log only.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}

	root.Flags().StringVarP(&configPath, "config", "c", "config.yaml", "path to the configuration file")
	root.Flags().StringVarP(&inventoryPath, "inventory", "i", "hosts.yaml", "path to the inventory file")
	root.Flags().StringVar(&logPath, "log", "plumbcfg.log", "path to the run log")
	root.Flags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")
	return root
}

// run is best effort: once the log is open, failures are logged and the
// process still exits zero.
func run() error {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	log, logFile, err := logging.Open(logPath, level)
	if err != nil {
		return err
	}
	defer logFile.Close()

	creds, err := config.LoadCredentials()
	if err != nil {
		log.Error().Err(err).Msg("SSH_USERNAME and SSH_PASSWORD environment variables must be set")
		return nil
	}

	items, err := config.LoadItems(configPath)
	if err != nil {
		log.Error().Err(err).Str("path", configPath).Msg("failed to load configuration")
		return nil
	}

	inv, err := config.LoadInventory(inventoryPath)
	if err != nil {
		log.Error().Err(err).Str("path", inventoryPath).Msg("failed to load inventory")
		return nil
	}

	agent.New(items, creds, log).Run(inv)
	return nil
}
