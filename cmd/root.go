package cmd

import (
	"go/types"

	"github.com/spf13/cobra"
	"github.com/stellar/go-stellar-sdk/support/config"
	"github.com/stellar/go-stellar-sdk/support/log"

	cmdUtils "github.com/duckdrop/spl-airdrop-backend/cmd/utils"
	"github.com/duckdrop/spl-airdrop-backend/internal/monitor"
)

// globalOptions holds the options parsed by the root command and shared with every subcommand.
var globalOptions cmdUtils.GlobalOptionsType

func globalConfigOptions() config.ConfigOptions {
	return config.ConfigOptions{
		{
			Name:           "log-level",
			Usage:          `The log level used in this project. Options: "TRACE", "DEBUG", "INFO", "WARN", "ERROR", "FATAL", or "PANIC".`,
			OptType:        types.String,
			FlagDefault:    "TRACE",
			ConfigKey:      &globalOptions.LogLevel,
			CustomSetValue: cmdUtils.SetConfigOptionLogLevel,
			Required:       true,
		},
		{
			Name:      "sentry-dsn",
			Usage:     "The DSN (client key) of the Sentry project. Only used when the crash tracker type is SENTRY.",
			OptType:   types.String,
			ConfigKey: &globalOptions.SentryDSN,
			Required:  false,
		},
		{
			Name:        "environment",
			Usage:       `The environment where the application is running. Example: "development", "staging", "production".`,
			OptType:     types.String,
			FlagDefault: "development",
			ConfigKey:   &globalOptions.Environment,
			Required:    true,
		},
	}
}

func rootCmd() *cobra.Command {
	configOpts := globalConfigOptions()

	cmd := &cobra.Command{
		Use:     "spl-airdrop",
		Short:   "SPL token airdrop",
		Long:    "The SPL token airdrop server pays a fixed amount of an SPL token, once, to every Solana wallet that claims it.",
		Version: globalOptions.Version,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configOpts.Require()
			if err := configOpts.SetValues(); err != nil {
				log.Fatalf("Error setting values of config options: %s", err.Error())
			}
			log.Infof("Version: %s, GitCommit: %s", globalOptions.Version, globalOptions.GitCommit)
		},
		Run: func(cmd *cobra.Command, _ []string) {
			if err := cmd.Help(); err != nil {
				log.Fatalf("Error calling help command: %s", err.Error())
			}
		},
	}

	// LoadEnvFile reads it from os.Args before the CLI is built, it's declared here so cobra accepts it.
	cmd.PersistentFlags().String("env-file", "", "Path to a .env file to load. Defaults to the ENV_FILE environment variable, then ./.env")

	if err := configOpts.Init(cmd); err != nil {
		log.Fatalf("Error initializing a config option: %s", err.Error())
	}

	return cmd
}

// SetupCLI builds the root command with its subcommands attached.
func SetupCLI(version, gitCommit string) *cobra.Command {
	globalOptions.Version = version
	globalOptions.GitCommit = gitCommit

	root := rootCmd()
	root.AddCommand((&ServeCommand{}).Command(&ServerService{}, &monitor.MonitorService{}))

	return root
}
