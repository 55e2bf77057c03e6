package cmd

import (
	"go/types"

	"github.com/spf13/cobra"
	"github.com/stellar/go-stellar-sdk/support/config"
	"github.com/stellar/go-stellar-sdk/support/log"

	cmdUtils "github.com/duckdrop/spl-airdrop-backend/cmd/utils"
	"github.com/duckdrop/spl-airdrop-backend/internal/crashtracker"
	"github.com/duckdrop/spl-airdrop-backend/internal/monitor"
	"github.com/duckdrop/spl-airdrop-backend/internal/serve"
)

type ServeCommand struct{}

type ServerServiceInterface interface {
	StartServe(opts serve.ServeOptions, httpServer serve.HTTPServerInterface)
	StartMetricsServe(opts serve.MetricsServeOptions, httpServer serve.HTTPServerInterface)
}

type ServerService struct{}

var _ ServerServiceInterface = (*ServerService)(nil)

func (s *ServerService) StartServe(opts serve.ServeOptions, httpServer serve.HTTPServerInterface) {
	if err := serve.Serve(opts, httpServer); err != nil {
		log.Fatalf("Error starting airdrop server: %s", err.Error())
	}
}

func (s *ServerService) StartMetricsServe(opts serve.MetricsServeOptions, httpServer serve.HTTPServerInterface) {
	if err := serve.MetricsServe(opts, httpServer); err != nil {
		log.Fatalf("Error starting metrics server: %s", err.Error())
	}
}

// Command builds the `serve` command, which runs the airdrop API and, in the background, the metrics server.
func (c *ServeCommand) Command(serverService ServerServiceInterface, monitorService monitor.MonitorServiceInterface) *cobra.Command {
	var (
		serveOpts        serve.ServeOptions
		metricsServeOpts serve.MetricsServeOptions
		crashTrackerType crashtracker.CrashTrackerType
	)

	configOpts := config.ConfigOptions{
		{
			Name:        "port",
			Usage:       "Port where the airdrop server will be listening on",
			OptType:     types.Int,
			ConfigKey:   &serveOpts.Port,
			FlagDefault: 8000,
			Required:    true,
		},
		cmdUtils.CrashTrackerTypeConfigOption(&crashTrackerType),
	}
	configOpts = append(configOpts, cmdUtils.AirdropConfigOptions(&serveOpts)...)
	configOpts = append(configOpts, cmdUtils.MetricsConfigOptions(&metricsServeOpts)...)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the SPL token airdrop API",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmdUtils.DefaultPersistentPreRun(cmd, args)

			configOpts.Require()
			if err := configOpts.SetValues(); err != nil {
				log.Fatalf("Error setting values of config options: %s", err.Error())
			}

			err := monitorService.Start(monitor.MetricOptions{
				MetricType:  metricsServeOpts.MetricType,
				Environment: globalOptions.Environment,
			})
			if err != nil {
				log.Fatalf("Error creating monitor service: %s", err.Error())
			}

			serveOpts.Environment = globalOptions.Environment
			serveOpts.GitCommit = globalOptions.GitCommit
			serveOpts.Version = globalOptions.Version
			serveOpts.MonitorService = monitorService

			metricsServeOpts.Environment = globalOptions.Environment
			metricsServeOpts.MonitorService = monitorService
		},
		Run: func(cmd *cobra.Command, _ []string) {
			ctx := cmd.Context()

			crashTrackerClient, err := crashtracker.GetClient(ctx, globalOptions.CrashTrackerOptions(crashTrackerType))
			if err != nil {
				log.Ctx(ctx).Fatalf("Error creating crash tracker client: %s", err.Error())
			}
			serveOpts.CrashTrackerClient = crashTrackerClient

			log.Ctx(ctx).Infof("Starting metrics server on port %d...", metricsServeOpts.Port)
			go serverService.StartMetricsServe(metricsServeOpts, &serve.HTTPServer{})

			log.Ctx(ctx).Infof("Starting airdrop server for mint %s on port %d...", serveOpts.TokenMint, serveOpts.Port)
			serverService.StartServe(serveOpts, &serve.HTTPServer{})
		},
	}

	if err := configOpts.Init(cmd); err != nil {
		log.Fatalf("Error initializing a config option: %s", err.Error())
	}

	return cmd
}
