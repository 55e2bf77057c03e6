package serve

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/shopspring/decimal"
	supporthttp "github.com/stellar/go-stellar-sdk/support/http"
	"github.com/stellar/go-stellar-sdk/support/log"

	"github.com/duckdrop/spl-airdrop-backend/internal/crashtracker"
	"github.com/duckdrop/spl-airdrop-backend/internal/data"
	"github.com/duckdrop/spl-airdrop-backend/internal/ledger"
	"github.com/duckdrop/spl-airdrop-backend/internal/monitor"
	"github.com/duckdrop/spl-airdrop-backend/internal/serve/httpclient"
	"github.com/duckdrop/spl-airdrop-backend/internal/serve/httperror"
	"github.com/duckdrop/spl-airdrop-backend/internal/serve/httphandler"
	"github.com/duckdrop/spl-airdrop-backend/internal/serve/middleware"
	"github.com/duckdrop/spl-airdrop-backend/internal/services"
)

const ServiceID = "serve"

// maxRequestBodyBytes bounds the airdrop request body, which only carries a wallet address.
const maxRequestBodyBytes = 1 << 16

// claimWriteTimeout outlasts the slowest airdrop claim: four RPC calls that each hit the HTTP client timeout, followed
// by the full confirmation window.
const claimWriteTimeout = 4*httpclient.TimeoutClientInSeconds*time.Second + ledger.DefaultConfirmationTimeout + 10*time.Second

type HTTPServerInterface interface {
	Run(conf supporthttp.Config)
}

type HTTPServer struct{}

func (h *HTTPServer) Run(conf supporthttp.Config) {
	supporthttp.Run(conf)
}

type ServeOptions struct {
	Environment        string
	GitCommit          string
	Port               int
	Version            string
	MonitorService     monitor.MonitorServiceInterface
	CrashTrackerClient crashtracker.CrashTrackerClient

	RPCURL         string
	DistributorKey solana.PrivateKey
	TokenMint      solana.PublicKey
	TokenDecimals  int
	AirdropAmount  decimal.Decimal
	TokenSymbol    string

	// Ledger, Models and AirdropService are built by SetupDependencies when left empty.
	Ledger         ledger.LedgerClient
	Models         *data.Models
	AirdropService services.AirdropServiceInterface
}

// SetupDependencies uses the serve options to setup the dependencies for the server.
func (opts *ServeOptions) SetupDependencies() error {
	// Setup crash tracker:
	// Call crash tracker FlushEvents to flush buffered events before the server terminates
	defer opts.CrashTrackerClient.FlushEvents(2 * time.Second)
	// Call crash tracker Recover for recover from unhandled panics
	defer opts.CrashTrackerClient.Recover()
	// Set crash tracker LogAndReportErrors as DefaultReportErrorFunc
	httperror.SetDefaultReportErrorFunc(opts.CrashTrackerClient.LogAndReportErrors)

	if opts.Ledger == nil {
		ledgerClient, err := ledger.NewRPCLedgerClient(ledger.RPCLedgerClientOptions{RPCURL: opts.RPCURL})
		if err != nil {
			return fmt.Errorf("creating ledger client: %w", err)
		}
		opts.Ledger = ledgerClient
	}

	if opts.Models == nil {
		opts.Models = data.NewModels()
	}

	if opts.AirdropService == nil {
		if opts.TokenDecimals < 0 || opts.TokenDecimals > services.MaxTokenDecimals {
			return fmt.Errorf("token decimals must be between 0 and %d, got %d", services.MaxTokenDecimals, opts.TokenDecimals)
		}
		amount, err := services.NewTokenAmount(opts.AirdropAmount, uint8(opts.TokenDecimals), opts.TokenSymbol)
		if err != nil {
			return fmt.Errorf("creating airdrop amount: %w", err)
		}

		opts.AirdropService, err = services.NewAirdropService(services.AirdropServiceOptions{
			Ledger:         opts.Ledger,
			Models:         opts.Models,
			DistributorKey: opts.DistributorKey,
			TokenMint:      opts.TokenMint,
			Amount:         amount,
			MonitorService: opts.MonitorService,
		})
		if err != nil {
			return fmt.Errorf("creating airdrop service: %w", err)
		}
	}

	return nil
}

func Serve(opts ServeOptions, httpServer HTTPServerInterface) error {
	err := opts.SetupDependencies()
	if err != nil {
		return fmt.Errorf("error starting dependencies: %w", err)
	}

	// Start the server
	listenAddr := fmt.Sprintf(":%d", opts.Port)
	serverConfig := supporthttp.Config{
		ListenAddr:          listenAddr,
		Handler:             handleHTTP(opts),
		TCPKeepAlive:        time.Minute * 3,
		ShutdownGracePeriod: claimWriteTimeout,
		ReadTimeout:         time.Second * 5,
		WriteTimeout:        claimWriteTimeout,
		IdleTimeout:         time.Minute * 2,
		OnStarting: func() {
			log.Info("🦆 Starting SPL Airdrop Server")
			log.Infof("Listening on %s", listenAddr)
			log.Infof("Distributor wallet: %s", opts.DistributorKey.PublicKey())
			log.Infof("Token mint: %s", opts.TokenMint)
		},
		OnStopping: func() {
			log.Info("Stopping SPL Airdrop Server")
		},
	}
	httpServer.Run(serverConfig)
	return nil
}

func handleHTTP(o ServeOptions) *chi.Mux {
	mux := chi.NewMux()

	// Middleware
	mux.Use(middleware.CORSHeadersMiddleware)
	mux.Use(chimiddleware.RequestID)
	mux.Use(chimiddleware.RealIP)
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.RecoverHandler)
	mux.Use(middleware.MetricsRequestHandler(o.MonitorService))
	mux.Use(chimiddleware.RequestSize(maxRequestBodyBytes))

	mux.Get("/health", httphandler.HealthHandler{
		Version:   o.Version,
		ServiceID: ServiceID,
		ReleaseID: o.GitCommit,
		Ledger:    o.Ledger,
	}.ServeHTTP)
	mux.Options("/health", func(rw http.ResponseWriter, _ *http.Request) {
		rw.WriteHeader(http.StatusOK)
	})

	airdropHandler := httphandler.AirdropHandler{AirdropService: o.AirdropService}
	mux.Handle("/api/airdrop", airdropHandler)
	mux.Handle("/", airdropHandler)

	mux.NotFound(func(rw http.ResponseWriter, req *http.Request) {
		httperror.NewHTTPError(http.StatusNotFound, "Resource not found", nil).Render(rw)
	})

	return mux
}
