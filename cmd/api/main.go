package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"rentalcontracts/cmd/internal/config"
	"rentalcontracts/cmd/internal/domain/sqlite"
	"rentalcontracts/cmd/internal/domain/sqlite/repository"
	"rentalcontracts/cmd/internal/fees"
	"rentalcontracts/cmd/internal/http/handler"
	authmiddleware "rentalcontracts/cmd/internal/http/middleware"
	"rentalcontracts/cmd/internal/infrastructure/aws/storage"
	"rentalcontracts/cmd/internal/infrastructure/aws/websocket"
	"rentalcontracts/cmd/internal/infrastructure/commands"
	"rentalcontracts/cmd/internal/infrastructure/minhareceita"
	"rentalcontracts/cmd/internal/metrics"
	"rentalcontracts/cmd/internal/registration"
	"rentalcontracts/cmd/internal/service"
	"rentalcontracts/cmd/internal/service/jobs"
	"rentalcontracts/cmd/internal/utils"
	"rentalcontracts/cmd/internal/utils/uid"
	"rentalcontracts/cmd/internal/utils/validators"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const registryTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Loads env vars depending on environment
	if err := config.LoadEnv(ctx); err != nil {
		log.Fatalf("failed to load environment: %v", err)
	}

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	validate := validator.New()
	if err = validators.Register(validate); err != nil {
		log.Fatalf("failed to register validators: %v", err)
	}

	if err = uid.Init(cfg.MachineID); err != nil {
		log.Fatalf("failed to init id generator: %v", err)
	}
	verifier := initAuth(cfg)

	// Init SQLite
	db, err := sqlite.Init(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}

	// Remote collaborators
	invoker := commands.NewClient(cfg.CommandsBaseURL, cfg.CommandsTimeout)
	sink := initDocumentSink(ctx, cfg)
	gateway := initGateway(ctx, cfg)

	// Getting repos
	lessorRepo := repository.NewLessorContextRepository(db)
	runRepo := repository.NewRunRepository(db)
	registryRepo := repository.NewRegistryCompanyRepository(db)

	// Getting services
	resolver := registration.NewResolver(invoker)
	lessorService := service.NewLessorService(lessorRepo, invoker, cfg.LessorContextTTL)
	progressService := service.NewProgressService(gateway)
	runMetrics := metrics.New(prometheus.DefaultRegisterer)
	contractService := service.NewContractService(
		registration.NewOrchestrator(invoker),
		lessorService,
		runRepo,
		progressService,
		runMetrics,
		sink,
		validate,
	)
	quoteService := service.NewQuoteService(resolver, rateSource(cfg, invoker))
	registryService := service.NewRegistryService(minhareceita.NewClient(cfg.RegistryBaseURL, registryTimeout).WithRateLimit(cfg.RegistryRatePerMinute), registryRepo)

	// Getting handlers
	contractRoutes := handler.NewContractRoute(contractService)
	lessorRoutes := handler.NewLessorRoute(lessorService)
	quoteRoutes := handler.NewQuoteRoute(quoteService)
	registryRoutes := handler.NewRegistryRoute(registryService)

	// Background jobs
	go jobs.NewCacheCleaner("lessor", lessorRepo, cfg.LessorContextTTL).Start(ctx)
	go jobs.NewCacheCleaner("registry", registryRepo, cfg.RegistryCacheTTL).Start(ctx)
	go jobs.NewRunCleaner(runRepo, cfg.RunRetention).Start(ctx)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit("1M"))

	api := e.Group("/api", authmiddleware.NewAuthMiddleware(verifier))

	// Contracts
	api.POST("/contracts", contractRoutes.RegisterContract)
	api.GET("/contracts/runs/:id", contractRoutes.GetRun)

	// Lessor
	api.GET("/lessor", lessorRoutes.GetLessor)

	// Machines
	api.GET("/machines/:serial/quote", quoteRoutes.GetQuote)

	// Registry prefill
	api.GET("/registry/companies/:cnpj", registryRoutes.GetCompany)

	// Prometheus scrape
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Docker Compose healthcheck
	e.GET("/health", healthCheckRoute)

	go func() {
		if err := e.Start(cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server stopped: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err = e.Shutdown(shutdownCtx); err != nil {
		log.Errorf("failed to shut down cleanly: %v", err)
	}
}

func initAuth(cfg *config.Config) *utils.TokenVerifier {
	if cfg.JWTSecret != "" {
		log.Warn("verifying tokens with JWT_SECRET, do not use this outside local setups")
		return utils.NewSecretVerifier([]byte(cfg.JWTSecret))
	}

	verifier, err := utils.NewJWKSVerifier(cfg.CognitoRegion, cfg.CognitoPoolID)
	if err != nil {
		log.Fatalf("failed to init JWKS: %v", err)
	}
	return verifier
}

func initDocumentSink(ctx context.Context, cfg *config.Config) registration.DocumentSink {
	if cfg.S3Bucket == "" {
		log.Warn("S3_BUCKET_NAME not set, contract documents will not be published")
		return nil
	}

	store, err := storage.NewDocumentStore(ctx, cfg.S3Region, cfg.S3Bucket)
	if err != nil {
		log.Fatalf("failed to init S3 client: %v", err)
	}
	return store
}

func initGateway(ctx context.Context, cfg *config.Config) websocket.GatewayClient {
	if cfg.WSEndpoint == "" {
		log.Warn("WS_GATEWAY_ENDPOINT not set, registration progress will not be pushed")
		return websocket.NopGateway{}
	}

	gateway, err := websocket.NewAWSGatewayClient(ctx, cfg.WSEndpoint, cfg.WSRegion)
	if err != nil {
		log.Fatalf("failed to init websocket gateway: %v", err)
	}
	return gateway
}

func rateSource(cfg *config.Config, invoker commands.Invoker) fees.RateSource {
	if cfg.RateSource == config.RateSourceRemote {
		return fees.NewRemoteSource(invoker)
	}
	return fees.MonthlyBasisSource{}
}

func healthCheckRoute(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}
