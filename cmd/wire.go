package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/bnema/halo-bridge/internal/adapters/credentials/jsonfile"
	"github.com/bnema/halo-bridge/internal/adapters/halo"
	"github.com/bnema/halo-bridge/internal/adapters/identity/nextauth"
	promadapter "github.com/bnema/halo-bridge/internal/adapters/metrics/prometheus"
	"github.com/bnema/halo-bridge/internal/adapters/objectstore"
	tomlrepo "github.com/bnema/halo-bridge/internal/adapters/repo/toml"
	"github.com/bnema/halo-bridge/internal/application"
	"github.com/bnema/halo-bridge/internal/config"
	"github.com/bnema/halo-bridge/internal/domain"
	"github.com/bnema/halo-bridge/internal/logging"
	"github.com/bnema/halo-bridge/internal/ports"
	"github.com/bnema/halo-bridge/internal/tools"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type app struct {
	cfg         config.Config
	logger      *zap.Logger
	sessions    *application.SessionService
	classes     *application.ClassService
	submissions *application.SubmissionService
	registry    *tools.Registry
	metrics     *promadapter.Collector
}

func wireApp() (*app, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	cfg, err := config.Load(viper.New(), homeDir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("wire logger: %w", err)
	}

	store, err := jsonfile.NewStore(cfg.CredentialsPath)
	if err != nil {
		return nil, fmt.Errorf("wire credential store: %w", err)
	}

	classRepo, err := tomlrepo.NewRepository(cfg.ClassesPath, ports.SystemClock{})
	if err != nil {
		return nil, fmt.Errorf("wire class directory: %w", err)
	}

	provider := application.NewCredentialProvider(store, domain.CredentialSet{
		Tokens: domain.TokenPair{
			AuthToken:    cfg.Env.AuthToken,
			ContextToken: cfg.Env.ContextToken,
		},
		TransactionID: cfg.Env.TransactionID,
	})

	httpClient := &http.Client{}
	collector := promadapter.NewCollector()

	identity := &nextauth.Client{
		BaseURL:        cfg.IdentityURL,
		HTTPClient:     httpClient,
		RequestTimeout: cfg.HTTPTimeout,
		Logger:         logger.Named("identity"),
	}

	gateway := &halo.Client{
		GraphQLURL:     cfg.GatewayURL,
		RESTBaseURL:    cfg.OrchestrateURL,
		HTTPClient:     httpClient,
		RequestTimeout: cfg.HTTPTimeout,
		Credentials:    provider,
		Metrics:        collector,
		Logger:         logger.Named("gateway"),
	}

	uploader := &objectstore.Uploader{
		HTTPClient: httpClient,
		Timeout:    cfg.UploadTimeout,
		Logger:     logger.Named("upload"),
	}

	sessions := application.NewSessionService(identity, store, provider, gateway, collector, logger.Named("session"))
	gateway.Refresh = func(ctx context.Context) error {
		_, err := sessions.RefreshTokens(ctx)
		return err
	}

	classes := application.NewClassService(gateway, classRepo, logger.Named("classes"))
	submissions := application.NewSubmissionService(gateway, uploader, collector, logger.Named("submission"))

	registry := tools.NewHaloRegistry(tools.Services{
		Sessions:    sessions,
		Classes:     classes,
		Submissions: submissions,
	}, logger.Named("tools"))

	logger.Debug("wired bridge",
		zap.String("credentials", store.Path()),
		zap.String("classes", classRepo.Path()),
		zap.String("gateway", cfg.GatewayURL),
	)

	return &app{
		cfg:         cfg,
		logger:      logger,
		sessions:    sessions,
		classes:     classes,
		submissions: submissions,
		registry:    registry,
		metrics:     collector,
	}, nil
}
