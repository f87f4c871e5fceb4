package main

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	gnarkkzg "github.com/consensys/gnark-crypto/ecc/bls12-381/kzg"
	"github.com/vocdoni/davinci-poly/api"
	"github.com/vocdoni/davinci-poly/config"
	"github.com/vocdoni/davinci-poly/crypto/kzg"
	"github.com/vocdoni/davinci-poly/db/metadb"
	"github.com/vocdoni/davinci-poly/log"
	"github.com/vocdoni/davinci-poly/storage"
)

// Services holds all the running services
type Services struct {
	Storage *storage.Storage
	API     *api.API
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	if err := validateConfig(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log.Init(cfg.Log.Level, cfg.Log.Output, nil)
	log.Infow("starting davinci-poly", "version", Version)

	services, err := setupServices(cfg)
	if err != nil {
		log.Fatalf("Failed to setup services: %v", err)
	}
	defer shutdownServices(services)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	sig := <-sigCh
	log.Infow("received signal, shutting down", "signal", sig.String())
}

// setupServices opens the storage, loads the KZG prover and starts the API
func setupServices(cfg *Config) (*Services, error) {
	services := &Services{}

	encoding, err := storage.ParseArtifactEncoding(cfg.DB.Encoding)
	if err != nil {
		return nil, err
	}
	dbPath := filepath.Join(cfg.Datadir, cfg.DB.Type)
	log.Infow("initializing storage", "datadir", dbPath, "type", cfg.DB.Type, "encoding", encoding.String())
	database, err := metadb.New(cfg.DB.Type, dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	services.Storage, err = storage.New(database,
		storage.WithEncoding(encoding),
		storage.WithCacheSize(cfg.DB.CacheSize))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	prover, err := loadProver(cfg.KZG)
	if err != nil {
		shutdownServices(services)
		return nil, err
	}

	log.Infow("starting API service", "host", cfg.API.Host, "port", cfg.API.Port)
	services.API, err = api.New(&api.APIConfig{
		Host:      cfg.API.Host,
		Port:      cfg.API.Port,
		Storage:   services.Storage,
		Prover:    prover,
		MaxPoints: cfg.API.MaxPoints,
	})
	if err != nil {
		shutdownServices(services)
		return nil, fmt.Errorf("failed to start API service: %w", err)
	}
	services.API.Start()

	log.Info("davinci-poly is running")
	return services, nil
}

// loadProver returns the KZG prover for the configured SRS, or nil when
// openings are disabled.
func loadProver(cfg KZGConfig) (*kzg.Prover, error) {
	var (
		srs *gnarkkzg.SRS
		err error
	)
	start := time.Now()
	switch {
	case cfg.SRS != "":
		srs, err = kzg.ReadSRS(cfg.SRS)
		if err != nil {
			return nil, fmt.Errorf("failed to load SRS: %w", err)
		}
	case cfg.Size > 0:
		alpha, ok := new(big.Int).SetString(cfg.Alpha, 10)
		if !ok {
			return nil, fmt.Errorf("invalid SRS alpha %q", cfg.Alpha)
		}
		log.Warnw("using an insecure development SRS", "size", cfg.Size)
		srs, err = kzg.NewTestSRS(cfg.Size, alpha)
		if err != nil {
			return nil, err
		}
	default:
		log.Warn("no SRS configured, KZG openings are disabled")
		return nil, nil
	}
	prover, err := kzg.NewProver(srs)
	if err != nil {
		return nil, err
	}
	log.Timed("kzg prover ready", start, "maxLength", prover.MaxLength())
	return prover, nil
}

// shutdownServices gracefully shuts down all services
func shutdownServices(services *Services) {
	if services == nil {
		return
	}
	if services.API != nil {
		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultShutdownTimeout)
		defer cancel()
		if err := services.API.Stop(ctx); err != nil {
			log.Warnw("failed to stop API server", "error", err)
		}
	}
	if services.Storage != nil {
		if err := services.Storage.Close(); err != nil {
			log.Warnw("failed to close storage", "error", err)
		}
	}
}
