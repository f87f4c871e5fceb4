package main

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/vocdoni/davinci-poly/api"
	"github.com/vocdoni/davinci-poly/config"
	"github.com/vocdoni/davinci-poly/log"
	"github.com/vocdoni/davinci-poly/storage"
)

// Version is the build version, set at build time with -ldflags
var Version = "dev"

// Config holds the application configuration
type Config struct {
	API     APIConfig
	DB      DBConfig
	KZG     KZGConfig
	Log     LogConfig
	Datadir string
}

// APIConfig holds the API-specific configuration
type APIConfig struct {
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	MaxPoints int    `mapstructure:"maxpoints"`
}

// DBConfig holds the storage configuration
type DBConfig struct {
	Type      string `mapstructure:"type"`
	Encoding  string `mapstructure:"encoding"`
	CacheSize int    `mapstructure:"cachesize"`
}

// KZGConfig selects the SRS of the KZG prover. SRS is a file path; when empty
// a development SRS of Size powers is generated from Alpha, and a zero Size
// disables the prover.
type KZGConfig struct {
	SRS   string `mapstructure:"srs"`
	Size  uint64 `mapstructure:"size"`
	Alpha string `mapstructure:"alpha"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Output string `mapstructure:"output"`
}

// loadConfig loads configuration from flags, environment variables, and defaults
func loadConfig() (*Config, error) {
	v := viper.New()

	userHomeDir, err := os.UserHomeDir()
	if err != nil {
		userHomeDir = "."
	}
	defaultDatadirPath := filepath.Join(userHomeDir, config.DefaultDatadir)

	v.SetDefault("api.host", config.DefaultAPIHost)
	v.SetDefault("api.port", config.DefaultAPIPort)
	v.SetDefault("api.maxpoints", api.DefaultMaxPoints)
	v.SetDefault("db.type", config.DefaultDBType)
	v.SetDefault("db.encoding", config.DefaultEncoding)
	v.SetDefault("db.cachesize", config.DefaultCacheSize)
	v.SetDefault("kzg.size", config.DefaultSRSSize)
	v.SetDefault("kzg.alpha", config.DefaultSRSAlpha)
	v.SetDefault("log.level", config.DefaultLogLevel)
	v.SetDefault("log.output", config.DefaultLogOutput)
	v.SetDefault("datadir", defaultDatadirPath)

	flag.StringP("api.host", "a", config.DefaultAPIHost, "API host")
	flag.IntP("api.port", "p", config.DefaultAPIPort, "API port")
	flag.Int("api.maxpoints", api.DefaultMaxPoints, "maximum number of points per evaluate request")
	flag.String("db.type", config.DefaultDBType, fmt.Sprintf("storage backend %v", config.DBTypes))
	flag.String("db.encoding", config.DefaultEncoding, "stored record encoding (cbor or json)")
	flag.Int("db.cachesize", config.DefaultCacheSize, "number of polynomials cached in memory")
	flag.String("kzg.srs", "", "path to a serialized BLS12-381 KZG SRS")
	flag.Uint64("kzg.size", config.DefaultSRSSize, "size of the development SRS used when no SRS file is given (0 disables openings)")
	flag.String("kzg.alpha", config.DefaultSRSAlpha, "toxic waste of the development SRS")
	flag.StringP("log.level", "l", config.DefaultLogLevel, "log level (debug, info, warn, error, fatal)")
	flag.StringP("log.output", "o", config.DefaultLogOutput, "log output (stdout, stderr or filepath)")
	flag.StringP("datadir", "d", defaultDatadirPath, "data directory for database files")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "davinci-poly v%s\n\n", Version)
		fmt.Fprintf(os.Stderr, "Usage: davinci-poly [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment variables are also available with the same name as flags,\n")
		fmt.Fprintf(os.Stderr, "  except for dots (.) which are replaced by underscores (_).\n")
		fmt.Fprintf(os.Stderr, "  For example, DAVINCI_POLY_API_PORT or DAVINCI_POLY_KZG_SRS\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Start with an in-memory database and debug logs\n")
		fmt.Fprintf(os.Stderr, "  davinci-poly --db.type=inmem --log.level=debug\n\n")
		fmt.Fprintf(os.Stderr, "  # Start with a ceremony SRS\n")
		fmt.Fprintf(os.Stderr, "  davinci-poly --kzg.srs=/path/to/srs.bin\n")
	}

	flag.CommandLine.SortFlags = false
	flag.Parse()

	v.SetEnvPrefix("DAVINCI_POLY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(flag.CommandLine); err != nil {
		return nil, fmt.Errorf("error binding flags: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return cfg, nil
}

// validateConfig validates the loaded configuration
func validateConfig(cfg *Config) error {
	if !slices.Contains(config.DBTypes, cfg.DB.Type) {
		return fmt.Errorf("invalid db type %s, available types: %v", cfg.DB.Type, config.DBTypes)
	}
	if _, err := storage.ParseArtifactEncoding(cfg.DB.Encoding); err != nil {
		return err
	}
	if !log.ValidLevel(cfg.Log.Level) {
		return fmt.Errorf("invalid log level %s", cfg.Log.Level)
	}
	if cfg.API.Port <= 0 || cfg.API.Port > 65535 {
		return fmt.Errorf("invalid API port %d", cfg.API.Port)
	}
	if cfg.API.MaxPoints <= 0 {
		return fmt.Errorf("api.maxpoints must be positive")
	}
	return nil
}
