package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	dbm "github.com/cosmos/cosmos-db"
	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/hydra-chain/hydra/app"
	"github.com/hydra-chain/hydra/app/ante"
)

const (
	envPrefix = "HYDRA"

	flagHome          = "home"
	flagLogLevel      = "log-level"
	flagLogFormat     = "log-format"
	flagDBBackend     = "db-backend"
	flagMetricsPort   = "metrics-port"
	flagOTLPEndpoint  = "otlp-endpoint"
	flagSampleRate    = "trace-sample-rate"
	flagInvariants    = "check-invariants"
	flagAuthority     = "authority"
	flagMaxMemoBytes  = "max-memo-bytes"
	flagMaxMsgsPerTx  = "max-msgs-per-tx"
	flagGenesis       = "genesis"
	flagBlocks        = "blocks"
	flagMaxCommitAge  = "max-commit-age"
	flagOutput        = "output"
	flagOverwrite     = "overwrite"
	flagChainID       = "chain-id"
	flagServe         = "serve"
	flagSeed          = "seed"
	flagNumBlocks     = "num-blocks"
	flagOutDir        = "out-dir"
	flagRandomParams  = "random-params"
	logFormatJSON     = "json"
	logFormatPlain    = "plain"
	configDirName     = "config"
	dataDirName       = "data"
	appConfigFileName = "app.toml"
	genesisFileName   = "genesis.yaml"
	dbName            = "application"
)

// NodeConfig is the node configuration read from <home>/config/app.toml,
// HYDRA_* environment variables and command flags, in increasing priority.
type NodeConfig struct {
	Home            string
	LogLevel        string
	LogFormat       string
	DBBackend       dbm.BackendType
	MetricsPort     int
	OTLPEndpoint    string
	TraceSampleRate float64
	CheckInvariants bool
	Authority       string
	MaxMemoBytes    int
	MaxMsgsPerTx    int
	MaxCommitAge    time.Duration
}

// DefaultNodeConfig returns the configuration used when nothing is set.
func DefaultNodeConfig(home string) NodeConfig {
	return NodeConfig{
		Home:            home,
		LogLevel:        "info",
		LogFormat:       logFormatPlain,
		DBBackend:       dbm.GoLevelDBBackend,
		TraceSampleRate: 1.0,
		CheckInvariants: true,
		MaxMemoBytes:    ante.DefaultMaxMemoBytes,
		MaxMsgsPerTx:    ante.DefaultMaxMsgsPerTx,
		MaxCommitAge:    time.Minute,
	}
}

// ConfigDir returns <home>/config.
func (c NodeConfig) ConfigDir() string { return filepath.Join(c.Home, configDirName) }

// DataDir returns <home>/data.
func (c NodeConfig) DataDir() string { return filepath.Join(c.Home, dataDirName) }

// GenesisFile returns the default genesis location.
func (c NodeConfig) GenesisFile() string { return filepath.Join(c.ConfigDir(), genesisFileName) }

// AppConfigFile returns the location of app.toml.
func (c NodeConfig) AppConfigFile() string { return filepath.Join(c.ConfigDir(), appConfigFileName) }

// Validate checks the configuration values.
func (c NodeConfig) Validate() error {
	switch c.LogFormat {
	case logFormatJSON, logFormatPlain:
	default:
		return fmt.Errorf("invalid log format %q", c.LogFormat)
	}
	if c.MetricsPort < 0 || c.MetricsPort > 65535 {
		return fmt.Errorf("invalid metrics port %d", c.MetricsPort)
	}
	if c.TraceSampleRate < 0 || c.TraceSampleRate > 1 {
		return fmt.Errorf("trace sample rate must be in [0, 1], got %v", c.TraceSampleRate)
	}
	if c.MaxMemoBytes <= 0 || c.MaxMsgsPerTx <= 0 {
		return errors.New("tx limits must be positive")
	}
	return nil
}

// AppOptions returns the app options selected by the configuration.
func (c NodeConfig) AppOptions() []app.Option {
	opts := []app.Option{
		app.WithInvariantCheck(c.CheckInvariants),
		app.WithTxLimits(c.MaxMemoBytes, c.MaxMsgsPerTx),
	}
	if c.Authority != "" {
		opts = append(opts, app.WithAuthority(c.Authority))
	}
	return opts
}

// newViper returns a viper instance reading HYDRA_* variables, with '-' and
// '.' in keys mapped to '_'.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadNodeConfig reads app.toml under home (when present) into v, binds flags
// and decodes the merged values.
func LoadNodeConfig(v *viper.Viper, flags *pflag.FlagSet) (NodeConfig, error) {
	if err := v.BindPFlags(flags); err != nil {
		return NodeConfig{}, fmt.Errorf("bind flags: %w", err)
	}

	home := cast.ToString(v.Get(flagHome))
	if home == "" {
		home = app.DefaultNodeHome
	}
	cfg := DefaultNodeConfig(home)

	v.SetConfigType("toml")
	v.SetConfigFile(cfg.AppConfigFile())
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return NodeConfig{}, fmt.Errorf("read %s: %w", cfg.AppConfigFile(), err)
		}
	}

	if v.IsSet(flagLogLevel) {
		cfg.LogLevel = cast.ToString(v.Get(flagLogLevel))
	}
	if v.IsSet(flagLogFormat) {
		cfg.LogFormat = cast.ToString(v.Get(flagLogFormat))
	}
	if v.IsSet(flagDBBackend) {
		cfg.DBBackend = dbm.BackendType(cast.ToString(v.Get(flagDBBackend)))
	}
	if v.IsSet(flagMetricsPort) {
		port, err := cast.ToIntE(v.Get(flagMetricsPort))
		if err != nil {
			return NodeConfig{}, fmt.Errorf("%s: %w", flagMetricsPort, err)
		}
		cfg.MetricsPort = port
	}
	if v.IsSet(flagOTLPEndpoint) {
		cfg.OTLPEndpoint = cast.ToString(v.Get(flagOTLPEndpoint))
	}
	if v.IsSet(flagSampleRate) {
		rate, err := cast.ToFloat64E(v.Get(flagSampleRate))
		if err != nil {
			return NodeConfig{}, fmt.Errorf("%s: %w", flagSampleRate, err)
		}
		cfg.TraceSampleRate = rate
	}
	if v.IsSet(flagInvariants) {
		enabled, err := cast.ToBoolE(v.Get(flagInvariants))
		if err != nil {
			return NodeConfig{}, fmt.Errorf("%s: %w", flagInvariants, err)
		}
		cfg.CheckInvariants = enabled
	}
	if v.IsSet(flagAuthority) {
		cfg.Authority = cast.ToString(v.Get(flagAuthority))
	}
	if v.IsSet(flagMaxMemoBytes) {
		cfg.MaxMemoBytes = cast.ToInt(v.Get(flagMaxMemoBytes))
	}
	if v.IsSet(flagMaxMsgsPerTx) {
		cfg.MaxMsgsPerTx = cast.ToInt(v.Get(flagMaxMsgsPerTx))
	}
	if v.IsSet(flagMaxCommitAge) {
		age, err := cast.ToDurationE(v.Get(flagMaxCommitAge))
		if err != nil {
			return NodeConfig{}, fmt.Errorf("%s: %w", flagMaxCommitAge, err)
		}
		cfg.MaxCommitAge = age
	}

	return cfg, cfg.Validate()
}

// WriteDefaultAppConfig writes app.toml with the default values, unless the
// file exists and overwrite is false.
func WriteDefaultAppConfig(cfg NodeConfig, overwrite bool) error {
	if err := os.MkdirAll(cfg.ConfigDir(), 0o755); err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set(flagLogLevel, cfg.LogLevel)
	v.Set(flagLogFormat, cfg.LogFormat)
	v.Set(flagDBBackend, string(cfg.DBBackend))
	v.Set(flagMetricsPort, cfg.MetricsPort)
	v.Set(flagOTLPEndpoint, cfg.OTLPEndpoint)
	v.Set(flagSampleRate, cfg.TraceSampleRate)
	v.Set(flagInvariants, cfg.CheckInvariants)
	v.Set(flagAuthority, cfg.Authority)
	v.Set(flagMaxMemoBytes, cfg.MaxMemoBytes)
	v.Set(flagMaxMsgsPerTx, cfg.MaxMsgsPerTx)
	v.Set(flagMaxCommitAge, cfg.MaxCommitAge.String())

	if overwrite {
		return v.WriteConfigAs(cfg.AppConfigFile())
	}
	return v.SafeWriteConfigAs(cfg.AppConfigFile())
}
