// Package config holds the per-repository settings stored in
// .gitlet/config.yaml.
//
// Values are read through viper, so each key can also be overridden by an
// environment variable: core.strictShortIds becomes GITLET_CORE_STRICTSHORTIDS.
package config

import (
	"fmt"
	"strconv"

	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/go-version"

	"github.com/utkarsh5026/gitlet/pkg/common/logger"
	"github.com/utkarsh5026/gitlet/pkg/objects"
	"github.com/utkarsh5026/gitlet/pkg/store"
)

// Keys
const (
	KeyFormatVersion    = "core.formatVersion"
	KeyHashAlgorithm    = "core.hashAlgorithm"
	KeyDefaultBranch    = "core.defaultBranch"
	KeyStrictShortIDs   = "core.strictShortIds"
	KeyCompressionLevel = "core.compressionLevel"
	KeyPrefetchWorkers  = "core.prefetchWorkers"
	KeyLogLevel         = "log.level"
	KeyLogFormat        = "log.format"
)

const (
	// FormatVersion is written by this build.
	FormatVersion = "1.0.0"

	// SupportedFormats are the repository format versions this build reads.
	SupportedFormats = ">= 1.0, < 2.0"

	DefaultBranch          = "master"
	DefaultPrefetchWorkers = 4
)

// Keys lists every configuration key in display order.
var Keys = []string{
	KeyFormatVersion,
	KeyHashAlgorithm,
	KeyDefaultBranch,
	KeyStrictShortIDs,
	KeyCompressionLevel,
	KeyPrefetchWorkers,
	KeyLogLevel,
	KeyLogFormat,
}

// Config is the decoded repository configuration.
type Config struct {
	Core CoreConfig `mapstructure:"core" yaml:"core"`
	Log  LogConfig  `mapstructure:"log" yaml:"log"`
}

type CoreConfig struct {
	FormatVersion    string `mapstructure:"formatVersion" yaml:"formatVersion"`
	HashAlgorithm    string `mapstructure:"hashAlgorithm" yaml:"hashAlgorithm"`
	DefaultBranch    string `mapstructure:"defaultBranch" yaml:"defaultBranch"`
	StrictShortIDs   bool   `mapstructure:"strictShortIds" yaml:"strictShortIds"`
	CompressionLevel string `mapstructure:"compressionLevel" yaml:"compressionLevel"`
	PrefetchWorkers  int    `mapstructure:"prefetchWorkers" yaml:"prefetchWorkers"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Default returns the configuration a new repository starts with.
func Default() *Config {
	return &Config{
		Core: CoreConfig{
			FormatVersion:    FormatVersion,
			HashAlgorithm:    string(objects.AlgorithmSHA1),
			DefaultBranch:    DefaultBranch,
			CompressionLevel: string(store.CompressionDefault),
			PrefetchWorkers:  DefaultPrefetchWorkers,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: string(logger.FormatText),
		},
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var result *multierror.Error

	if err := checkFormatVersion(c.Core.FormatVersion); err != nil {
		result = multierror.Append(result, err)
	}
	if _, err := objects.ParseAlgorithm(c.Core.HashAlgorithm); err != nil {
		result = multierror.Append(result, fmt.Errorf("%s: %w", KeyHashAlgorithm, err))
	}
	if c.Core.DefaultBranch == "" {
		result = multierror.Append(result, fmt.Errorf("%s: must not be empty", KeyDefaultBranch))
	}
	if _, err := store.ParseCompressionLevel(c.Core.CompressionLevel); err != nil {
		result = multierror.Append(result, fmt.Errorf("%s: %w", KeyCompressionLevel, err))
	}
	if c.Core.PrefetchWorkers < 1 {
		result = multierror.Append(result, fmt.Errorf("%s: must be at least 1, got %d", KeyPrefetchWorkers, c.Core.PrefetchWorkers))
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		result = multierror.Append(result, fmt.Errorf("%s: %w", KeyLogLevel, err))
	}
	if _, err := logger.ParseFormat(c.Log.Format); err != nil {
		result = multierror.Append(result, fmt.Errorf("%s: %w", KeyLogFormat, err))
	}

	return result.ErrorOrNil()
}

func checkFormatVersion(v string) error {
	parsed, err := version.NewVersion(v)
	if err != nil {
		return fmt.Errorf("%s: %w", KeyFormatVersion, err)
	}
	constraint, err := version.NewConstraint(SupportedFormats)
	if err != nil {
		return err
	}
	if !constraint.Check(parsed) {
		return fmt.Errorf("%s: repository format %s is not supported (want %s)", KeyFormatVersion, v, SupportedFormats)
	}
	return nil
}

// Get returns the value of key as shown by `gitlet config`.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case KeyFormatVersion:
		return c.Core.FormatVersion, nil
	case KeyHashAlgorithm:
		return c.Core.HashAlgorithm, nil
	case KeyDefaultBranch:
		return c.Core.DefaultBranch, nil
	case KeyStrictShortIDs:
		return strconv.FormatBool(c.Core.StrictShortIDs), nil
	case KeyCompressionLevel:
		return c.Core.CompressionLevel, nil
	case KeyPrefetchWorkers:
		return strconv.Itoa(c.Core.PrefetchWorkers), nil
	case KeyLogLevel:
		return c.Log.Level, nil
	case KeyLogFormat:
		return c.Log.Format, nil
	default:
		return "", NewUnknownKeyError(key)
	}
}

// Set parses value into key. The format version and hash algorithm are
// fixed when the repository is created.
func (c *Config) Set(key, value string) error {
	switch key {
	case KeyFormatVersion, KeyHashAlgorithm:
		return NewReadOnlyKeyError(key)
	case KeyDefaultBranch:
		if value == "" {
			return NewInvalidValueError(key, value, nil)
		}
		c.Core.DefaultBranch = value
	case KeyStrictShortIDs:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return NewInvalidValueError(key, value, err)
		}
		c.Core.StrictShortIDs = b
	case KeyCompressionLevel:
		l, err := store.ParseCompressionLevel(value)
		if err != nil {
			return NewInvalidValueError(key, value, err)
		}
		c.Core.CompressionLevel = string(l)
	case KeyPrefetchWorkers:
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return NewInvalidValueError(key, value, err)
		}
		c.Core.PrefetchWorkers = n
	case KeyLogLevel:
		if _, err := logger.ParseLevel(value); err != nil {
			return NewInvalidValueError(key, value, err)
		}
		c.Log.Level = value
	case KeyLogFormat:
		if _, err := logger.ParseFormat(value); err != nil {
			return NewInvalidValueError(key, value, err)
		}
		c.Log.Format = value
	default:
		return NewUnknownKeyError(key)
	}
	return nil
}

// Hasher returns the object id function the repository uses.
func (c *Config) Hasher() (objects.Hasher, error) {
	algo, err := objects.ParseAlgorithm(c.Core.HashAlgorithm)
	if err != nil {
		return objects.Hasher{}, err
	}
	return objects.NewHasher(algo)
}

// Compression returns the configured object compression level.
func (c *Config) Compression() store.CompressionLevel {
	l, err := store.ParseCompressionLevel(c.Core.CompressionLevel)
	if err != nil {
		return store.CompressionDefault
	}
	return l
}

// Logger returns the logger configuration the settings describe. Invalid
// values fall back to the logger's defaults.
func (c *Config) Logger() logger.Config {
	level, err := logger.ParseLevel(c.Log.Level)
	if err != nil {
		level = logger.LevelWarn
	}
	format, _ := logger.ParseFormat(c.Log.Format)
	return logger.Config{Level: level, Format: format}
}
