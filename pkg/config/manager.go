package config

import (
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/utkarsh5026/gitlet/pkg/common/fileops"
	"github.com/utkarsh5026/gitlet/pkg/repository/scpath"
)

// EnvPrefix prefixes environment overrides.
const EnvPrefix = "GITLET"

// Manager loads and saves the configuration of one repository.
type Manager struct {
	path scpath.SourcePath
	v    *viper.Viper
	cfg  *Config
}

// NewManager creates a manager for the config file below sourcePath. Call
// Load before reading values.
func NewManager(sourcePath scpath.SourcePath) *Manager {
	v := viper.New()
	v.SetConfigFile(sourcePath.ConfigPath().String())
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := Default()
	v.SetDefault(KeyFormatVersion, def.Core.FormatVersion)
	v.SetDefault(KeyHashAlgorithm, def.Core.HashAlgorithm)
	v.SetDefault(KeyDefaultBranch, def.Core.DefaultBranch)
	v.SetDefault(KeyStrictShortIDs, def.Core.StrictShortIDs)
	v.SetDefault(KeyCompressionLevel, def.Core.CompressionLevel)
	v.SetDefault(KeyPrefetchWorkers, def.Core.PrefetchWorkers)
	v.SetDefault(KeyLogLevel, def.Log.Level)
	v.SetDefault(KeyLogFormat, def.Log.Format)

	return &Manager{
		path: sourcePath.ConfigPath(),
		v:    v,
		cfg:  def,
	}
}

// Load reads the config file, applies environment overrides and validates
// the result. A missing file yields the defaults.
func (m *Manager) Load() (*Config, error) {
	exists, err := fileops.Exists(m.path.ToAbsolutePath())
	if err != nil {
		return nil, NewLoadError(m.path.String(), err)
	}
	if exists {
		if err := m.v.ReadInConfig(); err != nil {
			return nil, NewLoadError(m.path.String(), err)
		}
	}

	cfg := &Config{}
	if err := m.v.Unmarshal(cfg); err != nil {
		return nil, NewLoadError(m.path.String(), err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, NewValidationError(err)
	}
	m.cfg = cfg
	return cfg, nil
}

// Config returns the last loaded or saved configuration.
func (m *Manager) Config() *Config {
	return m.cfg
}

// Save validates cfg and writes it to the config file.
func (m *Manager) Save(cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return NewValidationError(err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return NewLoadError(m.path.String(), err)
	}
	if err := fileops.WriteConfig(m.path.ToAbsolutePath(), data); err != nil {
		return err
	}
	m.cfg = cfg
	return nil
}

// Set changes one key in the file. Environment overrides are not written back.
func (m *Manager) Set(key, value string) error {
	stored, err := m.readFile()
	if err != nil {
		return err
	}
	if err := stored.Set(key, value); err != nil {
		return err
	}
	return m.Save(stored)
}

// readFile decodes the file alone, without defaults or environment.
func (m *Manager) readFile() (*Config, error) {
	cfg := Default()
	data, err := fileops.ReadBytes(m.path.ToAbsolutePath())
	if err != nil {
		return nil, NewLoadError(m.path.String(), err)
	}
	if data != nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, NewLoadError(m.path.String(), err)
		}
	}
	return cfg, nil
}
