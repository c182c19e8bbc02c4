package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type (
	Config struct {
		Hosting    HostingConfig    `toml:"hosting"`
		AI         AIConfig         `toml:"ai"`
		Deployment DeploymentConfig `toml:"deployment"`

		// PathFile is where this config was loaded from; not serialized.
		PathFile string `toml:"-"`

		// Credentials are injected from the process environment at load
		// time so components never reach for env vars themselves.
		Credentials Credentials `toml:"-"`
	}

	HostingConfig struct {
		Owner      string `toml:"owner"`
		Repo       string `toml:"repo"`
		BaseBranch string `toml:"base_branch"`
		TokenEnv   string `toml:"token_env"`

		// BranchTokens maps a branch name to the env var holding the
		// credential to use for it, overriding TokenEnv.
		BranchTokens map[string]string `toml:"branch_tokens"`
	}

	AIConfig struct {
		Model           string `toml:"model"`
		MaxOutputTokens int    `toml:"max_output_tokens"`
		APIKeyEnv       string `toml:"api_key_env"`
	}

	DeploymentConfig struct {
		MarkerEnv string `toml:"marker_env"`
		BranchEnv string `toml:"branch_env"`
	}

	// Credentials holds resolved secret values, never the env var names.
	Credentials struct {
		APIKey       string
		DefaultToken string
		BranchTokens map[string]string
	}
)

const (
	defaultBaseBranch      = "main"
	defaultTokenEnv        = "GITHUB_TOKEN"
	defaultAPIKeyEnv       = "GEMINI_API_KEY"
	defaultModel           = "gemini-2.5-flash"
	defaultMaxOutputTokens = 1024
	defaultMarkerEnv       = "DEPLOY_ENV"
	defaultBranchEnv       = "DEPLOY_BRANCH"
)

// LoadConfig reads the TOML config below path (a home directory) or, when
// path ends in .toml, from that file directly. A default config file is
// created on first run.
func LoadConfig(path string) (*Config, error) {
	var configPath string

	if filepath.Ext(path) == ".toml" {
		configPath = path
	} else {
		configDir := filepath.Join(path, ".shipmate")
		configPath = filepath.Join(configDir, "config.toml")

		if _, err := os.Stat(configDir); os.IsNotExist(err) {
			if err := os.MkdirAll(configDir, 0755); err != nil {
				return nil, fmt.Errorf("error creating config directory: %w", err)
			}
		}
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig(configPath)
	}

	var config Config
	if _, err := toml.DecodeFile(configPath, &config); err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}
	config.PathFile = configPath
	applyDefaults(&config)

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("loaded configuration is not valid: %w", err)
	}

	config.Credentials = resolveCredentials(&config, os.Getenv)
	return &config, nil
}

func createDefaultConfig(path string) (*Config, error) {
	config := &Config{PathFile: path}
	applyDefaults(config)

	if err := SaveConfig(config); err != nil {
		return nil, err
	}

	config.Credentials = resolveCredentials(config, os.Getenv)
	return config, nil
}

func SaveConfig(config *Config) error {
	if config.PathFile == "" {
		return errors.New("config file path is not set")
	}

	if err := validateConfig(config); err != nil {
		return fmt.Errorf("configuration to save is not valid: %w", err)
	}

	dir := filepath.Dir(config.PathFile)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	f, err := os.OpenFile(config.PathFile, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("error opening config file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	if err := toml.NewEncoder(f).Encode(config); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}
	return nil
}

func applyDefaults(config *Config) {
	if config.Hosting.BaseBranch == "" {
		config.Hosting.BaseBranch = defaultBaseBranch
	}
	if config.Hosting.TokenEnv == "" {
		config.Hosting.TokenEnv = defaultTokenEnv
	}
	if config.Hosting.BranchTokens == nil {
		config.Hosting.BranchTokens = map[string]string{}
	}
	if config.AI.Model == "" {
		config.AI.Model = defaultModel
	}
	if config.AI.MaxOutputTokens <= 0 {
		config.AI.MaxOutputTokens = defaultMaxOutputTokens
	}
	if config.AI.APIKeyEnv == "" {
		config.AI.APIKeyEnv = defaultAPIKeyEnv
	}
	if config.Deployment.MarkerEnv == "" {
		config.Deployment.MarkerEnv = defaultMarkerEnv
	}
	if config.Deployment.BranchEnv == "" {
		config.Deployment.BranchEnv = defaultBranchEnv
	}
}

func validateConfig(config *Config) error {
	if config.Hosting.BaseBranch == "" {
		return errors.New("hosting.base_branch cannot be empty")
	}
	if config.AI.MaxOutputTokens <= 0 {
		return errors.New("ai.max_output_tokens must be greater than 0")
	}
	return nil
}

// resolveCredentials reads every configured env var once, producing an
// explicit credential struct for injection into the clients.
func resolveCredentials(config *Config, getenv func(string) string) Credentials {
	creds := Credentials{
		APIKey:       getenv(config.AI.APIKeyEnv),
		DefaultToken: getenv(config.Hosting.TokenEnv),
		BranchTokens: make(map[string]string, len(config.Hosting.BranchTokens)),
	}
	for branch, envName := range config.Hosting.BranchTokens {
		creds.BranchTokens[branch] = getenv(envName)
	}
	return creds
}

// ResolveCredentialsFrom is the injectable variant used by tests.
func ResolveCredentialsFrom(config *Config, getenv func(string) string) Credentials {
	return resolveCredentials(config, getenv)
}

// TokenForBranch selects the credential for a branch. It is a total
// function: branches with a configured override get that token, every
// other branch gets the default one.
func (c Credentials) TokenForBranch(branch string) string {
	if token, ok := c.BranchTokens[branch]; ok && token != "" {
		return token
	}
	return c.DefaultToken
}
