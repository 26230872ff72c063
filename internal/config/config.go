// Package config handles loading of API credentials, endpoints and
// harness tunables from the environment and the ~/.volt config file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultBaseURL is the production VoltageGPU API endpoint.
const DefaultBaseURL = "https://voltagegpu.com/api"

// Config holds all configuration values for the application.
type Config struct {
	// API key used as the Bearer token on every request
	APIKey string

	// Base URL of the VoltageGPU API
	BaseURL string

	// Path to the SSH private key used for pod sessions
	SSHKeyPath string

	// Username for SSH sessions on pods
	SSHUser string

	// How long to wait for a pod to become ready
	ProvisionTimeout time.Duration

	// Interval between readiness checks while provisioning
	PollInterval time.Duration
}

// Load reads configuration from VOLT_* environment variables and, when
// present, from ~/.volt/config.yaml. Environment variables win over the
// file. The API key is the only required value.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("VOLT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".volt"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// A missing config file is fine; a malformed one is not.
		if err := v.ReadInConfig(); err != nil {
			if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	return FromViper(v)
}

// FromViper assembles a Config from an already-populated viper
// instance, for callers that layer flags on top of env and file values.
func FromViper(v *viper.Viper) (*Config, error) {
	v.SetDefault("base_url", DefaultBaseURL)
	v.SetDefault("ssh_user", "root")
	v.SetDefault("provision_timeout", 300*time.Second)
	v.SetDefault("poll_interval", 3*time.Second)

	apiKey := v.GetString("api_key")
	if apiKey == "" {
		return nil, fmt.Errorf("api_key is required (env: VOLT_API_KEY or ~/.volt/config.yaml)")
	}

	sshKeyPath := v.GetString("ssh_key_path")
	if sshKeyPath == "" {
		sshKeyPath = DiscoverSSHKey()
	}

	return &Config{
		APIKey:           apiKey,
		BaseURL:          strings.TrimRight(v.GetString("base_url"), "/"),
		SSHKeyPath:       sshKeyPath,
		SSHUser:          v.GetString("ssh_user"),
		ProvisionTimeout: v.GetDuration("provision_timeout"),
		PollInterval:     v.GetDuration("poll_interval"),
	}, nil
}

// DiscoverSSHKey returns the first private key found under ~/.ssh, or ""
// when none exists.
func DiscoverSSHKey() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	for _, name := range []string{"id_ed25519", "id_rsa", "id_ecdsa"} {
		path := filepath.Join(home, ".ssh", name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// PublicKeys reads the .pub companion of the configured private key and
// returns the key lines it contains.
func (c *Config) PublicKeys() ([]string, error) {
	if c.SSHKeyPath == "" {
		return nil, nil
	}
	data, err := os.ReadFile(c.SSHKeyPath + ".pub")
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading public key: %w", err)
	}
	var keys []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "ssh-") || strings.HasPrefix(line, "ecdsa-") {
			keys = append(keys, line)
		}
	}
	return keys, nil
}
