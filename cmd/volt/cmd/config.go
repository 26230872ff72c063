package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// settableKeys are the keys "config set" accepts. Everything else is a
// typo until proven otherwise.
var settableKeys = map[string]bool{
	"api_key":      true,
	"base_url":     true,
	"ssh_key_path": true,
	"ssh_user":     true,
	"template_id":  true,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Run: func(cmd *cobra.Command, args []string) {
		keys := make([]string, 0, len(settableKeys))
		for k := range settableKeys {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			v := viper.GetString(k)
			if k == "api_key" && len(v) > 8 {
				v = v[:4] + "..." + v[len(v)-4:]
			}
			cmd.Printf("%s: %s\n", k, v)
		}
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Persist a configuration value to ~/.volt/config.yaml",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		key, value := args[0], args[1]
		if !settableKeys[key] {
			cmd.Printf("Unknown config key %q\n", key)
			return
		}

		path, err := configFilePath()
		if err != nil {
			cmd.Println(err)
			return
		}

		// Rewrite the file through a scratch viper so flag and env
		// values in the global one do not leak into it.
		v := viper.New()
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		_ = v.ReadInConfig()
		v.Set(key, value)
		if err := v.WriteConfigAs(path); err != nil {
			cmd.Printf("Failed to write config: %v\n", err)
			return
		}
		cmd.Printf("Set %s in %s\n", key, path)
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the path of the config file",
	Run: func(cmd *cobra.Command, args []string) {
		path, err := configFilePath()
		if err != nil {
			cmd.Println(err)
			return
		}
		cmd.Println(path)
	},
}

func configFilePath() (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".volt")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}
