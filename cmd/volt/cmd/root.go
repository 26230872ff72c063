package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Jabsama/VOLTAGEGPU-CLI/internal/client"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "volt",
	Short: "Volt is a command line tool for running GPU workloads on VoltageGPU",
	Long: `volt is the command-line interface for the VoltageGPU platform.

VoltageGPU rents GPU machines by the hour. volt lets you browse capacity,
manage pods and SSH keys, and run a Python function on a freshly rented
GPU with a single command.

Common workflows:

  List rentable machines:
    volt machines --gpu A100

  Rent a pod and run a function from a local file on it:
    volt run --machine A100 --file train.py --fn train --requirements torch

  List your pods:
    volt pods

  Release a pod:
    volt pods rm <pod-id>

Configuration:
  Set the API key via environment variable, .env file, or a config file:
    VOLT_API_KEY      VoltageGPU API key
    VOLT_BASE_URL     API endpoint (default: https://voltagegpu.com/api)

For more information, visit: https://github.com/Jabsama/VOLTAGEGPU-CLI`,
}

func Execute() error {
	return rootCmd.Execute()
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in ~/.volt/config.yaml
		viper.AddConfigPath(filepath.Join(home, ".volt"))
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// Read environment variables that match "VOLT_VARNAME"
	viper.SetEnvPrefix("VOLT")
	viper.AutomaticEnv()

	_ = viper.ReadInConfig()
}

// newClient builds an API client from the effective configuration. It
// returns an error when no API key is configured.
func newClient() (*client.Client, error) {
	apiKey := viper.GetString("api_key")
	if apiKey == "" {
		return nil, fmt.Errorf("API key not found. Set it using the --api-key flag or the VOLT_API_KEY environment variable")
	}
	return client.New(viper.GetString("base_url"), apiKey), nil
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.volt/config.yaml)")

	rootCmd.PersistentFlags().String("base-url", "https://voltagegpu.com/api", "VoltageGPU API URL")
	viper.BindPFlag("base_url", rootCmd.PersistentFlags().Lookup("base-url"))

	rootCmd.PersistentFlags().StringP("api-key", "k", "", "API key for authentication")
	viper.BindPFlag("api_key", rootCmd.PersistentFlags().Lookup("api-key"))

	rootCmd.PersistentFlags().String("trace-endpoint", "", "OTLP collector address for tracing (e.g. localhost:4317)")
	viper.BindPFlag("trace_endpoint", rootCmd.PersistentFlags().Lookup("trace-endpoint"))

	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
}
