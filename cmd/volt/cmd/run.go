package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Jabsama/VOLTAGEGPU-CLI/internal/client"
	"github.com/Jabsama/VOLTAGEGPU-CLI/internal/config"
	"github.com/Jabsama/VOLTAGEGPU-CLI/internal/logger"
	"github.com/Jabsama/VOLTAGEGPU-CLI/internal/observability"
	"github.com/Jabsama/VOLTAGEGPU-CLI/internal/remote"
	"github.com/Jabsama/VOLTAGEGPU-CLI/internal/session"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Rent a GPU pod and run a Python function on it",
	Long: `Run rents a GPU machine matching --machine, uploads the named function
from a local Python file together with its arguments, executes it in a
fresh virtual environment, prints the JSON result, and releases the pod.

The pod exists only for the duration of the run unless --keep is given.

Examples:

  volt run --machine A100 --file train.py --fn train
  volt run --machine 1xH200 --file score.py --fn score \
      --args '[42, "imagenet"]' --kwargs '{"batch_size": 64}' \
      --requirements torch --requirements numpy==1.26.0`,
	Run: func(cmd *cobra.Command, args []string) {
		spec, err := runSpecFromFlags(cmd)
		if err != nil {
			cmd.Println(err)
			return
		}

		cfg, err := config.FromViper(viper.GetViper())
		if err != nil {
			cmd.Println(err)
			return
		}
		if cfg.SSHKeyPath == "" {
			cmd.Println("No SSH private key found. Set ssh_key_path or create ~/.ssh/id_ed25519")
			return
		}

		c := client.New(cfg.BaseURL, cfg.APIKey)
		log := logger.New(viper.GetBool("debug"))

		ctx := cmd.Context()
		if endpoint := viper.GetString("trace_endpoint"); endpoint != "" {
			shutdown, terr := observability.InitTracer(ctx, "volt", endpoint)
			if terr != nil {
				cmd.Printf("Failed to initialize tracing: %v\n", terr)
				return
			}
			defer shutdown(ctx)
		}

		keyIDs, err := ensureSSHKeys(ctx, c, cfg)
		if err != nil {
			cmd.Println(err)
			return
		}

		fleet := client.NewFleet(c, keyIDs)
		harness := remote.NewHarness(fleet, session.NewSSH(cfg.SSHKeyPath),
			remote.WithLogger(log),
			remote.WithProvisionTimeout(cfg.ProvisionTimeout),
			remote.WithPollInterval(cfg.PollInterval),
		)

		result, err := harness.Run(ctx, *spec)
		if err != nil {
			cmd.Printf("Run failed: %v\n", err)
			return
		}

		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			cmd.Printf("Result: %v\n", result)
			return
		}
		cmd.Printf("%s\n", out)
	},
}

// ensureSSHKeys returns the IDs of the account's registered SSH keys.
// When none are registered, the local public key is registered so the
// pod can be reached at all.
func ensureSSHKeys(ctx context.Context, c *client.Client, cfg *config.Config) ([]string, error) {
	keys, err := c.ListSSHKeys(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list SSH keys: %w", err)
	}
	if len(keys) > 0 {
		ids := make([]string, 0, len(keys))
		for _, k := range keys {
			ids = append(ids, k.ID)
		}
		return ids, nil
	}

	pubs, err := cfg.PublicKeys()
	if err != nil {
		return nil, err
	}
	if len(pubs) == 0 {
		return nil, fmt.Errorf("no SSH keys registered and no local public key found. Add one with: volt keys add ~/.ssh/id_ed25519.pub")
	}
	var ids []string
	for _, pub := range pubs {
		key, aerr := c.AddSSHKey(ctx, "volt-cli", pub)
		if aerr != nil {
			return nil, fmt.Errorf("failed to register local SSH key: %w", aerr)
		}
		ids = append(ids, key.ID)
	}
	return ids, nil
}

// runSpecFromFlags validates flags and assembles the run request.
func runSpecFromFlags(cmd *cobra.Command) (*remote.RunSpec, error) {
	machine, _ := cmd.Flags().GetString("machine")
	if machine == "" {
		return nil, fmt.Errorf("--machine is required (e.g. --machine A100)")
	}

	file, _ := cmd.Flags().GetString("file")
	fn, _ := cmd.Flags().GetString("fn")
	if file == "" || fn == "" {
		return nil, fmt.Errorf("--file and --fn are required")
	}
	task, err := remote.TaskFromFile(file, fn)
	if err != nil {
		return nil, err
	}

	var fnArgs []any
	if raw, _ := cmd.Flags().GetString("args"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &fnArgs); err != nil {
			return nil, fmt.Errorf("--args must be a JSON array: %w", err)
		}
	}
	var kwargs map[string]any
	if raw, _ := cmd.Flags().GetString("kwargs"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &kwargs); err != nil {
			return nil, fmt.Errorf("--kwargs must be a JSON object: %w", err)
		}
	}

	template, _ := cmd.Flags().GetString("template")
	if template == "" {
		template = viper.GetString("template_id")
	}
	requirements, _ := cmd.Flags().GetStringArray("requirements")
	keep, _ := cmd.Flags().GetBool("keep")

	return &remote.RunSpec{
		Machine:      machine,
		TemplateID:   template,
		Task:         task,
		Args:         fnArgs,
		Kwargs:       kwargs,
		Requirements: requirements,
		KeepPod:      keep,
	}, nil
}

func init() {
	runCmd.Flags().StringP("machine", "m", "", `machine spec matched against machine names (e.g. "A100")`)
	runCmd.Flags().StringP("file", "f", "", "local Python file containing the function")
	runCmd.Flags().String("fn", "", "name of the function to run")
	runCmd.Flags().String("args", "", "positional arguments as a JSON array")
	runCmd.Flags().String("kwargs", "", "keyword arguments as a JSON object")
	runCmd.Flags().StringArrayP("requirements", "r", nil, "pip package to install (repeatable)")
	runCmd.Flags().String("template", "", "pod template ID (default: platform default)")
	runCmd.Flags().Bool("keep", false, "keep the pod running after the function returns")
	runCmd.Flags().Duration("provision-timeout", 300*time.Second, "how long to wait for the pod to become ready")
	viper.BindPFlag("provision_timeout", runCmd.Flags().Lookup("provision-timeout"))
	viper.SetDefault("poll_interval", 3*time.Second)

	rootCmd.AddCommand(runCmd)
}
