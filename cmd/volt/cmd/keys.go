package cmd

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Jabsama/VOLTAGEGPU-CLI/internal/sshkey"
	"github.com/Jabsama/VOLTAGEGPU-CLI/internal/ui"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List and manage registered SSH keys",
	Run: func(cmd *cobra.Command, args []string) {
		c, err := newClient()
		if err != nil {
			cmd.Println(err)
			return
		}

		keys, err := c.ListSSHKeys(cmd.Context())
		if err != nil {
			cmd.Printf("Failed to list SSH keys: %v\n", err)
			return
		}
		cmd.Print(ui.SSHKeys(keys))
	},
}

var keysAddCmd = &cobra.Command{
	Use:   "add [public_key_path]",
	Short: "Register an SSH public key",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c, err := newClient()
		if err != nil {
			cmd.Println(err)
			return
		}

		publicKey, err := sshkey.ReadPublicKey(args[0])
		if err != nil {
			cmd.Printf("Failed to read public key: %v\n", err)
			return
		}

		name, _ := cmd.Flags().GetString("name")
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(args[0]), ".pub")
		}

		key, err := c.AddSSHKey(cmd.Context(), name, publicKey)
		if err != nil {
			cmd.Printf("Failed to register SSH key: %v\n", err)
			return
		}
		cmd.Printf("Registered SSH key %s (%s)\n", key.ID, key.Name)
	},
}

var keysRmCmd = &cobra.Command{
	Use:   "rm [key_id]",
	Short: "Remove a registered SSH key",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c, err := newClient()
		if err != nil {
			cmd.Println(err)
			return
		}

		if err := c.DeleteSSHKey(cmd.Context(), args[0]); err != nil {
			cmd.Printf("Failed to remove SSH key: %v\n", err)
			return
		}
		cmd.Printf("SSH key %s removed\n", args[0])
	},
}

func init() {
	keysAddCmd.Flags().String("name", "", "name for the key (default: file name)")
	keysCmd.AddCommand(keysAddCmd)
	keysCmd.AddCommand(keysRmCmd)
	rootCmd.AddCommand(keysCmd)
}
