package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Jabsama/VOLTAGEGPU-CLI/internal/naming"
	"github.com/Jabsama/VOLTAGEGPU-CLI/internal/ui"
)

var machinesCmd = &cobra.Command{
	Use:   "machines",
	Short: "List rentable GPU machines",
	Run: func(cmd *cobra.Command, args []string) {
		c, err := newClient()
		if err != nil {
			cmd.Println(err)
			return
		}

		gpu, _ := cmd.Flags().GetString("gpu")
		machines, err := c.ListMachines(cmd.Context(), naming.ExpandGPUShorthand(gpu))
		if err != nil {
			cmd.Printf("Failed to list machines: %v\n", err)
			return
		}
		cmd.Print(ui.Machines(machines))
	},
}

func init() {
	machinesCmd.Flags().String("gpu", "", `filter by GPU type, shorthand accepted (e.g. "RTX4090")`)
	rootCmd.AddCommand(machinesCmd)
}
