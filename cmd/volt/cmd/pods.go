package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Jabsama/VOLTAGEGPU-CLI/internal/naming"
	"github.com/Jabsama/VOLTAGEGPU-CLI/internal/ui"
	"github.com/Jabsama/VOLTAGEGPU-CLI/pkg/api"
)

var podsCmd = &cobra.Command{
	Use:   "pods",
	Short: "List and manage your GPU pods",
	Run: func(cmd *cobra.Command, args []string) {
		c, err := newClient()
		if err != nil {
			cmd.Println(err)
			return
		}

		pods, err := c.ListPods(cmd.Context())
		if err != nil {
			cmd.Printf("Failed to list pods: %v\n", err)
			return
		}
		cmd.Print(ui.Pods(pods))
	},
}

var podsGetCmd = &cobra.Command{
	Use:   "get [pod_id]",
	Short: "Show details of a pod",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c, err := newClient()
		if err != nil {
			cmd.Println(err)
			return
		}

		pod, err := c.GetPod(cmd.Context(), args[0])
		if err != nil {
			cmd.Printf("Failed to get pod: %v\n", err)
			return
		}
		cmd.Printf("ID:       %s\n", pod.ID)
		cmd.Printf("HUID:     %s\n", naming.HUID(pod.ID))
		cmd.Printf("Name:     %s\n", pod.Name)
		cmd.Printf("Status:   %s\n", ui.Status(pod.Status))
		cmd.Printf("GPU:      %dx %s\n", pod.GPUCount, pod.GPUType)
		cmd.Printf("Price:    $%.2f/h\n", pod.HourlyPrice)
		if pod.SSHHost != "" {
			cmd.Printf("SSH:      %s@%s:%d\n", pod.SSHUser, pod.SSHHost, pod.SSHPort)
		}
	},
}

var podsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Rent a new pod",
	Run: func(cmd *cobra.Command, args []string) {
		c, err := newClient()
		if err != nil {
			cmd.Println(err)
			return
		}
		ctx := cmd.Context()

		templateID, _ := cmd.Flags().GetString("template")
		if templateID == "" {
			tpl, terr := c.DefaultTemplate(ctx)
			if terr != nil {
				cmd.Printf("Failed to resolve default template: %v\n", terr)
				return
			}
			templateID = tpl.ID
		}

		keys, err := c.ListSSHKeys(ctx)
		if err != nil {
			cmd.Printf("Failed to list SSH keys: %v\n", err)
			return
		}
		keyIDs := make([]string, 0, len(keys))
		for _, k := range keys {
			keyIDs = append(keyIDs, k.ID)
		}

		name, _ := cmd.Flags().GetString("name")
		if name == "" {
			name = fmt.Sprintf("pod-%d", time.Now().Unix())
		}
		machineID, _ := cmd.Flags().GetString("machine")
		gpuCount, _ := cmd.Flags().GetInt("gpu-count")

		pod, err := c.CreatePod(ctx, api.CreatePodRequest{
			TemplateID: templateID,
			MachineID:  machineID,
			Name:       name,
			GPUCount:   gpuCount,
			SSHKeyIDs:  keyIDs,
		})
		if err != nil {
			cmd.Printf("Failed to create pod: %v\n", err)
			return
		}
		cmd.Printf("Pod %s (%s) is %s\n", pod.ID, pod.Name, ui.Status(pod.Status))
	},
}

var podsStartCmd = &cobra.Command{
	Use:   "start [pod_id]",
	Short: "Start a stopped pod",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c, err := newClient()
		if err != nil {
			cmd.Println(err)
			return
		}

		pod, err := c.StartPod(cmd.Context(), args[0])
		if err != nil {
			cmd.Printf("Failed to start pod: %v\n", err)
			return
		}
		cmd.Printf("Pod %s is %s\n", pod.ID, ui.Status(pod.Status))
	},
}

var podsStopCmd = &cobra.Command{
	Use:   "stop [pod_id]",
	Short: "Stop a running pod",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c, err := newClient()
		if err != nil {
			cmd.Println(err)
			return
		}

		pod, err := c.StopPod(cmd.Context(), args[0])
		if err != nil {
			cmd.Printf("Failed to stop pod: %v\n", err)
			return
		}
		cmd.Printf("Pod %s is %s\n", pod.ID, ui.Status(pod.Status))
	},
}

var podsRmCmd = &cobra.Command{
	Use:   "rm [pod_id]",
	Short: "Release a pod and stop billing",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c, err := newClient()
		if err != nil {
			cmd.Println(err)
			return
		}

		if err := c.DeletePod(cmd.Context(), args[0]); err != nil {
			cmd.Printf("Failed to release pod: %v\n", err)
			return
		}
		cmd.Printf("Pod %s released\n", args[0])
	},
}

func init() {
	podsCreateCmd.Flags().String("template", "", "pod template ID (default: platform default)")
	podsCreateCmd.Flags().String("machine", "", "machine ID to rent")
	podsCreateCmd.Flags().String("name", "", "pod name (default: generated)")
	podsCreateCmd.Flags().Int("gpu-count", 1, "number of GPUs")
	podsCmd.AddCommand(podsGetCmd)
	podsCmd.AddCommand(podsCreateCmd)
	podsCmd.AddCommand(podsStartCmd)
	podsCmd.AddCommand(podsStopCmd)
	podsCmd.AddCommand(podsRmCmd)
	rootCmd.AddCommand(podsCmd)
}
