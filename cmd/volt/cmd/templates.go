package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Jabsama/VOLTAGEGPU-CLI/internal/ui"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List available pod templates",
	Run: func(cmd *cobra.Command, args []string) {
		c, err := newClient()
		if err != nil {
			cmd.Println(err)
			return
		}

		category, _ := cmd.Flags().GetString("category")
		templates, err := c.ListTemplates(cmd.Context(), category)
		if err != nil {
			cmd.Printf("Failed to list templates: %v\n", err)
			return
		}
		cmd.Print(ui.Templates(templates))
	},
}

var templatesGetCmd = &cobra.Command{
	Use:   "get [template_id]",
	Short: "Show details of a template",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c, err := newClient()
		if err != nil {
			cmd.Println(err)
			return
		}

		tpl, err := c.GetTemplate(cmd.Context(), args[0])
		if err != nil {
			cmd.Printf("Failed to get template: %v\n", err)
			return
		}
		cmd.Printf("ID:       %s\n", tpl.ID)
		cmd.Printf("Name:     %s\n", tpl.Name)
		cmd.Printf("Image:    %s\n", tpl.DockerImage)
		cmd.Printf("GPU:      %s (%d-%d)\n", tpl.GPUType, tpl.MinGPU, tpl.MaxGPU)
		cmd.Printf("Price:    $%.2f/h\n", tpl.HourlyPrice)
		if tpl.Description != "" {
			cmd.Printf("About:    %s\n", tpl.Description)
		}
		if tpl.Default {
			cmd.Println("Default:  yes")
		}
	},
}

func init() {
	templatesCmd.Flags().String("category", "", "filter templates by category")
	templatesCmd.AddCommand(templatesGetCmd)
	rootCmd.AddCommand(templatesCmd)
}
