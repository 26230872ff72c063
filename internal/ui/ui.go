// Package ui renders CLI output tables and status text.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Jabsama/VOLTAGEGPU-CLI/internal/naming"
	"github.com/Jabsama/VOLTAGEGPU-CLI/pkg/api"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	statusStyles = map[string]lipgloss.Style{
		"running":  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		"creating": lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		"stopped":  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		"failed":   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
)

// Status renders a pod status with its conventional color.
func Status(status string) string {
	if style, ok := statusStyles[strings.ToLower(status)]; ok {
		return style.Render(status)
	}
	return status
}

// Table renders rows under a styled header, columns padded to fit.
func Table(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	var b strings.Builder
	for i, h := range headers {
		b.WriteString(headerStyle.Render(pad(h, widths[i])))
		if i < len(headers)-1 {
			b.WriteString("  ")
		}
	}
	b.WriteString("\n")
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				b.WriteString(pad(cell, widths[i]))
			}
			if i < len(row)-1 {
				b.WriteString("  ")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// pad right-pads by display width so colored cells line up.
func pad(s string, width int) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}

// Pods renders the pod listing table.
func Pods(pods []api.Pod) string {
	if len(pods) == 0 {
		return dimStyle.Render("No pods.") + "\n"
	}
	rows := make([][]string, 0, len(pods))
	for _, p := range pods {
		rows = append(rows, []string{
			naming.HUID(p.ID), p.ID, p.Name, Status(p.Status), p.GPUType,
			fmt.Sprintf("%d", p.GPUCount),
			fmt.Sprintf("$%.2f/h", p.HourlyPrice),
		})
	}
	return Table([]string{"HUID", "ID", "NAME", "STATUS", "GPU", "COUNT", "PRICE"}, rows)
}

// Templates renders the template listing table.
func Templates(templates []api.Template) string {
	if len(templates) == 0 {
		return dimStyle.Render("No templates.") + "\n"
	}
	rows := make([][]string, 0, len(templates))
	for _, t := range templates {
		name := t.Name
		if t.Default {
			name += " (default)"
		}
		rows = append(rows, []string{t.ID, name, t.DockerImage, t.GPUType})
	}
	return Table([]string{"ID", "NAME", "IMAGE", "GPU"}, rows)
}

// Machines renders the machine listing table in provider order.
func Machines(machines []api.Machine) string {
	if len(machines) == 0 {
		return dimStyle.Render("No machines available.") + "\n"
	}
	rows := make([][]string, 0, len(machines))
	for _, m := range machines {
		avail := "yes"
		if !m.Available {
			avail = dimStyle.Render("no")
		}
		rows = append(rows, []string{
			m.ID, m.Name,
			fmt.Sprintf("%dx %s", m.GPUCount, m.GPUType),
			fmt.Sprintf("%d GB", m.RAMGB),
			fmt.Sprintf("$%.2f/h", m.HourlyPrice),
			avail,
		})
	}
	return Table([]string{"ID", "NAME", "GPU", "RAM", "PRICE", "AVAILABLE"}, rows)
}

// SSHKeys renders the SSH key listing table.
func SSHKeys(keys []api.SSHKey) string {
	if len(keys) == 0 {
		return dimStyle.Render("No SSH keys registered.") + "\n"
	}
	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []string{k.ID, k.Name, k.Fingerprint})
	}
	return Table([]string{"ID", "NAME", "FINGERPRINT"}, rows)
}
