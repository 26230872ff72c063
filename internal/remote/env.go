package remote

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// EnvBuilder creates the per-run virtual environment on the pod and
// installs requested dependencies into it.
type EnvBuilder struct {
	session Session
	log     *slog.Logger
}

// Build creates a freshly named venv so runs never touch the base image
// or each other. The name combines a timestamp and a random component;
// collisions across concurrent runs on one pod are unlikely but not
// impossible.
func (b *EnvBuilder) Build(ctx context.Context, h *Handle, requirements []string) (string, error) {
	envPath := fmt.Sprintf("/tmp/volt_venv_%d_%s", time.Now().Unix(), uuid.NewString()[:8])

	// The path is returned even on failure so the caller can remove
	// whatever was partially created.
	res, err := b.session.Exec(ctx, h, "python3 -m venv "+shellQuote(envPath))
	if err != nil {
		return envPath, fmt.Errorf("creating virtual environment: %w", err)
	}
	if !res.Success {
		return envPath, fmt.Errorf("creating virtual environment:\n%s", res.Stderr)
	}
	b.log.Debug("virtual environment created", "pod_id", h.PodID, "path", envPath)

	reqs := make([]string, 0, len(requirements))
	for _, r := range requirements {
		if r != "" {
			reqs = append(reqs, r)
		}
	}
	if len(reqs) > 0 {
		quoted := make([]string, len(reqs))
		for i, r := range reqs {
			quoted[i] = shellQuote(r)
		}
		cmd := shellQuote(envPath+"/bin/python") + " -m pip install " + strings.Join(quoted, " ")
		res, err := b.session.Exec(ctx, h, cmd)
		if err != nil {
			return envPath, fmt.Errorf("installing requirements: %w", err)
		}
		if !res.Success {
			return envPath, &DependencyInstallError{Requirements: reqs, Output: res.Stderr}
		}
		b.log.Info("requirements installed", "pod_id", h.PodID, "count", len(reqs))
	}

	return envPath, nil
}

// shellQuote single-quotes a string for POSIX shells.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
