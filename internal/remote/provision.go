package remote

import (
	"context"
	"log/slog"
	"time"
)

// Provisioner allocates a pod and drives the bounded readiness loop.
type Provisioner struct {
	fleet    Fleet
	timeout  time.Duration
	interval time.Duration
	log      *slog.Logger
}

// Provision rents the selected machine and waits for it to become
// ready, checking at a fixed interval up to the timeout. The returned
// handle is non-nil whenever allocation succeeded, even when the error
// is non-nil, so the caller can release partial state.
func (p *Provisioner) Provision(ctx context.Context, resource Resource, name, templateID string) (*Handle, error) {
	h, err := p.fleet.Allocate(ctx, resource.ID, name, templateID)
	if err != nil {
		return nil, &ProvisionError{Err: err}
	}
	p.log.Info("pod allocated", "pod_id", h.PodID, "name", name, "machine", resource.Name)

	deadline := time.Now().Add(p.timeout)
	for {
		if !time.Now().Before(deadline) {
			h.transition(StateFailed)
			return h, &ProvisionTimeoutError{Name: name, Timeout: p.timeout}
		}

		select {
		case <-ctx.Done():
			h.transition(StateFailed)
			return h, &ProvisionError{Err: ctx.Err()}
		case <-time.After(p.interval):
		}

		ready, host, port, user, err := p.fleet.Describe(ctx, h.PodID)
		if err != nil {
			// Transient API errors don't abort the wait; the
			// deadline bounds how long we keep trying.
			p.log.Debug("readiness check failed", "pod_id", h.PodID, "error", err)
			continue
		}
		if ready {
			h.Host = host
			h.Port = port
			h.User = user
			if err := h.transition(StateReady); err != nil {
				return h, &ProvisionError{Err: err}
			}
			p.log.Info("pod ready", "pod_id", h.PodID, "host", host, "port", port)
			return h, nil
		}
	}
}
