package remote

import (
	"context"
	"log/slog"
)

// teardown is a stack of release guards for resources acquired during
// one run. Guards run in reverse acquisition order; each failure is
// logged and swallowed so teardown can never replace the pipeline's
// pending result or error.
type teardown struct {
	log    *slog.Logger
	guards []guard
}

type guard struct {
	name    string
	release func(ctx context.Context) error
}

func newTeardown(log *slog.Logger) *teardown {
	return &teardown{log: log}
}

// add pushes a release guard. Call it immediately after acquiring the
// resource it covers.
func (t *teardown) add(name string, release func(ctx context.Context) error) {
	t.guards = append(t.guards, guard{name: name, release: release})
}

// run releases everything in reverse acquisition order. It runs on a
// context detached from cancellation so an interrupted pipeline still
// cleans up.
func (t *teardown) run(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)
	for i := len(t.guards) - 1; i >= 0; i-- {
		g := t.guards[i]
		if err := g.release(ctx); err != nil {
			t.log.Warn("teardown step failed", "step", g.name, "error", err)
			continue
		}
		t.log.Debug("teardown step done", "step", g.name)
	}
	t.guards = nil
}
