package remote

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Jabsama/VOLTAGEGPU-CLI/internal/logger"
)

// Harness runs the full pipeline for one remote invocation:
// select -> provision -> package -> build environment -> execute ->
// retrieve, with teardown always running afterwards regardless of
// outcome. One invocation owns one pod and one environment; nothing is
// pooled or reused.
type Harness struct {
	fleet   Fleet
	session Session
	log     *slog.Logger
	tracer  trace.Tracer

	provisionTimeout time.Duration
	pollInterval     time.Duration
}

// Option configures a Harness.
type Option func(*Harness)

// WithLogger sets the structured logger.
func WithLogger(log *slog.Logger) Option {
	return func(h *Harness) { h.log = log }
}

// WithProvisionTimeout bounds how long to wait for pod readiness.
func WithProvisionTimeout(d time.Duration) Option {
	return func(h *Harness) { h.provisionTimeout = d }
}

// WithPollInterval sets the readiness check interval.
func WithPollInterval(d time.Duration) Option {
	return func(h *Harness) { h.pollInterval = d }
}

// NewHarness creates a harness over the given fleet and session.
func NewHarness(fleet Fleet, session Session, opts ...Option) *Harness {
	h := &Harness{
		fleet:            fleet,
		session:          session,
		log:              slog.Default(),
		tracer:           otel.Tracer("voltagegpu-cli/remote"),
		provisionTimeout: 300 * time.Second,
		pollInterval:     3 * time.Second,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run executes the task remotely and returns its decoded result. On
// fatal errors from any stage the error unwinds through teardown before
// reaching the caller; teardown failures are logged, never surfaced.
func (hn *Harness) Run(ctx context.Context, spec RunSpec) (result any, err error) {
	if spec.Task.Name == "" || spec.Task.Source == "" {
		return nil, fmt.Errorf("a task with name and source is required")
	}

	ctx = logger.WithRunID(ctx, uuid.NewString()[:8])
	log := logger.FromContext(ctx, hn.log)

	ctx, runSpan := hn.tracer.Start(ctx, "remote.run", trace.WithAttributes(
		attribute.String("machine.spec", spec.Machine),
		attribute.String("task.name", spec.Task.Name),
	))
	defer func() {
		if err != nil {
			runSpan.RecordError(err)
			runSpan.SetStatus(codes.Error, err.Error())
		}
		runSpan.End()
	}()

	td := newTeardown(log)
	defer td.run(ctx)

	// Stage 1: match the machine spec against the listing.
	var resource Resource
	if serr := hn.stage(ctx, "select_machine", func(ctx context.Context) error {
		resources, lerr := hn.fleet.List(ctx)
		if lerr != nil {
			return fmt.Errorf("listing machines: %w", lerr)
		}
		var serr error
		resource, serr = SelectResource(resources, spec.Machine)
		return serr
	}); serr != nil {
		return nil, serr
	}
	log.Info("machine selected", "machine", resource.Name, "machine_id", resource.ID)

	// Stage 2: rent the pod and wait for readiness. The release guard
	// is registered as soon as a handle exists so a pod that never
	// became ready is still returned.
	podName := fmt.Sprintf("remote-%s-%d", spec.Task.Name, time.Now().Unix())
	var handle *Handle
	perr := hn.stage(ctx, "provision", func(ctx context.Context) error {
		prov := &Provisioner{
			fleet:    hn.fleet,
			timeout:  hn.provisionTimeout,
			interval: hn.pollInterval,
			log:      log,
		}
		var stageErr error
		handle, stageErr = prov.Provision(ctx, resource, podName, spec.TemplateID)
		return stageErr
	})
	if handle != nil && !spec.KeepPod {
		h := handle
		td.add("release pod", func(ctx context.Context) error {
			if rerr := hn.fleet.Release(ctx, h); rerr != nil {
				return rerr
			}
			if h.State() == StateReady {
				return h.transition(StateReleased)
			}
			return nil
		})
	}
	if perr != nil {
		return nil, perr
	}

	// Stage 3: synthesize the self-contained runner script locally.
	var localScript string
	if serr := hn.stage(ctx, "package", func(context.Context) error {
		script, berr := buildScript(spec.Task, spec.Args, spec.Kwargs)
		if berr != nil {
			return berr
		}
		localScript, berr = writeScript(script)
		return berr
	}); serr != nil {
		return nil, serr
	}
	td.add("remove local script", func(context.Context) error {
		return os.Remove(localScript)
	})

	// Stage 4: isolated environment plus requirements.
	builder := &EnvBuilder{session: hn.session, log: log}
	var envPath string
	eerr := hn.stage(ctx, "build_environment", func(ctx context.Context) error {
		var stageErr error
		envPath, stageErr = builder.Build(ctx, handle, spec.Requirements)
		return stageErr
	})
	if envPath != "" {
		td.add("remove remote environment", func(ctx context.Context) error {
			_, rerr := hn.session.Exec(ctx, handle, "rm -rf "+shellQuote(envPath))
			return rerr
		})
	}
	if eerr != nil {
		return nil, eerr
	}

	// Stage 5: upload and run the script.
	exec := &Executor{session: hn.session, log: log}
	var execRes ExecResult
	if serr := hn.stage(ctx, "execute", func(ctx context.Context) error {
		var stageErr error
		execRes, stageErr = exec.Execute(ctx, handle, localScript, envPath)
		return stageErr
	}); serr != nil {
		return nil, serr
	}

	// Stage 6: fetch and classify the outcome.
	retriever := &Retriever{session: hn.session, log: log}
	if serr := hn.stage(ctx, "retrieve", func(ctx context.Context) error {
		var stageErr error
		result, stageErr = retriever.Retrieve(ctx, handle, execRes)
		return stageErr
	}); serr != nil {
		return nil, serr
	}

	log.Info("remote run complete", "task", spec.Task.Name, "pod_id", handle.PodID)
	return result, nil
}

// stage wraps one pipeline stage in a trace span.
func (hn *Harness) stage(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	ctx, span := hn.tracer.Start(ctx, name)
	defer span.End()
	if err := fn(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}
