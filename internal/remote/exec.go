package remote

import (
	"context"
	"log/slog"
)

// Executor uploads the packaged script and runs it with the isolated
// environment's interpreter. It reports what happened without judging
// it: exit status and artifact presence are reconciled by the
// retriever, because a non-zero exit with a written artifact is a
// normal task failure, not a harness fault.
type Executor struct {
	session Session
	log     *slog.Logger
}

// Execute runs the local script file on the pod and returns the
// captured streams and exit status. The error is non-nil only for
// transport failures.
func (e *Executor) Execute(ctx context.Context, h *Handle, localScript, envPath string) (ExecResult, error) {
	if err := e.session.Upload(ctx, h, localScript, remoteScriptPath); err != nil {
		return ExecResult{}, err
	}
	e.log.Debug("runner uploaded", "pod_id", h.PodID, "remote_path", remoteScriptPath)

	cmd := shellQuote(envPath+"/bin/python") + " " + remoteScriptPath
	res, err := e.session.Exec(ctx, h, cmd)
	if err != nil {
		return ExecResult{}, err
	}
	e.log.Debug("runner finished", "pod_id", h.PodID, "success", res.Success)
	return res, nil
}
