package remote

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
)

// Retriever downloads and classifies the execution outcome.
type Retriever struct {
	session Session
	log     *slog.Logger
}

// Retrieve fetches the artifact and classifies the run. The download is
// attempted even after a non-zero exit: a crash before the artifact is
// written is an expected case, not a harness bug. Classification order:
//
//  1. artifact with success=true: return its result
//  2. artifact with success=false: error from the artifact's own
//     error/traceback fields, even when stderr is also populated
//  3. no artifact or unparsable artifact: error from captured stderr,
//     falling back to stdout, falling back to a generic message
func (r *Retriever) Retrieve(ctx context.Context, h *Handle, execRes ExecResult) (any, error) {
	art := r.downloadArtifact(ctx, h)

	if art != nil {
		if art.Success {
			var result any
			if len(art.Result) > 0 {
				if err := json.Unmarshal(art.Result, &result); err != nil {
					return nil, &RemoteExecutionError{Message: "artifact result is not valid JSON: " + err.Error()}
				}
			}
			return result, nil
		}
		msg := art.Error
		if msg == "" {
			msg = "unknown remote error"
		}
		return nil, &RemoteExecutionError{Message: msg, Traceback: art.Traceback}
	}

	msg := execRes.Stderr
	if msg == "" {
		msg = execRes.Stdout
	}
	if msg == "" {
		msg = "unknown remote error"
	}
	return nil, &RemoteExecutionError{Message: msg}
}

// downloadArtifact copies the artifact to a local temp file, parses it
// and removes the local copy. Any failure yields nil: the caller falls
// back to the captured streams.
func (r *Retriever) downloadArtifact(ctx context.Context, h *Handle) *artifact {
	f, err := os.CreateTemp("", "volt_result_*.json")
	if err != nil {
		r.log.Warn("creating local artifact file failed", "error", err)
		return nil
	}
	path := f.Name()
	f.Close()
	defer os.Remove(path)

	if err := r.session.Download(ctx, h, remoteArtifactPath, path); err != nil {
		r.log.Debug("artifact download failed", "pod_id", h.PodID, "error", err)
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		r.log.Warn("reading local artifact failed", "error", err)
		return nil
	}
	var art artifact
	if err := json.Unmarshal(data, &art); err != nil {
		r.log.Debug("artifact is not valid JSON", "pod_id", h.PodID, "error", err)
		return nil
	}
	return &art
}
