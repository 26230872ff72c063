package client

import (
	"context"
	"net/http"
	"strings"

	"github.com/Jabsama/VOLTAGEGPU-CLI/internal/remote"
	"github.com/Jabsama/VOLTAGEGPU-CLI/pkg/api"
)

// Fleet adapts the REST client to the harness's fleet interface. One
// Fleet can serve many runs; each run still gets its own pod.
type Fleet struct {
	client *Client

	// SSHKeyIDs are injected into every created pod so the session
	// layer can log in.
	SSHKeyIDs []string
}

// NewFleet creates a fleet manager over the given API client.
func NewFleet(c *Client, sshKeyIDs []string) *Fleet {
	return &Fleet{client: c, SSHKeyIDs: sshKeyIDs}
}

// List returns rentable machines in the provider's ranking order.
func (f *Fleet) List(ctx context.Context) ([]remote.Resource, error) {
	machines, err := f.client.ListMachines(ctx, "")
	if err != nil {
		return nil, err
	}
	resources := make([]remote.Resource, 0, len(machines))
	for _, m := range machines {
		if !m.Available {
			continue
		}
		resources = append(resources, remote.Resource{ID: m.ID, Name: m.Name})
	}
	return resources, nil
}

// Allocate rents a machine. An empty templateID resolves to the
// platform's default template.
func (f *Fleet) Allocate(ctx context.Context, resourceID, name, templateID string) (*remote.Handle, error) {
	if templateID == "" {
		tpl, err := f.client.DefaultTemplate(ctx)
		if err != nil {
			return nil, err
		}
		templateID = tpl.ID
	}

	pod, err := f.client.CreatePod(ctx, api.CreatePodRequest{
		TemplateID: templateID,
		MachineID:  resourceID,
		Name:       name,
		GPUCount:   1,
		SSHKeyIDs:  f.SSHKeyIDs,
	})
	if err != nil {
		return nil, err
	}
	return &remote.Handle{PodID: pod.ID, Name: pod.Name}, nil
}

// Describe reports whether a pod is ready for SSH traffic.
func (f *Fleet) Describe(ctx context.Context, podID string) (bool, string, int, string, error) {
	pod, err := f.client.GetPod(ctx, podID)
	if err != nil {
		return false, "", 0, "", err
	}
	ready := strings.EqualFold(pod.Status, "running") && pod.SSHHost != ""
	if !ready {
		return false, "", 0, "", nil
	}
	port := pod.SSHPort
	if port == 0 {
		port = 22
	}
	user := pod.SSHUser
	if user == "" {
		user = "root"
	}
	return true, pod.SSHHost, port, user, nil
}

// Release deletes the pod. A pod that is already gone counts as
// released, so calling Release twice never fails the harness.
func (f *Fleet) Release(ctx context.Context, h *remote.Handle) error {
	err := f.client.DeletePod(ctx, h.PodID)
	if err != nil {
		if apiErr, ok := err.(*APIError); ok && apiErr.StatusCode == http.StatusNotFound {
			return nil
		}
		return err
	}
	return nil
}
