package cmd

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"github.com/Jabsama/VOLTAGEGPU-CLI/pkg/api"
)

func TestPodsCommand_ListsTable(t *testing.T) {
	resetViper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET method, got %s", r.Method)
		}
		if r.URL.Path != "/volt/pods" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("expected Bearer key, got: %s", r.Header.Get("Authorization"))
		}
		json.NewEncoder(w).Encode(api.ListPodsResponse{Pods: []api.Pod{
			{ID: "pod-1", Name: "train", Status: "running", GPUType: "A100", GPUCount: 1, HourlyPrice: 1.2},
		}})
	}))
	defer server.Close()

	viper.Set("base_url", server.URL)
	viper.Set("api_key", "test-key")

	output := execute(t, "pods")
	if !strings.Contains(output, "pod-1") {
		t.Errorf("expected pod ID in output, got: %s", output)
	}
	if !strings.Contains(output, "running") {
		t.Errorf("expected status in output, got: %s", output)
	}
}

func TestPodsCommand_Empty(t *testing.T) {
	resetViper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(api.ListPodsResponse{})
	}))
	defer server.Close()

	viper.Set("base_url", server.URL)
	viper.Set("api_key", "test-key")

	output := execute(t, "pods")
	if !strings.Contains(output, "No pods") {
		t.Errorf("expected empty message, got: %s", output)
	}
}

func TestPodsGetCommand(t *testing.T) {
	resetViper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/volt/pods/pod-1" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(api.Pod{
			ID: "pod-1", Name: "train", Status: "running",
			GPUType: "A100", GPUCount: 2, HourlyPrice: 2.4,
			SSHHost: "203.0.113.7", SSHPort: 2222, SSHUser: "root",
		})
	}))
	defer server.Close()

	viper.Set("base_url", server.URL)
	viper.Set("api_key", "test-key")

	output := execute(t, "pods", "get", "pod-1")
	if !strings.Contains(output, "2x A100") {
		t.Errorf("expected GPU shape, got: %s", output)
	}
	if !strings.Contains(output, "root@203.0.113.7:2222") {
		t.Errorf("expected SSH coordinates, got: %s", output)
	}
}

func TestPodsCreateCommand_ResolvesDefaultTemplateAndKeys(t *testing.T) {
	resetViper()

	var created api.CreatePodRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/volt/templates":
			json.NewEncoder(w).Encode(api.ListTemplatesResponse{Templates: []api.Template{
				{ID: "tpl-torch", Name: "PyTorch", Default: true},
			}})
		case "/volt/ssh-keys":
			json.NewEncoder(w).Encode(api.ListSSHKeysResponse{SSHKeys: []api.SSHKey{
				{ID: "key-1", Name: "laptop"},
			}})
		case "/volt/pods":
			if err := json.NewDecoder(r.Body).Decode(&created); err != nil {
				t.Errorf("failed to decode request: %v", err)
			}
			json.NewEncoder(w).Encode(api.Pod{ID: "pod-9", Name: created.Name, Status: "creating"})
		default:
			t.Errorf("unexpected request to %s", r.URL.Path)
		}
	}))
	defer server.Close()

	viper.Set("base_url", server.URL)
	viper.Set("api_key", "test-key")

	output := execute(t, "pods", "create", "--machine", "m-1", "--gpu-count", "2")
	if created.TemplateID != "tpl-torch" {
		t.Errorf("expected default template, got: %q", created.TemplateID)
	}
	if created.MachineID != "m-1" {
		t.Errorf("expected machine ID, got: %q", created.MachineID)
	}
	if created.GPUCount != 2 {
		t.Errorf("expected gpu count 2, got: %d", created.GPUCount)
	}
	if len(created.SSHKeyIDs) != 1 || created.SSHKeyIDs[0] != "key-1" {
		t.Errorf("expected registered key attached, got: %v", created.SSHKeyIDs)
	}
	if created.Name == "" {
		t.Error("expected a generated pod name")
	}
	if !strings.Contains(output, "Pod pod-9") {
		t.Errorf("expected confirmation, got: %s", output)
	}
}

func TestPodsCreateCommand_ExplicitTemplateSkipsLookup(t *testing.T) {
	resetViper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/volt/templates":
			t.Error("template lookup should not happen when a template is given")
		case "/volt/ssh-keys":
			json.NewEncoder(w).Encode(api.ListSSHKeysResponse{})
		case "/volt/pods":
			json.NewEncoder(w).Encode(api.Pod{ID: "pod-9", Status: "creating"})
		}
	}))
	defer server.Close()

	viper.Set("base_url", server.URL)
	viper.Set("api_key", "test-key")

	output := execute(t, "pods", "create", "--template", "tpl-custom", "--machine", "", "--gpu-count", "1")
	if !strings.Contains(output, "Pod pod-9") {
		t.Errorf("expected confirmation, got: %s", output)
	}
}

func TestPodsRmCommand(t *testing.T) {
	resetViper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("expected DELETE method, got %s", r.Method)
		}
		if r.URL.Path != "/volt/pods/pod-1" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	viper.Set("base_url", server.URL)
	viper.Set("api_key", "test-key")

	output := execute(t, "pods", "rm", "pod-1")
	if !strings.Contains(output, "Pod pod-1 released") {
		t.Errorf("expected release confirmation, got: %s", output)
	}
}

func TestPodsRmCommand_NotFound(t *testing.T) {
	resetViper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(api.ErrorResponse{Error: "pod not found"})
	}))
	defer server.Close()

	viper.Set("base_url", server.URL)
	viper.Set("api_key", "test-key")

	output := execute(t, "pods", "rm", "missing")
	if !strings.Contains(output, "pod not found") {
		t.Errorf("expected error message, got: %s", output)
	}
}

func TestPodsStartCommand(t *testing.T) {
	resetViper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/pod-1/start") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(api.Pod{ID: "pod-1", Status: "running"})
	}))
	defer server.Close()

	viper.Set("base_url", server.URL)
	viper.Set("api_key", "test-key")

	output := execute(t, "pods", "start", "pod-1")
	if !strings.Contains(output, "Pod pod-1 is") {
		t.Errorf("expected status line, got: %s", output)
	}
}

func TestPodsStartCommand_RequiresArgument(t *testing.T) {
	resetViper()
	viper.Set("api_key", "test-key")

	rootCmd.SetArgs([]string{"pods", "start"})
	if err := rootCmd.Execute(); err == nil {
		t.Error("expected error when no pod ID provided")
	}
}
