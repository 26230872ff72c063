// Package api contains shared JSON request/response structs for the
// VoltageGPU REST API. This package is shared between the CLI commands
// and the HTTP client.
package api

// Pod represents a rented GPU pod.
type Pod struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Status      string  `json:"status"`
	GPUType     string  `json:"gpuType"`
	GPUCount    int     `json:"gpuCount"`
	HourlyPrice float64 `json:"hourlyPrice"`
	SSHHost     string  `json:"sshHost,omitempty"`
	SSHPort     int     `json:"sshPort,omitempty"`
	SSHUser     string  `json:"sshUser,omitempty"`
	TemplateID  string  `json:"templateId,omitempty"`
	CreatedAt   string  `json:"createdAt,omitempty"`
}

// Template represents a pod template (base Docker image plus GPU bounds).
type Template struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	DockerImage string  `json:"dockerImage"`
	GPUType     string  `json:"gpuType"`
	MinGPU      int     `json:"minGpu"`
	MaxGPU      int     `json:"maxGpu"`
	HourlyPrice float64 `json:"hourlyPrice"`
	Category    string  `json:"category,omitempty"`
	Default     bool    `json:"default,omitempty"`
}

// SSHKey represents a registered SSH public key.
type SSHKey struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PublicKey   string `json:"publicKey"`
	Fingerprint string `json:"fingerprint,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

// Machine represents rentable capacity on the platform. Name is the
// provider's descriptive machine name, e.g. "NVIDIA A100-SXM4-80GB".
type Machine struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	GPUType     string  `json:"gpuType"`
	GPUCount    int     `json:"gpuCount"`
	CPUCores    int     `json:"cpuCores"`
	RAMGB       int     `json:"ramGb"`
	StorageGB   int     `json:"storageGb"`
	HourlyPrice float64 `json:"hourlyPrice"`
	Available   bool    `json:"available"`
	Location    string  `json:"location,omitempty"`
}

// CreatePodRequest is the request body for renting a new pod.
type CreatePodRequest struct {
	TemplateID string            `json:"templateId"`
	MachineID  string            `json:"machineId,omitempty"`
	Name       string            `json:"name"`
	GPUCount   int               `json:"gpuCount"`
	SSHKeyIDs  []string          `json:"sshKeyIds,omitempty"`
	EnvVars    map[string]string `json:"envVars,omitempty"`
}

// AddSSHKeyRequest is the request body for registering an SSH key.
type AddSSHKeyRequest struct {
	Name      string `json:"name"`
	PublicKey string `json:"publicKey"`
}

// ListPodsResponse wraps the pod listing.
type ListPodsResponse struct {
	Pods []Pod `json:"pods"`
}

// ListTemplatesResponse wraps the template listing.
type ListTemplatesResponse struct {
	Templates []Template `json:"templates"`
}

// ListSSHKeysResponse wraps the SSH key listing.
type ListSSHKeysResponse struct {
	SSHKeys []SSHKey `json:"sshKeys"`
}

// ListMachinesResponse wraps the machine listing. Order is meaningful:
// the API returns machines ranked by the provider and machine selection
// takes the first match.
type ListMachinesResponse struct {
	Machines []Machine `json:"machines"`
}

// BalanceResponse is the response body for account balance queries.
type BalanceResponse struct {
	Balance  float64 `json:"balance"`
	Currency string  `json:"currency,omitempty"`
}

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}
