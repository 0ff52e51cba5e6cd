package domain

// Check statuses
const (
	StatusOK            = "ok"
	StatusLow           = "low"
	StatusError         = "error"
	StatusNotConfigured = "not-configured"
)

// CheckResult is the outcome of a single health sub-check.
type CheckResult struct {
	Status string  `json:"status"`
	FreeMB *uint64 `json:"free_mb,omitempty"`
}

// HealthReport is the payload returned by the health endpoint.
// Status is always "ok"; sub-checks are informational.
type HealthReport struct {
	Status        string                 `json:"status"`
	UptimeSeconds float64                `json:"uptime_seconds"`
	Checks        map[string]CheckResult `json:"checks"`
}
