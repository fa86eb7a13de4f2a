package model

import "time"

const (
	HealthStatusOK       = "ok"
	HealthStatusDegraded = "degraded"
	HealthStatusDown     = "down"
	HealthStatusSkipped  = "skipped"
)

type HealthStatus struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type HealthCheck struct {
	Status    string `json:"status"`
	LatencyMs int64  `json:"latencyMs"`
	Error     string `json:"error,omitempty"`
}

type HealthDetailed struct {
	Status        string                 `json:"status"`
	Timestamp     time.Time              `json:"timestamp"`
	Version       string                 `json:"version"`
	GoVersion     string                 `json:"goVersion"`
	UptimeSeconds int64                  `json:"uptimeSeconds"`
	Checks        map[string]HealthCheck `json:"checks"`
	ClarityQuota  QuotaUsage             `json:"clarityQuota"`
}
