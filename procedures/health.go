package procedures

import (
	"context"
	"net/http"
	"runtime"
	"time"

	M "website/model/model"
	U "website/util"
)

func (deps *Dependencies) healthCheck(ctx context.Context) (*M.HealthStatus, error) {
	return &M.HealthStatus{Status: M.HealthStatusOK, Timestamp: deps.now().UTC()}, nil
}

func runCheck(pinger Pinger) M.HealthCheck {
	if pinger == nil {
		return M.HealthCheck{Status: M.HealthStatusSkipped}
	}

	startTime := time.Now()
	err := pinger.Ping()
	check := M.HealthCheck{Status: M.HealthStatusOK, LatencyMs: time.Since(startTime).Milliseconds()}
	if err != nil {
		check.Status = M.HealthStatusDown
		check.Error = err.Error()
	}
	return check
}

// healthDetailed reports dependency checks and today's Clarity quota use.
// Any failing check degrades the overall status.
func (deps *Dependencies) healthDetailed(ctx context.Context) (*M.HealthDetailed, error) {
	now := deps.now()
	detailed := &M.HealthDetailed{
		Status:       M.HealthStatusOK,
		Timestamp:    now.UTC(),
		Version:      deps.Settings.Version,
		GoVersion:    runtime.Version(),
		Checks:       make(map[string]M.HealthCheck),
		ClarityQuota: M.QuotaUsage{Limit: deps.clarityDailyLimit()},
	}
	if !deps.Settings.StartedAt.IsZero() {
		detailed.UptimeSeconds = int64(now.Sub(deps.Settings.StartedAt).Seconds())
	}

	detailed.Checks["datastore"] = runCheck(deps.Store)
	detailed.Checks["redis"] = runCheck(deps.Redis)

	used, errCode := deps.Store.CountClarityRequestsSince(U.BeginningOfDay(now, deps.location()))
	if errCode != http.StatusFound {
		detailed.Checks["clarity_quota"] = M.HealthCheck{Status: M.HealthStatusDown, Error: "failed to count requests"}
	} else {
		detailed.ClarityQuota.Used = used
	}

	for _, check := range detailed.Checks {
		if check.Status == M.HealthStatusDown {
			detailed.Status = M.HealthStatusDegraded
		}
	}

	return detailed, nil
}
