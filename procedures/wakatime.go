package procedures

import (
	"context"

	"website/integration"
	M "website/model/model"
	"website/rpc"
)

func wakatimeError(what string, err error) *rpc.Error {
	if err == integration.ErrNotConfigured {
		return rpc.Internal(err)
	}
	return rpc.Upstream("failed to fetch wakatime "+what, err)
}

func (deps *Dependencies) wakatimeCodingActivity(ctx context.Context) (*M.WakatimeActivityOutput, error) {
	output, err := deps.Wakatime.CodingActivity(ctx, deps.Settings.Wakatime.CodingActivity)
	if err != nil {
		return nil, wakatimeError("coding activity", err)
	}
	return output, nil
}

// wakatimeStats returns the procedure for one share chart.
func (deps *Dependencies) wakatimeStats(what, shareURL string) func(ctx context.Context) (*M.WakatimeStatsOutput, error) {
	return func(ctx context.Context) (*M.WakatimeStatsOutput, error) {
		output, err := deps.Wakatime.Stats(ctx, shareURL)
		if err != nil {
			return nil, wakatimeError(what, err)
		}
		return output, nil
	}
}
