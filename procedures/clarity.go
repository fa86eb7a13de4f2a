package procedures

import (
	"context"
	"encoding/json"
	"net/http"

	"website/integration"
	M "website/model/model"
	"website/rpc"
	U "website/util"

	"github.com/jinzhu/gorm/dialects/postgres"
	log "github.com/sirupsen/logrus"
)

var clarityStatusErrors = map[int]*rpc.Error{
	http.StatusUnauthorized: rpc.NewError(rpc.CodeClarityUnauthorized, http.StatusInternalServerError,
		"Clarity API authentication failed. Check the API token."),
	http.StatusForbidden: rpc.NewError(rpc.CodeClarityForbidden, http.StatusInternalServerError,
		"Clarity API access forbidden. The token has no access to this project."),
	http.StatusBadRequest: rpc.NewError(rpc.CodeClarityBadRequest, http.StatusInternalServerError,
		"Clarity API rejected the request parameters."),
	http.StatusTooManyRequests: rpc.NewError(rpc.CodeClarityQuotaExceeded, http.StatusInternalServerError,
		"Clarity API rate limit exceeded."),
}

func clarityError(err error) *rpc.Error {
	if err == integration.ErrNotConfigured {
		return rpc.Internal(err)
	}

	statusCode, _ := integration.StatusCodeOf(err)
	known, exists := clarityStatusErrors[statusCode]
	if !exists {
		return rpc.NewError(rpc.CodeClarityUnknown, http.StatusInternalServerError,
			"Failed to fetch Clarity insights.").WithCause(err)
	}
	return rpc.NewError(known.Code, known.Status, known.Message).WithCause(err)
}

// clarityProjectLiveInsights serves today's stored payload for identical
// parameters. Otherwise it reserves one of the daily calls, shared across
// all parameters, and calls upstream, storing the payload on success and
// giving the reservation back on failure.
func (deps *Dependencies) clarityProjectLiveInsights(ctx context.Context,
	input M.ClarityInsightsInput) (json.RawMessage, error) {

	params := input.Params()
	now := deps.now()
	today := U.BeginningOfDay(now, deps.location())
	logCtx := log.WithFields(log.Fields{"reqId": rpc.RequestID(ctx), "params": params})

	cached, errCode := deps.Store.GetCachedClarityRequest(params, today)
	if errCode == http.StatusFound {
		logCtx.WithField("id", cached.ID).Debug("Serving clarity insights from cache.")
		return cached.ResponseData.RawMessage, nil
	}
	if errCode != http.StatusNotFound {
		return nil, rpc.FromStatusCode(errCode, "clarity request")
	}

	reserved, errCode := deps.Store.ReserveClarityRequest(params, today, now, deps.clarityDailyLimit())
	if errCode == http.StatusTooManyRequests {
		logCtx.Warn("Clarity daily quota exhausted.")
		return nil, rpc.QuotaExceeded("Daily Clarity API request limit reached. Try again tomorrow.")
	}
	if errCode != http.StatusCreated {
		return nil, rpc.FromStatusCode(errCode, "clarity request")
	}

	payload, err := deps.Clarity.ProjectLiveInsights(ctx, params.NumOfDays, params.Dimensions())
	if err != nil {
		if errCode := deps.Store.ReleaseClarityRequest(reserved.ID); errCode != http.StatusAccepted {
			logCtx.WithField("id", reserved.ID).WithField("err_code", errCode).
				Error("Failed to release clarity reservation.")
		}
		return nil, clarityError(err)
	}

	errCode = deps.Store.CompleteClarityRequest(reserved.ID, &postgres.Jsonb{RawMessage: payload})
	if errCode != http.StatusAccepted {
		// The reservation still counts against the quota.
		logCtx.WithField("id", reserved.ID).WithField("err_code", errCode).
			Error("Failed to store clarity response.")
	}
	return payload, nil
}
