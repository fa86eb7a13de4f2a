package handler

import (
	"net/http"

	"website/handler/helpers"
	mid "website/middleware"
	"website/rpc"
	"website/services/presence"
	U "website/util"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func visitorsError(c *gin.Context, err error) {
	logCtx := log.WithField("reqId", U.GetScopeByKeyAsString(c, mid.SCOPE_REQ_ID))
	if err == presence.ErrUnavailable {
		logCtx.Warn("Visitor counter is not configured.")
		helpers.RespondError(c, rpc.NewError(rpc.CodeInternal, http.StatusInternalServerError,
			"Visitor counter unavailable"))
		return
	}

	logCtx.WithError(err).Error("Visitor counter failed.")
	helpers.RespondError(c, rpc.Internal(err))
}

// GetVisitorsHandler - Distinct visitors seen on the last 30 minutes.
// Test command.
// curl -i http://localhost:8080/api/visitors
func GetVisitorsHandler(service *presence.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		count, err := service.Count()
		if err != nil {
			visitorsError(c, err)
			return
		}
		helpers.RespondData(c, http.StatusOK, count)
	}
}

// RegisterVisitorHandler - Registers the caller as present and returns
// the count.
// Test command.
// curl -i -X POST http://localhost:8080/api/visitors
func RegisterVisitorHandler(service *presence.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := U.GetClientIP(c.Request.Header.Get("X-Forwarded-For"),
			c.Request.Header.Get("X-Real-Ip"), c.Request.RemoteAddr)

		count, err := service.Register(ip, c.Request.UserAgent())
		if err != nil {
			visitorsError(c, err)
			return
		}
		helpers.RespondData(c, http.StatusOK, count)
	}
}
