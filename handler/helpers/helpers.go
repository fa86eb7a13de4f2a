package helpers

import (
	"net/http"

	"website/rpc"

	"github.com/gin-gonic/gin"
)

// Envelope is the response shape of the rest routes.
type Envelope struct {
	Success bool              `json:"success"`
	Data    interface{}       `json:"data,omitempty"`
	Error   string            `json:"error,omitempty"`
	Message string            `json:"message,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func RespondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Envelope{Success: true, Data: data})
}

// RespondError aborts with the status of err. Internal failures carry the
// generic message only.
func RespondError(c *gin.Context, err *rpc.Error) {
	if err == nil {
		err = rpc.Internal(nil)
	}

	status := err.Status
	if status < http.StatusBadRequest {
		status = http.StatusInternalServerError
	}

	c.AbortWithStatusJSON(status, Envelope{
		Success: false,
		Error:   err.Code,
		Message: err.Message,
		Fields:  err.Fields,
	})
}
