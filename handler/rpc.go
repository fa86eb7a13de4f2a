package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"website/handler/helpers"
	mid "website/middleware"
	"website/rpc"
	U "website/util"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// jsonRPCRequest is a JSON-RPC 1.0 call. Params holds the procedure input
// as the only element of an array, or the input object itself.
type jsonRPCRequest struct {
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
	ID     json.RawMessage `json:"id"`
}

type jsonRPCResponse struct {
	Result interface{}     `json:"result"`
	Error  *rpc.Error      `json:"error"`
	ID     json.RawMessage `json:"id"`
}

// requestContext carries the request id and auth scope of c to the
// procedures.
func requestContext(c *gin.Context) context.Context {
	ctx := rpc.WithRequestID(c.Request.Context(), U.GetScopeByKeyAsString(c, mid.SCOPE_REQ_ID))
	return rpc.WithAuthenticated(ctx, U.GetScopeByKeyAsBool(c, mid.SCOPE_AUTHENTICATED))
}

// paramsInput unwraps the positional params array of a JSON-RPC call.
func paramsInput(params json.RawMessage) (json.RawMessage, *rpc.Error) {
	trimmed := bytes.TrimSpace(params)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return trimmed, nil
	}

	var positional []json.RawMessage
	if err := json.Unmarshal(trimmed, &positional); err != nil {
		return nil, rpc.BadRequest("Invalid params", nil)
	}

	switch len(positional) {
	case 0:
		return nil, nil
	case 1:
		return positional[0], nil
	}
	return nil, rpc.BadRequest("Params must hold a single input", nil)
}

// JSONRPCHandler - Dispatches a JSON-RPC 1.0 call to the procedure named
// by method.
// Test command.
// curl -X POST http://localhost:8080/rpc -d '{"method": "health.check", "params": [], "id": 1}'
func JSONRPCHandler(router *rpc.Router) gin.HandlerFunc {
	return func(c *gin.Context) {
		var request jsonRPCRequest
		if err := c.ShouldBindJSON(&request); err != nil || request.Method == "" {
			log.WithError(err).Info("Invalid json rpc request.")
			c.AbortWithStatusJSON(http.StatusBadRequest,
				jsonRPCResponse{Error: rpc.BadRequest("Invalid json rpc request", nil)})
			return
		}

		input, rpcErr := paramsInput(request.Params)
		if rpcErr != nil {
			c.AbortWithStatusJSON(rpcErr.Status, jsonRPCResponse{Error: rpcErr, ID: request.ID})
			return
		}

		result, rpcErr := router.Call(requestContext(c), request.Method, input)
		if rpcErr != nil {
			c.AbortWithStatusJSON(rpcErr.Status, jsonRPCResponse{Error: rpcErr, ID: request.ID})
			return
		}

		c.JSON(http.StatusOK, jsonRPCResponse{Result: result, ID: request.ID})
	}
}

// ProcedureHandler - Calls the procedure on the path with the request body
// as its input.
// Test command.
// curl -X POST http://localhost:8080/rpc/guestbook.list -d '{"limit": 5}'
func ProcedureHandler(router *rpc.Router) gin.HandlerFunc {
	return func(c *gin.Context) {
		input, err := readBody(c)
		if err != nil {
			helpers.RespondError(c, rpc.BadRequest("Failed to read request body", nil))
			return
		}

		callProcedure(c, router, c.Param("procedure"), input, http.StatusOK)
	}
}

// ListProceduresHandler - Lists the names callable on /rpc.
func ListProceduresHandler(router *rpc.Router) gin.HandlerFunc {
	return func(c *gin.Context) {
		helpers.RespondData(c, http.StatusOK, gin.H{"procedures": router.Names()})
	}
}

// HealthzHandler - health.check output without the envelope.
func HealthzHandler(router *rpc.Router) gin.HandlerFunc {
	return func(c *gin.Context) {
		output, rpcErr := router.Call(requestContext(c), "health.check", nil)
		if rpcErr != nil {
			c.AbortWithStatusJSON(rpcErr.Status, rpcErr)
			return
		}
		c.JSON(http.StatusOK, output)
	}
}

// readBody returns the raw request body. A request without one reads as
// empty input.
func readBody(c *gin.Context) ([]byte, error) {
	if c.Request.Body == nil {
		return nil, nil
	}
	return c.GetRawData()
}

func callProcedure(c *gin.Context, router *rpc.Router, name string, input json.RawMessage, status int) {
	output, rpcErr := router.Call(requestContext(c), name, input)
	if rpcErr != nil {
		helpers.RespondError(c, rpcErr)
		return
	}
	helpers.RespondData(c, status, output)
}
