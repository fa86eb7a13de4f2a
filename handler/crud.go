package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"website/handler/helpers"
	"website/rpc"

	"github.com/gin-gonic/gin"
)

// InitCRUDRoutes exposes the list, get, create, update and remove
// procedures of namespace as rest routes on group.
func InitCRUDRoutes(group *gin.RouterGroup, router *rpc.Router, namespace string) {
	group.GET("", ListHandler(router, namespace+".list"))
	group.POST("", CreateHandler(router, namespace+".create"))
	group.GET("/:id", GetByIDHandler(router, namespace+".get"))
	group.PATCH("/:id", UpdateHandler(router, namespace+".update"))
	group.DELETE("/:id", RemoveHandler(router, namespace+".remove"))
}

func idInput(c *gin.Context) json.RawMessage {
	input, _ := json.Marshal(map[string]string{"id": c.Param("id")})
	return input
}

// ListHandler - Lists entries paginated by 'limit' and 'offset' query params.
// Test command.
// curl -i http://localhost:8080/api/guestbook?limit=10&offset=0
func ListHandler(router *rpc.Router, procedure string) gin.HandlerFunc {
	return func(c *gin.Context) {
		params := make(map[string]int)
		fields := make(map[string]string)
		for _, name := range []string{"limit", "offset"} {
			value, exists := c.GetQuery(name)
			if !exists {
				continue
			}

			number, err := strconv.Atoi(value)
			if err != nil {
				fields[name] = "must be an integer"
				continue
			}
			params[name] = number
		}
		if len(fields) > 0 {
			helpers.RespondError(c, rpc.BadRequest("", fields))
			return
		}

		input, _ := json.Marshal(params)
		callProcedure(c, router, procedure, input, http.StatusOK)
	}
}

// CreateHandler - Creates an entry from the json body.
// Test command.
// curl -i -X POST http://localhost:8080/api/guestbook -d '{"name": "ada", "message": "hello"}'
func CreateHandler(router *rpc.Router, procedure string) gin.HandlerFunc {
	return func(c *gin.Context) {
		input, err := readBody(c)
		if err != nil {
			helpers.RespondError(c, rpc.BadRequest("Failed to read request body", nil))
			return
		}

		callProcedure(c, router, procedure, input, http.StatusCreated)
	}
}

func GetByIDHandler(router *rpc.Router, procedure string) gin.HandlerFunc {
	return func(c *gin.Context) {
		callProcedure(c, router, procedure, idInput(c), http.StatusOK)
	}
}

// UpdateHandler - Partially updates the entry on the path with the fields
// on the json body.
// Test command.
// curl -i -X PATCH http://localhost:8080/api/guestbook/:id -d '{"message": "edited"}'
func UpdateHandler(router *rpc.Router, procedure string) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := readBody(c)
		if err != nil {
			helpers.RespondError(c, rpc.BadRequest("Failed to read request body", nil))
			return
		}

		fields := make(map[string]json.RawMessage)
		if len(body) > 0 {
			if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
				helpers.RespondError(c, rpc.BadRequest("Request body must be a json object", nil))
				return
			}
		}

		id, _ := json.Marshal(c.Param("id"))
		fields["id"] = id
		input, _ := json.Marshal(fields)

		callProcedure(c, router, procedure, input, http.StatusOK)
	}
}

func RemoveHandler(router *rpc.Router, procedure string) gin.HandlerFunc {
	return func(c *gin.Context) {
		callProcedure(c, router, procedure, idInput(c), http.StatusOK)
	}
}
