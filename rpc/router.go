package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// Handler runs a procedure with its raw json input.
type Handler func(ctx context.Context, input json.RawMessage) (interface{}, error)

// Middleware wraps a Handler, i.e to authorize the call.
type Middleware func(Handler) Handler

// Router is a flat table of procedures named "namespace.procedure".
type Router struct {
	mutex      sync.RWMutex
	procedures map[string]Handler
}

func NewRouter() *Router {
	return &Router{procedures: make(map[string]Handler)}
}

// Handle registers handler under name. Registering a name twice panics.
func (router *Router) Handle(name string, handler Handler, middleware ...Middleware) {
	if name == "" || handler == nil {
		panic("rpc: invalid procedure registration")
	}

	for i := len(middleware) - 1; i >= 0; i-- {
		handler = middleware[i](handler)
	}

	router.mutex.Lock()
	defer router.mutex.Unlock()

	if _, exists := router.procedures[name]; exists {
		panic(fmt.Sprintf("rpc: procedure %s registered twice", name))
	}
	router.procedures[name] = handler
}

// Namespace returns a registrar prefixing names with "name.". Middleware
// given here applies to every procedure of the namespace.
func (router *Router) Namespace(name string, middleware ...Middleware) *Namespace {
	return &Namespace{router: router, name: name, middleware: middleware}
}

type Namespace struct {
	router     *Router
	name       string
	middleware []Middleware
}

func (namespace *Namespace) Handle(name string, handler Handler, middleware ...Middleware) {
	all := make([]Middleware, 0, len(namespace.middleware)+len(middleware))
	all = append(all, namespace.middleware...)
	all = append(all, middleware...)
	namespace.router.Handle(namespace.name+"."+name, handler, all...)
}

func (router *Router) lookup(name string) (Handler, bool) {
	router.mutex.RLock()
	defer router.mutex.RUnlock()

	handler, exists := router.procedures[name]
	return handler, exists
}

// Names lists the registered procedures in order.
func (router *Router) Names() []string {
	router.mutex.RLock()
	defer router.mutex.RUnlock()

	names := make([]string, 0, len(router.procedures))
	for name := range router.procedures {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Call invokes the procedure name. Any failure is returned as an *Error;
// unknown procedures fail with NOT_FOUND.
func (router *Router) Call(ctx context.Context, name string, input json.RawMessage) (interface{}, *Error) {
	logCtx := log.WithFields(log.Fields{"reqId": RequestID(ctx), "procedure": name})

	handler, exists := router.lookup(name)
	if !exists {
		return nil, NotFound(messageProcedureNotFound + ": " + name)
	}

	startTime := time.Now()
	output, err := handler(ctx, input)
	logCtx = logCtx.WithField("latency_ms", time.Since(startTime).Milliseconds())
	if err != nil {
		rpcErr := AsError(err)
		if rpcErr.Status >= 500 {
			logCtx.WithError(err).Error("Procedure failed.")
		} else {
			logCtx.WithField("code", rpcErr.Code).Info("Procedure rejected call.")
		}
		return nil, rpcErr
	}

	logCtx.Debug("Procedure completed.")
	return output, nil
}

// Typed adapts fn into a Handler decoding and validating its input.
func Typed[I any, O any](fn func(ctx context.Context, input I) (O, error)) Handler {
	return func(ctx context.Context, raw json.RawMessage) (interface{}, error) {
		var input I
		if err := Decode(raw, &input); err != nil {
			return nil, err
		}
		return fn(ctx, input)
	}
}

// NoInput adapts fn into a Handler for procedures taking no input. Any
// input other than empty or null is rejected.
func NoInput[O any](fn func(ctx context.Context) (O, error)) Handler {
	return func(ctx context.Context, raw json.RawMessage) (interface{}, error) {
		if !isEmptyInput(raw) {
			return nil, BadRequest("Procedure takes no input", nil)
		}
		return fn(ctx)
	}
}
