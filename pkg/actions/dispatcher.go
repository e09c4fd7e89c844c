// Package actions executes configured button actions through a registry of
// handlers. Dispatch never crashes the host: handler panics are recovered
// and every outcome, success or failure, is folded into an ActionResult.
package actions

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/qdeck/qdeck/pkg/logging"
	"github.com/qdeck/qdeck/pkg/registry"
	"github.com/qdeck/qdeck/pkg/types"
)

// Handler executes one action type. Implementations report failures
// through the result, not by panicking; the dispatcher still guards
// against panics from misbehaving handlers.
type Handler interface {
	Execute(config map[string]interface{}) types.ActionResult
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(config map[string]interface{}) types.ActionResult

func (f HandlerFunc) Execute(config map[string]interface{}) types.ActionResult {
	return f(config)
}

// Dispatcher routes action types to registered handlers. Registering an
// already known type replaces the previous handler, so hosts can override
// the built-ins.
type Dispatcher struct {
	handlers registry.Registry[Handler]
	logger   zerolog.Logger
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		handlers: registry.New[Handler](),
		logger:   logging.GetLogger("actions"),
	}
}

// NewDefaultDispatcher builds a dispatcher with the built-in handlers
// registered: LaunchApp, Open, Terminal and System.
func NewDefaultDispatcher(runner Runner, defaultTerminal string) *Dispatcher {
	d := NewDispatcher()
	d.Register(types.ActionLaunchApp, NewLaunchHandler(runner))
	d.Register(types.ActionOpen, NewOpenHandler(runner))
	d.Register(types.ActionTerminal, NewTerminalHandler(runner, defaultTerminal))
	d.Register(types.ActionSystem, NewSystemHandler())
	return d
}

// Register binds a handler to an action type, replacing any previous one.
func (d *Dispatcher) Register(actionType string, h Handler) {
	replaced, err := d.handlers.Register(actionType, h)
	if err != nil {
		d.logger.Error().Err(err).Str("action_type", actionType).Msg("Failed to register handler")
		return
	}
	if replaced {
		d.logger.Debug().Str("action_type", actionType).Msg("Handler replaced")
	}
}

// Types lists the registered action types, sorted.
func (d *Dispatcher) Types() []string {
	return d.handlers.List()
}

// Execute runs the handler for actionType. Unknown types and handler
// panics come back as failed results, never as errors or crashes.
func (d *Dispatcher) Execute(actionType string, config map[string]interface{}) (result types.ActionResult) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error().
				Str("action_type", actionType).
				Interface("panic", r).
				Msg("Handler panicked")
			result = types.FailResult(fmt.Sprintf("action %q panicked: %v", actionType, r))
		}
	}()

	handler, err := d.handlers.Get(actionType)
	if err != nil {
		return types.FailResult(fmt.Sprintf("no handler registered for action type %q", actionType))
	}

	result = handler.Execute(config)
	d.logger.Debug().
		Str("action_type", actionType).
		Bool("success", result.Success).
		Msg("Action executed")
	return result
}

// ExecuteButton runs the action bound to a button.
func (d *Dispatcher) ExecuteButton(b *types.Button) types.ActionResult {
	if b == nil {
		return types.FailResult("no button at that position")
	}
	return d.Execute(b.ActionType, b.Config)
}
