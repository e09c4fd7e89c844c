package actions

import (
	"fmt"
	"sync"

	"github.com/qdeck/qdeck/pkg/types"
)

// SystemCallback is an in-process command invoked by system buttons.
type SystemCallback func(config map[string]interface{}) types.ActionResult

// SystemHandler dispatches to named in-process callbacks registered by the
// host. It never spawns a process. Config keys: "command" (required).
type SystemHandler struct {
	mu        sync.RWMutex
	callbacks map[string]SystemCallback
}

func NewSystemHandler() *SystemHandler {
	return &SystemHandler{callbacks: make(map[string]SystemCallback)}
}

// RegisterCallback binds a callback to a command name, replacing any
// previous binding.
func (h *SystemHandler) RegisterCallback(command string, cb SystemCallback) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.callbacks[command] = cb
}

func (h *SystemHandler) Execute(config map[string]interface{}) types.ActionResult {
	command := stringKey(config, "command")
	if command == "" {
		return types.FailResult("system action requires a \"command\"")
	}

	h.mu.RLock()
	cb, ok := h.callbacks[command]
	h.mu.RUnlock()
	if !ok {
		return types.FailResult(fmt.Sprintf("unknown system command %q", command))
	}
	return cb(config)
}
