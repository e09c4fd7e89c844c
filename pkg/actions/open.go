package actions

import (
	"fmt"
	"runtime"

	"github.com/qdeck/qdeck/pkg/types"
)

// OpenHandler hands a file, directory or URL to the platform's default
// application. Config keys: "target" (required).
type OpenHandler struct {
	runner Runner
	goos   string
}

func NewOpenHandler(runner Runner) *OpenHandler {
	return &OpenHandler{runner: runner, goos: runtime.GOOS}
}

func (h *OpenHandler) Execute(config map[string]interface{}) types.ActionResult {
	target := ExpandVars(stringKey(config, "target"))
	if target == "" {
		return types.FailResult("open action requires a \"target\"")
	}

	name, args := openerFor(h.goos, target)
	if err := h.runner.Start(name, args, StartOptions{}); err != nil {
		return types.FailResult(fmt.Sprintf("failed to open %s: %v", target, err))
	}
	return types.OKResult(fmt.Sprintf("opened %s", target))
}

func openerFor(goos, target string) (string, []string) {
	switch goos {
	case "windows":
		// The empty string after start is the window title slot.
		return "cmd", []string{"/c", "start", "", target}
	case "darwin":
		return "open", []string{target}
	default:
		return "xdg-open", []string{target}
	}
}
