package actions

import (
	"fmt"

	"github.com/qdeck/qdeck/pkg/types"
)

// LaunchHandler starts an application as a detached process.
//
// Config keys: "path" (required), "args" (list of strings), "workdir",
// "env" (map of name to value, overlaid on the inherited environment).
// Environment variables in path, args and workdir are expanded.
type LaunchHandler struct {
	runner Runner
}

func NewLaunchHandler(runner Runner) *LaunchHandler {
	return &LaunchHandler{runner: runner}
}

func (h *LaunchHandler) Execute(config map[string]interface{}) types.ActionResult {
	path := ExpandVars(stringKey(config, "path"))
	if path == "" {
		return types.FailResult("launch action requires a \"path\"")
	}

	args := stringList(config, "args")
	for i := range args {
		args[i] = ExpandVars(args[i])
	}

	opts := StartOptions{Dir: ExpandVars(stringKey(config, "workdir"))}
	if env, ok := config["env"].(map[string]interface{}); ok {
		for k, v := range env {
			opts.Env = append(opts.Env, fmt.Sprintf("%s=%v", k, v))
		}
	}

	if err := h.runner.Start(path, args, opts); err != nil {
		return types.FailResult(fmt.Sprintf("failed to launch %s: %v", path, err))
	}
	return types.OKResult(fmt.Sprintf("launched %s", path))
}

func stringKey(config map[string]interface{}, key string) string {
	if v, ok := config[key].(string); ok {
		return v
	}
	return ""
}

// stringList reads a key that YAML may deliver as []interface{} or
// []string.
func stringList(config map[string]interface{}, key string) []string {
	switch v := config[key].(type) {
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprintf("%v", item))
		}
		return out
	default:
		return nil
	}
}
