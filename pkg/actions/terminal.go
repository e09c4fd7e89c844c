package actions

import (
	"fmt"
	"os"
	"runtime"

	"github.com/qdeck/qdeck/pkg/types"
)

// Terminal families understood by the terminal handler.
const (
	TerminalWT         = "wt"
	TerminalPowerShell = "powershell"
	TerminalCmd        = "cmd"
	TerminalWSL        = "wsl"
	TerminalShell      = "shell"
)

// TerminalHandler opens a terminal window, optionally running a command in
// it. Config keys: "terminal" (family, falls back to the configured
// default), "command", "workdir", "profile" (wt only). Each family has its
// own flag conventions, so the handler builds the argv per family.
type TerminalHandler struct {
	runner Runner
	// defaultFamily is used when the button config names no family.
	defaultFamily string
	goos          string
}

func NewTerminalHandler(runner Runner, defaultFamily string) *TerminalHandler {
	if defaultFamily == "" {
		defaultFamily = TerminalShell
	}
	return &TerminalHandler{runner: runner, defaultFamily: defaultFamily, goos: runtime.GOOS}
}

func (h *TerminalHandler) Execute(config map[string]interface{}) types.ActionResult {
	family := stringKey(config, "terminal")
	if family == "" {
		family = h.defaultFamily
	}
	command := ExpandVars(stringKey(config, "command"))
	workdir := ExpandVars(stringKey(config, "workdir"))
	profile := stringKey(config, "profile")

	name, args, opts := h.build(family, command, workdir, profile)
	if err := h.runner.Start(name, args, opts); err != nil {
		return types.FailResult(fmt.Sprintf("failed to open %s terminal: %v", family, err))
	}
	return types.OKResult(fmt.Sprintf("opened %s terminal", family))
}

func (h *TerminalHandler) build(family, command, workdir, profile string) (string, []string, StartOptions) {
	switch family {
	case TerminalWT:
		args := []string{}
		if profile != "" {
			args = append(args, "-p", profile)
		}
		if workdir != "" {
			args = append(args, "-d", workdir)
		}
		if command != "" {
			args = append(args, "cmd", "/k", command)
		}
		return "wt", args, StartOptions{}

	case TerminalPowerShell:
		args := []string{"-NoExit"}
		if command != "" {
			args = append(args, "-Command", command)
		}
		return "powershell", args, StartOptions{Dir: workdir}

	case TerminalCmd:
		args := []string{}
		if command != "" {
			args = append(args, "/k", command)
		}
		return "cmd", args, StartOptions{Dir: workdir}

	case TerminalWSL:
		args := []string{}
		if workdir != "" {
			args = append(args, "--cd", workdir)
		}
		if command != "" {
			args = append(args, "--", "sh", "-c", command)
		}
		return "wsl", args, StartOptions{}

	default:
		return h.buildShell(command, workdir)
	}
}

// buildShell is the platform-native fallback family.
func (h *TerminalHandler) buildShell(command, workdir string) (string, []string, StartOptions) {
	switch h.goos {
	case "windows":
		args := []string{}
		if command != "" {
			args = append(args, "/k", command)
		}
		return "cmd", args, StartOptions{Dir: workdir}
	case "darwin":
		target := workdir
		if target == "" {
			target = os.Getenv("HOME")
		}
		return "open", []string{"-a", "Terminal", target}, StartOptions{}
	default:
		args := []string{}
		if command != "" {
			args = append(args, "-e", "sh", "-c", command)
		}
		return "x-terminal-emulator", args, StartOptions{Dir: workdir}
	}
}
