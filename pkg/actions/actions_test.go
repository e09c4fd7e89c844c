// Test Type: Unit Test
// Description: Tests for the actions package - dispatch, built-in handlers, expansion

package actions

import (
	"errors"
	"strings"
	"testing"

	"github.com/qdeck/qdeck/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingRunner captures spawn requests instead of starting processes.
type recordingRunner struct {
	name string
	args []string
	opts StartOptions
	err  error
}

func (r *recordingRunner) Start(name string, args []string, opts StartOptions) error {
	r.name = name
	r.args = args
	r.opts = opts
	return r.err
}

func TestDispatchUnknownType(t *testing.T) {
	d := NewDispatcher()
	res := d.Execute("Bogus", nil)
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "Bogus")
}

func TestDispatchRecoversPanic(t *testing.T) {
	d := NewDispatcher()
	d.Register("Explode", HandlerFunc(func(map[string]interface{}) types.ActionResult {
		panic("boom")
	}))

	res := d.Execute("Explode", nil)
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "boom")
}

func TestDispatchOverrideReplacesHandler(t *testing.T) {
	d := NewDispatcher()
	d.Register("X", HandlerFunc(func(map[string]interface{}) types.ActionResult {
		return types.OKResult("first")
	}))
	d.Register("X", HandlerFunc(func(map[string]interface{}) types.ActionResult {
		return types.OKResult("second")
	}))

	assert.Equal(t, "second", d.Execute("X", nil).Message)
}

func TestDefaultDispatcherTypes(t *testing.T) {
	d := NewDefaultDispatcher(&recordingRunner{}, "")
	assert.ElementsMatch(t,
		[]string{types.ActionLaunchApp, types.ActionOpen, types.ActionTerminal, types.ActionSystem},
		d.Types())
}

func TestExecuteButtonNil(t *testing.T) {
	d := NewDispatcher()
	res := d.ExecuteButton(nil)
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Message)
}

func TestLaunchHandler(t *testing.T) {
	r := &recordingRunner{}
	h := NewLaunchHandler(r)

	res := h.Execute(map[string]interface{}{
		"path":    "/usr/bin/editor",
		"args":    []interface{}{"--new-window", "file.txt"},
		"workdir": "/home/user",
		"env":     map[string]interface{}{"MODE": "fast"},
	})
	require.True(t, res.Success, res.Message)
	assert.Equal(t, "/usr/bin/editor", r.name)
	assert.Equal(t, []string{"--new-window", "file.txt"}, r.args)
	assert.Equal(t, "/home/user", r.opts.Dir)
	assert.Contains(t, r.opts.Env, "MODE=fast")
}

func TestLaunchHandlerMissingPath(t *testing.T) {
	h := NewLaunchHandler(&recordingRunner{})
	res := h.Execute(map[string]interface{}{})
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "path")
}

func TestLaunchHandlerSpawnFailureIsResultNotPanic(t *testing.T) {
	r := &recordingRunner{err: errors.New("no such file or directory")}
	h := NewLaunchHandler(r)

	res := h.Execute(map[string]interface{}{"path": "/definitely/not/here"})
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Message)
	assert.Contains(t, res.Message, "/definitely/not/here")
}

func TestLaunchHandlerExpandsVars(t *testing.T) {
	t.Setenv("QDECK_TEST_BIN", "/opt/tool")
	r := &recordingRunner{}
	h := NewLaunchHandler(r)

	res := h.Execute(map[string]interface{}{
		"path": "%QDECK_TEST_BIN%/run",
		"args": []interface{}{"${QDECK_TEST_BIN}"},
	})
	require.True(t, res.Success, res.Message)
	assert.Equal(t, "/opt/tool/run", r.name)
	assert.Equal(t, []string{"/opt/tool"}, r.args)
}

func TestOpenHandler(t *testing.T) {
	tests := []struct {
		goos     string
		wantName string
	}{
		{"linux", "xdg-open"},
		{"darwin", "open"},
		{"windows", "cmd"},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			r := &recordingRunner{}
			h := &OpenHandler{runner: r, goos: tt.goos}
			res := h.Execute(map[string]interface{}{"target": "https://example.com"})
			require.True(t, res.Success, res.Message)
			assert.Equal(t, tt.wantName, r.name)
			assert.Contains(t, r.args, "https://example.com")
		})
	}
}

func TestOpenHandlerMissingTarget(t *testing.T) {
	h := NewOpenHandler(&recordingRunner{})
	res := h.Execute(map[string]interface{}{})
	assert.False(t, res.Success)
}

func TestTerminalHandlerFamilies(t *testing.T) {
	config := map[string]interface{}{
		"command": "htop",
		"workdir": "/srv",
	}

	tests := []struct {
		family   string
		wantName string
		wantArgs []string
		wantDir  string
	}{
		{TerminalWT, "wt", []string{"-d", "/srv", "cmd", "/k", "htop"}, ""},
		{TerminalPowerShell, "powershell", []string{"-NoExit", "-Command", "htop"}, "/srv"},
		{TerminalCmd, "cmd", []string{"/k", "htop"}, "/srv"},
		{TerminalWSL, "wsl", []string{"--cd", "/srv", "--", "sh", "-c", "htop"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.family, func(t *testing.T) {
			r := &recordingRunner{}
			h := NewTerminalHandler(r, "")
			cfg := map[string]interface{}{"terminal": tt.family}
			for k, v := range config {
				cfg[k] = v
			}
			res := h.Execute(cfg)
			require.True(t, res.Success, res.Message)
			assert.Equal(t, tt.wantName, r.name)
			assert.Equal(t, tt.wantArgs, r.args)
			assert.Equal(t, tt.wantDir, r.opts.Dir)
		})
	}
}

func TestTerminalHandlerWTProfile(t *testing.T) {
	r := &recordingRunner{}
	h := NewTerminalHandler(r, "")
	res := h.Execute(map[string]interface{}{
		"terminal": TerminalWT,
		"profile":  "Ubuntu",
	})
	require.True(t, res.Success, res.Message)
	assert.Equal(t, []string{"-p", "Ubuntu"}, r.args)
}

func TestTerminalHandlerDefaultFamily(t *testing.T) {
	r := &recordingRunner{}
	h := NewTerminalHandler(r, TerminalCmd)
	res := h.Execute(map[string]interface{}{"command": "dir"})
	require.True(t, res.Success, res.Message)
	assert.Equal(t, "cmd", r.name)
}

func TestSystemHandler(t *testing.T) {
	h := NewSystemHandler()
	h.RegisterCallback("toggle-window", func(cfg map[string]interface{}) types.ActionResult {
		return types.OKResult("toggled")
	})

	res := h.Execute(map[string]interface{}{"command": "toggle-window"})
	assert.True(t, res.Success)
	assert.Equal(t, "toggled", res.Message)

	res = h.Execute(map[string]interface{}{"command": "nope"})
	assert.False(t, res.Success)

	res = h.Execute(map[string]interface{}{})
	assert.False(t, res.Success)
}

func TestExpandVars(t *testing.T) {
	t.Setenv("QDECK_EXPAND_A", "alpha")
	t.Setenv("QDECK_EXPAND_B", "beta")

	tests := []struct {
		in   string
		want string
	}{
		{"%QDECK_EXPAND_A%", "alpha"},
		{"$QDECK_EXPAND_B", "beta"},
		{"${QDECK_EXPAND_B}/bin", "beta/bin"},
		{"%QDECK_EXPAND_A%-${QDECK_EXPAND_B}", "alpha-beta"},
		{"%UNSET_QDECK_VAR%", ""},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := ExpandVars(tt.in); got != tt.want {
			t.Errorf("ExpandVars(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRunnerStartFailureMessageIsUseful(t *testing.T) {
	// The production runner against a path that cannot exist. The handler
	// contract is a failed result with a message, never a panic.
	h := NewLaunchHandler(NewRunner())
	res := h.Execute(map[string]interface{}{"path": "/nonexistent/qdeck-test-binary"})
	assert.False(t, res.Success)
	assert.True(t, strings.Contains(res.Message, "qdeck-test-binary"))
}
