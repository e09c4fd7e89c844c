package types

// Action type tags recognised by the built-in dispatcher registry.
// The registry is open: hosts may register additional tags at runtime.
const (
	ActionLaunchApp = "LaunchApp"
	ActionOpen      = "Open"
	ActionTerminal  = "Terminal"
	ActionSystem    = "System"
)

// ActionResult is the normalized outcome of one handler execution.
// Handlers never let a failure escape as a panic or error across the
// dispatch boundary; everything is folded into this value.
type ActionResult struct {
	Success bool   `yaml:"success" json:"success"`
	Message string `yaml:"message" json:"message"`
}

// OKResult builds a successful result.
func OKResult(message string) ActionResult {
	return ActionResult{Success: true, Message: message}
}

// FailResult builds a failed result.
func FailResult(message string) ActionResult {
	return ActionResult{Success: false, Message: message}
}
