package actions

import (
	"os"
	"regexp"
)

var percentVar = regexp.MustCompile(`%([A-Za-z_][A-Za-z0-9_]*)%`)

// ExpandVars substitutes environment variables in both %VAR% and
// $VAR/${VAR} notation. Unset variables expand to the empty string.
func ExpandVars(s string) string {
	s = percentVar.ReplaceAllStringFunc(s, func(m string) string {
		return os.Getenv(m[1 : len(m)-1])
	})
	return os.Expand(s, os.Getenv)
}
