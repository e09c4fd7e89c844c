package ingest

import (
	"path/filepath"
	"strings"

	"github.com/qdeck/qdeck/pkg/types"
)

// interpreters maps script extensions to the interpreter that runs them.
// Scripts become launch buttons invoking the interpreter with the script
// as its argument.
var interpreters = map[string]string{
	".ps1": "powershell",
	".py":  "python",
	".js":  "node",
	".rb":  "ruby",
	".sh":  "sh",
}

// executableExts are launched directly. Extensionless files open instead
// of launching; there is no way to tell a binary from a data file by name.
var executableExts = map[string]bool{
	".exe":      true,
	".bat":      true,
	".cmd":      true,
	".com":      true,
	".appimage": true,
	".desktop":  true,
	".app":      true,
}

// iconHints gives dropped buttons a quick visual identity until the user
// picks a real icon.
var iconHints = map[string]string{
	".exe": "🚀",
	".bat": "⚙️",
	".cmd": "⚙️",
	".ps1": "📜",
	".py":  "🐍",
	".js":  "📜",
	".rb":  "📜",
	".sh":  "📜",
	".txt": "📄",
	".md":  "📄",
	".pdf": "📕",
	".png": "🖼️",
	".jpg": "🖼️",
	".gif": "🖼️",
	".mp3": "🎵",
	".mp4": "🎬",
	".zip": "📦",
}

const maxLabelRunes = 20

// ButtonForPath classifies one dropped path into a grid button.
// Executables launch, known scripts launch through their interpreter, and
// everything else opens with the platform default application.
func ButtonForPath(path string) types.Button {
	ext := strings.ToLower(filepath.Ext(path))
	label := CleanLabel(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))

	b := types.Button{
		Label: label,
		Icon:  iconHints[ext],
	}

	switch {
	case executableExts[ext]:
		b.ActionType = types.ActionLaunchApp
		b.Config = map[string]interface{}{"path": path}
	case interpreters[ext] != "":
		b.ActionType = types.ActionLaunchApp
		b.Config = map[string]interface{}{
			"path": interpreters[ext],
			"args": []string{path},
		}
	default:
		b.ActionType = types.ActionOpen
		b.Config = map[string]interface{}{"target": path}
	}
	return b
}

// CleanLabel turns a file stem into a display label. A stem that is
// already a single clean word is kept verbatim; stems with separators
// have them turned into spaces and the words title cased. Either way the
// result is capped at twenty runes with an ellipsis.
func CleanLabel(stem string) string {
	if !strings.ContainsAny(stem, "_-. ") {
		return truncateLabel(stem)
	}

	s := strings.NewReplacer("_", " ", "-", " ", ".", " ").Replace(stem)
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		if len(r) > 0 {
			words[i] = strings.ToUpper(string(r[0])) + string(r[1:])
		}
	}
	return truncateLabel(strings.Join(words, " "))
}

func truncateLabel(label string) string {
	runes := []rune(label)
	if len(runes) > maxLabelRunes {
		return string(runes[:maxLabelRunes-1]) + "…"
	}
	return label
}
