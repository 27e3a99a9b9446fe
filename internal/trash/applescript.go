package trash

import (
	"strings"
)

// ProtectedMarker prefixes paths the privileged script could not remove
const ProtectedMarker = "PROTECTED:"

// FinderScript asks Finder to move all paths to the Trash in one call
func FinderScript(paths []string) string {
	files := make([]string, len(paths))
	for i, p := range paths {
		files[i] = "POSIX file " + appleScriptString(p)
	}
	return "tell application \"Finder\"\n" +
		"\tmove {" + strings.Join(files, ", ") + "} to trash\n" +
		"end tell"
}

// AdminShellCommand moves each path into trashDir, falls back to a forced
// delete, and prints a marker line for anything that survives both.
func AdminShellCommand(paths []string, trashDir string) string {
	quoted := make([]string, len(paths))
	for i, p := range paths {
		quoted[i] = shellQuote(p)
	}
	return "for f in " + strings.Join(quoted, " ") + "; do " +
		"mv \"$f\" " + shellQuote(trashDir+"/") + " 2>/dev/null || " +
		"rm -rf \"$f\" 2>/dev/null || " +
		"echo \"" + ProtectedMarker + "$f\"; done"
}

// AdminScript wraps AdminShellCommand in a privileged do shell script
func AdminScript(paths []string, trashDir string) string {
	return "do shell script " + appleScriptString(AdminShellCommand(paths, trashDir)) +
		" with administrator privileges without altering line endings"
}

// ParseProtected extracts marked paths from the privileged script's output
func ParseProtected(output string) []string {
	var protected []string
	lines := strings.FieldsFunc(output, func(r rune) bool { return r == '\n' || r == '\r' })
	for _, line := range lines {
		if strings.HasPrefix(line, ProtectedMarker) {
			protected = append(protected, strings.TrimPrefix(line, ProtectedMarker))
		}
	}
	return protected
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func appleScriptString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
