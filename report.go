package strictjson

import (
	"strconv"
	"strings"

	"github.com/reoring/strictjson/i18n"
)

// ErrorsToString renders a located error collection as human-readable text:
// one group per path, sorted, blank-line separated. Rendering is purely
// presentational and has no effect on decode outcomes.
func ErrorsToString(e Errors) string {
	return renderGroups(Flatten(e), failureLines)
}

// WarningsToString renders a located warning collection the same way.
func WarningsToString(w Warnings) string {
	return renderGroups(Flatten(w), noteLines)
}

func renderGroups[T any](groups []PathGroup[T], render func(T) []string) string {
	var b strings.Builder
	for gi, g := range groups {
		if gi > 0 {
			b.WriteString("\n")
		}
		indent := ""
		if g.Path != "" {
			b.WriteString("At path " + g.Path + "\n")
			indent = "  "
		}
		for _, p := range g.Payloads {
			for _, line := range render(p) {
				b.WriteString(indent + line + "\n")
			}
		}
	}
	return b.String()
}

func failureLines(f Failure) []string {
	switch f.Code {
	case CodeInvalidType:
		lines := []string{i18n.T(f.Code, map[string]string{"expected": f.Expected})}
		return append(lines, valueLines(f.Value)...)
	case CodeRequired:
		return []string{i18n.T(f.Code, map[string]string{"field": f.Field})}
	case CodeMissingIndex:
		return []string{i18n.T(f.Code, map[string]string{"index": strconv.Itoa(f.Index)})}
	case CodeOneOfEmpty:
		return []string{i18n.T(f.Code, nil)}
	case CodeOneOfFailed:
		lines := []string{i18n.T(f.Code, nil)}
		for i, branch := range f.Branches {
			lines = append(lines, "alternative "+strconv.Itoa(i+1)+":")
			for _, sub := range strings.Split(strings.TrimRight(ErrorsToString(branch), "\n"), "\n") {
				lines = append(lines, "  "+sub)
			}
		}
		return lines
	case CodeFailure:
		lines := []string{i18n.T(f.Code, map[string]string{"message": f.Message})}
		return append(lines, valueLines(f.Value)...)
	default:
		// promoted warnings and anything future keep their message and value
		lines := []string{i18n.T(f.Code, map[string]string{"message": f.Message})}
		if f.Code == CodeUnusedValue || f.Code == CodeUnusedField || f.Code == CodeUnusedIndex {
			lines = append(lines, valueLines(f.Value)...)
		}
		return lines
	}
}

func noteLines(n Note) []string {
	switch n.Code {
	case CodeUnusedValue, CodeUnusedField, CodeUnusedIndex:
		lines := []string{i18n.T(n.Code, nil)}
		return append(lines, valueLines(n.Value)...)
	case CodeWarning:
		lines := []string{i18n.T(n.Code, map[string]string{"message": n.Message})}
		return append(lines, valueLines(n.Value)...)
	default:
		return []string{i18n.T(n.Code, map[string]string{"message": n.Message})}
	}
}

// valueLines pretty-prints a JSON value, indented under its headline.
func valueLines(v Value) []string {
	text := v.Indent("", "  ")
	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = "  " + lines[i]
	}
	return lines
}
