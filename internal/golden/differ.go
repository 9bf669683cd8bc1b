package golden

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Diff returns a readable report of the differences between expected and
// actual, or "" when they are equal.
func Diff(expected, actual string) string {
	if expected == actual {
		return ""
	}

	var b strings.Builder
	b.WriteString("--- Expected ---\n")
	writeNumbered(&b, expected)
	b.WriteString("\n--- Actual ---\n")
	writeNumbered(&b, actual)
	b.WriteString("\n--- Diff ---\n")

	dmp := diffmatchpatch.New()
	a, e, lines := dmp.DiffLinesToChars(expected, actual)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, e, false), lines)
	for _, d := range dmp.DiffCleanupSemantic(diffs) {
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			line = strings.TrimSuffix(line, "\n")
			switch d.Type {
			case diffmatchpatch.DiffDelete:
				fmt.Fprintf(&b, "- %s\n", line)
			case diffmatchpatch.DiffInsert:
				fmt.Fprintf(&b, "+ %s\n", line)
			case diffmatchpatch.DiffEqual:
				fmt.Fprintf(&b, "  %s\n", line)
			}
		}
	}
	return b.String()
}

func writeNumbered(b *strings.Builder, content string) {
	for i, line := range strings.Split(content, "\n") {
		fmt.Fprintf(b, "%4d| %s\n", i+1, line)
	}
}
