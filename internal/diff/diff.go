// Package diff renders a line-tagged textual diff between a base file
// and its overlay counterpart.
package diff

import (
	"os"
	"strings"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Generate diffs the file at basePath against the file at overlayPath
// and returns display lines: a two-line header naming both paths, a
// blank separator, then one line per diff record prefixed with "-"
// (only in base), "+" (only in overlay), or a space (unchanged), with
// the trailing line end trimmed.
//
// A missing or unreadable file contributes empty content instead of an
// error, so a file absent from base renders as an all-inserted diff.
// Binary (non-UTF-8) content degrades to empty the same way.
func Generate(basePath, overlayPath string) []string {
	baseContent := readText(basePath)
	overlayContent := readText(overlayPath)

	lines := []string{
		"--- " + basePath,
		"+++ " + overlayPath,
		"",
	}

	dmp := diffmatchpatch.New()
	baseRunes, overlayRunes, lineIndex := dmp.DiffLinesToChars(baseContent, overlayContent)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(baseRunes, overlayRunes, false), lineIndex)

	for _, d := range diffs {
		var sign string
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			sign = "-"
		case diffmatchpatch.DiffInsert:
			sign = "+"
		default:
			sign = " "
		}
		for _, line := range splitLines(d.Text) {
			lines = append(lines, sign+line)
		}
	}
	return lines
}

// readText reads path as text. Missing files, read failures, and
// non-UTF-8 content all yield "".
func readText(path string) string {
	data, err := os.ReadFile(path)
	if err != nil || !utf8.Valid(data) {
		return ""
	}
	return string(data)
}

// splitLines splits a diff fragment into lines, dropping the trailing
// line end of each.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
