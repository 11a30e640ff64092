// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"path/filepath"
	"strconv"
	"strings"
)

// ForNotPDF returns a hint for rejected input files.
func ForNotPDF(name string) string {
	if !strings.HasSuffix(strings.ToLower(name), ".pdf") {
		return format("the file must be a PDF with a .pdf extension")
	}
	return format("the file is named .pdf but its content is not a PDF")
}

// ForDecode returns a hint for documents that fail to parse.
func ForDecode() string {
	return formatHints([]string{
		"the file may be damaged or encrypted",
		"re-save it from a PDF viewer and try again",
	})
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-pdfannotate/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), ".config/go-pdfannotate") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForPageRange returns a hint listing the valid page numbers.
func ForPageRange(pages int) string {
	if pages < 1 {
		return ""
	}
	if pages == 1 {
		return format("the document has a single page")
	}
	return format("valid pages are 1-" + strconv.Itoa(pages))
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
