package constants

import "strings"

// AllowedExtensions holds the file extensions the batch walker picks up.
// Each file is a normalized OCR document (text items plus optional tables/key-values).
var AllowedExtensions = map[string]struct{}{
	"json": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// Suffixes appended to a document stem for each export kind.
const (
	ParsedJSONSuffix = "_parsed.json"
	SpecsCSVSuffix   = "_specs.csv"
	ParsedXLSXSuffix = "_parsed.xlsx"
)

// IsExportOutput reports whether name looks like a file written by an export
// rather than an OCR document.
func IsExportOutput(name string) bool {
	lower := strings.ToLower(name)
	for _, s := range []string{ParsedJSONSuffix, SpecsCSVSuffix, ParsedXLSXSuffix} {
		if strings.HasSuffix(lower, s) {
			return true
		}
	}
	return false
}
