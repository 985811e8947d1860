package textutil

import "strings"

// pathComponentReplacer removes characters that are illegal in a path component
// on at least one supported platform.
var pathComponentReplacer = strings.NewReplacer(
	"<", "",
	">", "",
	":", "",
	"\"", "",
	"/", "",
	"\\", "",
	"|", "",
	"?", "",
	"*", "",
)

// SanitizePathComponent strips the characters <>:"/\|?* from value and trims
// surrounding whitespace. No other transformation is applied.
func SanitizePathComponent(value string) string {
	return strings.TrimSpace(pathComponentReplacer.Replace(value))
}

// SafePathComponent sanitizes value and reports whether the result can be used
// as a single directory or file name. Empty results and the relative markers
// "." and ".." are rejected.
func SafePathComponent(value string) (string, bool) {
	clean := SanitizePathComponent(value)
	switch clean {
	case "", ".", "..":
		return "", false
	}
	return clean, true
}

// SplitExt splits a file name into stem and extension. Leading dots belong to
// the stem, so ".env" has no extension.
func SplitExt(name string) (string, string) {
	lead := len(name) - len(strings.TrimLeft(name, "."))
	idx := strings.LastIndex(name[lead:], ".")
	if idx <= 0 {
		return name, ""
	}
	idx += lead
	return name[:idx], name[idx:]
}
