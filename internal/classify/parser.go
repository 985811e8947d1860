package classify

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"smartsort/internal/services"
	"smartsort/internal/textutil"
)

const (
	labelCategory = "CATEGORY"
	labelKeywords = "KEYWORDS"
	labelNewName  = "NEWNAME"
)

// Response is a parsed classification reply. Empty fields were absent or
// unusable after sanitization.
type Response struct {
	Category string
	Keywords []string
	NewName  string
}

// ResponseError reports a reply that does not follow the labeled-line format.
type ResponseError struct {
	Line   int
	Reason string
	Text   string
}

func (e *ResponseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed response: line %d: %s: %q", e.Line, e.Reason, e.Text)
	}
	return "malformed response: " + e.Reason
}

// Unwrap ties every ResponseError to services.ErrMalformedResponse.
func (e *ResponseError) Unwrap() error {
	return services.ErrMalformedResponse
}

// ParseResponse parses a classification reply of the form
//
//	CATEGORY: Documents
//	KEYWORDS: invoice, tax, 2023
//	NEWNAME: tax_invoice_2023
//
// Labels are case-insensitive and may appear in any order. Blank lines are
// ignored. A line without a label, an unknown label, a repeated label, or a
// reply with no labels at all yields a *ResponseError.
func ParseResponse(reply string) (Response, error) {
	var resp Response
	seen := make(map[string]bool, 3)
	folder := cases.Fold()

	lines := strings.Split(strings.ReplaceAll(reply, "\r\n", "\n"), "\n")
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		idx := strings.Index(line, ":")
		if idx < 0 {
			return Response{}, &ResponseError{Line: i + 1, Reason: "line has no label", Text: line}
		}
		label := strings.ToUpper(strings.TrimSpace(line[:idx]))
		value := strings.TrimSpace(line[idx+1:])

		switch label {
		case labelCategory, labelKeywords, labelNewName:
		default:
			return Response{}, &ResponseError{Line: i + 1, Reason: "unknown label", Text: line}
		}
		if seen[label] {
			return Response{}, &ResponseError{Line: i + 1, Reason: "repeated label", Text: line}
		}
		seen[label] = true

		switch label {
		case labelCategory:
			resp.Category, _ = textutil.SafePathComponent(value)
		case labelNewName:
			resp.NewName, _ = textutil.SafePathComponent(value)
		case labelKeywords:
			resp.Keywords = parseKeywords(value, folder)
		}
	}
	if len(seen) == 0 {
		return Response{}, &ResponseError{Reason: "no labeled fields"}
	}
	return resp, nil
}

func parseKeywords(value string, folder cases.Caser) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, part := range parts {
		word := folder.String(strings.TrimSpace(part))
		if word == "" {
			continue
		}
		if _, ok := seen[word]; ok {
			continue
		}
		seen[word] = struct{}{}
		out = append(out, word)
	}
	return out
}
