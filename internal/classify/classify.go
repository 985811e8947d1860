package classify

import (
	"context"
	"errors"
	"strings"

	"smartsort/internal/services"
	"smartsort/internal/textutil"
)

// DefaultFallbackCategory is used when a file cannot be classified.
const DefaultFallbackCategory = "Misc"

// Result holds the suggestions produced for one file.
type Result struct {
	Category      string
	SuggestedName string
	Keywords      textutil.KeywordSet
}

// Classifier produces a category, keyword set, and suggested name for a file name.
type Classifier interface {
	Classify(ctx context.Context, filename string) (Result, error)
}

// Completer sends a system/user prompt pair and returns the model's reply.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Fallback returns the substitute result used when classification fails: the
// fallback category, the original file name, and no keywords.
func Fallback(filename, category string) Result {
	if strings.TrimSpace(category) == "" {
		category = DefaultFallbackCategory
	}
	return Result{
		Category:      category,
		SuggestedName: filename,
		Keywords:      textutil.NewKeywordSet(),
	}
}

// callMarker picks the error marker for a failed collaborator call.
func callMarker(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return services.ErrTimeout
	}
	return services.ErrExternalTool
}
