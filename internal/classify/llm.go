package classify

import (
	"context"
	"errors"
	"strings"
	"time"

	"smartsort/internal/services"
	"smartsort/internal/textutil"
)

// DefaultTimeout caps a single classification or naming call.
const DefaultTimeout = 10 * time.Second

// Option customizes the LLM-backed collaborators.
type Option func(*options)

type options struct {
	timeout          time.Duration
	fallbackCategory string
}

// WithTimeout overrides the hard per-call cap.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithFallbackCategory sets the category used when a reply omits one.
func WithFallbackCategory(category string) Option {
	return func(o *options) {
		if clean, ok := textutil.SafePathComponent(category); ok {
			o.fallbackCategory = clean
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{timeout: DefaultTimeout, fallbackCategory: DefaultFallbackCategory}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// LLMClassifier classifies file names through a chat completion endpoint.
type LLMClassifier struct {
	client Completer
	opts   options
}

// NewLLMClassifier wires a classifier to the supplied completion client.
func NewLLMClassifier(client Completer, opts ...Option) *LLMClassifier {
	return &LLMClassifier{client: client, opts: buildOptions(opts)}
}

// Classify asks the model for a category, keywords, and a new name for
// filename. The model only sees the stem; the original extension is re-attached
// to the suggested name. Fields missing from an otherwise well-formed reply
// fall back individually. Transport faults, timeouts, and malformed replies
// are returned as errors and the caller applies the full fallback.
func (c *LLMClassifier) Classify(ctx context.Context, filename string) (Result, error) {
	if c == nil || c.client == nil {
		return Result{}, services.Wrap(services.ErrConfiguration, "classify", "client", "classifier not configured", nil)
	}
	stem, ext := textutil.SplitExt(filename)
	if strings.TrimSpace(stem) == "" {
		return Result{}, services.Wrap(services.ErrValidation, "classify", "prompt", "empty file name", nil)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.opts.timeout)
	defer cancel()

	reply, err := c.client.Complete(callCtx, classifySystemPrompt, classifyPrompt(stem))
	if err != nil {
		return Result{}, services.Wrap(callMarker(callCtx, err), "classify", "complete", filename, err)
	}
	parsed, err := ParseResponse(reply)
	if err != nil {
		return Result{}, services.Wrap(services.ErrMalformedResponse, "classify", "parse", filename, err)
	}

	result := Result{
		Category:      parsed.Category,
		SuggestedName: filename,
		Keywords:      textutil.NewKeywordSet(parsed.Keywords...),
	}
	if result.Category == "" {
		result.Category = c.opts.fallbackCategory
	}
	if parsed.NewName != "" {
		result.SuggestedName = parsed.NewName + ext
	}
	return result, nil
}

// LLMNamer asks the model for a label covering several related categories.
type LLMNamer struct {
	client Completer
	opts   options
}

// NewLLMNamer wires a namer to the supplied completion client.
func NewLLMNamer(client Completer, opts ...Option) *LLMNamer {
	return &LLMNamer{client: client, opts: buildOptions(opts)}
}

// NameGroup returns the first non-blank line of the model's reply. The value
// is not sanitized here.
func (n *LLMNamer) NameGroup(ctx context.Context, categories []string) (string, error) {
	if n == nil || n.client == nil {
		return "", services.Wrap(services.ErrConfiguration, "name", "client", "namer not configured", nil)
	}
	if len(categories) == 0 {
		return "", services.Wrap(services.ErrValidation, "name", "prompt", "no categories", nil)
	}

	callCtx, cancel := context.WithTimeout(ctx, n.opts.timeout)
	defer cancel()

	reply, err := n.client.Complete(callCtx, nameSystemPrompt, namePrompt(categories))
	if err != nil {
		return "", services.Wrap(callMarker(callCtx, err), "name", "complete", strings.Join(categories, ", "), err)
	}
	for _, line := range strings.Split(reply, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed, nil
		}
	}
	return "", services.Wrap(services.ErrMalformedResponse, "name", "parse", "empty reply", errors.New("no name in reply"))
}
