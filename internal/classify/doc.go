// Package classify turns file names into category, keyword, and rename
// suggestions, and asks for a shared label when several categories are merged.
//
// Both collaborators are reached through the Completer interface, which the
// services/llm client satisfies. Replies are parsed strictly: a classification
// reply is a small set of labeled lines (CATEGORY, KEYWORDS, NEWNAME) and
// anything else is reported as a ResponseError so callers can apply their
// fallback instead of guessing at fields.
//
// Every call runs under a hard per-call timeout. There is no retry loop at
// this layer; the underlying client decides whether to retry.
package classify
