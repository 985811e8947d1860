// Package textutil provides text processing utilities for keyword sets,
// set similarity, and path-component sanitization.
//
// The primary use cases are:
//   - Building keyword sets from classifier output
//   - Computing Jaccard similarity between keyword sets
//   - Sanitizing category and file names for safe filesystem use
//
// Keyword sets are plain string sets. Similarity between two empty sets is
// defined as 0 so callers never need to guard against an empty union.
package textutil
