// Package discovery enumerates the files an organization run will handle.
//
// The walk is recursive and returns regular files sorted lexicographically so
// repeated runs over the same tree visit files in the same order. Directories
// whose name matches a configured exclusion (for example .git) are pruned, as
// are any extra roots the caller asks to skip, such as a target directory that
// lives inside the source tree.
package discovery
