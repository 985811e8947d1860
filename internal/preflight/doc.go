// Package preflight provides readiness checks for the filesystem paths and the
// LLM endpoint an organization run depends on.
//
// The CLI "smartsort check" command runs RunAll and prints the results as a
// table. Checks never modify anything: a target directory that does not exist
// yet passes when its nearest existing parent is writable, since a real run
// creates it.
package preflight
