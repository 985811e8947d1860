// Package main hosts the smartsort CLI entrypoint and command graph.
//
// Running the root command performs an organization pass: files under the
// source directory are classified by the LLM, similar categories are merged,
// and each file is moved into <target>/<group>/<name>. Subcommands expose the
// run journal (history), readiness checks (check), and configuration
// scaffolding (config).
//
// Keep this package lean: the grouping, resolution, and move logic lives in
// internal/organizer and its collaborators. Commands here only resolve
// configuration, wire dependencies, and render output.
package main
