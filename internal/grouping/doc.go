// Package grouping consolidates per-file classification records into merged,
// named groups.
//
// A Store collects records for one run and keeps the first-seen order of raw
// categories together with each category's keyword profile (the union of its
// files' keywords). The Grouper then clusters categories in a single pass:
// each unprocessed category in first-seen order seeds a cluster containing
// every other unprocessed category whose Jaccard similarity with the seed is
// strictly above the threshold. Clusters are seed neighborhoods, not connected
// components, so the result depends on visit order and is reproducible for the
// same input order.
//
// GroupNamer labels each cluster. Single-category clusters keep their
// sanitized category; wider clusters ask a Namer and fall back to the first
// category when the Namer fails. Clusters that end up with the same label are
// merged so each destination folder is owned by exactly one group.
//
// Nothing in this package keeps state between runs.
package grouping
