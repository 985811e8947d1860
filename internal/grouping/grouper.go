package grouping

import (
	"log/slog"

	"smartsort/internal/logging"
	"smartsort/internal/textutil"
)

// DefaultThreshold is the similarity a category must exceed to join a seed.
const DefaultThreshold = 0.30

// Cluster is a set of raw categories grouped together, with their files.
// Categories[0] is the seed.
type Cluster struct {
	Categories []string
	Members    []Member
}

// Grouper clusters raw categories by keyword similarity.
type Grouper struct {
	threshold float64
	logger    *slog.Logger
}

// NewGrouper returns a Grouper using the given threshold. Values outside
// [0,1] fall back to DefaultThreshold.
func NewGrouper(threshold float64, logger *slog.Logger) *Grouper {
	if threshold < 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	return &Grouper{
		threshold: threshold,
		logger:    logging.NewComponentLogger(logger, "grouper"),
	}
}

// Threshold reports the configured similarity threshold.
func (g *Grouper) Threshold() float64 {
	return g.threshold
}

// Partition splits categories into clusters. Categories are visited in the
// given order; each unprocessed category seeds a cluster and pulls in every
// later unprocessed category whose similarity with the seed is strictly
// greater than the threshold. Similarity to non-seed members is not
// considered.
func (g *Grouper) Partition(categories []string, profiles map[string]textutil.KeywordSet) [][]string {
	processed := make(map[string]bool, len(categories))
	var clusters [][]string

	for i, seed := range categories {
		if processed[seed] {
			continue
		}
		processed[seed] = true
		cluster := []string{seed}

		for _, other := range categories[i+1:] {
			if processed[other] {
				continue
			}
			if textutil.Jaccard(profiles[seed], profiles[other]) > g.threshold {
				processed[other] = true
				cluster = append(cluster, other)
			}
		}
		clusters = append(clusters, cluster)
	}
	return clusters
}

// Group clusters the categories held by store and attaches their files.
// Members are ordered by category within the cluster, then by arrival.
func (g *Grouper) Group(store *Store) []Cluster {
	if store == nil || store.Len() == 0 {
		return nil
	}
	partition := g.Partition(store.Categories(), store.Profiles())
	clusters := make([]Cluster, 0, len(partition))
	for _, cats := range partition {
		cluster := Cluster{Categories: cats}
		for _, cat := range cats {
			cluster.Members = append(cluster.Members, store.MembersOf(cat)...)
		}
		if len(cats) > 1 {
			g.logger.Debug("categories merged",
				logging.Strings("categories", cats),
				logging.Int("files", len(cluster.Members)),
			)
		}
		clusters = append(clusters, cluster)
	}
	g.logger.Info("categories consolidated",
		logging.Int("categories", len(store.order)),
		logging.Int("clusters", len(clusters)),
		logging.Float64("threshold", g.threshold),
	)
	return clusters
}
