package grouping

import (
	"context"
	"log/slog"

	"smartsort/internal/logging"
	"smartsort/internal/services"
	"smartsort/internal/textutil"
)

// Namer proposes a single label covering several related categories.
type Namer interface {
	NameGroup(ctx context.Context, categories []string) (string, error)
}

// MergedGroup is a named cluster ready for destination resolution.
type MergedGroup struct {
	Categories  []string
	DisplayName string
	Members     []Member
}

// NamingResult describes how the groups of one run were named.
type NamingResult struct {
	Groups    []MergedGroup
	Fallbacks int
}

// GroupNamer assigns display names to clusters.
type GroupNamer struct {
	namer            Namer
	fallbackCategory string
	logger           *slog.Logger
}

// NewGroupNamer returns a GroupNamer. namer may be nil, in which case every
// multi-category cluster takes its first category's name.
func NewGroupNamer(namer Namer, fallbackCategory string, logger *slog.Logger) *GroupNamer {
	fallback, ok := textutil.SafePathComponent(fallbackCategory)
	if !ok {
		fallback = "Misc"
	}
	return &GroupNamer{
		namer:            namer,
		fallbackCategory: fallback,
		logger:           logging.NewComponentLogger(logger, "namer"),
	}
}

// Name returns the display name for cluster and whether the first-category
// fallback was used.
func (n *GroupNamer) Name(ctx context.Context, cluster Cluster) (string, bool) {
	if len(cluster.Categories) == 0 {
		return n.fallbackCategory, true
	}
	first, ok := textutil.SafePathComponent(cluster.Categories[0])
	if !ok {
		first = n.fallbackCategory
	}
	if len(cluster.Categories) == 1 {
		return first, false
	}
	if n.namer == nil {
		return first, true
	}

	suggested, err := n.namer.NameGroup(ctx, cluster.Categories)
	if err != nil {
		logging.WarnWithContext(logging.WithContext(ctx, n.logger), "group naming failed; using first category", "naming_fallback",
			logging.Strings("categories", cluster.Categories),
			logging.String("fallback", first),
			logging.String("fault", services.FaultKind(err)),
			logging.Error(err),
			logging.String(logging.FieldImpact, "group folder named after its first category"),
		)
		return first, true
	}
	name, ok := textutil.SafePathComponent(suggested)
	if !ok {
		logging.WarnWithContext(logging.WithContext(ctx, n.logger), "group name unusable; using first category", "naming_fallback",
			logging.Strings("categories", cluster.Categories),
			logging.String("suggested", suggested),
			logging.String("fallback", first),
			logging.String(logging.FieldImpact, "group folder named after its first category"),
		)
		return first, true
	}
	return name, false
}

// NameAll names every cluster in order. Clusters that receive the same name
// are merged: the first occurrence keeps its position and later members are
// appended to it.
func (n *GroupNamer) NameAll(ctx context.Context, clusters []Cluster) NamingResult {
	var result NamingResult
	index := make(map[string]int, len(clusters))

	for _, cluster := range clusters {
		name, fellBack := n.Name(ctx, cluster)
		if fellBack {
			result.Fallbacks++
		}
		if i, ok := index[name]; ok {
			group := &result.Groups[i]
			group.Categories = append(group.Categories, cluster.Categories...)
			group.Members = append(group.Members, cluster.Members...)
			n.logger.Debug("groups share a name; merged",
				logging.String("group", name),
				logging.Strings("categories", cluster.Categories),
			)
			continue
		}
		index[name] = len(result.Groups)
		result.Groups = append(result.Groups, MergedGroup{
			Categories:  append([]string(nil), cluster.Categories...),
			DisplayName: name,
			Members:     append([]Member(nil), cluster.Members...),
		})
	}
	return result
}
