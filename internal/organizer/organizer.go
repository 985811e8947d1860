package organizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"smartsort/internal/classify"
	"smartsort/internal/config"
	"smartsort/internal/discovery"
	"smartsort/internal/grouping"
	"smartsort/internal/journal"
	"smartsort/internal/logging"
	"smartsort/internal/services"
)

const (
	phaseCollect     = "collect"
	phaseConsolidate = "consolidate"
	phaseMove        = "move"
)

// Recorder persists run history. *journal.Store satisfies it.
type Recorder interface {
	BeginRun(ctx context.Context, run journal.Run) error
	RecordDecision(ctx context.Context, d journal.Decision) error
	FinishRun(ctx context.Context, run journal.Run) error
}

// Options controls one organization run.
type Options struct {
	SourceDir           string
	TargetDir           string
	DryRun              bool
	ExcludeDirs         []string
	SimilarityThreshold float64
	FallbackCategory    string
	// LockPath enables the run lock for real runs when set.
	LockPath string
}

// OptionsFromConfig builds run options from configuration defaults.
func OptionsFromConfig(cfg *config.Config) Options {
	if cfg == nil {
		return Options{}
	}
	return Options{
		SourceDir:           cfg.Organize.SourceDir,
		TargetDir:           cfg.Organize.TargetDir,
		ExcludeDirs:         append([]string(nil), cfg.Organize.ExcludeDirs...),
		SimilarityThreshold: cfg.Organize.SimilarityThreshold,
		FallbackCategory:    cfg.Organize.FallbackCategory,
		LockPath:            cfg.LockPath(),
	}
}

// Dependencies are the collaborators used by a run. Classifier is required;
// every other field has a usable zero value.
type Dependencies struct {
	Classifier classify.Classifier
	Namer      grouping.Namer
	Mover      Mover
	Journal    Recorder
	Reporter   Reporter
	Logger     *slog.Logger
	NewRunID   func() string
}

// Stats summarizes a run. Errors counts files whose destination could not be
// resolved or whose move failed. Classification faults are tracked separately
// in ClassificationFailures because those files are still organized.
type Stats struct {
	RunID                  string
	DryRun                 bool
	Processed              int
	Moved                  int
	Errors                 int
	ClassificationFailures int
	NamingFallbacks        int
	Groups                 int
	Duration               time.Duration
}

// Organizer drives organization runs.
type Organizer struct {
	opts   Options
	deps   Dependencies
	logger *slog.Logger
}

// New constructs an Organizer.
func New(opts Options, deps Dependencies) *Organizer {
	if deps.Mover == nil {
		deps.Mover = FileMover
	}
	if deps.NewRunID == nil {
		deps.NewRunID = uuid.NewString
	}
	if strings.TrimSpace(opts.FallbackCategory) == "" {
		opts.FallbackCategory = classify.DefaultFallbackCategory
	}
	return &Organizer{
		opts:   opts,
		deps:   deps,
		logger: logging.NewComponentLogger(deps.Logger, "organizer"),
	}
}

// Run performs one organization pass. Per-file faults are counted in the
// returned Stats; a non-nil error means the run as a whole could not proceed.
func (o *Organizer) Run(ctx context.Context) (Stats, error) {
	started := time.Now()
	stats := Stats{DryRun: o.opts.DryRun}

	if o.deps.Classifier == nil {
		return stats, services.Wrap(services.ErrConfiguration, "organize", "setup", "classifier not configured", nil)
	}
	source, err := absPath(o.opts.SourceDir, ".")
	if err != nil {
		return stats, services.Wrap(services.ErrValidation, "organize", "resolve source", o.opts.SourceDir, err)
	}
	target, err := absPath(o.opts.TargetDir, "organized")
	if err != nil {
		return stats, services.Wrap(services.ErrValidation, "organize", "resolve target", o.opts.TargetDir, err)
	}

	stats.RunID = o.deps.NewRunID()
	ctx = services.WithRunID(ctx, stats.RunID)
	logger := logging.WithContext(ctx, o.logger)
	logger.Info("organization run starting",
		logging.String("source", source),
		logging.String("target", target),
		logging.Bool("dry_run", o.opts.DryRun),
	)

	if !o.opts.DryRun && o.opts.LockPath != "" {
		lock, err := AcquireLock(o.opts.LockPath)
		if err != nil {
			return stats, services.Wrap(services.ErrConfiguration, "organize", "run lock", "cannot start run", err)
		}
		defer func() {
			if err := lock.Release(); err != nil {
				logger.Warn("release run lock failed", logging.Error(err))
			}
		}()
	}

	if !o.opts.DryRun {
		if err := os.MkdirAll(target, 0o755); err != nil {
			return stats, services.Wrap(services.ErrConfiguration, "organize", "create target", target, err)
		}
	}

	run := journal.Run{
		ID:        stats.RunID,
		StartedAt: started,
		SourceDir: source,
		TargetDir: target,
		DryRun:    o.opts.DryRun,
		Status:    journal.StatusRunning,
	}
	if o.deps.Journal != nil {
		if err := o.deps.Journal.BeginRun(ctx, run); err != nil {
			return stats, services.Wrap(services.ErrTransient, "organize", "journal", "record run start", err)
		}
	}

	runErr := o.execute(ctx, source, target, &stats)
	stats.Duration = time.Since(started)
	o.finishJournal(ctx, run, stats, runErr)

	if runErr != nil {
		logger.Error("organization run failed", logging.Error(runErr))
		return stats, runErr
	}
	logger.Info("organization run complete",
		logging.Int("processed", stats.Processed),
		logging.Int("moved", stats.Moved),
		logging.Int("errors", stats.Errors),
		logging.Int("classification_failures", stats.ClassificationFailures),
		logging.Int("naming_fallbacks", stats.NamingFallbacks),
		logging.Int("groups", stats.Groups),
		logging.Duration("duration", stats.Duration),
	)
	return stats, nil
}

func (o *Organizer) execute(ctx context.Context, source, target string, stats *Stats) error {
	store, err := o.collect(services.WithPhase(ctx, phaseCollect), source, target, stats)
	if err != nil {
		return err
	}
	groups := o.consolidate(services.WithPhase(ctx, phaseConsolidate), store, stats)
	o.resolveAndMove(services.WithPhase(ctx, phaseMove), target, groups, stats)
	return nil
}

func (o *Organizer) collect(ctx context.Context, source, target string, stats *Stats) (*grouping.Store, error) {
	logger := logging.WithContext(ctx, o.logger)

	walkOpts := []discovery.Option{
		discovery.WithExcludedNames(o.opts.ExcludeDirs...),
		discovery.WithLogger(o.deps.Logger),
	}
	if isWithin(target, source) {
		walkOpts = append(walkOpts, discovery.WithSkippedRoots(target))
	}
	files, err := discovery.NewWalker(walkOpts...).Walk(source)
	if err != nil {
		return nil, err
	}
	logger.Info("analyzing files", logging.Int("files", len(files)))

	store := grouping.NewStore()
	for _, path := range files {
		stats.Processed++
		name := filepath.Base(path)
		fileCtx := services.WithFile(ctx, path)

		result, err := o.deps.Classifier.Classify(fileCtx, name)
		if err != nil {
			stats.ClassificationFailures++
			result = classify.Fallback(name, o.opts.FallbackCategory)
			logging.WarnWithContext(logging.WithContext(fileCtx, o.logger), "classification failed; using fallback", "classification_fallback",
				logging.String("fault", services.FaultKind(err)),
				logging.String("category", result.Category),
				logging.Error(err),
				logging.String(logging.FieldImpact, "file filed under the fallback category with its original name"),
			)
		} else {
			logging.WithContext(fileCtx, o.logger).Debug("file classified",
				logging.String("category", result.Category),
				logging.String("suggested_name", result.SuggestedName),
				logging.Strings("keywords", result.Keywords.Sorted()),
			)
		}

		store.Add(grouping.Record{
			SourcePath:    path,
			RawCategory:   result.Category,
			SuggestedName: result.SuggestedName,
			Keywords:      result.Keywords,
		})
	}
	return store, nil
}

func (o *Organizer) consolidate(ctx context.Context, store *grouping.Store, stats *Stats) []grouping.MergedGroup {
	logging.WithContext(ctx, o.logger).Info("grouping similar files", logging.Int("categories", len(store.Categories())))

	clusters := grouping.NewGrouper(o.opts.SimilarityThreshold, o.deps.Logger).Group(store)
	named := grouping.NewGroupNamer(o.deps.Namer, o.opts.FallbackCategory, o.deps.Logger).NameAll(ctx, clusters)
	stats.Groups = len(named.Groups)
	stats.NamingFallbacks = named.Fallbacks
	return named.Groups
}

func (o *Organizer) resolveAndMove(ctx context.Context, target string, groups []grouping.MergedGroup, stats *Stats) {
	resolver := NewResolver(target)
	seq := 0
	for _, group := range groups {
		for _, member := range group.Members {
			seq++
			fileCtx := services.WithFile(ctx, member.SourcePath)
			decision := Decision{
				Seq:         seq,
				SourcePath:  member.SourcePath,
				RawCategory: member.RawCategory,
				Group:       group.DisplayName,
			}

			dest, err := resolver.Resolve(group.DisplayName, member.SuggestedName)
			switch {
			case err != nil:
				decision.Err = services.Wrap(services.ErrTransient, phaseMove, "resolve destination", member.SuggestedName, err)
			case o.opts.DryRun:
				decision.Destination = dest
			default:
				decision.Destination = dest
				if moveErr := o.deps.Mover.Move(member.SourcePath, dest); moveErr != nil {
					decision.Err = services.Wrap(services.ErrTransient, phaseMove, "move file", dest, moveErr)
				}
			}

			switch {
			case decision.Err != nil:
				decision.Outcome = journal.OutcomeFailed
				stats.Errors++
				logging.ErrorWithContext(logging.WithContext(fileCtx, o.logger), "move failed; file left in place", "move_failed",
					logging.String("group", group.DisplayName),
					logging.String("destination", decision.Destination),
					logging.Error(decision.Err),
				)
			case o.opts.DryRun:
				decision.Outcome = journal.OutcomePlanned
			default:
				decision.Outcome = journal.OutcomeMoved
				stats.Moved++
			}

			o.record(fileCtx, decision)
		}
	}
}

func (o *Organizer) record(ctx context.Context, d Decision) {
	if o.deps.Reporter != nil {
		o.deps.Reporter.Decision(d)
	}
	if o.deps.Journal == nil {
		return
	}
	runID, _ := services.RunIDFromContext(ctx)
	entry := journal.Decision{
		RunID:       runID,
		Seq:         d.Seq,
		SourcePath:  d.SourcePath,
		RawCategory: d.RawCategory,
		GroupName:   d.Group,
		Destination: d.Destination,
		Outcome:     d.Outcome,
	}
	if d.Err != nil {
		entry.ErrorMessage = d.Err.Error()
	}
	if err := o.deps.Journal.RecordDecision(ctx, entry); err != nil {
		logging.WithContext(ctx, o.logger).Warn("journal decision write failed",
			logging.Error(err),
			logging.String(logging.FieldEventType, "journal_write_failed"),
			logging.String(logging.FieldImpact, "run history is incomplete for this file"),
		)
	}
}

func (o *Organizer) finishJournal(ctx context.Context, run journal.Run, stats Stats, runErr error) {
	if o.deps.Journal == nil {
		return
	}
	run.FinishedAt = run.StartedAt.Add(stats.Duration)
	run.Status = journal.StatusCompleted
	if runErr != nil {
		run.Status = journal.StatusFailed
		run.ErrorMessage = runErr.Error()
	}
	run.Processed = stats.Processed
	run.Moved = stats.Moved
	run.Errors = stats.Errors
	run.ClassificationFailures = stats.ClassificationFailures
	run.NamingFallbacks = stats.NamingFallbacks
	run.Groups = stats.Groups
	if err := o.deps.Journal.FinishRun(ctx, run); err != nil {
		logging.WithContext(ctx, o.logger).Warn("journal run update failed",
			logging.Error(err),
			logging.String(logging.FieldEventType, "journal_write_failed"),
			logging.String(logging.FieldImpact, "run history shows this run as unfinished"),
		)
	}
}

func absPath(value, fallback string) (string, error) {
	if strings.TrimSpace(value) == "" {
		value = fallback
	}
	expanded, err := config.ExpandPath(value)
	if err != nil {
		return "", err
	}
	if expanded == "" {
		return "", errors.New("empty path")
	}
	return expanded, nil
}

// isWithin reports whether path equals root or lies beneath it.
func isWithin(path, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// String renders stats the way the CLI summary line prints them.
func (s Stats) String() string {
	return fmt.Sprintf("processed=%d moved=%d errors=%d", s.Processed, s.Moved, s.Errors)
}
