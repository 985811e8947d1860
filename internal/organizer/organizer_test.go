package organizer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"smartsort/internal/classify"
	"smartsort/internal/journal"
	"smartsort/internal/services"
	"smartsort/internal/testsupport"
	"smartsort/internal/textutil"
)

type fakeClassifier struct {
	results map[string]classify.Result
	fail    map[string]error
	calls   []string
}

func (f *fakeClassifier) Classify(_ context.Context, filename string) (classify.Result, error) {
	f.calls = append(f.calls, filename)
	if err, ok := f.fail[filename]; ok {
		return classify.Result{}, err
	}
	if res, ok := f.results[filename]; ok {
		return res, nil
	}
	stem, _ := textutil.SplitExt(filename)
	return classify.Result{Category: "Other", SuggestedName: filename, Keywords: textutil.NewKeywordSet(stem)}, nil
}

type fakeNamer struct {
	name string
	err  error
}

func (f fakeNamer) NameGroup(context.Context, []string) (string, error) {
	return f.name, f.err
}

func result(category, name string, keywords ...string) classify.Result {
	return classify.Result{Category: category, SuggestedName: name, Keywords: textutil.NewKeywordSet(keywords...)}
}

type decisionLog struct {
	decisions []Decision
}

func (l *decisionLog) Decision(d Decision) {
	l.decisions = append(l.decisions, d)
}

func newTestOrganizer(source, target string, dryRun bool, deps Dependencies) *Organizer {
	if deps.NewRunID == nil {
		deps.NewRunID = func() string { return "run-test" }
	}
	return New(Options{
		SourceDir:           source,
		TargetDir:           target,
		DryRun:              dryRun,
		ExcludeDirs:         []string{".git"},
		SimilarityThreshold: 0.30,
		FallbackCategory:    "Misc",
	}, deps)
}

func TestRunClassificationTimeoutFallsBackToMisc(t *testing.T) {
	base := t.TempDir()
	source := filepath.Join(base, "src")
	target := filepath.Join(base, "out")

	var names []string
	for i := 0; i < 10; i++ {
		names = append(names, fmt.Sprintf("file%02d.txt", i))
	}
	testsupport.WriteTree(t, source, names...)

	fake := &fakeClassifier{
		results: map[string]classify.Result{},
		fail: map[string]error{
			"file07.txt": services.Wrap(services.ErrTimeout, "classify", "complete", "file07.txt", context.DeadlineExceeded),
		},
	}
	for _, name := range names {
		fake.results[name] = result("Docs", name, "text", "notes")
	}

	stats, err := newTestOrganizer(source, target, false, Dependencies{Classifier: fake}).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Processed != 10 || stats.Moved != 10 || stats.Errors != 0 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if stats.ClassificationFailures != 1 {
		t.Fatalf("classification failures = %d", stats.ClassificationFailures)
	}
	if _, err := os.Stat(filepath.Join(target, "Misc", "file07.txt")); err != nil {
		t.Fatalf("expected fallback file under Misc: %v", err)
	}
	if _, err := os.Stat(filepath.Join(target, "Docs", "file00.txt")); err != nil {
		t.Fatalf("expected classified file under Docs: %v", err)
	}
	if _, err := os.Stat(filepath.Join(source, "file07.txt")); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected source emptied, got %v", err)
	}
}

func TestRunMergesSimilarCategoriesAndResolvesCollisions(t *testing.T) {
	base := t.TempDir()
	source := filepath.Join(base, "src")
	target := filepath.Join(base, "out")
	testsupport.WriteTree(t, source, "a/hero.blend", "b/level.unity", "c/site.html", "d/draft-one.txt", "e/draft-two.txt")

	fake := &fakeClassifier{results: map[string]classify.Result{
		"hero.blend":    result("3DArt", "hero.blend", "3d", "render", "character"),
		"level.unity":   result("GameDev", "level.unity", "3d", "render", "game"),
		"site.html":     result("WebDesign", "site.html", "ui", "design", "web"),
		"draft-one.txt": result("Documents", "draft.txt", "draft"),
		"draft-two.txt": result("Documents", "draft.txt", "draft"),
	}}
	log := &decisionLog{}
	org := newTestOrganizer(source, target, false, Dependencies{
		Classifier: fake,
		Namer:      fakeNamer{name: "Creative Work"},
		Reporter:   log,
	})

	stats, err := org.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Groups != 3 || stats.Moved != 5 || stats.Errors != 0 || stats.NamingFallbacks != 0 {
		t.Fatalf("unexpected stats %+v", stats)
	}

	for _, rel := range []string{
		"Creative Work/hero.blend",
		"Creative Work/level.unity",
		"WebDesign/site.html",
		"Documents/draft.txt",
		"Documents/draft_1.txt",
	} {
		if _, err := os.Stat(filepath.Join(target, filepath.FromSlash(rel))); err != nil {
			t.Fatalf("expected %s: %v", rel, err)
		}
	}
	if len(log.decisions) != 5 {
		t.Fatalf("expected 5 reported decisions, got %d", len(log.decisions))
	}
	for i, d := range log.decisions {
		if d.Seq != i+1 || d.Outcome != journal.OutcomeMoved {
			t.Fatalf("unexpected decision %+v", d)
		}
	}
}

func TestRunDryRunMatchesRealRun(t *testing.T) {
	layout := []string{"x/report.pdf", "y/report.pdf", "photo.jpg", "clip.mp4", ".git/HEAD"}
	classifier := func() *fakeClassifier {
		return &fakeClassifier{results: map[string]classify.Result{
			"report.pdf": result("Finance", "tax_report.pdf", "tax", "invoice"),
			"photo.jpg":  result("Photos", "beach.jpg", "image", "camera"),
			"clip.mp4":   result("Video", "beach_clip.mp4", "video", "camera", "image"),
		}}
	}

	type row struct{ category, group, dest string }
	runOnce := func(dryRun bool) ([]row, Stats, string, string) {
		base := t.TempDir()
		source := filepath.Join(base, "src")
		target := filepath.Join(base, "out")
		testsupport.WriteTree(t, source, layout...)
		log := &decisionLog{}
		stats, err := newTestOrganizer(source, target, dryRun, Dependencies{
			Classifier: classifier(),
			Namer:      fakeNamer{err: errors.New("naming offline")},
			Reporter:   log,
		}).Run(context.Background())
		if err != nil {
			t.Fatalf("Run(dry=%v): %v", dryRun, err)
		}
		var rows []row
		for _, d := range log.decisions {
			rel, _ := filepath.Rel(target, d.Destination)
			rows = append(rows, row{d.RawCategory, d.Group, rel})
		}
		return rows, stats, source, target
	}

	dryRows, dryStats, drySource, dryTarget := runOnce(true)
	realRows, realStats, _, _ := runOnce(false)

	if !reflect.DeepEqual(dryRows, realRows) {
		t.Fatalf("decisions differ:\ndry  %v\nreal %v", dryRows, realRows)
	}
	if dryStats.Moved != 0 || realStats.Moved != 4 {
		t.Fatalf("moved dry=%d real=%d", dryStats.Moved, realStats.Moved)
	}
	if dryStats.Processed != 4 || realStats.Processed != 4 {
		t.Fatalf("processed dry=%d real=%d", dryStats.Processed, realStats.Processed)
	}
	if dryStats.NamingFallbacks != 1 {
		t.Fatalf("expected one naming fallback, got %d", dryStats.NamingFallbacks)
	}
	if _, err := os.Stat(dryTarget); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("dry run must not create the target, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(drySource, "x", "report.pdf")); err != nil {
		t.Fatalf("dry run must leave sources in place: %v", err)
	}
	// Walk order is clip.mp4, photo.jpg, x/report.pdf, y/report.pdf, so Video
	// seeds the first cluster and names it when the namer is offline.
	want := []row{
		{"Video", "Video", filepath.Join("Video", "beach_clip.mp4")},
		{"Photos", "Video", filepath.Join("Video", "beach.jpg")},
		{"Finance", "Finance", filepath.Join("Finance", "tax_report.pdf")},
		{"Finance", "Finance", filepath.Join("Finance", "tax_report_1.pdf")},
	}
	if !reflect.DeepEqual(dryRows, want) {
		t.Fatalf("dry rows = %v, want %v", dryRows, want)
	}
}

func TestRunMoveFailureIsCountedAndFileStays(t *testing.T) {
	base := t.TempDir()
	source := filepath.Join(base, "src")
	target := filepath.Join(base, "out")
	paths := testsupport.WriteTree(t, source, "a.txt", "b.txt", "c.txt")

	mover := MoveFunc(func(src, dst string) error {
		if filepath.Base(src) == "b.txt" {
			return fs.ErrPermission
		}
		return FileMover.Move(src, dst)
	})
	log := &decisionLog{}
	stats, err := newTestOrganizer(source, target, false, Dependencies{
		Classifier: &fakeClassifier{},
		Mover:      mover,
		Reporter:   log,
	}).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Processed != 3 || stats.Moved != 2 || stats.Errors != 1 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if _, err := os.Stat(paths[1]); err != nil {
		t.Fatalf("failed file should remain at source: %v", err)
	}
	var failed int
	for _, d := range log.decisions {
		if d.Outcome == journal.OutcomeFailed {
			failed++
			if !errors.Is(d.Err, fs.ErrPermission) {
				t.Fatalf("expected permission error, got %v", d.Err)
			}
		}
	}
	if failed != 1 {
		t.Fatalf("expected one failed decision, got %d", failed)
	}
}

func TestRunTargetCreationFailureIsFatal(t *testing.T) {
	base := t.TempDir()
	source := filepath.Join(base, "src")
	testsupport.WriteTree(t, source, "a.txt")
	blocker := filepath.Join(base, "blocker")
	testsupport.WriteFile(t, blocker, 1)

	_, err := newTestOrganizer(source, filepath.Join(blocker, "out"), false, Dependencies{Classifier: &fakeClassifier{}}).Run(context.Background())
	if err == nil {
		t.Fatal("expected fatal error")
	}
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration marker, got %v", err)
	}
}

func TestRunMissingSourceIsFatal(t *testing.T) {
	base := t.TempDir()
	_, err := newTestOrganizer(filepath.Join(base, "missing"), filepath.Join(base, "out"), true, Dependencies{Classifier: &fakeClassifier{}}).Run(context.Background())
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRunLockContention(t *testing.T) {
	base := t.TempDir()
	source := filepath.Join(base, "src")
	testsupport.WriteTree(t, source, "a.txt")
	lockPath := filepath.Join(base, "state", "smartsort.lock")

	held, err := AcquireLock(lockPath)
	if err != nil {
		t.Fatalf("AcquireLock: %v", err)
	}
	defer held.Release()

	opts := Options{SourceDir: source, TargetDir: filepath.Join(base, "out"), LockPath: lockPath}
	if _, err := New(opts, Dependencies{Classifier: &fakeClassifier{}}).Run(context.Background()); !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}

	opts.DryRun = true
	if _, err := New(opts, Dependencies{Classifier: &fakeClassifier{}}).Run(context.Background()); err != nil {
		t.Fatalf("dry run should not need the lock: %v", err)
	}
}

func TestRunSkipsTargetNestedInSource(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithTargetInsideSource())
	source := cfg.Organize.SourceDir
	target := cfg.Organize.TargetDir
	testsupport.WriteTree(t, source, "new.txt")
	testsupport.WriteTree(t, target, "Docs/old.txt")

	fake := &fakeClassifier{}
	opts := OptionsFromConfig(cfg)
	stats, err := New(opts, Dependencies{Classifier: fake}).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Processed != 1 || !reflect.DeepEqual(fake.calls, []string{"new.txt"}) {
		t.Fatalf("expected only new.txt to be processed, got %+v calls=%v", stats, fake.calls)
	}
	if _, err := os.Stat(filepath.Join(target, "Docs", "old.txt")); err != nil {
		t.Fatalf("existing organized file disturbed: %v", err)
	}
}

func TestRunRecordsJournal(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenJournal(t, cfg)
	testsupport.WriteTree(t, cfg.Organize.SourceDir, "a.txt", "b.txt")

	classifier := &fakeClassifier{fail: map[string]error{"b.txt": services.Wrap(services.ErrMalformedResponse, "classify", "parse", "b.txt", nil)}}
	opts := OptionsFromConfig(cfg)
	opts.DryRun = true
	stats, err := New(opts, Dependencies{Classifier: classifier, Journal: store}).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	run, err := store.GetRun(context.Background(), stats.RunID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if run.Status != journal.StatusCompleted || !run.DryRun || run.Processed != 2 || run.ClassificationFailures != 1 {
		t.Fatalf("unexpected journal run %+v", run)
	}
	decisions, err := store.Decisions(context.Background(), stats.RunID)
	if err != nil {
		t.Fatalf("Decisions: %v", err)
	}
	if len(decisions) != 2 {
		t.Fatalf("expected 2 decisions, got %d", len(decisions))
	}
	for _, d := range decisions {
		if d.Outcome != journal.OutcomePlanned || !strings.HasPrefix(d.Destination, cfg.Organize.TargetDir) {
			t.Fatalf("unexpected decision %+v", d)
		}
	}
}

func TestRunRequiresClassifier(t *testing.T) {
	if _, err := New(Options{}, Dependencies{}).Run(context.Background()); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
