package grouping

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

type fakeNamer struct {
	name  string
	err   error
	calls [][]string
}

func (f *fakeNamer) NameGroup(_ context.Context, categories []string) (string, error) {
	f.calls = append(f.calls, append([]string(nil), categories...))
	return f.name, f.err
}

func TestGroupNamerSingleCategorySkipsNamer(t *testing.T) {
	fake := &fakeNamer{name: "ignored"}
	namer := NewGroupNamer(fake, "Misc", nil)

	name, fellBack := namer.Name(context.Background(), Cluster{Categories: []string{"Docs"}})
	if name != "Docs" || fellBack {
		t.Fatalf("got %q fallback=%v", name, fellBack)
	}
	if len(fake.calls) != 0 {
		t.Fatalf("namer should not be called for single-category clusters, got %v", fake.calls)
	}
}

func TestGroupNamerSanitizesSingleCategory(t *testing.T) {
	namer := NewGroupNamer(nil, "Misc", nil)
	name, _ := namer.Name(context.Background(), Cluster{Categories: []string{"Web/Dev: Assets"}})
	if name != "WebDev Assets" {
		t.Fatalf("name = %q", name)
	}
}

func TestGroupNamerMultiCategory(t *testing.T) {
	tests := []struct {
		name         string
		namer        *fakeNamer
		want         string
		wantFallback bool
	}{
		{name: "suggestion used", namer: &fakeNamer{name: "Creative"}, want: "Creative"},
		{name: "suggestion sanitized", namer: &fakeNamer{name: "Art/3D*"}, want: "Art3D"},
		{name: "error falls back", namer: &fakeNamer{err: errors.New("timeout")}, want: "3DArt", wantFallback: true},
		{name: "unusable suggestion falls back", namer: &fakeNamer{name: "??"}, want: "3DArt", wantFallback: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			namer := NewGroupNamer(tt.namer, "Misc", nil)
			got, fellBack := namer.Name(context.Background(), Cluster{Categories: []string{"3DArt", "GameDev"}})
			if got != tt.want || fellBack != tt.wantFallback {
				t.Fatalf("got %q fallback=%v, want %q fallback=%v", got, fellBack, tt.want, tt.wantFallback)
			}
			if !reflect.DeepEqual(tt.namer.calls, [][]string{{"3DArt", "GameDev"}}) {
				t.Fatalf("namer calls = %v", tt.namer.calls)
			}
		})
	}
}

func TestNameAllMergesSameNamedGroups(t *testing.T) {
	clusters := []Cluster{
		{Categories: []string{"Media"}, Members: []Member{{SourcePath: "1"}}},
		{Categories: []string{"Docs"}, Members: []Member{{SourcePath: "2"}}},
		{Categories: []string{"Photos", "Video"}, Members: []Member{{SourcePath: "3"}, {SourcePath: "4"}}},
	}
	namer := NewGroupNamer(&fakeNamer{name: "Media"}, "Misc", nil)

	result := namer.NameAll(context.Background(), clusters)
	if len(result.Groups) != 2 {
		t.Fatalf("expected 2 groups, got %+v", result.Groups)
	}
	media := result.Groups[0]
	if media.DisplayName != "Media" || !reflect.DeepEqual(media.Categories, []string{"Media", "Photos", "Video"}) {
		t.Fatalf("unexpected merged group %+v", media)
	}
	if len(media.Members) != 3 || media.Members[2].SourcePath != "4" {
		t.Fatalf("unexpected merged members %+v", media.Members)
	}
	if result.Groups[1].DisplayName != "Docs" {
		t.Fatalf("expected Docs second, got %+v", result.Groups[1])
	}
	if result.Fallbacks != 0 {
		t.Fatalf("fallbacks = %d", result.Fallbacks)
	}
}

func TestNameAllCountsFallbacks(t *testing.T) {
	clusters := []Cluster{
		{Categories: []string{"A", "B"}},
		{Categories: []string{"C", "D"}},
	}
	result := NewGroupNamer(&fakeNamer{err: errors.New("down")}, "Misc", nil).NameAll(context.Background(), clusters)
	if result.Fallbacks != 2 {
		t.Fatalf("fallbacks = %d", result.Fallbacks)
	}
	if result.Groups[0].DisplayName != "A" || result.Groups[1].DisplayName != "C" {
		t.Fatalf("unexpected names %+v", result.Groups)
	}
}
