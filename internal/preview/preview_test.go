package preview

import (
	"errors"
	"testing"
)

func failAll(string) error { return errors.New("load failed") }

func TestResolver_InitialStep(t *testing.T) {
	tests := []struct {
		name  string
		thumb string
		media string
		want  Step
	}{
		{"thumbnail preferred", "/t/1.png", "/m/1.png", PreferThumbnail},
		{"thumbnail only", "/t/1.png", "", PreferThumbnail},
		{"original only", "", "/m/1.png", PreferOriginal},
		{"no media at all", "", "", Placeholder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Resolver
			r.Bind(1, tt.thumb, tt.media)
			if got := r.Step(); got != tt.want {
				t.Fatalf("initial step = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolver_FallbackChain(t *testing.T) {
	var r Resolver
	r.Bind(1, "/t/1.png", "/m/1.png")

	if path, ok := r.Path(); !ok || path != "/t/1.png" {
		t.Fatalf("Path = %q/%v, want thumbnail", path, ok)
	}

	r.NoteFailure()
	if r.Step() != PreferOriginal {
		t.Fatalf("step after thumbnail failure = %v, want PreferOriginal", r.Step())
	}
	if path, ok := r.Path(); !ok || path != "/m/1.png" {
		t.Fatalf("Path = %q/%v, want original", path, ok)
	}

	r.NoteFailure()
	if r.Step() != Placeholder {
		t.Fatalf("step after original failure = %v, want Placeholder", r.Step())
	}
	if _, ok := r.Path(); ok {
		t.Fatal("Path ok = true at Placeholder, want false")
	}

	// Placeholder is terminal.
	r.NoteFailure()
	if r.Step() != Placeholder {
		t.Fatalf("step advanced past Placeholder: %v", r.Step())
	}
}

func TestResolver_ThumbnailFailureWithoutOriginalSkipsToPlaceholder(t *testing.T) {
	var r Resolver
	r.Bind(1, "/t/1.png", "")

	r.NoteFailure()
	if r.Step() != Placeholder {
		t.Fatalf("step = %v, want Placeholder (no original to fall back to)", r.Step())
	}
}

func TestResolver_NeverMovesBackward(t *testing.T) {
	r := Resolver{Probe: failAll}
	r.Bind(1, "/t/1.png", "/m/1.png")

	seen := []Step{r.Step()}
	for i := 0; i < 5; i++ {
		r.NoteFailure()
		seen = append(seen, r.Step())
	}
	for i := 1; i < len(seen); i++ {
		if seen[i] < seen[i-1] {
			t.Fatalf("step moved backward: %v -> %v", seen[i-1], seen[i])
		}
	}
}

func TestResolver_RebindResetsOnlyOnIdentityChange(t *testing.T) {
	var r Resolver
	r.Bind(1, "/t/1.png", "/m/1.png")
	r.NoteFailure()
	if r.Step() != PreferOriginal {
		t.Fatalf("step = %v, want PreferOriginal", r.Step())
	}

	// Same identity: progress is kept.
	r.Bind(1, "/t/1.png", "/m/1.png")
	if r.Step() != PreferOriginal {
		t.Fatalf("re-bind same id reset step to %v", r.Step())
	}

	// New identity: chain resets to the new clip's initial step.
	r.Bind(2, "/t/2.png", "")
	if r.Step() != PreferThumbnail {
		t.Fatalf("step after identity change = %v, want PreferThumbnail", r.Step())
	}
	if path, _ := r.Path(); path != "/t/2.png" {
		t.Fatalf("path after identity change = %q, want /t/2.png", path)
	}
}

func TestResolver_ResolveWalksChain(t *testing.T) {
	t.Run("falls through to loadable original", func(t *testing.T) {
		r := Resolver{Probe: func(path string) error {
			if path == "/m/1.png" {
				return nil
			}
			return errors.New("corrupt")
		}}
		r.Bind(1, "/t/1.png", "/m/1.png")

		path, ok := r.Resolve()
		if !ok || path != "/m/1.png" {
			t.Fatalf("Resolve = %q/%v, want original", path, ok)
		}
		if r.Step() != PreferOriginal {
			t.Fatalf("step = %v, want PreferOriginal", r.Step())
		}
	})

	t.Run("exhausted chain yields placeholder", func(t *testing.T) {
		r := Resolver{Probe: failAll}
		r.Bind(1, "/t/1.png", "/m/1.png")

		if _, ok := r.Resolve(); ok {
			t.Fatal("Resolve ok = true, want placeholder")
		}
		if r.Step() != Placeholder {
			t.Fatalf("step = %v, want Placeholder", r.Step())
		}
	})
}
