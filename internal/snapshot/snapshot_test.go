package snapshot

import (
	"strings"
	"testing"

	"refit/internal/marker"
)

func TestPrintFencedMarkers(t *testing.T) {
	s := &Snapshot{
		Path: "src/a.txt",
		Root: &marker.Node{
			Text: "hello ",
			Children: []*marker.Node{
				{
					Text:    "world",
					Markers: []marker.Marker{{ID: "X", Kind: marker.KindSearchResult}},
				},
				{
					Text:    "!",
					Markers: []marker.Marker{{ID: "hidden", Kind: marker.KindOther}},
				},
			},
		},
	}

	out := s.Print(FencedPrinter{})
	if !strings.Contains(out, "{{X}}world{{X}}") {
		t.Errorf("output %q missing fenced search result", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("output %q leaks suppressed marker", out)
	}
	if out != "hello {{X}}world{{X}}!" {
		t.Errorf("output = %q", out)
	}
}

func TestPrintErrorMarkerFenced(t *testing.T) {
	s := New("a.txt", "content")
	s.Root.Markers = []marker.Marker{{ID: "err-1", Kind: marker.KindError, Detail: "failed"}}

	out := s.Print(FencedPrinter{})
	if out != "{{err-1}}content{{err-1}}" {
		t.Errorf("output = %q", out)
	}
}

func TestPrintPlain(t *testing.T) {
	s := New("a.txt", "content")
	s.Root.Markers = []marker.Marker{
		{ID: "X", Kind: marker.KindSearchResult},
		{ID: "err", Kind: marker.KindError},
	}

	if out := s.Print(PlainPrinter{}); out != "content" {
		t.Errorf("plain output = %q, want %q", out, "content")
	}
}

func TestPrintNil(t *testing.T) {
	var s *Snapshot
	if out := s.Print(PlainPrinter{}); out != "" {
		t.Errorf("nil snapshot printed %q", out)
	}
}
