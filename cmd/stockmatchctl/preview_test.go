package main

import "testing"

func TestSplitTags(t *testing.T) {
	got := splitTags(" tech, ,energy,")
	if len(got) != 2 || got[0] != "tech" || got[1] != "energy" {
		t.Fatalf("unexpected tags %v", got)
	}
	if splitTags("") != nil {
		t.Fatalf("expected nil for empty input")
	}
}
