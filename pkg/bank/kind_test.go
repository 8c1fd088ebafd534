package bank

import (
	"reflect"
	"testing"
)

func TestEveryKindHasExtensions(t *testing.T) {
	kinds := Kinds()
	if len(kinds) != int(kindCount) {
		t.Fatalf("Kinds() returned %d kinds, want %d", len(kinds), kindCount)
	}
	seen := make(map[ItemKind]bool)
	for _, kind := range kinds {
		if seen[kind] {
			t.Errorf("kind %v appears twice", kind)
		}
		seen[kind] = true
		if len(kind.Extensions()) == 0 {
			t.Errorf("kind %v has no extensions", kind)
		}
	}
}

func TestMetadataExtensions(t *testing.T) {
	if got := KindMetadata.Extensions(); !reflect.DeepEqual(got, []string{"json"}) {
		t.Fatalf("metadata extensions = %v, want [json]", got)
	}
}

func TestHasExtension(t *testing.T) {
	if !KindMetadata.HasExtension("json") {
		t.Error("json should match metadata")
	}
	if !KindMetadata.HasExtension("JSON") {
		t.Error("extension matching should be case-insensitive")
	}
	if KindMetadata.HasExtension("txt") {
		t.Error("txt should not match metadata")
	}
}

func TestDirectory(t *testing.T) {
	tests := []struct {
		kind ItemKind
		want string
	}{
		{KindBackground, ""},
		{KindMetadata, ""},
		{KindSample, "samples"},
		{KindPhasePlantPreset, "phaseplant"},
		{KindChorus, "ksch"},
		{KindTransientShaper, "kstr"},
	}
	for _, tt := range tests {
		if got := tt.kind.Directory(); got != tt.want {
			t.Errorf("%v directory = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		path string
		want ItemKind
		ok   bool
	}{
		{"index.json", KindMetadata, true},
		{"INDEX.JSON", KindMetadata, true},
		{"some/dir/index.json", KindMetadata, true},
		{"background", KindBackground, true},
		{"background.png", KindBackground, true},
		{"art/Background.JPG", KindBackground, true},
		{"kick.wav", KindSample, true},
		{"loops/break.FLAC", KindSample, true},
		{"lead.phaseplant", KindPhasePlantPreset, true},
		{"wide.ksch", KindChorus, true},
		{"extra.json", KindMetadata, true}, // by extension, not name
		{"notes.txt", 0, false},
		{"README", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := Classify(tt.path)
			if ok != tt.ok {
				t.Fatalf("Classify(%q) ok = %v, want %v", tt.path, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Fatalf("Classify(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}
