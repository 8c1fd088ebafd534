package bank

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestSanitizeID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Author", "author"},
		{"My Bank!", "mybank"},
		{"a.b.c", "a.b.c"},
		{"Söme Naïve", "sömenaïve"},
		{"  ", ""},
	}
	for _, tt := range tests {
		if got := SanitizeID(tt.in); got != tt.want {
			t.Errorf("SanitizeID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMetadataExtraRoundTrip(t *testing.T) {
	in := &Metadata{
		Name:   "Title",
		Author: "Author",
		Extra:  map[string]any{"foo": "bar"},
	}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	out, err := ParseMetadata(data)
	if err != nil {
		t.Fatal(err)
	}
	if out.Extra["foo"] != "bar" {
		t.Fatalf("extra key not preserved: %#v", out.Extra)
	}
	if out.Name != "Title" || out.Author != "Author" {
		t.Fatalf("named fields lost: %#v", out)
	}
}

func TestMetadataAbsentFields(t *testing.T) {
	m, err := ParseMetadata([]byte(`{"name":"Only Name"}`))
	if err != nil {
		t.Fatal(err)
	}
	if m.Name != "Only Name" {
		t.Errorf("name = %q", m.Name)
	}
	if m.ID != "" || m.Author != "" || m.Description != "" {
		t.Errorf("absent string fields should decode to empty: %#v", m)
	}
	if m.Version != nil || m.Hash != nil {
		t.Errorf("absent optional fields should stay nil: %#v", m)
	}
	if len(m.Extra) != 0 {
		t.Errorf("no extra keys expected: %#v", m.Extra)
	}
}

func TestMetadataOptionalFieldsOmitted(t *testing.T) {
	data, err := (&Metadata{}).encode()
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	if strings.Contains(text, `"version"`) || strings.Contains(text, `"hash"`) {
		t.Fatalf("optional fields should be absent, got %s", text)
	}
	for _, key := range []string{`"id"`, `"name"`, `"author"`, `"description"`} {
		if !strings.Contains(text, key) {
			t.Fatalf("missing %s in %s", key, text)
		}
	}
}

func TestMetadataOptionalFieldsKept(t *testing.T) {
	version := uint32(3)
	hash := "0123456789abcdef0123456789abcdef01234567"
	data, err := json.Marshal(&Metadata{Version: &version, Hash: &hash})
	if err != nil {
		t.Fatal(err)
	}
	out, err := ParseMetadata(data)
	if err != nil {
		t.Fatal(err)
	}
	if out.Version == nil || *out.Version != 3 {
		t.Errorf("version lost: %#v", out.Version)
	}
	if out.Hash == nil || *out.Hash != hash {
		t.Errorf("hash lost: %#v", out.Hash)
	}
}
