package bank

import (
	"bytes"
	"errors"
	"testing"
)

func TestBlankBankRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := NewWriter(&buf).Write(); err != nil {
		t.Fatal(err)
	}

	r, err := NewReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}

	items := r.Items()
	if len(items) != 1 {
		t.Fatalf("blank bank has %d items, want 1", len(items))
	}
	if !items[0].IsMetadataFile() {
		t.Fatalf("only item should be the metadata file, got %s", items[0])
	}

	m, err := r.ReadMetadata(items[0])
	if err != nil {
		t.Fatal(err)
	}
	if m.ID != "" || m.Name != "" || m.Author != "" || m.Description != "" {
		t.Errorf("default metadata should be empty: %#v", m)
	}
	if m.Version != nil || m.Hash != nil {
		t.Errorf("default metadata should have no optional fields: %#v", m)
	}
}

func TestAddAfterWrite(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.Write(); err != nil {
		t.Fatal(err)
	}
	written := append([]byte(nil), buf.Bytes()...)

	if err := w.Add(KindSample, "kick.wav", []byte("data")); !errors.Is(err, ErrBankWritten) {
		t.Errorf("Add after write = %v, want ErrBankWritten", err)
	}
	if err := w.AddMetadata(&Metadata{}); !errors.Is(err, ErrBankWritten) {
		t.Errorf("AddMetadata after write = %v, want ErrBankWritten", err)
	}
	if err := w.Write(); !errors.Is(err, ErrBankWritten) {
		t.Errorf("second Write = %v, want ErrBankWritten", err)
	}
	if !bytes.Equal(written, buf.Bytes()) {
		t.Error("failed additions must leave the written output unmodified")
	}
}

func TestSynthesizedID(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.AddMetadata(&Metadata{Author: "Author", Name: "Title", Description: "Description"}); err != nil {
		t.Fatal(err)
	}
	if err := w.Write(); err != nil {
		t.Fatal(err)
	}

	r, err := NewReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	m, err := r.ReadMetadata(r.Items()[0])
	if err != nil {
		t.Fatal(err)
	}
	if m.ID != "author.title" {
		t.Errorf("synthesized id = %q, want %q", m.ID, "author.title")
	}
	if m.Author != "Author" || m.Name != "Title" || m.Description != "Description" {
		t.Errorf("metadata fields lost: %#v", m)
	}
}

func TestSynthesizedIDSkipsEmptyParts(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.AddMetadata(&Metadata{Name: "Title Only"}); err != nil {
		t.Fatal(err)
	}
	if err := w.Write(); err != nil {
		t.Fatal(err)
	}

	r, err := NewReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	m, err := r.ReadMetadata(r.Items()[0])
	if err != nil {
		t.Fatal(err)
	}
	if m.ID != "titleonly" {
		t.Errorf("id = %q, want %q", m.ID, "titleonly")
	}
}

func TestExplicitIDNotReplaced(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.AddMetadata(&Metadata{ID: "keep.me", Author: "Author"}); err != nil {
		t.Fatal(err)
	}
	if err := w.Write(); err != nil {
		t.Fatal(err)
	}

	r, err := NewReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	m, err := r.ReadMetadata(r.Items()[0])
	if err != nil {
		t.Fatal(err)
	}
	if m.ID != "keep.me" {
		t.Errorf("id = %q, want %q", m.ID, "keep.me")
	}
}

func TestDirectoryPlacement(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.Add(KindSample, "kick.wav", []byte("KICK")); err != nil {
		t.Fatal(err)
	}
	if err := w.Write(); err != nil {
		t.Fatal(err)
	}

	r, err := NewReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}

	var paths []string
	for _, item := range r.Items() {
		paths = append(paths, item.String())
	}
	want := []string{"index.json", "samples", "samples/kick.wav"}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Fatalf("paths = %v, want %v", paths, want)
		}
	}

	items := r.Items()
	if !items[1].IsDirectory() {
		t.Error("samples should be a directory entry")
	}
	if !items[2].IsFile() {
		t.Error("samples/kick.wav should be a file")
	}
}
