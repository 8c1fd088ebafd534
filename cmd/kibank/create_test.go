package main

import (
	"testing"

	"github.com/softdevca/kibank/pkg/bank"
)

func strPtr(s string) *string { return &s }
func u32Ptr(v uint32) *uint32 { return &v }

func TestMergeMetadataOverridesWin(t *testing.T) {
	fromFile := &bank.Metadata{
		ID:          "file.id",
		Name:        "File Name",
		Author:      "File Author",
		Description: "File Description",
		Extra:       map[string]any{"custom": "kept"},
	}
	overrides := metadataOverrides{
		name:   strPtr("CLI Name"),
		author: strPtr("CLI Author"),
	}

	merged := mergeMetadata(overrides, fromFile)
	if merged.Name != "CLI Name" {
		t.Errorf("name = %q, want CLI value", merged.Name)
	}
	if merged.Author != "CLI Author" {
		t.Errorf("author = %q, want CLI value", merged.Author)
	}
	if merged.Description != "File Description" {
		t.Errorf("description = %q, want file value", merged.Description)
	}
	if merged.ID != "file.id" {
		t.Errorf("id = %q, want file value", merged.ID)
	}
	if merged.Extra["custom"] != "kept" {
		t.Errorf("extra keys must survive the merge: %#v", merged.Extra)
	}
}

func TestMergeMetadataOptionalFallback(t *testing.T) {
	fileVersion := uint32(7)
	fromFile := &bank.Metadata{Version: &fileVersion}

	merged := mergeMetadata(metadataOverrides{}, fromFile)
	if merged.Version == nil || *merged.Version != 7 {
		t.Errorf("version should fall back to the file: %#v", merged.Version)
	}

	merged = mergeMetadata(metadataOverrides{version: u32Ptr(9), hash: strPtr("abc123")}, fromFile)
	if merged.Version == nil || *merged.Version != 9 {
		t.Errorf("CLI version should win: %#v", merged.Version)
	}
	if merged.Hash == nil || *merged.Hash != "abc123" {
		t.Errorf("CLI hash should win: %#v", merged.Hash)
	}
}

func TestMergeMetadataEmptyStringOverrides(t *testing.T) {
	// An explicitly given empty flag still overrides the file value.
	fromFile := &bank.Metadata{Name: "File Name"}
	merged := mergeMetadata(metadataOverrides{name: strPtr("")}, fromFile)
	if merged.Name != "" {
		t.Errorf("explicit empty name should override, got %q", merged.Name)
	}
}
