package bank

import (
	"encoding/json"
	"strings"
	"unicode"
)

// Metadata is the structured record stored at MetadataFileName inside a
// bank. The format does not distinguish an absent string field from an
// empty one, so the string fields default to "".
//
// Version and Hash have only been seen in Kilohearts factory content banks,
// never in banks produced with Kilohearts Bank Maker.
type Metadata struct {
	// Version of the bank, when present.
	Version *uint32

	// ID is a unique identifier for the bank, typically "author.name".
	ID string

	Name        string
	Author      string
	Description string

	// Hash is a 160-bit digest as a hex string. The hash of a factory bank
	// appears to be identical regardless of who downloaded it.
	Hash *string

	// Extra holds top-level JSON keys that are not part of the model. They
	// are preserved verbatim when the record is written back out.
	Extra map[string]any
}

// SanitizeID reduces a string to the characters legal in a bank ID:
// lowercase letters, digits and the dot separator.
func SanitizeID(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// ParseMetadata decodes the JSON representation of a metadata record.
// Unrecognized top-level keys are kept in Extra.
func ParseMetadata(data []byte) (*Metadata, error) {
	var m Metadata
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

type metadataJSON struct {
	Version     *uint32 `json:"version,omitempty"`
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Author      string  `json:"author"`
	Description string  `json:"description"`
	Hash        *string `json:"hash,omitempty"`
}

// MarshalJSON flattens Extra into the top-level object. The named fields win
// over an Extra entry with the same key.
func (m *Metadata) MarshalJSON() ([]byte, error) {
	obj := make(map[string]any, len(m.Extra)+6)
	for k, v := range m.Extra {
		obj[k] = v
	}
	obj["id"] = m.ID
	obj["name"] = m.Name
	obj["author"] = m.Author
	obj["description"] = m.Description
	if m.Version != nil {
		obj["version"] = *m.Version
	}
	if m.Hash != nil {
		obj["hash"] = *m.Hash
	}
	return json.Marshal(obj)
}

func (m *Metadata) UnmarshalJSON(data []byte) error {
	var fields metadataJSON
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, known := range []string{"version", "id", "name", "author", "description", "hash"} {
		delete(raw, known)
	}
	if len(raw) == 0 {
		raw = nil
	}

	*m = Metadata{
		Version:     fields.Version,
		ID:          fields.ID,
		Name:        fields.Name,
		Author:      fields.Author,
		Description: fields.Description,
		Hash:        fields.Hash,
		Extra:       raw,
	}
	return nil
}

// encode serializes the record as indented JSON, matching the layout Bank
// Maker produces.
func (m *Metadata) encode() ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}
