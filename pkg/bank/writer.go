package bank

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
)

type pendingItem struct {
	kind ItemKind

	// path within the bank, including any leading directory.
	path string

	contents []byte
}

// Writer assembles a bank and serializes it to an underlying stream. Items
// are accumulated with Add, AddFile and AddMetadata, then committed in one
// forward pass by Write. After Write the writer is sealed.
//
// The output is produced strictly sequentially, so the sink only needs to
// support appending; no backward seeks are ever issued.
type Writer struct {
	out     io.Writer
	logger  hclog.Logger
	items   []pendingItem
	written bool
}

// NewWriter creates a writer that serializes to out.
func NewWriter(out io.Writer) *Writer {
	return NewWriterWithLogger(out, hclog.NewNullLogger())
}

// NewWriterWithLogger creates a writer with a custom logger.
func NewWriterWithLogger(out io.Writer, logger hclog.Logger) *Writer {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Writer{out: out, logger: logger}
}

// Add stores an item to be included in the bank. If the kind declares a
// directory the item is placed under it, so fileName must not itself carry a
// leading directory.
//
// Adding an item with empty contents results in the item reading back as a
// directory instead of a file; the format has no way to represent
// zero-length contents.
func (w *Writer) Add(kind ItemKind, fileName string, contents []byte) error {
	if w.written {
		return ErrBankWritten
	}

	path := fileName
	if dir := kind.Directory(); dir != "" {
		path = dir + string(PathSeparator) + fileName
	}

	w.items = append(w.items, pendingItem{kind: kind, path: path, contents: contents})
	return nil
}

// AddFile reads the contents of the file at sourcePath and adds them under
// fileName. Read failures are propagated.
func (w *Writer) AddFile(kind ItemKind, fileName, sourcePath string) error {
	contents, err := os.ReadFile(sourcePath)
	if err != nil {
		return err
	}
	return w.Add(kind, fileName, contents)
}

// AddMetadata serializes the record as indented JSON and stores it under
// MetadataFileName. If the record has no ID, one is synthesized from the
// sanitized author and name.
func (w *Writer) AddMetadata(m *Metadata) error {
	if w.written {
		return ErrBankWritten
	}

	record := *m
	if record.ID == "" {
		parts := make([]string, 0, 2)
		if author := SanitizeID(m.Author); author != "" {
			parts = append(parts, author)
		}
		if name := SanitizeID(m.Name); name != "" {
			parts = append(parts, name)
		}
		record.ID = strings.Join(parts, ".")
	}

	contents, err := record.encode()
	if err != nil {
		return err
	}
	w.logger.Debug("adding metadata", "contents", string(contents))
	return w.Add(KindMetadata, MetadataFileName, contents)
}

// Write commits the accumulated items to the underlying stream and seals
// the writer. A default metadata record is included if none was added.
// All bytes are written before returning; if the sink exposes a Flush
// method it is flushed as well.
func (w *Writer) Write() error {
	if w.written {
		return ErrBankWritten
	}

	if !w.hasKind(KindMetadata) {
		w.logger.Debug("adding default metadata")
		if err := w.AddMetadata(&Metadata{}); err != nil {
			return err
		}
	}

	// Distinct kinds present, in numeric order. This fixes the on-disk
	// grouping order, not the order items were added in.
	var present [kindCount]bool
	for _, item := range w.items {
		present[item.kind] = true
	}
	var kinds []ItemKind
	for k := ItemKind(0); k < kindCount; k++ {
		if present[k] {
			kinds = append(kinds, k)
		}
	}

	directoryCount := 0
	nameBlockLen := 0
	for _, kind := range kinds {
		if dir := kind.Directory(); dir != "" {
			directoryCount++
			nameBlockLen += len(dir) + 1
		}
		for _, item := range w.items {
			if item.kind == kind {
				nameBlockLen += len(item.path) + 1
			}
		}
	}
	locationCount := len(w.items) + directoryCount
	w.logger.Debug("committing bank", "items", len(w.items), "directories", directoryCount, "name_block_len", nameBlockLen)

	if _, err := w.out.Write(fileID); err != nil {
		return fmt.Errorf("write file identifier: %w", err)
	}
	if _, err := w.out.Write(corruptionCheck); err != nil {
		return fmt.Errorf("write check bytes: %w", err)
	}
	if _, err := w.out.Write(formatVersion); err != nil {
		return fmt.Errorf("write format version: %w", err)
	}
	if err := writeUint64(w.out, uint64(locationCount)); err != nil {
		return fmt.Errorf("write location count: %w", err)
	}

	// Payloads land immediately after the name block.
	dataOffset := uint64(headerSize + locationCount*locationSize + 8 + nameBlockLen)

	var nameBlock bytes.Buffer
	for _, kind := range kinds {
		if dir := kind.Directory(); dir != "" {
			w.logger.Debug("writing directory", "name", dir)
			loc := Location{NameOffset: uint64(nameBlock.Len())}
			if err := writeLocation(w.out, loc); err != nil {
				return fmt.Errorf("write directory location: %w", err)
			}
			nameBlock.WriteString(dir)
			nameBlock.WriteByte(0)
		}

		for _, item := range w.items {
			if item.kind != kind {
				continue
			}
			loc := Location{
				NameOffset: uint64(nameBlock.Len()),
				DataOffset: dataOffset,
				DataSize:   uint64(len(item.contents)),
			}
			if err := writeLocation(w.out, loc); err != nil {
				return fmt.Errorf("write location for %s: %w", item.path, err)
			}
			nameBlock.WriteString(item.path)
			nameBlock.WriteByte(0)
			dataOffset += uint64(len(item.contents))
		}
	}

	if err := writeUint64(w.out, uint64(nameBlockLen)); err != nil {
		return fmt.Errorf("write name block length: %w", err)
	}
	if _, err := w.out.Write(nameBlock.Bytes()); err != nil {
		return fmt.Errorf("write name block: %w", err)
	}

	// Payload bytes in the same kind-then-insertion order the offsets were
	// computed in.
	for _, kind := range kinds {
		for _, item := range w.items {
			if item.kind != kind {
				continue
			}
			w.logger.Debug("writing item", "path", item.path, "size", len(item.contents))
			if _, err := w.out.Write(item.contents); err != nil {
				return fmt.Errorf("write contents of %s: %w", item.path, err)
			}
		}
	}

	if f, ok := w.out.(interface{ Flush() error }); ok {
		if err := f.Flush(); err != nil {
			return err
		}
	}
	w.written = true
	return nil
}

func (w *Writer) hasKind(kind ItemKind) bool {
	for _, item := range w.items {
		if item.kind == kind {
			return true
		}
	}
	return false
}
