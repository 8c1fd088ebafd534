package bank

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// Item is one catalog entry of an opened bank.
type Item struct {
	pathBytes []byte
	location  Location
}

// Path returns a copy of the raw path of the item as it appears in the bank.
// Paths are byte strings, not guaranteed to be valid UTF-8, with directories
// separated by PathSeparator regardless of platform. Names are
// case-insensitive.
func (it Item) Path() []byte {
	return append([]byte(nil), it.pathBytes...)
}

// Location returns the item's position within the bank file.
func (it Item) Location() Location {
	return it.location
}

// IsDirectory reports whether the item is a directory entry.
func (it Item) IsDirectory() bool {
	return it.location.DataSize == 0
}

// IsFile reports whether the item carries payload bytes.
func (it Item) IsFile() bool {
	return it.location.DataSize != 0
}

// IsBackgroundFile reports whether the item is the bank's background image:
// a file whose name stem is the background stem, compared case-insensitively.
func (it Item) IsBackgroundFile() bool {
	if !it.IsFile() {
		return false
	}
	base := path.Base(it.String())
	stem := strings.TrimSuffix(base, path.Ext(base))
	return strings.EqualFold(stem, BackgroundFileStem)
}

// IsMetadataFile reports whether the item is the bank's metadata record,
// stored at the bank root under MetadataFileName.
func (it Item) IsMetadataFile() bool {
	return it.IsFile() && strings.EqualFold(string(it.pathBytes), MetadataFileName)
}

// String renders the item path as text for display. The conversion is lossy:
// bytes that are not valid UTF-8 are replaced, and the result must never be
// used for comparisons.
func (it Item) String() string {
	return strings.ToValidUTF8(string(it.pathBytes), "�")
}

// Reader provides random access to the items of a bank. The catalog is
// parsed and validated eagerly when the reader is created; payload bytes are
// read on demand.
type Reader struct {
	src    io.ReadSeeker
	closer io.Closer
	logger hclog.Logger

	// total size of the source, for payload range checks.
	size int64

	items []Item
}

// NewReader parses the catalog of the bank in src. The reader owns src for
// its lifetime. An error is returned if src is not a bank or is malformed.
func NewReader(src io.ReadSeeker) (*Reader, error) {
	return NewReaderWithLogger(src, hclog.NewNullLogger())
}

// NewReaderWithLogger parses the catalog with a custom logger.
func NewReaderWithLogger(src io.ReadSeeker, logger hclog.Logger) (*Reader, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	r := &Reader{src: src, logger: logger}
	if err := r.parse(); err != nil {
		return nil, err
	}
	return r, nil
}

// Open opens the bank file at the given path. Close releases the file.
func Open(name string) (*Reader, error) {
	return OpenWithLogger(name, hclog.NewNullLogger())
}

// OpenWithLogger opens the bank file at the given path with a custom logger.
func OpenWithLogger(name string, logger hclog.Logger) (*Reader, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	r, err := NewReaderWithLogger(f, logger)
	if err != nil {
		f.Close()
		return nil, err
	}
	r.closer = f
	return r, nil
}

// Close releases the underlying file if the reader opened it. Readers built
// from a caller-supplied stream leave the stream to the caller.
func (r *Reader) Close() error {
	if r.closer != nil {
		c := r.closer
		r.closer = nil
		return c.Close()
	}
	return nil
}

func (r *Reader) parse() error {
	var id [4]byte
	if _, err := io.ReadFull(r.src, id[:]); err != nil {
		return fmt.Errorf("read file identifier: %w", err)
	}
	if !bytes.Equal(id[:], fileID) {
		return ErrNotABank
	}

	var check [4]byte
	if _, err := io.ReadFull(r.src, check[:]); err != nil {
		return fmt.Errorf("read check bytes: %w", err)
	}
	if !bytes.Equal(check[:], corruptionCheck) {
		return fmt.Errorf("%w: unexpected check bytes % x", ErrMalformed, check[:])
	}

	var version [8]byte
	if _, err := io.ReadFull(r.src, version[:]); err != nil {
		return fmt.Errorf("read format version: %w", err)
	}
	if !bytes.Equal(version[:], formatVersion) {
		return fmt.Errorf("%w: unexpected format version %q", ErrMalformed, version[:])
	}

	locationCount, err := readUint64(r.src)
	if err != nil {
		return fmt.Errorf("read location count: %w", err)
	}
	r.logger.Trace("parsed header", "locations", locationCount)

	locations := make([]Location, 0, int(min(locationCount, 1000)))
	for i := uint64(0); i < locationCount; i++ {
		loc, err := readLocation(r.src)
		if err != nil {
			return fmt.Errorf("read location %d: %w", i, err)
		}
		// A range whose end wraps around uint64 would slip past the
		// payload bounds and overlap checks below.
		if loc.DataSize > ^uint64(0)-loc.DataOffset {
			return fmt.Errorf("%w: location %d payload range overflows (offset %d, size %d)",
				ErrMalformed, i, loc.DataOffset, loc.DataSize)
		}
		locations = append(locations, loc)
	}

	nameBlockLen, err := readUint64(r.src)
	if err != nil {
		return fmt.Errorf("read name block length: %w", err)
	}
	nameBlockStart, err := r.src.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}
	r.logger.Debug("name block", "length", nameBlockLen, "start", nameBlockStart)

	r.items = make([]Item, 0, len(locations))
	for _, loc := range locations {
		name, err := r.readName(loc.NameOffset, nameBlockStart, nameBlockLen)
		if err != nil {
			return err
		}
		r.items = append(r.items, Item{pathBytes: name, location: loc})
	}

	if err := checkOverlap(r.items); err != nil {
		return err
	}

	if r.size, err = r.src.Seek(0, io.SeekEnd); err != nil {
		return err
	}
	return nil
}

// readName reads one zero-terminated path string out of the name block.
func (r *Reader) readName(nameOffset uint64, blockStart int64, blockLen uint64) ([]byte, error) {
	namePos := blockStart + int64(nameOffset)
	if _, err := r.src.Seek(namePos, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek to file name at %d: %w", namePos, err)
	}

	// Reading through the terminator guarantees the name itself can never
	// contain a zero byte.
	name, err := bufio.NewReader(r.src).ReadBytes(0)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("read file name at %d: %w", namePos, err)
	}
	if len(name) == 0 {
		return nil, fmt.Errorf("%w: zero length read of file name at position %d", ErrMalformed, namePos)
	}
	if namePos+int64(len(name)) > blockStart+int64(blockLen) {
		return nil, fmt.Errorf("%w: read past the end of the name block", ErrMalformed)
	}

	// The trailing zero is absent only when the read stopped at the end of
	// the file.
	if name[len(name)-1] == 0 {
		name = name[:len(name)-1]
	}
	r.logger.Trace("parsed file name", "name", string(name))
	return name, nil
}

// checkOverlap verifies that no two file payload ranges intersect. Besides
// indicating corruption, overlapping ranges can be an amplification attack
// where many catalog entries alias the same bytes so the extracted output
// dwarfs the bank's size on disk.
func checkOverlap(items []Item) error {
	files := make([]Item, 0, len(items))
	for _, item := range items {
		if item.IsFile() {
			files = append(files, item)
		}
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].location.DataOffset < files[j].location.DataOffset
	})
	for i := 1; i < len(files); i++ {
		if files[i-1].location.DataEnd() > files[i].location.DataOffset {
			return fmt.Errorf("%w: bank item %s overlaps item %s", ErrMalformed, files[i-1], files[i])
		}
	}
	return nil
}

// Items returns a snapshot of the bank's catalog. No I/O is performed.
func (r *Reader) Items() []Item {
	return append([]Item(nil), r.items...)
}

// ReadContents returns the payload bytes of the item. It fails if the
// declared payload range extends past the end of the source.
func (r *Reader) ReadContents(item Item) ([]byte, error) {
	if item.location.DataEnd() > uint64(r.size) {
		return nil, fmt.Errorf("%w: contents of %s end at %d, past the end of the bank (%d bytes)",
			ErrMalformed, item, item.location.DataEnd(), r.size)
	}
	if _, err := r.src.Seek(int64(item.location.DataOffset), io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek to contents of %s at %d: %w", item, item.location.DataOffset, err)
	}
	contents := make([]byte, item.location.DataSize)
	if _, err := io.ReadFull(r.src, contents); err != nil {
		return nil, fmt.Errorf("read %d bytes of %s: %w", item.location.DataSize, item, err)
	}
	return contents, nil
}

// ReadMetadata reads and parses the bank's metadata record. The item must be
// the metadata file or ErrNotMetadataItem is returned.
func (r *Reader) ReadMetadata(item Item) (*Metadata, error) {
	if !item.IsMetadataFile() {
		return nil, ErrNotMetadataItem
	}
	data, err := r.ReadContents(item)
	if err != nil {
		return nil, err
	}
	return ParseMetadata(data)
}

// Copy writes the payload bytes of the item to dst. The item's offset is
// sought explicitly, so items may be copied in any order.
func (r *Reader) Copy(item Item, dst io.Writer) error {
	if item.location.DataEnd() > uint64(r.size) {
		return fmt.Errorf("%w: contents of %s end at %d, past the end of the bank (%d bytes)",
			ErrMalformed, item, item.location.DataEnd(), r.size)
	}
	if _, err := r.src.Seek(int64(item.location.DataOffset), io.SeekStart); err != nil {
		return fmt.Errorf("seek to contents of %s at %d: %w", item, item.location.DataOffset, err)
	}
	if _, err := io.CopyN(dst, r.src, int64(item.location.DataSize)); err != nil {
		return fmt.Errorf("copy %d bytes of %s: %w", item.location.DataSize, item, err)
	}
	return nil
}
