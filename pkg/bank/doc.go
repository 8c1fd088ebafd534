// Package bank reads and writes Kilohearts bank files.
//
// A bank is a single-file container bundling presets, samples, a background
// image and a JSON metadata record into one archive with an internal
// directory structure. The layout is:
//
//	[4 bytes]   file identifier
//	[4 bytes]   corruption check sequence (same bytes the PNG header uses)
//	[8 bytes]   format version tag ("Bank0001")
//	[8 bytes]   location count N
//	[N × 24]    location table: (name offset, data offset, data size)
//	[8 bytes]   name block length L
//	[L bytes]   zero-terminated path strings, referenced by name offset
//	[...]       file payloads, referenced by data offset and size
//
// All integers are little-endian unsigned 64-bit. Paths inside a bank use
// '/' as the directory separator regardless of platform and are raw byte
// strings, not guaranteed to be valid UTF-8.
//
// # Writing
//
//	var buf bytes.Buffer
//	w := bank.NewWriter(&buf)
//	w.Add(bank.KindSample, "kick.wav", kickData)
//	w.AddMetadata(&bank.Metadata{Name: "My Bank", Author: "Me"})
//	err := w.Write()
//
// The writer produces its output in a single forward pass with no backward
// seeking, so any io.Writer can serve as the sink. Once written, a writer is
// sealed and rejects further additions.
//
// # Reading
//
//	r, err := bank.Open("factory.bank")
//	if err != nil {
//		return err
//	}
//	defer r.Close()
//	for _, item := range r.Items() {
//		data, _ := r.ReadContents(item)
//		// use data
//	}
//
// The catalog is parsed and validated up front; payload bytes are read on
// demand. Reading requires a seekable source. A bank either parses fully or
// not at all: out-of-bounds name references and overlapping payload ranges
// are rejected before any item is exposed.
//
// Payloads are stored verbatim. The format has no compression, no
// encryption, and no way to represent an empty file: an item written with
// zero-length contents reads back as a directory entry.
package bank
