package bank

import (
	"encoding/binary"
	"io"
)

// locationSize is the number of bytes a location record occupies on disk:
// three little-endian unsigned 64-bit fields.
const locationSize = 24

// Location describes one catalog entry: where its name lives in the name
// block and where its payload lives in the file. A location with a zero data
// size is a directory entry. Locations are immutable once built.
type Location struct {
	// NameOffset is relative to the start of the name block.
	NameOffset uint64

	// DataOffset is relative to the start of the file.
	DataOffset uint64

	// DataSize is the payload length in bytes. Zero means a directory.
	DataSize uint64
}

// DataEnd returns the first byte offset past the payload.
func (l Location) DataEnd() uint64 {
	return l.DataOffset + l.DataSize
}

func readLocation(r io.Reader) (Location, error) {
	var buf [locationSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return Location{}, err
	}
	return Location{
		NameOffset: binary.LittleEndian.Uint64(buf[0:8]),
		DataOffset: binary.LittleEndian.Uint64(buf[8:16]),
		DataSize:   binary.LittleEndian.Uint64(buf[16:24]),
	}, nil
}

func writeLocation(w io.Writer, l Location) error {
	var buf [locationSize]byte
	binary.LittleEndian.PutUint64(buf[0:8], l.NameOffset)
	binary.LittleEndian.PutUint64(buf[8:16], l.DataOffset)
	binary.LittleEndian.PutUint64(buf[16:24], l.DataSize)
	_, err := w.Write(buf[:])
	return err
}

func readUint64(r io.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

func writeUint64(w io.Writer, v uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}
