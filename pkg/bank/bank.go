package bank

// Core format constants. These are fixed by the on-disk format and never
// change; defaults and tunables do not exist for this codec.

var (
	// fileID identifies a file as a Kilohearts bank.
	fileID = []byte{0x89, 'k', 'H', 's'}

	// formatVersion is the 8-byte ASCII version tag present in every bank.
	formatVersion = []byte("Bank0001")

	// corruptionCheck detects end-of-line conversion damage from text-mode
	// transfers. The same byte sequence is used by the PNG header.
	corruptionCheck = []byte{0x0d, 0x0a, 0x1a, 0x0a}
)

const (
	// PathSeparator separates directory components inside a bank. It may
	// differ from the separator used by the operating system.
	PathSeparator = '/'

	// BackgroundFileStem is the background image file name without its
	// extension.
	BackgroundFileStem = "background"

	// MetadataFileName is the name of the metadata record inside and
	// outside of a bank.
	MetadataFileName = "index.json"

	// headerSize is the byte length of the fixed header: file identifier,
	// corruption check, version tag and location count.
	headerSize = 4 + 4 + 8 + 8
)
