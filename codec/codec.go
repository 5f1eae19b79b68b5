// Package codec serializes script trees to the engine's binary object
// format and back. This is the persisted form scripts are compiled to,
// so that a tree need not be re-parsed from text on every load.
//
// A file is a small container envelope around a section-token stream:
//
//	magic "SOB1" | version | flags | [crc32] | payload
//
// The payload is a flat, self-delimiting sequence of tagged sections.
// Each unit begins with a one-byte section token (object, property or
// argument) followed by its type-specific fields; object and property
// sections record how many nested sections follow, so no end marker is
// needed. All integers are little-endian; strings are length-prefixed.
//
// When FlagCompressed is set the payload is zstd-compressed; when
// FlagHasCRC is set a CRC-32 (IEEE) of the stored payload bytes
// precedes it.
//
// Decoding is total and defensive: truncated or malformed input yields
// an error and never a partial tree. Every length and count read from
// the stream is bounds-checked against the remaining input before use.
package codec

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// Magic identifies a script object file.
var Magic = [4]byte{'S', 'O', 'B', '1'}

// Version is the current format version.
const Version uint8 = 1

// Flags for the container envelope.
type Flags uint8

const (
	FlagCompressed Flags = 0x01 // payload is zstd-compressed
	FlagHasCRC     Flags = 0x02 // CRC-32 of stored payload is present
)

// Section tokens.
const (
	sectionObject   = 0x01
	sectionProperty = 0x02
	sectionArgument = 0x03
)

// headerSize is the envelope size without the optional CRC word.
const headerSize = 4 + 1 + 1

// maxPayload bounds how large a decoded payload may grow (64 MiB),
// matching what the engine will ever compile from script text.
const maxPayload = 64 * 1024 * 1024

// EncodeOptions configures the container envelope.
type EncodeOptions struct {
	// Compress zstd-compresses the payload.
	Compress bool

	// Checksum records a CRC-32 of the stored payload.
	Checksum bool
}

// DefaultEncodeOptions checksums but does not compress.
func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{Checksum: true}
}

// ParseError reports malformed input at a byte offset.
type ParseError struct {
	Reason string
	Offset int
}

func (e *ParseError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("codec: %s at offset %d", e.Reason, e.Offset)
	}
	return fmt.Sprintf("codec: %s", e.Reason)
}

// CRCMismatchError is returned when payload integrity verification fails.
type CRCMismatchError struct {
	Expected uint32
	Got      uint32
}

func (e *CRCMismatchError) Error() string {
	return fmt.Sprintf("codec: CRC mismatch: expected %08x, got %08x", e.Expected, e.Got)
}

// Shared zstd coders; EncodeAll/DecodeAll are safe for concurrent use.
var (
	zstdEncoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	zstdDecoder, _ = zstd.NewReader(nil, zstd.WithDecoderMaxMemory(maxPayload))
)
