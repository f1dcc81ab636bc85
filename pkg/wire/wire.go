// Package wire implements the length-prefixed binary primitives used to
// serialize column bodies.
//
// A serialized byte string is a fixed 8-byte little-endian unsigned length
// followed by exactly that many raw bytes, with no padding or terminator.
// Reads and writes are synchronous and either fully succeed or fail; a short
// read is reported as a data error, never as partial success.
package wire

import (
	"encoding/binary"
	"io"

	"github.com/ajitpratap0/colwire/pkg/errors"
)

// Uint64Size is the encoded size of a length prefix in bytes.
const Uint64Size = 8

// ReadUInt64 reads a fixed 8-byte little-endian unsigned integer.
func ReadUInt64(r io.Reader) (uint64, error) {
	var buf [Uint64Size]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, errors.Wrap(err, errors.ErrorTypeData, "failed to read uint64")
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// ReadBytes fills dst from the stream. The destination is typically the tail
// of an arena block, so the bytes land in their final location without an
// intermediate copy.
func ReadBytes(r io.Reader, dst []byte) error {
	if _, err := io.ReadFull(r, dst); err != nil {
		return errors.Wrap(err, errors.ErrorTypeData, "failed to read bytes").
			WithDetail("expected", len(dst))
	}
	return nil
}

// WriteUInt64 writes a fixed 8-byte little-endian unsigned integer.
func WriteUInt64(w io.Writer, v uint64) error {
	var buf [Uint64Size]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	if _, err := w.Write(buf[:]); err != nil {
		return errors.Wrap(err, errors.ErrorTypeData, "failed to write uint64")
	}
	return nil
}

// WriteBytes writes p to the stream in full.
func WriteBytes(w io.Writer, p []byte) error {
	if _, err := w.Write(p); err != nil {
		return errors.Wrap(err, errors.ErrorTypeData, "failed to write bytes").
			WithDetail("length", len(p))
	}
	return nil
}

// WriteObject writes p as a length-prefixed byte string: the uint64 length
// followed by the raw bytes. This is bit-for-bit the inverse of a
// ReadUInt64 + ReadBytes sequence.
func WriteObject(w io.Writer, p []byte) error {
	if err := WriteUInt64(w, uint64(len(p))); err != nil {
		return err
	}
	return WriteBytes(w, p)
}
