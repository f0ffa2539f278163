// Package sal ("serialize-as-layout") defines the generic codec contracts
// the checkpoint formats are built from: a length-prefixed element stream
// plus the primitive readers/writers every concrete codec composes.
package sal

import (
	"encoding/binary"
	"io"

	apperrors "github.com/lgolsearch/search/pkg/errors"
)

// Codec encodes and decodes a single element of T to/from the wire.
// Concrete codecs (one per domain type: KN, N, HN) live next to the type
// they serialize; sal only fixes the shape of the contract.
type Codec[T any] interface {
	Encode(w io.Writer, v T) error
	Decode(r io.Reader) (T, error)
}

// SerializerFor writes a whole value of T to w.
type SerializerFor[T any] interface {
	ToWriter(w io.Writer, v *T) error
}

// DeserializerFor reads a whole value of T from r.
type DeserializerFor[T any] interface {
	FromReader(r io.Reader) (*T, error)
}

// WriteLen writes n as a big-endian u64 length prefix.
func WriteLen(w io.Writer, n int) error {
	return binary.Write(w, binary.BigEndian, uint64(n))
}

// ReadLen reads a big-endian u64 length prefix.
func ReadLen(r io.Reader) (int, error) {
	var n uint64
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return 0, apperrors.Wrap(apperrors.CodeDeserialization, "read length prefix", err)
	}
	return int(n), nil
}

// WriteVarint writes n as an unsigned LEB128 varint, matching the
// teacher's compact index encoding for forest parent pointers.
func WriteVarint(w io.Writer, n int) error {
	var buf [binary.MaxVarintLen64]byte
	sz := binary.PutUvarint(buf[:], uint64(n))
	_, err := w.Write(buf[:sz])
	if err != nil {
		return apperrors.Wrap(apperrors.CodeIO, "write varint", err)
	}
	return nil
}

// ReadVarint reads an unsigned LEB128 varint.
func ReadVarint(r io.Reader) (int, error) {
	v, err := binary.ReadUvarint(byteReader{r})
	if err != nil {
		return 0, apperrors.Wrap(apperrors.CodeDeserialization, "read varint", err)
	}
	return int(v), nil
}

// byteReader adapts an io.Reader lacking ReadByte (our framed readers are
// plain io.Reader) to io.ByteReader, one byte at a time. Checkpoint reads
// are infrequent (once per resume), so the extra syscalls are immaterial.
type byteReader struct {
	r io.Reader
}

func (b byteReader) ReadByte() (byte, error) {
	var buf [1]byte
	if _, err := io.ReadFull(b.r, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}
