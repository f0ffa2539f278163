// Package checkpoint frames a BFS state snapshot (the body pkg/bfs's
// EncodeState/DecodeState produce) into an on-disk file: magic bytes, a
// format version, a compression tag, and the (optionally compressed)
// body. pkg/bfs and pkg/dfs know nothing about files or compression —
// this is the layer that turns their wire bytes into something a CLI can
// write to and resume from disk.
package checkpoint

import (
	"fmt"
	"io"
	"os"

	"github.com/lgolsearch/search/pkg/compression"
	apperrors "github.com/lgolsearch/search/pkg/errors"
	"github.com/lgolsearch/search/pkg/sal"
)

// MagicBytes identifies a checkpoint file; any other leading 4 bytes is
// rejected outright rather than guessed at.
const MagicBytes = "LGCK"

// FormatVersion is the current checkpoint file format. Bump it whenever
// the framing (not the body codec, which versions independently via the
// domain graph's own codecs) changes incompatibly.
const FormatVersion = 1

// Options controls how a checkpoint is written; reading auto-detects the
// compression tag actually present in the file and needs no options.
type Options struct {
	Compression      compression.Type
	CompressionLevel compression.Level
}

// DefaultOptions compresses with zstd at the default level, matching the
// engine's other on-disk artifacts.
func DefaultOptions() Options {
	return Options{Compression: compression.TypeZstd, CompressionLevel: compression.LevelDefault}
}

// Write frames body (a raw EncodeState payload) and writes it
// to w: 4 magic bytes, a version byte, a compression-type byte, a u64
// compressed-length prefix, then the compressed body.
func Write(w io.Writer, body []byte, opts Options) error {
	comp, err := compression.New(opts.Compression, opts.CompressionLevel)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeConfigError, "build checkpoint compressor", err)
	}
	defer compression.Close(comp)

	packed, err := comp.Compress(body)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeInternal, "compress checkpoint body", err)
	}

	if _, err := io.WriteString(w, MagicBytes); err != nil {
		return apperrors.Wrap(apperrors.CodeIO, "write checkpoint magic", err)
	}
	if _, err := w.Write([]byte{FormatVersion, byte(comp.Type())}); err != nil {
		return apperrors.Wrap(apperrors.CodeIO, "write checkpoint header", err)
	}
	if err := sal.WriteLen(w, len(packed)); err != nil {
		return apperrors.Wrap(apperrors.CodeIO, "write checkpoint length prefix", err)
	}
	if _, err := w.Write(packed); err != nil {
		return apperrors.Wrap(apperrors.CodeIO, "write checkpoint body", err)
	}
	return nil
}

// WriteFile is Write to a freshly created file at path.
func WriteFile(path string, body []byte, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeIO, "create checkpoint file", err)
	}
	defer f.Close()
	return Write(f, body, opts)
}

// Read un-frames a checkpoint previously written by Write, returning the
// raw body bytes ready for the caller's own DecodeState.
func Read(r io.Reader) ([]byte, error) {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeDeserialization, "read checkpoint magic", err)
	}
	if string(magic[:]) != MagicBytes {
		return nil, apperrors.New(apperrors.CodeDeserialization, fmt.Sprintf("not a checkpoint file (got magic %q)", magic[:]))
	}

	var header [2]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeDeserialization, "read checkpoint header", err)
	}
	version, compType := header[0], compression.Type(header[1])
	if version != FormatVersion {
		return nil, apperrors.New(apperrors.CodeDeserialization, fmt.Sprintf("unsupported checkpoint version %d", version))
	}

	n, err := sal.ReadLen(r)
	if err != nil {
		return nil, err
	}
	packed := make([]byte, n)
	if _, err := io.ReadFull(r, packed); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeDeserialization, "read checkpoint body", err)
	}

	comp, err := compression.New(compType, compression.LevelDefault)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeDeserialization, "build checkpoint decompressor", err)
	}
	defer compression.Close(comp)

	body, err := comp.Decompress(packed)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeDeserialization, "decompress checkpoint body", err)
	}
	return body, nil
}

// ReadFile is Read from the file at path.
func ReadFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeIO, "open checkpoint file", err)
	}
	defer f.Close()
	return Read(f)
}
