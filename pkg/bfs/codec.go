package bfs

import (
	"bytes"
	"io"

	"github.com/lgolsearch/search/pkg/dedupe"
	apperrors "github.com/lgolsearch/search/pkg/errors"
	"github.com/lgolsearch/search/pkg/forest"
	"github.com/lgolsearch/search/pkg/graph"
	"github.com/lgolsearch/search/pkg/queue"
	"github.com/lgolsearch/search/pkg/sal"
)

// Codecs bundles the element codecs a domain graph must supply to
// serialize and deserialize a State: one each for the key node, the
// working node, and the hash node. The wire layout itself (length
// prefixes, varint parent indices) is fixed by EncodeState/DecodeState.
type Codecs[N any, KN any, HN any] struct {
	N  sal.Codec[N]
	KN sal.Codec[KN]
	HN sal.Codec[HN]
}

// EncodeState writes s to w in the checkpoint wire format: a u64-prefixed
// run of (varint prev_idx, KN) pairs for the forest (sentinel root
// omitted), a u64-prefixed run of (prev_idx, N) pairs for the queue, a
// u64-prefixed run of HN for the dedupe set, then foresight and depth.
func EncodeState[N graph.Node[KN], KN graph.KeyNode[HN], HN comparable](w io.Writer, s *State[N, KN, HN], c Codecs[N, KN, HN]) error {
	if err := sal.WriteLen(w, s.Kns.Len()); err != nil {
		return err
	}
	var encErr error
	s.Kns.Iterate(func(idx int, kn KN) bool {
		if idx == 0 {
			return true
		}
		if err := sal.WriteVarint(w, s.Kns.PrevIdxOf(idx)); err != nil {
			encErr = err
			return false
		}
		if err := c.KN.Encode(w, kn); err != nil {
			encErr = err
			return false
		}
		return true
	})
	if encErr != nil {
		return encErr
	}

	if err := sal.WriteLen(w, s.Q.Len()); err != nil {
		return err
	}
	s.Q.Iterate(func(it Item[N]) bool {
		if err := sal.WriteVarint(w, it.PrevIdx); err != nil {
			encErr = err
			return false
		}
		if err := c.N.Encode(w, it.Node); err != nil {
			encErr = err
			return false
		}
		return true
	})
	if encErr != nil {
		return encErr
	}

	dd := s.Dedupe.ClonedIter()
	if err := sal.WriteLen(w, len(dd)); err != nil {
		return err
	}
	for _, hn := range dd {
		if err := c.HN.Encode(w, hn); err != nil {
			return err
		}
	}

	if err := sal.WriteLen(w, s.Foresight); err != nil {
		return err
	}
	return sal.WriteLen(w, s.Depth)
}

// EncodeStateBytes is EncodeState into a fresh buffer, for lifecycle
// collaborators whose DebugBFS2Checkpoint thunk must return []byte.
func EncodeStateBytes[N graph.Node[KN], KN graph.KeyNode[HN], HN comparable](s *State[N, KN, HN], c Codecs[N, KN, HN]) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeState(&buf, s, c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeState reads a State previously written by EncodeState into kns, q
// and dd, which the caller supplies freshly created (kns at its
// sentinel-only state, q and dd empty) and already configured with the
// backing of its choice (heap or mmap, in-memory or chunk-backed dedupe).
func DecodeState[N graph.Node[KN], KN graph.KeyNode[HN], HN comparable](
	r io.Reader,
	c Codecs[N, KN, HN],
	kns *forest.Forest[KN],
	q *queue.ChunkQueue[Item[N]],
	dd dedupe.Dedupe[HN],
) (*State[N, KN, HN], error) {
	knsLen, err := sal.ReadLen(r)
	if err != nil {
		return nil, err
	}
	for i := 1; i < knsLen; i++ {
		prevIdx, err := sal.ReadVarint(r)
		if err != nil {
			return nil, err
		}
		kn, err := c.KN.Decode(r)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.CodeDeserialization, "decode key node", err)
		}
		kns.Push(prevIdx, kn)
	}

	qLen, err := sal.ReadLen(r)
	if err != nil {
		return nil, err
	}
	for i := 0; i < qLen; i++ {
		prevIdx, err := sal.ReadVarint(r)
		if err != nil {
			return nil, err
		}
		n, err := c.N.Decode(r)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.CodeDeserialization, "decode node", err)
		}
		q.PushBack(Item[N]{PrevIdx: prevIdx, Node: n})
	}

	ddLen, err := sal.ReadLen(r)
	if err != nil {
		return nil, err
	}
	for i := 0; i < ddLen; i++ {
		hn, err := c.HN.Decode(r)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.CodeDeserialization, "decode hash node", err)
		}
		dd.Insert(hn)
	}

	foresight, err := sal.ReadLen(r)
	if err != nil {
		return nil, err
	}
	depth, err := sal.ReadLen(r)
	if err != nil {
		return nil, err
	}

	return &State[N, KN, HN]{Kns: kns, Q: q, Dedupe: dd, Foresight: foresight, Depth: depth}, nil
}
