package checkpoint

import (
	"bytes"

	"github.com/lgolsearch/search/pkg/bfs"
	"github.com/lgolsearch/search/pkg/dedupe"
	apperrors "github.com/lgolsearch/search/pkg/errors"
	"github.com/lgolsearch/search/pkg/forest"
	"github.com/lgolsearch/search/pkg/graph"
	"github.com/lgolsearch/search/pkg/queue"
)

// SaveState encodes s with c and writes it to path as a framed,
// compressed checkpoint file, the form a resumed search reads back with
// LoadState.
func SaveState[N graph.Node[KN], KN graph.KeyNode[HN], HN comparable](
	path string, s *bfs.State[N, KN, HN], c bfs.Codecs[N, KN, HN], opts Options,
) error {
	body, err := bfs.EncodeStateBytes(s, c)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeInternal, "encode bfs state", err)
	}
	return WriteFile(path, body, opts)
}

// LoadState reads a checkpoint previously written by SaveState and
// decodes it back into a State, using kns/q/dd as the (already
// configured, possibly chunk-backed) destination collections.
func LoadState[N graph.Node[KN], KN graph.KeyNode[HN], HN comparable](
	path string, c bfs.Codecs[N, KN, HN],
	kns *forest.Forest[KN], q *queue.ChunkQueue[bfs.Item[N]], dd dedupe.Dedupe[HN],
) (*bfs.State[N, KN, HN], error) {
	body, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return bfs.DecodeState(bytes.NewReader(body), c, kns, q, dd)
}
