package lgol

import (
	"encoding/binary"
	"io"

	apperrors "github.com/lgolsearch/search/pkg/errors"
	"github.com/lgolsearch/search/pkg/sal"
)

// NodeCodec, KeyNodeCodec and HashNodeCodec give a Graph's pkg/bfs.Codecs
// the wire encoding for its own concrete node types. Background
// coordinates round-trip through the graph's own BgGroup (FromIdx), and a
// partial node's constraint accumulator round-trips through the graph's
// own Constraint, since neither type carries enough information on its
// own to decode without that context.
func (g *Graph) NodeCodec() sal.Codec[Node]         { return nodeCodec{g} }
func (g *Graph) KeyNodeCodec() sal.Codec[KeyNode]   { return keyNodeCodec{g} }
func (g *Graph) HashNodeCodec() sal.Codec[HashNode] { return hashNodeCodec{g} }

type keyNodeCodec struct{ g *Graph }
type hashNodeCodec struct{ g *Graph }
type nodeCodec struct{ g *Graph }

func writeInt16(w io.Writer, v int16) error {
	if err := binary.Write(w, binary.BigEndian, v); err != nil {
		return apperrors.Wrap(apperrors.CodeIO, "write int16", err)
	}
	return nil
}

func readInt16(r io.Reader) (int16, error) {
	var v int16
	if err := binary.Read(r, binary.BigEndian, &v); err != nil {
		return 0, apperrors.Wrap(apperrors.CodeDeserialization, "read int16", err)
	}
	return v, nil
}

func writeRow(w io.Writer, row Row) error {
	if err := binary.Write(w, binary.BigEndian, row); err != nil {
		return apperrors.Wrap(apperrors.CodeIO, "write row", err)
	}
	return nil
}

func readRow(r io.Reader) (Row, error) {
	var row Row
	if err := binary.Read(r, binary.BigEndian, &row); err != nil {
		return 0, apperrors.Wrap(apperrors.CodeDeserialization, "read row", err)
	}
	return row, nil
}

func writeRowHistory(w io.Writer, rs RowHistory) error {
	for _, r := range rs {
		if err := writeRow(w, r); err != nil {
			return err
		}
	}
	return nil
}

func readRowHistory(r io.Reader) (RowHistory, error) {
	var rs RowHistory
	for i := range rs {
		row, err := readRow(r)
		if err != nil {
			return rs, err
		}
		rs[i] = row
	}
	return rs, nil
}

func (c keyNodeCodec) Encode(w io.Writer, kn KeyNode) error {
	if err := sal.WriteVarint(w, kn.Bg.ToIdx()); err != nil {
		return err
	}
	if err := writeInt16(w, kn.DU); err != nil {
		return err
	}
	if err := writeInt16(w, kn.DV); err != nil {
		return err
	}
	return writeRowHistory(w, kn.Rs)
}

func (c keyNodeCodec) Decode(r io.Reader) (KeyNode, error) {
	idx, err := sal.ReadVarint(r)
	if err != nil {
		return KeyNode{}, err
	}
	du, err := readInt16(r)
	if err != nil {
		return KeyNode{}, err
	}
	dv, err := readInt16(r)
	if err != nil {
		return KeyNode{}, err
	}
	rs, err := readRowHistory(r)
	if err != nil {
		return KeyNode{}, err
	}
	return KeyNode{Bg: bgPhaseOf(c.g.params.Bg.FromIdx(idx)), DU: du, DV: dv, Rs: rs}, nil
}

func (c hashNodeCodec) Encode(w io.Writer, hn HashNode) error {
	if err := sal.WriteVarint(w, hn.Bg.ToIdx()); err != nil {
		return err
	}
	return writeRowHistory(w, hn.Rs)
}

func (c hashNodeCodec) Decode(r io.Reader) (HashNode, error) {
	idx, err := sal.ReadVarint(r)
	if err != nil {
		return HashNode{}, err
	}
	rs, err := readRowHistory(r)
	if err != nil {
		return HashNode{}, err
	}
	return HashNode{Bg: bgPhaseOf(c.g.params.Bg.FromIdx(idx)), Rs: rs}, nil
}

func (c nodeCodec) Encode(w io.Writer, n Node) error {
	if err := sal.WriteVarint(w, n.Bg.ToIdx()); err != nil {
		return err
	}
	if err := writeInt16(w, n.DU); err != nil {
		return err
	}
	if err := writeInt16(w, n.DV); err != nil {
		return err
	}
	if err := sal.WriteVarint(w, n.Row); err != nil {
		return err
	}
	if err := writeRowHistory(w, n.R0s); err != nil {
		return err
	}
	if err := writeRow(w, n.R1); err != nil {
		return err
	}
	if err := sal.WriteVarint(w, n.R1L); err != nil {
		return err
	}
	return encodeCSS(w, c.g.params.Constraint, n.CSS)
}

func (c nodeCodec) Decode(r io.Reader) (Node, error) {
	idx, err := sal.ReadVarint(r)
	if err != nil {
		return Node{}, err
	}
	du, err := readInt16(r)
	if err != nil {
		return Node{}, err
	}
	dv, err := readInt16(r)
	if err != nil {
		return Node{}, err
	}
	row, err := sal.ReadVarint(r)
	if err != nil {
		return Node{}, err
	}
	r0s, err := readRowHistory(r)
	if err != nil {
		return Node{}, err
	}
	r1, err := readRow(r)
	if err != nil {
		return Node{}, err
	}
	r1l, err := sal.ReadVarint(r)
	if err != nil {
		return Node{}, err
	}
	css, err := decodeCSS(r, c.g.params.Constraint)
	if err != nil {
		return Node{}, err
	}
	return Node{
		Bg: bgPhaseOf(c.g.params.Bg.FromIdx(idx)),
		DU: du, DV: dv,
		Row: row,
		R0s: r0s, R1: r1, R1L: r1l,
		CSS: css,
	}, nil
}

// encodeCSS/decodeCSS serialize a constraint accumulator according to the
// concrete Constraint the graph was built with; ConstraintState only ever
// has one of its fields populated for a given constraint, so no runtime
// type tag is needed on the wire.
func encodeCSS(w io.Writer, constraint Constraint, css ConstraintState) error {
	switch constraint.(type) {
	case NoConstraint:
		return nil
	case UWindow:
		st := css.UWindow
		if err := binary.Write(w, binary.BigEndian, int64(st.min)); err != nil {
			return apperrors.Wrap(apperrors.CodeIO, "write uWindowStat.min", err)
		}
		if err := binary.Write(w, binary.BigEndian, int64(st.max)); err != nil {
			return apperrors.Wrap(apperrors.CodeIO, "write uWindowStat.max", err)
		}
		return nil
	case VPeriodDividing:
		st := css.VPeriod
		var validMask, valueMask uint64
		for i := 0; i < MaxWidth; i++ {
			if st.seenValid[i] {
				validMask = setBit(validMask, i)
			}
			if st.seenValue[i] {
				valueMask = setBit(valueMask, i)
			}
		}
		if err := writeRow(w, validMask); err != nil {
			return err
		}
		if err := writeRow(w, valueMask); err != nil {
			return err
		}
		return sal.WriteVarint(w, st.flips)
	default:
		return apperrors.New(apperrors.CodeInternal, "unknown constraint type for checkpoint encoding")
	}
}

func decodeCSS(r io.Reader, constraint Constraint) (ConstraintState, error) {
	switch constraint.(type) {
	case NoConstraint:
		return ConstraintState{}, nil
	case UWindow:
		var min64, max64 int64
		if err := binary.Read(r, binary.BigEndian, &min64); err != nil {
			return ConstraintState{}, apperrors.Wrap(apperrors.CodeDeserialization, "read uWindowStat.min", err)
		}
		if err := binary.Read(r, binary.BigEndian, &max64); err != nil {
			return ConstraintState{}, apperrors.Wrap(apperrors.CodeDeserialization, "read uWindowStat.max", err)
		}
		return ConstraintState{UWindow: uWindowStat{min: int(min64), max: int(max64)}}, nil
	case VPeriodDividing:
		validMask, err := readRow(r)
		if err != nil {
			return ConstraintState{}, err
		}
		valueMask, err := readRow(r)
		if err != nil {
			return ConstraintState{}, err
		}
		flips, err := sal.ReadVarint(r)
		if err != nil {
			return ConstraintState{}, err
		}
		var st vPeriodStat
		for i := 0; i < MaxWidth; i++ {
			st.seenValid[i] = getBit(validMask, i)
			st.seenValue[i] = getBit(valueMask, i)
		}
		st.flips = flips
		return ConstraintState{VPeriod: st}, nil
	default:
		return ConstraintState{}, apperrors.New(apperrors.CodeInternal, "unknown constraint type for checkpoint decoding")
	}
}
