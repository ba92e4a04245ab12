package archive

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"

	"kdforest/internal/varint"
	"kdforest/pkg/axis"
	"kdforest/pkg/immutable"
	"kdforest/pkg/leaf"
)

// Payload is the set of item types pkg/archive can serialize. An
// in-memory immutable.Tree works with any payload type T; writing one
// to an archive additionally requires T to be a fixed-width integer, so
// it round-trips through the per-leaf item arrays (stored as 8-byte
// little-endian integers) without needing a user-supplied codec (spec §6
// "archive.Write").
type Payload interface {
	~int | ~int32 | ~int64 | ~uint | ~uint32 | ~uint64
}

// Write serializes tree to path in the archive format (spec §3's
// "(new)" archive section): a fixed header, the stem split-value array,
// a varint-encoded per-leaf size table, then the leaf content arrays.
func Write[A axis.Coord, D axis.Coord, T Payload](path string, tree *immutable.Tree[A, D, T], ax AxisKind, m MetricKind) error {
	var buf bytes.Buffer

	h := Header{
		K:          uint16(tree.K()),
		B:          uint16(tree.B()),
		Axis:       ax,
		Metric:     m,
		StemCount:  uint32(tree.StemCount()),
		LeafCount:  uint32(tree.LeafCount()),
		PointCount: uint32(tree.Size()),
	}
	buf.Write(encodeHeader(h))

	if err := binary.Write(&buf, binary.LittleEndian, tree.RawStems()[1:]); err != nil {
		return err
	}

	sizeTable := make([]byte, 0, tree.LeafCount()*2)
	for i := 0; i < tree.LeafCount(); i++ {
		sizeTable = varint.Put(sizeTable, uint64(tree.LeafAt(i).Len()))
	}
	buf.Write(sizeTable)

	for i := 0; i < tree.LeafCount(); i++ {
		l := tree.LeafAt(i)
		n := l.Len()
		for d := 0; d < tree.K(); d++ {
			if err := binary.Write(&buf, binary.LittleEndian, l.ContentPoints[d][:n]); err != nil {
				return err
			}
		}
		items := make([]int64, n)
		for s := 0; s < n; s++ {
			items[s] = int64(l.ItemAt(s))
		}
		if err := binary.Write(&buf, binary.LittleEndian, items); err != nil {
			return err
		}
	}

	return os.WriteFile(path, buf.Bytes(), 0644)
}

// Open reads an entire archive into memory and reconstructs an
// immutable.Tree from it (spec §6 "archive.Open").
func Open[A axis.Coord, D axis.Coord, T Payload](path string, traits axis.Traits[A, D]) (*immutable.Tree[A, D, T], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return decode[A, D, T](data, traits)
}

// MappedTree holds a memory-mapped archive alongside the decoded tree
// built from it. Call Close when done to release the mapping; the
// decoded tree itself is an ordinary in-memory copy of the leaf/stem
// data and remains valid after Close (spec §5 "archive's mmap lifetime
// rule": the caller controls the mapping, not the tree).
type MappedTree[A axis.Coord, D axis.Coord, T Payload] struct {
	Tree *immutable.Tree[A, D, T]
	mf   *mmapFile
}

// Close unmaps the underlying file.
func (mt *MappedTree[A, D, T]) Close() error {
	return mt.mf.close()
}

// OpenMmap maps path and decodes a tree from the mapped bytes, advising
// the kernel that subsequent access is random (root-to-leaf descents,
// not a sequential scan) — see mmap_unix.go's madviseRandom, adapted
// from the teacher's pager which never needed this hint because it
// always owns read/write access and its own buffer pool.
func OpenMmap[A axis.Coord, D axis.Coord, T Payload](path string, traits axis.Traits[A, D]) (*MappedTree[A, D, T], error) {
	mf, err := openMmap(path)
	if err != nil {
		return nil, err
	}
	_ = madviseRandom(mf)

	tree, err := decode[A, D, T](mf.Bytes(), traits)
	if err != nil {
		mf.close()
		return nil, err
	}
	return &MappedTree[A, D, T]{Tree: tree, mf: mf}, nil
}

func decode[A axis.Coord, D axis.Coord, T Payload](data []byte, traits axis.Traits[A, D]) (*immutable.Tree[A, D, T], error) {
	if len(data) < headerSize {
		return nil, ErrTruncated
	}
	h, err := decodeHeader(data[:headerSize])
	if err != nil {
		return nil, err
	}

	off := headerSize
	var zero A
	elemSize := binarySize(zero)

	stemBytes := int(h.StemCount) * elemSize
	if off+stemBytes > len(data) {
		return nil, ErrTruncated
	}
	stems := make([]A, h.StemCount+1) // index 0 unused, matches RawStems layout
	if h.StemCount > 0 {
		r := bytes.NewReader(data[off : off+stemBytes])
		if err := binary.Read(r, binary.LittleEndian, stems[1:]); err != nil {
			return nil, err
		}
	}
	off += stemBytes

	sizes := make([]int, h.LeafCount)
	for i := range sizes {
		v, n := varint.Get(data[off:])
		if n == 0 {
			return nil, ErrTruncated
		}
		sizes[i] = int(v)
		off += n
	}

	leaves := make([]*leaf.SoA[A, T], h.LeafCount)
	for i := range leaves {
		n := sizes[i]
		l := leaf.NewSoA[A, T](int(h.K), n)
		for d := 0; d < int(h.K); d++ {
			colBytes := n * elemSize
			if off+colBytes > len(data) {
				return nil, ErrTruncated
			}
			r := bytes.NewReader(data[off : off+colBytes])
			if err := binary.Read(r, binary.LittleEndian, l.ContentPoints[d][:n]); err != nil {
				return nil, err
			}
			off += colBytes
		}
		items := make([]int64, n)
		itemBytes := n * 8
		if off+itemBytes > len(data) {
			return nil, ErrTruncated
		}
		r := bytes.NewReader(data[off : off+itemBytes])
		if err := binary.Read(r, binary.LittleEndian, items); err != nil {
			return nil, err
		}
		off += itemBytes
		l.Size = n
		for s := 0; s < n; s++ {
			l.ContentItems[s] = T(items[s])
		}
		leaves[i] = l
	}

	return immutable.FromParts[A, D, T](int(h.K), int(h.B), traits, stems, leaves, int(h.PointCount)), nil
}

func binarySize(v any) int {
	switch v.(type) {
	case float32, int32, uint32:
		return 4
	case float64, int64, uint64:
		return 8
	case uint8:
		return 1
	case uint16, int16:
		return 2
	default:
		panic(errors.New("archive: unsupported coordinate type"))
	}
}
