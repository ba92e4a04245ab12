package archive

import (
	"encoding/binary"
	"errors"
)

// Header fields are laid out as a fixed 24-byte prefix (spec §3 "Archive
// header"), followed by the stems array, the per-leaf size table, then
// the struct-of-arrays leaf data. Fixed width (rather than
// internal/varint's variable width) is used here deliberately: the header
// must be readable with a single syscall-free slice before anything else
// about the file is known, and internal/varint is used instead for the
// per-leaf size table, where most values are small.
const (
	magic      = 0x4b444631 // "KDF1"
	headerSize = 24
)

// AxisKind records which coordinate/accumulator family was used to build
// the archived tree (MetricKind records the metric). Open rejects tag
// values it does not know, but does not compare the stored tags with the
// type parameters it is called with.
type AxisKind uint8

const (
	AxisFloat32 AxisKind = iota
	AxisFloat64
	AxisFixed8
	AxisFixed16
	AxisFixed32
)

type MetricKind uint8

const (
	MetricSquaredEuclidean MetricKind = iota
	MetricManhattan
)

// Header is the decoded form of an archive's fixed prefix.
type Header struct {
	K          uint16
	B          uint16
	Axis       AxisKind
	Metric     MetricKind
	StemCount  uint32
	LeafCount  uint32
	PointCount uint32
}

// ErrBadHeader is returned when a file's magic number or axis/metric tag
// is not recognised.
var ErrBadHeader = errors.New("archive: bad header")

// ErrTruncated is returned when a file is shorter than its own header
// says it should be.
var ErrTruncated = errors.New("archive: truncated file")

func encodeHeader(h Header) []byte {
	buf := make([]byte, headerSize)
	binary.LittleEndian.PutUint32(buf[0:4], magic)
	buf[4] = 1 // format version
	binary.LittleEndian.PutUint16(buf[5:7], h.K)
	binary.LittleEndian.PutUint16(buf[7:9], h.B)
	buf[9] = byte(h.Axis)
	buf[10] = byte(h.Metric)
	// buf[11] reserved/padding
	binary.LittleEndian.PutUint32(buf[12:16], h.StemCount)
	binary.LittleEndian.PutUint32(buf[16:20], h.LeafCount)
	binary.LittleEndian.PutUint32(buf[20:24], h.PointCount)
	return buf
}

func decodeHeader(buf []byte) (Header, error) {
	var h Header
	if len(buf) < headerSize {
		return h, ErrTruncated
	}
	if binary.LittleEndian.Uint32(buf[0:4]) != magic {
		return h, ErrBadHeader
	}
	if buf[4] != 1 {
		return h, ErrBadHeader
	}
	h.K = binary.LittleEndian.Uint16(buf[5:7])
	h.B = binary.LittleEndian.Uint16(buf[7:9])
	h.Axis = AxisKind(buf[9])
	h.Metric = MetricKind(buf[10])
	h.StemCount = binary.LittleEndian.Uint32(buf[12:16])
	h.LeafCount = binary.LittleEndian.Uint32(buf[16:20])
	h.PointCount = binary.LittleEndian.Uint32(buf[20:24])
	if h.Axis > AxisFixed32 || h.Metric > MetricManhattan {
		return h, ErrBadHeader
	}
	return h, nil
}
