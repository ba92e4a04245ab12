// Package archive implements the archived (mmap-backed, read-only)
// immutable tree format described by spec §3's "(new)" archive section
// and §6's archive.Write/Open/OpenMmap surface. It is adapted from the
// teacher's pkg/pager mmap file (mmap.go/mmap_unix.go/mmap_windows.go),
// stripped of page framing, the freelist and WAL machinery — an archive
// is a single flat, never-modified byte range, not a page store — and
// retargeted at mapping a serialized immutable tree instead of database
// pages.
package archive

// mmapFile is the platform-independent half of the memory mapping,
// mirroring the teacher's MmapFile struct shape.
type mmapFile struct {
	handle interface{} // the file name on Unix, a windows handle struct on Windows
	data   []byte
}

// Size returns the length of the mapped region.
func (m *mmapFile) Size() int { return len(m.data) }

// Bytes returns the full mapped region. Callers must not retain it past
// Close.
func (m *mmapFile) Bytes() []byte { return m.data }
