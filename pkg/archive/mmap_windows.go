//go:build windows

package archive

import (
	"errors"
	"os"
	"reflect"
	"unsafe"

	"golang.org/x/sys/windows"
)

type windowsMapping struct {
	file      *os.File
	mapHandle windows.Handle
}

// openMmap maps path read-only, mirroring the teacher's
// mmap_windows.go OpenMmapFile but without the write/extend path.
func openMmap(path string) (*mmapFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	size := stat.Size()
	if size == 0 {
		f.Close()
		return nil, errors.New("archive: cannot map empty file")
	}

	mapHandle, err := windows.CreateFileMapping(
		windows.Handle(f.Fd()), nil, windows.PAGE_READONLY,
		uint32(size>>32), uint32(size&0xFFFFFFFF), nil)
	if err != nil {
		f.Close()
		return nil, err
	}

	addr, err := windows.MapViewOfFile(mapHandle, windows.FILE_MAP_READ, 0, 0, uintptr(size))
	if err != nil {
		windows.CloseHandle(mapHandle)
		f.Close()
		return nil, err
	}

	var data []byte
	header := (*reflect.SliceHeader)(unsafe.Pointer(&data))
	header.Data = addr
	header.Len = int(size)
	header.Cap = int(size)

	return &mmapFile{
		handle: &windowsMapping{file: f, mapHandle: mapHandle},
		data:   data,
	}, nil
}

func (m *mmapFile) close() error {
	wm, ok := m.handle.(*windowsMapping)
	if !ok || wm == nil {
		return nil
	}
	var firstErr error
	if len(m.data) > 0 {
		if err := windows.UnmapViewOfFile(uintptr(unsafe.Pointer(&m.data[0]))); err != nil {
			firstErr = err
		}
		m.data = nil
	}
	if err := windows.CloseHandle(wm.mapHandle); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := wm.file.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	m.handle = nil
	return firstErr
}

func madviseRandom(m *mmapFile) error { return nil }
