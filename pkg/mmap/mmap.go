// Package mmap maps the GPIO register block into memory and drives the LED
// matrix by writing its set and clear registers directly.
package mmap

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// DefaultDevice maps the GPIO block without needing /dev/mem
const DefaultDevice = "/dev/gpiomem"

// BlockSize is the size of the GPIO register block
const BlockSize = 4096

// MemoryMap represents a memory mapped region
type MemoryMap struct {
	offset int64
	region []byte
}

// NewMemoryMap maps size bytes of device starting at offset
func NewMemoryMap(device string, offset int64, size int) (*MemoryMap, error) {
	f, err := os.OpenFile(device, os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", device, err)
	}
	defer f.Close()

	region, err := unix.Mmap(int(f.Fd()), offset, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("failed to mmap %s: %w", device, err)
	}
	return &MemoryMap{offset: offset, region: region}, nil
}

// Close unmaps the memory region
func (m *MemoryMap) Close() error {
	return unix.Munmap(m.region)
}

// Read32 reads a 32-bit register
func (m *MemoryMap) Read32(offset uintptr) uint32 {
	return *(*uint32)(unsafe.Pointer(&m.region[offset]))
}

// Write32 writes a 32-bit register
func (m *MemoryMap) Write32(offset uintptr, value uint32) {
	*(*uint32)(unsafe.Pointer(&m.region[offset])) = value
}
