package settings

import "io"

// Memory is an in-process Device. Unwritten cells read as 0xFF, like
// erased EEPROM.
type Memory struct {
	cells []byte
}

// NewMemory returns an erased device of size bytes.
func NewMemory(size int) *Memory {
	cells := make([]byte, size)
	for i := range cells {
		cells[i] = 0xFF
	}
	return &Memory{cells: cells}
}

// ReadAt implements io.ReaderAt.
func (m *Memory) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off+int64(len(p)) > int64(len(m.cells)) {
		return 0, io.EOF
	}
	return copy(p, m.cells[off:]), nil
}

// WriteAt implements io.WriterAt.
func (m *Memory) WriteAt(p []byte, off int64) (int, error) {
	if off < 0 || off+int64(len(p)) > int64(len(m.cells)) {
		return 0, io.ErrShortWrite
	}
	return copy(m.cells[off:], p), nil
}

// Bytes returns a copy of the device contents.
func (m *Memory) Bytes() []byte {
	return append([]byte(nil), m.cells...)
}
