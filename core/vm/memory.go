package vm

import "github.com/holiman/uint256"

// SliceMemory is the reference Memory collaborator: a map of pages, each
// a growable byte slice, plus a flat register file for dst0 updates that
// target a register rather than a memory slot.
type SliceMemory struct {
	pages     map[uint32][]byte
	registers [16]*uint256.Int
}

// NewSliceMemory returns an empty memory with all registers zeroed.
func NewSliceMemory() *SliceMemory {
	m := &SliceMemory{pages: make(map[uint32][]byte)}
	for i := range m.registers {
		m.registers[i] = uint256.NewInt(0)
	}
	return m
}

// PerformDst0Update implements Memory.
func (m *SliceMemory) PerformDst0Update(cycle uint64, value *uint256.Int, isPointer bool, location DestinationLocation) {
	if location.UsesRegister {
		m.registers[location.Register%uint8(len(m.registers))] = value.Clone()
		return
	}
	b := value.Bytes32()
	m.WriteRange(location.Page, location.Index, b[:])
}

// Register returns the current value of a register slot, for tests and
// the cmd/logvm harness to inspect dst0 writes.
func (m *SliceMemory) Register(index uint8) *uint256.Int {
	return m.registers[index%uint8(len(m.registers))]
}

// HeapPageFromBase implements Memory. The heap page is the page
// immediately after a call frame's base page (base + 1).
func (m *SliceMemory) HeapPageFromBase(basePage uint32) uint32 {
	return basePage + 1
}

// ReadRange implements Memory, zero-extending past the end of a page.
func (m *SliceMemory) ReadRange(page, offset, length uint32) []byte {
	out := make([]byte, length)
	src := m.pages[page]
	for i := uint32(0); i < length; i++ {
		idx := offset + i
		if int(idx) < len(src) {
			out[i] = src[idx]
		}
	}
	return out
}

// WriteRange implements Memory, growing the target page as needed.
func (m *SliceMemory) WriteRange(page, offset uint32, data []byte) {
	buf := m.pages[page]
	need := int(offset) + len(data)
	if len(buf) < need {
		grown := make([]byte, need)
		copy(grown, buf)
		buf = grown
	}
	copy(buf[offset:], data)
	m.pages[page] = buf
}
