package column

// DefaultBlockSize is the capacity of a freshly allocated arena block when
// no larger size is required. A value longer than this gets a dedicated
// block sized to exactly that value, so oversized rows cost at most one
// block each.
const DefaultBlockSize = 4096

// block is a fixed-capacity, append-only arena buffer with a high-water
// mark. It is the atomic unit of memory reuse: many row values are packed
// into one block to amortize allocation, and blocks are released in bulk
// when the column is cleared.
//
// A block is never resized, only replaced by a new block. Columns hold
// blocks by pointer, so growing the containing slice never relocates the
// bytes a view points into.
//
// The unsafe paths perform no bounds checking: every size check is hoisted
// to the column, which checks remaining capacity and allocates a new block
// before calling down.
type block struct {
	buf  []byte // len(buf) is the capacity, allocated once
	size int    // write offset, size <= len(buf) always
}

func newBlock(capacity int) *block {
	return &block{buf: make([]byte, capacity)}
}

// available returns the unused tail capacity
func (b *block) available() int {
	return len(b.buf) - b.size
}

// appendUnsafe copies p to the tail, advances the write offset and returns
// a view over the copied region. The caller guarantees
// len(p) <= b.available().
func (b *block) appendUnsafe(p []byte) []byte {
	start := b.size
	copy(b.buf[start:], p)
	b.size += len(p)
	return b.buf[start:b.size:b.size]
}

// writePos exposes the raw tail for direct writes, such as reading wire
// bytes straight into the block with no intermediate buffer. The caller
// must account for the written bytes with consumeTail.
func (b *block) writePos() []byte {
	return b.buf[b.size:]
}

// consumeTail advances the write offset over n bytes written out-of-band at
// the tail and returns a view over them. The caller guarantees n bytes were
// just written at writePos.
func (b *block) consumeTail(n int) []byte {
	start := b.size
	b.size += n
	return b.buf[start:b.size:b.size]
}
