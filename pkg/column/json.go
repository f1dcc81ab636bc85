package column

import (
	"io"
	"math"

	gojson "github.com/goccy/go-json"

	"github.com/ajitpratap0/colwire/pkg/errors"
	stringpool "github.com/ajitpratap0/colwire/pkg/strings"
	"github.com/ajitpratap0/colwire/pkg/wire"
)

// maxRowReserve bounds the row index capacity reserved ahead of a load;
// beyond it the index grows as rows actually arrive.
const maxRowReserve = 1 << 20

// JSONColumn is the variable-length string column: the indexed/JSON string
// variant among the column kinds. Rows are byte views backed by arena
// blocks, by the owned-data store, or by caller-owned buffers; see the
// package documentation for the ownership model.
type JSONColumn struct {
	items  [][]byte // row index, one view per row
	blocks []*block
	owned  [][]byte // owned-data store; element backing arrays are stable
}

var _ Column = (*JSONColumn)(nil)

// NewJSONColumn creates an empty column
func NewJSONColumn() *JSONColumn {
	return &JSONColumn{}
}

// NewJSONColumnFromStrings builds a column by copying all values into a
// single arena block pre-sized to their total length.
func NewJSONColumnFromStrings(values []string) *JSONColumn {
	c := &JSONColumn{
		items: make([][]byte, 0, len(values)),
	}
	if len(values) == 0 {
		return c
	}

	total := 0
	for _, v := range values {
		total += len(v)
	}

	blk := newBlock(total)
	c.blocks = append(c.blocks, blk)
	for _, v := range values {
		c.items = append(c.items, blk.appendUnsafe(stringpool.StringToBytes(v)))
	}
	return c
}

// NewJSONColumnOwned builds a column by taking ownership of the given
// buffers without copying their bytes. The caller must not reuse or modify
// the buffers afterward.
func NewJSONColumnOwned(values [][]byte) *JSONColumn {
	c := &JSONColumn{
		items: make([][]byte, 0, len(values)),
		owned: make([][]byte, 0, len(values)),
	}
	for _, v := range values {
		c.owned = append(c.owned, v)
		c.items = append(c.items, v)
	}
	return c
}

// Type returns TypeJSON
func (c *JSONColumn) Type() Type {
	return TypeJSON
}

// Size returns the number of rows
func (c *JSONColumn) Size() int {
	return len(c.items)
}

// ensureBlock returns a block with room for n more bytes, allocating a new
// one of max(DefaultBlockSize, n) when the current block lacks room.
func (c *JSONColumn) ensureBlock(n int) *block {
	if len(c.blocks) == 0 || c.blocks[len(c.blocks)-1].available() < n {
		c.blocks = append(c.blocks, newBlock(max(DefaultBlockSize, n)))
	}
	return c.blocks[len(c.blocks)-1]
}

// Append copies s into an arena block and records a view over the copy.
func (c *JSONColumn) Append(s string) {
	c.AppendBytes(stringpool.StringToBytes(s))
}

// AppendBytes copies p into an arena block and records a view over the
// copy. The caller keeps ownership of p.
func (c *JSONColumn) AppendBytes(p []byte) {
	c.items = append(c.items, c.ensureBlock(len(p)).appendUnsafe(p))
}

// AppendOwned transfers ownership of p into the column's owned-data store
// and records a view over it, without copying the bytes. The caller must
// not reuse or modify p afterward.
func (c *JSONColumn) AppendOwned(p []byte) {
	c.owned = append(c.owned, p)
	c.items = append(c.items, p)
}

// AppendNoManagedLifetime records a view over p without copying the bytes
// or taking ownership of them.
//
// UNSAFE: this is the single escape hatch from the column's ownership
// discipline. The caller must guarantee p stays alive and unmodified for
// as long as the column is read or serialized. Violating that corrupts
// rows silently; it is a precondition, not a detectable error.
func (c *JSONColumn) AppendNoManagedLifetime(p []byte) {
	c.items = append(c.items, p)
}

// AppendJSON validates s as JSON and appends it as a managed copy. It is
// the opt-in front door for callers that want malformed documents rejected
// before they reach the wire.
func (c *JSONColumn) AppendJSON(s string) error {
	if !gojson.Valid(stringpool.StringToBytes(s)) {
		return errors.New(errors.ErrorTypeValidation, "invalid JSON document").
			WithDetail("length", len(s))
	}
	c.Append(s)
	return nil
}

// AppendColumn appends every row of other to this column, copying the bytes
// into this column's arena. A single block reservation sized to the batch
// total covers the common case; rows that still do not fit fall back to
// per-row block allocation.
func (c *JSONColumn) AppendColumn(other Column) error {
	src, ok := other.(*JSONColumn)
	if !ok {
		return errors.New(errors.ErrorTypeValidation, "cannot append column of different type").
			WithDetail("expected", TypeJSON.String()).
			WithDetail("actual", other.Type().String())
	}

	total := 0
	for _, it := range src.items {
		total += len(it)
	}
	c.ensureBlock(total)

	for _, it := range src.items {
		c.items = append(c.items, c.ensureBlock(len(it)).appendUnsafe(it))
	}
	return nil
}

// At returns the row at the given index, bounds-checked.
func (c *JSONColumn) At(row int) (string, error) {
	if row < 0 || row >= len(c.items) {
		return "", errors.New(errors.ErrorTypeRange, "row out of range").
			WithDetail("row", row).
			WithDetail("size", len(c.items))
	}
	return stringpool.BytesToString(c.items[row]), nil
}

// Row returns the raw view of the given row without bounds checking, for
// hot paths that have already validated the index. The returned bytes must
// not be modified. Panics on an out-of-range index.
func (c *JSONColumn) Row(row int) []byte {
	return c.items[row]
}

// GetItem returns a tagged view of one cell
func (c *JSONColumn) GetItem(row int) (ItemView, error) {
	if row < 0 || row >= len(c.items) {
		return ItemView{}, errors.New(errors.ErrorTypeRange, "row out of range").
			WithDetail("row", row).
			WithDetail("size", len(c.items))
	}
	return ItemView{Type: TypeJSON, Data: c.items[row]}, nil
}

// Clear resets the column to the state of a fresh construction, releasing
// the row index, all arena blocks and the owned-data store at once.
func (c *JSONColumn) Clear() {
	c.items = nil
	c.blocks = nil
	c.owned = nil
}

// LoadBody reads rows length-prefixed values from the stream. Row bytes are
// read directly into the current arena block's tail, with no intermediate
// copy. Any failure resets the column to empty and reports a data error; a
// partially populated column is never observable.
func (c *JSONColumn) LoadBody(r io.Reader, rows int) error {
	c.Clear()
	if rows < 0 {
		return errors.New(errors.ErrorTypeData, "negative row count").
			WithDetail("rows", rows)
	}
	// Cap the up-front reservation: a declared count far beyond the stream's
	// actual contents must fail on read, not on allocation.
	c.items = make([][]byte, 0, min(rows, maxRowReserve))

	var blk *block
	for i := 0; i < rows; i++ {
		n, err := wire.ReadUInt64(r)
		if err != nil {
			c.Clear()
			return errors.Wrap(err, errors.ErrorTypeData, "failed to read row length").
				WithDetail("row", i)
		}
		if n > math.MaxInt32 {
			c.Clear()
			return errors.New(errors.ErrorTypeData, "row length out of bounds").
				WithDetail("row", i).
				WithDetail("length", n)
		}

		if blk == nil || uint64(blk.available()) < n {
			blk = newBlock(max(DefaultBlockSize, int(n)))
			c.blocks = append(c.blocks, blk)
		}

		if err := wire.ReadBytes(r, blk.writePos()[:n]); err != nil {
			c.Clear()
			return errors.Wrap(err, errors.ErrorTypeData, "failed to read row bytes").
				WithDetail("row", i)
		}
		c.items = append(c.items, blk.consumeTail(int(n)))
	}
	return nil
}

// SaveBody writes every row as a length-prefixed byte string in row index
// order, bit-for-bit the inverse of LoadBody's read sequence.
func (c *JSONColumn) SaveBody(w io.Writer) error {
	for i, it := range c.items {
		if err := wire.WriteObject(w, it); err != nil {
			return errors.Wrap(err, errors.ErrorTypeData, "failed to write row").
				WithDetail("row", i)
		}
	}
	return nil
}

// Slice returns a new column over rows [begin, begin+n), clamped to the row
// count; begin at or past the end yields an empty column. The selected rows
// are copied into one exactly sized block, so the result never aliases this
// column and survives its mutation or release.
func (c *JSONColumn) Slice(begin, n int) Column {
	result := NewJSONColumn()
	if begin < 0 || begin >= len(c.items) {
		return result
	}
	n = min(n, len(c.items)-begin)
	if n <= 0 {
		return result
	}

	selected := c.items[begin : begin+n]
	total := 0
	for _, it := range selected {
		total += len(it)
	}

	blk := newBlock(total)
	result.blocks = append(result.blocks, blk)
	result.items = make([][]byte, 0, n)
	for _, it := range selected {
		result.items = append(result.items, blk.appendUnsafe(it))
	}
	return result
}

// CloneEmpty returns a new, empty column of the same concrete type
func (c *JSONColumn) CloneEmpty() Column {
	return NewJSONColumn()
}

// Swap exchanges the row index, arena blocks and owned-data store with
// other in constant time. Swapping with a different concrete column type is
// a validation error.
func (c *JSONColumn) Swap(other Column) error {
	o, ok := other.(*JSONColumn)
	if !ok {
		return errors.New(errors.ErrorTypeValidation, "cannot swap columns of different types").
			WithDetail("expected", TypeJSON.String()).
			WithDetail("actual", other.Type().String())
	}
	c.items, o.items = o.items, c.items
	c.blocks, o.blocks = o.blocks, c.blocks
	c.owned, o.owned = o.owned, c.owned
	return nil
}
