package column

import (
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	stringpool "github.com/ajitpratap0/colwire/pkg/strings"
)

// ToArrow converts the column to an Arrow string array. Pass nil to use the
// default Go allocator. The returned array owns copies of the row bytes;
// callers release it independently of the column.
func (c *JSONColumn) ToArrow(mem memory.Allocator) *array.String {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}

	b := array.NewStringBuilder(mem)
	defer b.Release()

	b.Reserve(len(c.items))
	for _, it := range c.items {
		b.Append(stringpool.BytesToString(it))
	}
	return b.NewStringArray()
}

// AppendArrow appends every value of an Arrow string array to the column as
// managed copies. Null entries are appended as empty rows. The batch shares
// the single-reservation strategy of AppendColumn.
func (c *JSONColumn) AppendArrow(arr *array.String) {
	total := 0
	for i := 0; i < arr.Len(); i++ {
		if !arr.IsNull(i) {
			total += len(arr.Value(i))
		}
	}
	c.ensureBlock(total)

	for i := 0; i < arr.Len(); i++ {
		if arr.IsNull(i) {
			c.Append("")
			continue
		}
		c.Append(arr.Value(i))
	}
}
