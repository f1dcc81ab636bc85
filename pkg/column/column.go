package column

import (
	"io"

	"github.com/ajitpratap0/colwire/pkg/errors"
	stringpool "github.com/ajitpratap0/colwire/pkg/strings"
)

// Type is the wire tag identifying the concrete kind of a column.
type Type byte

const (
	// TypeInvalid is the zero value; no column carries it
	TypeInvalid Type = iota
	// TypeInt64 tags 64-bit signed integer columns
	TypeInt64
	// TypeFloat64 tags 64-bit float columns
	TypeFloat64
	// TypeBool tags boolean columns
	TypeBool
	// TypeString tags fixed-semantics string columns
	TypeString
	// TypeJSON tags variable-length indexed JSON string columns
	TypeJSON
)

// String returns the human-readable name of the type tag
func (t Type) String() string {
	switch t {
	case TypeInt64:
		return "int64"
	case TypeFloat64:
		return "float64"
	case TypeBool:
		return "bool"
	case TypeString:
		return "string"
	case TypeJSON:
		return "json"
	default:
		return "invalid"
	}
}

// Column is the contract every concrete column type implements. Structural
// operations that pair two columns (AppendColumn, Swap) are strict same-type
// operations and report a validation error on a concrete-type mismatch.
type Column interface {
	// Type returns the wire tag of the concrete column type.
	Type() Type
	// Size returns the number of rows.
	Size() int
	// AppendColumn appends every row of other to this column.
	AppendColumn(other Column) error
	// LoadBody reads rows values from the stream. On any failure the
	// column is left empty, never partially populated.
	LoadBody(r io.Reader, rows int) error
	// SaveBody writes every row to the stream in row order.
	SaveBody(w io.Writer) error
	// Clear resets the column to the state of a fresh construction.
	Clear()
	// Slice returns a new column over rows [begin, begin+n), clamped to
	// the row count. The result never aliases this column's memory.
	Slice(begin, n int) Column
	// CloneEmpty returns a new, empty column of the same concrete type.
	CloneEmpty() Column
	// Swap exchanges all contents with other in constant time.
	Swap(other Column) error
	// GetItem returns a tagged view of one cell for callers that do not
	// know the concrete column type.
	GetItem(row int) (ItemView, error)
}

// ItemView is a tagged, non-owning view of a single cell. The bytes belong
// to the column (or, for borrowed rows, to the original external owner) and
// must not be modified.
type ItemView struct {
	Type Type
	Data []byte
}

// String returns the cell bytes as a string without copying
func (v ItemView) String() string {
	return stringpool.BytesToString(v.Data)
}

// New creates an empty column of the given type. It is the factory used
// when decoding self-describing containers.
func New(t Type) (Column, error) {
	switch t {
	case TypeJSON:
		return NewJSONColumn(), nil
	default:
		return nil, errors.New(errors.ErrorTypeValidation, "unsupported column type").
			WithDetail("type", t.String())
	}
}
