package column

import (
	"io"
	"math"

	"github.com/ajitpratap0/colwire/pkg/errors"
	"github.com/ajitpratap0/colwire/pkg/wire"
)

// File container layout: magic, format version, type tag, uint64 row
// count, column body. The session protocol carries the row count out of
// band; the container exists so a single column can be persisted and
// re-read standalone.
const (
	fileMagic   = "CWIR"
	fileVersion = byte(1)
)

// WriteFile writes col as a self-describing single-column container.
func WriteFile(w io.Writer, col Column) error {
	header := make([]byte, 0, len(fileMagic)+2)
	header = append(header, fileMagic...)
	header = append(header, fileVersion, byte(col.Type()))
	if _, err := w.Write(header); err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to write container header")
	}

	if err := wire.WriteUInt64(w, uint64(col.Size())); err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to write row count")
	}
	return col.SaveBody(w)
}

// ReadFile reads a container written by WriteFile and returns the decoded
// column.
func ReadFile(r io.Reader) (Column, error) {
	header := make([]byte, len(fileMagic)+2)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to read container header")
	}
	if string(header[:len(fileMagic)]) != fileMagic {
		return nil, errors.New(errors.ErrorTypeFile, "not a column container: bad magic")
	}
	if header[len(fileMagic)] != fileVersion {
		return nil, errors.New(errors.ErrorTypeFile, "unsupported container version").
			WithDetail("version", header[len(fileMagic)])
	}

	col, err := New(Type(header[len(fileMagic)+1]))
	if err != nil {
		return nil, err
	}

	rows, err := wire.ReadUInt64(r)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to read row count")
	}
	// An on-disk count is untrusted input; reject anything that cannot be a
	// real row count before it reaches the int-typed load path.
	if rows > math.MaxInt32 {
		return nil, errors.New(errors.ErrorTypeData, "row count out of bounds").
			WithDetail("rows", rows)
	}
	if err := col.LoadBody(r, int(rows)); err != nil {
		return nil, err
	}
	return col, nil
}
