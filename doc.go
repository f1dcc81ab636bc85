// Package colwire implements the column wire layer of a columnar database
// client: typed columns that pack one field's values across many rows and
// (de)serialize them as length-prefixed binary bodies.
//
// # Architecture
//
// The wire layer is built from three ideas:
//
// 1. Arena-backed storage: row values are copied into fixed-capacity,
// append-only blocks, amortizing allocation across many rows and releasing
// memory in bulk when a column is cleared.
//
// 2. Zero-copy views: every row is a non-owning byte view into a block, an
// ownership-transferred buffer, or a caller-owned buffer. Views are handed
// to callers without copying; columns never mutate row bytes after append.
//
// 3. Synchronous, all-or-nothing wire I/O: a column body either decodes
// completely or the column is left empty. Retry and cancellation belong to
// the transport above this layer.
//
// # Key Packages
//
//	pkg/column  - Column types, arena blocks, structural operations
//	pkg/wire    - Length-prefixed binary read/write primitives
//	pkg/errors  - Structured error handling
//	pkg/logger  - Structured logging
//	pkg/config  - Tool configuration
//
// # Quick Start
//
// Build, serialize and reload a string column:
//
//	col := column.NewJSONColumn()
//	col.Append(`{"id":1}`)
//	col.Append(`{"id":2}`)
//
//	var buf bytes.Buffer
//	if err := col.SaveBody(&buf); err != nil {
//	    // handle
//	}
//
//	loaded := column.NewJSONColumn()
//	if err := loaded.LoadBody(&buf, col.Size()); err != nil {
//	    // handle
//	}
//
// The colwire CLI in cmd/colwire inspects, dumps and builds standalone
// column container files.
package colwire
