// Package column implements the client-side column types of the colwire
// wire layer. A column holds the values of one field across many rows,
// packed for contiguous (de)serialization and exposed to callers as
// random-access, zero-copy views.
//
// # Ownership model
//
// Every row is a non-owning byte view whose backing memory belongs to
// exactly one of three owners:
//
//  1. An arena block owned by the column. Plain appends copy the value
//     into a fixed-capacity block; a new block is allocated when the
//     current one lacks room, sized to the larger of the default block
//     size and the value itself. Blocks are never resized in place, so
//     views stay valid for the life of the column.
//  2. The column's owned-data store. Ownership-transferring appends move
//     the caller's buffer into the store without copying; each stored
//     buffer keeps a stable backing array.
//  3. An external owner. AppendNoManagedLifetime records the caller's
//     bytes without copying or taking ownership. This is the single
//     unsafe escape hatch from the ownership discipline: the caller must
//     keep the bytes alive and unmodified for as long as the column is
//     used.
//
// # Concurrency
//
// Columns are not synchronized. A column must not be mutated from more
// than one goroutine, nor mutated while another goroutine reads it.
//
// # Wire format
//
// A column body is rowCount repetitions of (uint64 little-endian length,
// raw bytes), with no padding or terminator. The row count itself is
// carried externally, either by the session protocol or by the file
// container in this package.
package column
