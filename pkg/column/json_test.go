package column

import (
	"bytes"
	"io"
	"testing"

	"github.com/ajitpratap0/colwire/pkg/errors"
)

func TestAppendAndAt(t *testing.T) {
	col := NewJSONColumn()
	col.Append("a")
	col.Append("")
	col.Append(`json:{"x":1}`)

	if col.Size() != 3 {
		t.Fatalf("expected 3 rows, got %d", col.Size())
	}

	v, err := col.At(1)
	if err != nil {
		t.Fatalf("At(1) failed: %v", err)
	}
	if v != "" {
		t.Errorf("expected empty row, got %q", v)
	}

	v, err = col.At(2)
	if err != nil {
		t.Fatalf("At(2) failed: %v", err)
	}
	if v != `json:{"x":1}` {
		t.Errorf("unexpected row value: %q", v)
	}

	if _, err := col.At(3); !errors.IsType(err, errors.ErrorTypeRange) {
		t.Errorf("expected range error for At(3), got %v", err)
	}
	if _, err := col.At(-1); !errors.IsType(err, errors.ErrorTypeRange) {
		t.Errorf("expected range error for At(-1), got %v", err)
	}
}

func TestAppendDoesNotAlias(t *testing.T) {
	col := NewJSONColumn()
	src := []byte("mutable")
	col.AppendBytes(src)

	src[0] = 'X'

	v, err := col.At(0)
	if err != nil {
		t.Fatalf("At(0) failed: %v", err)
	}
	if v != "mutable" {
		t.Errorf("managed append must copy, got %q after source mutation", v)
	}
}

func TestAppendNoManagedLifetimeBorrows(t *testing.T) {
	col := NewJSONColumn()
	src := []byte("borrowed")
	col.AppendNoManagedLifetime(src)

	if !bytes.Equal(col.Row(0), src) {
		t.Fatalf("expected view over caller bytes, got %q", col.Row(0))
	}
	// The view aliases the caller's buffer; that is the whole point of the
	// unmanaged path.
	if &col.Row(0)[0] != &src[0] {
		t.Error("unmanaged append must not copy the bytes")
	}
}

func TestAppendOwned(t *testing.T) {
	col := NewJSONColumn()
	col.AppendOwned([]byte("alpha"))
	col.AppendOwned([]byte("beta"))

	if col.Size() != 2 {
		t.Fatalf("expected 2 rows, got %d", col.Size())
	}
	for i, want := range []string{"alpha", "beta"} {
		v, err := col.At(i)
		if err != nil {
			t.Fatalf("At(%d) failed: %v", i, err)
		}
		if v != want {
			t.Errorf("row %d: expected %q, got %q", i, want, v)
		}
	}
}

func TestAppendJSON(t *testing.T) {
	col := NewJSONColumn()

	if err := col.AppendJSON(`{"x":1}`); err != nil {
		t.Fatalf("valid JSON rejected: %v", err)
	}
	if err := col.AppendJSON(`{"x":`); !errors.IsType(err, errors.ErrorTypeValidation) {
		t.Fatalf("expected validation error for malformed JSON, got %v", err)
	}
	if col.Size() != 1 {
		t.Errorf("rejected append must not add a row, size=%d", col.Size())
	}
}

func TestOversizedRow(t *testing.T) {
	big := bytes.Repeat([]byte("x"), 5000) // exceeds the 4096 default block
	small := []byte("0123456789")

	col := NewJSONColumn()
	col.AppendBytes(big)
	col.AppendBytes(small)

	v0, err := col.At(0)
	if err != nil {
		t.Fatalf("At(0) failed: %v", err)
	}
	if v0 != string(big) {
		t.Error("oversized row corrupted")
	}

	v1, err := col.At(1)
	if err != nil {
		t.Fatalf("At(1) failed: %v", err)
	}
	if v1 != string(small) {
		t.Errorf("expected %q, got %q", small, v1)
	}
}

func TestViewStability(t *testing.T) {
	col := NewJSONColumn()
	col.Append("first-row-value")
	view := col.Row(0)

	for i := 0; i < 10000; i++ {
		col.Append("filler-row-to-force-many-new-blocks")
	}

	if !bytes.Equal(view, []byte("first-row-value")) {
		t.Errorf("early view corrupted by later appends: %q", view)
	}
	if !bytes.Equal(col.Row(0), []byte("first-row-value")) {
		t.Errorf("row 0 corrupted: %q", col.Row(0))
	}
}

func TestFromStrings(t *testing.T) {
	values := []string{"x", "", "yyy", "zz"}
	col := NewJSONColumnFromStrings(values)

	if col.Size() != len(values) {
		t.Fatalf("expected %d rows, got %d", len(values), col.Size())
	}
	for i, want := range values {
		v, err := col.At(i)
		if err != nil {
			t.Fatalf("At(%d) failed: %v", i, err)
		}
		if v != want {
			t.Errorf("row %d: expected %q, got %q", i, want, v)
		}
	}

	empty := NewJSONColumnFromStrings(nil)
	if empty.Size() != 0 {
		t.Errorf("expected empty column, got %d rows", empty.Size())
	}
}

func TestOwnedRoundTrip(t *testing.T) {
	col := NewJSONColumnOwned([][]byte{[]byte("alpha"), []byte("beta")})

	var buf bytes.Buffer
	if err := col.SaveBody(&buf); err != nil {
		t.Fatalf("SaveBody failed: %v", err)
	}

	loaded := NewJSONColumn()
	if err := loaded.LoadBody(&buf, 2); err != nil {
		t.Fatalf("LoadBody failed: %v", err)
	}

	for i, want := range []string{"alpha", "beta"} {
		v, err := loaded.At(i)
		if err != nil {
			t.Fatalf("At(%d) failed: %v", i, err)
		}
		if v != want {
			t.Errorf("row %d: expected %q, got %q", i, want, v)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	values := []string{
		"a",
		"",
		string(bytes.Repeat([]byte("big"), 2000)), // > default block size
		`{"nested":{"deep":[1,2,3]}}`,
		"",
	}

	col := NewJSONColumn()
	for _, v := range values {
		col.Append(v)
	}

	var buf bytes.Buffer
	if err := col.SaveBody(&buf); err != nil {
		t.Fatalf("SaveBody failed: %v", err)
	}

	loaded := NewJSONColumn()
	if err := loaded.LoadBody(&buf, len(values)); err != nil {
		t.Fatalf("LoadBody failed: %v", err)
	}
	if loaded.Size() != len(values) {
		t.Fatalf("expected %d rows, got %d", len(values), loaded.Size())
	}
	for i, want := range values {
		v, err := loaded.At(i)
		if err != nil {
			t.Fatalf("At(%d) failed: %v", i, err)
		}
		if v != want {
			t.Errorf("row %d mismatch after round trip", i)
		}
	}
}

func TestLoadBodyTruncated(t *testing.T) {
	// Declared row count of 3, but the stream ends after 2 rows.
	src := NewJSONColumnFromStrings([]string{"one", "two"})
	var buf bytes.Buffer
	if err := src.SaveBody(&buf); err != nil {
		t.Fatalf("SaveBody failed: %v", err)
	}

	col := NewJSONColumn()
	col.Append("pre-existing")
	err := col.LoadBody(&buf, 3)
	if !errors.IsType(err, errors.ErrorTypeData) {
		t.Fatalf("expected data error, got %v", err)
	}
	if col.Size() != 0 {
		t.Errorf("failed load must leave the column empty, got %d rows", col.Size())
	}
}

func TestLoadBodyTruncatedMidRow(t *testing.T) {
	var buf bytes.Buffer
	src := NewJSONColumnFromStrings([]string{"complete row"})
	if err := src.SaveBody(&buf); err != nil {
		t.Fatalf("SaveBody failed: %v", err)
	}
	// Drop the last byte so the row body is short.
	data := buf.Bytes()[:buf.Len()-1]

	col := NewJSONColumn()
	err := col.LoadBody(bytes.NewReader(data), 1)
	if !errors.IsType(err, errors.ErrorTypeData) {
		t.Fatalf("expected data error, got %v", err)
	}
	if col.Size() != 0 {
		t.Errorf("failed load must leave the column empty, got %d rows", col.Size())
	}
}

func TestLoadBodyNegativeRows(t *testing.T) {
	col := NewJSONColumn()
	err := col.LoadBody(bytes.NewReader(nil), -1)
	if !errors.IsType(err, errors.ErrorTypeData) {
		t.Fatalf("expected data error, got %v", err)
	}
	if col.Size() != 0 {
		t.Errorf("expected empty column, got %d rows", col.Size())
	}
}

func TestLoadBodyHugeDeclaredCount(t *testing.T) {
	// A declared count far beyond the stream's contents must fail on the
	// first missing row, without reserving an index for the full count.
	col := NewJSONColumn()
	err := col.LoadBody(bytes.NewReader(nil), 1<<31-1)
	if !errors.IsType(err, errors.ErrorTypeData) {
		t.Fatalf("expected data error, got %v", err)
	}
	if col.Size() != 0 {
		t.Errorf("expected empty column, got %d rows", col.Size())
	}
}

func TestLoadBodyEmpty(t *testing.T) {
	col := NewJSONColumn()
	if err := col.LoadBody(bytes.NewReader(nil), 0); err != nil {
		t.Fatalf("loading zero rows failed: %v", err)
	}
	if col.Size() != 0 {
		t.Errorf("expected empty column, got %d rows", col.Size())
	}
}

func TestSlice(t *testing.T) {
	col := NewJSONColumnFromStrings([]string{"x", "y", "z", "w"})

	t.Run("middle", func(t *testing.T) {
		s := col.Slice(1, 2)
		if s.Size() != 2 {
			t.Fatalf("expected 2 rows, got %d", s.Size())
		}
		for i, want := range []string{"y", "z"} {
			item, err := s.GetItem(i)
			if err != nil {
				t.Fatalf("GetItem(%d) failed: %v", i, err)
			}
			if item.String() != want {
				t.Errorf("row %d: expected %q, got %q", i, want, item.String())
			}
		}
	})

	t.Run("clamped", func(t *testing.T) {
		s := col.Slice(2, 100)
		if s.Size() != 2 {
			t.Errorf("expected clamp to 2 rows, got %d", s.Size())
		}
	})

	t.Run("past end", func(t *testing.T) {
		s := col.Slice(4, 1)
		if s.Size() != 0 {
			t.Errorf("expected empty column, got %d rows", s.Size())
		}
	})

	t.Run("independent of source", func(t *testing.T) {
		s := col.Slice(0, 2).(*JSONColumn)
		col.Clear()

		v, err := s.At(0)
		if err != nil {
			t.Fatalf("At(0) failed: %v", err)
		}
		if v != "x" {
			t.Errorf("slice must survive source Clear, got %q", v)
		}
	})
}

func TestAppendColumn(t *testing.T) {
	a := NewJSONColumnFromStrings([]string{"a0", "a1"})
	b := NewJSONColumnFromStrings([]string{"b0", "b1", "b2"})

	if err := a.AppendColumn(b); err != nil {
		t.Fatalf("AppendColumn failed: %v", err)
	}

	want := []string{"a0", "a1", "b0", "b1", "b2"}
	if a.Size() != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), a.Size())
	}
	for i, w := range want {
		v, err := a.At(i)
		if err != nil {
			t.Fatalf("At(%d) failed: %v", i, err)
		}
		if v != w {
			t.Errorf("row %d: expected %q, got %q", i, w, v)
		}
	}

	// The source column is left untouched.
	if b.Size() != 3 {
		t.Errorf("source column modified, size=%d", b.Size())
	}
	v, err := b.At(0)
	if err != nil {
		t.Fatalf("At(0) on source failed: %v", err)
	}
	if v != "b0" {
		t.Errorf("source row corrupted: %q", v)
	}
}

func TestAppendColumnTypeMismatch(t *testing.T) {
	a := NewJSONColumn()
	err := a.AppendColumn(&fakeColumn{})
	if !errors.IsType(err, errors.ErrorTypeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if a.Size() != 0 {
		t.Errorf("mismatched append must not add rows, size=%d", a.Size())
	}
}

func TestSwap(t *testing.T) {
	a := NewJSONColumnFromStrings([]string{"a"})
	b := NewJSONColumnFromStrings([]string{"b0", "b1"})

	if err := a.Swap(b); err != nil {
		t.Fatalf("Swap failed: %v", err)
	}

	if a.Size() != 2 || b.Size() != 1 {
		t.Fatalf("swap did not exchange contents: a=%d b=%d", a.Size(), b.Size())
	}
	v, err := b.At(0)
	if err != nil {
		t.Fatalf("At(0) failed: %v", err)
	}
	if v != "a" {
		t.Errorf("expected %q, got %q", "a", v)
	}
}

func TestSwapTypeMismatch(t *testing.T) {
	a := NewJSONColumnFromStrings([]string{"a"})
	if err := a.Swap(&fakeColumn{}); !errors.IsType(err, errors.ErrorTypeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if a.Size() != 1 {
		t.Errorf("failed swap must not modify the column, size=%d", a.Size())
	}
}

func TestCloneEmpty(t *testing.T) {
	col := NewJSONColumnFromStrings([]string{"x"})
	clone := col.CloneEmpty()

	if clone.Type() != TypeJSON {
		t.Errorf("expected %s clone, got %s", TypeJSON, clone.Type())
	}
	if clone.Size() != 0 {
		t.Errorf("expected empty clone, got %d rows", clone.Size())
	}
}

func TestGetItem(t *testing.T) {
	col := NewJSONColumnFromStrings([]string{"cell"})

	item, err := col.GetItem(0)
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	if item.Type != TypeJSON {
		t.Errorf("expected %s tag, got %s", TypeJSON, item.Type)
	}
	if item.String() != "cell" {
		t.Errorf("expected %q, got %q", "cell", item.String())
	}

	if _, err := col.GetItem(1); !errors.IsType(err, errors.ErrorTypeRange) {
		t.Errorf("expected range error, got %v", err)
	}
}

func TestClear(t *testing.T) {
	col := NewJSONColumnFromStrings([]string{"x", "y"})
	col.AppendOwned([]byte("owned"))
	col.Clear()

	if col.Size() != 0 {
		t.Fatalf("expected 0 rows after Clear, got %d", col.Size())
	}

	// The column is reusable after Clear.
	col.Append("again")
	v, err := col.At(0)
	if err != nil {
		t.Fatalf("At(0) failed: %v", err)
	}
	if v != "again" {
		t.Errorf("expected %q, got %q", "again", v)
	}
}

func TestFactory(t *testing.T) {
	col, err := New(TypeJSON)
	if err != nil {
		t.Fatalf("New(TypeJSON) failed: %v", err)
	}
	if col.Type() != TypeJSON {
		t.Errorf("expected %s, got %s", TypeJSON, col.Type())
	}

	if _, err := New(TypeBool); !errors.IsType(err, errors.ErrorTypeValidation) {
		t.Errorf("expected validation error for unimplemented type, got %v", err)
	}
}

// fakeColumn is a stand-in for a different concrete column type, used to
// probe the strict same-type contract of Swap and AppendColumn.
type fakeColumn struct{}

func (f *fakeColumn) Type() Type { return TypeBool }

func (f *fakeColumn) Size() int { return 0 }

func (f *fakeColumn) AppendColumn(other Column) error { return nil }

func (f *fakeColumn) LoadBody(r io.Reader, rows int) error { return nil }

func (f *fakeColumn) SaveBody(w io.Writer) error { return nil }

func (f *fakeColumn) Clear() {}

func (f *fakeColumn) Slice(begin, n int) Column { return f }

func (f *fakeColumn) CloneEmpty() Column { return &fakeColumn{} }

func (f *fakeColumn) Swap(other Column) error { return nil }

func (f *fakeColumn) GetItem(row int) (ItemView, error) { return ItemView{}, nil }

func BenchmarkAppend(b *testing.B) {
	value := `{"id":12345,"name":"benchmark","tags":["a","b","c"]}`
	col := NewJSONColumn()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		col.Append(value)
	}
}

func BenchmarkLoadBody(b *testing.B) {
	const rows = 1000
	col := NewJSONColumn()
	for i := 0; i < rows; i++ {
		col.Append(`{"id":12345,"name":"benchmark","tags":["a","b","c"]}`)
	}
	var buf bytes.Buffer
	if err := col.SaveBody(&buf); err != nil {
		b.Fatalf("SaveBody failed: %v", err)
	}
	data := buf.Bytes()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		loaded := NewJSONColumn()
		if err := loaded.LoadBody(bytes.NewReader(data), rows); err != nil {
			b.Fatalf("LoadBody failed: %v", err)
		}
	}
}
