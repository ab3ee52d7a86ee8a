/*
Package sparse implements a simple type for sparse integer matrices.
It is used for the dispatch tables of LL(1) parsers: rows are choice nodes,
columns are token codes and values are indices of alternatives.
Every entry in the table is either a single int32 or a pair (int32,int32).
A pair signals that two values competed for the same position. Parsers
check their grammars for lookahead conflicts before filling a table, so a
pair in a dispatch table indicates an internal error.

Columns may be negative, as scanners frequently use negative token codes
(e.g., text/scanner.EOF).

This implementation uses the COO algorithm (a.k.a. triplet-encoding), with
triplets kept sorted for binary search.

   https://medium.com/@jmaxg3/101-ways-to-store-a-sparse-matrix-c7f2bf15a229

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package sparse

import (
	"fmt"
	"sort"
	"strings"
)

// IntMatrix is a type for a sparse matrix of integer values. Construct with
//
//     M := NewIntMatrix(-1)          // parameter is M's null-value
//
// Now
//
//     M.Set(2, -3, 4711)             // set a value
//     v := M.Value(2, -3)            // returns 4711
//     M.Add(2, -3, 123)              // add a second value
//     cnt := M.ValueCount()          // still returns 1 (one position set)
//     v = M.Value(10, 10)            // returns -1, i.e. the null-value
//
// Values cannot be deleted, but may be overwritten with the null-value.
//
// An IntMatrix is safe for concurrent reads, once it is no longer modified.
type IntMatrix struct {
	values  []triplet
	rowcnt  int
	nullval int32
}

// Triplet values to store
type triplet struct {
	row, col int
	value    intPair
}

// DefaultNullValue is the default empty-value for matrices (min int32).
const DefaultNullValue = -2147483648

// NewIntMatrix creates a new matrix for int. The argument is a null-value,
// indicating empty entries (use DefaultNullValue if you haven't any specific
// requirements).
func NewIntMatrix(nullValue int32) *IntMatrix {
	return &IntMatrix{
		values:  []triplet{},
		nullval: nullValue,
	}
}

// M returns the row count, i.e. the highest row index set plus one.
func (m *IntMatrix) M() int {
	return m.rowcnt
}

// NullValue returns this matrix' null value
func (m *IntMatrix) NullValue() int32 {
	return m.nullval
}

// ValueCount returns the number of positions set in the matrix.
func (m *IntMatrix) ValueCount() int {
	return len(m.values)
}

// Value returns the primary value at position (i,j), or NullValue
func (m *IntMatrix) Value(i, j int) int32 {
	a, _ := m.Values(i, j)
	return a
}

// Values returns the pair of values at position (i,j), or (NullValue, NullValue)
func (m *IntMatrix) Values(i, j int) (int32, int32) {
	if k, found := m.find(i, j); found {
		return m.values[k].value.a, m.values[k].value.b
	}
	return m.nullval, m.nullval
}

// Set a value in the matrix at position (i,j).
func (m *IntMatrix) Set(i, j int, value int32) *IntMatrix {
	return m.setOrAdd(i, j, value, false)
}

// Add a value in the matrix at position (i,j). If a value is already present
// at (i,j), the new value will be stored as the second value of a pair.
func (m *IntMatrix) Add(i, j int, value int32) *IntMatrix {
	return m.setOrAdd(i, j, value, true)
}

// IsPair is a predicate: are there two values stored at position (i,j)?
func (m *IntMatrix) IsPair(i, j int) bool {
	a, b := m.Values(i, j)
	return a != m.nullval && b != m.nullval
}

// Row calls f for every column of row i which holds a value, in ascending
// column order.
func (m *IntMatrix) Row(i int, f func(col int, a, b int32)) {
	k := sort.Search(len(m.values), func(k int) bool {
		return m.values[k].row >= i
	})
	for ; k < len(m.values) && m.values[k].row == i; k++ {
		f(m.values[k].col, m.values[k].value.a, m.values[k].value.b)
	}
}

func (m *IntMatrix) String() string {
	var b strings.Builder
	row := -1
	for _, t := range m.values {
		if t.row != row {
			if row >= 0 {
				b.WriteString("\n")
			}
			row = t.row
			b.WriteString(fmt.Sprintf("%3d:", row))
		}
		b.WriteString(fmt.Sprintf(" %d=%s", t.col, t.value.format(m.nullval)))
	}
	return b.String()
}

// find returns the index of (i,j), or the insertion index if not present.
func (m *IntMatrix) find(i, j int) (int, bool) {
	k := sort.Search(len(m.values), func(k int) bool {
		return !m.values[k].storedLeftOf(i, j)
	})
	return k, k < len(m.values) && m.values[k].storedAt(i, j)
}

func (m *IntMatrix) setOrAdd(i, j int, value int32, doAdd bool) *IntMatrix {
	at, found := m.find(i, j)
	if found {
		if doAdd {
			m.values[at].value = addIntValue(m.values[at].value, value, m.nullval)
		} else {
			m.values[at].value = intPair{value, m.nullval}
		}
		return m
	}
	tnew := triplet{row: i, col: j, value: intPair{value, m.nullval}}
	// the following 3 lines have to work for at being the right edge of values or not
	m.values = append(m.values, tnew)
	copy(m.values[at+1:], m.values[at:])
	m.values[at] = tnew
	if i >= m.rowcnt {
		m.rowcnt = i + 1
	}
	return m
}

func addIntValue(v intPair, n int32, nullval int32) intPair {
	if v.a == nullval {
		v.a = n
	} else if v.b == nullval {
		v.b = n
	} else {
		v.b = n // entry is full, overwrite second
	}
	return v
}

func (t *triplet) storedLeftOf(i, j int) bool {
	return t.row < i || t.row == i && t.col < j
}

func (t *triplet) storedAt(i, j int) bool {
	return t.row == i && t.col == j
}

// we will store 2 int32 in one position
type intPair struct {
	a int32
	b int32
}

func (pr intPair) format(nullval int32) string {
	if pr.b == nullval {
		return fmt.Sprintf("%d", pr.a)
	}
	return fmt.Sprintf("[%d,%d]", pr.a, pr.b)
}
