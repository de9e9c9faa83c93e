package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortStateClickCycle(t *testing.T) {
	var s SortState
	s = s.Click(ColCommissions)
	assert.Equal(t, SortState{{ColCommissions, Ascending}}, s)
	s = s.Click(ColCommissions)
	assert.Equal(t, SortState{{ColCommissions, Descending}}, s)
	s = s.Click(ColCommissions)
	assert.Empty(t, s)
}

func TestSortStateClickKeepsPriorityOrder(t *testing.T) {
	s := SortState{}.Click(ColCommissions).Click(ColArtist).Click(ColPictures)
	require.Len(t, s, 3)

	// toggling direction does not move the key
	s2 := s.Click(ColArtist)
	assert.Equal(t, SortState{{ColCommissions, Ascending}, {ColArtist, Descending}, {ColPictures, Ascending}}, s2)
	// removal closes the gap
	s3 := s2.Click(ColArtist)
	assert.Equal(t, SortState{{ColCommissions, Ascending}, {ColPictures, Ascending}}, s3)
	// the receiver is never modified
	assert.Equal(t, Ascending, s[1].Direction)
}

func TestCompareCells(t *testing.T) {
	assert.Equal(t, -1, CompareCells("9", "10"))
	assert.Equal(t, 1, CompareCells("10%", "9.5%"))
	assert.Equal(t, 0, CompareCells("2.50%", "2.5%"))
	assert.Equal(t, -1, CompareCells("alice", "Bob"))
	assert.Equal(t, 0, CompareCells("ALICE", "alice"))
	// numbers sort before text
	assert.Equal(t, -1, CompareCells("10", "abc"))
	assert.Equal(t, -1, CompareCells("10", "1x"))
	assert.Equal(t, 1, CompareCells("1x", "2"))
	// NaN and Inf are names, not numbers
	assert.Equal(t, 1, CompareCells("nan", "inf"))
}

func TestParseSortSpec(t *testing.T) {
	s, err := ParseSortSpec("4:desc, 0")
	require.NoError(t, err)
	assert.Equal(t, SortState{{4, Descending}, {0, Ascending}}, s)
	assert.Equal(t, "4:desc,0:asc", s.String())

	s, err = ParseSortSpec("")
	require.NoError(t, err)
	assert.Empty(t, s)

	_, err = ParseSortSpec("x")
	assert.ErrorIs(t, err, ErrBadSortSpec)
	_, err = ParseSortSpec("4:sideways")
	assert.ErrorIs(t, err, ErrBadSortSpec)
	_, err = ParseSortSpec("4,4:desc")
	assert.ErrorIs(t, err, ErrBadSortSpec)
}

func TestDefaultOrderIsArtistAscending(t *testing.T) {
	tb := newTestTable(t,
		artist{key: "carol", commissions: 1},
		artist{key: "Alice", commissions: 2},
		artist{key: "bob", commissions: 3},
	)
	assert.Equal(t, []string{"Alice", "bob", "carol"}, keys(tb, tb.Order()))
}

func TestClickColumnSortsDescending(t *testing.T) {
	tb := exampleTable(t)
	require.True(t, tb.ClickColumn(ColCommissions))
	assert.Equal(t, []string{"A", "B"}, keys(tb, tb.Order()))
	require.True(t, tb.ClickColumn(ColCommissions))
	assert.Equal(t, []string{"B", "A"}, keys(tb, tb.Order()))
	require.True(t, tb.ClickColumn(ColCommissions))
	assert.Empty(t, tb.Sort())
	assert.Equal(t, []string{"A", "B"}, keys(tb, tb.Order()))
}

func TestClickOnCategoryColumnIsInert(t *testing.T) {
	tb := exampleTable(t)
	assert.False(t, tb.ClickColumn(ColSFW))
	assert.Empty(t, tb.Sort())
	assert.False(t, tb.ClickColumn(42))
}

func TestSortTieBreakByLaterKey(t *testing.T) {
	tb := newTestTable(t,
		artist{key: "zed", commissions: 5},
		artist{key: "amy", commissions: 5},
		artist{key: "max", commissions: 9},
	)
	require.NoError(t, tb.ApplySort(SortState{{ColCommissions, Descending}, {ColArtist, Ascending}}))
	assert.Equal(t, []string{"max", "amy", "zed"}, keys(tb, tb.Order()))
}

func TestSortIsStableForFullTies(t *testing.T) {
	tb := newTestTable(t,
		artist{key: "zed", commissions: 5, thumbs: 1},
		artist{key: "amy", commissions: 5, thumbs: 1},
		artist{key: "max", commissions: 5, thumbs: 1},
	)
	require.True(t, tb.ClickColumn(ColCommissions))
	want := []string{"zed", "amy", "max"}
	assert.Equal(t, want, keys(tb, tb.Order()))
	// repeated clicks keep the same relative order of equal rows
	for i := 0; i < 6; i++ {
		tb.ClickColumn(ColPictures)
	}
	assert.Equal(t, want, keys(tb, tb.Order()))
	tb.ClickColumn(ColCommissions)
	assert.Equal(t, want, keys(tb, tb.Order()))
}

func TestNumericLookingNamesSortIndependentlyOfInputOrder(t *testing.T) {
	names := [][]string{{"2", "10", "1x"}, {"1x", "2", "10"}, {"10", "1x", "2"}}
	for _, in := range names {
		var artists []artist
		for _, n := range in {
			artists = append(artists, artist{key: n, commissions: 1})
		}
		tb := newTestTable(t, artists...)
		assert.Equal(t, []string{"2", "10", "1x"}, keys(tb, tb.Order()), "input %v", in)
	}
}

func TestSortPosition(t *testing.T) {
	tb := exampleTable(t)
	tb.ClickColumn(ColCommissions)
	tb.ClickColumn(ColArtist)
	tb.ClickColumn(ColArtist)

	pos, dir, ok := tb.SortPosition(ColCommissions)
	assert.True(t, ok)
	assert.Equal(t, 1, pos)
	assert.Equal(t, Ascending, dir)

	pos, dir, ok = tb.SortPosition(ColArtist)
	assert.True(t, ok)
	assert.Equal(t, 2, pos)
	assert.Equal(t, Descending, dir)

	_, _, ok = tb.SortPosition(ColPictures)
	assert.False(t, ok)

	// removing the first key promotes the second
	tb.ClickColumn(ColCommissions)
	tb.ClickColumn(ColCommissions)
	pos, _, _ = tb.SortPosition(ColArtist)
	assert.Equal(t, 1, pos)
}

func TestApplySortRejectsUnsortable(t *testing.T) {
	tb := exampleTable(t)
	assert.Error(t, tb.ApplySort(SortState{{ColSFW, Ascending}}))
	assert.ErrorIs(t, tb.ApplySort(SortState{{99, Ascending}}), ErrNoColumn)
	assert.Empty(t, tb.Sort())
}
