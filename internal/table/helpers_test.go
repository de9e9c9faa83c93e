package table

import (
	"testing"

	"github.com/stretchr/testify/require"

	"statboard/internal/model"
)

type artist struct {
	key         string
	sfw         bool
	commissions int
	thumbs      int
}

// newTestTable builds a table through the Row Model from a list of artists.
func newTestTable(t *testing.T, artists ...artist) *Table {
	t.Helper()
	p := model.Payload{
		SFW:  model.Category{Commissions: model.Counter{Details: map[string]int{}}, Thumbnails: model.Counter{Details: map[string]int{}}},
		NSFW: model.Category{Commissions: model.Counter{Details: map[string]int{}}, Thumbnails: model.Counter{Details: map[string]int{}}},
	}
	for _, a := range artists {
		c := &p.NSFW
		if a.sfw {
			c = &p.SFW
		}
		c.Artists.Details = append(c.Artists.Details, a.key)
		c.Artists.Count++
		c.Commissions.Details[a.key] = a.commissions
		c.Commissions.Count += a.commissions
		c.Thumbnails.Details[a.key] = a.thumbs
		c.Thumbnails.Count += a.thumbs
	}
	rows, tot, err := model.BuildRows(p)
	require.NoError(t, err)
	return New(rows, tot)
}

// keys returns the row keys of idx in order.
func keys(tb *Table, idx []int) []string {
	out := make([]string, len(idx))
	for i, r := range idx {
		out[i] = tb.Row(r).Key
	}
	return out
}

func exampleTable(t *testing.T) *Table {
	return newTestTable(t,
		artist{key: "A", sfw: true, commissions: 10, thumbs: 5},
		artist{key: "B", sfw: false, commissions: 30, thumbs: 30},
	)
}
