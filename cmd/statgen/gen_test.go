package main

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"statboard/internal/model"
	"statboard/internal/source"
)

func sum(m map[string]int) int {
	n := 0
	for _, v := range m {
		n += v
	}
	return n
}

func TestGeneratorKeepsTotalsConsistent(t *testing.T) {
	p, err := model.Decode(source.Demo())
	require.NoError(t, err)
	g := &generator{rng: rand.New(rand.NewSource(1)), payload: p, newArtistRate: 0.3}
	before := p.SFW.Commissions.Count + p.NSFW.Commissions.Count

	for i := 0; i < 50; i++ {
		line, err := g.next()
		require.NoError(t, err)
		snap, err := model.Decode(line)
		require.NoError(t, err)
		for _, c := range []model.Category{snap.SFW, snap.NSFW} {
			assert.Equal(t, c.Commissions.Count, sum(c.Commissions.Details))
			assert.Equal(t, c.Thumbnails.Count, sum(c.Thumbnails.Details))
			assert.Equal(t, c.Artists.Count, len(c.Artists.Details))
		}
		_, _, err = model.BuildRows(snap)
		require.NoError(t, err)
	}
	after := g.payload.SFW.Commissions.Count + g.payload.NSFW.Commissions.Count
	assert.GreaterOrEqual(t, after-before, 50)
	assert.Positive(t, g.added)
}

func TestGeneratorErrorPayloads(t *testing.T) {
	p, err := model.Decode(source.Demo())
	require.NoError(t, err)
	g := &generator{rng: rand.New(rand.NewSource(7)), payload: p, errorRate: 1}
	line, err := g.next()
	require.NoError(t, err)
	_, err = model.Decode(line)
	assert.True(t, source.IsPayloadError(err))
}
