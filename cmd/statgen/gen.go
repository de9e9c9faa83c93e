package main

import (
	"encoding/json"
	"fmt"
	"math/rand"

	"statboard/internal/model"
)

var upstreamErrors = []string{
	"statistics are being recomputed, try again shortly",
	"database unavailable",
	"rate limit exceeded",
}

type generator struct {
	rng           *rand.Rand
	payload       model.Payload
	errorRate     float64
	newArtistRate float64
	added         int
}

// next returns the next line: either the drifted snapshot or an upstream
// error payload.
func (g *generator) next() ([]byte, error) {
	if g.rng.Float64() < g.errorRate {
		return json.Marshal(map[string]string{"error": upstreamErrors[g.rng.Intn(len(upstreamErrors))]})
	}
	g.drift()
	return json.Marshal(g.payload)
}

// drift grows one artist's counters, and sometimes adds an artist. Counts only
// ever increase and category totals stay equal to the sum of their details.
func (g *generator) drift() {
	c := &g.payload.SFW
	if g.rng.Intn(2) == 1 {
		c = &g.payload.NSFW
	}
	if g.rng.Float64() < g.newArtistRate || len(c.Artists.Details) == 0 {
		g.added++
		name := fmt.Sprintf("newcomer-%02d", g.added)
		c.Artists.Details = append(c.Artists.Details, name)
		c.Artists.Count++
	}
	name := c.Artists.Details[g.rng.Intn(len(c.Artists.Details))]
	comm := 1 + g.rng.Intn(3)
	thumbs := g.rng.Intn(6)
	if c.Commissions.Details == nil {
		c.Commissions.Details = map[string]int{}
	}
	if c.Thumbnails.Details == nil {
		c.Thumbnails.Details = map[string]int{}
	}
	c.Commissions.Details[name] += comm
	c.Commissions.Count += comm
	c.Thumbnails.Details[name] += thumbs
	c.Thumbnails.Count += thumbs
}
