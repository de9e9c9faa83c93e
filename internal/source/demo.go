package source

import (
	"encoding/json"

	"statboard/internal/model"
)

type demoArtist struct {
	name        string
	sfw         bool
	commissions int
	thumbnails  int
}

var demoArtists = []demoArtist{
	{"Ashgrove", true, 42, 61},
	{"bellwether", true, 17, 17},
	{"Cinder & Moss", false, 33, 80},
	{"dapplefox", true, 8, 3},
	{"Eventide", false, 25, 25},
	{"Fernweh", true, 0, 0},
	{"gloamling", false, 12, 30},
	{"Harrow", true, 17, 22},
	{"inkwell", false, 5, 9},
	{"Juniper Vale", true, 64, 120},
}

// Demo returns a built-in payload used when no source is configured.
func Demo() []byte {
	p := model.Payload{}
	for _, c := range []*model.Category{&p.SFW, &p.NSFW} {
		c.Artists.Details = []string{}
		c.Commissions.Details = map[string]int{}
		c.Thumbnails.Details = map[string]int{}
	}
	for _, a := range demoArtists {
		c := &p.NSFW
		if a.sfw {
			c = &p.SFW
		}
		c.Artists.Details = append(c.Artists.Details, a.name)
		c.Artists.Count++
		c.Commissions.Details[a.name] = a.commissions
		c.Commissions.Count += a.commissions
		c.Thumbnails.Details[a.name] = a.thumbnails
		c.Thumbnails.Count += a.thumbnails
	}
	b, _ := json.Marshal(p)
	return b
}
