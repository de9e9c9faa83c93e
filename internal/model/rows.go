package model

import (
	"fmt"
	"math"
)

// Totals holds the denominators every percentage is computed against.
type Totals struct {
	Commissions     int
	Thumbnails      int
	SFWCommissions  int
	NSFWCommissions int
	SFWThumbnails   int
	NSFWThumbnails  int
}

// Row is one artist with raw counts and derived percentages.
type Row struct {
	Key         string `json:"key"`
	SFW         bool   `json:"sfw"`
	Commissions int    `json:"commissions"`
	Thumbnails  int    `json:"thumbnails"`

	ShareOfGlobal   float64 `json:"shareOfGlobal"`
	ShareOfCategory float64 `json:"shareOfCategory"`
	PictureShare    float64 `json:"pictureShare"`
}

// Percent returns value/total as a percentage rounded to two decimals, or 0
// when total is 0.
func Percent(value, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(value)/float64(total)*10000) / 100
}

func NewTotals(p Payload) Totals {
	return Totals{
		Commissions:     p.SFW.Commissions.Count + p.NSFW.Commissions.Count,
		Thumbnails:      p.SFW.Thumbnails.Count + p.NSFW.Thumbnails.Count,
		SFWCommissions:  p.SFW.Commissions.Count,
		NSFWCommissions: p.NSFW.Commissions.Count,
		SFWThumbnails:   p.SFW.Thumbnails.Count,
		NSFWThumbnails:  p.NSFW.Thumbnails.Count,
	}
}

// BuildRows normalizes a payload into rows. Rows are the union of both
// categories' artist lists, SFW first, first occurrence wins. Either every row
// is built or an error is returned.
func BuildRows(p Payload) ([]Row, Totals, error) {
	if p.Error != "" {
		return nil, Totals{}, &PayloadError{Message: p.Error}
	}
	if err := validate("sfw", p.SFW); err != nil {
		return nil, Totals{}, err
	}
	if err := validate("nsfw", p.NSFW); err != nil {
		return nil, Totals{}, err
	}
	tot := NewTotals(p)

	sfw := make(map[string]struct{}, len(p.SFW.Artists.Details))
	for _, k := range p.SFW.Artists.Details {
		sfw[k] = struct{}{}
	}
	n := len(p.SFW.Artists.Details) + len(p.NSFW.Artists.Details)
	seen := make(map[string]struct{}, n)
	rows := make([]Row, 0, n)
	add := func(key string) {
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		_, isSFW := sfw[key]
		r := Row{
			Key:         key,
			SFW:         isSFW,
			Commissions: p.SFW.Commissions.Details[key] + p.NSFW.Commissions.Details[key],
			Thumbnails:  p.SFW.Thumbnails.Details[key] + p.NSFW.Thumbnails.Details[key],
		}
		r.ShareOfGlobal = Percent(r.Commissions, tot.Commissions)
		if isSFW {
			r.ShareOfCategory = Percent(p.SFW.Commissions.Details[key], tot.SFWCommissions)
		} else {
			r.ShareOfCategory = Percent(p.NSFW.Commissions.Details[key], tot.NSFWCommissions)
		}
		r.PictureShare = Percent(r.Thumbnails, r.Commissions)
		rows = append(rows, r)
	}
	for _, k := range p.SFW.Artists.Details {
		add(k)
	}
	for _, k := range p.NSFW.Artists.Details {
		add(k)
	}
	return rows, tot, nil
}

func validate(name string, c Category) error {
	if c.Artists.Count < 0 || c.Commissions.Count < 0 || c.Thumbnails.Count < 0 {
		return fmt.Errorf("%w: %s has a negative count", ErrInvalidPayload, name)
	}
	for k, v := range c.Commissions.Details {
		if v < 0 {
			return fmt.Errorf("%w: %s commissions for %q is negative", ErrInvalidPayload, name, k)
		}
	}
	for k, v := range c.Thumbnails.Details {
		if v < 0 {
			return fmt.Errorf("%w: %s thumbnails for %q is negative", ErrInvalidPayload, name, k)
		}
	}
	for _, k := range c.Artists.Details {
		if k == "" {
			return fmt.Errorf("%w: %s lists an artist without a name", ErrInvalidPayload, name)
		}
	}
	return nil
}
