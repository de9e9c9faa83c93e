package model

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// Payload is the statistics summary served by the upstream endpoint.
type Payload struct {
	Error string   `json:"error,omitempty"`
	SFW   Category `json:"sfw"`
	NSFW  Category `json:"nsfw"`
}

type Category struct {
	Artists     Listing `json:"artists"`
	Commissions Counter `json:"commissions"`
	Thumbnails  Counter `json:"thumbnails"`
}

type Listing struct {
	Count   int      `json:"count"`
	Details []string `json:"details"`
}

type Counter struct {
	Count   int            `json:"count"`
	Details map[string]int `json:"details"`
}

// PayloadError is an error string reported by the upstream itself. It is
// shown verbatim in place of the table.
type PayloadError struct {
	Message string
}

func (e *PayloadError) Error() string { return e.Message }

// ErrInvalidPayload marks a payload that decoded but cannot produce rows.
var ErrInvalidPayload = errors.New("invalid payload")

// Decode parses a raw payload body. An upstream "error" field is returned as
// *PayloadError before the rest of the document is looked at.
func Decode(data []byte) (Payload, error) {
	if !gjson.ValidBytes(data) {
		return Payload{}, fmt.Errorf("decode payload: malformed json (%d bytes)", len(data))
	}
	if e := gjson.GetBytes(data, "error"); e.Exists() && e.String() != "" {
		return Payload{Error: e.String()}, &PayloadError{Message: e.String()}
	}
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return Payload{}, fmt.Errorf("decode payload: %w", err)
	}
	return p, nil
}
