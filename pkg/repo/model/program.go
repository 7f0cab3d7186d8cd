package model

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/scienceol/piwarmer/pkg/utils"
)

// Ref is an id reference as the backend sends it, a JSON string or number.
// Strings are kept verbatim, numbers are rendered as a browser would print them.
type Ref string

func (r *Ref) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*r = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = Ref(s)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id reference must be string or number: %w", err)
	}
	*r = Ref(utils.FormatNumber(n))
	return nil
}

func (r Ref) String() string {
	return string(r)
}

// Program is a named sequence of temperature steps. Steps is the JSON-encoded
// step mapping exactly as stored by the backend.
type Program struct {
	ID        Ref    `json:"id"`
	Name      string `json:"name"`
	Driver    Ref    `json:"driver"`
	Scientist string `json:"scientist"`
	Steps     string `json:"steps"`
}

// Driver is the heater controller a program runs on.
type Driver struct {
	ID   Ref    `json:"id"`
	Name string `json:"name"`
}
