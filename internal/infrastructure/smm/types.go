package smm

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// SMM panel APIs are loose about JSON types: rates arrive as "1.20000" or
// 1.2, counts as "100" or 100, refill flags as true, "true" or 1. The flex
// types below absorb that drift at the wire boundary.

// flexString unmarshals a JSON string or number into a string
type flexString string

// UnmarshalJSON implements json.Unmarshaler
func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if string(b) == "null" {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	*f = flexString(b)
	return nil
}

// String returns the underlying value
func (f flexString) String() string {
	return string(f)
}

// flexInt unmarshals a JSON number or numeric string into an int
type flexInt int

// UnmarshalJSON implements json.Unmarshaler
func (f *flexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		*f = flexInt(n)
		return nil
	}
	fl, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*f = flexInt(int(fl))
	return nil
}

// flexBool unmarshals a JSON bool, number or string into a bool
type flexBool bool

// UnmarshalJSON implements json.Unmarshaler
func (f *flexBool) UnmarshalJSON(b []byte) error {
	s := strings.ToLower(strings.Trim(strings.TrimSpace(string(b)), `"`))
	switch s {
	case "true", "1", "yes":
		*f = true
	default:
		*f = false
	}
	return nil
}

// catalogEntry is one record of a provider's service listing
type catalogEntry struct {
	Service     flexString `json:"service"`
	Name        string     `json:"name"`
	Category    string     `json:"category"`
	Rate        flexString `json:"rate"`
	Min         flexInt    `json:"min"`
	Max         flexInt    `json:"max"`
	AverageTime string     `json:"average_time"`
	Desc        string     `json:"desc"`
	Description string     `json:"description"`
}

// description returns whichever description field the provider populated
func (e *catalogEntry) description() string {
	if e.Desc != "" {
		return e.Desc
	}
	return e.Description
}

// orderStatusEntry is the provider's response to an order status query
type orderStatusEntry struct {
	Status     string     `json:"status"`
	Charge     flexString `json:"charge"`
	StartCount *flexInt   `json:"start_count"`
	Remains    *flexInt   `json:"remains"`
	Currency   string     `json:"currency"`
	Refill     flexBool   `json:"refill"`
	Error      string     `json:"error"`
}

// actionResponse is the provider's response to refill/cancel requests
type actionResponse struct {
	Refill flexString `json:"refill"`
	Cancel flexString `json:"cancel"`
	Error  string     `json:"error"`
}
