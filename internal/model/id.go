package model

import "encoding/json"

// FlexID is an identifier that upstream payloads deliver either as a JSON
// string or as a JSON number. It always compares as a string, so "7" and 7
// are the same id. Every identifier comparison in the portal goes through
// this type instead of ad hoc conversions.
type FlexID string

func (id *FlexID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = FlexID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = FlexID(n.String())
	return nil
}

func (id FlexID) String() string {
	return string(id)
}

// IsZero reports whether the id is absent.
func (id FlexID) IsZero() bool {
	return id == ""
}

// Equal compares two ids after string coercion.
func (id FlexID) Equal(other FlexID) bool {
	return !id.IsZero() && id == other
}
