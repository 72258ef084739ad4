package iiif

import (
	"bytes"
	"encoding/json"
)

// Annotation is a single IIIF annotation as far as text extraction needs it.
// Target, On and Body keep their raw JSON since each may be a string, an object
// or an array.
type Annotation struct {
	ID              string          `json:"@id,omitempty"`
	Type            string          `json:"@type,omitempty"`
	Motivation      Strings         `json:"motivation,omitempty"`
	TextGranularity string          `json:"textGranularity,omitempty"`
	DcType          string          `json:"dcType,omitempty"`
	Resource        *Resource       `json:"resource,omitempty"`
	Body            json.RawMessage `json:"body,omitempty"`
	Target          json.RawMessage `json:"target,omitempty"`
	On              json.RawMessage `json:"on,omitempty"`
}

// Resource is the IIIF 2 annotation resource. Chars and Value are pointers so
// that an explicit empty string can be told apart from an absent property.
type Resource struct {
	ID    string  `json:"@id,omitempty"`
	Type  string  `json:"@type,omitempty"`
	Chars *string `json:"chars,omitempty"`
	Value *string `json:"value,omitempty"`
}

// Strings is a JSON value that may be a single string or a list of strings
type Strings []string

// UnmarshalJSON accepts both "a" and ["a", "b"]
func (s *Strings) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '[' {
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*s = list
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*s = Strings{single}
	return nil
}

// Contains reports whether value is one of the strings
func (s Strings) Contains(value string) bool {
	for _, v := range s {
		if v == value {
			return true
		}
	}
	return false
}

// list is the envelope of an AnnotationList (IIIF 2) or AnnotationPage (IIIF 3)
type list struct {
	Resources []Annotation `json:"resources"`
	Items     []Annotation `json:"items"`
}
