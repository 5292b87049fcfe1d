package directory

import (
	"bytes"
	"encoding/json"
)

// The upstream serves a resource-plus-included envelope: every entity is a
// {type, id, attributes, relationships} object, and secondary records ride
// along in a flat "included" list that roots reference by id.

type listEnvelope struct {
	Data     []resource `json:"data"`
	Included []resource `json:"included"`
	Meta     meta       `json:"meta"`
}

type singleEnvelope struct {
	Data     resource   `json:"data"`
	Included []resource `json:"included"`
	Meta     meta       `json:"meta"`
}

type resource struct {
	Type          string                     `json:"type"`
	ID            string                     `json:"id"`
	Attributes    map[string]json.RawMessage `json:"attributes"`
	Relationships map[string]relationship    `json:"relationships"`
}

type meta struct {
	TotalCount int        `json:"total_count"`
	Count      int        `json:"count"`
	Parent     *parentRef `json:"parent"`
}

type parentRef struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

type resourceRef struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// relationship holds the "data" member of a relationship block. The upstream
// serializes it as an object for to-one links and an array for to-many
// links; null and absent both decode to an empty set.
type relationship struct {
	refs []resourceRef
}

func (r *relationship) UnmarshalJSON(raw []byte) error {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return err
	}

	data := bytes.TrimSpace(wrapper.Data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		r.refs = nil
		return nil
	}

	if data[0] == '[' {
		return json.Unmarshal(data, &r.refs)
	}

	var single resourceRef
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	r.refs = []resourceRef{single}
	return nil
}

// first resolves a multi-valued relationship to its first linked id.
func (r relationship) first() (string, bool) {
	if len(r.refs) == 0 || r.refs[0].ID == "" {
		return "", false
	}
	return r.refs[0].ID, true
}

func (res resource) stringAttr(key string) string {
	value, _ := res.lookupStringAttr(key)
	return value
}

func (res resource) stringAttrPtr(key string) *string {
	value, ok := res.lookupStringAttr(key)
	if !ok {
		return nil
	}
	return &value
}

func (res resource) lookupStringAttr(key string) (string, bool) {
	raw, ok := res.Attributes[key]
	if !ok {
		return "", false
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", false
	}
	return value, true
}

func (res resource) boolAttr(key string) bool {
	raw, ok := res.Attributes[key]
	if !ok {
		return false
	}
	var value bool
	if err := json.Unmarshal(raw, &value); err != nil {
		return false
	}
	return value
}
