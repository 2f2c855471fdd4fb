package weather

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// OperationType classifies a free-text management command.
type OperationType string

const (
	OperationUpdateOrAdd OperationType = "update/add"
	OperationDelete      OperationType = "delete"
)

// Record is one city's weather snapshot as held by the document store.
// City is the primary key; the remaining attributes are free-form strings such as "15°C".
type Record struct {
	City        string `json:"city" yaml:"city" validate:"required"`
	Temperature string `json:"temperature" yaml:"temperature"`
	High        string `json:"high" yaml:"high"`
	Low         string `json:"low" yaml:"low"`
	Condition   string `json:"condition" yaml:"condition"`
}

// Field is an optional string attribute. The zero value is absent, which means
// "not mentioned" and is distinct from a present empty string.
type Field struct {
	Value string
	Set   bool
}

// Some returns a present Field holding v.
func Some(v string) Field {
	return Field{Value: v, Set: true}
}

// Applicable reports whether the field carries a value worth writing.
func (f Field) Applicable() bool {
	return f.Set && f.Value != ""
}

// MarshalJSON encodes an absent field as null.
func (f Field) MarshalJSON() ([]byte, error) {
	if !f.Set {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// UnmarshalJSON decodes null as absent and any string as present.
func (f *Field) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*f = Field{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("field must be a string: %w", err)
	}
	*f = Some(s)
	return nil
}

// Update is a requested partial change to a Record. Only present fields are applied
// by a merge; fields the command did not mention are left untouched in the store.
type Update struct {
	City        string
	Temperature Field
	High        Field
	Low         Field
	Condition   Field
}

// UpdateFromRecord turns a full record into an update that sets every non-empty attribute.
func UpdateFromRecord(r Record) Update {
	return Update{
		City:        r.City,
		Temperature: Some(r.Temperature),
		High:        Some(r.High),
		Low:         Some(r.Low),
		Condition:   Some(r.Condition),
	}.Stripped()
}

// Stripped returns a copy where present-but-empty fields become absent, so that an
// empty value extracted by the model never overwrites stored data.
func (u Update) Stripped() Update {
	strip := func(f Field) Field {
		if f.Applicable() {
			return f
		}
		return Field{}
	}
	return Update{
		City:        u.City,
		Temperature: strip(u.Temperature),
		High:        strip(u.High),
		Low:         strip(u.Low),
		Condition:   strip(u.Condition),
	}
}

// ApplyTo merges the present fields of u into r and returns the result.
func (u Update) ApplyTo(r Record) Record {
	r.City = u.City
	if u.Temperature.Set {
		r.Temperature = u.Temperature.Value
	}
	if u.High.Set {
		r.High = u.High.Value
	}
	if u.Low.Set {
		r.Low = u.Low.Value
	}
	if u.Condition.Set {
		r.Condition = u.Condition.Value
	}
	return r
}

// MarshalJSON omits absent fields.
func (u Update) MarshalJSON() ([]byte, error) {
	out := map[string]string{"city": u.City}
	for key, f := range map[string]Field{
		"temperature": u.Temperature,
		"high":        u.High,
		"low":         u.Low,
		"condition":   u.Condition,
	} {
		if f.Set {
			out[key] = f.Value
		}
	}
	return json.Marshal(out)
}

// DeleteTarget names the record a delete command resolved to.
type DeleteTarget struct {
	City string `json:"city"`
}

// Document is a rendered record used as retrieval context.
type Document struct {
	PageContent string `json:"pageContent"`
	Metadata    string `json:"metadata"`
}

// Answer is the outcome of a natural-language weather question.
type Answer struct {
	Input   string     `json:"input"`
	Context []Document `json:"context"`
	Answer  string     `json:"answer"`
}

// Role identifies the author of a prompt message.
type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
)

// Message is a single prompt message sent to a completion provider.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}
