package schema

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the rendering format for date values, per the standard's
// Russian convention (DD.MM.YYYY).
const DateLayout = "02.01.2006"

// Value is a tagged field value. Exactly the slot matching Type is meaningful.
type Value struct {
	Type   FieldType `json:"type"`
	Text   string    `json:"text,omitempty"`
	Number float64   `json:"number,omitempty"`
	Date   time.Time `json:"date,omitzero"`
	Choice string    `json:"choice,omitempty"`
}

func Text(s string) Value    { return Value{Type: FieldText, Text: s} }
func Number(f float64) Value { return Value{Type: FieldNumber, Number: f} }
func Date(t time.Time) Value { return Value{Type: FieldDate, Date: t} }
func Choice(s string) Value  { return Value{Type: FieldEnum, Choice: s} }

// IsZero reports whether the value carries no content.
func (v Value) IsZero() bool {
	switch v.Type {
	case FieldText:
		return strings.TrimSpace(v.Text) == ""
	case FieldNumber:
		return false
	case FieldDate:
		return v.Date.IsZero()
	case FieldEnum:
		return v.Choice == ""
	}
	return true
}

// String renders the value for output backends.
func (v Value) String() string {
	switch v.Type {
	case FieldText:
		return v.Text
	case FieldNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case FieldDate:
		if v.Date.IsZero() {
			return ""
		}
		return v.Date.Format(DateLayout)
	case FieldEnum:
		return v.Choice
	}
	return ""
}

// Check verifies a value against the field's declared type.
func (f FieldDef) Check(v Value) error {
	if v.Type != f.Type {
		return fmt.Errorf("field %q expects %s, got %s", f.Name, f.Type, v.Type)
	}
	if f.Type == FieldEnum {
		for _, opt := range f.Options {
			if v.Choice == opt {
				return nil
			}
		}
		return fmt.Errorf("field %q: %q is not an allowed option", f.Name, v.Choice)
	}
	return nil
}
