package request

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Flag is a loosely typed form flag. Checkbox widgets send "on", JSON
// clients send booleans, and some send numbers; all are accepted.
type Flag struct {
	truthy      bool
	affirmative bool
}

// FlagFromString builds a flag from a form value
func FlagFromString(v string) Flag {
	return Flag{truthy: v != "", affirmative: v == "on"}
}

// FlagFromBool builds a flag from a boolean
func FlagFromBool(v bool) Flag {
	return Flag{truthy: v, affirmative: v}
}

// IsSet reports whether any non-empty, non-false, non-zero value was given
func (f Flag) IsSet() bool {
	return f.truthy
}

// IsAffirmative reports whether the value was exactly "on" or true
func (f Flag) IsAffirmative() bool {
	return f.affirmative
}

// UnmarshalJSON accepts any JSON value
func (f *Flag) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	switch val := v.(type) {
	case nil:
		*f = Flag{}
	case bool:
		*f = FlagFromBool(val)
	case string:
		*f = FlagFromString(val)
	case float64:
		*f = Flag{truthy: val != 0 && !math.IsNaN(val)}
	default:
		// Objects and arrays
		*f = Flag{truthy: true}
	}
	return nil
}

// MarshalJSON writes the flag as a boolean
func (f Flag) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.truthy)
}

// Text is a string field that also accepts JSON numbers and booleans,
// kept in their literal form. Null reads as empty.
type Text string

// UnmarshalJSON accepts any JSON scalar
func (t *Text) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	switch val := v.(type) {
	case nil:
		*t = ""
	case string:
		*t = Text(val)
	case float64, bool:
		*t = Text(strings.TrimSpace(string(data)))
	default:
		return fmt.Errorf("expected a string, got %s", data)
	}
	return nil
}

// Code is the admin code as sent. Only a JSON string can match, so any
// other value is remembered as present but not comparable.
type Code struct {
	value    string
	isString bool
}

// Value returns the code and whether it was sent as a string
func (c Code) Value() (string, bool) {
	return c.value, c.isString
}

// UnmarshalJSON accepts any JSON value
func (c *Code) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	s, ok := v.(string)
	*c = Code{value: s, isString: ok}
	return nil
}
