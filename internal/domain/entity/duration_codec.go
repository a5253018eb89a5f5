package entity

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	errs "github.com/amirhossein-jamali/calendar-duration/internal/domain/error"
)

// MarshalText encodes the canonical form
func (d Duration) MarshalText() ([]byte, error) {
	if d.IsZero() {
		return nil, errs.NewDurationError("", "zero duration", errs.ErrInvalidMagnitude)
	}
	return []byte(d.String()), nil
}

// UnmarshalText parses any textual form accepted by Parse
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalJSON encodes the canonical form as a JSON string
func (d Duration) MarshalJSON() ([]byte, error) {
	text, err := d.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON accepts a string ("1d"), a number of seconds (86400), a pair
// ([2, "min"]) or a single-entry object ({"min": 2})
func (d *Duration) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return errs.NewDurationError(string(data), "empty input", errs.ErrInvalidInput)
	}

	var in Input
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return errs.NewDurationError(string(data), "malformed string", errs.ErrInvalidInput)
		}
		in = Text(s)
	case '[':
		pair, err := decodeJSONPair(data)
		if err != nil {
			return err
		}
		in = pair
	case '{':
		var m map[string]float64
		if err := json.Unmarshal(data, &m); err != nil {
			return errs.NewDurationError(string(data), "malformed object", errs.ErrInvalidInput)
		}
		in = Mapping(m)
	default:
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			return errs.NewDurationError(string(data), "unsupported JSON value", errs.ErrInvalidInput)
		}
		in = Seconds(f)
	}

	parsed, err := New(in)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func decodeJSONPair(data []byte) (Pair, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || len(raw) != 2 {
		return Pair{}, errs.NewDurationError(string(data), "expected [magnitude, unit]", errs.ErrInvalidInput)
	}
	var p Pair
	if err := json.Unmarshal(raw[0], &p.Magnitude); err != nil {
		return Pair{}, errs.NewDurationError(string(data), "magnitude must be a number", errs.ErrInvalidInput)
	}
	if err := json.Unmarshal(raw[1], &p.Unit); err != nil {
		return Pair{}, errs.NewDurationError(string(data), "unit must be a string", errs.ErrInvalidInput)
	}
	return p, nil
}

// MarshalYAML encodes the canonical form as a scalar
func (d Duration) MarshalYAML() (any, error) {
	text, err := d.MarshalText()
	if err != nil {
		return nil, err
	}
	return string(text), nil
}

// UnmarshalYAML accepts the same shapes as UnmarshalJSON: a scalar string or
// number, a two-item sequence, or a single-entry mapping
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var in Input
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!int" || node.Tag == "!!float" {
			var f float64
			if err := node.Decode(&f); err != nil {
				return errs.NewDurationError(node.Value, "malformed number", errs.ErrInvalidInput)
			}
			in = Seconds(f)
		} else {
			in = Text(node.Value)
		}
	case yaml.SequenceNode:
		if len(node.Content) != 2 {
			return errs.NewDurationError(fmt.Sprintf("line %d", node.Line), "expected [magnitude, unit]", errs.ErrInvalidInput)
		}
		var p Pair
		if err := node.Content[0].Decode(&p.Magnitude); err != nil {
			return errs.NewDurationError(node.Content[0].Value, "magnitude must be a number", errs.ErrInvalidInput)
		}
		p.Unit = node.Content[1].Value
		in = p
	case yaml.MappingNode:
		var m map[string]float64
		if err := node.Decode(&m); err != nil {
			return errs.NewDurationError(fmt.Sprintf("line %d", node.Line), "malformed mapping", errs.ErrInvalidInput)
		}
		in = Mapping(m)
	default:
		return errs.NewDurationError(fmt.Sprintf("line %d", node.Line), "unsupported YAML value", errs.ErrInvalidInput)
	}

	parsed, err := New(in)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value stores the canonical form
func (d Duration) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

// Scan reads a duration stored as text or as a number of seconds
func (d *Duration) Scan(src any) error {
	var in Input
	switch v := src.(type) {
	case string:
		in = Text(v)
	case []byte:
		in = Text(string(v))
	case int64:
		in = Seconds(float64(v))
	case float64:
		in = Seconds(v)
	case nil:
		*d = Duration{}
		return nil
	default:
		return errs.NewDurationError(fmt.Sprintf("%v", src), fmt.Sprintf("cannot scan %T", src), errs.ErrInvalidInput)
	}

	parsed, err := New(in)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
