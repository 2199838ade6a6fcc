package record

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"shiftlog/internal/format"
)

// ErrInvalidFormat is returned when a payload is not a JSON array.
var ErrInvalidFormat = errors.New("invalid file format")

// FieldIssue describes one field that had to be coerced while decoding.
// Issues are informational: the record is still produced.
type FieldIssue struct {
	Index int
	Field string
	Value any
}

func (f FieldIssue) Error() string {
	if f.Field == "" {
		return fmt.Sprintf("record %d: not an object (%v)", f.Index, f.Value)
	}
	return fmt.Sprintf("record %d: field %q coerced from %v", f.Index, f.Field, f.Value)
}

// Decode parses a JSON array of loosely typed records. Fields of the wrong
// type degrade to zero or the empty string and are reported as issues; only
// a payload that is not an array fails.
func Decode(data []byte) ([]Record, []FieldIssue, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, nil, fmt.Errorf("%w: trailing data after JSON value", ErrInvalidFormat)
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, nil, fmt.Errorf("%w: expected a JSON array", ErrInvalidFormat)
	}

	recs := make([]Record, 0, len(items))
	var issues []FieldIssue
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			issues = append(issues, FieldIssue{Index: i, Value: item})
			recs = append(recs, Record{})
			continue
		}
		r, fieldIssues := coerce(i, obj)
		recs = append(recs, r)
		issues = append(issues, fieldIssues...)
	}
	return recs, issues, nil
}

func coerce(i int, obj map[string]any) (Record, []FieldIssue) {
	var issues []FieldIssue

	str := func(key string) string {
		v, ok := obj[key]
		if !ok {
			return ""
		}
		if s, ok := v.(string); ok {
			return s
		}
		issues = append(issues, FieldIssue{Index: i, Field: key, Value: v})
		return format.ToString(v)
	}
	num := func(key string) float64 {
		v, ok := obj[key]
		if !ok {
			return 0
		}
		if !isNumeric(v) {
			issues = append(issues, FieldIssue{Index: i, Field: key, Value: v})
		}
		return format.ToNumber(v)
	}

	r := Record{
		Date:      str("date"),
		Start:     str("start"),
		End:       str("end"),
		Allocated: num("allocated"),
		Worked:    num("worked"),
		Balance:   num("balance"),
		CargoLate: num("cargoLate"),
	}
	return r, issues
}

func isNumeric(v any) bool {
	switch n := v.(type) {
	case json.Number:
		_, err := n.Float64()
		return err == nil
	case float64:
		return true
	case string:
		_, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return err == nil
	}
	return false
}
