// Package jsonx holds lenient JSON scalars for decoding third-party payloads
// whose field types drift between endpoints.
package jsonx

import (
	"bytes"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

// ID is a numeric identifier. Anything that is not an integral JSON number
// decodes to 0, which callers read as "no identifier".
type ID int64

func (id *ID) UnmarshalJSON(b []byte) error {
	*id = 0

	d, err := decimal.NewFromString(string(bytes.TrimSpace(b)))
	if err != nil || !d.IsInteger() {
		return nil //nolint:nilerr
	}

	*id = ID(d.IntPart())

	return nil
}

func (id ID) Int64() int64 {
	return int64(id)
}

// Text accepts a JSON string or number. Null and other kinds decode to "".
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	*t = ""

	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil
	}

	switch {
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err //nolint:wrapcheck
		}

		*t = Text(s)
	case b[0] == '-' || (b[0] >= '0' && b[0] <= '9'):
		if _, err := strconv.ParseFloat(string(b), 64); err == nil {
			*t = Text(b)
		}
	}

	return nil
}

func (t Text) String() string {
	return string(t)
}

// List decodes a collection that arrives either as a bare array or wrapped as
// {"data": [...]} or {"results": [...]}. "data" wins when both are present.
type List[T any] struct {
	Items []T
}

func (l *List[T]) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)

	if len(b) > 0 && b[0] == '[' {
		return json.Unmarshal(b, &l.Items) //nolint:wrapcheck
	}

	var wrapped struct {
		Data    []T `json:"data"`
		Results []T `json:"results"`
	}

	if err := json.Unmarshal(b, &wrapped); err != nil {
		return err //nolint:wrapcheck
	}

	l.Items = wrapped.Data
	if l.Items == nil {
		l.Items = wrapped.Results
	}

	return nil
}

// Item decodes a single resource sent either bare or as {"data": {...}}.
type Item[T any] struct {
	Value T
}

func (i *Item[T]) UnmarshalJSON(b []byte) error {
	var wrapped struct {
		Data jsoniter.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(b, &wrapped); err != nil {
		return err //nolint:wrapcheck
	}

	data := bytes.TrimSpace(wrapped.Data)
	if len(data) > 0 && data[0] == '{' {
		return json.Unmarshal(data, &i.Value) //nolint:wrapcheck
	}

	return json.Unmarshal(b, &i.Value) //nolint:wrapcheck
}
