package client

import "encoding/json"

// ResultKind tells callers how to interpret a command response.
type ResultKind int

const (
	// ResultEmpty means nothing usable came back: the request failed in
	// transport or the server answered with a non-2xx status.
	ResultEmpty ResultKind = iota
	// ResultData carries the response's data payload verbatim.
	ResultData
	// ResultNoContent is a success response without a data payload.
	ResultNoContent
	// ResultError is a non-success response without a data payload.
	ResultError
)

func (k ResultKind) String() string {
	switch k {
	case ResultEmpty:
		return "empty"
	case ResultData:
		return "data"
	case ResultNoContent:
		return "no content"
	case ResultError:
		return "error"
	}
	return "unknown"
}

// Result is the outcome of Execute.
type Result struct {
	Kind   ResultKind
	Status string          // the response's "result" field, if any
	Data   json.RawMessage // set only for ResultData
}

// OK reports whether the server accepted the command.
func (r Result) OK() bool {
	switch r.Kind {
	case ResultNoContent:
		return true
	case ResultData:
		return r.Status != resultFail
	}
	return false
}

// Decode maps the data payload onto out, tolerating loosely typed fields.
func (r Result) Decode(out interface{}) error {
	if r.Kind != ResultData {
		return ErrNoData
	}
	return decodeInto(r.Data, out)
}

// Value decodes the data payload into generic Go values.
func (r Result) Value() (interface{}, error) {
	if r.Kind != ResultData {
		return nil, ErrNoData
	}
	var v interface{}
	if err := jsonAPI.Unmarshal(r.Data, &v); err != nil {
		return nil, err
	}
	return v, nil
}
