package client

import (
	"encoding/json"

	"github.com/bytedance/sonic"
	"github.com/mitchellh/mapstructure"
)

var jsonAPI = sonic.ConfigStd

// decodeInto converts a raw JSON payload into out. Server records are loosely
// typed (numbers arrive as strings and vice versa), so the payload is first
// decoded generically and then mapped onto the model with weak typing.
func decodeInto(raw json.RawMessage, out interface{}) error {
	if len(raw) == 0 {
		return nil
	}

	var generic interface{}
	if err := jsonAPI.Unmarshal(raw, &generic); err != nil {
		return err
	}
	if generic == nil {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(generic)
}

// decodeRecords decodes a list payload. A missing or null payload is an
// empty list.
func decodeRecords[T any](raw json.RawMessage) ([]T, error) {
	records := []T{}
	if err := decodeInto(raw, &records); err != nil {
		return nil, err
	}
	return records, nil
}
