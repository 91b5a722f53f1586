package store

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnsupportedVersion is returned for blobs written by a newer build.
var ErrUnsupportedVersion = errors.New("unsupported data version")

type envelope struct {
	Version int             `json:"version"`
	Data    json.RawMessage `json:"data"`
}

// EncodeVersioned marshals v inside a {"version":N,"data":...} envelope.
func EncodeVersioned(version int, v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	out, err := json.Marshal(envelope{Version: version, Data: data})
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// DecodeVersioned unwraps an envelope written by EncodeVersioned. Values
// stored without one are legacy data and are reported as version 0.
// Versions above current fail with ErrUnsupportedVersion.
func DecodeVersioned(raw string, current int) (version int, data json.RawMessage, err error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		// Arrays and scalars cannot be envelopes.
		if !json.Valid([]byte(raw)) {
			return 0, nil, fmt.Errorf("parse stored value: %w", err)
		}
		return 0, json.RawMessage(raw), nil
	}
	_, hasVersion := fields["version"]
	_, hasData := fields["data"]
	if !hasVersion || !hasData || len(fields) != 2 {
		return 0, json.RawMessage(raw), nil
	}

	var env envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return 0, nil, fmt.Errorf("parse envelope: %w", err)
	}
	if env.Version > current {
		return env.Version, nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, env.Version)
	}
	return env.Version, env.Data, nil
}
