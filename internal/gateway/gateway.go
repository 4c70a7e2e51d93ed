package gateway

import (
	"context"
	"encoding/json"
	"fmt"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope is the backend's uniform response: a status, an optional
// human-readable message, and action-specific fields kept raw so each
// renderer decodes only what it consumes.
type Envelope struct {
	Status  string
	Message string
	Data    map[string]json.RawMessage
}

func (e *Envelope) UnmarshalJSON(b []byte) error {
	raw := make(map[string]json.RawMessage)
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if v, ok := raw["status"]; ok {
		if err := json.Unmarshal(v, &e.Status); err != nil {
			return err
		}
		delete(raw, "status")
	}
	if v, ok := raw["message"]; ok {
		if err := json.Unmarshal(v, &e.Message); err != nil {
			return err
		}
		delete(raw, "message")
	}
	e.Data = raw
	return nil
}

// OK reports an application-level success.
func (e *Envelope) OK() bool {
	return e != nil && e.Status == StatusSuccess
}

// Field decodes one action-specific response field into v.
func (e *Envelope) Field(name string, v any) error {
	raw, ok := e.Data[name]
	if !ok {
		return fmt.Errorf("response field %q missing", name)
	}
	return json.Unmarshal(raw, v)
}

// HasField reports whether the response carries the named field.
func (e *Envelope) HasField(name string) bool {
	_, ok := e.Data[name]
	return ok
}

// Caller issues one named action with a payload against the backend. A
// returned error is a transport-level failure; an application-level
// outcome is carried in the envelope's status. The caller never retries.
type Caller interface {
	Call(ctx context.Context, action string, payload map[string]any) (*Envelope, error)
}
