// Package types contains shared type definitions used across the aiswei_bridge packages.
package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

// SuccessInfo is the info value the vendor sends with a successful reply.
const SuccessInfo = "success"

// ErrTrailingData is returned when a body holds more than one JSON value.
var ErrTrailingData = errors.New("trailing data after JSON document")

// Response is a decoded API reply. Numbers are kept as json.Number so that
// serial numbers and counters survive a round trip unchanged.
type Response struct {
	Document any
}

// DecodeResponse parses a JSON body into a Response.
func DecodeResponse(body []byte) (*Response, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, ErrTrailingData
	}
	return &Response{Document: doc}, nil
}

// Field returns a top level field of an object document.
func (r *Response) Field(name string) (any, bool) {
	if r == nil {
		return nil, false
	}
	obj, ok := r.Document.(map[string]any)
	if !ok {
		return nil, false
	}
	v, ok := obj[name]
	return v, ok
}

// Success reports whether the reply carries status 200, info "success" and a data field.
// The status is the body field, not the HTTP status.
func (r *Response) Success() bool {
	status, _ := r.Field("status")
	info, _ := r.Field("info")
	_, hasData := r.Field("data")

	return statusIs200(status) && info == SuccessInfo && hasData
}

// Data returns the data field, which is either one record or a list of records.
func (r *Response) Data() any {
	v, _ := r.Field("data")
	return v
}

// MarshalJSON emits the decoded document unchanged.
func (r *Response) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Document)
}

func statusIs200(v any) bool {
	switch s := v.(type) {
	case json.Number:
		f, err := s.Float64()
		return err == nil && f == 200
	case float64:
		return s == 200
	case int:
		return s == 200
	}
	return false
}
