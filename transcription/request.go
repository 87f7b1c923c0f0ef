package transcription

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	apperrors "github.com/kbukum/voxrelay/errors"
)

// ErrMissingInput is the message for requests without audio or model.
const ErrMissingInput = "Missing audio data or model"

// Float is a parameter value that always renders with a decimal point,
// so 30 is sent as 30.0.
type Float float64

// String formats f with at least one fractional digit.
func (f Float) String() string {
	s := strconv.FormatFloat(float64(f), 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// MarshalJSON renders f as a JSON number with a decimal point.
func (f Float) MarshalJSON() ([]byte, error) {
	return []byte(f.String()), nil
}

// Param is one named outbound value. Value is a bool, int, Float or string.
type Param struct {
	Name  string
	Value any
}

// flat renders v as a form value: booleans lower-case, numbers in decimal.
func flat(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case Float:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// OutboundRequest is the immutable, ordered parameter list sent upstream.
type OutboundRequest struct {
	model  Model
	params []Param
}

// NewOutboundRequest builds the request for model carrying audio as base64.
func NewOutboundRequest(model Model, audio []byte) (*OutboundRequest, error) {
	if len(audio) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeMissingField, ErrMissingInput, http.StatusBadRequest).
			WithDetail("field", "audio_base64")
	}
	if _, err := ParseModel(string(model)); err != nil {
		return nil, err
	}

	fixed := model.params()
	params := make([]Param, 0, len(fixed)+1)
	params = append(params, Param{Name: "audio_base64", Value: base64.StdEncoding.EncodeToString(audio)})
	params = append(params, fixed...)
	return &OutboundRequest{model: model, params: params}, nil
}

// Model returns the model the request was built for.
func (r *OutboundRequest) Model() Model { return r.model }

// Params returns a copy of the parameters in order.
func (r *OutboundRequest) Params() []Param {
	out := make([]Param, len(r.params))
	copy(out, r.params)
	return out
}

// Value returns the named parameter.
func (r *OutboundRequest) Value(name string) (any, bool) {
	for _, p := range r.params {
		if p.Name == name {
			return p.Value, true
		}
	}
	return nil, false
}

// MarshalJSON renders the parameters as a JSON object with native types,
// keeping their order.
func (r *OutboundRequest) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range r.params {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(p.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(p.Value)
		if err != nil {
			return nil, fmt.Errorf("encoding %s: %w", p.Name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Form renders every parameter as a string for form encoding.
func (r *OutboundRequest) Form() url.Values {
	values := make(url.Values, len(r.params))
	for _, p := range r.params {
		values.Set(p.Name, flat(p.Value))
	}
	return values
}
