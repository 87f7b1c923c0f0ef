package transcription

import (
	"encoding/json"
	"strings"
)

// Shape identifies which known reply layout carried the text.
type Shape int

const (
	// ShapeUnrecognized has none of the known text keys.
	ShapeUnrecognized Shape = iota
	// ShapeNestedText carries {"result": {"text": ...}}.
	ShapeNestedText
	// ShapeText carries {"text": ...}.
	ShapeText
	// ShapeTranslation carries {"translation": ...}.
	ShapeTranslation
)

func (s Shape) String() string {
	switch s {
	case ShapeNestedText:
		return "result.text"
	case ShapeText:
		return "text"
	case ShapeTranslation:
		return "translation"
	default:
		return "unrecognized"
	}
}

// Reply is a decoded upstream response body.
type Reply struct {
	Shape Shape
	// Body is the decoded JSON, or the raw text when the body is not JSON.
	Body any

	value json.RawMessage
}

// ParseReply decodes raw and locates the text field. Key precedence is
// result.text, then text, then translation; the first key present wins
// even if its value turns out to be unusable.
func ParseReply(raw []byte) Reply {
	var body any
	if err := json.Unmarshal(raw, &body); err != nil {
		return Reply{Shape: ShapeUnrecognized, Body: string(raw)}
	}
	reply := Reply{Shape: ShapeUnrecognized, Body: body}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return reply
	}

	if nested, ok := obj["result"]; ok {
		var inner map[string]json.RawMessage
		if json.Unmarshal(nested, &inner) == nil {
			if v, ok := inner["text"]; ok {
				reply.Shape, reply.value = ShapeNestedText, v
				return reply
			}
		}
	}
	if v, ok := obj["text"]; ok {
		reply.Shape, reply.value = ShapeText, v
		return reply
	}
	if v, ok := obj["translation"]; ok {
		reply.Shape, reply.value = ShapeTranslation, v
	}
	return reply
}

// Text returns the transcription text. Strings are returned verbatim and
// other non-null values as compact JSON. A null or missing value reports
// false.
func (r Reply) Text() (string, bool) {
	if r.Shape == ShapeUnrecognized {
		return "", false
	}
	trimmed := strings.TrimSpace(string(r.value))
	if trimmed == "" || trimmed == "null" {
		return "", false
	}
	var s string
	if err := json.Unmarshal(r.value, &s); err == nil {
		return s, true
	}
	var v any
	if err := json.Unmarshal(r.value, &v); err != nil {
		return "", false
	}
	compact, err := json.Marshal(v)
	if err != nil {
		return "", false
	}
	return string(compact), true
}
