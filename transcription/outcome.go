package transcription

import "fmt"

// Kind classifies a forwarding result.
type Kind int

const (
	// KindSuccess carries extracted text.
	KindSuccess Kind = iota
	// KindUpstreamError is a non-success status with no further fallback.
	KindUpstreamError
	// KindShapeMismatch is a success status without usable text.
	KindShapeMismatch
	// KindUnreachable is a connection-level failure.
	KindUnreachable
	// KindTimeout is an upstream call that exceeded its deadline.
	KindTimeout
	// KindNotReady means no upstream address is known.
	KindNotReady
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindUpstreamError:
		return "upstream_error"
	case KindShapeMismatch:
		return "shape_mismatch"
	case KindUnreachable:
		return "unreachable"
	case KindTimeout:
		return "timeout"
	case KindNotReady:
		return "not_ready"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Encoding names the body encoding of an attempt.
type Encoding string

const (
	EncodingJSON Encoding = "json"
	EncodingForm Encoding = "form"
)

// Outcome is the result of forwarding one request. Only the fields
// relevant to Kind are set.
type Outcome struct {
	Kind Kind
	Text string

	// Status and Body describe the upstream reply for UpstreamError and
	// ShapeMismatch.
	Status int
	Body   any

	// Encoding is the encoding of the attempt that produced the outcome.
	Encoding Encoding
	// Attempts is the number of upstream calls made.
	Attempts int

	Err error
}

// Success reports whether the outcome carries text.
func (o Outcome) Success() bool { return o.Kind == KindSuccess }
