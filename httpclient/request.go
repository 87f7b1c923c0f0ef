package httpclient

import (
	"net/url"
)

// Request describes an outbound HTTP request.
type Request struct {
	// Method is the HTTP method.
	Method string
	// Path is appended to BaseURL, or used as-is when it is an absolute URL.
	Path string
	// Headers are request-specific headers merged over the client defaults.
	Headers map[string]string
	// Query are URL query parameters.
	Query map[string]string
	// Body accepts io.Reader, []byte, string, FormBody, or any value that
	// will be JSON-encoded.
	Body any
}

// FormBody is sent as application/x-www-form-urlencoded.
type FormBody struct {
	Values url.Values
}

// Form wraps values as a form-encoded request body.
func Form(values url.Values) FormBody {
	return FormBody{Values: values}
}

// Response is the result of an HTTP request.
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Headers are the response headers, first value per key.
	Headers map[string]string
	// Body is the raw response body.
	Body []byte
}

// IsSuccess returns true if the status code is 2xx.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}
