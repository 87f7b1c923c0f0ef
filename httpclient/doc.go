// Package httpclient is the outbound HTTP client used to reach the
// transcription upstream and the registry API.
//
// It sends JSON, form-encoded or raw bodies, reads the whole response and
// classifies failures into typed errors:
//
//	client, _ := httpclient.New(httpclient.Config{Timeout: 120 * time.Second})
//	resp, err := client.Do(ctx, httpclient.Request{
//	    Method: http.MethodPost,
//	    Path:   "https://abc.ngrok.app/transcribe",
//	    Body:   httpclient.Form(values),
//	})
//	switch {
//	case httpclient.IsTimeout(err):
//	case httpclient.IsConnection(err):
//	}
//
// A non-2xx status returns both the *Response and a *Error with the status.
package httpclient
