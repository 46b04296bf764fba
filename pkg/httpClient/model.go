package httpClient

import (
	"encoding/json"
	"net/http"
	"time"
)

const (
	HeaderTraceID      = "X-Trace-ID"
	HeaderServiceName  = "X-Service-Name"
	HeaderContentType  = "Content-Type"
	HeaderAccept       = "Accept"
	HeaderCacheControl = "Cache-Control"
	HeaderPragma       = "Pragma"

	ContentTypeJSON    = "application/json"
	ContentTypeFormURL = "application/x-www-form-urlencoded"
)

// NoCacheHeaders disable caching on probe requests.
var NoCacheHeaders = map[string]string{
	HeaderCacheControl: "no-cache, no-store",
	HeaderPragma:       "no-cache",
}

// Response is a fully read HTTP response.
type Response struct {
	TraceID    string
	StatusCode int
	Header     http.Header
	Body       []byte
	Duration   time.Duration
}

// OK reports a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Decode unmarshals the body as JSON.
func (r *Response) Decode(v interface{}) error {
	return json.Unmarshal(r.Body, v)
}
