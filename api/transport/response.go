package transport

import (
	"encoding/json"

	"github.com/valyala/fasthttp"
)

// Envelope is the standard API response wrapper used for both success and error payloads.
type Envelope struct {
	Status string      `json:"status"`
	Code   string      `json:"code,omitempty"`
	Data   interface{} `json:"data,omitempty"`
	Error  interface{} `json:"error,omitempty"`
	Meta   interface{} `json:"meta,omitempty"`
}

// NewSuccess returns a success envelope.
func NewSuccess(data interface{}, meta interface{}) Envelope {
	return Envelope{
		Status: "success",
		Data:   data,
		Meta:   meta,
	}
}

// NewError returns an error envelope with optional metadata.
func NewError(code string, err interface{}, meta interface{}) Envelope {
	return Envelope{
		Status: "error",
		Code:   code,
		Error:  err,
		Meta:   meta,
	}
}

// WriteTo serializes the envelope onto the response with the given status
// code. Marshal failures fall back to a bare internal-error body so the
// client always receives valid JSON.
func (e Envelope) WriteTo(ctx *fasthttp.RequestCtx, status int) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, err := json.Marshal(e)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		ctx.SetBodyString(`{"status":"error","code":"INTERNAL"}`)
		return
	}
	ctx.SetBody(body)
}

// String returns the JSON representation (best-effort) for logging purposes.
func (e Envelope) String() string {
	out, err := json.Marshal(e)
	if err != nil {
		return "{}"
	}
	return string(out)
}
