package httpd

import (
	"encoding/json"
	"fmt"
	"io"
)

// statusLines is the fixed set of status codes this server ever sends.
var statusLines = map[int]string{
	200: "HTTP/1.1 200 OK\r\n",
	201: "HTTP/1.1 201 Created\r\n",
	204: "HTTP/1.1 204 No Content\r\n",
	400: "HTTP/1.1 400 Bad Request\r\n",
	401: "HTTP/1.1 401 Unauthorized\r\n",
	403: "HTTP/1.1 403 Forbidden\r\n",
	404: "HTTP/1.1 404 Not Found\r\n",
	405: "HTTP/1.1 405 Method Not Allowed\r\n",
	409: "HTTP/1.1 409 Conflict\r\n",
	500: "HTTP/1.1 500 Internal Server Error\r\n",
}

const jsonContentType = "application/json; charset=utf-8"

// Response writes exactly one HTTP/1.1 response to its connection. Extra
// headers (Set-Cookie) queue up until the body is written; every response
// carries Connection: close.
type Response struct {
	w       io.Writer
	headers []string
	written bool
	status  int
}

func NewResponse(w io.Writer) *Response {
	return &Response{w: w}
}

// AddHeader queues a raw header line to be written after the status line.
func (r *Response) AddHeader(name, value string) {
	r.headers = append(r.headers, name+": "+value)
}

// Written reports whether a response has already gone out on the connection.
func (r *Response) Written() bool {
	return r.written
}

// Status returns the status code sent, or 0 if nothing was written yet.
func (r *Response) Status() int {
	return r.status
}

// WriteJSON marshals v and writes a complete response.
func (r *Response) WriteJSON(status int, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal response body: %w", err)
	}
	return r.write(status, jsonContentType, body)
}

// WriteRaw writes a complete response with a pre-encoded body.
func (r *Response) WriteRaw(status int, contentType string, body []byte) error {
	return r.write(status, contentType, body)
}

// WriteError writes the standard {"error": code} body.
func (r *Response) WriteError(status int, code string) error {
	return r.WriteJSON(status, map[string]string{"error": code})
}

func (r *Response) write(status int, contentType string, body []byte) error {
	line, ok := statusLines[status]
	if !ok {
		return fmt.Errorf("status code %d outside the supported set", status)
	}

	head := line +
		"Content-Type: " + contentType + "\r\n" +
		"Connection: close\r\n" +
		fmt.Sprintf("Content-Length: %d\r\n", len(body))
	for _, h := range r.headers {
		head += h + "\r\n"
	}
	head += "\r\n"

	if _, err := io.WriteString(r.w, head); err != nil {
		return fmt.Errorf("failed to write response headers: %w", err)
	}
	if len(body) > 0 {
		if _, err := r.w.Write(body); err != nil {
			return fmt.Errorf("failed to write response body: %w", err)
		}
	}
	r.written = true
	r.status = status
	return nil
}
