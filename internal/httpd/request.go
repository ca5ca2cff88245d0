package httpd

import (
	"bytes"
	"errors"
	"io"
	"strconv"
	"strings"
)

// Framing errors. None of these produce a response; the connection is simply
// discarded, matching a client that cannot be answered meaningfully.
var (
	ErrConnectionClosed     = errors.New("connection closed by peer")
	ErrMalformedRequestLine = errors.New("malformed request line")
	ErrHeadersTooLarge      = errors.New("headers exceed read buffer")
	ErrBodyTooLarge         = errors.New("declared body exceeds configured cap")
)

// readBufferSize caps the request line plus headers; a request whose header
// block does not fit in the initial read is rejected.
const readBufferSize = 8192

const (
	maxMethodLen = 7
	maxPathLen   = 1023
)

// Request is a fully materialized HTTP request. Body is complete before the
// request is handed to any handler; the buffer belongs to the request until
// the handler returns.
type Request struct {
	Method        string
	Path          string
	ContentType   string
	ContentLength int
	Cookie        string
	Body          []byte
}

// ReadRequest reads one request off conn. The header block must arrive within
// the first read; the body is assembled with as many further reads as the
// peer's segmentation requires. maxBody bounds the accepted Content-Length.
func ReadRequest(conn io.Reader, maxBody int) (*Request, error) {
	buf := make([]byte, readBufferSize)
	n, err := conn.Read(buf)
	if n <= 0 {
		return nil, ErrConnectionClosed
	}
	// A non-nil error alongside data is fine; the header block either fits in
	// what arrived or the request is rejected below.
	_ = err

	headerEnd := bytes.Index(buf[:n], []byte("\r\n\r\n"))
	if headerEnd < 0 {
		return nil, ErrHeadersTooLarge
	}
	headerLen := headerEnd + 4

	req := &Request{}
	lines := strings.Split(string(buf[:headerEnd]), "\r\n")
	if err := parseRequestLine(lines[0], req); err != nil {
		return nil, err
	}
	if err := scanHeaders(lines[1:], req, maxBody); err != nil {
		return nil, err
	}

	if req.ContentLength == 0 {
		return req, nil
	}

	body := make([]byte, req.ContentLength)
	have := copy(body, buf[headerLen:n])
	if have < req.ContentLength {
		if _, err := io.ReadFull(conn, body[have:]); err != nil {
			return nil, ErrConnectionClosed
		}
	}
	req.Body = body
	return req, nil
}

// parseRequestLine extracts method and path as the first two whitespace
// delimited tokens; the protocol version token is ignored.
func parseRequestLine(line string, req *Request) error {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return ErrMalformedRequestLine
	}
	if len(fields[0]) > maxMethodLen || len(fields[1]) > maxPathLen {
		return ErrMalformedRequestLine
	}
	req.Method = fields[0]
	req.Path = fields[1]
	return nil
}

// scanHeaders matches Content-Type, Content-Length and Cookie case
// insensitively. First occurrence wins; everything else is ignored.
func scanHeaders(lines []string, req *Request, maxBody int) error {
	seenType, seenLength, seenCookie := false, false, false

	for _, line := range lines {
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)

		switch {
		case !seenType && strings.EqualFold(name, "Content-Type"):
			req.ContentType = value
			seenType = true
		case !seenLength && strings.EqualFold(name, "Content-Length"):
			length, err := strconv.Atoi(value)
			if err != nil || length < 0 {
				return ErrMalformedRequestLine
			}
			if length > maxBody {
				return ErrBodyTooLarge
			}
			req.ContentLength = length
			seenLength = true
		case !seenCookie && strings.EqualFold(name, "Cookie"):
			req.Cookie = value
			seenCookie = true
		}
	}
	return nil
}
