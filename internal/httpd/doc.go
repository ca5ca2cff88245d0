// Package httpd implements a minimal HTTP/1.1 request/response layer directly
// on raw TCP connections: request-line and header parsing, Content-Length body
// framing across partial reads, Set-Cookie construction, Cookie extraction,
// and an ordered exact/prefix router.
//
// The protocol is deliberately narrow: GET/POST only, no persistent
// connections (every response carries Connection: close and the socket is
// closed afterwards), no chunked transfer encoding, no TLS.
package httpd
