package httpd

import "strings"

// CookieSpec holds the configured attributes of the session cookie.
type CookieSpec struct {
	Name     string
	SameSite string // Strict, Lax or None
	Secure   bool
}

// Set builds a Set-Cookie value binding the session token:
// <name>=<token>; Path=/; HttpOnly; SameSite=<v>[; Secure]
func (c CookieSpec) Set(token string) string {
	return c.render(token, false)
}

// Clear builds the companion clearing value with Max-Age=0 and a dummy value.
func (c CookieSpec) Clear() string {
	return c.render("deleted", true)
}

func (c CookieSpec) render(value string, expire bool) string {
	var b strings.Builder
	b.WriteString(c.Name)
	b.WriteByte('=')
	b.WriteString(value)
	b.WriteString("; Path=/; HttpOnly")
	if expire {
		b.WriteString("; Max-Age=0")
	}
	b.WriteString("; SameSite=")
	b.WriteString(c.SameSite)
	if c.Secure {
		b.WriteString("; Secure")
	}
	return b.String()
}

// SessionToken extracts the named cookie's value from a raw Cookie header.
// Pairs are scanned in order and the first exact name match wins; the value
// runs to the next semicolon or the end of the header. A missing header or
// name yields ok=false, never an error.
func SessionToken(header, name string) (token string, ok bool) {
	for _, pair := range strings.Split(header, ";") {
		pair = strings.TrimSpace(pair)
		k, v, found := strings.Cut(pair, "=")
		if found && k == name {
			return v, true
		}
	}
	return "", false
}
