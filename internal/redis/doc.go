// Package redis provides the Redis-backed session store. A session is one
// key (session:<token>) whose value is the owning user id, with a TTL; the
// store enforces expiry on its own, the application never sweeps.
package redis
