package stringcache

import "time"

// entry is a single cache record stored behind a key.
//
// expiresAt is kept as UnixNano for fast numeric comparison, the same
// trick the janitor and the Get() lazy-expiry path both rely on.
//
// There is no "never expires" sentinel here: Set(key, value, 0)
// computes expiresAt = now, so the very next Get sees the entry as
// already expired. That mirrors the reference cache's
// `expiresAt = now + ttl` with no zero-TTL special case; callers that
// want a long-lived key pass a large ttl, not zero.
type entry struct {
	key       string
	value     []byte
	expiresAt int64
}

func (e *entry) expired() bool {
	return time.Now().UnixNano() >= e.expiresAt
}
