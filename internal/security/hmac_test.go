package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	payload := []byte("1234567890")
	secret := "xyz"

	sig := Sign(payload, secret)
	assert.True(t, Verify(payload, sig, secret))
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	payload := []byte("1234567890")
	sig := Sign(payload, "xyz")
	assert.False(t, Verify(payload, sig, "not-xyz"))
}

func TestVerifyRejectsTamperedPayload(t *testing.T) {
	sig := Sign([]byte("original"), "xyz")
	assert.False(t, Verify([]byte("tampered"), sig, "xyz"))
}

func TestVerifyRejectsMalformedHex(t *testing.T) {
	assert.False(t, Verify([]byte("payload"), "not-hex-zzzz", "xyz"))
}

// TestVerifyBitFlipAlwaysFails exercises invariant 9: flipping any
// single hex character of a valid signature must fail verification.
func TestVerifyBitFlipAlwaysFails(t *testing.T) {
	payload := []byte("1234567890")
	secret := "xyz"
	sig := []byte(Sign(payload, secret))

	for i := range sig {
		mutated := make([]byte, len(sig))
		copy(mutated, sig)
		if mutated[i] == '0' {
			mutated[i] = '1'
		} else {
			mutated[i] = '0'
		}
		assert.False(t, Verify(payload, string(mutated), secret), "position %d", i)
	}
}
