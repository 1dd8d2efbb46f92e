package connection

import (
	"encoding/binary"
	"fmt"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memify-io/memify/internal/command"
	"github.com/memify-io/memify/internal/geocache"
	"github.com/memify-io/memify/internal/mesp"
	"github.com/memify-io/memify/internal/security"
	"github.com/memify-io/memify/internal/stringcache"
	"github.com/memify-io/memify/internal/timeseries"
)

const testSecret = "shared-test-secret"

func newTestHandler() *Handler {
	d := command.New(
		stringcache.New(stringcache.WithMaxEntries(100)),
		geocache.New(100, nil),
		timeseries.New(100),
		nil, nil,
	)
	return New(testSecret, d, nil, nil)
}

func validHandshakePayload() []byte {
	ts := fmt.Sprintf("%d", time.Now().Unix())
	sig := security.Sign([]byte(ts), testSecret)
	return []byte(ts + "|" + sig)
}

func readFramedResponse(t *testing.T, conn net.Conn) []byte {
	t.Helper()
	header := make([]byte, 4)
	_, err := conn.Read(header)
	require.NoError(t, err)
	n := binary.BigEndian.Uint32(header)
	body := make([]byte, n)
	read := 0
	for read < int(n) {
		m, err := conn.Read(body[read:])
		require.NoError(t, err)
		read += m
	}
	return body
}

func writeFrame(t *testing.T, conn net.Conn, sig string, payload []byte) {
	t.Helper()
	frame := append([]byte(sig+"\n"), payload...)
	header := make([]byte, 4)
	binary.BigEndian.PutUint32(header, uint32(len(frame)))
	_, err := conn.Write(header)
	require.NoError(t, err)
	_, err = conn.Write(frame)
	require.NoError(t, err)
}

// TestScenarioS5CorruptSignatureThenValidPing mirrors S5: a corrupt
// signature gets a rejection, but the connection stays open and a
// subsequent valid PING still succeeds.
func TestScenarioS5CorruptSignatureThenValidPing(t *testing.T) {
	client, server := net.Pipe()
	h := newTestHandler()
	go h.Serve(server)

	_, err := client.Write(validHandshakePayload())
	require.NoError(t, err)
	ack := make([]byte, 3)
	_, err = client.Read(ack)
	require.NoError(t, err)
	assert.Equal(t, "OK\n", string(ack))

	pingPayload := mesp.Serialize(mesp.Simple("PING"))
	writeFrame(t, client, "not-a-real-signature", pingPayload)
	resp := readFramedResponse(t, client)
	v, _, err := mesp.Parse(resp)
	require.NoError(t, err)
	assert.Equal(t, "Signature Verification Failure", string(v.Bulk))

	sig := security.Sign(pingPayload, testSecret)
	writeFrame(t, client, sig, pingPayload)
	resp = readFramedResponse(t, client)
	v, _, err = mesp.Parse(resp)
	require.NoError(t, err)
	assert.Equal(t, "PONG", string(v.Bulk))

	client.Close()
}

func TestHandshakeRejectsBadSignature(t *testing.T) {
	client, server := net.Pipe()
	h := newTestHandler()
	go h.Serve(server)

	ts := fmt.Sprintf("%d", time.Now().Unix())
	_, err := client.Write([]byte(ts + "|deadbeef"))
	require.NoError(t, err)

	resp := make([]byte, 5)
	_, err = client.Read(resp)
	require.NoError(t, err)
	assert.Equal(t, "FAIL\n", string(resp))
}

func TestHandshakeRejectsMissingDelimiter(t *testing.T) {
	client, server := net.Pipe()
	h := newTestHandler()
	go h.Serve(server)

	_, err := client.Write([]byte("nodelimiterhere"))
	require.NoError(t, err)

	resp := make([]byte, 5)
	_, err = client.Read(resp)
	require.NoError(t, err)
	assert.Equal(t, "FAIL\n", string(resp))
}

func TestHandshakeRejectsExcessiveClockSkew(t *testing.T) {
	client, server := net.Pipe()
	h := newTestHandler()
	go h.Serve(server)

	staleTS := fmt.Sprintf("%d", time.Now().Add(-10*time.Minute).Unix())
	sig := security.Sign([]byte(staleTS), testSecret)
	_, err := client.Write([]byte(staleTS + "|" + sig))
	require.NoError(t, err)

	resp := make([]byte, 5)
	_, err = client.Read(resp)
	require.NoError(t, err)
	assert.Equal(t, "FAIL\n", string(resp))
}

func TestFrameMissingDelimiterIsInvalidMessageFormat(t *testing.T) {
	client, server := net.Pipe()
	h := newTestHandler()
	go h.Serve(server)

	_, err := client.Write(validHandshakePayload())
	require.NoError(t, err)
	ack := make([]byte, 3)
	_, err = client.Read(ack)
	require.NoError(t, err)

	frame := []byte("no-newline-here-at-all")
	header := make([]byte, 4)
	binary.BigEndian.PutUint32(header, uint32(len(frame)))
	_, err = client.Write(header)
	require.NoError(t, err)
	_, err = client.Write(frame)
	require.NoError(t, err)

	resp := readFramedResponse(t, client)
	v, _, err := mesp.Parse(resp)
	require.NoError(t, err)
	assert.Equal(t, "Invalid message format", string(v.Bulk))
}

// TestSignedFrameWithMalformedBodyIsReportedAsParseError covers the
// case spec.md §7 calls "MESP parse error": the envelope has a valid
// "<hex-signature>\n" delimiter and a signature that verifies against
// the payload that follows, but that payload is not a well-formed
// MESP value. processFrame must answer it with an
// "ERROR: <detail>" response, not the missing-delimiter
// "Invalid message format" response.
func TestSignedFrameWithMalformedBodyIsReportedAsParseError(t *testing.T) {
	client, server := net.Pipe()
	h := newTestHandler()
	go h.Serve(server)

	_, err := client.Write(validHandshakePayload())
	require.NoError(t, err)
	ack := make([]byte, 3)
	_, err = client.Read(ack)
	require.NoError(t, err)

	malformedPayload := []byte("%not-a-valid-mesp-type")
	sig := security.Sign(malformedPayload, testSecret)
	writeFrame(t, client, sig, malformedPayload)

	resp := readFramedResponse(t, client)
	v, _, err := mesp.Parse(resp)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(v.Bulk), "ERROR: "))
	assert.NotEqual(t, "Invalid message format", string(v.Bulk))
}
