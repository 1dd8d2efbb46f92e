// Package connection implements the per-connection state machine:
// handshake authentication, the framed request loop, and frame
// processing, exactly as spec.md §4.7 and §6 lay out the wire
// protocol.
package connection

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/memify-io/memify/internal/command"
	"github.com/memify-io/memify/internal/logging"
	"github.com/memify-io/memify/internal/mesp"
	"github.com/memify-io/memify/internal/metrics"
	"github.com/memify-io/memify/internal/security"
)

const (
	maxHandshakeBytes = 1024
	maxReadChunk      = 1024
	maxClockSkew      = 5 * time.Minute
)

// Handler owns the shared secret and dispatcher every accepted
// connection is served against. One Handler is shared by all
// connections; per-connection state lives entirely on the stack of
// Serve's invocation.
type Handler struct {
	secret     string
	dispatcher *command.Dispatcher
	metrics    *metrics.Registry
	log        *logging.Logger
}

// New builds a Handler. metrics and log may be nil.
func New(secret string, dispatcher *command.Dispatcher, m *metrics.Registry, log *logging.Logger) *Handler {
	return &Handler{secret: secret, dispatcher: dispatcher, metrics: m, log: log}
}

// Serve runs one connection's full lifecycle: handshake, then the
// framed request loop, until the peer disconnects or a socket error
// occurs. It always closes conn before returning.
func (h *Handler) Serve(conn net.Conn) {
	defer conn.Close()

	if h.metrics != nil {
		h.metrics.ConnectionOpened()
		defer h.metrics.ConnectionClosed()
	}

	if !h.handshake(conn) {
		return
	}

	h.requestLoop(conn)
}

// handshake reads the unframed "<unix-seconds>|<hex-signature>"
// payload, verifies the timestamp skew and signature, and writes
// "OK\n" or "FAIL\n" per spec.md §4.7.
func (h *Handler) handshake(conn net.Conn) bool {
	buf := make([]byte, maxHandshakeBytes)
	n, err := conn.Read(buf)
	if err != nil {
		return false
	}

	if h.verifyHandshake(buf[:n]) {
		_, werr := conn.Write([]byte("OK\n"))
		return werr == nil
	}

	if h.metrics != nil {
		h.metrics.AuthFailure()
	}
	conn.Write([]byte("FAIL\n"))
	return false
}

func (h *Handler) verifyHandshake(payload []byte) bool {
	idx := bytes.IndexByte(payload, '|')
	if idx < 0 {
		return false
	}

	tsField := string(payload[:idx])
	sigField := string(payload[idx+1:])

	ts, err := strconv.ParseInt(strings.TrimSpace(tsField), 10, 64)
	if err != nil {
		return false
	}

	skew := time.Now().Unix() - ts
	if skew < 0 {
		skew = -skew
	}
	if time.Duration(skew)*time.Second > maxClockSkew {
		return false
	}

	return security.Verify([]byte(tsField), strings.TrimSpace(sigField), h.secret)
}

// requestLoop implements the buffered length-prefixed framing from
// spec.md §4.7: read up to 1024 bytes at a time, append to the
// receive buffer, then drain as many complete frames as are present.
func (h *Handler) requestLoop(conn net.Conn) {
	r := bufio.NewReaderSize(conn, maxReadChunk)

	var recvBuf []byte
	expectedFrameLen := 0

	chunk := make([]byte, maxReadChunk)
	for {
		n, err := r.Read(chunk)
		if n > 0 {
			recvBuf = append(recvBuf, chunk[:n]...)
		}

		for {
			if expectedFrameLen == 0 {
				if len(recvBuf) < 4 {
					break
				}
				expectedFrameLen = int(binary.BigEndian.Uint32(recvBuf[:4]))
				recvBuf = recvBuf[4:]
			}

			if len(recvBuf) < expectedFrameLen {
				break
			}

			frame := recvBuf[:expectedFrameLen]
			recvBuf = recvBuf[expectedFrameLen:]
			expectedFrameLen = 0

			resp := h.processFrame(frame)
			if writeErr := writeFramed(conn, resp); writeErr != nil {
				return
			}
		}

		if err != nil {
			if err != io.EOF && h.log != nil {
				h.log.Debug().Err(err).Msg("connection read error")
			}
			return
		}
	}
}

// processFrame implements spec.md §4.7's frame processing: split
// "<hex-signature>\n<mesp-payload>", verify, parse, dispatch, and
// serialize the response bytes (unframed — writeFramed adds the
// length prefix).
func (h *Handler) processFrame(frame []byte) []byte {
	idx := bytes.IndexByte(frame, '\n')
	if idx < 0 {
		return mesp.Serialize(mesp.BulkFromString("Invalid message format"))
	}

	sig := string(frame[:idx])
	payload := frame[idx+1:]

	if !security.Verify(payload, sig, h.secret) {
		return mesp.Serialize(mesp.BulkFromString("Signature Verification Failure"))
	}

	v, _, err := mesp.Parse(payload)
	if err != nil {
		return mesp.Serialize(mesp.BulkFromString("ERROR: " + err.Error()))
	}

	resp := h.dispatcher.Dispatch(v)
	return mesp.Serialize(resp)
}

func writeFramed(w io.Writer, payload []byte) error {
	header := make([]byte, 4)
	binary.BigEndian.PutUint32(header, uint32(len(payload)))
	if _, err := w.Write(header); err != nil {
		return err
	}
	_, err := w.Write(payload)
	return err
}
