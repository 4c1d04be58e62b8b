package websocket

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
)

const (
	opCodeText  = 1
	opCodeClose = 8
)

func (that *Server) sendMessage(bufrw *bufio.ReadWriter, action string, payload Payload) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	response := Message{
		Action:  action,
		Payload: payloadBytes,
	}

	responseBytes, err := json.Marshal(response)
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	f := frame{
		isFin:   true,
		opCode:  opCodeText,
		length:  uint64(len(responseBytes)),
		payload: responseBytes,
	}

	if err = writeFrame(bufrw, f); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}

	return nil
}

func writeFrame(bufrw *bufio.ReadWriter, frameData frame) error {
	buf := make([]byte, 2)
	buf[0] |= frameData.opCode

	if frameData.isFin {
		buf[0] |= 0x80
	}

	switch {
	case frameData.length < 126:
		buf[1] |= byte(frameData.length)
	case frameData.length < 1<<16:
		buf[1] |= 126
		size := make([]byte, 2)
		binary.BigEndian.PutUint16(size, uint16(frameData.length))
		buf = append(buf, size...) //nolint: makezero // header grows with the length encoding
	default:
		buf[1] |= 127
		size := make([]byte, 8)
		binary.BigEndian.PutUint64(size, frameData.length)
		buf = append(buf, size...) //nolint: makezero // header grows with the length encoding
	}

	buf = append(buf, frameData.payload...) //nolint: makezero // header grows with the length encoding

	if _, err := bufrw.Write(buf); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}

	if err := bufrw.Flush(); err != nil {
		return fmt.Errorf("failed to flush buffer: %w", err)
	}

	return nil
}

// readRequest reads one client frame and returns its unmasked payload.
// A close frame surfaces as io.EOF so the message loop can stop cleanly.
func (that *Server) readRequest(bufrw *bufio.ReadWriter) ([]byte, error) {
	header := make([]byte, 2)
	if _, err := io.ReadFull(bufrw, header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	opCode := header[0] & 0x0f
	if opCode == opCodeClose {
		return nil, io.EOF
	}

	maskBit := header[1]>>7 == 1
	payloadLen := uint64(header[1] & 0x7f)

	size, err := readPayloadLength(bufrw, payloadLen)
	if err != nil {
		return nil, err
	}

	var mask []byte
	if maskBit {
		mask = make([]byte, 4)
		if _, err = io.ReadFull(bufrw, mask); err != nil {
			return nil, fmt.Errorf("failed to read mask: %w", err)
		}
	}

	payload := make([]byte, size)
	if _, err = io.ReadFull(bufrw, payload); err != nil {
		return nil, fmt.Errorf("failed to read payload: %w", err)
	}

	if maskBit {
		for i := range payload {
			payload[i] ^= mask[i%4]
		}
	}

	return payload, nil
}

func readPayloadLength(bufrw *bufio.ReadWriter, payloadLen uint64) (uint64, error) {
	switch payloadLen {
	case 126:
		ext := make([]byte, 2)
		if _, err := io.ReadFull(bufrw, ext); err != nil {
			return 0, fmt.Errorf("failed to read extended length: %w", err)
		}
		return uint64(binary.BigEndian.Uint16(ext)), nil
	case 127:
		ext := make([]byte, 8)
		if _, err := io.ReadFull(bufrw, ext); err != nil {
			return 0, fmt.Errorf("failed to read extended length: %w", err)
		}
		return binary.BigEndian.Uint64(ext), nil
	default:
		return payloadLen, nil
	}
}
