package core

import (
	"encoding/binary"

	"github.com/dkeye/Relay/internal/domain"
)

// SenderHeaderLen is the size of the sender id prefix on relayed binary frames.
const SenderHeaderLen = 4

// EncodeBinaryRelay prefixes payload with the sender id as a little-endian uint32.
func EncodeBinaryRelay(sender domain.MemberID, payload []byte) []byte {
	out := make([]byte, SenderHeaderLen+len(payload))
	binary.LittleEndian.PutUint32(out, uint32(sender))
	copy(out[SenderHeaderLen:], payload)
	return out
}

// DecodeBinaryRelay splits a relayed frame into sender id and payload.
func DecodeBinaryRelay(frame []byte) (domain.MemberID, []byte, bool) {
	if len(frame) < SenderHeaderLen {
		return 0, nil, false
	}
	return domain.MemberID(binary.LittleEndian.Uint32(frame)), frame[SenderHeaderLen:], true
}
