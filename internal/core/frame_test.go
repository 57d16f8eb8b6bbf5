package core

import (
	"bytes"
	"testing"

	"github.com/dkeye/Relay/internal/domain"
)

func TestEncodeBinaryRelay(t *testing.T) {
	tests := []struct {
		name    string
		sender  domain.MemberID
		payload []byte
		want    []byte
	}{
		{"small id", 1, []byte{0x01, 0x02}, []byte{0x01, 0x00, 0x00, 0x00, 0x01, 0x02}},
		{"empty payload", 7, nil, []byte{0x07, 0x00, 0x00, 0x00}},
		{"multi byte id", 0x01020304, []byte{0xff}, []byte{0x04, 0x03, 0x02, 0x01, 0xff}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EncodeBinaryRelay(tt.sender, tt.payload)
			if !bytes.Equal(got, tt.want) {
				t.Fatalf("EncodeBinaryRelay() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEncodeBinaryRelayDoesNotAliasPayload(t *testing.T) {
	payload := []byte{0x0a, 0x0b}
	framed := EncodeBinaryRelay(3, payload)
	payload[0] = 0x00
	if framed[SenderHeaderLen] != 0x0a {
		t.Fatal("framed output shares memory with the payload")
	}
}

func TestDecodeBinaryRelay(t *testing.T) {
	payload := []byte("opaque body \x00\x01")
	id, body, ok := DecodeBinaryRelay(EncodeBinaryRelay(42, payload))
	if !ok {
		t.Fatal("DecodeBinaryRelay() reported a short frame")
	}
	if id != 42 {
		t.Errorf("sender = %d, want 42", id)
	}
	if !bytes.Equal(body, payload) {
		t.Errorf("payload = %q, want %q", body, payload)
	}

	if _, _, ok := DecodeBinaryRelay([]byte{1, 2, 3}); ok {
		t.Error("DecodeBinaryRelay() accepted a frame shorter than the header")
	}
}
