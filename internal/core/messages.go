package core

import (
	"encoding/json"

	"github.com/dkeye/Relay/internal/domain"
)

const (
	TypeWelcome    = "welcome"
	TypePeerJoined = "peer-joined"
	TypePeerLeft   = "peer-left"
)

// Welcome is sent to a member right after it joins.
type Welcome struct {
	Type     string            `json:"type"`
	UserID   domain.MemberID   `json:"userId"`
	MaxUsers int               `json:"maxUsers"`
	Peers    []domain.MemberID `json:"peers"`
}

// PeerEvent announces a join or a leave to the rest of the room.
type PeerEvent struct {
	Type      string          `json:"type"`
	PeerID    domain.MemberID `json:"peerId"`
	PeerCount int             `json:"peerCount"`
}

func NewWelcome(id domain.MemberID, maxUsers int, peers []domain.MemberID) Welcome {
	if peers == nil {
		peers = []domain.MemberID{}
	}
	return Welcome{Type: TypeWelcome, UserID: id, MaxUsers: maxUsers, Peers: peers}
}

func NewPeerJoined(id domain.MemberID, count int) PeerEvent {
	return PeerEvent{Type: TypePeerJoined, PeerID: id, PeerCount: count}
}

func NewPeerLeft(id domain.MemberID, count int) PeerEvent {
	return PeerEvent{Type: TypePeerLeft, PeerID: id, PeerCount: count}
}

// TextFrameOf marshals v into a text frame.
func TextFrameOf(v any) (Frame, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return Frame{}, err
	}
	return Frame{Kind: TextFrame, Data: b}, nil
}
