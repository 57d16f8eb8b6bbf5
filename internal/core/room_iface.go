package core

import (
	"github.com/dkeye/Relay/internal/domain"
)

// PublishResult reports delivery stats/backpressure to orchestrator.
type PublishResult struct {
	SentTo  int
	Skipped int
	Dropped []MemberSession
}

// MemberDTO is a read-only view for APIs (no transport fields).
type MemberDTO struct {
	ID       domain.MemberID `json:"id"`
	JoinedAt int64           `json:"joinedAt"`
}

// RoomService is the core-facing API of a room.
// It owns the membership set but never touches transport resources.
type RoomService interface {
	Key() domain.RoomKey
	MemberCount() int
	MembersSnapshot() []MemberDTO
	// PeerIDs lists member ids in join order, leaving out exclude.
	PeerIDs(exclude SessionID) []domain.MemberID

	AddMember(ms MemberSession)
	RemoveMember(sid SessionID) (MemberSession, bool)
	Broadcast(from SessionID, f Frame) PublishResult
}

type RoomInfo struct {
	Key         domain.RoomKey `json:"key"`
	MemberCount int            `json:"memberCount"`
}

type RoomManager interface {
	GetOrCreate(key domain.RoomKey) RoomService
	Get(key domain.RoomKey) (RoomService, bool)
	RemoveIfEmpty(key domain.RoomKey) bool
	List() []RoomInfo
	Len() int
}
