package core

import "github.com/dkeye/Relay/internal/domain"

// SessionID is the opaque connection handle issued at accept time.
type SessionID string

// MemberSession binds domain.Member and its transport endpoint.
// This is what a room stores and fans out to.
type MemberSession interface {
	SID() SessionID
	Meta() *domain.Member
	Signal() SignalConnection
}
