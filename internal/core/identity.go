package core

import (
	"sync/atomic"

	"github.com/dkeye/Relay/internal/domain"
)

// IdentityAllocator hands out member ids starting at 1.
// Ids are never reused, even after the owning member leaves.
type IdentityAllocator struct {
	last atomic.Uint32
}

func NewIdentityAllocator() *IdentityAllocator {
	return &IdentityAllocator{}
}

func (a *IdentityAllocator) Next() domain.MemberID {
	return domain.MemberID(a.last.Add(1))
}

// Last returns the most recently issued id, or 0 if none was issued yet.
func (a *IdentityAllocator) Last() domain.MemberID {
	return domain.MemberID(a.last.Load())
}
