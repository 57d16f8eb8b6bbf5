package app

import (
	"reflect"
	"testing"

	"github.com/dkeye/Relay/internal/core"
	"github.com/dkeye/Relay/internal/domain"
)

type nopConn struct{}

func (nopConn) TrySend(core.Frame) error { return nil }
func (nopConn) IsOpen() bool             { return true }
func (nopConn) Close()                   {}

func join(room core.RoomService, sid string, id domain.MemberID) {
	room.AddMember(core.NewMemberSession(core.SessionID(sid), domain.NewMember(id, room.Key()), nopConn{}))
}

func TestRegistryGetOrCreateReturnsSameRoom(t *testing.T) {
	reg := NewRegistry()
	a := reg.GetOrCreate("r1")
	b := reg.GetOrCreate("r1")
	if a != b {
		t.Fatal("GetOrCreate() returned different rooms for the same key")
	}
	if reg.Len() != 1 {
		t.Errorf("Len() = %d, want 1", reg.Len())
	}
	if _, ok := reg.Get("r2"); ok {
		t.Error("Get() found a room that was never created")
	}
	if reg.Len() != 1 {
		t.Error("Get() must not create rooms")
	}
}

func TestRegistryRemoveIfEmpty(t *testing.T) {
	reg := NewRegistry()
	room := reg.GetOrCreate("r1")
	join(room, "a", 1)

	if reg.RemoveIfEmpty("r1") {
		t.Fatal("RemoveIfEmpty() removed a room with members")
	}
	room.RemoveMember("a")
	if !reg.RemoveIfEmpty("r1") {
		t.Fatal("RemoveIfEmpty() kept an empty room")
	}
	if _, ok := reg.Get("r1"); ok {
		t.Error("room still present after removal")
	}
	if reg.RemoveIfEmpty("r1") {
		t.Error("RemoveIfEmpty() of a missing key reported success")
	}

	fresh := reg.GetOrCreate("r1")
	if fresh == room {
		t.Error("re-created room reused the old instance")
	}
	if fresh.MemberCount() != 0 {
		t.Errorf("re-created room has %d members", fresh.MemberCount())
	}
}

func TestRegistryListSorted(t *testing.T) {
	reg := NewRegistry()
	join(reg.GetOrCreate("beta"), "a", 1)
	join(reg.GetOrCreate("alpha"), "b", 2)
	join(reg.GetOrCreate("alpha"), "c", 3)

	want := []core.RoomInfo{
		{Key: "alpha", MemberCount: 2},
		{Key: "beta", MemberCount: 1},
	}
	if got := reg.List(); !reflect.DeepEqual(got, want) {
		t.Fatalf("List() = %+v, want %+v", got, want)
	}
}

func TestPolicyByName(t *testing.T) {
	tests := []struct {
		name    string
		want    BackpressureAction
		wantErr bool
	}{
		{"", DropFrame, false},
		{"drop", DropFrame, false},
		{"kick", KickMember, false},
		{"queue", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := PolicyByName(tt.name)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("PolicyByName() error = %v", err)
			}
			if got := p.OnBackPressure(nil, nil); got != tt.want {
				t.Errorf("OnBackPressure() = %v, want %v", got, tt.want)
			}
		})
	}
}
