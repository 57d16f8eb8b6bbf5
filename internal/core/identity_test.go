package core

import (
	"sync"
	"testing"

	"github.com/dkeye/Relay/internal/domain"
)

func TestIdentityAllocatorStartsAtOne(t *testing.T) {
	a := NewIdentityAllocator()
	if got := a.Last(); got != 0 {
		t.Fatalf("Last() before any Next() = %d, want 0", got)
	}
	for want := domain.MemberID(1); want <= 3; want++ {
		if got := a.Next(); got != want {
			t.Fatalf("Next() = %d, want %d", got, want)
		}
	}
	if got := a.Last(); got != 3 {
		t.Errorf("Last() = %d, want 3", got)
	}
}

func TestIdentityAllocatorConcurrentUnique(t *testing.T) {
	a := NewIdentityAllocator()
	const workers, perWorker = 8, 200

	var (
		mu   sync.Mutex
		seen = make(map[domain.MemberID]bool, workers*perWorker)
		wg   sync.WaitGroup
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := make([]domain.MemberID, 0, perWorker)
			for range perWorker {
				local = append(local, a.Next())
			}
			mu.Lock()
			defer mu.Unlock()
			for _, id := range local {
				if seen[id] {
					t.Errorf("id %d issued twice", id)
				}
				seen[id] = true
			}
		}()
	}
	wg.Wait()

	if len(seen) != workers*perWorker {
		t.Fatalf("got %d distinct ids, want %d", len(seen), workers*perWorker)
	}
	if got := a.Last(); got != workers*perWorker {
		t.Errorf("Last() = %d, want %d", got, workers*perWorker)
	}
}
