package session

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type gameState struct {
	rounds int
}

func TestStore_GetCreatesOnce(t *testing.T) {
	s := NewStore(func() *gameState { return &gameState{} })

	first := s.Get("alice")
	first.rounds = 3

	again := s.Get("alice")
	assert.Same(t, first, again)
	assert.Equal(t, 3, again.rounds)
	assert.Equal(t, 1, s.Len())
}

func TestStore_SessionsAreIndependent(t *testing.T) {
	s := NewStore(func() *gameState { return &gameState{} })

	s.Get("alice").rounds = 1
	s.Get("bob").rounds = 2

	assert.Equal(t, 1, s.Get("alice").rounds)
	assert.Equal(t, 2, s.Get("bob").rounds)
	assert.Equal(t, 2, s.Len())
}

// Concurrent first-touches by many senders must each create exactly one
// session.
func TestStore_ConcurrentCreation(t *testing.T) {
	s := NewStore(func() *gameState { return &gameState{} })

	const senders = 20
	const perSender = 10

	var mu sync.Mutex
	seen := make(map[string]map[*gameState]bool)

	var wg sync.WaitGroup
	wg.Add(senders * perSender)
	for i := 0; i < senders; i++ {
		sender := fmt.Sprintf("sender-%d", i)
		for j := 0; j < perSender; j++ {
			go func() {
				defer wg.Done()
				sess := s.Get(sender)
				mu.Lock()
				if seen[sender] == nil {
					seen[sender] = make(map[*gameState]bool)
				}
				seen[sender][sess] = true
				mu.Unlock()
			}()
		}
	}
	wg.Wait()

	assert.Equal(t, senders, s.Len())
	for sender, instances := range seen {
		assert.Len(t, instances, 1, "sender %s should have one session instance", sender)
	}
}
