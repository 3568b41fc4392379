// Package lock provides per-sender locking so that messages from the
// same sender are processed one at a time and in arrival order, while
// messages from different senders proceed concurrently.
package lock

import "sync"

// senderLock serializes one sender's messages. Tickets are handed out
// in arrival order and served strictly in that order.
type senderLock struct {
	mu      sync.Mutex
	cond    *sync.Cond
	next    uint64 // next ticket to hand out
	serving uint64 // ticket currently allowed to hold the lock
}

func newSenderLock() *senderLock {
	l := &senderLock{}
	l.cond = sync.NewCond(&l.mu)
	return l
}

// SenderLock is a registry of per-sender locks keyed by sender identity.
// Entries are created lazily on first sight of a sender and never
// removed; the population is bounded by the chat platform's own user
// base. Registry insertion is guarded by a registry-level mutex so two
// workers can never create duplicate entries for the same sender.
type SenderLock struct {
	mu    sync.Mutex
	locks map[string]*senderLock
}

// NewSenderLock creates a new SenderLock registry.
func NewSenderLock() *SenderLock {
	return &SenderLock{
		locks: make(map[string]*senderLock),
	}
}

// getLock retrieves or creates the lock for the given sender.
func (sl *SenderLock) getLock(sender string) *senderLock {
	sl.mu.Lock()
	defer sl.mu.Unlock()

	l, ok := sl.locks[sender]
	if !ok {
		l = newSenderLock()
		sl.locks[sender] = l
	}
	return l
}

// Ticket reserves the sender's next slot in FIFO order. Call it at
// enqueue time and pass the ticket to Acquire later: the reservation
// pins the processing order to the enqueue order even when multiple
// workers dequeue the sender's messages in parallel.
func (sl *SenderLock) Ticket(sender string) uint64 {
	l := sl.getLock(sender)
	l.mu.Lock()
	defer l.mu.Unlock()

	t := l.next
	l.next++
	return t
}

// Acquire blocks until the sender's lock is held by the given ticket.
func (sl *SenderLock) Acquire(sender string, ticket uint64) {
	l := sl.getLock(sender)
	l.mu.Lock()
	defer l.mu.Unlock()

	for l.serving != ticket {
		l.cond.Wait()
	}
}

// Release releases the sender's lock and admits the next ticket.
func (sl *SenderLock) Release(sender string) {
	l := sl.getLock(sender)
	l.mu.Lock()
	defer l.mu.Unlock()

	l.serving++
	l.cond.Broadcast()
}
