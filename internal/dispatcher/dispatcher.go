// Package dispatcher fans incoming chat messages out to a worker pool
// while keeping each sender's messages strictly serialized in arrival
// order. Messages from different senders run concurrently.
package dispatcher

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"

	"chat-game-bot/internal/pkg/lock"
)

// apology is sent when a handler fails or panics.
const apology = "抱歉，出现了一些错误。"

// ErrStopped is returned by Submit after the dispatcher shut down.
var ErrStopped = errors.New("dispatcher stopped")

// Message is one incoming chat message.
type Message struct {
	// Sender is the stable identity messages are serialized and
	// ledger accounts are keyed by.
	Sender string
	// Chat addresses the conversation the reply goes back to.
	Chat string
	// SenderName is the display name used to address group replies.
	SenderName string
	// Text is the message body with any bot mention already stripped.
	Text string
	// Group marks a group-chat message; its reply is prefixed with
	// an @-mention of the sender.
	Group bool
}

// Router routes one message to a handler module and returns the reply.
type Router interface {
	Route(ctx context.Context, sender, text string) (string, error)
}

// Replier delivers a reply for a message back to the chat platform.
type Replier interface {
	Reply(msg Message, text string) error
}

type task struct {
	msg Message
	// ticket fixes the message's position in its sender's queue at
	// submit time, before any worker picks it up.
	ticket uint64
}

// Dispatcher owns the message queue and worker pool.
type Dispatcher struct {
	router  Router
	replier Replier
	locks   *lock.SenderLock
	queue   chan task
	wg      sync.WaitGroup

	// mu makes ticket issue and enqueue one step and guards stopped.
	mu      sync.Mutex
	stopped bool
}

// New creates a dispatcher and starts its worker pool.
func New(router Router, replier Replier, workers, queueSize int) *Dispatcher {
	d := &Dispatcher{
		router:  router,
		replier: replier,
		locks:   lock.NewSenderLock(),
		queue:   make(chan task, queueSize),
	}

	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
	return d
}

// Submit enqueues one message. The sender's FIFO ticket is taken and
// the task enqueued under one lock, so the queue always holds a
// sender's tickets in issue order. If the two steps could interleave
// across racing Submit calls, a worker could dequeue a later ticket
// first and park in Acquire waiting on a ticket still behind it in the
// queue, stalling the whole pool. Blocks while the queue is full.
func (d *Dispatcher) Submit(msg Message) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return ErrStopped
	}

	d.queue <- task{msg: msg, ticket: d.locks.Ticket(msg.Sender)}
	return nil
}

// Stop drains the queue and waits for in-flight handlers to finish.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	d.mu.Unlock()

	close(d.queue)
	d.wg.Wait()
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for t := range d.queue {
		d.process(t)
	}
}

// process holds the sender's lock for the whole handler run, so a
// sender's session state is never touched by two workers at once.
func (d *Dispatcher) process(t task) {
	d.locks.Acquire(t.msg.Sender, t.ticket)
	defer d.locks.Release(t.msg.Sender)

	reply := d.handle(t.msg)
	if reply == "" {
		return
	}
	if t.msg.Group && t.msg.SenderName != "" {
		reply = "@" + t.msg.SenderName + " " + reply
	}

	if err := d.replier.Reply(t.msg, reply); err != nil {
		log.Error().Err(err).
			Str("sender", t.msg.Sender).
			Msg("failed to send reply")
	}
}

// handle runs the router and converts failures, including panics in a
// handler module, into the apology reply.
func (d *Dispatcher) handle(msg Message) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Interface("panic", r).
				Str("sender", msg.Sender).
				Str("text", msg.Text).
				Msg("recovered from handler panic")
			reply = apology
		}
	}()

	reply, err := d.router.Route(context.Background(), msg.Sender, msg.Text)
	if err != nil {
		log.Error().Err(err).
			Str("sender", msg.Sender).
			Str("text", msg.Text).
			Msg("handler failed")
		return apology
	}
	return reply
}
