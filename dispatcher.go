package routeros

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/edgewire/routeros/proto"
	"github.com/google/uuid"
)

// doneMarker is the completion heuristic: reply bytes are not decoded
// until the accumulator contains this substring. A structural decode
// pass then confirms a true terminator, so a coincidental match inside
// an attribute value costs a wasted scan, nothing more.
var doneMarker = []byte(proto.MarkerDone)

type outcome struct {
	sentences []proto.Sentence
	err       error
}

// entry is one pending command. It is settled exactly once: completion,
// timeout, or connection failure. Entries are never requeued.
type entry struct {
	id        string
	path      string
	words     []string
	timeout   time.Duration
	queuedAt  time.Time
	sentences []proto.Sentence
	result    chan outcome
	settled   bool
}

// PendingCommand is a read-only snapshot of one queued or in-flight
// command, for inspection and logging.
type PendingCommand struct {
	ID       string
	Path     string
	QueuedAt time.Time
	InFlight bool
}

func newEntry(words []string, timeout time.Duration) *entry {
	return &entry{
		id:       uuid.NewString(),
		path:     words[0],
		words:    words,
		timeout:  timeout,
		queuedAt: time.Now(),
		result:   make(chan outcome, 1),
	}
}

// submit appends a command to the FIFO and triggers a drain. The
// returned entry's result channel receives exactly one outcome.
func (c *Client) submit(words []string) (*entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, c.closeErr
	}
	if c.cfg.MaxPending > 0 && c.pendingLocked() >= c.cfg.MaxPending {
		return nil, ErrQueueFull
	}
	e := newEntry(words, c.cfg.Timeout)
	c.queue = append(c.queue, e)
	c.log.Debug().Str("cmd_id", e.id).Str("path", e.path).Int("queued", len(c.queue)).Msg("command queued")
	c.drainLocked()
	return e, nil
}

func (c *Client) pendingLocked() int {
	n := len(c.queue)
	if c.current != nil {
		n++
	}
	return n
}

// drainLocked starts the next queued command if the connection is idle.
// It is a no-op while an entry is in flight or the queue is empty.
func (c *Client) drainLocked() {
	if c.closed || c.current != nil || len(c.queue) == 0 {
		return
	}
	e := c.queue[0]
	c.queue = c.queue[1:]
	c.current = e
	c.acc = c.acc[:0]

	wire := proto.EncodeSentence(e.words)
	_ = c.conn.SetWriteDeadline(time.Now().Add(e.timeout))
	if _, err := c.conn.Write(wire); err != nil {
		c.log.Error().Str("cmd_id", e.id).Err(err).Msg("write failed")
		c.failAllLocked(fmt.Errorf("%w: write: %v", ErrClosed, err))
		_ = c.conn.Close()
		return
	}
	c.timer = time.AfterFunc(e.timeout, func() { c.onTimeout(e) })
	c.log.Debug().Str("cmd_id", e.id).Str("path", e.path).Msg("command sent")
}

// handleChunk feeds inbound bytes to the in-flight entry's accumulator
// and completes the entry once a true reply terminator has arrived.
func (c *Client) handleChunk(b []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if c.current == nil {
		// Nothing is in flight, so these bytes are not attributable to
		// any command (the wire carries no correlation id). Typically a
		// late reply to an entry that already timed out.
		c.log.Debug().Int("bytes", len(b)).Msg("discarding bytes with no command in flight")
		return
	}
	e := c.current
	c.acc = append(c.acc, b...)
	if !bytes.Contains(c.acc, doneMarker) {
		return
	}

	sentences, consumed, err := proto.DecodeStream(c.acc)
	if err != nil {
		c.log.Error().Str("cmd_id", e.id).Err(err).Msg("reply stream corrupt")
		c.failAllLocked(fmt.Errorf("%w: %v", ErrProtocol, err))
		_ = c.conn.Close()
		return
	}
	e.sentences = append(e.sentences, sentences...)
	c.acc = c.acc[:copy(c.acc, c.acc[consumed:])]

	if !replyTerminated(e.sentences) {
		// The marker text appeared without a structural terminator
		// (for example inside an attribute value); keep accumulating.
		return
	}

	c.stopTimerLocked()
	c.current = nil
	c.acc = c.acc[:0]
	c.settleLocked(e, outcome{sentences: e.sentences})
	c.log.Debug().Str("cmd_id", e.id).Int("sentences", len(e.sentences)).Msg("command completed")
	c.drainLocked()
}

// replyTerminated reports whether the decoded sentences end the reply: a
// sentence led by !done, or any word starting with !trap.
func replyTerminated(sentences []proto.Sentence) bool {
	for _, s := range sentences {
		if len(s) > 0 && s[0] == proto.MarkerDone {
			return true
		}
		for _, w := range s {
			if strings.HasPrefix(w, proto.MarkerTrap) {
				return true
			}
		}
	}
	return false
}

// onTimeout fires from the entry's timer. The entry may have completed
// or the connection may have failed in the meantime, so it re-checks
// under the lock before acting.
func (c *Client) onTimeout(e *entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current != e || e.settled {
		return
	}
	c.log.Warn().Str("cmd_id", e.id).Str("path", e.path).Dur("timeout", e.timeout).Msg("command timed out")
	c.current = nil
	c.acc = c.acc[:0]
	c.settleLocked(e, outcome{err: fmt.Errorf("%w after %s", ErrTimeout, e.timeout)})
	c.drainLocked()
}

// settleLocked delivers the entry's single outcome. The result channel
// is buffered, so delivery never blocks the dispatcher.
func (c *Client) settleLocked(e *entry, out outcome) {
	if e.settled {
		return
	}
	e.settled = true
	e.result <- out
}

// failAllLocked fails the in-flight entry and every queued entry, then
// marks the client unusable. Later submits return err. Once the client
// is closed the first failure reason sticks.
func (c *Client) failAllLocked(err error) {
	if c.closed {
		return
	}
	c.closed = true
	c.closeErr = err
	c.stopTimerLocked()
	if c.current != nil {
		c.settleLocked(c.current, outcome{err: err})
		c.current = nil
	}
	for _, e := range c.queue {
		c.settleLocked(e, outcome{err: err})
	}
	c.queue = nil
	c.acc = nil
}

func (c *Client) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// readLoop is the single persistent reader. It owns the socket's read
// side for the client's lifetime; dispatch to the current entry happens
// in handleChunk under the client lock.
func (c *Client) readLoop() {
	defer close(c.done)
	buf := make([]byte, 4096)
	for {
		n, err := c.conn.Read(buf)
		if n > 0 {
			c.handleChunk(buf[:n])
		}
		if err != nil {
			c.mu.Lock()
			alreadyClosed := c.closed
			c.failAllLocked(closeError(err))
			c.mu.Unlock()
			if !alreadyClosed {
				c.log.Info().Err(err).Msg("connection closed")
				_ = c.conn.Close()
			}
			return
		}
	}
}
