package telemetry

import "sync"

type messageKind int

const (
	messageObservation messageKind = iota
	messageAddCockpit
	messageAddHandler
	messageAddPanel
)

// message is one entry on the transmitter/processor queue: an observation or
// a structural change to the processor's tree.
type message[L comparable] struct {
	kind        messageKind
	observation Observation[L]
	cockpit     *Cockpit[L]
	handler     Handler[L]
	cockpitName string
	panel       *Panel[L]
}

type recvStatus int

const (
	recvOK recvStatus = iota
	recvEmpty
	recvDisconnected
)

// channel is the unbounded multi-producer single-consumer queue pairing
// transmitters with their processor. It is the sole concurrency boundary of
// the pipeline: sends never block, receives never block, delivery is FIFO.
//
// The queue is unbounded on purpose: a producer's hot path must never stall,
// so sustained overload grows memory instead. The drop strategies bound the
// processing cost of a backlog, not its footprint.
type channel[L comparable] struct {
	mu           sync.Mutex
	buf          []message[L]
	head         int
	senders      int
	receiverGone bool
}

func newChannel[L comparable]() *channel[L] {
	return &channel[L]{senders: 1}
}

// send enqueues a message. It reports false when the receiver is gone; the
// message is discarded in that case.
func (c *channel[L]) send(m message[L]) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.receiverGone {
		return false
	}
	c.buf = append(c.buf, m)
	return true
}

// tryRecv dequeues the oldest message. With nothing queued it reports
// recvEmpty while senders remain and recvDisconnected once they are all
// gone; queued messages are always delivered before the disconnect shows.
func (c *channel[L]) tryRecv() (message[L], recvStatus) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.head < len(c.buf) {
		m := c.buf[c.head]
		c.buf[c.head] = message[L]{}
		c.head++
		if c.head == len(c.buf) {
			c.buf = c.buf[:0]
			c.head = 0
		}
		return m, recvOK
	}
	if c.senders == 0 {
		return message[L]{}, recvDisconnected
	}
	return message[L]{}, recvEmpty
}

func (c *channel[L]) addSender() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.senders++
}

func (c *channel[L]) dropSender() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.senders > 0 {
		c.senders--
	}
}

// closeReceiver marks the receiving side gone and discards the backlog.
// Subsequent sends report dropped.
func (c *channel[L]) closeReceiver() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.receiverGone = true
	c.buf = nil
	c.head = 0
}
