// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package engine

// outQueue is a tiny fixed-capacity FIFO of user-visible Events. A single
// Feed call can complete more than one Event (a Number whose terminator is
// itself a consumed container-close, optionally followed by EndDocument),
// so the processor buffers them here rather than returning only one.
const outQueueCapacity = 8

type outQueue struct {
	buf        [outQueueCapacity]Event
	head, size int
}

func (q *outQueue) push(e Event) bool {
	if q.size == outQueueCapacity {
		return false
	}
	q.buf[(q.head+q.size)%outQueueCapacity] = e
	q.size++
	return true
}

func (q *outQueue) pop() (Event, bool) {
	if q.size == 0 {
		return Event{}, false
	}
	e := q.buf[q.head]
	q.head = (q.head + 1) % outQueueCapacity
	q.size--
	return e, true
}
