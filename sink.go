package main

import (
	"io"

	"github.com/jcorbin/tapevm/internal/flushio"
)

// Sink accepts the bytes emitted by a running program.
type Sink interface {
	Accept(b byte) error
}

// CountingSink only counts how many bytes it has accepted.
type CountingSink struct {
	n int
}

// Accept counts b.
func (cs *CountingSink) Accept(b byte) error {
	cs.n++
	return nil
}

// Len returns the number of bytes accepted so far.
func (cs *CountingSink) Len() int { return cs.n }

// RecordingSink stores accepted bytes in a buffer whose capacity is fixed at
// construction, reserving its last byte for a terminating sentinel.
type RecordingSink struct {
	buf        []byte
	n          int
	terminated bool
}

// Sentinel is written after the last recorded byte by Terminate.
const Sentinel byte = 0

// NewRecordingSink creates a sink able to record capacity-1 bytes followed
// by the Sentinel.
func NewRecordingSink(capacity int) *RecordingSink {
	if capacity < 0 {
		capacity = 0
	}
	return &RecordingSink{buf: make([]byte, capacity)}
}

// Accept records b, returning a CapacityError rather than ever truncating.
func (rs *RecordingSink) Accept(b byte) error {
	if rs.terminated {
		return CapacityError{len(rs.buf), "accept after terminate"}
	}
	if rs.n+1 >= len(rs.buf) {
		return CapacityError{len(rs.buf), "accept"}
	}
	rs.buf[rs.n] = b
	rs.n++
	return nil
}

// Terminate writes the Sentinel after the last recorded byte.
func (rs *RecordingSink) Terminate() error {
	if rs.terminated {
		return CapacityError{len(rs.buf), "terminate again"}
	}
	if rs.n >= len(rs.buf) {
		return CapacityError{len(rs.buf), "terminate"}
	}
	rs.buf[rs.n] = Sentinel
	rs.terminated = true
	return nil
}

// Cap returns the fixed capacity, sentinel included.
func (rs *RecordingSink) Cap() int { return len(rs.buf) }

// Len returns the number of recorded bytes, sentinel excluded.
func (rs *RecordingSink) Len() int { return rs.n }

// Bytes returns the recorded bytes, sentinel excluded.
func (rs *RecordingSink) Bytes() []byte { return rs.buf[:rs.n:rs.n] }

// Buffer returns the recorded bytes followed by the Sentinel once terminated.
func (rs *RecordingSink) Buffer() []byte {
	if rs.terminated {
		return rs.buf[: rs.n+1 : rs.n+1]
	}
	return rs.Bytes()
}

func (rs *RecordingSink) String() string { return string(rs.Bytes()) }

// WriterSink streams accepted bytes into a writer, buffering as needed; it
// is flushed when a run halts.
type WriterSink struct {
	out flushio.WriteFlusher
	n   int
}

// NewWriterSink creates a sink writing into w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{out: flushio.NewWriteFlusher(w)}
}

// Accept writes b.
func (ws *WriterSink) Accept(b byte) error {
	if err := flushio.WriteByte(ws.out, b); err != nil {
		return err
	}
	ws.n++
	return nil
}

// Flush writes out any buffered bytes.
func (ws *WriterSink) Flush() error { return ws.out.Flush() }

// Len returns the number of bytes written so far.
func (ws *WriterSink) Len() int { return ws.n }
