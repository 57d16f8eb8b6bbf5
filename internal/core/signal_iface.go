package core

import "errors"

type FrameKind uint8

const (
	TextFrame FrameKind = iota
	BinaryFrame
)

func (k FrameKind) String() string {
	if k == BinaryFrame {
		return "binary"
	}
	return "text"
}

// Frame is one outbound or inbound message together with its kind.
type Frame struct {
	Kind FrameKind
	Data []byte
}

var (
	ErrBackpressure = errors.New("backpressure")
	ErrConnClosed   = errors.New("connection closed")
)

// SignalConnection abstracts for a system messaging transport
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	// TrySend enqueues f without blocking. It returns ErrConnClosed once the
	// connection is closed and ErrBackpressure when the outbound buffer is full.
	TrySend(f Frame) error
	IsOpen() bool
	Close()
}
