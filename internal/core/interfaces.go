package core

// Frame is an encoded outbound event ready for the wire.
type Frame []byte

// ConnID is a process-unique identifier for one live connection.
// It is ephemeral and valid only for the connection's lifetime.
type ConnID string

// ClientConn is the transport endpoint for one connected client.
// Owned by the adapter; the adapter must Close() it. TrySend must never
// block: it either queues the frame or reports a send failure.
type ClientConn interface {
	ID() ConnID
	TrySend(Frame) error
	Close()
}
