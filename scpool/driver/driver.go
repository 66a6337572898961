package driver

// Conn is a single connection to an external target. Implementations own
// the protocol details; the pool only needs this capability set.
type Conn interface {
	// Exec writes the request and returns the response body.
	Exec(req []byte) (resp []byte, err error)
	// Close closes the connection. It must be idempotent.
	Close() error
	// Closed reports whether the connection has been closed.
	Closed() bool
	// Target returns the opaque target identifier the connection was dialed with.
	Target() string
}

// Factory creates a ready-to-use Conn.
type Factory func() (Conn, error)

// HeaderCodec frames messages on stream transports.
type HeaderCodec interface {
	// Encode prepends the header to body and returns the full frame.
	Encode(body []byte) []byte
	// Decode inspects buf and returns the body and header lengths.
	// headerLen == 0 means the header is not complete yet.
	Decode(buf []byte) (bodyLen, headerLen uint32)
}
