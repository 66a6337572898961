package tcp

import (
	"fmt"
	"net"
	"sync/atomic"
	"time"

	"github.com/sjy-dv/scpool/scpool/driver"
	"github.com/sjy-dv/scpool/scpool/internal/readbuf"
)

var _ driver.Conn = &Conn{}

type Conn struct {
	opts   Options
	conn   net.Conn
	buffer *readbuf.Buffer
	closed int32
}

// NewFactory returns a driver.Factory dialing the configured target.
// All connections made by the factory share one resolver cache.
func NewFactory(opts ...Option) (driver.Factory, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.Target == "" {
		return nil, driver.ErrInvalidTarget
	}
	res, err := newResolver(o.ResolverCacheSize)
	if err != nil {
		return nil, err
	}
	return func() (driver.Conn, error) {
		return dial(o, res)
	}, nil
}

// Dial makes a single connection outside of any pool.
func Dial(opts ...Option) (*Conn, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.Target == "" {
		return nil, driver.ErrInvalidTarget
	}
	res, err := newResolver(1)
	if err != nil {
		return nil, err
	}
	return dial(o, res)
}

func dial(o Options, res *resolver) (*Conn, error) {
	addr, err := res.Resolve(o.Target)
	if err != nil {
		return nil, fmt.Errorf("conn:%w", err)
	}
	nc, err := net.DialTimeout("tcp", addr.String(), o.DialTimeout)
	if err != nil {
		// the cached address may be stale, retry with a fresh lookup
		res.Invalidate(o.Target)
		if addr, rerr := res.Resolve(o.Target); rerr == nil {
			nc, err = net.DialTimeout("tcp", addr.String(), o.DialTimeout)
		}
		if err != nil {
			return nil, fmt.Errorf("conn:%w", err)
		}
	}
	c := &Conn{
		opts: o,
		conn: nc,
	}
	c.buffer = readbuf.New(nc, int(o.InitReadBufLen), int(o.MaxReadBufLen))
	return c, nil
}

// Exec writes one framed request and reads one framed response.
func (c *Conn) Exec(req []byte) (body []byte, err error) {
	if c.Closed() {
		return nil, driver.ErrConnClosed
	}
	data := c.opts.HeaderCodec.Encode(req)
	_ = c.conn.SetWriteDeadline(c.getWriteDeadLine())
	if _, err := c.conn.Write(data); err != nil {
		return nil, fmt.Errorf("write:%w", err)
	}

	_ = c.conn.SetReadDeadline(c.getReadDeadLine())
	for {
		bodyLen, headerLen := c.opts.HeaderCodec.Decode(c.buffer.Data())
		if headerLen > 0 {
			msgLen := bodyLen + headerLen
			if msgLen > c.opts.MaxReadBufLen {
				return nil, driver.ErrTooLarge
			}
			if uint32(c.buffer.Len()) >= msgLen {
				buf := make([]byte, bodyLen)
				c.buffer.Take(int(headerLen), int(bodyLen), buf)
				return buf, nil
			}
		}
		if _, err := c.buffer.Fill(); err != nil {
			return nil, fmt.Errorf("read:%w", err)
		}
	}
}

func (c *Conn) Close() error {
	if !atomic.CompareAndSwapInt32(&c.closed, 0, 1) {
		return nil
	}
	c.buffer.Release()
	return c.conn.Close()
}

func (c *Conn) Closed() bool {
	return atomic.LoadInt32(&c.closed) == 1
}

func (c *Conn) Target() string {
	return c.opts.Target
}

func (c *Conn) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}

func (c *Conn) getReadDeadLine() (t time.Time) {
	if c.opts.ReadTimeout > 0 {
		t = time.Now().Add(c.opts.ReadTimeout)
	}
	return
}

func (c *Conn) getWriteDeadLine() (t time.Time) {
	if c.opts.WriteTimeout > 0 {
		t = time.Now().Add(c.opts.WriteTimeout)
	}
	return
}
