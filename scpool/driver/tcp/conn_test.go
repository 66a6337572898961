package tcp

import (
	"bytes"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/sjy-dv/scpool/scpool/driver"
)

// echoServer reads framed requests and echoes the body back, framed.
func echoServer(t *testing.T, codec driver.HeaderCodec) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { l.Close() })
	go func() {
		for {
			conn, err := l.Accept()
			if err != nil {
				return
			}
			go func(conn net.Conn) {
				defer conn.Close()
				var buf []byte
				chunk := make([]byte, 512)
				for {
					n, err := conn.Read(chunk)
					if err != nil {
						return
					}
					buf = append(buf, chunk[:n]...)
					for {
						bodyLen, headerLen := codec.Decode(buf)
						if headerLen == 0 || uint32(len(buf)) < bodyLen+headerLen {
							break
						}
						body := buf[headerLen : headerLen+bodyLen]
						if _, err := conn.Write(codec.Encode(body)); err != nil {
							return
						}
						buf = buf[headerLen+bodyLen:]
					}
				}
			}(conn)
		}
	}()
	return l.Addr().String()
}

func TestConnExec(t *testing.T) {
	addr := echoServer(t, driver.VarintCodec{})

	c, err := Dial(WithTarget(addr), WithReadTimeout(2*time.Second))
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	for _, req := range [][]byte{[]byte("ping"), bytes.Repeat([]byte("x"), 10*KB)} {
		resp, err := c.Exec(req)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(resp, req) {
			t.Fatalf("resp len %d, want %d", len(resp), len(req))
		}
	}
}

func TestConnCloseIsIdempotent(t *testing.T) {
	addr := echoServer(t, driver.VarintCodec{})

	c, err := Dial(WithTarget(addr))
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
	if err := c.Close(); err != nil {
		t.Fatal("second close must be a no-op")
	}
	if !c.Closed() {
		t.Fatal("conn should report closed")
	}
	if _, err := c.Exec([]byte("ping")); !errors.Is(err, driver.ErrConnClosed) {
		t.Fatalf("err = %v, want ErrConnClosed", err)
	}
}

func TestFactoryRequiresTarget(t *testing.T) {
	if _, err := NewFactory(); !errors.Is(err, driver.ErrInvalidTarget) {
		t.Fatalf("err = %v, want ErrInvalidTarget", err)
	}
}

func TestResolverCache(t *testing.T) {
	r, err := newResolver(4)
	if err != nil {
		t.Fatal(err)
	}
	a1, err := r.Resolve("127.0.0.1:6727")
	if err != nil {
		t.Fatal(err)
	}
	a2, err := r.Resolve("127.0.0.1:6727")
	if err != nil {
		t.Fatal(err)
	}
	if a1 != a2 {
		t.Fatal("second lookup should hit the cache")
	}
	r.Invalidate("127.0.0.1:6727")
	a3, err := r.Resolve("127.0.0.1:6727")
	if err != nil {
		t.Fatal(err)
	}
	if a3 == a1 {
		t.Fatal("invalidate should force a fresh lookup")
	}
}
