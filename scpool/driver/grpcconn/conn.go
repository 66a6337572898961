package grpcconn

import (
	"context"
	"sync/atomic"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/connectivity"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/sjy-dv/scpool/scpool/driver"
)

var _ driver.Conn = &Conn{}

// Conn pools a grpc client connection. Exec performs a health-service
// round trip for the service named by the request payload; richer RPCs
// go through Raw().
type Conn struct {
	target  string
	cc      *grpc.ClientConn
	timeout time.Duration
	closed  int32
}

// NewFactory returns a driver.Factory dialing target. address format host:port
// example 127.0.0.1:50051
func NewFactory(target string, execTimeout time.Duration) (driver.Factory, error) {
	if target == "" {
		return nil, driver.ErrInvalidTarget
	}
	if execTimeout <= 0 {
		execTimeout = 3 * time.Second
	}
	return func() (driver.Conn, error) {
		return DialConn(target, execTimeout)
	}, nil
}

func DialConn(target string, execTimeout time.Duration) (*Conn, error) {
	cc, err := grpc.Dial(target, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, err
	}
	return &Conn{
		target:  target,
		cc:      cc,
		timeout: execTimeout,
	}, nil
}

func (c *Conn) Exec(req []byte) ([]byte, error) {
	if c.Closed() {
		return nil, driver.ErrConnClosed
	}
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()
	resp, err := healthpb.NewHealthClient(c.cc).Check(ctx, &healthpb.HealthCheckRequest{
		Service: string(req),
	})
	if err != nil {
		return nil, err
	}
	return []byte(resp.GetStatus().String()), nil
}

func (c *Conn) Close() error {
	if !atomic.CompareAndSwapInt32(&c.closed, 0, 1) {
		return nil
	}
	return c.cc.Close()
}

func (c *Conn) Closed() bool {
	if atomic.LoadInt32(&c.closed) == 1 {
		return true
	}
	return c.cc.GetState() == connectivity.Shutdown
}

func (c *Conn) Target() string {
	return c.target
}

// Raw exposes the underlying client connection for generated service clients.
func (c *Conn) Raw() *grpc.ClientConn {
	return c.cc
}
