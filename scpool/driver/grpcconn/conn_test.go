package grpcconn

import (
	"errors"
	"testing"
	"time"

	"github.com/sjy-dv/scpool/scpool/driver"
)

func TestNewFactoryRequiresTarget(t *testing.T) {
	if _, err := NewFactory("", time.Second); !errors.Is(err, driver.ErrInvalidTarget) {
		t.Fatalf("err = %v, want ErrInvalidTarget", err)
	}
}

func TestExecAfterClose(t *testing.T) {
	// grpc dials lazily, so this needs no listener
	c, err := DialConn("127.0.0.1:50051", time.Second)
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
	if _, err := c.Exec(nil); !errors.Is(err, driver.ErrConnClosed) {
		t.Fatalf("err = %v, want ErrConnClosed", err)
	}
}
