package tcp

import (
	"time"

	"github.com/sjy-dv/scpool/scpool/driver"
)

type Options struct {
	Target            string
	DialTimeout       time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	InitReadBufLen    uint32
	MaxReadBufLen     uint32
	HeaderCodec       driver.HeaderCodec
	ResolverCacheSize int
}

type Option func(*Options)

const (
	B  = 1
	KB = 1024 * B
	MB = 1024 * KB
)

func DefaultOptions() Options {
	return Options{
		DialTimeout:       3 * time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      5 * time.Second,
		InitReadBufLen:    4 * KB,
		MaxReadBufLen:     4 * MB,
		HeaderCodec:       driver.VarintCodec{},
		ResolverCacheSize: 128,
	}
}

func WithTarget(target string) Option {
	return func(o *Options) {
		o.Target = target
	}
}

func WithDialTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.DialTimeout = d
	}
}

func WithReadTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.ReadTimeout = d
	}
}

func WithWriteTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.WriteTimeout = d
	}
}

func WithHeaderCodec(codec driver.HeaderCodec) Option {
	return func(o *Options) {
		o.HeaderCodec = codec
	}
}

func WithReadBufLen(init, max uint32) Option {
	return func(o *Options) {
		o.InitReadBufLen = init
		o.MaxReadBufLen = max
	}
}
