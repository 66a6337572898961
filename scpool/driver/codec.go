package driver

import (
	"encoding/binary"

	"google.golang.org/protobuf/encoding/protowire"
)

// VarintCodec frames messages with a protobuf varint length prefix.
type VarintCodec struct{}

func (VarintCodec) Encode(body []byte) []byte {
	buf := protowire.AppendVarint(nil, uint64(len(body)))
	return append(buf, body...)
}

func (VarintCodec) Decode(buf []byte) (bodyLen, headerLen uint32) {
	v, n := protowire.ConsumeVarint(buf)
	if n < 0 {
		// header not complete yet
		return 0, 0
	}
	return uint32(v), uint32(n)
}

// FixedCodec frames messages with a 4-byte big-endian length prefix.
type FixedCodec struct{}

func (FixedCodec) Encode(body []byte) []byte {
	buf := make([]byte, 4+len(body))
	binary.BigEndian.PutUint32(buf, uint32(len(body)))
	copy(buf[4:], body)
	return buf
}

func (FixedCodec) Decode(buf []byte) (bodyLen, headerLen uint32) {
	if len(buf) < 4 {
		return 0, 0
	}
	return binary.BigEndian.Uint32(buf), 4
}
