package noteapi

import (
	"time"

	"google.golang.org/protobuf/encoding/protowire"
)

// Zero values are omitted on encode, as proto3 does for scalar fields.

func appendString(b []byte, num protowire.Number, v string) []byte {
	if v == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

func appendBytes(b []byte, num protowire.Number, v []byte) []byte {
	if len(v) == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

func appendBool(b []byte, num protowire.Number, v bool) []byte {
	if !v {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, protowire.EncodeBool(v))
}

func appendInt64(b []byte, num protowire.Number, v int64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(v))
}

func appendMessage(b []byte, num protowire.Number, m Message) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, m.AppendWire(nil))
}

// appendTimestamp writes t as a google.protobuf.Timestamp. It is written even
// when it encodes the Unix epoch so that presence survives the round trip.
func appendTimestamp(b []byte, num protowire.Number, t time.Time) []byte {
	var ts []byte
	ts = appendInt64(ts, 1, t.Unix())
	ts = appendInt64(ts, 2, int64(t.Nanosecond()))
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, ts)
}

// fieldFunc consumes the value of one field and returns its length. A zero
// return means the field is not handled and is skipped.
type fieldFunc func(num protowire.Number, typ protowire.Type, b []byte) int

func readFields(b []byte, fn fieldFunc) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		n = fn(num, typ, b)
		if n == 0 {
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
	}
	return nil
}

func skipAll(protowire.Number, protowire.Type, []byte) int { return 0 }

func readString(typ protowire.Type, b []byte, dst *string) int {
	if typ != protowire.BytesType {
		return 0
	}
	v, n := protowire.ConsumeString(b)
	if n >= 0 {
		*dst = v
	}
	return n
}

func readBytes(typ protowire.Type, b []byte, dst *[]byte) int {
	if typ != protowire.BytesType {
		return 0
	}
	v, n := protowire.ConsumeBytes(b)
	if n >= 0 {
		*dst = append([]byte(nil), v...)
	}
	return n
}

func readBool(typ protowire.Type, b []byte, dst *bool) int {
	if typ != protowire.VarintType {
		return 0
	}
	v, n := protowire.ConsumeVarint(b)
	if n >= 0 {
		*dst = protowire.DecodeBool(v)
	}
	return n
}

func readInt64(typ protowire.Type, b []byte, dst *int64) int {
	if typ != protowire.VarintType {
		return 0
	}
	v, n := protowire.ConsumeVarint(b)
	if n >= 0 {
		*dst = int64(v)
	}
	return n
}

// readMessage decodes an embedded message into m. A malformed body is
// reported through *errp and consumes the field.
func readMessage(typ protowire.Type, b []byte, m Message, errp *error) int {
	if typ != protowire.BytesType {
		return 0
	}
	v, n := protowire.ConsumeBytes(b)
	if n >= 0 {
		if err := m.ReadWire(v); err != nil && *errp == nil {
			*errp = err
		}
	}
	return n
}

func readTimestamp(typ protowire.Type, b []byte, dst *time.Time, errp *error) int {
	var ts timestamp
	n := readMessage(typ, b, &ts, errp)
	if n > 0 {
		*dst = time.Unix(ts.seconds, ts.nanos).UTC()
	}
	return n
}

type timestamp struct {
	seconds int64
	nanos   int64
}

func (t *timestamp) AppendWire(b []byte) []byte {
	b = appendInt64(b, 1, t.seconds)
	return appendInt64(b, 2, t.nanos)
}

func (t *timestamp) ReadWire(b []byte) error {
	return readFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			return readInt64(typ, b, &t.seconds)
		case 2:
			return readInt64(typ, b, &t.nanos)
		}
		return 0
	})
}
