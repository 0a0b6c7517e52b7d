package noteapi

import (
	"time"

	"google.golang.org/protobuf/encoding/protowire"
)

// Note is the wire form of a stored note. The server never sees plaintext,
// passwords or keys.
type Note struct {
	ID               string
	EncryptedContent []byte
	IV               []byte
	Salt             []byte
	PasswordHash     []byte
	LookupHash       []byte
	ExpiresAt        *time.Time
	OneTime          bool
	ViewCount        int64
	CreatedAt        time.Time
}

func (m *Note) AppendWire(b []byte) []byte {
	b = appendString(b, 1, m.ID)
	b = appendBytes(b, 2, m.EncryptedContent)
	b = appendBytes(b, 3, m.IV)
	b = appendBytes(b, 4, m.Salt)
	b = appendBytes(b, 5, m.PasswordHash)
	b = appendBytes(b, 6, m.LookupHash)
	if m.ExpiresAt != nil {
		b = appendTimestamp(b, 7, *m.ExpiresAt)
	}
	b = appendBool(b, 8, m.OneTime)
	b = appendInt64(b, 9, m.ViewCount)
	if !m.CreatedAt.IsZero() {
		b = appendTimestamp(b, 10, m.CreatedAt)
	}
	return b
}

func (m *Note) ReadWire(b []byte) error {
	var nested error
	err := readFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			return readString(typ, b, &m.ID)
		case 2:
			return readBytes(typ, b, &m.EncryptedContent)
		case 3:
			return readBytes(typ, b, &m.IV)
		case 4:
			return readBytes(typ, b, &m.Salt)
		case 5:
			return readBytes(typ, b, &m.PasswordHash)
		case 6:
			return readBytes(typ, b, &m.LookupHash)
		case 7:
			var t time.Time
			n := readTimestamp(typ, b, &t, &nested)
			if n > 0 {
				m.ExpiresAt = &t
			}
			return n
		case 8:
			return readBool(typ, b, &m.OneTime)
		case 9:
			return readInt64(typ, b, &m.ViewCount)
		case 10:
			return readTimestamp(typ, b, &m.CreatedAt, &nested)
		}
		return 0
	})
	if err != nil {
		return err
	}
	return nested
}

type InsertNoteRequest struct {
	Note *Note
}

func (m *InsertNoteRequest) AppendWire(b []byte) []byte {
	if m.Note != nil {
		b = appendMessage(b, 1, m.Note)
	}
	return b
}

func (m *InsertNoteRequest) ReadWire(b []byte) error {
	var nested error
	err := readFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num == 1 {
			m.Note = &Note{}
			return readMessage(typ, b, m.Note, &nested)
		}
		return 0
	})
	if err != nil {
		return err
	}
	return nested
}

type InsertNoteResponse struct {
	ID        string
	CreatedAt time.Time
}

func (m *InsertNoteResponse) AppendWire(b []byte) []byte {
	b = appendString(b, 1, m.ID)
	if !m.CreatedAt.IsZero() {
		b = appendTimestamp(b, 2, m.CreatedAt)
	}
	return b
}

func (m *InsertNoteResponse) ReadWire(b []byte) error {
	var nested error
	err := readFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			return readString(typ, b, &m.ID)
		case 2:
			return readTimestamp(typ, b, &m.CreatedAt, &nested)
		}
		return 0
	})
	if err != nil {
		return err
	}
	return nested
}

type FindNoteRequest struct {
	LookupHash []byte
}

func (m *FindNoteRequest) AppendWire(b []byte) []byte {
	return appendBytes(b, 1, m.LookupHash)
}

func (m *FindNoteRequest) ReadWire(b []byte) error {
	return readFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num == 1 {
			return readBytes(typ, b, &m.LookupHash)
		}
		return 0
	})
}

type FindNoteResponse struct {
	Note *Note
}

func (m *FindNoteResponse) AppendWire(b []byte) []byte {
	if m.Note != nil {
		b = appendMessage(b, 1, m.Note)
	}
	return b
}

func (m *FindNoteResponse) ReadWire(b []byte) error {
	var nested error
	err := readFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num == 1 {
			m.Note = &Note{}
			return readMessage(typ, b, m.Note, &nested)
		}
		return 0
	})
	if err != nil {
		return err
	}
	return nested
}

type ConsumeNoteRequest struct {
	ID string
}

func (m *ConsumeNoteRequest) AppendWire(b []byte) []byte {
	return appendString(b, 1, m.ID)
}

func (m *ConsumeNoteRequest) ReadWire(b []byte) error {
	return readFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num == 1 {
			return readString(typ, b, &m.ID)
		}
		return 0
	})
}

type ConsumeNoteResponse struct{}

func (m *ConsumeNoteResponse) AppendWire(b []byte) []byte { return b }

func (m *ConsumeNoteResponse) ReadWire(b []byte) error { return readFields(b, skipAll) }

type MarkViewedRequest struct {
	ID string
}

func (m *MarkViewedRequest) AppendWire(b []byte) []byte {
	return appendString(b, 1, m.ID)
}

func (m *MarkViewedRequest) ReadWire(b []byte) error {
	return readFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num == 1 {
			return readString(typ, b, &m.ID)
		}
		return 0
	})
}

type MarkViewedResponse struct {
	ViewCount int64
}

func (m *MarkViewedResponse) AppendWire(b []byte) []byte {
	return appendInt64(b, 1, m.ViewCount)
}

func (m *MarkViewedResponse) ReadWire(b []byte) error {
	return readFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num == 1 {
			return readInt64(typ, b, &m.ViewCount)
		}
		return 0
	})
}

type PingRequest struct{}

func (m *PingRequest) AppendWire(b []byte) []byte { return b }

func (m *PingRequest) ReadWire(b []byte) error { return readFields(b, skipAll) }

type PingResponse struct {
	Status string
}

func (m *PingResponse) AppendWire(b []byte) []byte {
	return appendString(b, 1, m.Status)
}

func (m *PingResponse) ReadWire(b []byte) error {
	return readFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num == 1 {
			return readString(typ, b, &m.Status)
		}
		return 0
	})
}
