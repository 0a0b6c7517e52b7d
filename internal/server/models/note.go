// Package models defines the server-side note row.
package models

import "time"

// Note is one stored note. The server only ever sees ciphertext and hashes;
// it cannot decrypt EncryptedContent.
type Note struct {
	ID               string     `db:"id" bson:"_id"`
	EncryptedContent []byte     `db:"encrypted_content" bson:"encrypted_content"`
	IV               []byte     `db:"iv" bson:"iv"`
	Salt             []byte     `db:"salt" bson:"salt"`
	PasswordHash     []byte     `db:"password_hash" bson:"password_hash"`
	LookupHash       []byte     `db:"lookup_hash" bson:"lookup_hash"`
	ExpiresAt        *time.Time `db:"expires_at" bson:"expires_at,omitempty"`
	OneTime          bool       `db:"one_time" bson:"one_time"`
	ViewCount        int64      `db:"view_count" bson:"view_count"`
	CreatedAt        time.Time  `db:"created_at" bson:"created_at"`
}

// ActiveAt reports whether the note is still readable at now. The expiry
// instant itself is already expired.
func (n *Note) ActiveAt(now time.Time) bool {
	return n.ExpiresAt == nil || now.Before(*n.ExpiresAt)
}
