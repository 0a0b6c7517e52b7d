package notes

import (
	"crypto/sha256"
	"time"

	"github.com/dmitrijs2005/sealnote/internal/server/models"
)

var baseTime = time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

func lookup(pw string) []byte {
	h := sha256.Sum256([]byte(pw))
	return h[:]
}

func sampleNote(id, pw string, created time.Time, expires *time.Time, oneTime bool) *models.Note {
	return &models.Note{
		ID:               id,
		EncryptedContent: []byte("ciphertext-" + id),
		IV:               []byte("iv-0123456789"),
		Salt:             []byte("salt-0123456789!"),
		PasswordHash:     []byte("verifier-" + id),
		LookupHash:       lookup(pw),
		ExpiresAt:        expires,
		OneTime:          oneTime,
		CreatedAt:        created,
	}
}

func at(d time.Duration) *time.Time {
	t := baseTime.Add(d)
	return &t
}
