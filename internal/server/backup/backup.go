// Package backup uploads JSON-lines snapshots of the active encrypted notes
// to S3-compatible object storage. Rows are already ciphertext; nothing that
// could decrypt them is added.
package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/sealnote/internal/cryptox"
	"github.com/dmitrijs2005/sealnote/internal/logging"
	"github.com/dmitrijs2005/sealnote/internal/server/models"
	"github.com/google/uuid"
)

type Snapshotter interface {
	Snapshot(ctx context.Context) ([]*models.Note, error)
}

// ObjectPutter is the part of *s3.Client the job needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Settings locates the bucket and the credentials for it.
type S3Settings struct {
	User         string
	Password     string
	Bucket       string
	Region       string
	BaseEndpoint string
}

// NewS3Client builds a client with static credentials. A non-empty
// BaseEndpoint points it at an S3-compatible server such as MinIO.
func NewS3Client(ctx context.Context, s S3Settings) (*s3.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(s.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(s.User, s.Password, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if s.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(s.BaseEndpoint)
			o.UsePathStyle = true
		}
	}), nil
}

type Job struct {
	notes  Snapshotter
	s3     ObjectPutter
	bucket string
	logger logging.Logger
	now    func() time.Time
	newID  func() string
}

func NewJob(notes Snapshotter, s3 ObjectPutter, bucket string, logger logging.Logger) *Job {
	return &Job{
		notes:  notes,
		s3:     s3,
		bucket: bucket,
		logger: logger.With("module", "backup"),
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// ObjectKey is backups/YYYY/MM/DD/<id>.jsonl for the UTC date of t.
func ObjectKey(t time.Time, id string) string {
	t = t.UTC()
	return fmt.Sprintf("backups/%04d/%02d/%02d/%s.jsonl", t.Year(), int(t.Month()), t.Day(), id)
}

// RunOnce uploads one snapshot and returns its key and row count.
func (j *Job) RunOnce(ctx context.Context) (string, int, error) {
	rows, err := j.notes.Snapshot(ctx)
	if err != nil {
		return "", 0, err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, n := range rows {
		if err := enc.Encode(toRecord(n)); err != nil {
			return "", 0, fmt.Errorf("encode note %s: %w", n.ID, err)
		}
	}

	key := ObjectKey(j.now(), j.newID())
	_, err = j.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(j.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("application/x-ndjson"),
	})
	if err != nil {
		return "", 0, fmt.Errorf("put object %s: %w", key, err)
	}

	j.logger.Info(ctx, "backup uploaded", "key", key, "notes", len(rows))
	return key, len(rows), nil
}

// Run uploads a snapshot on every tick until ctx is done.
func (j *Job) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		j.logger.Info(ctx, "backup disabled")
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, _, err := j.RunOnce(ctx); err != nil && ctx.Err() == nil {
				j.logger.Error(ctx, "backup failed", "error", err)
			}
		}
	}
}

// Record is one line of a snapshot. Binary fields are standard base64 and
// times are RFC 3339 in UTC.
type Record struct {
	ID               string     `json:"id"`
	EncryptedContent string     `json:"encrypted_content"`
	IV               string     `json:"iv"`
	Salt             string     `json:"salt"`
	PasswordHash     string     `json:"password_hash"`
	LookupHash       string     `json:"lookup_hash"`
	ExpiresAt        *time.Time `json:"expires_at,omitempty"`
	OneTime          bool       `json:"one_time"`
	ViewCount        int64      `json:"view_count"`
	CreatedAt        time.Time  `json:"created_at"`
}

func toRecord(n *models.Note) Record {
	r := Record{
		ID:               n.ID,
		EncryptedContent: cryptox.EncodeB64(n.EncryptedContent),
		IV:               cryptox.EncodeB64(n.IV),
		Salt:             cryptox.EncodeB64(n.Salt),
		PasswordHash:     cryptox.EncodeB64(n.PasswordHash),
		LookupHash:       cryptox.EncodeB64(n.LookupHash),
		OneTime:          n.OneTime,
		ViewCount:        n.ViewCount,
		CreatedAt:        n.CreatedAt.UTC(),
	}
	if n.ExpiresAt != nil {
		exp := n.ExpiresAt.UTC()
		r.ExpiresAt = &exp
	}
	return r
}
