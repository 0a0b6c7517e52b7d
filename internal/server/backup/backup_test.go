package backup

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/sealnote/internal/cryptox"
	"github.com/dmitrijs2005/sealnote/internal/logging"
	"github.com/dmitrijs2005/sealnote/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSnapshot struct {
	rows []*models.Note
	err  error
}

func (f fakeSnapshot) Snapshot(context.Context) ([]*models.Note, error) { return f.rows, f.err }

type fakePutter struct {
	mu     sync.Mutex
	bucket string
	key    string
	body   []byte
	err    error
	calls  int
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	f.bucket = aws.ToString(in.Bucket)
	f.key = aws.ToString(in.Key)
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.body = b
	return &s3.PutObjectOutput{}, nil
}

func TestObjectKey(t *testing.T) {
	ts := time.Date(2025, 3, 7, 23, 30, 0, 0, time.FixedZone("X", -2*3600))
	assert.Equal(t, "backups/2025/03/08/abc.jsonl", ObjectKey(ts, "abc"))
}

func TestRunOnce_UploadsJSONLines(t *testing.T) {
	created := time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC)
	rows := []*models.Note{
		{ID: "a", EncryptedContent: []byte{1, 2}, Salt: []byte{3}, CreatedAt: created},
		{ID: "b", EncryptedContent: []byte{4}, OneTime: true, CreatedAt: created},
	}
	put := &fakePutter{}
	job := NewJob(fakeSnapshot{rows: rows}, put, "vault", logging.Discard())
	job.now = func() time.Time { return created }
	job.newID = func() string { return "fixed" }

	key, n, err := job.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "backups/2025/03/07/fixed.jsonl", key)
	assert.Equal(t, 2, n)
	assert.Equal(t, "vault", put.bucket)
	assert.Equal(t, key, put.key)

	var got []Record
	sc := bufio.NewScanner(bytes.NewReader(put.body))
	for sc.Scan() {
		var r Record
		require.NoError(t, json.Unmarshal(sc.Bytes(), &r))
		got = append(got, r)
	}
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "AQI=", got[0].EncryptedContent)
	content, err := cryptox.DecodeB64(got[0].EncryptedContent)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, content)
	assert.Nil(t, got[0].ExpiresAt)
	assert.True(t, created.Equal(got[0].CreatedAt))
	assert.True(t, got[1].OneTime)
}

func TestToRecord_NormalizesToUTC(t *testing.T) {
	zone := time.FixedZone("X", 3*3600)
	exp := time.Date(2025, 3, 8, 3, 0, 0, 0, zone)
	r := toRecord(&models.Note{ID: "a", ExpiresAt: &exp, CreatedAt: exp, IV: []byte{0xff}})

	require.NotNil(t, r.ExpiresAt)
	assert.Equal(t, time.UTC, r.ExpiresAt.Location())
	assert.Equal(t, time.UTC, r.CreatedAt.Location())
	assert.Equal(t, "/w==", r.IV)
	assert.Equal(t, "", r.Salt)

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"expires_at":"2025-03-08T00:00:00Z"`)
}

func TestRunOnce_Errors(t *testing.T) {
	_, _, err := NewJob(fakeSnapshot{err: errors.New("db")}, &fakePutter{}, "b", logging.Discard()).RunOnce(context.Background())
	assert.EqualError(t, err, "db")

	put := &fakePutter{err: errors.New("denied")}
	_, _, err = NewJob(fakeSnapshot{}, put, "b", logging.Discard()).RunOnce(context.Background())
	assert.ErrorContains(t, err, "denied")
}

func TestRun_UploadsOnTicks(t *testing.T) {
	put := &fakePutter{}
	job := NewJob(fakeSnapshot{}, put, "b", logging.Discard())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		job.Run(ctx, 10*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		put.mu.Lock()
		defer put.mu.Unlock()
		return put.calls >= 2
	}, time.Second, 5*time.Millisecond)
	cancel()
	<-done
}

func TestNewS3Client_CustomEndpoint(t *testing.T) {
	c, err := NewS3Client(context.Background(), S3Settings{
		User: "u", Password: "p", Bucket: "b", Region: "us-east-1", BaseEndpoint: "http://127.0.0.1:9000",
	})
	require.NoError(t, err)
	opts := c.Options()
	assert.Equal(t, "http://127.0.0.1:9000", aws.ToString(opts.BaseEndpoint))
	assert.True(t, opts.UsePathStyle)
}
