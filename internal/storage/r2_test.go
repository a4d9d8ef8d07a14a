package storage

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjects struct {
	putFailures int
	puts        map[string][]byte
	deleted     []string
	deleteErr   error
}

func (f *fakeObjects) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putFailures > 0 {
		f.putFailures--
		return nil, errors.New("connection reset")
	}
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	if f.puts == nil {
		f.puts = make(map[string][]byte)
	}
	f.puts[aws.ToString(in.Key)] = body
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeObjects) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	f.deleted = append(f.deleted, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func fastRetries(t *testing.T) {
	t.Helper()
	prev := retryBase
	retryBase = time.Millisecond
	t.Cleanup(func() { retryBase = prev })
}

func TestR2_PutRetriesTransientFailures(t *testing.T) {
	fastRetries(t)
	objects := &fakeObjects{putFailures: 2}
	r := &R2{client: objects, bucket: "resumes"}

	require.NoError(t, r.Put(context.Background(), "sessions/a/cv.pdf", "application/pdf", []byte("%PDF")))
	assert.Equal(t, []byte("%PDF"), objects.puts["sessions/a/cv.pdf"])
}

func TestR2_PutGivesUp(t *testing.T) {
	fastRetries(t)
	r := &R2{client: &fakeObjects{putFailures: 5}, bucket: "resumes"}

	err := r.Put(context.Background(), "k", "text/plain", []byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 3 attempts")
}

func TestR2_Delete(t *testing.T) {
	objects := &fakeObjects{}
	r := &R2{client: objects, bucket: "resumes"}

	require.NoError(t, r.Delete(context.Background(), "sessions/a/cv.pdf"))
	assert.Equal(t, []string{"sessions/a/cv.pdf"}, objects.deleted)
}

func TestObjectKey(t *testing.T) {
	id := uuid.MustParse("8f14e45f-ceea-4e6a-9d3b-1a2b3c4d5e6f")
	tests := map[string]string{
		"resume.pdf":             "sessions/8f14e45f-ceea-4e6a-9d3b-1a2b3c4d5e6f/resume.pdf",
		"../../etc/passwd":       "sessions/8f14e45f-ceea-4e6a-9d3b-1a2b3c4d5e6f/passwd",
		`C:\Users\me\My CV.docx`: "sessions/8f14e45f-ceea-4e6a-9d3b-1a2b3c4d5e6f/My_CV.docx",
		"":                       "sessions/8f14e45f-ceea-4e6a-9d3b-1a2b3c4d5e6f/resume",
	}
	for in, want := range tests {
		assert.Equal(t, want, ObjectKey(id, in), in)
	}
}

func TestConfigEnabled(t *testing.T) {
	assert.False(t, Config{}.Enabled())
	assert.False(t, Config{AccountID: "a", Bucket: "b", AccessKey: "c"}.Enabled())
	assert.True(t, Config{AccountID: "a", Bucket: "b", AccessKey: "c", SecretKey: "d"}.Enabled())
}
