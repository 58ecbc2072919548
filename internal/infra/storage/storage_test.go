package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pro-master/backend/internal/config"
	"github.com/pro-master/backend/internal/testing/fixtures"
)

type mockObjects struct {
	putFunc    func(ctx context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error)
	deleteFunc func(ctx context.Context, in *s3.DeleteObjectInput) (*s3.DeleteObjectOutput, error)
}

func (m *mockObjects) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	return m.putFunc(ctx, in)
}

func (m *mockObjects) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	return m.deleteFunc(ctx, in)
}

func TestTranscode(t *testing.T) {
	payload := fixtures.PNGBase64()

	out, err := Transcode(payload, 1<<20)
	require.NoError(t, err)
	require.True(t, len(out) > 12)
	assert.Equal(t, "RIFF", string(out[:4]))
	assert.Equal(t, "WEBP", string(out[8:12]))

	out, err = Transcode("data:image/png;base64,"+payload, 1<<20)
	require.NoError(t, err)
	assert.Equal(t, "RIFF", string(out[:4]))

	// already webp
	again, err := Transcode(encode(out), 1<<20)
	require.NoError(t, err)
	assert.Equal(t, "RIFF", string(again[:4]))
}

func TestTranscodeRejects(t *testing.T) {
	_, err := Transcode("", 100)
	assert.ErrorIs(t, err, ErrInvalidImage)

	_, err = Transcode("not base64!!", 100)
	assert.ErrorIs(t, err, ErrInvalidImage)

	_, err = Transcode(encode([]byte("plain text, not an image")), 1000)
	assert.ErrorIs(t, err, ErrInvalidImage)

	_, err = Transcode("data:image/png,abc", 100)
	assert.ErrorIs(t, err, ErrInvalidImage)

	_, err = Transcode(fixtures.PNGBase64(), 10)
	assert.ErrorIs(t, err, ErrImageTooLarge)
}

func TestS3StoragePut(t *testing.T) {
	var gotKey, gotBucket, gotType string
	var body []byte
	api := &mockObjects{putFunc: func(_ context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		gotKey, gotBucket, gotType = *in.Key, *in.Bucket, *in.ContentType
		body, _ = io.ReadAll(in.Body)
		return &s3.PutObjectOutput{}, nil
	}}

	cfg := &config.Config{S3Bucket: "media", S3Region: "eu-central-1", S3PublicBaseURL: "https://cdn.example.com/", ImageMaxBytes: 1 << 20}
	st := NewS3Storage(api, cfg, zap.NewNop())

	img, err := st.Put(context.Background(), FolderImages, fixtures.PNGBase64())
	require.NoError(t, err)

	assert.Equal(t, "media", gotBucket)
	assert.Equal(t, "image/webp", gotType)
	assert.Equal(t, img.Key, gotKey)
	assert.True(t, strings.HasPrefix(img.Key, "images/"))
	assert.True(t, strings.HasSuffix(img.Key, ".webp"))
	assert.Equal(t, "https://cdn.example.com/"+img.Key, img.URL)
	assert.Equal(t, "RIFF", string(body[:4]))
}

func TestS3StorageDefaultURLAndErrors(t *testing.T) {
	boom := errors.New("s3 down")
	api := &mockObjects{
		putFunc: func(context.Context, *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
			return nil, boom
		},
		deleteFunc: func(context.Context, *s3.DeleteObjectInput) (*s3.DeleteObjectOutput, error) {
			return nil, boom
		},
	}

	cfg := &config.Config{S3Bucket: "media", S3Region: "us-east-1", ImageMaxBytes: 1 << 20}
	st := NewS3Storage(api, cfg, zap.NewNop())
	assert.Equal(t, "https://media.s3.us-east-1.amazonaws.com", st.baseURL)

	_, err := st.Put(context.Background(), FolderImages, fixtures.PNGBase64())
	assert.ErrorIs(t, err, boom)

	// invalid payloads never reach the bucket
	_, err = st.Put(context.Background(), FolderImages, "???")
	assert.ErrorIs(t, err, ErrInvalidImage)

	assert.ErrorIs(t, st.Delete(context.Background(), "images/x.webp"), boom)
	assert.NoError(t, st.Delete(context.Background(), ""))
}

func TestMemoryCleanup(t *testing.T) {
	m := NewMemory(1 << 20)
	ctx := context.Background()

	a, err := m.Put(ctx, FolderProfiles, fixtures.PNGBase64())
	require.NoError(t, err)
	b, err := m.Put(ctx, FolderProfiles, fixtures.PNGBase64())
	require.NoError(t, err)
	assert.NotEqual(t, a.Key, b.Key)
	assert.Equal(t, 2, m.Len())

	Cleanup(ctx, m, []StoredImage{a, b})
	assert.Zero(t, m.Len())
}
