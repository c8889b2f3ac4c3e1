package s3store

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	in   *s3.PutObjectInput
	body []byte
	err  error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.in = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func TestPut(t *testing.T) {
	api := &fakeS3{}
	s := &Store{api: api, bucket: "photos", region: "us-east-1"}

	url, err := s.Put(context.Background(), "medications/p1/1.jpg", []byte("img"), "image/jpeg")
	require.NoError(t, err)

	assert.Equal(t, "https://photos.s3.us-east-1.amazonaws.com/medications/p1/1.jpg", url)
	assert.Equal(t, "photos", aws.ToString(api.in.Bucket))
	assert.Equal(t, "medications/p1/1.jpg", aws.ToString(api.in.Key))
	assert.Equal(t, "image/jpeg", aws.ToString(api.in.ContentType))
	assert.Equal(t, types.ServerSideEncryptionAes256, api.in.ServerSideEncryption)
	assert.Equal(t, []byte("img"), api.body)
}

func TestPut_Error(t *testing.T) {
	s := &Store{api: &fakeS3{err: errors.New("denied")}, bucket: "photos", region: "us-east-1"}

	_, err := s.Put(context.Background(), "k", []byte("img"), "image/jpeg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "denied")
}
