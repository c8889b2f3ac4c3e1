package gcsstore

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bufWriter struct {
	bytes.Buffer
	closeErr error
	closed   bool
}

func (b *bufWriter) Close() error {
	b.closed = true
	return b.closeErr
}

func TestPut(t *testing.T) {
	w := &bufWriter{}
	var gotKey, gotCT string
	s := &Store{bucket: "photos", newWriter: func(_ context.Context, key, ct string) io.WriteCloser {
		gotKey, gotCT = key, ct
		return w
	}}

	u, err := s.Put(context.Background(), "medications/p1/1.png", []byte("img"), "image/png")
	require.NoError(t, err)

	assert.Equal(t, "https://storage.googleapis.com/photos/medications/p1/1.png", u)
	assert.Equal(t, "medications/p1/1.png", gotKey)
	assert.Equal(t, "image/png", gotCT)
	assert.Equal(t, "img", w.String())
	assert.True(t, w.closed)
	assert.NoError(t, s.Close())
}

func TestPut_CloseErrorFailsUpload(t *testing.T) {
	w := &bufWriter{closeErr: errors.New("precondition failed")}
	s := &Store{bucket: "photos", newWriter: func(context.Context, string, string) io.WriteCloser { return w }}

	_, err := s.Put(context.Background(), "k", []byte("img"), "image/jpeg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "precondition failed")
}
