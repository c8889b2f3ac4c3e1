package gcsstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// Store sube fotos a un bucket de Google Cloud Storage.
type Store struct {
	client *storage.Client
	bucket string

	// newWriter abre el writer del objeto; reemplazable en tests.
	newWriter func(ctx context.Context, key, contentType string) io.WriteCloser
}

type Options struct {
	Bucket string

	// CredentialsFile es opcional; sin él se usan las Application Default Credentials.
	CredentialsFile string
}

func New(ctx context.Context, opts Options) (*Store, error) {
	if strings.TrimSpace(opts.Bucket) == "" {
		return nil, errors.New("gcsstore: bucket required")
	}

	var copts []option.ClientOption
	if path := strings.TrimSpace(opts.CredentialsFile); path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("gcsstore: credentials file %s: %w", path, err)
		}
		copts = append(copts, option.WithCredentialsFile(path))
	}

	client, err := storage.NewClient(ctx, copts...)
	if err != nil {
		return nil, fmt.Errorf("gcsstore: create client: %w", err)
	}

	s := &Store{client: client, bucket: opts.Bucket}
	s.newWriter = func(ctx context.Context, key, contentType string) io.WriteCloser {
		w := client.Bucket(s.bucket).Object(key).NewWriter(ctx)
		w.ContentType = contentType
		w.CacheControl = "private, max-age=0"
		return w
	}
	return s, nil
}

func (s *Store) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	w := s.newWriter(ctx, key, contentType)
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("gcsstore: write %s: %w", key, err)
	}
	// En GCS el upload se confirma al cerrar.
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("gcsstore: close %s: %w", key, err)
	}
	return s.URL(key), nil
}

func (s *Store) URL(key string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, (&url.URL{Path: key}).EscapedPath())
}

func (s *Store) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}
