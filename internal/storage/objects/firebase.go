package objects

import (
	"context"
	"fmt"
	"io"

	gcs "cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
)

// FirebaseStore writes to the Cloud Storage bucket behind a Firebase project.
type FirebaseStore struct {
	bucket     *gcs.BucketHandle
	publicBase string
}

// NewFirebaseStore opens bucketName through the Firebase app. publicBase
// defaults to https://storage.googleapis.com/<bucket>.
func NewFirebaseStore(ctx context.Context, app *firebase.App, bucketName, publicBase string) (*FirebaseStore, error) {
	client, err := app.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Storage client: %w", err)
	}

	bucket, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to open bucket %s: %w", bucketName, err)
	}

	if publicBase == "" {
		publicBase = "https://storage.googleapis.com/" + bucketName
	}

	return &FirebaseStore{bucket: bucket, publicBase: publicBase}, nil
}

func (s *FirebaseStore) Upload(ctx context.Context, objectPath, contentType string, r io.Reader) error {
	w := s.bucket.Object(objectPath).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "public, max-age=3600"

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return fmt.Errorf("write object %s: %w", objectPath, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close object %s: %w", objectPath, err)
	}
	return nil
}

func (s *FirebaseStore) PublicURL(objectPath string) string {
	return joinURL(s.publicBase, objectPath)
}
