package dataset

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
)

// GCSSource reads reference dataset CSVs out of a Cloud Storage bucket.
type GCSSource struct {
	client     *storage.Client
	bucketName string
}

func NewGCSSource(ctx context.Context, bucketName string) (*GCSSource, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}
	return &GCSSource{
		client:     client,
		bucketName: bucketName,
	}, nil
}

func (s *GCSSource) Close() error {
	return s.client.Close()
}

func (s *GCSSource) ReadDataset(ctx context.Context, objectName string) (*Dataset, error) {
	obj := s.client.Bucket(s.bucketName).Object(objectName)

	reader, err := obj.NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create object reader: %w", err)
	}
	defer reader.Close()

	result, err := ReadCSV(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", objectName, err)
	}

	return FromCSV(result)
}
