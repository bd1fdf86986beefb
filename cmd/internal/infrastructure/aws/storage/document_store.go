package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
	"rentalcontracts/cmd/internal/registration"
)

const basePath = "contracts/"

// PutObjectAPI is the slice of the S3 client we need.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// DocumentStore uploads contract documents as JSON, where the PDF renderer
// picks them up.
type DocumentStore struct {
	bucket string
	client PutObjectAPI
}

func NewDocumentStore(ctx context.Context, region, bucket string) (*DocumentStore, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return NewDocumentStoreWithClient(s3.NewFromConfig(cfg), bucket), nil
}

func NewDocumentStoreWithClient(client PutObjectAPI, bucket string) *DocumentStore {
	return &DocumentStore{bucket: bucket, client: client}
}

func (s *DocumentStore) Publish(ctx context.Context, doc *registration.Document) error {
	_, err := s.Upload(ctx, doc)
	return err
}

// Upload stores the document under contracts/<contract id>/<uuid>.json and
// returns its key. Registering the same contract twice never overwrites.
func (s *DocumentStore) Upload(ctx context.Context, doc *registration.Document) (string, error) {
	if doc == nil || doc.ContractID == "" {
		return "", errors.New("document has no contract id")
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}

	key := basePath + doc.ContractID + "/" + uuid.NewString() + ".json"
	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	}

	if _, err = s.client.PutObject(ctx, input); err != nil {
		return "", err
	}

	log.Debugf("uploaded contract document %s (%d bytes)", key, len(data))
	return key, nil
}
