package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"rentalcontracts/cmd/internal/registration"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	inputs []*s3.PutObjectInput
	bodies [][]byte
	err    error
}

func (f *fakeS3) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, _ := io.ReadAll(params.Body)
	f.inputs = append(f.inputs, params)
	f.bodies = append(f.bodies, body)
	return &s3.PutObjectOutput{}, nil
}

func TestDocumentStoreUpload(t *testing.T) {
	doc := &registration.Document{
		ContractID: "contract-8",
		IDs:        map[registration.Slot]string{registration.SlotContract: "contract-8"},
	}
	doc.Lessee.LegalName = "Obras Horizonte Ltda"

	t.Run("ok: json under the contract prefix", func(t *testing.T) {
		fake := &fakeS3{}
		store := NewDocumentStoreWithClient(fake, "docs-bucket")

		key, err := store.Upload(context.Background(), doc)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(key, "contracts/contract-8/"))
		assert.True(t, strings.HasSuffix(key, ".json"))

		require.Len(t, fake.inputs, 1)
		assert.Equal(t, "docs-bucket", *fake.inputs[0].Bucket)
		assert.Equal(t, "application/json", *fake.inputs[0].ContentType)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(fake.bodies[0], &decoded))
		assert.Equal(t, "contract-8", decoded["contract_id"])

		second, err := store.Upload(context.Background(), doc)
		require.NoError(t, err)
		assert.NotEqual(t, key, second)
	})

	t.Run("err: missing contract id", func(t *testing.T) {
		fake := &fakeS3{}
		err := NewDocumentStoreWithClient(fake, "b").Publish(context.Background(), &registration.Document{})
		assert.Error(t, err)
		assert.Empty(t, fake.inputs)
	})

	t.Run("err: upload failure", func(t *testing.T) {
		boom := errors.New("access denied")
		err := NewDocumentStoreWithClient(&fakeS3{err: boom}, "b").Publish(context.Background(), doc)
		assert.ErrorIs(t, err, boom)
	})
}
