package invoice

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"Invoice-Processing-System/domain"

	"cloud.google.com/go/firestore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirestoreRepository(t *testing.T) {
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}

	ctx := context.Background()
	client, err := firestore.NewClient(ctx, "invoice-test")
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	collection := fmt.Sprintf("invoices-%d", time.Now().UnixNano())
	exerciseRepository(t, NewFirestoreRepository(client, collection))
}

func TestFirestoreRepositoryRejectsSlashKeys(t *testing.T) {
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}

	ctx := context.Background()
	client, err := firestore.NewClient(ctx, "invoice-test")
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	repo := NewFirestoreRepository(client, "invoices-keys")
	err = repo.Put(ctx, "2024/001", sampleInvoice("2024/001", "a.pdf"))
	assert.ErrorIs(t, err, domain.ErrInvalidInvoiceKey)

	_, err = repo.Get(ctx, "2024/001")
	assert.ErrorIs(t, err, domain.ErrInvoiceNotFound)
}
