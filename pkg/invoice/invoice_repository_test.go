package invoice

import (
	"context"
	"path/filepath"
	"testing"

	"Invoice-Processing-System/domain"
	"Invoice-Processing-System/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func sampleInvoice(number, filename string) domain.Invoice {
	return domain.Invoice{
		IsInvoice:              true,
		InvoiceNumber:          number,
		InvoiceDate:            "2024-03-01",
		NetSum:                 "100.00 €",
		GrossSum:               "119.00 €",
		VATPercentage:          "19%",
		VATAmount:              "19.00 €",
		SenderName:             "ACME GmbH",
		SenderAddress:          "Hauptstr. 1, Berlin",
		RecipientName:          "Jane Doe",
		RecipientAddress:       "Nebenstr. 2, Hamburg",
		PaymentTerms:           domain.NotApplicable,
		PaymentMethod:          "Bank transfer",
		CategoryClassification: "Software",
		IsSubscription:         false,
		StartDate:              domain.NotApplicable,
		EndDate:                domain.NotApplicable,
		Tips:                   domain.NotApplicable,
		OriginalFilename:       filename,
		UploadTimestamp:        "2024-03-02T10:00:00Z",
	}
}

func newSQLiteRepository(t *testing.T) InvoiceRepository {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "invoices.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.InvoiceDocument{}))
	return NewInvoiceRepository(db)
}

// exerciseRepository runs the behavior every store implementation shares.
func exerciseRepository(t *testing.T, repo InvoiceRepository) {
	ctx := context.Background()

	docs, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, docs)

	_, err = repo.Get(ctx, "UNKNOWN123")
	assert.ErrorIs(t, err, domain.ErrInvoiceNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "UNKNOWN123"), domain.ErrInvoiceNotFound)

	require.NoError(t, repo.Put(ctx, "INV-1", sampleInvoice("INV-1", "a.pdf")))
	require.NoError(t, repo.Put(ctx, "INV-2", sampleInvoice("INV-2", "b.pdf")))

	doc, err := repo.Get(ctx, "INV-1")
	require.NoError(t, err)
	assert.Equal(t, "INV-1", doc[domain.FieldInvoiceNumber])
	assert.Equal(t, true, doc[domain.FieldIsInvoice])
	assert.Equal(t, "100.00 €", doc[domain.FieldNetSum])
	assert.NotContains(t, doc, domain.FieldPDFStoragePath)

	// same key, last writer wins
	require.NoError(t, repo.Put(ctx, "INV-1", sampleInvoice("INV-1", "c.pdf")))
	doc, err = repo.Get(ctx, "INV-1")
	require.NoError(t, err)
	assert.Equal(t, "c.pdf", doc[domain.FieldOriginalFilename])

	docs, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	require.NoError(t, repo.Delete(ctx, "INV-1"))
	_, err = repo.Get(ctx, "INV-1")
	assert.ErrorIs(t, err, domain.ErrInvoiceNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "INV-1"), domain.ErrInvoiceNotFound)

	docs, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "INV-2", docs[0][domain.FieldInvoiceNumber])
}

func TestSQLRepository(t *testing.T) {
	exerciseRepository(t, newSQLiteRepository(t))
}

func TestMemoryRepository(t *testing.T) {
	exerciseRepository(t, NewMemoryRepository())
}

func TestMemoryRepositoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	require.NoError(t, repo.Put(ctx, "INV-1", sampleInvoice("INV-1", "a.pdf")))

	doc, err := repo.Get(ctx, "INV-1")
	require.NoError(t, err)
	doc[domain.FieldNetSum] = "changed"

	doc, err = repo.Get(ctx, "INV-1")
	require.NoError(t, err)
	assert.Equal(t, "100.00 €", doc[domain.FieldNetSum])
}

func TestMemoryRepositoryKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	for _, key := range []string{"B", "A", "C"} {
		require.NoError(t, repo.Put(ctx, key, sampleInvoice(key, key+".pdf")))
	}
	require.NoError(t, repo.Put(ctx, "B", sampleInvoice("B", "again.pdf")))

	docs, err := repo.List(ctx)
	require.NoError(t, err)
	var keys []string
	for _, doc := range docs {
		keys = append(keys, doc[domain.FieldInvoiceNumber].(string))
	}
	assert.Equal(t, []string{"B", "A", "C"}, keys)
}
