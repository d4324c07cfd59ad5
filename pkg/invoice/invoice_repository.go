package invoice

import (
	"context"
	"errors"

	"Invoice-Processing-System/domain"
	"Invoice-Processing-System/entities"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	// InvoiceRepository stores one document per invoice number. Put is an
	// unconditional upsert; Get and Delete report domain.ErrInvoiceNotFound
	// for absent keys.
	InvoiceRepository interface {
		Put(ctx context.Context, key string, invoice domain.Invoice) error
		Get(ctx context.Context, key string) (domain.Document, error)
		List(ctx context.Context) ([]domain.Document, error)
		Delete(ctx context.Context, key string) error
	}

	invoiceRepository struct {
		db *gorm.DB
	}
)

// NewInvoiceRepository returns the relational store backed by the invoice_documents table.
func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Put(ctx context.Context, key string, invoice domain.Invoice) error {
	doc := &entities.InvoiceDocument{
		InvoiceNumber: key,
		Data:          datatypes.JSONMap(invoice.Document()),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "invoice_number"}},
			DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
		}).
		Create(doc).Error
}

func (r *invoiceRepository) Get(ctx context.Context, key string) (domain.Document, error) {
	var doc entities.InvoiceDocument
	if err := r.db.WithContext(ctx).Where("invoice_number = ?", key).First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, err
	}
	return domain.Document(doc.Data), nil
}

func (r *invoiceRepository) List(ctx context.Context) ([]domain.Document, error) {
	var docs []*entities.InvoiceDocument
	if err := r.db.WithContext(ctx).Order("created_at asc").Find(&docs).Error; err != nil {
		return nil, err
	}

	result := make([]domain.Document, 0, len(docs))
	for _, doc := range docs {
		result = append(result, domain.Document(doc.Data))
	}
	return result, nil
}

func (r *invoiceRepository) Delete(ctx context.Context, key string) error {
	res := r.db.WithContext(ctx).Where("invoice_number = ?", key).Delete(&entities.InvoiceDocument{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}
