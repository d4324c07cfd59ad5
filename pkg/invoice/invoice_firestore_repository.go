package invoice

import (
	"context"
	"fmt"
	"strings"

	"Invoice-Processing-System/domain"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type firestoreRepository struct {
	collection *firestore.CollectionRef
}

// NewFirestoreRepository stores invoices as documents of the named collection,
// the document ID being the invoice number.
func NewFirestoreRepository(client *firestore.Client, collection string) InvoiceRepository {
	return &firestoreRepository{collection: client.Collection(collection)}
}

func (r *firestoreRepository) doc(key string) (*firestore.DocumentRef, error) {
	if key == "" || strings.Contains(key, "/") {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidInvoiceKey, key)
	}
	return r.collection.Doc(key), nil
}

func (r *firestoreRepository) Put(ctx context.Context, key string, invoice domain.Invoice) error {
	ref, err := r.doc(key)
	if err != nil {
		return err
	}
	_, err = ref.Set(ctx, map[string]interface{}(invoice.Document()))
	return err
}

func (r *firestoreRepository) Get(ctx context.Context, key string) (domain.Document, error) {
	ref, err := r.doc(key)
	if err != nil {
		return nil, domain.ErrInvoiceNotFound
	}
	snap, err := ref.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, err
	}
	return domain.Document(snap.Data()), nil
}

func (r *firestoreRepository) List(ctx context.Context) ([]domain.Document, error) {
	snaps, err := r.collection.Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}

	result := make([]domain.Document, 0, len(snaps))
	for _, snap := range snaps {
		result = append(result, domain.Document(snap.Data()))
	}
	return result, nil
}

func (r *firestoreRepository) Delete(ctx context.Context, key string) error {
	ref, err := r.doc(key)
	if err != nil {
		return domain.ErrInvoiceNotFound
	}
	if _, err := ref.Delete(ctx, firestore.Exists); err != nil {
		if status.Code(err) == codes.NotFound {
			return domain.ErrInvoiceNotFound
		}
		return err
	}
	return nil
}
