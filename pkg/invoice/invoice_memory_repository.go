package invoice

import (
	"context"
	"sync"

	"Invoice-Processing-System/domain"
)

// memoryRepository keeps documents in process memory in insertion order.
type memoryRepository struct {
	mu    sync.RWMutex
	keys  []string
	items map[string]domain.Document
}

func NewMemoryRepository() InvoiceRepository {
	return &memoryRepository{items: make(map[string]domain.Document)}
}

func (r *memoryRepository) Put(ctx context.Context, key string, invoice domain.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.items[key] = invoice.Document()
	return nil
}

func (r *memoryRepository) Get(ctx context.Context, key string) (domain.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.items[key]
	if !ok {
		return nil, domain.ErrInvoiceNotFound
	}
	return copyDocument(doc), nil
}

func (r *memoryRepository) List(ctx context.Context) ([]domain.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]domain.Document, 0, len(r.keys))
	for _, key := range r.keys {
		result = append(result, copyDocument(r.items[key]))
	}
	return result, nil
}

func (r *memoryRepository) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[key]; !ok {
		return domain.ErrInvoiceNotFound
	}
	delete(r.items, key)
	for i, k := range r.keys {
		if k == key {
			r.keys = append(r.keys[:i], r.keys[i+1:]...)
			break
		}
	}
	return nil
}

func copyDocument(doc domain.Document) domain.Document {
	out := make(domain.Document, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}
