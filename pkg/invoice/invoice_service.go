package invoice

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"Invoice-Processing-System/domain"
	"Invoice-Processing-System/internal/utils"
	"Invoice-Processing-System/internal/utils/storage"

	"github.com/sirupsen/logrus"
)

const moduleName = "invoice"

type (
	InvoiceService interface {
		UploadInvoice(ctx context.Context, req domain.UploadInvoiceRequest) (domain.Invoice, error)
		GetInvoiceFilenames(ctx context.Context) ([]string, error)
		ListInvoices(ctx context.Context) ([]domain.Document, error)
		GetInvoice(ctx context.Context, invoiceNumber string) (domain.Document, error)
		ExportInvoicesCSV(ctx context.Context) (string, error)
		ExportInvoicesXLSX(ctx context.Context, w io.Writer) error
		DeleteInvoice(ctx context.Context, invoiceNumber string) error
	}

	// Uploads persists the raw uploaded file and returns its local path.
	Uploads interface {
		Save(file *multipart.FileHeader) (string, error)
	}

	Renderer interface {
		Render(ctx context.Context, pdfPath string) (string, error)
	}

	Extractor interface {
		Extract(ctx context.Context, imagePath string, filename string) (domain.Invoice, error)
	}

	ServiceConfig struct {
		Uploads    Uploads
		Renderer   Renderer
		Extractor  Extractor
		Repository InvoiceRepository
		// Archiver is optional. When nil, uploaded PDFs are only kept locally.
		Archiver   storage.Archiver
		ExportFile string
		Logger     logrus.FieldLogger
	}

	invoiceService struct {
		uploads    Uploads
		renderer   Renderer
		extractor  Extractor
		repository InvoiceRepository
		archiver   storage.Archiver
		exportFile string
		logger     logrus.FieldLogger
	}
)

func NewInvoiceService(cfg ServiceConfig) InvoiceService {
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &invoiceService{
		uploads:    cfg.Uploads,
		renderer:   cfg.Renderer,
		extractor:  cfg.Extractor,
		repository: cfg.Repository,
		archiver:   cfg.Archiver,
		exportFile: cfg.ExportFile,
		logger:     logger.WithField("module", moduleName),
	}
}

func (s *invoiceService) UploadInvoice(ctx context.Context, req domain.UploadInvoiceRequest) (domain.Invoice, error) {
	if req.File == nil {
		return domain.Invoice{}, domain.ErrFileRequired
	}
	filename := filepath.Base(req.File.Filename)
	log := s.logger.WithFields(logrus.Fields{"funcName": "UploadInvoice", "filename": filename})

	pdfPath, err := s.uploads.Save(req.File)
	if err != nil {
		return domain.Invoice{}, err
	}

	imagePath, err := s.renderer.Render(ctx, pdfPath)
	if err != nil {
		return domain.Invoice{}, err
	}

	invoice, err := s.extractor.Extract(ctx, imagePath, filename)
	if err != nil {
		return domain.Invoice{}, err
	}

	key := invoice.InvoiceNumber
	if trimmed := strings.TrimSpace(key); trimmed == "" || trimmed == domain.NotApplicable {
		return domain.Invoice{}, fmt.Errorf("%w: got %q", domain.ErrMissingInvoiceNumber, key)
	}
	// keys are addressed as a single path segment by every store and route
	if strings.Contains(key, "/") {
		return domain.Invoice{}, fmt.Errorf("%w: %q", domain.ErrInvalidInvoiceKey, key)
	}
	log = log.WithField("invoice_number", key)

	if s.archiver != nil {
		object, err := s.archiver.Archive(ctx, storage.ObjectKey(key, filename), pdfPath)
		if err != nil {
			if !errors.Is(err, domain.ErrArchiveFailed) {
				err = fmt.Errorf("%w: %v", domain.ErrArchiveFailed, err)
			}
			return domain.Invoice{}, err
		}
		invoice.PDFStoragePath = object.Key
		invoice.PDFPublicURL = object.PublicURL
	}

	s.warnOnCollision(ctx, log, key, filename)

	if err := s.repository.Put(ctx, key, invoice); err != nil {
		return domain.Invoice{}, fmt.Errorf("%w: %w", domain.ErrStoreFailed, err)
	}

	log.Info("invoice stored")
	return invoice, nil
}

// warnOnCollision logs when a put is about to replace another file's record.
func (s *invoiceService) warnOnCollision(ctx context.Context, log logrus.FieldLogger, key, filename string) {
	existing, err := s.repository.Get(ctx, key)
	if err != nil {
		return
	}
	previous, ok := existing.String(domain.FieldOriginalFilename)
	if ok && previous != filename {
		log.WithField("previous_filename", previous).Warn("overwriting invoice extracted from a different file")
	}
}

func (s *invoiceService) GetInvoiceFilenames(ctx context.Context) ([]string, error) {
	docs, err := s.repository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreFailed, err)
	}

	filenames := make([]string, 0, len(docs))
	for _, doc := range docs {
		if name, ok := doc.String(domain.FieldOriginalFilename); ok {
			filenames = append(filenames, name)
		}
	}
	return filenames, nil
}

func (s *invoiceService) ListInvoices(ctx context.Context) ([]domain.Document, error) {
	docs, err := s.repository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreFailed, err)
	}
	return docs, nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, invoiceNumber string) (domain.Document, error) {
	doc, err := s.repository.Get(ctx, invoiceNumber)
	if err != nil {
		if errors.Is(err, domain.ErrInvoiceNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreFailed, err)
	}
	return doc, nil
}

// ExportInvoicesCSV rewrites the export file from the whole collection and
// returns its path.
func (s *invoiceService) ExportInvoicesCSV(ctx context.Context) (string, error) {
	docs, err := s.nonEmptyList(ctx)
	if err != nil {
		return "", err
	}

	dir := filepath.Dir(s.exportFile)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrExportFailed, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.exportFile)+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrExportFailed, err)
	}
	defer os.Remove(tmp.Name())

	if err := WriteCSV(tmp, docs); err != nil {
		tmp.Close()
		return "", fmt.Errorf("%w: %v", domain.ErrExportFailed, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrExportFailed, err)
	}
	if err := os.Rename(tmp.Name(), s.exportFile); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrExportFailed, err)
	}

	s.logger.WithFields(logrus.Fields{"funcName": "ExportInvoicesCSV", "rows": len(docs)}).Info("invoices exported")
	return s.exportFile, nil
}

func (s *invoiceService) ExportInvoicesXLSX(ctx context.Context, w io.Writer) error {
	docs, err := s.nonEmptyList(ctx)
	if err != nil {
		return err
	}
	if err := WriteXLSX(w, docs); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrExportFailed, err)
	}
	return nil
}

func (s *invoiceService) nonEmptyList(ctx context.Context) ([]domain.Document, error) {
	docs, err := s.repository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreFailed, err)
	}
	if len(docs) == 0 {
		return nil, domain.ErrNoInvoices
	}
	return docs, nil
}

func (s *invoiceService) DeleteInvoice(ctx context.Context, invoiceNumber string) error {
	var archived string
	if s.archiver != nil {
		if doc, err := s.repository.Get(ctx, invoiceNumber); err == nil {
			archived, _ = doc.String(domain.FieldPDFStoragePath)
		}
	}

	if err := s.repository.Delete(ctx, invoiceNumber); err != nil {
		if errors.Is(err, domain.ErrInvoiceNotFound) {
			return err
		}
		return fmt.Errorf("%w: %w", domain.ErrStoreFailed, err)
	}

	if archived != "" {
		if err := s.archiver.Remove(ctx, archived); err != nil {
			utils.LogError(s.logger, moduleName, "DeleteInvoice", logrus.Fields{
				"invoice_number": invoiceNumber,
				"object_key":     archived,
			}, err)
		}
	}
	return nil
}
