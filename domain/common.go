package domain

import (
	"errors"
)

const (
	StatusSuccess = "success"
)

var (
	ErrFileRequired = errors.New("file is required")
)

// Error codes returned next to the free-text message in failure payloads.
const (
	CodeBadRequest           = "BAD_REQUEST"
	CodeNotFound             = "NOT_FOUND"
	CodeMethodNotAllowed     = "METHOD_NOT_ALLOWED"
	CodeInvoiceNotFound      = "INVOICE_NOT_FOUND"
	CodeNoInvoices           = "NO_INVOICES"
	CodeUploadFailed         = "UPLOAD_FAILED"
	CodeRenderFailed         = "RENDER_FAILED"
	CodeExtractionFailed     = "EXTRACTION_FAILED"
	CodeInvalidModelOutput   = "INVALID_MODEL_OUTPUT"
	CodeMissingInvoiceNumber = "MISSING_INVOICE_NUMBER"
	CodeInvalidInvoiceKey    = "INVALID_INVOICE_KEY"
	CodeArchiveFailed        = "ARCHIVE_FAILED"
	CodeStoreFailed          = "STORE_FAILED"
	CodeInternal             = "INTERNAL"
)
