package handlers

import (
	"errors"

	"Invoice-Processing-System/domain"
	"Invoice-Processing-System/internal/api/presenters"

	"github.com/gofiber/fiber/v2"
)

// ErrorStatus maps a service error to the HTTP status and machine-readable
// code of the failure payload. More specific errors are matched first.
func ErrorStatus(err error) (int, string) {
	var fe *fiber.Error
	switch {
	case errors.Is(err, domain.ErrFileRequired):
		return fiber.StatusBadRequest, domain.CodeBadRequest
	case errors.Is(err, domain.ErrInvoiceNotFound):
		return fiber.StatusNotFound, domain.CodeInvoiceNotFound
	case errors.Is(err, domain.ErrNoInvoices):
		return fiber.StatusNotFound, domain.CodeNoInvoices
	case errors.Is(err, domain.ErrSaveUpload):
		return fiber.StatusInternalServerError, domain.CodeUploadFailed
	case errors.Is(err, domain.ErrRenderFailed):
		return fiber.StatusInternalServerError, domain.CodeRenderFailed
	case errors.Is(err, domain.ErrInvalidModelOutput):
		return fiber.StatusInternalServerError, domain.CodeInvalidModelOutput
	case errors.Is(err, domain.ErrExtractionFailed):
		return fiber.StatusInternalServerError, domain.CodeExtractionFailed
	case errors.Is(err, domain.ErrMissingInvoiceNumber):
		return fiber.StatusInternalServerError, domain.CodeMissingInvoiceNumber
	case errors.Is(err, domain.ErrInvalidInvoiceKey):
		return fiber.StatusInternalServerError, domain.CodeInvalidInvoiceKey
	case errors.Is(err, domain.ErrArchiveFailed):
		return fiber.StatusInternalServerError, domain.CodeArchiveFailed
	case errors.Is(err, domain.ErrStoreFailed):
		return fiber.StatusInternalServerError, domain.CodeStoreFailed
	case errors.As(err, &fe):
		switch {
		case fe.Code == fiber.StatusNotFound:
			return fe.Code, domain.CodeNotFound
		case fe.Code == fiber.StatusMethodNotAllowed:
			return fe.Code, domain.CodeMethodNotAllowed
		case fe.Code < fiber.StatusInternalServerError:
			return fe.Code, domain.CodeBadRequest
		}
		return fe.Code, domain.CodeInternal
	default:
		return fiber.StatusInternalServerError, domain.CodeInternal
	}
}

// ErrorHandler renders errors no handler answered itself.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status, code := ErrorStatus(err)
	return presenters.ErrorResponse(c, status, code, err.Error())
}
