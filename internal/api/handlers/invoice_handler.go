package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"Invoice-Processing-System/domain"
	"Invoice-Processing-System/internal/api/presenters"
	"Invoice-Processing-System/internal/middleware"
	"Invoice-Processing-System/internal/utils"
	"Invoice-Processing-System/pkg/invoice"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const (
	csvAttachmentName  = "invoice_data.csv"
	xlsxAttachmentName = "invoice_data.xlsx"
	xlsxContentType    = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type (
	InvoiceHandler interface {
		UploadInvoice(c *fiber.Ctx) error
		GetInvoices(c *fiber.Ctx) error
		ViewInvoices(c *fiber.Ctx) error
		GetInvoice(c *fiber.Ctx) error
		DownloadInvoicesCSV(c *fiber.Ctx) error
		DownloadInvoicesXLSX(c *fiber.Ctx) error
		DeleteInvoice(c *fiber.Ctx) error
	}

	invoiceHandler struct {
		invoiceService invoice.InvoiceService
		validator      *validator.Validate
		logger         logrus.FieldLogger
	}
)

func NewInvoiceHandler(invoiceService invoice.InvoiceService, validator *validator.Validate, logger logrus.FieldLogger) InvoiceHandler {
	return &invoiceHandler{
		invoiceService: invoiceService,
		validator:      validator,
		logger:         logger,
	}
}

func (h *invoiceHandler) UploadInvoice(c *fiber.Ctx) error {
	req := domain.UploadInvoiceRequest{}
	if file, err := c.FormFile("file"); err == nil {
		req.File = file
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.CodeBadRequest, domain.ErrFileRequired.Error())
	}

	res, err := h.invoiceService.UploadInvoice(c.Context(), req)
	if err != nil {
		h.logFailure(c, "UploadInvoice", err)
		status, code := ErrorStatus(err)
		return presenters.DetailResponse(c, status, code, err.Error())
	}

	return presenters.SuccessResponse(c, domain.UploadInvoiceResponse{
		Status:        domain.StatusSuccess,
		ExtractedData: res.Document(),
	}, fiber.StatusOK)
}

func (h *invoiceHandler) GetInvoices(c *fiber.Ctx) error {
	filenames, err := h.invoiceService.GetInvoiceFilenames(c.Context())
	if err != nil {
		return h.failure(c, "GetInvoices", err)
	}
	return presenters.SuccessResponse(c, filenames, fiber.StatusOK)
}

func (h *invoiceHandler) ViewInvoices(c *fiber.Ctx) error {
	docs, err := h.invoiceService.ListInvoices(c.Context())
	if err != nil {
		return h.failure(c, "ViewInvoices", err)
	}
	return presenters.SuccessResponse(c, docs, fiber.StatusOK)
}

func (h *invoiceHandler) GetInvoice(c *fiber.Ctx) error {
	doc, err := h.invoiceService.GetInvoice(c.Context(), c.Params("invoice_number"))
	if err != nil {
		return h.failure(c, "GetInvoice", err)
	}
	return presenters.SuccessResponse(c, doc, fiber.StatusOK)
}

func (h *invoiceHandler) DownloadInvoicesCSV(c *fiber.Ctx) error {
	path, err := h.invoiceService.ExportInvoicesCSV(c.Context())
	if err != nil {
		return h.failure(c, "DownloadInvoicesCSV", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return h.failure(c, "DownloadInvoicesCSV", fmt.Errorf("%w: %v", domain.ErrExportFailed, err))
	}

	c.Attachment(csvAttachmentName)
	c.Set(fiber.HeaderContentType, "text/csv")
	return c.Send(data)
}

func (h *invoiceHandler) DownloadInvoicesXLSX(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.invoiceService.ExportInvoicesXLSX(c.Context(), &buf); err != nil {
		return h.failure(c, "DownloadInvoicesXLSX", err)
	}

	c.Attachment(xlsxAttachmentName)
	c.Set(fiber.HeaderContentType, xlsxContentType)
	return c.Send(buf.Bytes())
}

func (h *invoiceHandler) DeleteInvoice(c *fiber.Ctx) error {
	invoiceNumber := c.Params("invoice_number")
	if err := h.invoiceService.DeleteInvoice(c.Context(), invoiceNumber); err != nil {
		return h.failure(c, "DeleteInvoice", err)
	}

	return presenters.SuccessResponse(c, domain.DeleteInvoiceResponse{
		Status:  domain.StatusSuccess,
		Message: fmt.Sprintf("Invoice %s deleted successfully", invoiceNumber),
	}, fiber.StatusOK)
}

func (h *invoiceHandler) failure(c *fiber.Ctx, funcName string, err error) error {
	status, code := ErrorStatus(err)
	message := err.Error()
	switch {
	case errors.Is(err, domain.ErrInvoiceNotFound):
		message = domain.MessageInvoiceNotFound
	case errors.Is(err, domain.ErrNoInvoices):
		message = domain.MessageNoInvoicesFound
	default:
		h.logFailure(c, funcName, err)
	}
	return presenters.ErrorResponse(c, status, code, message)
}

func (h *invoiceHandler) logFailure(c *fiber.Ctx, funcName string, err error) {
	utils.LogError(h.logger, "handlers", funcName, logrus.Fields{
		"request_id": c.Locals(middleware.RequestIDKey),
		"path":       c.Path(),
	}, err)
}
