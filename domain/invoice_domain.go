package domain

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"strconv"
)

// NotApplicable is the sentinel stored for optional fields the model did not find.
const NotApplicable = "N/A"

// Document field names. They are part of the stored format and the HTTP payloads.
const (
	FieldIsInvoice              = "Is_Invoice"
	FieldInvoiceNumber          = "Invoice_Number"
	FieldInvoiceDate            = "Invoice_Date"
	FieldNetSum                 = "Net_SUM"
	FieldGrossSum               = "Gross_SUM"
	FieldVATPercentage          = "VAT_Percentage"
	FieldVATAmount              = "VAT_Amount"
	FieldSenderName             = "Invoice_Sender_Name"
	FieldSenderAddress          = "Invoice_Sender_Address"
	FieldRecipientName          = "Invoice_Recipient_Name"
	FieldRecipientAddress       = "Invoice_Recipient_Address"
	FieldPaymentTerms           = "Invoice_Payment_Terms"
	FieldPaymentMethod          = "Payment_Method"
	FieldCategoryClassification = "Category_Classification"
	FieldIsSubscription         = "Is_Subscription"
	FieldStartDate              = "START_Date"
	FieldEndDate                = "END_Date"
	FieldTips                   = "Tips"
	FieldOriginalFilename       = "Original_Filename"
	FieldUploadTimestamp        = "Upload_Timestamp"
	FieldPDFStoragePath         = "PDF_Storage_Path"
	FieldPDFPublicURL           = "PDF_Public_URL"
)

// InvoiceFields lists every known record field in export order.
var InvoiceFields = []string{
	FieldIsInvoice,
	FieldInvoiceNumber,
	FieldInvoiceDate,
	FieldNetSum,
	FieldGrossSum,
	FieldVATPercentage,
	FieldVATAmount,
	FieldSenderName,
	FieldSenderAddress,
	FieldRecipientName,
	FieldRecipientAddress,
	FieldPaymentTerms,
	FieldPaymentMethod,
	FieldCategoryClassification,
	FieldIsSubscription,
	FieldStartDate,
	FieldEndDate,
	FieldTips,
	FieldOriginalFilename,
	FieldUploadTimestamp,
	FieldPDFStoragePath,
	FieldPDFPublicURL,
}

var (
	MessageInvoiceNotFound = "Invoice not found"
	MessageNoInvoicesFound = "No invoices found"

	ErrInvoiceNotFound      = errors.New("invoice not found")
	ErrNoInvoices           = errors.New("no invoices found")
	ErrSaveUpload           = errors.New("error saving uploaded file")
	ErrRenderFailed         = errors.New("error converting PDF to image")
	ErrPageOutOfRange       = errors.New("page index out of range")
	ErrExtractionFailed     = errors.New("error analyzing invoice")
	ErrInvalidModelOutput   = errors.New("model output does not match the invoice schema")
	ErrMissingAPIKey        = errors.New("model API key not set")
	ErrEmptyModelResponse   = errors.New("model returned no text content")
	ErrMissingInvoiceNumber = errors.New("no usable invoice number extracted")
	ErrInvalidInvoiceKey    = errors.New("invoice number cannot be used as a document key")
	ErrArchiveFailed        = errors.New("error archiving invoice PDF")
	ErrStoreFailed          = errors.New("error storing invoice data")
	ErrExportFailed         = errors.New("error exporting invoices")
)

type (
	// Invoice is the fixed-schema record extracted from one invoice document.
	Invoice struct {
		IsInvoice              bool   `json:"Is_Invoice"`
		InvoiceNumber          string `json:"Invoice_Number"`
		InvoiceDate            string `json:"Invoice_Date"`
		NetSum                 string `json:"Net_SUM"`
		GrossSum               string `json:"Gross_SUM"`
		VATPercentage          string `json:"VAT_Percentage"`
		VATAmount              string `json:"VAT_Amount"`
		SenderName             string `json:"Invoice_Sender_Name"`
		SenderAddress          string `json:"Invoice_Sender_Address"`
		RecipientName          string `json:"Invoice_Recipient_Name"`
		RecipientAddress       string `json:"Invoice_Recipient_Address"`
		PaymentTerms           string `json:"Invoice_Payment_Terms"`
		PaymentMethod          string `json:"Payment_Method"`
		CategoryClassification string `json:"Category_Classification"`
		IsSubscription         bool   `json:"Is_Subscription"`
		StartDate              string `json:"START_Date"`
		EndDate                string `json:"END_Date"`
		Tips                   string `json:"Tips"`
		OriginalFilename       string `json:"Original_Filename"`
		UploadTimestamp        string `json:"Upload_Timestamp"`
		PDFStoragePath         string `json:"PDF_Storage_Path,omitempty"`
		PDFPublicURL           string `json:"PDF_Public_URL,omitempty"`
	}

	// Document is a record as held by the record store. Documents written by
	// older versions may lack some fields.
	Document map[string]any

	UploadInvoiceRequest struct {
		File *multipart.FileHeader `json:"file" form:"file" validate:"required"`
	}

	UploadInvoiceResponse struct {
		Status        string   `json:"status"`
		ExtractedData Document `json:"extracted_data"`
	}

	DeleteInvoiceResponse struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
)

// Document returns the stored form of the invoice.
func (i Invoice) Document() Document {
	doc := Document{
		FieldIsInvoice:              i.IsInvoice,
		FieldInvoiceNumber:          i.InvoiceNumber,
		FieldInvoiceDate:            i.InvoiceDate,
		FieldNetSum:                 i.NetSum,
		FieldGrossSum:               i.GrossSum,
		FieldVATPercentage:          i.VATPercentage,
		FieldVATAmount:              i.VATAmount,
		FieldSenderName:             i.SenderName,
		FieldSenderAddress:          i.SenderAddress,
		FieldRecipientName:          i.RecipientName,
		FieldRecipientAddress:       i.RecipientAddress,
		FieldPaymentTerms:           i.PaymentTerms,
		FieldPaymentMethod:          i.PaymentMethod,
		FieldCategoryClassification: i.CategoryClassification,
		FieldIsSubscription:         i.IsSubscription,
		FieldStartDate:              i.StartDate,
		FieldEndDate:                i.EndDate,
		FieldTips:                   i.Tips,
		FieldOriginalFilename:       i.OriginalFilename,
		FieldUploadTimestamp:        i.UploadTimestamp,
	}
	if i.PDFStoragePath != "" {
		doc[FieldPDFStoragePath] = i.PDFStoragePath
	}
	if i.PDFPublicURL != "" {
		doc[FieldPDFPublicURL] = i.PDFPublicURL
	}
	return doc
}

// String returns the field as text when it is present and holds a string.
func (d Document) String(field string) (string, bool) {
	v, ok := d[field]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Cell renders a field for tabular export. Absent fields are empty.
func (d Document) Cell(field string) string {
	v, ok := d[field]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case bool:
		if t {
			return "True"
		}
		return "False"
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return marshalCell(t)
	}
}

func marshalCell(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
