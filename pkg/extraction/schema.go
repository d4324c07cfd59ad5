package extraction

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"Invoice-Processing-System/domain"

	"github.com/go-playground/validator/v10"
)

// laxBool accepts JSON booleans and the usual textual spellings of a boolean.
type laxBool bool

func (b *laxBool) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = unquoted
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "t", "yes", "y", "on", "1":
		*b = true
	case "false", "f", "no", "n", "off", "0":
		*b = false
	default:
		return fmt.Errorf("invalid boolean value %s", string(data))
	}
	return nil
}

// invoicePayload is the wire shape of the model answer. Pointers tell absent
// fields apart from empty ones.
type invoicePayload struct {
	IsInvoice              *laxBool `json:"Is_Invoice" validate:"required"`
	InvoiceNumber          *string  `json:"Invoice_Number" validate:"required"`
	InvoiceDate            *string  `json:"Invoice_Date" validate:"required"`
	NetSum                 *string  `json:"Net_SUM" validate:"required"`
	GrossSum               *string  `json:"Gross_SUM" validate:"required"`
	VATPercentage          *string  `json:"VAT_Percentage" validate:"required"`
	VATAmount              *string  `json:"VAT_Amount" validate:"required"`
	SenderName             *string  `json:"Invoice_Sender_Name" validate:"required"`
	SenderAddress          *string  `json:"Invoice_Sender_Address" validate:"required"`
	RecipientName          *string  `json:"Invoice_Recipient_Name" validate:"required"`
	RecipientAddress       *string  `json:"Invoice_Recipient_Address" validate:"required"`
	PaymentTerms           *string  `json:"Invoice_Payment_Terms"`
	PaymentMethod          *string  `json:"Payment_Method"`
	CategoryClassification *string  `json:"Category_Classification"`
	IsSubscription         *laxBool `json:"Is_Subscription" validate:"required"`
	StartDate              *string  `json:"START_Date"`
	EndDate                *string  `json:"END_Date"`
	Tips                   *string  `json:"Tips"`
}

// Parse turns the raw model answer into an invoice. The answer must be a single
// JSON object carrying every required field; nothing is repaired.
func Parse(validate *validator.Validate, text string) (domain.Invoice, error) {
	dec := json.NewDecoder(strings.NewReader(strings.TrimSpace(text)))

	var payload invoicePayload
	if err := dec.Decode(&payload); err != nil {
		return domain.Invoice{}, fmt.Errorf("%w: %v", domain.ErrInvalidModelOutput, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return domain.Invoice{}, fmt.Errorf("%w: unexpected data after JSON object", domain.ErrInvalidModelOutput)
	}

	if err := validate.Struct(payload); err != nil {
		return domain.Invoice{}, fmt.Errorf("%w: %s", domain.ErrInvalidModelOutput, describeValidation(err))
	}

	return domain.Invoice{
		IsInvoice:              bool(*payload.IsInvoice),
		InvoiceNumber:          *payload.InvoiceNumber,
		InvoiceDate:            *payload.InvoiceDate,
		NetSum:                 *payload.NetSum,
		GrossSum:               *payload.GrossSum,
		VATPercentage:          *payload.VATPercentage,
		VATAmount:              *payload.VATAmount,
		SenderName:             *payload.SenderName,
		SenderAddress:          *payload.SenderAddress,
		RecipientName:          *payload.RecipientName,
		RecipientAddress:       *payload.RecipientAddress,
		PaymentTerms:           orNotApplicable(payload.PaymentTerms),
		PaymentMethod:          orNotApplicable(payload.PaymentMethod),
		CategoryClassification: orNotApplicable(payload.CategoryClassification),
		IsSubscription:         bool(*payload.IsSubscription),
		StartDate:              orNotApplicable(payload.StartDate),
		EndDate:                orNotApplicable(payload.EndDate),
		Tips:                   orNotApplicable(payload.Tips),
	}, nil
}

func orNotApplicable(s *string) string {
	if s == nil {
		return domain.NotApplicable
	}
	return *s
}

func describeValidation(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err.Error()
	}
	missing := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		missing = append(missing, fe.Field())
	}
	return "missing required fields: " + strings.Join(missing, ", ")
}
