package extraction

import (
	"testing"

	"Invoice-Processing-System/domain"
	"Invoice-Processing-System/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const completeAnswer = `{
  "Is_Invoice": true,
  "Invoice_Number": "INV-2024-001",
  "Invoice_Date": "2024-03-01",
  "Net_SUM": "€100.00",
  "Gross_SUM": "€120.00",
  "VAT_Percentage": "20%",
  "VAT_Amount": "€20.00",
  "Invoice_Sender_Name": "ACME GmbH",
  "Invoice_Sender_Address": "Hauptstraße 1, Wien",
  "Invoice_Recipient_Name": "Jane Doe",
  "Invoice_Recipient_Address": "Ring 2, Graz",
  "Invoice_Payment_Terms": "NET 30",
  "Payment_Method": "Bank transfer",
  "Category_Classification": "SOFTWARE",
  "Is_Subscription": false,
  "START_Date": "N/A",
  "END_Date": "N/A",
  "Tips": "N/A"
}`

func testValidator() *validator.Validate {
	utils.InitValidator()
	return utils.Validate
}

func TestParseCompleteAnswer(t *testing.T) {
	invoice, err := Parse(testValidator(), completeAnswer)
	require.NoError(t, err)

	assert.True(t, invoice.IsInvoice)
	assert.False(t, invoice.IsSubscription)
	assert.Equal(t, "INV-2024-001", invoice.InvoiceNumber)
	assert.Equal(t, "€120.00", invoice.GrossSum)
	assert.Equal(t, "Hauptstraße 1, Wien", invoice.SenderAddress)
	assert.Equal(t, "SOFTWARE", invoice.CategoryClassification)
	assert.Empty(t, invoice.OriginalFilename)
}

func TestParseDefaultsOptionalFields(t *testing.T) {
	answer := `{
	  "Is_Invoice": "yes", "Invoice_Number": "42", "Invoice_Date": "N/A",
	  "Net_SUM": "$1", "Gross_SUM": "$1", "VAT_Percentage": "0%", "VAT_Amount": "$0",
	  "Invoice_Sender_Name": "S", "Invoice_Sender_Address": "SA",
	  "Invoice_Recipient_Name": "R", "Invoice_Recipient_Address": "RA",
	  "Is_Subscription": "False", "Tips": null, "Unrelated": 3
	}`

	invoice, err := Parse(testValidator(), answer)
	require.NoError(t, err)

	assert.True(t, invoice.IsInvoice)
	assert.False(t, invoice.IsSubscription)
	for _, v := range []string{invoice.PaymentTerms, invoice.PaymentMethod, invoice.CategoryClassification, invoice.StartDate, invoice.EndDate, invoice.Tips} {
		assert.Equal(t, domain.NotApplicable, v)
	}
}

func TestParseRejectsNonConformingAnswers(t *testing.T) {
	tests := []struct {
		name   string
		answer string
		detail string
	}{
		{name: "not json", answer: "Here is the invoice: INV-1", detail: "invalid character"},
		{name: "markdown fenced", answer: "```json\n" + completeAnswer + "\n```"},
		{name: "array", answer: "[" + completeAnswer + "]"},
		{name: "trailing text", answer: completeAnswer + " hope this helps", detail: "unexpected data"},
		{name: "missing required", answer: `{"Is_Invoice": true, "Invoice_Number": "1"}`, detail: "Invoice_Date"},
		{name: "required null", answer: `{"Is_Invoice": null}`, detail: "Is_Invoice"},
		{name: "bad boolean", answer: `{"Is_Invoice": "maybe"}`, detail: "invalid boolean"},
		{name: "number for string", answer: `{"Net_SUM": 100}`},
		{name: "empty", answer: "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			invoice, err := Parse(testValidator(), tt.answer)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidModelOutput)
			assert.Equal(t, domain.Invoice{}, invoice)
			if tt.detail != "" {
				assert.Contains(t, err.Error(), tt.detail)
			}
		})
	}
}
