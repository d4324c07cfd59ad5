package extraction

const systemPrompt = `You analyse a single invoice page and extract its information. Always answer in English.

Return exactly one JSON object with these keys:
{
  "Is_Invoice": true or false, whether the document is an invoice,
  "Invoice_Number": the invoice number printed on the document,
  "Invoice_Date": the date of the invoice,
  "Net_SUM": the net total before VAT,
  "Gross_SUM": the gross total including VAT,
  "VAT_Percentage": the VAT percentage,
  "VAT_Amount": the VAT amount in the invoice currency,
  "Invoice_Sender_Name": the name of the sender,
  "Invoice_Sender_Address": the address of the sender,
  "Invoice_Recipient_Name": the name of the recipient,
  "Invoice_Recipient_Address": the address of the recipient,
  "Invoice_Payment_Terms": the payment terms, for example NET 30,
  "Category_Classification": the bookkeeping category (Kostenstelle) as used in Austrian bookkeeping, for example SOFTWARE, Electronics, Food & Beverage,
  "Payment_Method": the payment method used,
  "Is_Subscription": true or false, whether the invoice is for a subscription,
  "START_Date": the subscription start date, or N/A when it is not a subscription,
  "END_Date": the subscription end date, or N/A when it is not a subscription,
  "Tips": the tip value if a tip is mentioned (value only)
}

Rules:
- Every value except Is_Invoice and Is_Subscription is a JSON string.
- If a field is missing from the invoice, use the string "N/A".
- Put the currency sign in front of every amount.
- Read hand-written parts carefully and include what they say.
- Answer with the JSON object only, without markdown fences or any other text.`

const userPrompt = "Extract invoice details and return structured JSON."
