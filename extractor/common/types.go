package common

// Transaction types as they appear in the JSON output.
const (
	TypeCredit = "Credit"
	TypeDebit  = "Debit"
)

// StatementRecord is the unified result of parsing one statement.
// Scalar fields are nil when the issuer's pattern found no match;
// Transactions is always present, possibly empty.
type StatementRecord struct {
	Issuer       string              `json:"issuer"`
	Last4Digits  *string             `json:"last_4_digits"`
	DueDate      *string             `json:"due_date"`
	TotalBalance *string             `json:"total_balance"`
	Transactions []TransactionRecord `json:"transactions"`
}

// TransactionRecord is one line item in document order. Date stays a verbatim
// DD/MM/YYYY string, Amount a decimal string with separators stripped.
type TransactionRecord struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Type        string `json:"type"`
}
