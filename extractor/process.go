package extractor

import (
	"fmt"
	"io"
	"strings"

	"github.com/RajParmar007/Credit-Card-Statement-Parser/extractor/common"
)

// Parse runs one issuer's four extractors over the linearized statement text
// and assembles the unified record. The only failure is an unknown issuer
// key; pattern misses become nil fields or an empty transaction list.
func (r *Registry) Parse(text, issuerKey string) (common.StatementRecord, error) {
	profile, err := r.Lookup(issuerKey)
	if err != nil {
		return common.StatementRecord{}, err
	}

	return common.StatementRecord{
		Issuer:       strings.ToUpper(profile.Key),
		Last4Digits:  profile.Last4Digits(text),
		DueDate:      profile.DueDate(text),
		TotalBalance: profile.TotalBalance(text),
		Transactions: profile.Transactions(text),
	}, nil
}

// ParseReader linearizes a PDF and parses it. The issuer is resolved before
// any PDF work so an unknown key fails without touching the document.
func (r *Registry) ParseReader(reader io.Reader, issuerKey string) (common.StatementRecord, error) {
	if _, err := r.Lookup(issuerKey); err != nil {
		return common.StatementRecord{}, err
	}

	text, err := common.ExtractTextFromReader(reader)
	if err != nil {
		return common.StatementRecord{}, fmt.Errorf("could not extract text: %w", err)
	}

	return r.Parse(text, issuerKey)
}
