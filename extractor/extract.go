package extractor

import (
	"regexp"
	"strings"

	"github.com/RajParmar007/Credit-Card-Statement-Parser/extractor/common"
)

// Last4Digits returns the trailing card digits, or nil when the pattern does
// not match.
func (p *Profile) Last4Digits(text string) *string {
	return firstGroup(p.Last4Pattern, text)
}

// DueDate returns the payment due date verbatim (DD/MM/YYYY), or nil.
func (p *Profile) DueDate(text string) *string {
	return firstGroup(p.DueDatePattern, text)
}

// TotalBalance returns the total dues with thousands separators stripped and
// two fraction digits, or nil.
func (p *Profile) TotalBalance(text string) *string {
	raw := firstGroup(p.BalancePattern, text)
	if raw == nil {
		return nil
	}
	normalized, err := common.NormalizeAmount(*raw)
	if err != nil {
		return nil
	}
	return &normalized
}

// Transactions scans the full text for every non-overlapping line item of the
// shape <date> <description> <amount> [<marker>] and drops candidates whose
// description contains any of the profile's noise-filter substrings. Results
// keep document order.
func (p *Profile) Transactions(text string) []common.TransactionRecord {
	records := []common.TransactionRecord{}

	for _, match := range p.TransactionPattern.FindAllStringSubmatch(text, -1) {
		if len(match) < 5 {
			continue
		}

		description := strings.TrimSpace(match[2])
		if p.isNoise(description) {
			continue
		}

		amount, err := common.NormalizeAmount(match[3])
		if err != nil {
			continue
		}

		txType := common.TypeDebit
		if strings.TrimSpace(match[4]) == p.CreditMarker {
			txType = common.TypeCredit
		}

		records = append(records, common.TransactionRecord{
			Date:        match[1],
			Description: description,
			Amount:      amount,
			Type:        txType,
		})
	}

	return records
}

// isNoise reports whether the description belongs to boilerplate that
// happens to match the transaction shape: table headers, the cardholder
// name, tax lines, amortization rows, known gateway credits.
func (p *Profile) isNoise(description string) bool {
	for _, filter := range p.NoiseFilters {
		if strings.Contains(description, filter) {
			return true
		}
	}
	return false
}

func firstGroup(re *regexp.Regexp, text string) *string {
	match := re.FindStringSubmatch(text)
	if len(match) < 2 {
		return nil
	}
	value := match[1]
	return &value
}
