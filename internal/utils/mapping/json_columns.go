package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/kassemKu/sibai-transactions/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JSONB layouts: rate snapshots are {"<currency id>": {"rate_to_usd": "0.93"}},
// balance maps are {"<currency id>": {"amount": "100.00"}}. Decimals are quoted strings.

type rateEntry struct {
	RateToUSD decimal.Decimal `json:"rate_to_usd"`
}

type amountEntry struct {
	Amount decimal.Decimal `json:"amount"`
}

// EncodeRateSnapshot serialises a rate snapshot. A nil snapshot encodes to nil (SQL NULL).
func EncodeRateSnapshot(s domain.RateSnapshot) ([]byte, error) {
	if s == nil {
		return nil, nil
	}
	doc := make(map[string]rateEntry, len(s))
	for id, rate := range s {
		doc[id] = rateEntry{RateToUSD: rate}
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode rate snapshot: %w", err)
	}
	return b, nil
}

// DecodeRateSnapshot parses a stored rate snapshot. NULL decodes to nil.
func DecodeRateSnapshot(b []byte) (domain.RateSnapshot, error) {
	if len(b) == 0 {
		return nil, nil
	}
	var doc map[string]rateEntry
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode rate snapshot: %w", err)
	}
	s := make(domain.RateSnapshot, len(doc))
	for id, e := range doc {
		s[id] = e.RateToUSD
	}
	return s, nil
}

// EncodeBalanceMap serialises a balance map. A nil map encodes as an empty document.
func EncodeBalanceMap(m domain.BalanceMap) ([]byte, error) {
	doc := make(map[string]amountEntry, len(m))
	for id, amount := range m {
		doc[id] = amountEntry{Amount: amount}
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode balance map: %w", err)
	}
	return b, nil
}

// DecodeBalanceMap parses a stored balance map. NULL decodes to an empty map.
func DecodeBalanceMap(b []byte) (domain.BalanceMap, error) {
	m := domain.BalanceMap{}
	if len(b) == 0 {
		return m, nil
	}
	var doc map[string]amountEntry
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode balance map: %w", err)
	}
	for id, e := range doc {
		m[id] = e.Amount
	}
	return m, nil
}
