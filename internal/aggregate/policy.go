package aggregate

import (
	"fmt"

	"github.com/ougirez/carbon4c/internal/domain"
)

type Policy struct {
	Kind       domain.PolicyKind
	WeightCode string
}

// PolicyTable declares, per indicator code, how values combine across
// sub-entities.
type PolicyTable map[string]Policy

// NewPolicyTable builds a table from indicator metadata rows.
func NewPolicyTable(indicators []domain.Indicator) (PolicyTable, error) {
	table := make(PolicyTable, len(indicators))
	for _, ind := range indicators {
		switch ind.Policy {
		case domain.PolicySum:
			table[ind.Code] = Policy{Kind: domain.PolicySum}
		case domain.PolicyWeightedAverage:
			if ind.WeightCode == "" {
				return nil, fmt.Errorf("%w: %s is a weighted average without weight indicator", ErrInvalidPolicy, ind.Code)
			}
			table[ind.Code] = Policy{Kind: domain.PolicyWeightedAverage, WeightCode: ind.WeightCode}
		default:
			return nil, fmt.Errorf("%w: %s has policy %q", ErrInvalidPolicy, ind.Code, ind.Policy)
		}
	}
	return table, nil
}

func (t PolicyTable) Lookup(code string) (Policy, error) {
	p, ok := t[code]
	if !ok {
		return Policy{}, &MissingPolicyError{IndicatorCode: code}
	}
	return p, nil
}
