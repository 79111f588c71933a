// Package aggregate rolls indicator records up one level of the
// plant -> company -> national hierarchy.
package aggregate

import (
	"errors"
	"math"
	"sort"

	"github.com/ougirez/carbon4c/internal/domain"
	"github.com/shopspring/decimal"
)

type member struct {
	entityID string
	value    decimal.Decimal
}

// Aggregate produces the level above from for every (parent, indicator,
// year, month) present in records.
//
// Sums and weighted averages are computed in decimal arithmetic, so the
// result does not depend on input order. Any failure aborts the whole hop;
// no partial output is returned.
func Aggregate(records []domain.IndicatorRecord, from domain.Level, parents Hierarchy, policies PolicyTable) ([]domain.IndicatorRecord, error) {
	out, _, err := aggregate(records, nil, from, parents, policies)
	return out, err
}

// aggregate runs one hop. When exact is non-nil, exact[i] replaces the float
// value of records[i], and the unrounded outputs are returned alongside the
// records so the next hop does not round twice.
func aggregate(records []domain.IndicatorRecord, exact []decimal.Decimal, from domain.Level, parents Hierarchy, policies PolicyTable) ([]domain.IndicatorRecord, []decimal.Decimal, error) {
	to, ok := from.Next()
	if !ok {
		return nil, nil, &LevelError{Want: from, Got: from}
	}

	var errs []error
	values := make(map[domain.RecordKey]decimal.Decimal, len(records))
	groups := make(map[domain.RecordKey][]member)

	for i, rec := range records {
		key := rec.Key()

		if rec.Level != from {
			errs = append(errs, &LevelError{Want: from, Got: rec.Level, Key: key})
			continue
		}
		if math.IsNaN(rec.Value) || math.IsInf(rec.Value, 0) {
			errs = append(errs, &RecordError{Key: key, Cause: ErrNonFiniteValue})
			continue
		}
		if _, dup := values[key]; dup {
			errs = append(errs, &DuplicateKeyError{Level: from, Key: key})
			continue
		}

		value := decimal.NewFromFloat(rec.Value)
		if exact != nil {
			value = exact[i]
		}
		values[key] = value

		parent, ok := parents.Parent(rec.EntityID)
		if !ok {
			errs = append(errs, &RecordError{Key: key, Cause: ErrUnknownParent})
			continue
		}

		groupKey := domain.RecordKey{EntityID: parent, IndicatorCode: rec.IndicatorCode, Year: rec.Year, Month: rec.Month}
		groups[groupKey] = append(groups[groupKey], member{entityID: rec.EntityID, value: value})
	}

	keys := make([]domain.RecordKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })

	missing := make(map[string]struct{})
	out := make([]domain.IndicatorRecord, 0, len(keys))
	outExact := make([]decimal.Decimal, 0, len(keys))
	for _, key := range keys {
		policy, err := policies.Lookup(key.IndicatorCode)
		if err != nil {
			if _, reported := missing[key.IndicatorCode]; !reported {
				missing[key.IndicatorCode] = struct{}{}
				errs = append(errs, err)
			}
			continue
		}

		var (
			value        decimal.Decimal
			contributors int
		)
		switch policy.Kind {
		case domain.PolicySum:
			value, contributors = sum(groups[key])
		case domain.PolicyWeightedAverage:
			value, contributors, err = weightedAverage(groups[key], key, policy.WeightCode, values)
			if err != nil {
				errs = append(errs, err)
				continue
			}
		default:
			errs = append(errs, &MissingPolicyError{IndicatorCode: key.IndicatorCode})
			continue
		}

		out = append(out, domain.IndicatorRecord{
			Level:         to,
			EntityID:      key.EntityID,
			IndicatorCode: key.IndicatorCode,
			Year:          key.Year,
			Month:         key.Month,
			Value:         value.InexactFloat64(),
			Contributors:  contributors,
			Source:        "aggregate:" + string(from),
		})
		outExact = append(outExact, value)
	}

	if len(errs) > 0 {
		return nil, nil, errors.Join(errs...)
	}

	return out, outExact, nil
}

func sum(members []member) (decimal.Decimal, int) {
	total := decimal.Zero
	for _, m := range members {
		total = total.Add(m.value)
	}
	return total, len(members)
}

// weightedAverage skips members without a weight record for the same period.
func weightedAverage(members []member, key domain.RecordKey, weightCode string, values map[domain.RecordKey]decimal.Decimal) (decimal.Decimal, int, error) {
	numerator, denominator := decimal.Zero, decimal.Zero
	contributors := 0

	for _, m := range members {
		weight, ok := values[domain.RecordKey{EntityID: m.entityID, IndicatorCode: weightCode, Year: key.Year, Month: key.Month}]
		if !ok {
			continue
		}
		numerator = numerator.Add(m.value.Mul(weight))
		denominator = denominator.Add(weight)
		contributors++
	}

	if denominator.IsZero() {
		return decimal.Zero, 0, &UndefinedAggregateError{Key: key, WeightCode: weightCode}
	}

	return numerator.Div(denominator), contributors, nil
}

// Rollup runs plant -> company and company -> national in sequence. The
// national hop consumes the company totals before float conversion, so a
// SUM rolled up through companies equals the direct plant total.
func Rollup(plants []domain.IndicatorRecord, plantParents Hierarchy, policies PolicyTable) (companies, national []domain.IndicatorRecord, err error) {
	companies, exact, err := aggregate(plants, nil, domain.LevelPlant, plantParents, policies)
	if err != nil {
		return nil, nil, err
	}

	national, _, err = aggregate(companies, exact, domain.LevelCompany, National, policies)
	if err != nil {
		return nil, nil, err
	}

	return companies, national, nil
}
