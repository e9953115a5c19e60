package usecase

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/oticapro/caixa/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// Compare derives the month-over-month variance between two chronologically
// adjacent month buckets, per metric and per category. Category lists cover
// the union of categories present in either month, sorted descending by
// current value (alphabetical on ties).
func Compare(current, previous domain.Bucket) domain.VarianceReport {
	return domain.VarianceReport{
		CurrentLabel:      current.Label,
		PreviousLabel:     previous.Label,
		Inflow:            metricVariance(current.InflowTotal, previous.InflowTotal),
		Outflow:           metricVariance(current.OutflowTotal, previous.OutflowTotal),
		Net:               metricVariance(current.NetBalance, previous.NetBalance),
		InflowCategories:  categoryVariances(current.CategoryBreakdown[domain.KindInflow], previous.CategoryBreakdown[domain.KindInflow]),
		OutflowCategories: categoryVariances(current.CategoryBreakdown[domain.KindOutflow], previous.CategoryBreakdown[domain.KindOutflow]),
	}
}

// ChangePercent computes (current-previous)/previous*100 with the product's
// zero-denominator convention: a zero previous value yields 100 when current
// is positive and 0 otherwise. Report consumers depend on these literal
// values; do not "fix" this into an undefined result.
func ChangePercent(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		if current.GreaterThan(decimal.Zero) {
			return hundred
		}
		return decimal.Zero
	}
	return current.Sub(previous).Div(previous).Mul(hundred)
}

func metricVariance(current, previous decimal.Decimal) domain.MetricVariance {
	return domain.MetricVariance{
		Current:       current,
		Previous:      previous,
		ChangePercent: ChangePercent(current, previous),
	}
}

func categoryVariances(current, previous map[string]decimal.Decimal) []domain.CategoryVariance {
	union := make(map[string]struct{}, len(current)+len(previous))
	for c := range current {
		union[c] = struct{}{}
	}
	for c := range previous {
		union[c] = struct{}{}
	}

	categories := make([]string, 0, len(union))
	for c := range union {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	result := make([]domain.CategoryVariance, 0, len(categories))
	for _, c := range categories {
		cur := current[c]
		prev := previous[c]
		result = append(result, domain.CategoryVariance{
			Category:      c,
			Current:       cur,
			Previous:      prev,
			ChangePercent: ChangePercent(cur, prev),
		})
	}

	// Alphabetical pre-order above makes ties deterministic.
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Current.GreaterThan(result[j].Current)
	})

	return result
}
