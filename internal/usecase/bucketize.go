package usecase

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/oticapro/caixa/internal/domain"
)

// Bucketize partitions entries into day, week or month buckets over the
// requested period and threads the running cumulative balance through the
// chronologically ordered result.
//
// Day granularity is dense: every calendar day between periodStart and
// periodEnd appears, empty days included, so the cumulative line stays
// continuous. Week (Sunday-start) and month granularities are sparse: only
// periods containing at least one entry materialize. Month buckets also carry
// a per-category breakdown.
//
// A period with periodEnd before periodStart yields an empty slice. This is
// a legitimate empty result, not an error.
//
// All totals accumulate in decimal; rounding to display precision is the
// presentation layer's job.
func Bucketize(entries []*domain.LedgerEntry, periodStart, periodEnd time.Time, granularity domain.Granularity, previousBalance decimal.Decimal) []domain.Bucket {
	start := domain.DayOf(periodStart)
	end := domain.DayOf(periodEnd)

	if end.Before(start) {
		return []domain.Bucket{}
	}

	inRange := make([]*domain.LedgerEntry, 0, len(entries))
	for _, e := range entries {
		day := e.Day()
		if day.Before(start) || day.After(end) {
			continue
		}
		inRange = append(inRange, e)
	}

	var buckets []domain.Bucket
	switch granularity {
	case domain.GranularityWeek:
		buckets = weekBuckets(inRange)
	case domain.GranularityMonth:
		buckets = monthBuckets(inRange)
	default:
		buckets = dayBuckets(inRange, start, end)
	}

	running := previousBalance
	for i := range buckets {
		running = running.Add(buckets[i].NetBalance)
		buckets[i].CumulativeBalance = running
	}

	return buckets
}

// dayBuckets materializes one bucket per calendar day, empty days included.
func dayBuckets(entries []*domain.LedgerEntry, start, end time.Time) []domain.Bucket {
	index := make(map[time.Time]int)
	buckets := make([]domain.Bucket, 0, int(end.Sub(start)/(24*time.Hour))+1)

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		index[day] = len(buckets)
		buckets = append(buckets, domain.NewBucket(day.Format("2006-01-02"), day, domain.EndOfDay(day)))
	}

	for _, e := range entries {
		buckets[index[e.Day()]].Add(e)
	}

	return buckets
}

// weekBuckets materializes only weeks that contain entries.
func weekBuckets(entries []*domain.LedgerEntry) []domain.Bucket {
	byWeek := make(map[time.Time]*domain.Bucket)
	for _, e := range entries {
		weekStart := domain.StartOfWeek(e.OccurredAt)
		b, ok := byWeek[weekStart]
		if !ok {
			weekEnd := weekStart.AddDate(0, 0, 6)
			label := weekStart.Format("2006-01-02") + " to " + weekEnd.Format("2006-01-02")
			nb := domain.NewBucket(label, weekStart, domain.EndOfDay(weekEnd))
			b = &nb
			byWeek[weekStart] = b
		}
		b.Add(e)
	}
	return sortBuckets(byWeek)
}

// monthBuckets materializes only months that contain entries and fills the
// per-category breakdown alongside the totals.
func monthBuckets(entries []*domain.LedgerEntry) []domain.Bucket {
	byMonth := make(map[time.Time]*domain.Bucket)
	for _, e := range entries {
		monthStart := domain.StartOfMonth(e.OccurredAt)
		b, ok := byMonth[monthStart]
		if !ok {
			monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Nanosecond)
			nb := domain.NewBucket(monthStart.Format("2006-01"), monthStart, monthEnd)
			b = &nb
			byMonth[monthStart] = b
		}
		b.Add(e)
		b.AddCategory(e)
	}
	return sortBuckets(byMonth)
}

func sortBuckets(byKey map[time.Time]*domain.Bucket) []domain.Bucket {
	keys := make([]time.Time, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })

	buckets := make([]domain.Bucket, 0, len(keys))
	for _, k := range keys {
		buckets = append(buckets, *byKey[k])
	}
	return buckets
}
