package drill

import (
	"cmp"
	"slices"
)

// Leak detection windows and cutoffs.
const (
	leakHistoryWindow  = 50
	leakCategoryWindow = 10
	leakMinAttempts    = 5
	leakMinMisses      = 3
	leakWarningRate    = 0.3
	leakCriticalRate   = 0.5
)

// LeakSeverity grades a recurring mistake pattern.
type LeakSeverity string

const (
	LeakWarning  LeakSeverity = "warning"
	LeakCritical LeakSeverity = "critical"
)

// Leak is a scenario category the player keeps getting wrong.
type Leak struct {
	Category string       `json:"category"`
	Attempts int          `json:"attempts"`
	Misses   int          `json:"misses"`
	MissRate float64      `json:"miss_rate"`
	Severity LeakSeverity `json:"severity"`
}

// DetectLeaks looks at the most recent results and flags categories with
// at least five attempts whose last ten answers contain three or more
// misses at a 30% miss rate or worse. A 50% miss rate is critical.
// Results are in chronological order.
func DetectLeaks(results []Result) []Leak {
	if len(results) > leakHistoryWindow {
		results = results[len(results)-leakHistoryWindow:]
	}

	byCategory := make(map[string][]Result)
	for _, r := range results {
		cat := r.Category
		if cat == "" {
			cat = "general"
		}
		byCategory[cat] = append(byCategory[cat], r)
	}

	var leaks []Leak
	for cat, rs := range byCategory {
		if len(rs) < leakMinAttempts {
			continue
		}
		if len(rs) > leakCategoryWindow {
			rs = rs[len(rs)-leakCategoryWindow:]
		}
		misses := 0
		for _, r := range rs {
			if !r.Correct {
				misses++
			}
		}
		rate := float64(misses) / float64(len(rs))
		if misses < leakMinMisses || rate < leakWarningRate {
			continue
		}
		sev := LeakWarning
		if rate >= leakCriticalRate {
			sev = LeakCritical
		}
		leaks = append(leaks, Leak{
			Category: cat,
			Attempts: len(rs),
			Misses:   misses,
			MissRate: rate,
			Severity: sev,
		})
	}

	slices.SortFunc(leaks, func(a, b Leak) int {
		if c := cmp.Compare(b.MissRate, a.MissRate); c != 0 {
			return c
		}
		return cmp.Compare(a.Category, b.Category)
	})
	return leaks
}
