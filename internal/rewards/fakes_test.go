package rewards

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/abhisek/drillz/internal/campaign"
)

var errStoreDown = errors.New("store down")

type memLedger struct {
	mu      sync.Mutex
	rows    []ClaimRecord
	failFor int // fail this many calls before recovering
}

func (l *memLedger) fail() error {
	if l.failFor > 0 {
		l.failFor--
		return errStoreDown
	}
	return nil
}

func (l *memLedger) AppendClaim(_ context.Context, rec ClaimRecord) (bool, *ClaimRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.fail(); err != nil {
		return false, nil, err
	}
	for _, r := range l.rows {
		if r.ClaimID == rec.ClaimID {
			existing := r
			return false, &existing, nil
		}
	}
	l.rows = append(l.rows, rec)
	return true, nil, nil
}

func (l *memLedger) FindClaim(_ context.Context, claimID string) (*ClaimRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.fail(); err != nil {
		return nil, err
	}
	for _, r := range l.rows {
		if r.ClaimID == claimID {
			found := r
			return &found, nil
		}
	}
	return nil, nil
}

func (l *memLedger) ClaimsBetween(_ context.Context, userID string, from, to time.Time) ([]ClaimRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []ClaimRecord
	for _, r := range l.rows {
		if r.UserID == userID && !r.ClaimedAt.Before(from) && (to.IsZero() || r.ClaimedAt.Before(to)) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (l *memLedger) Totals(_ context.Context, userID string) (Totals, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var t Totals
	for _, r := range l.rows {
		if r.UserID != userID {
			continue
		}
		switch r.Currency {
		case CurrencyDiamonds:
			t.Diamonds += r.Amount
		case CurrencyXP:
			t.XP += r.Amount
		}
	}
	return t, nil
}

func (l *memLedger) count(kind Kind) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, r := range l.rows {
		if r.Kind == kind {
			n++
		}
	}
	return n
}

type staticStreak struct {
	days    int
	longest int
}

func (s staticStreak) RollingStreakDays(context.Context, string, time.Time) (int, error) {
	return s.days, nil
}

func (s staticStreak) LongestStreakDays(context.Context, string) (int, error) {
	return max(s.longest, s.days), nil
}

type memProgress struct {
	mu   sync.Mutex
	recs map[string]campaign.LevelProgress
	fail bool
}

func (m *memProgress) ReadProgress(context.Context, string) (map[string]campaign.LevelProgress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return nil, errStoreDown
	}
	out := make(map[string]campaign.LevelProgress, len(m.recs))
	for k, v := range m.recs {
		out[k] = v
	}
	return out, nil
}

func (m *memProgress) WriteProgress(_ context.Context, _ string, levelID string, p campaign.LevelProgress) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errStoreDown
	}
	if m.recs == nil {
		m.recs = make(map[string]campaign.LevelProgress)
	}
	m.recs[levelID] = campaign.MergeProgress(m.recs[levelID], p)
	return nil
}
