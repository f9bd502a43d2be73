package rewards

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

// ExportFormatVersion is the version stamped on ledger exports.
const ExportFormatVersion = "v1.0.0"

var (
	// ErrUnsupportedExport is returned for exports whose version this build
	// cannot read.
	ErrUnsupportedExport = errors.New("unsupported ledger export version")

	// ErrExportMismatch is returned when an export's totals disagree with
	// its claim rows.
	ErrExportMismatch = errors.New("ledger export totals do not match claims")
)

// Export is a portable snapshot of a user's ledger.
type Export struct {
	Version    string        `json:"version"`
	UserID     string        `json:"user_id"`
	ExportedAt time.Time     `json:"exported_at"`
	Totals     Totals        `json:"totals"`
	Summary    Summary       `json:"summary"`
	Claims     []ClaimRecord `json:"claims"`
}

// Export snapshots every claim of userID with its derived totals.
func (s *Service) Export(ctx context.Context, userID string) (*Export, error) {
	now := s.now()
	claims, err := s.ledger.ClaimsBetween(ctx, userID, time.Time{}, time.Time{})
	if err != nil {
		return nil, unavailable("read ledger", err)
	}
	sum, err := s.Summary(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	if claims == nil {
		claims = []ClaimRecord{}
	}
	return &Export{
		Version:    ExportFormatVersion,
		UserID:     userID,
		ExportedAt: now.UTC(),
		Totals:     sumClaims(claims),
		Summary:    sum,
		Claims:     claims,
	}, nil
}

// Marshal encodes the export as indented JSON.
func (e *Export) Marshal() ([]byte, error) {
	return json.MarshalIndent(e, "", "  ")
}

// Verify checks that the stated totals equal the sum of the claim rows
// and that every claim belongs to the exported user.
func (e *Export) Verify() error {
	for _, c := range e.Claims {
		if c.UserID != e.UserID {
			return fmt.Errorf("%w: claim %s belongs to %s", ErrExportMismatch, c.ClaimID, c.UserID)
		}
	}
	if got := sumClaims(e.Claims); got != e.Totals {
		return fmt.Errorf("%w: claims sum to %+v, totals say %+v", ErrExportMismatch, got, e.Totals)
	}
	return nil
}

// ParseExport decodes an export and rejects versions with a different
// major version or newer than this build.
func ParseExport(raw []byte) (*Export, error) {
	var e Export
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, fmt.Errorf("decode ledger export: %w", err)
	}
	v := e.Version
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	cv := semver.Canonical(v)
	switch {
	case cv == "":
		return nil, fmt.Errorf("%w: %q is not a semantic version", ErrUnsupportedExport, e.Version)
	case semver.Major(cv) != semver.Major(ExportFormatVersion):
		return nil, fmt.Errorf("%w: %s (want %s.x)", ErrUnsupportedExport, cv, semver.Major(ExportFormatVersion))
	case semver.Compare(cv, ExportFormatVersion) > 0:
		return nil, fmt.Errorf("%w: %s is newer than %s", ErrUnsupportedExport, cv, ExportFormatVersion)
	}
	return &e, e.Verify()
}

func sumClaims(claims []ClaimRecord) Totals {
	var t Totals
	for _, c := range claims {
		switch c.Currency {
		case CurrencyDiamonds:
			t.Diamonds += c.Amount
		case CurrencyXP:
			t.XP += c.Amount
		}
	}
	return t
}
