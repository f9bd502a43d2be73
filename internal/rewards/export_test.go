package rewards

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExport_RoundTrip(t *testing.T) {
	ctx := context.Background()
	ledger := &memLedger{}
	svc := newTestService(t, ledger, 1)

	require.True(t, svc.Claim(ctx, "u1", KindDailyLogin, ClaimContext{Now: now}).Success)
	require.True(t, svc.Claim(ctx, "u1", KindReferral, ClaimContext{EventRef: "friend", Now: now}).Success)
	require.True(t, svc.Claim(ctx, "u2", KindDailyLogin, ClaimContext{Now: now}).Success)

	exp, err := svc.Export(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, ExportFormatVersion, exp.Version)
	assert.Len(t, exp.Claims, 2)
	assert.Equal(t, exp.Summary.TotalLifetime, exp.Totals.Diamonds)

	raw, err := exp.Marshal()
	require.NoError(t, err)
	back, err := ParseExport(raw)
	require.NoError(t, err)
	assert.Equal(t, exp.Totals, back.Totals)
	assert.Len(t, back.Claims, 2)
}

func TestExport_Empty(t *testing.T) {
	svc := newTestService(t, &memLedger{}, 0)
	exp, err := svc.Export(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, exp.Claims)
	assert.Zero(t, exp.Totals)
}

func TestParseExport_Rejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"bad json", `{`},
		{"not semver", `{"version":"latest","user_id":"u"}`},
		{"other major", `{"version":"v2.0.0","user_id":"u"}`},
		{"newer minor", `{"version":"v1.9.0","user_id":"u"}`},
		{"totals mismatch", `{"version":"v1.0.0","user_id":"u","totals":{"diamonds":5,"xp":0},"claims":[]}`},
		{"foreign claim", `{"version":"v1.0.0","user_id":"u","claims":[{"claim_id":"c","user_id":"x","currency":"xp","amount":0}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseExport([]byte(tt.raw))
			assert.Error(t, err)
		})
	}
}

func TestParseExport_AcceptsOlderMinor(t *testing.T) {
	_, err := ParseExport([]byte(`{"version":"1.0","user_id":"u","claims":[]}`))
	assert.NoError(t, err)
}
