package llm

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/abhisek/drillz/internal/store"
)

type recordingRepo struct {
	mu     sync.Mutex
	llm    []store.LLMRequestEventData
	failed bool
}

func (r *recordingRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failed {
		return errors.New("disk full")
	}
	r.llm = append(r.llm, data)
	return nil
}

func (r *recordingRepo) AppendSessionEvent(context.Context, store.SessionEventData) error {
	return nil
}

func TestLoggingProvider_RecordsEvents(t *testing.T) {
	repo := &recordingRepo{}
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{}`), Usage: Usage{InputTokens: 12, OutputTokens: 7}},
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
	)
	p := WithLogging(mock, ProviderMock, repo, nil)
	ctx := WithPurpose(context.Background(), PurposeScenarioGen)

	if _, err := p.Generate(ctx, Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := p.Generate(ctx, Request{}); err == nil {
		t.Fatal("expected error")
	}

	if len(repo.llm) != 2 {
		t.Fatalf("events = %d, want 2", len(repo.llm))
	}
	first, second := repo.llm[0], repo.llm[1]
	if !first.Success || first.InputTokens != 12 || first.OutputTokens != 7 {
		t.Errorf("first event = %+v", first)
	}
	if first.Purpose != PurposeScenarioGen || first.Provider != ProviderMock {
		t.Errorf("first event labels = %q/%q", first.Purpose, first.Provider)
	}
	if second.Success || second.ErrorMessage == "" {
		t.Errorf("second event = %+v, want failure with message", second)
	}
}

func TestLoggingProvider_EventFailureDoesNotFailRequest(t *testing.T) {
	repo := &recordingRepo{failed: true}
	p := WithLogging(NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)}), ProviderMock, repo, nil)

	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPurposeDefault(t *testing.T) {
	if got := PurposeFrom(context.Background()); got != PurposeUnknown {
		t.Fatalf("purpose = %q, want %q", got, PurposeUnknown)
	}
}
