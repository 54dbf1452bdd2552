package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/docuforge/docgen-api/internal/core/domain"
)

type stubAuditRepo struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

func (r *stubAuditRepo) Insert(_ context.Context, event domain.AuditEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *stubAuditRepo) snapshot() []domain.AuditEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.AuditEvent, len(r.events))
	copy(out, r.events)
	return out
}

func waitForEvents(t *testing.T, repo *stubAuditRepo, n int) []domain.AuditEvent {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case <-deadline:
			events := repo.snapshot()
			t.Fatalf("expected %d events, got %d", n, len(events))
			return nil
		default:
		}
		if events := repo.snapshot(); len(events) >= n {
			return events
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestDispatcher_PreservesPerIdentityOrder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo := &stubAuditRepo{}
	d := NewDispatcher(4, repo, zerolog.Nop())
	d.Start(ctx)

	reasons := []string{"first", "second", "third", "fourth"}
	for _, reason := range reasons {
		d.Record(domain.AuditEvent{
			Kind:    domain.AuditLogin,
			Email:   "alice@example.com",
			Outcome: domain.AuditRejected,
			Reason:  reason,
			At:      time.Now().UTC(),
		})
	}

	events := waitForEvents(t, repo, len(reasons))
	for i, want := range reasons {
		if events[i].Reason != want {
			t.Fatalf("event %d out of order: got %q, want %q", i, events[i].Reason, want)
		}
	}
}

func TestDispatcher_AssignsEventIDs(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo := &stubAuditRepo{}
	d := NewDispatcher(0, repo, zerolog.Nop())
	d.Start(ctx)

	d.Record(domain.AuditEvent{Kind: domain.AuditLogout, Email: "bob@example.com"})

	events := waitForEvents(t, repo, 1)
	if events[0].ID == "" {
		t.Fatalf("dispatcher must assign an event id")
	}
}

func TestDispatcher_ShardIsDeterministicPerEmail(t *testing.T) {
	d := NewDispatcher(8, &stubAuditRepo{}, zerolog.Nop())

	first := d.shardIndex("carol@example.com")
	for i := 0; i < 10; i++ {
		if got := d.shardIndex("carol@example.com"); got != first {
			t.Fatalf("shard index not deterministic: %d vs %d", got, first)
		}
	}
}
