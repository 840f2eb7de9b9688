package game

import (
	"errors"
	"testing"
)

func TestSubmitDuplicateRejected(t *testing.T) {
	s, _ := newTestSession(t, nil)
	mustJoin(t, s, "p1", "Alice")
	mustJoin(t, s, "p2", "Bob")
	mustStart(t, s, ModeTrivia)

	if err := s.Submit(1, "p1", Payload{Choice: intPtr(1)}); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	err := s.Submit(1, "p1", Payload{Choice: intPtr(2)})
	if !errors.Is(err, ErrDuplicateSubmission) {
		t.Fatalf("want duplicate rejection, got %v", err)
	}
	// The original choice survives.
	if got := s.submissions["p1"].Choice; got != 1 {
		t.Fatalf("recorded choice = %d, want 1", got)
	}
}

func TestSubmitStaleRound(t *testing.T) {
	s, _ := newTestSession(t, nil)
	mustJoin(t, s, "p1", "Alice")
	mustStart(t, s, ModeTrivia)

	err := s.Submit(0, "p1", Payload{Choice: intPtr(1)})
	if !errors.Is(err, ErrStaleRound) {
		t.Fatalf("want stale round, got %v", err)
	}
}

func TestSubmitOutsideRound(t *testing.T) {
	s, _ := newTestSession(t, nil)
	mustJoin(t, s, "p1", "Alice")

	err := s.Submit(0, "p1", Payload{Choice: intPtr(1)})
	if !errors.Is(err, ErrInvalidPhase) {
		t.Fatalf("want invalid phase, got %v", err)
	}
}

func TestSubmitWhileLocked(t *testing.T) {
	s, _ := newTestSession(t, nil)
	mustJoin(t, s, "p1", "Alice")
	mustStart(t, s, ModeTrivia)
	s.mu.Lock()
	s.submissionsLocked = true
	s.mu.Unlock()

	err := s.Submit(1, "p1", Payload{Choice: intPtr(1)})
	if !errors.Is(err, ErrSubmissionsLocked) {
		t.Fatalf("want submissions locked, got %v", err)
	}
}

func TestSubmitUnknownPlayer(t *testing.T) {
	s, _ := newTestSession(t, nil)
	mustJoin(t, s, "p1", "Alice")
	mustStart(t, s, ModeTrivia)

	err := s.Submit(1, "ghost", Payload{Choice: intPtr(1)})
	if !errors.Is(err, ErrUnknownPlayer) {
		t.Fatalf("want unknown player, got %v", err)
	}
}

func TestSubmitInvalidPayload(t *testing.T) {
	s, _ := newTestSession(t, nil)
	mustJoin(t, s, "p1", "Alice")
	mustStart(t, s, ModeTrivia)

	for _, p := range []Payload{{}, {Choice: intPtr(-1)}, {Choice: intPtr(4)}} {
		if err := s.Submit(1, "p1", p); !errors.Is(err, ErrInvalidPayload) {
			t.Fatalf("payload %+v: want invalid payload, got %v", p, err)
		}
	}
}

func TestVoteBattleSelfVoteRejected(t *testing.T) {
	s, _ := newTestSession(t, nil)
	mustJoin(t, s, "p1", "Alice")
	mustJoin(t, s, "p2", "Bob")
	mustStart(t, s, ModeVoteBattle)

	if err := s.Submit(1, "p1", Payload{Text: "entry one"}); err != nil {
		t.Fatalf("p1 entry: %v", err)
	}
	if err := s.Submit(1, "p2", Payload{Text: "entry two"}); err != nil {
		t.Fatalf("p2 entry: %v", err)
	}
	if err := s.HostAction("votebattle_start_vote"); err != nil {
		t.Fatalf("start vote: %v", err)
	}

	err := s.Submit(1, "p1", Payload{EntryID: intPtr(1)})
	if !errors.Is(err, ErrInvalidPayload) {
		t.Fatalf("want self-vote rejection, got %v", err)
	}
	if err := s.Submit(1, "p1", Payload{EntryID: intPtr(2)}); err != nil {
		t.Fatalf("vote for other entry: %v", err)
	}
}

func TestVoteBattleOneEntryCanVote(t *testing.T) {
	s, _ := newTestSession(t, nil)
	mustJoin(t, s, "p1", "Alice")
	mustJoin(t, s, "p2", "Bob")
	mustStart(t, s, ModeVoteBattle)

	if err := s.HostAction("votebattle_start_vote"); !errors.Is(err, ErrPreconditionUnmet) {
		t.Fatalf("want precondition rejection with no entries, got %v", err)
	}
	if err := s.Submit(1, "p1", Payload{Text: "solo entry"}); err != nil {
		t.Fatalf("entry: %v", err)
	}
	if err := s.HostAction("votebattle_start_vote"); err != nil {
		t.Fatalf("one entry should open voting: %v", err)
	}
	if err := s.Submit(1, "p2", Payload{EntryID: intPtr(1)}); err != nil {
		t.Fatalf("vote: %v", err)
	}
}

func TestVoteBattleEarlyRevealRejected(t *testing.T) {
	s, _ := newTestSession(t, nil)
	mustJoin(t, s, "p1", "Alice")
	mustStart(t, s, ModeVoteBattle)

	err := s.Reveal()
	if !errors.Is(err, ErrInvalidPhase) {
		t.Fatalf("want invalid phase during submit sub-phase, got %v", err)
	}
}

func TestSpyfallVoteBeforeVotePhaseRejected(t *testing.T) {
	s, _ := newTestSession(t, nil)
	for i, name := range []string{"Alice", "Bob", "Cara"} {
		mustJoin(t, s, pid(i), name)
	}
	mustStart(t, s, ModeSpyfall)

	err := s.Submit(1, "p0", Payload{Target: "p1"})
	if !errors.Is(err, ErrInvalidPhase) {
		t.Fatalf("want invalid phase, got %v", err)
	}
	if err := s.HostAction("spyfall_start_vote"); err != nil {
		t.Fatalf("start vote: %v", err)
	}
	if err := s.Submit(1, "p0", Payload{Target: "p1"}); err != nil {
		t.Fatalf("vote: %v", err)
	}
}
