package game

import (
	"errors"
	"testing"
)

func TestJoinNameConflictSuffix(t *testing.T) {
	s, _ := newTestSession(t, nil)
	mustJoin(t, s, "p1", "Sam")

	if _, err := s.Join("p2", "Sam", "", ConflictAsk); !errors.Is(err, ErrNameTaken) {
		t.Fatalf("want name taken, got %v", err)
	}
	if _, err := s.Join("p2", "Sam", "", ConflictSuffix); err != nil {
		t.Fatalf("suffix join: %v", err)
	}
	if got := s.PlayerName("p2"); got != "Sam (2)" {
		t.Fatalf("name = %q, want %q", got, "Sam (2)")
	}
}

func TestJoinWithoutContentPolicy(t *testing.T) {
	settings := DefaultSettings()
	settings.RequireLobbyCode = false
	s := New(stubContent{}, nil, WithSettings(settings))
	if _, err := s.Join("p1", "Sam", "", ConflictAsk); err != nil {
		t.Fatalf("join without a policy: %v", err)
	}
}

func TestJoinRejoinKeepsIdentity(t *testing.T) {
	s, _ := newTestSession(t, nil)
	mustJoin(t, s, "p1", "Sam")
	s.scores["p1"] = 3

	if _, err := s.Join("p1", "Sam", "", ConflictAsk); err != nil {
		t.Fatalf("rejoin: %v", err)
	}
	if s.scores["p1"] != 3 {
		t.Fatalf("rejoin reset score to %d", s.scores["p1"])
	}
	if len(s.players) != 1 {
		t.Fatalf("players = %d, want 1", len(s.players))
	}
}

func TestJoinLobbyCode(t *testing.T) {
	s, _ := newTestSession(t, func(set *Settings) { set.RequireLobbyCode = true })
	s.lobbyCode = "AB12"

	if _, err := s.Join("p1", "Sam", "wrong", ConflictAsk); !errors.Is(err, ErrBadLobbyCode) {
		t.Fatalf("want bad lobby code, got %v", err)
	}
	// Case and separators are forgiven.
	if _, err := s.Join("p1", "Sam", " ab-12 ", ConflictAsk); err != nil {
		t.Fatalf("normalized code: %v", err)
	}
}

func TestJoinLockedLobby(t *testing.T) {
	s, _ := newTestSession(t, func(set *Settings) { set.LobbyLocked = true })
	if _, err := s.Join("p1", "Sam", "", ConflictAsk); !errors.Is(err, ErrLobbyLocked) {
		t.Fatalf("want lobby locked, got %v", err)
	}
}

func TestRenameBlocked(t *testing.T) {
	s, _ := newTestSession(t, func(set *Settings) { set.AllowRenames = false })
	mustJoin(t, s, "p1", "Sam")
	if _, err := s.Join("p1", "Samuel", "", ConflictAsk); !errors.Is(err, ErrRenameBlocked) {
		t.Fatalf("want rename blocked, got %v", err)
	}
}

func TestKickScrubsRoundState(t *testing.T) {
	s, _ := newTestSession(t, nil)
	for i, name := range []string{"Alice", "Bob", "Cara"} {
		mustJoin(t, s, pid(i), name)
	}
	mustStart(t, s, ModeVoteBattle)

	if err := s.Submit(1, "p0", Payload{Text: "mine"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Submit(1, "p1", Payload{Text: "theirs"}); err != nil {
		t.Fatal(err)
	}
	if err := s.HostAction("votebattle_start_vote"); err != nil {
		t.Fatal(err)
	}
	if err := s.Submit(1, "p2", Payload{EntryID: intPtr(1)}); err != nil {
		t.Fatal(err)
	}

	// Kicking p0 removes their entry and the orphaned vote for it.
	if err := s.Kick("p0"); err != nil {
		t.Fatal(err)
	}
	if len(s.votebattle.Entries) != 1 || s.votebattle.Entries[0].PID != "p1" {
		t.Fatalf("entries after kick: %+v", s.votebattle.Entries)
	}
	if _, ok := s.votebattle.Votes["p2"]; ok {
		t.Fatal("orphaned vote survived the kick")
	}
	if _, ok := s.players["p0"]; ok {
		t.Fatal("player still present")
	}
}

func TestReclaimApproveTransfersIdentity(t *testing.T) {
	s, _ := newTestSession(t, nil)
	mustJoin(t, s, "old", "Sam")
	s.scores["old"] = 5

	if _, err := s.Join("new", "Sam", "", ConflictReclaim); err != nil {
		t.Fatalf("reclaim join: %v", err)
	}
	reqs := s.ReclaimRequests()
	if len(reqs) != 1 {
		t.Fatalf("reclaims = %d, want 1", len(reqs))
	}
	if err := s.ApproveReclaim(reqs[0].RequestID); err != nil {
		t.Fatal(err)
	}

	if _, ok := s.players["old"]; ok {
		t.Fatal("old pid still present")
	}
	if got := s.PlayerName("new"); got != "Sam" {
		t.Fatalf("name = %q, want Sam", got)
	}
	if s.scores["new"] != 5 {
		t.Fatalf("score not transferred: %d", s.scores["new"])
	}
	if notice := s.TakeReclaimNotice("new"); notice == "" {
		t.Fatal("no reclaim notice")
	}
	// The notice is one-shot.
	if notice := s.TakeReclaimNotice("new"); notice != "" {
		t.Fatalf("notice repeated: %q", notice)
	}
}

func TestReclaimDenyJoinsSuffixed(t *testing.T) {
	s, _ := newTestSession(t, nil)
	mustJoin(t, s, "old", "Sam")

	if _, err := s.Join("new", "Sam", "", ConflictReclaim); err != nil {
		t.Fatal(err)
	}
	reqs := s.ReclaimRequests()
	if err := s.DenyReclaim(reqs[0].RequestID); err != nil {
		t.Fatal(err)
	}
	if got := s.PlayerName("new"); got != "Sam (2)" {
		t.Fatalf("name = %q, want Sam (2)", got)
	}
	if got := s.PlayerName("old"); got != "Sam" {
		t.Fatalf("holder renamed to %q", got)
	}
}

func TestStartRoundPreconditions(t *testing.T) {
	s, _ := newTestSession(t, nil)

	if err := s.StartRound(ModeTrivia); !errors.Is(err, ErrPreconditionUnmet) {
		t.Fatalf("empty lobby: want precondition unmet, got %v", err)
	}

	for i := 0; i < 3; i++ {
		mustJoin(t, s, pid(i), "Player"+string(rune('A'+i)))
	}
	if err := s.StartRound(ModeMafia); !errors.Is(err, ErrPreconditionUnmet) {
		t.Fatalf("mafia with 3 players: want precondition unmet, got %v", err)
	}
	if err := s.StartRound(ModeTeamTrivia); !errors.Is(err, ErrPreconditionUnmet) {
		t.Fatalf("team mode without teams: want precondition unmet, got %v", err)
	}
}

func TestModeChangeBlockedMidRound(t *testing.T) {
	s, _ := newTestSession(t, nil)
	mustJoin(t, s, "p1", "Alice")
	mustStart(t, s, ModeTrivia)

	if err := s.SetMode(ModeQuickDraw); !errors.Is(err, ErrInvalidPhase) {
		t.Fatalf("want invalid phase, got %v", err)
	}
}

func TestNextRoundOnlyFromRevealed(t *testing.T) {
	s, _ := newTestSession(t, nil)
	mustJoin(t, s, "p1", "Alice")

	if err := s.NextRound(); !errors.Is(err, ErrInvalidPhase) {
		t.Fatalf("want invalid phase from lobby, got %v", err)
	}
	mustStart(t, s, ModeTrivia)
	if err := s.NextRound(); !errors.Is(err, ErrInvalidPhase) {
		t.Fatalf("want invalid phase mid-round, got %v", err)
	}
	if err := s.Reveal(); err != nil {
		t.Fatal(err)
	}
	if err := s.NextRound(); err != nil {
		t.Fatalf("next round after reveal: %v", err)
	}
	if s.roundID != 2 {
		t.Fatalf("round id = %d, want 2", s.roundID)
	}
}

func TestResetScores(t *testing.T) {
	s, _ := newTestSession(t, nil)
	mustJoin(t, s, "p1", "Alice")
	s.scores["p1"] = 7

	s.ResetScores()
	if s.scores["p1"] != 0 {
		t.Fatalf("score = %d after reset", s.scores["p1"])
	}
	if snap := s.Snapshot(); snap.Phase != PhaseLobby {
		t.Fatalf("phase = %s, want lobby", snap.Phase)
	}
}

func TestSnapshotHidesSecrets(t *testing.T) {
	s, _ := newTestSession(t, nil)
	for i, name := range []string{"Alice", "Bob", "Cara"} {
		mustJoin(t, s, pid(i), name)
	}
	mustStart(t, s, ModeSpyfall)

	snap := s.Snapshot()
	if snap.Prompt == "Casino" {
		t.Fatal("participant snapshot leaks the location")
	}
	host := s.HostSnapshot()
	if host.SpyLocation != "Casino" || host.SpyPID == "" {
		t.Fatalf("host snapshot missing secrets: %+v", host)
	}
}

func TestTeamAssignmentBalances(t *testing.T) {
	s, _ := newTestSession(t, nil)
	s.SetTeams(true, 2, nil)
	for i := 0; i < 6; i++ {
		mustJoin(t, s, pid(i), "Player"+string(rune('A'+i)))
	}
	counts := map[int]int{}
	for _, team := range s.teams.ByPlayer {
		counts[team]++
	}
	if counts[1] != 3 || counts[2] != 3 {
		t.Fatalf("unbalanced teams: %v", counts)
	}
}
