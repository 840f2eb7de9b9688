package game

import (
	"fmt"
	"math/rand"
	"testing"
	"time"
)

type stubContent struct{}

func (stubContent) Draw(mode Mode) (string, []string, int) {
	switch mode {
	case ModeTrivia, ModeTriviaBuzzer, ModeTeamTrivia, ModeRelayTrivia, ModeWagerTrivia:
		return "What is 2+2?", []string{"3", "4", "5", "6"}, 1
	case ModeWouldYouRather:
		return "Would you rather...", []string{"Fly", "Teleport"}, -1
	case ModeEstimation:
		return "How many keys on a piano?", nil, 15
	case ModeSpyfall:
		return "Casino", []string{"Dealer", "Guard", "Bartender"}, -1
	default:
		return "Prompt", nil, -1
	}
}

func (stubContent) TriviaPool(n int) []TriviaQuestion {
	pool := make([]TriviaQuestion, n)
	for i := range pool {
		pool[i] = TriviaQuestion{
			Question:     fmt.Sprintf("Question %d", i),
			Options:      []string{"a", "b", "c", "d"},
			CorrectIndex: i % 4,
		}
	}
	return pool
}

func (stubContent) JeopardyBoard() []JeopardyCategory {
	board := make([]JeopardyCategory, 4)
	for c := range board {
		board[c].Name = fmt.Sprintf("Category %d", c)
		for row := 0; row < 3; row++ {
			board[c].Clues = append(board[c].Clues, JeopardyClue{
				Value:    (row + 1) * 100,
				Question: fmt.Sprintf("Clue %d-%d", c, row),
				Answer:   fmt.Sprintf("Answer %d-%d", c, row),
			})
		}
	}
	return board
}

func (stubContent) SpyRoles(string) []string { return []string{"Dealer", "Guard"} }

type allowAll struct{}

func (allowAll) Allowed(string) error { return nil }

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestSession(t *testing.T, tweak func(*Settings)) (*Session, *testClock) {
	t.Helper()
	clock := &testClock{now: time.Date(2026, 8, 24, 20, 0, 0, 0, time.UTC)}
	settings := DefaultSettings()
	settings.RequireLobbyCode = false
	if tweak != nil {
		tweak(&settings)
	}
	s := New(stubContent{}, allowAll{},
		WithSettings(settings),
		WithClock(clock.Now),
		WithRand(rand.New(rand.NewSource(1))),
	)
	return s, clock
}

func mustJoin(t *testing.T, s *Session, pid, name string) {
	t.Helper()
	if _, err := s.Join(pid, name, "", ConflictAsk); err != nil {
		t.Fatalf("join %s: %v", name, err)
	}
}

func mustStart(t *testing.T, s *Session, mode Mode) {
	t.Helper()
	if err := s.StartRound(mode); err != nil {
		t.Fatalf("start %s: %v", mode, err)
	}
}

func intPtr(v int) *int { return &v }

func pid(i int) string { return fmt.Sprintf("p%d", i) }
