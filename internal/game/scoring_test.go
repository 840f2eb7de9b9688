package game

import (
	"reflect"
	"testing"
)

func TestEstimationTwoWinnersOnTie(t *testing.T) {
	s, _ := newTestSession(t, nil)
	for i, name := range []string{"Alice", "Bob", "Cara", "Dan"} {
		mustJoin(t, s, pid(i), name)
	}
	mustStart(t, s, ModeEstimation) // stub target is 15

	for i, guess := range []int{10, 15, 15, 30} {
		if err := s.Submit(1, pid(i), Payload{Guess: intPtr(guess)}); err != nil {
			t.Fatalf("guess %d: %v", guess, err)
		}
	}
	if err := s.Reveal(); err != nil {
		t.Fatalf("reveal: %v", err)
	}

	r := s.Snapshot().Result
	if r == nil {
		t.Fatal("no result after reveal")
	}
	if want := []string{"p1", "p2"}; !reflect.DeepEqual(r.Winners, want) {
		t.Fatalf("winners = %v, want %v", r.Winners, want)
	}
	for _, p := range []string{"p1", "p2"} {
		if s.scores[p] != 1 {
			t.Fatalf("score[%s] = %d, want 1", p, s.scores[p])
		}
	}
	if s.scores["p0"] != 0 || s.scores["p3"] != 0 {
		t.Fatal("non-winners scored")
	}
}

func TestEstimationPriceIsRight(t *testing.T) {
	s, _ := newTestSession(t, func(set *Settings) {
		set.EstimatePriceRight = true
	})
	for i, name := range []string{"Alice", "Bob", "Cara"} {
		mustJoin(t, s, pid(i), name)
	}
	mustStart(t, s, ModeEstimation)

	// 16 is closest but over; 10 wins under price-is-right rules.
	for i, guess := range []int{16, 10, 40} {
		if err := s.Submit(1, pid(i), Payload{Guess: intPtr(guess)}); err != nil {
			t.Fatalf("guess %d: %v", guess, err)
		}
	}
	if err := s.Reveal(); err != nil {
		t.Fatalf("reveal: %v", err)
	}
	r := s.Snapshot().Result
	if want := []string{"p1"}; !reflect.DeepEqual(r.Winners, want) {
		t.Fatalf("winners = %v, want %v", r.Winners, want)
	}
}

func TestEstimationPriceIsRightAllOver(t *testing.T) {
	s, _ := newTestSession(t, func(set *Settings) {
		set.EstimatePriceRight = true
	})
	mustJoin(t, s, "p0", "Alice")
	mustJoin(t, s, "p1", "Bob")
	mustStart(t, s, ModeEstimation)

	// Every guess over the target of 15: closest overall still wins.
	for i, guess := range []int{20, 40} {
		if err := s.Submit(1, pid(i), Payload{Guess: intPtr(guess)}); err != nil {
			t.Fatalf("guess %d: %v", guess, err)
		}
	}
	if err := s.Reveal(); err != nil {
		t.Fatalf("reveal: %v", err)
	}
	r := s.Snapshot().Result
	if want := []string{"p0"}; !reflect.DeepEqual(r.Winners, want) {
		t.Fatalf("winners = %v, want %v", r.Winners, want)
	}
	if s.scores["p0"] != 1 || s.scores["p1"] != 0 {
		t.Fatalf("unexpected scores %v", s.scores)
	}
}

func TestTopKeysTie(t *testing.T) {
	top, max := topKeys(map[string]int{"A": 2, "B": 2, "C": 1})
	if max != 2 {
		t.Fatalf("max = %d, want 2", max)
	}
	if want := []string{"A", "B"}; !reflect.DeepEqual(top, want) {
		t.Fatalf("top = %v, want %v", top, want)
	}

	if top, _ := topKeys(nil); top != nil {
		t.Fatalf("empty tally should have no winners, got %v", top)
	}
}

func TestTriviaScoring(t *testing.T) {
	s, _ := newTestSession(t, nil)
	for i, name := range []string{"Alice", "Bob", "Cara"} {
		mustJoin(t, s, pid(i), name)
	}
	mustStart(t, s, ModeTrivia) // correct index 1

	for i, choice := range []int{1, 0, 1} {
		if err := s.Submit(1, pid(i), Payload{Choice: intPtr(choice)}); err != nil {
			t.Fatalf("choice %d: %v", choice, err)
		}
	}
	if err := s.Reveal(); err != nil {
		t.Fatalf("reveal: %v", err)
	}
	r := s.Snapshot().Result
	if want := []string{"p0", "p2"}; !reflect.DeepEqual(r.ScoringPIDs, want) {
		t.Fatalf("scoring pids = %v, want %v", r.ScoringPIDs, want)
	}
	if want := []int{1, 2, 0, 0}; !reflect.DeepEqual(r.OptionTally, want) {
		t.Fatalf("tally = %v, want %v", r.OptionTally, want)
	}
}

func TestQuickDrawUniqueScoring(t *testing.T) {
	s, _ := newTestSession(t, nil)
	for i, name := range []string{"Alice", "Bob", "Cara"} {
		mustJoin(t, s, pid(i), name)
	}
	mustStart(t, s, ModeQuickDraw)

	// "The Cat" and "cat" normalize together; "dog" stays unique.
	for i, text := range []string{"The Cat", "cat", "dog"} {
		if err := s.Submit(1, pid(i), Payload{Text: text}); err != nil {
			t.Fatalf("answer %q: %v", text, err)
		}
	}
	if err := s.Reveal(); err != nil {
		t.Fatalf("reveal: %v", err)
	}
	r := s.Snapshot().Result
	if want := []string{"p2"}; !reflect.DeepEqual(r.UniquePIDs, want) {
		t.Fatalf("unique pids = %v, want %v", r.UniquePIDs, want)
	}
	if s.scores["p2"] != 1 || s.scores["p0"] != 0 {
		t.Fatalf("unexpected scores %v", s.scores)
	}
}

func TestWagerScoringFloorsAtZero(t *testing.T) {
	s, _ := newTestSession(t, nil)
	mustJoin(t, s, "p0", "Alice")
	mustJoin(t, s, "p1", "Bob")
	mustStart(t, s, ModeWagerTrivia)

	if err := s.Submit(1, "p0", Payload{Wager: intPtr(3)}); err != nil {
		t.Fatalf("wager: %v", err)
	}
	if err := s.Submit(1, "p1", Payload{Wager: intPtr(2)}); err != nil {
		t.Fatalf("wager: %v", err)
	}
	if err := s.HostAction("wager_start_question"); err != nil {
		t.Fatalf("start question: %v", err)
	}
	if err := s.Submit(1, "p0", Payload{Choice: intPtr(0)}); err != nil { // wrong
		t.Fatalf("answer: %v", err)
	}
	if err := s.Submit(1, "p1", Payload{Choice: intPtr(1)}); err != nil { // correct
		t.Fatalf("answer: %v", err)
	}
	if err := s.Reveal(); err != nil {
		t.Fatalf("reveal: %v", err)
	}

	if s.scores["p0"] != 0 {
		t.Fatalf("losing score floored at zero, got %d", s.scores["p0"])
	}
	if s.scores["p1"] != 2 {
		t.Fatalf("winning score = %d, want 2", s.scores["p1"])
	}
	r := s.Snapshot().Result
	if r.WagerDeltas["p0"] != -3 || r.WagerDeltas["p1"] != 2 {
		t.Fatalf("deltas = %v", r.WagerDeltas)
	}
}

func TestWouldYouRatherMajority(t *testing.T) {
	s, _ := newTestSession(t, func(set *Settings) {
		set.WYRPointsMajority = true
	})
	for i, name := range []string{"Alice", "Bob", "Cara"} {
		mustJoin(t, s, pid(i), name)
	}
	mustStart(t, s, ModeWouldYouRather)

	for i, choice := range []int{0, 0, 1} {
		if err := s.Submit(1, pid(i), Payload{Choice: intPtr(choice)}); err != nil {
			t.Fatalf("choice: %v", err)
		}
	}
	if err := s.Reveal(); err != nil {
		t.Fatalf("reveal: %v", err)
	}
	r := s.Snapshot().Result
	if r.Majority == nil || *r.Majority != 0 {
		t.Fatalf("majority = %v, want 0", r.Majority)
	}
	if want := []string{"p0", "p1"}; !reflect.DeepEqual(r.ScoringPIDs, want) {
		t.Fatalf("scoring pids = %v, want %v", r.ScoringPIDs, want)
	}
}

func TestAnswerMatchingNormalization(t *testing.T) {
	cases := []struct {
		guess, answer string
		want          bool
	}{
		{"The Eiffel Tower", "eiffel tower", true},
		{"eiffel  tower!", "Eiffel Tower", true},
		{"a giraffe", "Giraffe", true},
		{"elephant", "Giraffe", false},
	}
	for _, c := range cases {
		if got := answerMatches(c.guess, c.answer); got != c.want {
			t.Errorf("answerMatches(%q, %q) = %v, want %v", c.guess, c.answer, got, c.want)
		}
	}
}
