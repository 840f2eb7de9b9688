package game

// Each mode family implements automaton: a small finite machine over its
// sub-phases. The session invokes the active automaton for admission
// predicates, reveal eligibility, the host's next progress action, and
// timer-driven auto-advance. All methods run with the session lock held.
type automaton interface {
	// start initializes the mode's sub-phase state for a fresh round.
	start(s *Session)
	// subPhase names the current sub-phase ("" for single-phase modes).
	subPhase(s *Session) string
	// admit validates eligibility, idempotence, and payload shape for the
	// current sub-phase, then records the entry. Any error leaves state
	// untouched.
	admit(s *Session, pid string, p Payload) error
	// revealEligible reports whether the host may compute results now.
	revealEligible(s *Session) bool
	// progressAction names the next host transition, "" when the only
	// remaining action is the generic reveal.
	progressAction(s *Session) string
	// autoAdvance performs the phase-appropriate transition a host action
	// would have performed, on timer expiry.
	autoAdvance(s *Session)
}

func automatonFor(mode Mode) automaton {
	switch mode {
	case ModeVoteBattle:
		return voteBattleAuto{}
	case ModeSpyfall:
		return spyfallAuto{}
	case ModeMafia:
		return mafiaAuto{}
	case ModeTriviaBuzzer:
		return buzzerAuto{}
	case ModeTeamTrivia:
		return buzzerAuto{teams: true}
	case ModeTeamJeopardy:
		return jeopardyAuto{}
	case ModeRelayTrivia:
		return relayAuto{}
	case ModeTriviaDraft:
		return draftAuto{}
	case ModeWagerTrivia:
		return wagerAuto{}
	default:
		return singleAuto{}
	}
}

var progressLabels = map[string]string{
	"votebattle_start_vote":  "Start Vote Battle Voting",
	"spyfall_start_vote":     "Start Spy Vote",
	"mafia_start_day":        "Resolve Night / Start Day",
	"mafia_resolve_day":      "Resolve Day Vote",
	"mafia_end_game":         "End Mafia Game",
	"buzzer_start_answer":    "Start Answer",
	"buzzer_resolve_answer":  "Resolve Answer",
	"jeopardy_start_answer":  "Start Answer",
	"jeopardy_resolve":       "Resolve Answer",
	"jeopardy_resolve_steal": "Resolve Steal",
	"draft_start_answers":    "Start Answers",
	"draft_resolve_answer":   "Resolve / Next Team",
	"draft_resolve_steal":    "Resolve Steal",
	"wager_start_question":   "Start Question",
	"reveal":                 "Reveal Results",
}

// ProgressUI derives the next host action for the current state. Purely
// derived; no side effects.
func (s *Session) ProgressUI() (action, label string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	action = s.progressActionLocked()
	if action == "" {
		return "", "", false
	}
	return action, progressLabels[action], true
}

func (s *Session) progressActionLocked() string {
	if s.phase != PhaseInRound {
		if s.mode == ModeMafia && s.mafia.Phase == SubOver {
			return "mafia_end_game"
		}
		return ""
	}
	if action := automatonFor(s.mode).progressAction(s); action != "" {
		return action
	}
	if automatonFor(s.mode).revealEligible(s) {
		return "reveal"
	}
	return ""
}

// Progress performs the resolved next host action.
func (s *Session) Progress() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	action := s.progressActionLocked()
	if action == "" {
		return ErrInvalidPhase.With("No progress available.")
	}
	return s.dispatchActionLocked(action)
}

// HostAction performs a named mode transition directly, for host consoles
// that render per-mode buttons instead of the single progress control.
func (s *Session) HostAction(action string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dispatchActionLocked(action)
}

func (s *Session) dispatchActionLocked(action string) error {
	switch action {
	case "votebattle_start_vote", "spyfall_start_vote":
		return s.startVoteLocked()
	case "mafia_start_day":
		return s.mafiaStartDayLocked()
	case "mafia_resolve_day":
		return s.mafiaResolveDayLocked()
	case "mafia_end_game":
		s.resetRoundLocked()
		s.hostMessage = "Mafia game ended."
		return nil
	case "buzzer_start_answer":
		return s.buzzerStartAnswerLocked()
	case "buzzer_resolve_answer":
		return s.buzzerResolveAnswerLocked()
	case "jeopardy_start_answer":
		return s.jeopardyStartAnswerLocked()
	case "jeopardy_resolve":
		return s.jeopardyResolveAnswerLocked()
	case "jeopardy_resolve_steal":
		return s.jeopardyResolveStealLocked()
	case "draft_start_answers":
		return s.draftStartAnswersLocked()
	case "draft_resolve_answer":
		return s.draftResolveAnswerLocked()
	case "draft_resolve_steal":
		return s.draftResolveStealLocked()
	case "wager_start_question":
		return s.wagerStartQuestionLocked()
	case "reveal":
		return s.revealLocked()
	}
	return ErrInvalidPhase.With("Unknown action.")
}

// singleAuto covers the one-submission-phase modes: mlt, wyr, trivia,
// hotseat, quickdraw, wavelength, estimation_duel.
type singleAuto struct{}

func (singleAuto) start(s *Session) {
	if s.mode == ModeEstimation {
		s.estimate.Phase = SubSubmit
	}
}

func (singleAuto) subPhase(s *Session) string { return "" }

func (singleAuto) admit(s *Session, pid string, p Payload) error {
	if _, ok := s.submissions[pid]; ok {
		return ErrDuplicateSubmission
	}
	switch s.mode {
	case ModeMostLikely:
		if _, ok := s.players[p.Target]; !ok {
			return ErrInvalidPayload
		}
		s.submissions[pid] = Answer{Target: p.Target}
	case ModeWouldYouRather:
		if p.Choice == nil || (*p.Choice != 0 && *p.Choice != 1) {
			return ErrInvalidPayload
		}
		s.submissions[pid] = Answer{Choice: *p.Choice}
	case ModeTrivia:
		if p.Choice == nil || *p.Choice < 0 || *p.Choice >= len(s.options) {
			return ErrInvalidPayload
		}
		s.submissions[pid] = Answer{Choice: *p.Choice}
	case ModeHotSeat:
		text := CleanText(p.Text, TextMaxLen)
		if text == "" {
			return ErrInvalidPayload.With("Answer cannot be empty.")
		}
		s.submissions[pid] = Answer{Text: text}
	case ModeQuickDraw:
		text := CleanText(p.Text, QuickDrawMaxLen)
		if text == "" {
			return ErrInvalidPayload.With("Answer cannot be empty.")
		}
		s.submissions[pid] = Answer{Text: text}
	case ModeWavelength:
		if p.Guess == nil || *p.Guess < 0 || *p.Guess > 100 {
			return ErrInvalidPayload.With("Guess must be 0 to 100.")
		}
		s.submissions[pid] = Answer{Guess: *p.Guess}
	case ModeEstimation:
		if p.Guess == nil {
			return ErrInvalidPayload.With("Enter a number.")
		}
		s.submissions[pid] = Answer{Guess: *p.Guess}
	default:
		return ErrInvalidPayload.With("Unknown mode.")
	}
	return nil
}

func (singleAuto) revealEligible(s *Session) bool { return true }

func (singleAuto) progressAction(s *Session) string { return "" }

func (singleAuto) autoAdvance(s *Session) {
	s.finishRoundLocked()
	s.hostMessage = "Timer: Results revealed."
}
