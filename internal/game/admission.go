package game

import "errors"

// Submit is the single admission path for participant actions. The content
// policy runs before the lock is taken, on the already-cleaned text, so a
// slow policy backend never stalls other submitters. Everything else runs
// under the lock in taxonomy order: stale round, phase, lock, then the
// mode automaton's eligibility, idempotence, and payload checks.
func (s *Session) Submit(roundID int, pid string, p Payload) error {
	if p.Text != "" && s.policy != nil {
		text := CleanText(p.Text, TextMaxLen)
		if text != "" {
			if err := s.policy.Allowed(text); err != nil {
				var rej *Rejection
				if errors.As(err, &rej) {
					return err
				}
				// Unavailable backend fails closed.
				return ErrContentRejected
			}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.players[pid]; !ok {
		return ErrUnknownPlayer
	}
	if roundID != s.roundID {
		return ErrStaleRound
	}
	if s.phase != PhaseInRound {
		return ErrInvalidPhase.With("No active round.")
	}
	if s.submissionsLocked {
		return ErrSubmissionsLocked
	}
	if err := automatonFor(s.mode).admit(s, pid, p); err != nil {
		return err
	}
	s.log.Debug().
		Int("round", s.roundID).
		Str("mode", string(s.mode)).
		Str("pid", pid).
		Msg("submission admitted")
	return nil
}

// SubmissionCount reports how many distinct participants have acted in the
// current sub-phase, for the host's waiting-on display.
func (s *Session) SubmissionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submissionCountLocked()
}

func (s *Session) submissionCountLocked() int {
	switch s.mode {
	case ModeVoteBattle:
		if s.votebattle.Phase == SubVote {
			return len(s.votebattle.Votes)
		}
		return len(s.votebattle.Entries)
	case ModeMafia:
		switch s.mafia.Phase {
		case SubNight:
			return len(s.mafia.WolfVotes) + len(s.mafia.SeerPeeks)
		case SubDay:
			return len(s.mafia.DayVotes)
		}
		return 0
	case ModeTriviaBuzzer, ModeTeamTrivia:
		switch s.buzzer.Phase {
		case SubAnswer:
			if s.buzzer.AnswerChoice != nil {
				return 1
			}
			return 0
		case SubSteal:
			return len(s.buzzer.Steals)
		}
		if s.buzzer.WinnerPID != "" {
			return 1
		}
		return 0
	case ModeTeamJeopardy:
		switch s.jeopardy.Phase {
		case SubAnswer:
			if s.jeopardy.AnswerText != "" {
				return 1
			}
			return 0
		case SubSteal:
			return len(s.jeopardy.StealTexts)
		}
		return 0
	case ModeRelayTrivia:
		return len(s.relay.Answers)
	case ModeTriviaDraft:
		switch s.draft.Phase {
		case SubDraft:
			return len(s.draft.Picks)
		case SubSteal:
			return len(s.draft.StealChoices)
		}
		if s.draft.AnswerChoice != nil {
			return 1
		}
		return 0
	case ModeWagerTrivia:
		if s.wager.Phase == SubQuestion {
			return len(s.wager.Answers)
		}
		return len(s.wager.Wagers)
	}
	return len(s.submissions)
}
