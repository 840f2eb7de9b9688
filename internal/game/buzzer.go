package game

// buzzerAuto drives buzz -> answer -> steal for solo and team buzzer
// trivia. Earliest buzz timestamp wins; a strict earlier arrival replaces
// the provisional winner.

type buzzerAuto struct {
	teams bool
}

func (buzzerAuto) start(s *Session) {
	s.buzzer = buzzerState{
		Phase:  SubBuzz,
		Steals: make(map[string]int),
	}
}

func (buzzerAuto) subPhase(s *Session) string { return s.buzzer.Phase }

func (a buzzerAuto) admit(s *Session, pid string, p Payload) error {
	b := &s.buzzer
	switch b.Phase {
	case SubBuzz:
		if !p.Buzz {
			return ErrInvalidPayload.With("Buzz first.")
		}
		team := 0
		if a.teams {
			team = s.teamOf(pid)
			if team == 0 {
				return ErrNotEligible.With("Join a team first.")
			}
		}
		at := s.now()
		if b.WinnerPID == "" || at.Before(b.BuzzAt) {
			b.WinnerPID = pid
			b.WinnerTeam = team
			b.BuzzAt = at
		}
		return nil
	case SubAnswer:
		if a.teams {
			if s.teamOf(pid) != b.WinnerTeam {
				return ErrNotEligible.With("Only the buzzing team may answer.")
			}
		} else if pid != b.WinnerPID {
			return ErrNotEligible.With("Only the buzz winner may answer.")
		}
		if b.AnswerChoice != nil {
			return ErrDuplicateSubmission.With("Answer already submitted.")
		}
		if p.Choice == nil || *p.Choice < 0 || *p.Choice >= len(s.options) {
			return ErrInvalidPayload
		}
		choice := *p.Choice
		b.AnswerPID = pid
		b.AnswerTeam = s.teamOf(pid)
		b.AnswerChoice = &choice
		return nil
	case SubSteal:
		if a.teams {
			team := s.teamOf(pid)
			if team == 0 || team == b.WinnerTeam {
				return ErrNotEligible.With("Your team cannot steal.")
			}
			for prev := range b.Steals {
				if s.teamOf(prev) == team {
					return ErrDuplicateSubmission.With("Your team already attempted a steal.")
				}
			}
		} else {
			if pid == b.WinnerPID {
				return ErrNotEligible.With("You cannot steal your own question.")
			}
			if _, ok := b.Steals[pid]; ok {
				return ErrDuplicateSubmission.With("Steal already submitted.")
			}
		}
		if p.Choice == nil || *p.Choice < 0 || *p.Choice >= len(s.options) {
			return ErrInvalidPayload
		}
		b.Steals[pid] = *p.Choice
		b.StealOrder = append(b.StealOrder, pid)
		return nil
	}
	return ErrInvalidPhase
}

// The host may resolve a buzzer round from any sub-phase; scoring handles
// whatever state exists.
func (buzzerAuto) revealEligible(s *Session) bool { return true }

func (buzzerAuto) progressAction(s *Session) string {
	switch s.buzzer.Phase {
	case SubBuzz:
		if s.buzzer.WinnerPID != "" {
			return "buzzer_start_answer"
		}
	case SubAnswer:
		return "buzzer_resolve_answer"
	}
	return ""
}

func (buzzerAuto) autoAdvance(s *Session) {
	switch s.buzzer.Phase {
	case SubBuzz:
		if s.buzzer.WinnerPID != "" {
			s.buzzerToAnswerLocked()
			s.hostMessage = "Timer: Answer phase started."
			return
		}
	case SubAnswer:
		s.buzzerResolveLocked()
		return
	}
	s.finishRoundLocked()
	s.hostMessage = "Timer: Results revealed."
}

func (s *Session) buzzerStartAnswerLocked() error {
	if s.phase != PhaseInRound || s.buzzer.Phase != SubBuzz {
		return ErrInvalidPhase.With("Not in the buzz phase.")
	}
	if s.buzzer.WinnerPID == "" {
		return ErrPreconditionUnmet.With("Nobody has buzzed yet.")
	}
	s.buzzerToAnswerLocked()
	s.hostMessage = "Answer phase started."
	return nil
}

func (s *Session) buzzerToAnswerLocked() {
	s.buzzer.Phase = SubAnswer
	s.submissionsLocked = false
	s.armTimerLocked(s.settings.VoteTimerSeconds)
}

func (s *Session) buzzerResolveAnswerLocked() error {
	if s.phase != PhaseInRound || s.buzzer.Phase != SubAnswer {
		return ErrInvalidPhase.With("Not in the answer phase.")
	}
	s.buzzerResolveLocked()
	return nil
}

// buzzerResolveLocked: a correct answer ends the round; a wrong or missing
// one opens the steal window when enabled, otherwise ends the round.
func (s *Session) buzzerResolveLocked() {
	b := &s.buzzer
	correct := b.AnswerChoice != nil && s.correctIndex != nil && *b.AnswerChoice == *s.correctIndex
	if correct || !s.settings.BuzzerStealEnabled {
		s.finishRoundLocked()
		s.hostMessage = "Results revealed."
		return
	}
	b.Phase = SubSteal
	s.submissionsLocked = false
	s.armTimerLocked(s.settings.VoteTimerSeconds)
	s.hostMessage = "Wrong answer. Steal window open."
}
