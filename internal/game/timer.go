package game

import "time"

// The timer is poll-driven: nothing fires on its own. Host clients call
// Tick on their state poll; the expired latch guarantees the transition
// runs at most once per armed window even under concurrent polls.

func (s *Session) armTimerLocked(seconds int) {
	if !s.settings.TimerEnabled || seconds <= 0 {
		s.stopTimerLocked()
		return
	}
	s.timer = Timer{
		StartAt:  s.now(),
		Duration: time.Duration(seconds) * time.Second,
		Armed:    true,
	}
}

func (s *Session) stopTimerLocked() {
	s.timer = Timer{}
}

// currentPhaseSecondsLocked maps the live sub-phase back to the settings
// knob that governs it, so settings changes re-arm with the right budget.
func (s *Session) currentPhaseSecondsLocked() int {
	if s.phase != PhaseInRound {
		return 0
	}
	vote := false
	switch s.mode {
	case ModeVoteBattle:
		vote = s.votebattle.Phase == SubVote
	case ModeSpyfall:
		vote = s.spyfall.Phase == SubVote
	case ModeTriviaBuzzer, ModeTeamTrivia:
		vote = s.buzzer.Phase != SubBuzz
	case ModeMafia:
		// Host-paced; never armed.
		return 0
	case ModeTeamJeopardy:
		vote = s.jeopardy.Phase != SubBoard
	case ModeTriviaDraft:
		vote = s.draft.Phase != SubDraft || s.draft.TurnIdx > 0
	case ModeWagerTrivia:
		vote = s.wager.Phase == SubQuestion
	}
	if vote {
		return s.settings.VoteTimerSeconds
	}
	return s.settings.TimerSeconds
}

// TimerRemaining reports the armed timer's remaining whole seconds.
func (s *Session) TimerRemaining() (seconds int, armed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.timer.Armed {
		return 0, false
	}
	return s.timer.Remaining(s.now()), true
}

// Tick observes the clock and performs the expiry transition if the armed
// timer has run out. Safe to call at any frequency.
func (s *Session) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseInRound || !s.timer.Armed || s.timer.Expired {
		return
	}
	if s.timer.Remaining(s.now()) > 0 {
		return
	}
	s.timer.Expired = true
	if s.settings.LatePolicy == "lock_after_timer" {
		s.submissionsLocked = true
	}
	s.log.Debug().Int("round", s.roundID).Str("mode", string(s.mode)).Msg("timer expired")
	if !s.settings.AutoAdvance {
		return
	}
	automatonFor(s.mode).autoAdvance(s)
}
