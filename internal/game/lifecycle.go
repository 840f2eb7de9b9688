package game

// Round lifecycle: lobby -> in_round -> revealed -> (next_round | reset).
// Host actions and timer auto-advance both funnel through the transition
// helpers here, under the session mutex.

func teamMode(mode Mode) bool {
	switch mode {
	case ModeTeamTrivia, ModeTeamJeopardy, ModeRelayTrivia, ModeTriviaDraft:
		return true
	}
	return false
}

// SetMode selects the mini-game for the next round. Rejected mid-round so
// sub-phase state is never orphaned.
func (s *Session) SetMode(mode Mode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !mode.Valid() {
		return ErrPreconditionUnmet.With("Unknown mode.")
	}
	if s.phase == PhaseInRound {
		return ErrInvalidPhase.With("Cannot change mode during an active round.")
	}
	s.mode = mode
	s.clearRoundStateLocked()
	s.hostMessage = "Mode set to " + mode.Label() + "."
	return nil
}

// StartRound begins a round of the given mode ("" keeps the current mode).
func (s *Session) StartRound(mode Mode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseInRound {
		return ErrInvalidPhase.With("Round already in progress.")
	}
	if mode == "" {
		mode = s.mode
	}
	if err := s.startRoundLocked(mode); err != nil {
		return err
	}
	s.hostMessage = "Round started."
	return nil
}

// NextRound starts another round of the current mode from the revealed
// state.
func (s *Session) NextRound() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseRevealed {
		return ErrInvalidPhase.With("Reveal results before starting next round.")
	}
	if err := s.startRoundLocked(s.mode); err != nil {
		return err
	}
	s.hostMessage = "Next round started."
	return nil
}

// Reveal computes the result for the current round and transitions to
// revealed. Only legal when the mode automaton is in a reveal-eligible
// sub-phase.
func (s *Session) Reveal() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revealLocked()
}

func (s *Session) revealLocked() error {
	if s.phase != PhaseInRound {
		return ErrInvalidPhase.With("No active round to reveal.")
	}
	auto := automatonFor(s.mode)
	if !auto.revealEligible(s) {
		return ErrInvalidPhase.With(revealBlockReason(s.mode))
	}
	s.finishRoundLocked()
	s.hostMessage = "Results revealed."
	return nil
}

func revealBlockReason(mode Mode) string {
	switch mode {
	case ModeVoteBattle:
		return "Start vote battle voting before revealing."
	case ModeSpyfall:
		return "Start spy voting before revealing."
	case ModeMafia:
		return "Finish the mafia game before revealing."
	case ModeWagerTrivia:
		return "Start the question before revealing."
	case ModeTriviaBuzzer, ModeTeamTrivia:
		return "Resolve the buzzer phases before revealing."
	case ModeTeamJeopardy:
		return "Finish the open clue before revealing."
	case ModeTriviaDraft:
		return "Resolve all drafted questions before revealing."
	}
	return "Round is not ready to reveal."
}

// finishRoundLocked runs scoring and flips to revealed. Used by host
// reveal, mode terminal transitions, and timer auto-advance alike.
func (s *Session) finishRoundLocked() {
	s.computeResultLocked()
	s.phase = PhaseRevealed
	s.submissionsLocked = true
	s.stopTimerLocked()
}

// ResetRound forces the session back to the lobby, discarding round state
// but keeping scores.
func (s *Session) ResetRound() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetRoundLocked()
	s.hostMessage = "Round reset."
}

// ResetScores is ResetRound plus zeroing every score.
func (s *Session) ResetScores() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for pid := range s.scores {
		s.scores[pid] = 0
	}
	s.resetRoundLocked()
	s.hostMessage = "Scores reset."
}

func (s *Session) resetRoundLocked() {
	s.phase = PhaseLobby
	s.clearRoundStateLocked()
}

func (s *Session) clearRoundStateLocked() {
	s.prompt = ""
	s.options = nil
	s.correctIndex = nil
	s.submissions = make(map[string]Answer)
	s.submissionsLocked = false
	s.buzzer = buzzerState{}
	s.votebattle = voteBattleState{}
	s.spyfall = spyfallState{}
	s.mafia = mafiaState{}
	s.jeopardy = jeopardyState{}
	s.relay = relayState{}
	s.draft = draftState{}
	s.wager = wagerState{}
	s.estimate = estimationState{}
	s.wavelengthTarget = nil
	s.lastResult = nil
	s.stopTimerLocked()
}

func (s *Session) startRoundLocked(mode Mode) error {
	if !mode.Valid() {
		return ErrPreconditionUnmet.With("Unknown mode.")
	}
	if len(s.players) == 0 {
		return ErrPreconditionUnmet.With("No players yet.")
	}
	if teamMode(mode) {
		if !s.teams.Enabled {
			return ErrPreconditionUnmet.With(mode.Label() + " requires teams enabled.")
		}
		if len(s.activeTeamIDsLocked()) < 2 {
			return ErrPreconditionUnmet.With(mode.Label() + " needs at least two teams with players.")
		}
	}
	if mode == ModeMafia && len(s.players) < MafiaMinPlayers {
		return ErrPreconditionUnmet.With("Mafia needs at least 5 players.")
	}

	prompt, options, correct, target, err := s.resolvePromptLocked(mode)
	if err != nil {
		return err
	}

	s.clearRoundStateLocked()
	s.roundID++
	s.mode = mode
	s.phase = PhaseInRound
	s.prompt = prompt
	s.options = options
	s.correctIndex = correct
	switch mode {
	case ModeWavelength:
		s.wavelengthTarget = target
	case ModeEstimation:
		if target != nil {
			s.estimate.Target = *target
		}
	}

	automatonFor(mode).start(s)
	if mode != ModeMafia {
		// Mafia is host-paced; the timer stays dark for it.
		s.armTimerLocked(s.settings.TimerSeconds)
	}
	s.log.Info().Int("round", s.roundID).Str("mode", string(mode)).Msg("round started")
	return nil
}

// resolvePromptLocked picks the round's prompt material: the staged manual
// prompt if one is set, otherwise a catalog draw.
func (s *Session) resolvePromptLocked(mode Mode) (string, []string, *int, *int, error) {
	if mode == ModeMafia {
		return "Night falls...", nil, nil, nil, nil
	}
	if s.manual == nil {
		prompt, options, correctIdx := s.content.Draw(mode)
		var correct, target *int
		switch mode {
		case ModeTrivia, ModeTriviaBuzzer, ModeTeamTrivia, ModeRelayTrivia, ModeWagerTrivia:
			if correctIdx < 0 || correctIdx >= len(options) {
				return "", nil, nil, nil, ErrPreconditionUnmet.With("Prompt could not be loaded.")
			}
			c := correctIdx
			correct = &c
		case ModeEstimation:
			t := correctIdx
			target = &t
		case ModeWavelength:
			t := s.rng.Intn(101)
			target = &t
		}
		return prompt, options, correct, target, nil
	}

	mp := s.manual
	text := CleanText(mp.Text, TextMaxLen)
	if text == "" {
		return "", nil, nil, nil, ErrPreconditionUnmet.With("Manual prompt text is required.")
	}
	switch mode {
	case ModeWouldYouRather:
		a, b := CleanText(mp.OptionA, TextMaxLen), CleanText(mp.OptionB, TextMaxLen)
		if a == "" || b == "" {
			return "", nil, nil, nil, ErrPreconditionUnmet.With("Manual options A and B are required.")
		}
		return text, []string{a, b}, nil, nil, nil
	case ModeTrivia, ModeTriviaBuzzer, ModeTeamTrivia, ModeRelayTrivia, ModeWagerTrivia:
		if len(mp.Options) != 4 {
			return "", nil, nil, nil, ErrPreconditionUnmet.With("Manual trivia requires 4 options.")
		}
		for _, opt := range mp.Options {
			if CleanText(opt, TextMaxLen) == "" {
				return "", nil, nil, nil, ErrPreconditionUnmet.With("Manual trivia requires 4 options.")
			}
		}
		if mp.CorrectIndex == nil || *mp.CorrectIndex < 0 || *mp.CorrectIndex > 3 {
			return "", nil, nil, nil, ErrPreconditionUnmet.With("Manual trivia requires a correct index (0-3).")
		}
		c := *mp.CorrectIndex
		return text, mp.Options, &c, nil, nil
	case ModeWavelength:
		if mp.Target != nil && (*mp.Target < 0 || *mp.Target > 100) {
			return "", nil, nil, nil, ErrPreconditionUnmet.With("Manual target must be 0 to 100.")
		}
		target := mp.Target
		if target == nil {
			t := s.rng.Intn(101)
			target = &t
		}
		return text, nil, nil, target, nil
	case ModeEstimation:
		if mp.Target == nil {
			return "", nil, nil, nil, ErrPreconditionUnmet.With("Manual estimation needs a target number.")
		}
		return text, nil, nil, mp.Target, nil
	case ModeSpyfall:
		return text, s.content.SpyRoles(text), nil, nil, nil
	}
	return text, nil, nil, nil, nil
}

// AwardPoint is the host-adjudicated +1 for hotseat and host-scored
// quickdraw, only after reveal.
func (s *Session) AwardPoint(pid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseRevealed {
		return ErrInvalidPhase.With("Points can only be awarded after reveal.")
	}
	switch s.mode {
	case ModeHotSeat:
	case ModeQuickDraw:
		if s.settings.QuickDrawScoring != "host" {
			return ErrPreconditionUnmet.With("Quick Draw is not in host-pick scoring.")
		}
	default:
		return ErrPreconditionUnmet.With("Award points is only for Hot Seat and Quick Draw.")
	}
	if _, ok := s.players[pid]; !ok {
		return ErrUnknownPlayer
	}
	s.scores[pid]++
	s.hostMessage = "Point awarded."
	return nil
}

// HostMessage returns and keeps the last host-facing status line.
func (s *Session) HostMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hostMessage
}
