package game

// Vote battle and spyfall share the two-stage shape: a gathering sub-phase
// followed by a voting sub-phase the host (or timer) opens.

type voteBattleAuto struct{}

func (voteBattleAuto) start(s *Session) {
	s.votebattle = voteBattleState{
		Phase:  SubSubmit,
		Votes:  make(map[string]int),
		NextID: 1,
	}
}

func (voteBattleAuto) subPhase(s *Session) string { return s.votebattle.Phase }

func (voteBattleAuto) admit(s *Session, pid string, p Payload) error {
	vb := &s.votebattle
	switch vb.Phase {
	case SubSubmit:
		for _, entry := range vb.Entries {
			if entry.PID == pid {
				return ErrDuplicateSubmission.With("Entry already submitted.")
			}
		}
		text := CleanText(p.Text, VoteBattleMaxLen)
		if text == "" {
			return ErrInvalidPayload.With("Entry cannot be empty.")
		}
		vb.Entries = append(vb.Entries, VoteBattleEntry{ID: vb.NextID, PID: pid, Text: text})
		vb.NextID++
		return nil
	case SubVote:
		if _, ok := vb.Votes[pid]; ok {
			return ErrDuplicateSubmission.With("Vote already cast.")
		}
		if p.EntryID == nil {
			return ErrInvalidPayload.With("Pick an entry.")
		}
		var target *VoteBattleEntry
		for i := range vb.Entries {
			if vb.Entries[i].ID == *p.EntryID {
				target = &vb.Entries[i]
				break
			}
		}
		if target == nil {
			return ErrInvalidPayload.With("Unknown entry.")
		}
		if target.PID == pid {
			return ErrInvalidPayload.With("You cannot vote for your own entry.")
		}
		vb.Votes[pid] = target.ID
		return nil
	}
	return ErrInvalidPhase
}

func (voteBattleAuto) revealEligible(s *Session) bool {
	return s.votebattle.Phase == SubVote
}

func (voteBattleAuto) progressAction(s *Session) string {
	if s.votebattle.Phase == SubSubmit {
		return "votebattle_start_vote"
	}
	return ""
}

func (voteBattleAuto) autoAdvance(s *Session) {
	if s.votebattle.Phase == SubSubmit {
		if len(s.votebattle.Entries) > 0 {
			s.openVoteLocked()
			s.hostMessage = "Timer: Voting started."
			return
		}
		s.finishRoundLocked()
		s.hostMessage = "Timer: No entries; round revealed."
		return
	}
	s.finishRoundLocked()
	s.hostMessage = "Timer: Results revealed."
}

// startVoteLocked is the host transition into the voting sub-phase for
// votebattle and spyfall.
func (s *Session) startVoteLocked() error {
	if s.phase != PhaseInRound {
		return ErrInvalidPhase.With("No active round.")
	}
	switch s.mode {
	case ModeVoteBattle:
		if s.votebattle.Phase != SubSubmit {
			return ErrInvalidPhase.With("Voting has already started.")
		}
		if len(s.votebattle.Entries) == 0 {
			return ErrPreconditionUnmet.With("Need at least one entry to vote on.")
		}
	case ModeSpyfall:
		if s.spyfall.Phase != SubQuestion {
			return ErrInvalidPhase.With("Voting has already started.")
		}
	default:
		return ErrInvalidPhase.With("This mode has no vote phase.")
	}
	s.openVoteLocked()
	s.hostMessage = "Voting started."
	return nil
}

func (s *Session) openVoteLocked() {
	switch s.mode {
	case ModeVoteBattle:
		s.votebattle.Phase = SubVote
	case ModeSpyfall:
		s.spyfall.Phase = SubVote
		s.submissions = make(map[string]Answer)
	}
	s.submissionsLocked = false
	s.armTimerLocked(s.settings.VoteTimerSeconds)
}

type spyfallAuto struct{}

func (spyfallAuto) start(s *Session) {
	sf := spyfallState{
		Phase:    SubQuestion,
		Location: s.prompt,
		Roles:    make(map[string]string),
	}
	pids := s.sortedPIDsLocked()
	sf.SpyPID = pids[s.rng.Intn(len(pids))]
	roles := s.options
	if len(roles) == 0 {
		roles = s.content.SpyRoles(sf.Location)
	}
	for i, pid := range pids {
		if pid == sf.SpyPID {
			sf.Roles[pid] = "Spy"
			continue
		}
		if len(roles) > 0 {
			sf.Roles[pid] = roles[i%len(roles)]
		} else {
			sf.Roles[pid] = "Local"
		}
	}
	// Players never see the location in the prompt field.
	s.prompt = "Find the spy. Ask each other questions!"
	s.options = nil
	s.spyfall = sf
}

func (spyfallAuto) subPhase(s *Session) string { return s.spyfall.Phase }

func (spyfallAuto) admit(s *Session, pid string, p Payload) error {
	if s.spyfall.Phase != SubVote {
		return ErrInvalidPhase.With("Voting is not active.")
	}
	if _, ok := s.submissions[pid]; ok {
		return ErrDuplicateSubmission.With("Vote already cast.")
	}
	if _, ok := s.players[p.Target]; !ok {
		return ErrInvalidPayload.With("Unknown player.")
	}
	if p.Target == pid && !s.settings.SpyfallAllowSelfVote {
		return ErrInvalidPayload.With("You cannot vote for yourself.")
	}
	s.submissions[pid] = Answer{Target: p.Target}
	return nil
}

func (spyfallAuto) revealEligible(s *Session) bool {
	return s.spyfall.Phase == SubVote
}

func (spyfallAuto) progressAction(s *Session) string {
	if s.spyfall.Phase == SubQuestion {
		return "spyfall_start_vote"
	}
	return ""
}

func (spyfallAuto) autoAdvance(s *Session) {
	if s.spyfall.Phase == SubQuestion {
		if s.settings.SpyfallAutoStartVote {
			s.openVoteLocked()
			s.hostMessage = "Timer: Spy vote started."
		}
		return
	}
	s.finishRoundLocked()
	s.hostMessage = "Timer: Results revealed."
}

// SpyRole returns what a single participant is allowed to know mid-round.
func (s *Session) SpyRole(pid string) (role, location string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode != ModeSpyfall || s.spyfall.Roles == nil {
		return "", "", false
	}
	role, ok = s.spyfall.Roles[pid]
	if !ok {
		return "", "", false
	}
	if pid != s.spyfall.SpyPID {
		location = s.spyfall.Location
	}
	return role, location, true
}
