package game

import "sort"

// Mafia runs night/day cycles until a side wins. It never auto-advances:
// the host narrates and resolves each phase.

type mafiaAuto struct{}

func (mafiaAuto) start(s *Session) {
	pids := s.sortedPIDsLocked()
	shuffled := append([]string(nil), pids...)
	s.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	wolves := s.settings.MafiaWolfCount
	if s.settings.MafiaAutoWolfCount {
		wolves = 1
		if len(pids) >= 7 {
			wolves = 2
		}
	}
	wolves = clamp(wolves, 1, (len(pids)-1)/2)

	m := mafiaState{
		Phase:     SubNight,
		Roles:     make(map[string]string, len(pids)),
		Alive:     pids,
		WolfVotes: make(map[string]string),
		DayVotes:  make(map[string]string),
		SeerPeeks: make(map[string]SeerPeek),
	}
	for i, pid := range shuffled {
		switch {
		case i < wolves:
			m.Roles[pid] = RoleWerewolf
		case i == wolves && s.settings.MafiaSeerEnabled && len(pids) >= 4:
			m.Roles[pid] = RoleSeer
		default:
			m.Roles[pid] = RoleVillager
		}
	}
	s.mafia = m
}

func (mafiaAuto) subPhase(s *Session) string { return s.mafia.Phase }

func (mafiaAuto) admit(s *Session, pid string, p Payload) error {
	m := &s.mafia
	if !m.isAlive(pid) {
		return ErrNotEligible.With("You have been eliminated.")
	}
	switch m.Phase {
	case SubNight:
		switch m.Roles[pid] {
		case RoleWerewolf:
			if _, ok := m.WolfVotes[pid]; ok {
				return ErrDuplicateSubmission.With("Target already chosen.")
			}
			if !m.isAlive(p.Target) || p.Target == pid {
				return ErrInvalidPayload.With("Pick a living player.")
			}
			m.WolfVotes[pid] = p.Target
		case RoleSeer:
			if _, ok := m.SeerPeeks[pid]; ok {
				return ErrDuplicateSubmission.With("You already peeked tonight.")
			}
			if !m.isAlive(p.Target) || p.Target == pid {
				return ErrInvalidPayload.With("Pick a living player.")
			}
			m.SeerPeeks[pid] = SeerPeek{
				Target:     p.Target,
				IsWerewolf: m.Roles[p.Target] == RoleWerewolf,
			}
		default:
			return ErrNotEligible.With("You are asleep. Wait for daybreak.")
		}
		return nil
	case SubDay:
		if _, ok := m.DayVotes[pid]; ok {
			return ErrDuplicateSubmission.With("Vote already cast.")
		}
		if !m.isAlive(p.Target) {
			return ErrInvalidPayload.With("Pick a living player.")
		}
		m.DayVotes[pid] = p.Target
		return nil
	}
	return ErrInvalidPhase.With("The game is over.")
}

func (mafiaAuto) revealEligible(s *Session) bool {
	return s.mafia.Phase == SubOver
}

func (mafiaAuto) progressAction(s *Session) string {
	switch s.mafia.Phase {
	case SubNight:
		return "mafia_start_day"
	case SubDay:
		return "mafia_resolve_day"
	case SubOver:
		return "mafia_end_game"
	}
	return ""
}

// Mafia ignores the timer entirely; the host paces the game.
func (mafiaAuto) autoAdvance(s *Session) {}

func (s *Session) mafiaStartDayLocked() error {
	if s.phase != PhaseInRound || s.mode != ModeMafia {
		return ErrInvalidPhase.With("No mafia game running.")
	}
	m := &s.mafia
	if m.Phase != SubNight {
		return ErrInvalidPhase.With("It is not night.")
	}
	victim := s.pickVoteTargetLocked(m.WolfVotes)
	m.LastEliminated = ""
	if victim != "" {
		m.Alive = removeString(m.Alive, victim)
		m.LastEliminated = victim
	}
	if s.mafiaCheckWinLocked() {
		return nil
	}
	m.Phase = SubDay
	m.DayVotes = make(map[string]string)
	s.submissionsLocked = false
	if victim != "" {
		s.hostMessage = "Day breaks. " + s.nameOf(victim) + " was eliminated."
	} else {
		s.hostMessage = "Day breaks. Nobody was eliminated."
	}
	return nil
}

func (s *Session) mafiaResolveDayLocked() error {
	if s.phase != PhaseInRound || s.mode != ModeMafia {
		return ErrInvalidPhase.With("No mafia game running.")
	}
	m := &s.mafia
	if m.Phase != SubDay {
		return ErrInvalidPhase.With("It is not day.")
	}
	victim := s.pickVoteTargetLocked(m.DayVotes)
	m.LastEliminated = ""
	if victim != "" {
		m.Alive = removeString(m.Alive, victim)
		m.LastEliminated = victim
	}
	if s.mafiaCheckWinLocked() {
		return nil
	}
	m.Phase = SubNight
	m.WolfVotes = make(map[string]string)
	m.SeerPeeks = make(map[string]SeerPeek)
	s.submissionsLocked = false
	if victim != "" {
		s.hostMessage = "Night falls. " + s.nameOf(victim) + " was voted out."
	} else {
		s.hostMessage = "Night falls. The vote was inconclusive."
	}
	return nil
}

// pickVoteTargetLocked returns the plurality target of the votes, breaking
// ties uniformly at random. "" when nobody voted.
func (s *Session) pickVoteTargetLocked(votes map[string]string) string {
	if len(votes) == 0 {
		return ""
	}
	tally := make(map[string]int)
	for _, target := range votes {
		tally[target]++
	}
	max := 0
	for _, n := range tally {
		if n > max {
			max = n
		}
	}
	var tied []string
	for target, n := range tally {
		if n == max {
			tied = append(tied, target)
		}
	}
	sort.Strings(tied)
	return tied[s.rng.Intn(len(tied))]
}

// mafiaCheckWinLocked flips to the over state and reveals when a side has
// won. Werewolves win at parity; villagers win when no werewolf lives.
func (s *Session) mafiaCheckWinLocked() bool {
	m := &s.mafia
	wolves, others := 0, 0
	for _, pid := range m.Alive {
		if m.Roles[pid] == RoleWerewolf {
			wolves++
		} else {
			others++
		}
	}
	switch {
	case wolves == 0:
		m.Winner = "villagers"
	case wolves >= others:
		m.Winner = "werewolves"
	default:
		return false
	}
	m.Phase = SubOver
	s.finishRoundLocked()
	s.hostMessage = "Game over: " + m.Winner + " win."
	return true
}

// MafiaInfo is the per-participant private view: their role, the living
// players, and their seer peek if any.
type MafiaInfo struct {
	Phase      string    `json:"phase"`
	Role       string    `json:"role"`
	Alive      []string  `json:"alive"`
	Peek       *SeerPeek `json:"peek,omitempty"`
	Eliminated bool      `json:"eliminated"`
}

func (s *Session) MafiaInfo(pid string) (MafiaInfo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode != ModeMafia || s.mafia.Roles == nil {
		return MafiaInfo{}, false
	}
	role, ok := s.mafia.Roles[pid]
	if !ok {
		return MafiaInfo{}, false
	}
	info := MafiaInfo{
		Phase:      s.mafia.Phase,
		Role:       role,
		Alive:      append([]string(nil), s.mafia.Alive...),
		Eliminated: !s.mafia.isAlive(pid),
	}
	if peek, ok := s.mafia.SeerPeeks[pid]; ok {
		info.Peek = &peek
	}
	return info, true
}

func (s *Session) nameOf(pid string) string {
	if p, ok := s.players[pid]; ok {
		return p.Name
	}
	return "someone"
}
