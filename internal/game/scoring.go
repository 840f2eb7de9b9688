package game

import "sort"

// Scoring runs exactly once per reveal, under the lock, from recorded
// admissions only. Re-revealing the same round replaces its history entry
// instead of double-counting.

func (s *Session) computeResultLocked() {
	r := Result{
		Mode:         s.mode,
		RoundID:      s.roundID,
		Prompt:       s.prompt,
		Options:      s.options,
		CorrectIndex: s.correctIndex,
	}

	switch s.mode {
	case ModeMostLikely:
		s.scoreMostLikelyLocked(&r)
	case ModeWouldYouRather:
		s.scoreWouldYouRatherLocked(&r)
	case ModeTrivia:
		s.scoreTriviaLocked(&r)
	case ModeTriviaBuzzer, ModeTeamTrivia:
		s.scoreBuzzerLocked(&r)
	case ModeHotSeat:
		r.Answers = s.textAnswersLocked()
	case ModeQuickDraw:
		s.scoreQuickDrawLocked(&r)
	case ModeWavelength, ModeEstimation:
		s.scoreGuessesLocked(&r)
	case ModeVoteBattle:
		s.scoreVoteBattleLocked(&r)
	case ModeSpyfall:
		s.scoreSpyfallLocked(&r)
	case ModeMafia:
		s.scoreMafiaLocked(&r)
	case ModeWagerTrivia:
		s.scoreWagerLocked(&r)
	case ModeRelayTrivia:
		s.scoreRelayLocked(&r)
	case ModeTriviaDraft:
		r.DraftOutcomes = append([]DraftOutcome(nil), s.draft.Outcomes...)
	case ModeTeamJeopardy:
		// Points were applied clue by clue.
	}

	if teamMode(s.mode) {
		r.TeamScores = s.teamScoresLocked()
	}
	s.lastResult = &r
	s.appendHistoryLocked(r)
	s.log.Info().Int("round", r.RoundID).Str("mode", string(r.Mode)).Msg("round resolved")
}

func (s *Session) scoreMostLikelyLocked(r *Result) {
	tally := make(map[string]int)
	for _, a := range s.submissions {
		tally[a.Target]++
	}
	r.Tally = tally
	r.Winners, r.MaxVotes = topKeys(tally)
	for _, pid := range r.Winners {
		s.scores[pid]++
	}
	r.Points = 1
}

func (s *Session) scoreWouldYouRatherLocked(r *Result) {
	tally := make([]int, 2)
	for _, a := range s.submissions {
		if a.Choice == 0 || a.Choice == 1 {
			tally[a.Choice]++
		}
	}
	r.OptionTally = tally
	if tally[0] != tally[1] {
		majority := 0
		if tally[1] > tally[0] {
			majority = 1
		}
		r.Majority = &majority
		if s.settings.WYRPointsMajority {
			for pid, a := range s.submissions {
				if a.Choice == majority {
					s.scores[pid]++
					r.ScoringPIDs = append(r.ScoringPIDs, pid)
				}
			}
			sort.Strings(r.ScoringPIDs)
			r.Points = 1
		}
	}
}

func (s *Session) scoreTriviaLocked(r *Result) {
	tally := make([]int, len(s.options))
	for pid, a := range s.submissions {
		if a.Choice >= 0 && a.Choice < len(tally) {
			tally[a.Choice]++
		}
		if s.correctIndex != nil && a.Choice == *s.correctIndex {
			r.ScoringPIDs = append(r.ScoringPIDs, pid)
		}
	}
	sort.Strings(r.ScoringPIDs)
	r.OptionTally = tally
	for _, pid := range r.ScoringPIDs {
		s.scores[pid]++
	}
	r.Points = 1
}

// A correct immediate answer pays double what a steal does.
func (s *Session) scoreBuzzerLocked(r *Result) {
	b := &s.buzzer
	r.BuzzWinnerPID = b.WinnerPID
	r.BuzzWinner = b.WinnerTeam
	teams := s.mode == ModeTeamTrivia
	correct := b.AnswerChoice != nil && s.correctIndex != nil && *b.AnswerChoice == *s.correctIndex
	r.BuzzCorrect = correct
	switch {
	case correct:
		if teams {
			r.ScoringPIDs = s.teamMembersLocked(b.WinnerTeam)
		} else {
			r.ScoringPIDs = []string{b.WinnerPID}
		}
		r.Points = 2
	case s.correctIndex != nil:
		for _, pid := range b.StealOrder {
			if b.Steals[pid] != *s.correctIndex {
				continue
			}
			r.StealPID = pid
			if teams {
				r.StealTeam = s.teamOf(pid)
				r.ScoringPIDs = s.teamMembersLocked(r.StealTeam)
			} else {
				r.ScoringPIDs = []string{pid}
			}
			r.Points = 1
			break
		}
	}
	sort.Strings(r.ScoringPIDs)
	for _, pid := range r.ScoringPIDs {
		s.scores[pid] += r.Points
	}
}

func (s *Session) textAnswersLocked() map[string]string {
	answers := make(map[string]string, len(s.submissions))
	for pid, a := range s.submissions {
		answers[pid] = a.Text
	}
	return answers
}

// Quick draw groups answers by normalized form; "unique" scoring pays the
// players whose answer collided with nobody.
func (s *Session) scoreQuickDrawLocked(r *Result) {
	r.Answers = s.textAnswersLocked()
	byKey := make(map[string][]string)
	display := make(map[string]string)
	for pid, a := range s.submissions {
		key := normalizeText(a.Text)
		byKey[key] = append(byKey[key], pid)
		if _, ok := display[key]; !ok {
			display[key] = a.Text
		}
	}
	keys := make([]string, 0, len(byKey))
	for key := range byKey {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		pids := byKey[key]
		sort.Strings(pids)
		group := AnswerGroup{
			Answer: display[key],
			PIDs:   pids,
			Count:  len(pids),
			Unique: len(pids) == 1,
		}
		r.Groups = append(r.Groups, group)
		if group.Unique {
			r.UniquePIDs = append(r.UniquePIDs, pids[0])
		}
	}
	sort.Strings(r.UniquePIDs)
	if s.settings.QuickDrawScoring == "unique" {
		for _, pid := range r.UniquePIDs {
			s.scores[pid]++
		}
		r.ScoringPIDs = r.UniquePIDs
		r.Points = 1
	}
}

// Wavelength and estimation both score closest-to-target. Estimation can
// run price-is-right: over the target disqualifies, unless everyone is over.
func (s *Session) scoreGuessesLocked(r *Result) {
	target := 0
	switch s.mode {
	case ModeWavelength:
		if s.wavelengthTarget != nil {
			target = *s.wavelengthTarget
		}
	case ModeEstimation:
		target = s.estimate.Target
	}
	t := target
	r.Target = &t

	priceRight := s.mode == ModeEstimation && s.settings.EstimatePriceRight
	for pid, a := range s.submissions {
		d := a.Guess - target
		over := d > 0
		if d < 0 {
			d = -d
		}
		r.Guesses = append(r.Guesses, GuessRow{PID: pid, Guess: a.Guess, Distance: d, Over: over})
	}
	sort.Slice(r.Guesses, func(i, j int) bool {
		if r.Guesses[i].Distance != r.Guesses[j].Distance {
			return r.Guesses[i].Distance < r.Guesses[j].Distance
		}
		return r.Guesses[i].PID < r.Guesses[j].PID
	})

	eligible := r.Guesses
	if priceRight {
		var under []GuessRow
		for _, row := range r.Guesses {
			if !row.Over {
				under = append(under, row)
			}
		}
		// When every guess is over the target, closest overall still wins.
		if len(under) > 0 {
			eligible = under
		}
	}
	best := -1
	for _, row := range eligible {
		if best == -1 || row.Distance < best {
			best = row.Distance
		}
	}
	if best >= 0 {
		for _, row := range eligible {
			if row.Distance == best {
				r.Winners = append(r.Winners, row.PID)
			}
		}
	}
	sort.Strings(r.Winners)
	for _, pid := range r.Winners {
		s.scores[pid]++
	}
	r.Points = 1
}

func (s *Session) scoreVoteBattleLocked(r *Result) {
	vb := &s.votebattle
	votes := make(map[int]int)
	for _, entryID := range vb.Votes {
		votes[entryID]++
	}
	max := 0
	for _, e := range vb.Entries {
		er := EntryResult{ID: e.ID, PID: e.PID, Text: e.Text, Votes: votes[e.ID]}
		r.Entries = append(r.Entries, er)
		if er.Votes > max {
			max = er.Votes
		}
	}
	sort.Slice(r.Entries, func(i, j int) bool {
		if r.Entries[i].Votes != r.Entries[j].Votes {
			return r.Entries[i].Votes > r.Entries[j].Votes
		}
		return r.Entries[i].ID < r.Entries[j].ID
	})
	r.MaxVotes = max
	if max > 0 {
		for _, e := range r.Entries {
			if e.Votes == max {
				r.Winners = append(r.Winners, e.PID)
			}
		}
	}
	sort.Strings(r.Winners)
	for _, pid := range r.Winners {
		s.scores[pid]++
	}
	r.Points = 1
}

// The spy is caught when they are among the vote leaders. Catching the spy
// pays everyone else; an escaped spy is paid double instead.
func (s *Session) scoreSpyfallLocked(r *Result) {
	sf := &s.spyfall
	r.SpyPID = sf.SpyPID
	r.Location = sf.Location
	tally := make(map[string]int)
	for _, a := range s.submissions {
		tally[a.Target]++
	}
	r.Tally = tally
	top, max := topKeys(tally)
	r.MaxVotes = max
	for _, pid := range top {
		if pid == sf.SpyPID {
			r.SpyCaught = true
			break
		}
	}
	if r.SpyCaught {
		for _, pid := range s.sortedPIDsLocked() {
			if pid != sf.SpyPID {
				r.ScoringPIDs = append(r.ScoringPIDs, pid)
			}
		}
		sort.Strings(r.ScoringPIDs)
		for _, pid := range r.ScoringPIDs {
			s.scores[pid]++
		}
		r.Points = 1
		return
	}
	if _, ok := s.players[sf.SpyPID]; ok {
		s.scores[sf.SpyPID] += 2
		r.ScoringPIDs = []string{sf.SpyPID}
		r.Points = 2
	}
}

func (s *Session) scoreMafiaLocked(r *Result) {
	m := &s.mafia
	r.MafiaWinner = m.Winner
	r.Alive = append([]string(nil), m.Alive...)
	r.LastEliminated = m.LastEliminated
	if s.settings.MafiaRevealRoles {
		roles := make(map[string]string, len(m.Roles))
		for pid, role := range m.Roles {
			roles[pid] = role
		}
		r.Roles = roles
	}
	for pid, role := range m.Roles {
		wolf := role == RoleWerewolf
		if (m.Winner == "werewolves") == wolf {
			r.Winners = append(r.Winners, pid)
		}
	}
	// Mafia pays nothing; the result only labels the winning side.
	sort.Strings(r.Winners)
}

func (s *Session) scoreWagerLocked(r *Result) {
	w := &s.wager
	deltas := make(map[string]int)
	for pid, choice := range w.Answers {
		wager := w.Wagers[pid]
		if s.correctIndex != nil && choice == *s.correctIndex {
			deltas[pid] = wager
			r.ScoringPIDs = append(r.ScoringPIDs, pid)
		} else {
			deltas[pid] = -wager
		}
	}
	sort.Strings(r.ScoringPIDs)
	for pid, delta := range deltas {
		s.applyScoreDeltaLocked(pid, delta, s.settings.WagerFloorZero)
	}
	r.WagerDeltas = deltas
}

func (s *Session) scoreRelayLocked(r *Result) {
	tally := make([]int, len(s.options))
	for team, choice := range s.relay.Answers {
		if choice >= 0 && choice < len(tally) {
			tally[choice]++
		}
		if s.correctIndex != nil && choice == *s.correctIndex {
			r.ScoringPIDs = append(r.ScoringPIDs, s.teamMembersLocked(team)...)
		}
	}
	r.OptionTally = tally
	sort.Strings(r.ScoringPIDs)
	for _, pid := range r.ScoringPIDs {
		s.scores[pid]++
	}
	r.Points = 1
}

func (s *Session) applyScoreDeltaLocked(pid string, delta int, floorZero bool) {
	if _, ok := s.players[pid]; !ok {
		return
	}
	s.scores[pid] += delta
	if floorZero && s.scores[pid] < 0 {
		s.scores[pid] = 0
	}
}

// topKeys returns the keys holding the maximum count, sorted, plus the
// maximum itself. Empty input yields no winners.
func topKeys(tally map[string]int) ([]string, int) {
	max := 0
	for _, n := range tally {
		if n > max {
			max = n
		}
	}
	if max == 0 {
		return nil, 0
	}
	var top []string
	for key, n := range tally {
		if n == max {
			top = append(top, key)
		}
	}
	sort.Strings(top)
	return top, max
}

func (s *Session) teamScoresLocked() []TeamScore {
	var out []TeamScore
	for _, team := range s.activeTeamIDsLocked() {
		total := 0
		for _, pid := range s.teamMembersLocked(team) {
			total += s.scores[pid]
		}
		out = append(out, TeamScore{TeamID: team, Name: s.teamNameLocked(team), Score: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// appendHistoryLocked records the resolved round, replacing the previous
// entry when the same round is resolved again.
func (s *Session) appendHistoryLocked(r Result) {
	entry := HistoryEntry{At: s.now(), Result: r}
	if n := len(s.history); n > 0 {
		last := &s.history[n-1]
		if last.Result.RoundID == r.RoundID && last.Result.Mode == r.Mode {
			*last = entry
			return
		}
	}
	s.history = append(s.history, entry)
}
