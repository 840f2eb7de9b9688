package game

import (
	"fmt"
	"sort"
)

// Team jeopardy: board pick -> buzz -> free-text answer -> steal, looping
// until the board is exhausted or the host ends the game.

type jeopardyAuto struct{}

func (jeopardyAuto) start(s *Session) {
	teams := s.activeTeamIDsLocked()
	s.jeopardy = jeopardyState{
		Phase:      SubBoard,
		Board:      s.content.JeopardyBoard(),
		PickTeam:   teams[0],
		SelCat:     -1,
		SelClue:    -1,
		StealTexts: make(map[int]string),
	}
	s.prompt = "Pick a clue from the board."
	s.options = nil
}

func (jeopardyAuto) subPhase(s *Session) string { return s.jeopardy.Phase }

func (jeopardyAuto) admit(s *Session, pid string, p Payload) error {
	j := &s.jeopardy
	team := s.teamOf(pid)
	switch j.Phase {
	case SubBoard:
		if team != j.PickTeam {
			return ErrNotEligible.With("It is not your team's pick.")
		}
		if p.Cat == nil || p.Clue == nil {
			return ErrInvalidPayload.With("Pick a category and value.")
		}
		cat, clue := *p.Cat, *p.Clue
		if cat < 0 || cat >= len(j.Board) || clue < 0 || clue >= len(j.Board[cat].Clues) {
			return ErrInvalidPayload.With("Unknown clue.")
		}
		if j.Board[cat].Clues[clue].Used {
			return ErrInvalidPayload.With("Clue already played.")
		}
		j.SelCat, j.SelClue = cat, clue
		j.Phase = SubBuzz
		j.Buzz = buzzerState{}
		j.AnswerText = ""
		j.StealTexts = make(map[int]string)
		j.StealOrder = nil
		s.submissionsLocked = false
		s.armTimerLocked(s.settings.VoteTimerSeconds)
		return nil
	case SubBuzz:
		if !p.Buzz {
			return ErrInvalidPayload.With("Buzz first.")
		}
		if team == 0 {
			return ErrNotEligible.With("Join a team first.")
		}
		at := s.now()
		if j.Buzz.WinnerPID == "" || at.Before(j.Buzz.BuzzAt) {
			j.Buzz.WinnerPID = pid
			j.Buzz.WinnerTeam = team
			j.Buzz.BuzzAt = at
		}
		return nil
	case SubAnswer:
		if team != j.Buzz.WinnerTeam {
			return ErrNotEligible.With("Only the buzzing team may answer.")
		}
		if j.AnswerText != "" {
			return ErrDuplicateSubmission.With("Answer already submitted.")
		}
		text := CleanText(p.Text, TextMaxLen)
		if text == "" {
			return ErrInvalidPayload.With("Answer cannot be empty.")
		}
		j.AnswerText = text
		j.Buzz.AnswerPID = pid
		return nil
	case SubSteal:
		if team == 0 || team == j.Buzz.WinnerTeam {
			return ErrNotEligible.With("Your team cannot steal.")
		}
		if _, ok := j.StealTexts[team]; ok {
			return ErrDuplicateSubmission.With("Your team already attempted a steal.")
		}
		text := CleanText(p.Text, TextMaxLen)
		if text == "" {
			return ErrInvalidPayload.With("Answer cannot be empty.")
		}
		j.StealTexts[team] = text
		j.StealOrder = append(j.StealOrder, team)
		return nil
	}
	return ErrInvalidPhase
}

// Ending the game is only sensible between clues.
func (jeopardyAuto) revealEligible(s *Session) bool {
	return s.jeopardy.Phase == SubBoard
}

func (jeopardyAuto) progressAction(s *Session) string {
	switch s.jeopardy.Phase {
	case SubBuzz:
		if s.jeopardy.Buzz.WinnerPID != "" {
			return "jeopardy_start_answer"
		}
	case SubAnswer:
		return "jeopardy_resolve"
	case SubSteal:
		return "jeopardy_resolve_steal"
	}
	return ""
}

func (jeopardyAuto) autoAdvance(s *Session) {
	j := &s.jeopardy
	switch j.Phase {
	case SubBoard:
		if j.exhausted() {
			s.finishRoundLocked()
			s.hostMessage = "Timer: Final scores revealed."
		}
	case SubBuzz:
		if j.Buzz.WinnerPID != "" {
			s.jeopardyToAnswerLocked()
			s.hostMessage = "Timer: Answer phase started."
			return
		}
		s.closeJeopardyClueLocked()
		s.hostMessage = "Timer: Nobody buzzed. Back to the board."
	case SubAnswer:
		s.jeopardyResolveLocked()
	case SubSteal:
		s.jeopardyStealLocked()
	}
}

func (s *Session) jeopardyStartAnswerLocked() error {
	if s.phase != PhaseInRound || s.jeopardy.Phase != SubBuzz {
		return ErrInvalidPhase.With("Not in the buzz phase.")
	}
	if s.jeopardy.Buzz.WinnerPID == "" {
		return ErrPreconditionUnmet.With("Nobody has buzzed yet.")
	}
	s.jeopardyToAnswerLocked()
	s.hostMessage = "Answer phase started."
	return nil
}

func (s *Session) jeopardyToAnswerLocked() {
	s.jeopardy.Phase = SubAnswer
	s.submissionsLocked = false
	s.armTimerLocked(s.settings.VoteTimerSeconds)
}

func (s *Session) jeopardyResolveAnswerLocked() error {
	if s.phase != PhaseInRound || s.jeopardy.Phase != SubAnswer {
		return ErrInvalidPhase.With("Not in the answer phase.")
	}
	s.jeopardyResolveLocked()
	return nil
}

func (s *Session) jeopardyResolveLocked() {
	j := &s.jeopardy
	clue := j.selected()
	if clue == nil {
		s.closeJeopardyClueLocked()
		return
	}
	if j.AnswerText != "" && answerMatches(j.AnswerText, clue.Answer) {
		points := clue.Value / 100
		s.scoreTeamLocked(j.Buzz.WinnerTeam, points)
		s.closeJeopardyClueLocked()
		s.hostMessage = fmt.Sprintf("Correct! %s scores %d.", s.teamNameLocked(j.Buzz.WinnerTeam), points)
		return
	}
	if s.settings.BuzzerStealEnabled && len(s.activeTeamIDsLocked()) > 1 {
		j.Phase = SubSteal
		s.submissionsLocked = false
		s.armTimerLocked(s.settings.VoteTimerSeconds)
		s.hostMessage = "Wrong answer. Steal window open."
		return
	}
	s.closeJeopardyClueLocked()
	s.hostMessage = "Wrong answer. Back to the board."
}

func (s *Session) jeopardyResolveStealLocked() error {
	if s.phase != PhaseInRound || s.jeopardy.Phase != SubSteal {
		return ErrInvalidPhase.With("Not in the steal phase.")
	}
	s.jeopardyStealLocked()
	return nil
}

// First correct steal in admission order scores.
func (s *Session) jeopardyStealLocked() {
	j := &s.jeopardy
	clue := j.selected()
	winner := 0
	if clue != nil {
		for _, team := range j.StealOrder {
			if answerMatches(j.StealTexts[team], clue.Answer) {
				winner = team
				break
			}
		}
	}
	if winner != 0 {
		points := clue.Value / 100
		s.scoreTeamLocked(winner, points)
		s.hostMessage = fmt.Sprintf("Steal! %s scores %d.", s.teamNameLocked(winner), points)
	} else {
		s.hostMessage = "No successful steal. Back to the board."
	}
	s.closeJeopardyClueLocked()
}

func (s *Session) closeJeopardyClueLocked() {
	j := &s.jeopardy
	if clue := j.selected(); clue != nil {
		clue.Used = true
	}
	j.SelCat, j.SelClue = -1, -1
	j.Buzz = buzzerState{}
	j.AnswerText = ""
	j.StealTexts = make(map[int]string)
	j.StealOrder = nil
	j.Phase = SubBoard
	j.PickTeam = s.nextActiveTeamLocked(j.PickTeam)
	s.submissionsLocked = false
	s.armTimerLocked(s.settings.TimerSeconds)
	if j.exhausted() {
		s.hostMessage = "Board exhausted. Reveal to end the game."
	}
}

func (s *Session) nextActiveTeamLocked(after int) int {
	teams := s.activeTeamIDsLocked()
	if len(teams) == 0 {
		return 0
	}
	for i, team := range teams {
		if team == after {
			return teams[(i+1)%len(teams)]
		}
	}
	return teams[0]
}

func (s *Session) scoreTeamLocked(teamID, points int) {
	for _, pid := range s.teamMembersLocked(teamID) {
		s.scores[pid] += points
	}
}

func (s *Session) teamNameLocked(teamID int) string {
	if name, ok := s.teams.Names[teamID]; ok {
		return name
	}
	return fmt.Sprintf("Team %d", teamID)
}

// Relay trivia: one question, only each team's captain may answer, and the
// captaincy rotates through the roster between rounds.

type relayAuto struct{}

func (relayAuto) start(s *Session) {
	captains := make(map[int]string)
	for _, team := range s.activeTeamIDsLocked() {
		members := s.teamMembersLocked(team)
		sort.Strings(members)
		idx := 0
		if prev, ok := s.relayPrevCaptains[team]; ok {
			for i, pid := range members {
				if pid == prev {
					idx = (i + 1) % len(members)
					break
				}
			}
		}
		captains[team] = members[idx]
		s.relayPrevCaptains[team] = members[idx]
	}
	s.relay = relayState{
		Phase:    SubQuestion,
		Captains: captains,
		Answers:  make(map[int]int),
	}
}

func (relayAuto) subPhase(s *Session) string { return s.relay.Phase }

func (relayAuto) admit(s *Session, pid string, p Payload) error {
	team := s.teamOf(pid)
	if team == 0 {
		return ErrNotEligible.With("Join a team first.")
	}
	if s.relay.Captains[team] != pid {
		return ErrNotEligible.With("Only your team's captain answers this round.")
	}
	if _, ok := s.relay.Answers[team]; ok {
		return ErrDuplicateSubmission.With("Your team already answered.")
	}
	if p.Choice == nil || *p.Choice < 0 || *p.Choice >= len(s.options) {
		return ErrInvalidPayload
	}
	s.relay.Answers[team] = *p.Choice
	return nil
}

func (relayAuto) revealEligible(s *Session) bool { return true }

func (relayAuto) progressAction(s *Session) string { return "" }

func (relayAuto) autoAdvance(s *Session) {
	s.finishRoundLocked()
	s.hostMessage = "Timer: Results revealed."
}

// Trivia draft: teams take turns drafting a question from a shared pool,
// then each team answers its own pick with a steal window on a miss.

type draftAuto struct{}

func (draftAuto) start(s *Session) {
	order := s.activeTeamIDsLocked()
	pool := s.content.TriviaPool(len(order) + s.settings.DraftQuestionCount)
	s.draft = draftState{
		Phase:        SubDraft,
		Pool:         pool,
		TurnOrder:    order,
		TurnIdx:      0,
		PickTeam:     order[0],
		Picks:        make(map[int]int),
		StealChoices: make(map[int]int),
	}
	s.prompt = "Draft a question for your team."
	s.options = nil
}

func (draftAuto) subPhase(s *Session) string { return s.draft.Phase }

func (draftAuto) admit(s *Session, pid string, p Payload) error {
	d := &s.draft
	team := s.teamOf(pid)
	switch d.Phase {
	case SubDraft:
		if team != d.PickTeam || team == 0 {
			return ErrNotEligible.With("It is not your team's pick.")
		}
		if p.Choice == nil || *p.Choice < 0 || *p.Choice >= len(d.Pool) {
			return ErrInvalidPayload.With("Unknown question.")
		}
		for _, picked := range d.Picks {
			if picked == *p.Choice {
				return ErrInvalidPayload.With("Question already drafted.")
			}
		}
		d.Picks[team] = *p.Choice
		d.TurnIdx++
		if d.TurnIdx < len(d.TurnOrder) {
			d.PickTeam = d.TurnOrder[d.TurnIdx]
			s.armTimerLocked(s.settings.VoteTimerSeconds)
		} else {
			d.PickTeam = 0
		}
		return nil
	case SubAnswer:
		active := d.activeTeam()
		if active == 0 {
			return ErrInvalidPhase.With("All questions are resolved.")
		}
		if team != active {
			return ErrNotEligible.With("It is not your team's question.")
		}
		if d.AnswerChoice != nil {
			return ErrDuplicateSubmission.With("Answer already submitted.")
		}
		q := d.activeQuestion()
		if q == nil || p.Choice == nil || *p.Choice < 0 || *p.Choice >= len(q.Options) {
			return ErrInvalidPayload
		}
		choice := *p.Choice
		d.AnswerChoice = &choice
		d.AnswerPID = pid
		return nil
	case SubSteal:
		active := d.activeTeam()
		if team == 0 || team == active {
			return ErrNotEligible.With("Your team cannot steal.")
		}
		if _, ok := d.StealChoices[team]; ok {
			return ErrDuplicateSubmission.With("Your team already attempted a steal.")
		}
		q := d.activeQuestion()
		if q == nil || p.Choice == nil || *p.Choice < 0 || *p.Choice >= len(q.Options) {
			return ErrInvalidPayload
		}
		d.StealChoices[team] = *p.Choice
		d.StealOrder = append(d.StealOrder, team)
		return nil
	}
	return ErrInvalidPhase
}

func (draftAuto) revealEligible(s *Session) bool {
	d := &s.draft
	return d.Phase == SubAnswer && d.activeTeam() == 0
}

func (draftAuto) progressAction(s *Session) string {
	d := &s.draft
	switch d.Phase {
	case SubDraft:
		if d.PickTeam == 0 {
			return "draft_start_answers"
		}
	case SubAnswer:
		if d.activeTeam() != 0 {
			return "draft_resolve_answer"
		}
	case SubSteal:
		return "draft_resolve_steal"
	}
	return ""
}

func (draftAuto) autoAdvance(s *Session) {
	d := &s.draft
	switch d.Phase {
	case SubDraft:
		if d.PickTeam == 0 {
			s.draftBeginAnswersLocked()
			s.hostMessage = "Timer: Answer phase started."
		}
	case SubAnswer:
		if d.activeTeam() != 0 {
			s.draftResolveLocked()
			return
		}
		s.finishRoundLocked()
		s.hostMessage = "Timer: Results revealed."
	case SubSteal:
		s.draftStealLocked()
	}
}

func (s *Session) draftStartAnswersLocked() error {
	d := &s.draft
	if s.phase != PhaseInRound || d.Phase != SubDraft {
		return ErrInvalidPhase.With("Not in the draft phase.")
	}
	if d.PickTeam != 0 {
		return ErrPreconditionUnmet.With("Every team must draft a question first.")
	}
	s.draftBeginAnswersLocked()
	s.hostMessage = "Answer phase started."
	return nil
}

func (s *Session) draftBeginAnswersLocked() {
	d := &s.draft
	d.AnswerOrder = append([]int(nil), d.TurnOrder...)
	d.AnswerIdx = 0
	d.Phase = SubAnswer
	d.AnswerChoice = nil
	d.AnswerPID = ""
	s.submissionsLocked = false
	s.armTimerLocked(s.settings.VoteTimerSeconds)
}

func (s *Session) draftResolveAnswerLocked() error {
	d := &s.draft
	if s.phase != PhaseInRound || d.Phase != SubAnswer || d.activeTeam() == 0 {
		return ErrInvalidPhase.With("Not in the answer phase.")
	}
	s.draftResolveLocked()
	return nil
}

func (s *Session) draftResolveLocked() {
	d := &s.draft
	team := d.activeTeam()
	q := d.activeQuestion()
	correct := q != nil && d.AnswerChoice != nil && *d.AnswerChoice == q.CorrectIndex
	if correct {
		s.scoreTeamLocked(team, 2)
		d.Outcomes = append(d.Outcomes, DraftOutcome{
			TeamID: team, Question: d.Picks[team], Correct: true, Points: 2,
		})
		s.draftNextTeamLocked()
		s.hostMessage = s.teamNameLocked(team) + " answered correctly."
		return
	}
	if s.settings.BuzzerStealEnabled && len(s.activeTeamIDsLocked()) > 1 {
		d.Phase = SubSteal
		d.StealChoices = make(map[int]int)
		d.StealOrder = nil
		s.submissionsLocked = false
		s.armTimerLocked(s.settings.VoteTimerSeconds)
		s.hostMessage = "Wrong answer. Steal window open."
		return
	}
	d.Outcomes = append(d.Outcomes, DraftOutcome{TeamID: team, Question: d.Picks[team]})
	s.draftNextTeamLocked()
	s.hostMessage = s.teamNameLocked(team) + " missed."
}

func (s *Session) draftResolveStealLocked() error {
	if s.phase != PhaseInRound || s.draft.Phase != SubSteal {
		return ErrInvalidPhase.With("Not in the steal phase.")
	}
	s.draftStealLocked()
	return nil
}

func (s *Session) draftStealLocked() {
	d := &s.draft
	team := d.activeTeam()
	q := d.activeQuestion()
	outcome := DraftOutcome{TeamID: team, Question: d.Picks[team]}
	if q != nil {
		for _, stealer := range d.StealOrder {
			if d.StealChoices[stealer] == q.CorrectIndex {
				s.scoreTeamLocked(stealer, 1)
				outcome.StealTeam = stealer
				outcome.Points = 1
				s.hostMessage = s.teamNameLocked(stealer) + " stole the point."
				break
			}
		}
	}
	if outcome.StealTeam == 0 {
		s.hostMessage = "No successful steal."
	}
	d.Outcomes = append(d.Outcomes, outcome)
	s.draftNextTeamLocked()
}

func (s *Session) draftNextTeamLocked() {
	d := &s.draft
	d.AnswerIdx++
	d.AnswerChoice = nil
	d.AnswerPID = ""
	d.StealChoices = make(map[int]int)
	d.StealOrder = nil
	d.Phase = SubAnswer
	if d.activeTeam() != 0 {
		s.submissionsLocked = false
		s.armTimerLocked(s.settings.VoteTimerSeconds)
	}
}

// Wager trivia: everyone commits a wager blind, then answers the question.

type wagerAuto struct{}

func (wagerAuto) start(s *Session) {
	s.wager = wagerState{
		Phase:   SubWager,
		Wagers:  make(map[string]int),
		Answers: make(map[string]int),
	}
}

func (wagerAuto) subPhase(s *Session) string { return s.wager.Phase }

func (wagerAuto) admit(s *Session, pid string, p Payload) error {
	w := &s.wager
	switch w.Phase {
	case SubWager:
		if _, ok := w.Wagers[pid]; ok {
			return ErrDuplicateSubmission.With("Wager already placed.")
		}
		if p.Wager == nil || *p.Wager < 0 || *p.Wager > s.settings.WagerMax {
			return ErrInvalidPayload.With(fmt.Sprintf("Wager must be 0 to %d.", s.settings.WagerMax))
		}
		w.Wagers[pid] = *p.Wager
		return nil
	case SubQuestion:
		if _, ok := w.Answers[pid]; ok {
			return ErrDuplicateSubmission.With("Answer already submitted.")
		}
		if p.Choice == nil || *p.Choice < 0 || *p.Choice >= len(s.options) {
			return ErrInvalidPayload
		}
		w.Answers[pid] = *p.Choice
		return nil
	}
	return ErrInvalidPhase
}

func (wagerAuto) revealEligible(s *Session) bool {
	return s.wager.Phase == SubQuestion
}

func (wagerAuto) progressAction(s *Session) string {
	if s.wager.Phase == SubWager {
		return "wager_start_question"
	}
	return ""
}

func (wagerAuto) autoAdvance(s *Session) {
	if s.wager.Phase == SubWager {
		s.wagerToQuestionLocked()
		s.hostMessage = "Timer: Question revealed."
		return
	}
	s.finishRoundLocked()
	s.hostMessage = "Timer: Results revealed."
}

func (s *Session) wagerStartQuestionLocked() error {
	if s.phase != PhaseInRound || s.wager.Phase != SubWager {
		return ErrInvalidPhase.With("Not in the wager phase.")
	}
	s.wagerToQuestionLocked()
	s.hostMessage = "Question revealed."
	return nil
}

func (s *Session) wagerToQuestionLocked() {
	s.wager.Phase = SubQuestion
	s.submissionsLocked = false
	s.armTimerLocked(s.settings.VoteTimerSeconds)
}
