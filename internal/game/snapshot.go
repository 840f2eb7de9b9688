package game

import "sort"

// Snapshots are deep copies: nothing handed out aliases live state, and
// the participant view never carries secrets (correct answers, roles,
// hidden targets, other players' wagers).

type PlayerView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Team int    `json:"team,omitempty"`
}

type ScoreRow struct {
	PID   string `json:"pid"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

type BoardCell struct {
	Value int  `json:"value"`
	Used  bool `json:"used"`
}

type BoardColumn struct {
	Name  string      `json:"name"`
	Cells []BoardCell `json:"cells"`
}

type OpenClue struct {
	Cat      int    `json:"cat"`
	Clue     int    `json:"clue"`
	Value    int    `json:"value"`
	Question string `json:"question"`
}

type Snapshot struct {
	LobbyCode string `json:"lobbyCode,omitempty"`
	Phase     Phase  `json:"phase"`
	Mode      Mode   `json:"mode"`
	ModeLabel string `json:"modeLabel"`
	RoundID   int    `json:"roundId"`
	SubPhase  string `json:"subPhase,omitempty"`

	Prompt  string   `json:"prompt,omitempty"`
	Options []string `json:"options,omitempty"`

	Players    []PlayerView `json:"players"`
	Scoreboard []ScoreRow   `json:"scoreboard"`

	TeamsEnabled bool           `json:"teamsEnabled"`
	TeamNames    map[int]string `json:"teamNames,omitempty"`
	TeamScores   []TeamScore    `json:"teamScores,omitempty"`

	SubmissionCount   int  `json:"submissionCount"`
	PlayerCount       int  `json:"playerCount"`
	SubmissionsLocked bool `json:"submissionsLocked"`

	TimerArmed     bool `json:"timerArmed"`
	TimerExpired   bool `json:"timerExpired"`
	TimerRemaining int  `json:"timerRemaining"`

	// Mode-specific public material.
	VoteEntries    []VoteBattleEntry `json:"voteEntries,omitempty"`
	Board          []BoardColumn     `json:"board,omitempty"`
	OpenClue       *OpenClue         `json:"openClue,omitempty"`
	PickTeam       int               `json:"pickTeam,omitempty"`
	ActiveTeam     int               `json:"activeTeam,omitempty"`
	BuzzWinnerName string            `json:"buzzWinnerName,omitempty"`
	Captains       map[int]string    `json:"captains,omitempty"`
	DraftPool      []string          `json:"draftPool,omitempty"`
	DraftPicks     map[int]int       `json:"draftPicks,omitempty"`

	Result *Result `json:"result,omitempty"`
}

// HostSnapshot adds everything the host console needs, secrets included.
type HostSnapshot struct {
	Snapshot

	CorrectIndex   *int              `json:"correctIndex,omitempty"`
	SpyPID         string            `json:"spyPid,omitempty"`
	SpyLocation    string            `json:"spyLocation,omitempty"`
	MafiaRoles     map[string]string `json:"mafiaRoles,omitempty"`
	MafiaAlive     []string          `json:"mafiaAlive,omitempty"`
	OpenClueAnswer string            `json:"openClueAnswer,omitempty"`
	Wagers         map[string]int    `json:"wagers,omitempty"`

	ProgressAction string           `json:"progressAction,omitempty"`
	ProgressLabel  string           `json:"progressLabel,omitempty"`
	HostMessage    string           `json:"hostMessage,omitempty"`
	Settings       Settings         `json:"settings"`
	Reclaims       []ReclaimRequest `json:"reclaims,omitempty"`
}

// Snapshot is the participant-facing poll payload.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// HostSnapshot is the host-facing poll payload.
func (s *Session) HostSnapshot() HostSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := HostSnapshot{Snapshot: s.snapshotLocked()}
	h.LobbyCode = s.lobbyCode
	h.Settings = s.settings
	h.HostMessage = s.hostMessage
	h.Reclaims = append([]ReclaimRequest(nil), s.reclaims...)
	if action := s.progressActionLocked(); action != "" {
		h.ProgressAction = action
		h.ProgressLabel = progressLabels[action]
	}
	if s.phase == PhaseInRound {
		h.CorrectIndex = copyIntPtr(s.correctIndex)
		switch s.mode {
		case ModeSpyfall:
			h.SpyPID = s.spyfall.SpyPID
			h.SpyLocation = s.spyfall.Location
		case ModeMafia:
			h.MafiaRoles = copyMap(s.mafia.Roles)
			h.MafiaAlive = append([]string(nil), s.mafia.Alive...)
		case ModeTeamJeopardy:
			if clue := s.jeopardy.selected(); clue != nil {
				h.OpenClueAnswer = clue.Answer
			}
		case ModeWagerTrivia:
			h.Wagers = copyMap(s.wager.Wagers)
		case ModeWavelength:
			h.CorrectIndex = copyIntPtr(s.wavelengthTarget)
		}
	}
	return h
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		Phase:             s.phase,
		Mode:              s.mode,
		ModeLabel:         s.mode.Label(),
		RoundID:           s.roundID,
		SubPhase:          automatonFor(s.mode).subPhase(s),
		Prompt:            s.prompt,
		Options:           append([]string(nil), s.options...),
		Scoreboard:        s.scoreboardLocked(),
		TeamsEnabled:      s.teams.Enabled,
		SubmissionCount:   s.submissionCountLocked(),
		PlayerCount:       len(s.players),
		SubmissionsLocked: s.submissionsLocked,
		TimerArmed:        s.timer.Armed,
		TimerExpired:      s.timer.Expired,
		TimerRemaining:    s.timer.Remaining(s.now()),
	}
	for _, pid := range s.sortedPIDsLocked() {
		snap.Players = append(snap.Players, PlayerView{
			ID:   pid,
			Name: s.players[pid].Name,
			Team: s.teams.ByPlayer[pid],
		})
	}
	if s.teams.Enabled {
		snap.TeamNames = copyMap(s.teams.Names)
		snap.TeamScores = s.teamScoresLocked()
	}
	if s.phase == PhaseRevealed && s.lastResult != nil {
		result := *s.lastResult
		snap.Result = &result
	}
	if s.phase == PhaseInRound {
		s.fillModeSnapshotLocked(&snap)
	}
	return snap
}

func (s *Session) fillModeSnapshotLocked(snap *Snapshot) {
	switch s.mode {
	case ModeVoteBattle:
		if s.votebattle.Phase == SubVote {
			snap.VoteEntries = append([]VoteBattleEntry(nil), s.votebattle.Entries...)
		}
	case ModeTriviaBuzzer, ModeTeamTrivia:
		if s.buzzer.WinnerPID != "" {
			snap.BuzzWinnerName = s.nameOf(s.buzzer.WinnerPID)
		}
		if s.buzzer.Phase == SubBuzz {
			// Options stay hidden until somebody holds the buzzer.
			snap.Options = nil
		}
	case ModeTeamJeopardy:
		snap.Board = s.publicBoardLocked()
		snap.PickTeam = s.jeopardy.PickTeam
		if clue := s.jeopardy.selected(); clue != nil {
			snap.OpenClue = &OpenClue{
				Cat:      s.jeopardy.SelCat,
				Clue:     s.jeopardy.SelClue,
				Value:    clue.Value,
				Question: clue.Question,
			}
		}
		if s.jeopardy.Buzz.WinnerPID != "" {
			snap.BuzzWinnerName = s.nameOf(s.jeopardy.Buzz.WinnerPID)
		}
	case ModeRelayTrivia:
		snap.Captains = copyMap(s.relay.Captains)
	case ModeTriviaDraft:
		d := &s.draft
		snap.ActiveTeam = d.activeTeam()
		snap.PickTeam = d.PickTeam
		snap.DraftPicks = copyMap(d.Picks)
		for _, q := range d.Pool {
			snap.DraftPool = append(snap.DraftPool, q.Question)
		}
		if q := d.activeQuestion(); q != nil && d.Phase != SubDraft {
			snap.Prompt = q.Question
			snap.Options = append([]string(nil), q.Options...)
		}
	case ModeWagerTrivia:
		if s.wager.Phase == SubWager {
			// Question and options stay hidden until wagers close.
			snap.Prompt = "Place your wager."
			snap.Options = nil
		}
	}
}

func (s *Session) publicBoardLocked() []BoardColumn {
	var board []BoardColumn
	for _, cat := range s.jeopardy.Board {
		col := BoardColumn{Name: cat.Name}
		for _, clue := range cat.Clues {
			col.Cells = append(col.Cells, BoardCell{Value: clue.Value, Used: clue.Used})
		}
		board = append(board, col)
	}
	return board
}

func (s *Session) scoreboardLocked() []ScoreRow {
	rows := make([]ScoreRow, 0, len(s.players))
	for pid, p := range s.players {
		rows = append(rows, ScoreRow{PID: pid, Name: p.Name, Score: s.scores[pid]})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Score != rows[j].Score {
			return rows[i].Score > rows[j].Score
		}
		return rows[i].Name < rows[j].Name
	})
	return rows
}

// Recap is the end-of-session export: final standings plus every resolved
// round in order.
type Recap struct {
	LobbyCode  string         `json:"lobbyCode,omitempty"`
	Scoreboard []ScoreRow     `json:"scoreboard"`
	TeamScores []TeamScore    `json:"teamScores,omitempty"`
	Rounds     []HistoryEntry `json:"rounds"`
}

func (s *Session) Recap() Recap {
	s.mu.Lock()
	defer s.mu.Unlock()
	recap := Recap{
		LobbyCode:  s.lobbyCode,
		Scoreboard: s.scoreboardLocked(),
		Rounds:     append([]HistoryEntry(nil), s.history...),
	}
	if s.teams.Enabled {
		recap.TeamScores = s.teamScoresLocked()
	}
	return recap
}

func copyIntPtr(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	if m == nil {
		return nil
	}
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
