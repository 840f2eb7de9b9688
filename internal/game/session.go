// Package game implements the round/phase orchestration engine for a single
// live party session: one mutable aggregate behind one mutex, per-mode phase
// automata, admission control for concurrent submissions, deterministic
// scoring, and a poll-driven auto-advance timer.
package game

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ContentSource supplies read-only prompt material. Draw must never return
// the same prompt twice in a row for a mode.
type ContentSource interface {
	Draw(mode Mode) (prompt string, options []string, correctIndex int)
	TriviaPool(n int) []TriviaQuestion
	JeopardyBoard() []JeopardyCategory
	SpyRoles(location string) []string
}

// TextPolicy is the external content-policy predicate. A nil return means
// the text is allowed; any error is surfaced to the submitter. When the
// policy backend is unavailable it must return an error (fail closed).
type TextPolicy interface {
	Allowed(text string) error
}

// ManualPrompt is a host-supplied prompt that overrides the random draw for
// the next round.
type ManualPrompt struct {
	Text         string
	OptionA      string
	OptionB      string
	Options      []string
	CorrectIndex *int
	Target       *int
}

// Session is the sole mutable aggregate. Every mutation goes through its
// mutex; external reads go through Snapshot.
type Session struct {
	mu      sync.Mutex
	now     func() time.Time
	rng     *rand.Rand
	log     zerolog.Logger
	content ContentSource
	policy  TextPolicy

	lobbyCode string

	phase        Phase
	mode         Mode
	roundID      int
	prompt       string
	options      []string
	correctIndex *int

	players map[string]*Player
	scores  map[string]int
	teams   TeamState

	submissions       map[string]Answer
	submissionsLocked bool

	buzzer     buzzerState
	votebattle voteBattleState
	spyfall    spyfallState
	mafia      mafiaState
	jeopardy   jeopardyState
	relay      relayState
	draft      draftState
	wager      wagerState
	estimate   estimationState

	wavelengthTarget *int
	manual           *ManualPrompt

	// relayPrevCaptains survives round resets so captaincy rotates.
	relayPrevCaptains map[int]string

	settings Settings
	timer    Timer

	lastResult  *Result
	history     []HistoryEntry
	hostMessage string

	reclaims       []ReclaimRequest
	reclaimNotices map[string]string
}

type Option func(*Session)

// WithClock replaces the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithRand replaces the tie-break randomness source, for tests.
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) { s.rng = rng }
}

func WithLogger(log zerolog.Logger) Option {
	return func(s *Session) { s.log = log }
}

func WithSettings(settings Settings) Option {
	return func(s *Session) { s.settings = settings }
}

func WithLobbyCode(code string) Option {
	return func(s *Session) { s.lobbyCode = code }
}

func New(content ContentSource, policy TextPolicy, opts ...Option) *Session {
	s := &Session{
		now:               time.Now,
		rng:               rand.New(rand.NewSource(time.Now().UnixNano())),
		log:               zerolog.Nop(),
		content:           content,
		policy:            policy,
		phase:             PhaseLobby,
		mode:              ModeMostLikely,
		players:           make(map[string]*Player),
		scores:            make(map[string]int),
		submissions:       make(map[string]Answer),
		settings:          DefaultSettings(),
		reclaimNotices:    make(map[string]string),
		relayPrevCaptains: make(map[int]string),
		teams: TeamState{
			Count:    2,
			Names:    map[int]string{1: "Team 1", 2: "Team 2"},
			ByPlayer: make(map[string]int),
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) LobbyCode() string { return s.lobbyCode }

// JoinConflict selects what to do when the requested name belongs to
// another participant.
type JoinConflict string

const (
	ConflictAsk     JoinConflict = ""
	ConflictSuffix  JoinConflict = "suffix"
	ConflictReclaim JoinConflict = "reclaim"
)

var (
	ErrLobbyLocked   = reject("lobby_locked", "Lobby is locked.")
	ErrBadLobbyCode  = reject("bad_lobby_code", "Invalid lobby code.")
	ErrNameTaken     = reject("name_taken", "That name is already taken.")
	ErrNameRequired  = reject("name_required", "Display name is required.")
	ErrRenameBlocked = reject("rename_blocked", "Name changes are disabled.")
	ErrUnknownPlayer = reject("unknown_player", "Player not found.")
)

// Join admits or renames a participant. pid may be empty for a first join;
// the returned pid is the caller's stable identity. On a name conflict with
// ConflictReclaim, a pending reclaim request is filed and the pid is parked
// until the host decides.
func (s *Session) Join(pid, name, lobbyCode string, conflict JoinConflict) (string, error) {
	name = CleanText(name, NameMaxLen)
	if name == "" {
		return "", ErrNameRequired
	}
	// Content policy runs outside the lock; names are pre-cleaned.
	if s.policy != nil {
		if err := s.policy.Allowed(name); err != nil {
			return "", ErrContentRejected.With(err.Error())
		}
	}
	if pid == "" {
		pid = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, known := s.players[pid]
	if !known && s.settings.LobbyLocked {
		return "", ErrLobbyLocked
	}
	if s.settings.RequireLobbyCode && !lobbyCodeMatches(lobbyCode, s.lobbyCode) {
		return "", ErrBadLobbyCode
	}

	if otherPID := s.pidByNameLocked(name); otherPID != "" && otherPID != pid {
		switch conflict {
		case ConflictSuffix:
			name = makeUniqueName(name, s.namesLocked())
		case ConflictReclaim:
			req := ReclaimRequest{
				RequestID: uuid.NewString(),
				Name:      name,
				NewPID:    pid,
				At:        s.now(),
			}
			s.reclaims = append(s.reclaims, req)
			s.log.Info().Str("name", name).Msg("reclaim requested")
			return pid, nil
		default:
			return "", ErrNameTaken
		}
	}

	if !known {
		s.players[pid] = &Player{ID: pid, Name: name, JoinedAt: s.now()}
		s.scores[pid] = 0
		s.assignTeamLocked(pid)
		s.log.Info().Str("pid", pid).Str("name", name).Msg("player joined")
		return pid, nil
	}

	if !s.settings.AllowRenames && s.players[pid].Name != name {
		return "", ErrRenameBlocked
	}
	s.players[pid].Name = name
	if s.teams.Enabled {
		if _, ok := s.teams.ByPlayer[pid]; !ok {
			s.assignTeamLocked(pid)
		}
	}
	return pid, nil
}

// PlayerName returns the current display name for a pid, "" if unknown
// (including a pid parked behind a pending reclaim).
func (s *Session) PlayerName(pid string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.players[pid]; ok {
		return p.Name
	}
	return ""
}

func lobbyCodeMatches(input, expected string) bool {
	norm := func(code string) string {
		var b []rune
		for _, r := range code {
			if ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9') {
				b = append(b, r)
			} else if 'a' <= r && r <= 'z' {
				b = append(b, r-'a'+'A')
			}
		}
		return string(b)
	}
	return input != "" && norm(input) == norm(expected)
}

func (s *Session) pidByNameLocked(name string) string {
	for pid, p := range s.players {
		if p.Name == name {
			return pid
		}
	}
	return ""
}

func (s *Session) namesLocked() []string {
	names := make([]string, 0, len(s.players))
	for _, p := range s.players {
		names = append(names, p.Name)
	}
	return names
}

// Kick removes a participant and every reference to them in the current
// round, so tallies and turn pointers never dangle.
func (s *Session) Kick(pid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.players[pid]; !ok {
		return ErrUnknownPlayer
	}
	s.removePlayerLocked(pid)
	s.hostMessage = "Player removed."
	return nil
}

func (s *Session) removePlayerLocked(pid string) {
	delete(s.players, pid)
	delete(s.scores, pid)
	delete(s.submissions, pid)
	delete(s.teams.ByPlayer, pid)
	delete(s.buzzer.Steals, pid)
	s.buzzer.StealOrder = removeString(s.buzzer.StealOrder, pid)
	if s.buzzer.WinnerPID == pid {
		s.buzzer.WinnerPID = ""
		s.buzzer.WinnerTeam = 0
		s.buzzer.BuzzAt = time.Time{}
	}
	if s.buzzer.AnswerPID == pid {
		s.buzzer.AnswerPID = ""
		s.buzzer.AnswerTeam = 0
		s.buzzer.AnswerChoice = nil
	}

	delete(s.votebattle.Votes, pid)
	var removedEntries []int
	kept := s.votebattle.Entries[:0]
	for _, e := range s.votebattle.Entries {
		if e.PID == pid {
			removedEntries = append(removedEntries, e.ID)
			continue
		}
		kept = append(kept, e)
	}
	s.votebattle.Entries = kept
	for voter, entryID := range s.votebattle.Votes {
		for _, removed := range removedEntries {
			if entryID == removed {
				delete(s.votebattle.Votes, voter)
			}
		}
	}

	delete(s.spyfall.Roles, pid)
	if s.spyfall.SpyPID == pid {
		s.spyfall.SpyPID = ""
	}

	delete(s.mafia.Roles, pid)
	s.mafia.Alive = removeString(s.mafia.Alive, pid)
	delete(s.mafia.WolfVotes, pid)
	delete(s.mafia.DayVotes, pid)
	delete(s.mafia.SeerPeeks, pid)

	delete(s.wager.Wagers, pid)
	delete(s.wager.Answers, pid)

	if s.jeopardy.Buzz.WinnerPID == pid {
		s.jeopardy.Buzz.WinnerPID = ""
		s.jeopardy.Buzz.WinnerTeam = 0
	}
	if s.relay.Captains != nil {
		for teamID, captain := range s.relay.Captains {
			if captain == pid {
				delete(s.relay.Captains, teamID)
			}
		}
	}
}

// KickAll clears the lobby back to an empty initial state, keeping settings.
func (s *Session) KickAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players = make(map[string]*Player)
	s.scores = make(map[string]int)
	s.teams.ByPlayer = make(map[string]int)
	s.reclaims = nil
	s.reclaimNotices = make(map[string]string)
	s.resetRoundLocked()
	s.roundID = 0
	s.hostMessage = "All players removed."
}

// ReclaimRequests returns pending identity-migration requests.
func (s *Session) ReclaimRequests() []ReclaimRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ReclaimRequest, len(s.reclaims))
	copy(out, s.reclaims)
	return out
}

// ApproveReclaim migrates the name holder's identity to the requesting pid,
// rewriting every back-reference atomically.
func (s *Session) ApproveReclaim(requestID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	req, ok := s.takeReclaimLocked(requestID)
	if !ok {
		return ErrPreconditionUnmet.With("Reclaim request not found.")
	}
	oldPID := s.pidByNameLocked(req.Name)
	if oldPID == "" {
		// Holder left in the meantime; admit the requester fresh.
		s.players[req.NewPID] = &Player{ID: req.NewPID, Name: makeUniqueName(req.Name, s.namesLocked()), JoinedAt: s.now()}
		s.scores[req.NewPID] = 0
		s.assignTeamLocked(req.NewPID)
	} else {
		s.transferIdentityLocked(oldPID, req.NewPID)
	}
	s.reclaimNotices[req.NewPID] = "Reclaim approved."
	s.hostMessage = "Reclaim approved."
	return nil
}

// DenyReclaim admits the requester under a suffixed name instead.
func (s *Session) DenyReclaim(requestID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	req, ok := s.takeReclaimLocked(requestID)
	if !ok {
		return ErrPreconditionUnmet.With("Reclaim request not found.")
	}
	name := makeUniqueName(req.Name, s.namesLocked())
	s.players[req.NewPID] = &Player{ID: req.NewPID, Name: name, JoinedAt: s.now()}
	s.scores[req.NewPID] = 0
	s.assignTeamLocked(req.NewPID)
	s.reclaimNotices[req.NewPID] = "Reclaim denied. Joined as " + name + "."
	s.hostMessage = "Reclaim denied."
	return nil
}

func (s *Session) takeReclaimLocked(requestID string) (ReclaimRequest, bool) {
	for i, req := range s.reclaims {
		if req.RequestID == requestID {
			s.reclaims = append(s.reclaims[:i], s.reclaims[i+1:]...)
			return req, true
		}
	}
	return ReclaimRequest{}, false
}

// TakeReclaimNotice pops the one-shot outcome message for a pid, if any.
func (s *Session) TakeReclaimNotice(pid string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg := s.reclaimNotices[pid]
	delete(s.reclaimNotices, pid)
	return msg
}

func (s *Session) transferIdentityLocked(oldPID, newPID string) {
	if oldPID == newPID {
		return
	}
	// Drop any state the new pid accumulated before the transfer.
	s.removePlayerLocked(newPID)

	if p, ok := s.players[oldPID]; ok {
		p.ID = newPID
		s.players[newPID] = p
		delete(s.players, oldPID)
	}
	moveKey(s.scores, oldPID, newPID)
	moveKey(s.teams.ByPlayer, oldPID, newPID)
	moveKey(s.submissions, oldPID, newPID)
	for voter, answer := range s.submissions {
		if answer.Target == oldPID {
			answer.Target = newPID
			s.submissions[voter] = answer
		}
	}

	moveKey(s.votebattle.Votes, oldPID, newPID)
	for i := range s.votebattle.Entries {
		if s.votebattle.Entries[i].PID == oldPID {
			s.votebattle.Entries[i].PID = newPID
		}
	}

	moveKey(s.spyfall.Roles, oldPID, newPID)
	if s.spyfall.SpyPID == oldPID {
		s.spyfall.SpyPID = newPID
	}

	moveKey(s.mafia.Roles, oldPID, newPID)
	for i, pid := range s.mafia.Alive {
		if pid == oldPID {
			s.mafia.Alive[i] = newPID
		}
	}
	moveKey(s.mafia.WolfVotes, oldPID, newPID)
	for wolf, target := range s.mafia.WolfVotes {
		if target == oldPID {
			s.mafia.WolfVotes[wolf] = newPID
		}
	}
	moveKey(s.mafia.DayVotes, oldPID, newPID)
	for voter, target := range s.mafia.DayVotes {
		if target == oldPID {
			s.mafia.DayVotes[voter] = newPID
		}
	}
	moveKey(s.mafia.SeerPeeks, oldPID, newPID)
	for seer, peek := range s.mafia.SeerPeeks {
		if peek.Target == oldPID {
			peek.Target = newPID
			s.mafia.SeerPeeks[seer] = peek
		}
	}

	if s.buzzer.WinnerPID == oldPID {
		s.buzzer.WinnerPID = newPID
	}
	if s.buzzer.AnswerPID == oldPID {
		s.buzzer.AnswerPID = newPID
	}
	moveKey(s.buzzer.Steals, oldPID, newPID)
	for i, pid := range s.buzzer.StealOrder {
		if pid == oldPID {
			s.buzzer.StealOrder[i] = newPID
		}
	}

	moveKey(s.wager.Wagers, oldPID, newPID)
	moveKey(s.wager.Answers, oldPID, newPID)
	if s.jeopardy.Buzz.WinnerPID == oldPID {
		s.jeopardy.Buzz.WinnerPID = newPID
	}
	for teamID, captain := range s.relay.Captains {
		if captain == oldPID {
			s.relay.Captains[teamID] = newPID
		}
	}
	if s.draft.AnswerPID == oldPID {
		s.draft.AnswerPID = newPID
	}
	s.log.Info().Str("old", oldPID).Str("new", newPID).Msg("identity transferred")
}

func moveKey[V any](m map[string]V, oldKey, newKey string) {
	if m == nil {
		return
	}
	if v, ok := m[oldKey]; ok {
		m[newKey] = v
		delete(m, oldKey)
	}
}

func removeString(list []string, s string) []string {
	out := list[:0]
	for _, v := range list {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}

// SetTeams configures team play. Count is clamped to 2..4; players whose
// team disappears are reassigned to the emptiest team.
func (s *Session) SetTeams(enabled bool, count int, names map[int]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if count < 2 {
		count = 2
	}
	if count > 4 {
		count = 4
	}
	s.teams.Enabled = enabled
	s.teams.Count = count
	if s.teams.Names == nil {
		s.teams.Names = make(map[int]string)
	}
	for teamID := 1; teamID <= count; teamID++ {
		if _, ok := s.teams.Names[teamID]; !ok {
			s.teams.Names[teamID] = fmt.Sprintf("Team %d", teamID)
		}
		if name := CleanText(names[teamID], NameMaxLen); name != "" {
			s.teams.Names[teamID] = name
		}
	}
	for pid, teamID := range s.teams.ByPlayer {
		if teamID > count {
			delete(s.teams.ByPlayer, pid)
		}
	}
	if enabled {
		for pid := range s.players {
			if _, ok := s.teams.ByPlayer[pid]; !ok {
				s.assignTeamLocked(pid)
			}
		}
	}
	s.hostMessage = "Teams updated."
}

// RandomizeTeams reshuffles everyone round-robin across the active teams.
func (s *Session) RandomizeTeams() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.teams.Enabled {
		return
	}
	pids := s.sortedPIDsLocked()
	s.rng.Shuffle(len(pids), func(i, j int) { pids[i], pids[j] = pids[j], pids[i] })
	s.teams.ByPlayer = make(map[string]int)
	for i, pid := range pids {
		s.teams.ByPlayer[pid] = (i % s.teams.Count) + 1
	}
	s.hostMessage = "Teams randomized."
}

// assignTeamLocked balances a new player onto the smallest team, breaking
// ties randomly.
func (s *Session) assignTeamLocked(pid string) {
	if !s.teams.Enabled {
		return
	}
	counts := make(map[int]int, s.teams.Count)
	for teamID := 1; teamID <= s.teams.Count; teamID++ {
		counts[teamID] = 0
	}
	for _, teamID := range s.teams.ByPlayer {
		if _, ok := counts[teamID]; ok {
			counts[teamID]++
		}
	}
	minCount := -1
	for _, c := range counts {
		if minCount == -1 || c < minCount {
			minCount = c
		}
	}
	var candidates []int
	for teamID := 1; teamID <= s.teams.Count; teamID++ {
		if counts[teamID] == minCount {
			candidates = append(candidates, teamID)
		}
	}
	s.teams.ByPlayer[pid] = candidates[s.rng.Intn(len(candidates))]
}

func (s *Session) teamOf(pid string) int {
	if !s.teams.Enabled {
		return 0
	}
	return s.teams.ByPlayer[pid]
}

func (s *Session) activeTeamIDsLocked() []int {
	seen := make(map[int]bool)
	var out []int
	for teamID := 1; teamID <= s.teams.Count; teamID++ {
		for _, assigned := range s.teams.ByPlayer {
			if assigned == teamID && !seen[teamID] {
				seen[teamID] = true
				out = append(out, teamID)
			}
		}
	}
	return out
}

func (s *Session) teamMembersLocked(teamID int) []string {
	var out []string
	for _, pid := range s.sortedPIDsLocked() {
		if s.teams.ByPlayer[pid] == teamID {
			out = append(out, pid)
		}
	}
	return out
}

// sortedPIDsLocked gives a deterministic iteration order (by join time,
// then id) for operations where map order must not leak randomness.
func (s *Session) sortedPIDsLocked() []string {
	pids := make([]string, 0, len(s.players))
	for pid := range s.players {
		pids = append(pids, pid)
	}
	for i := 1; i < len(pids); i++ {
		for j := i; j > 0; j-- {
			a, b := s.players[pids[j-1]], s.players[pids[j]]
			if a.JoinedAt.Before(b.JoinedAt) || (a.JoinedAt.Equal(b.JoinedAt) && a.ID < b.ID) {
				break
			}
			pids[j-1], pids[j] = pids[j], pids[j-1]
		}
	}
	return pids
}

// UpdateSettings applies host settings with clamping, and re-arms or stops
// the timer to match the new configuration.
func (s *Session) UpdateSettings(settings Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	settings.TimerSeconds = clamp(settings.TimerSeconds, 10, 180)
	settings.VoteTimerSeconds = clamp(settings.VoteTimerSeconds, 10, 120)
	if settings.LatePolicy != "accept" {
		settings.LatePolicy = "lock_after_timer"
	}
	if settings.QuickDrawScoring != "host" {
		settings.QuickDrawScoring = "unique"
	}
	settings.MafiaWolfCount = clamp(settings.MafiaWolfCount, 1, 2)
	settings.DraftQuestionCount = clamp(settings.DraftQuestionCount, 1, 5)
	if settings.WagerMax < 1 {
		settings.WagerMax = 1
	}
	s.settings = settings

	if !settings.TimerEnabled {
		s.submissionsLocked = s.phase == PhaseRevealed
		s.stopTimerLocked()
		return
	}
	if s.phase == PhaseInRound {
		s.armTimerLocked(s.currentPhaseSecondsLocked())
	} else {
		s.stopTimerLocked()
	}
}

func (s *Session) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// SetManualPrompt stages a host-supplied prompt for the next round start;
// nil reverts to random draws.
func (s *Session) SetManualPrompt(mp *ManualPrompt) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.manual = mp
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
