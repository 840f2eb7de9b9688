package game

import (
	"time"
)

type Phase string

const (
	PhaseLobby    Phase = "lobby"
	PhaseInRound  Phase = "in_round"
	PhaseRevealed Phase = "revealed"
)

type Mode string

const (
	ModeMostLikely     Mode = "mlt"
	ModeWouldYouRather Mode = "wyr"
	ModeTrivia         Mode = "trivia"
	ModeTriviaBuzzer   Mode = "trivia_buzzer"
	ModeTeamTrivia     Mode = "team_trivia"
	ModeTeamJeopardy   Mode = "team_jeopardy"
	ModeRelayTrivia    Mode = "relay_trivia"
	ModeTriviaDraft    Mode = "trivia_draft"
	ModeWagerTrivia    Mode = "wager_trivia"
	ModeEstimation     Mode = "estimation_duel"
	ModeHotSeat        Mode = "hotseat"
	ModeQuickDraw      Mode = "quickdraw"
	ModeWavelength     Mode = "wavelength"
	ModeVoteBattle     Mode = "votebattle"
	ModeSpyfall        Mode = "spyfall"
	ModeMafia          Mode = "mafia"
)

var modeLabels = map[Mode]string{
	ModeMostLikely:     "Most Likely To",
	ModeWouldYouRather: "Would You Rather",
	ModeTrivia:         "Trivia",
	ModeTriviaBuzzer:   "Trivia Buzzer",
	ModeTeamTrivia:     "Team Trivia Buzzer",
	ModeTeamJeopardy:   "Team Jeopardy",
	ModeRelayTrivia:    "Relay Trivia",
	ModeTriviaDraft:    "Trivia Draft",
	ModeWagerTrivia:    "Wager Trivia",
	ModeEstimation:     "Estimation Duel",
	ModeHotSeat:        "Hot Seat",
	ModeQuickDraw:      "Quick Draw",
	ModeWavelength:     "Wavelength",
	ModeVoteBattle:     "Vote Battle",
	ModeSpyfall:        "Spyfall Lite",
	ModeMafia:          "Mafia/Werewolf",
}

func (m Mode) Valid() bool {
	_, ok := modeLabels[m]
	return ok
}

func (m Mode) Label() string {
	if label, ok := modeLabels[m]; ok {
		return label
	}
	return string(m)
}

// Text and timing limits.
const (
	NameMaxLen       = 24
	TextMaxLen       = 120
	QuickDrawMaxLen  = 40
	VoteBattleMaxLen = 80

	TimerDefaultSeconds     = 45
	VoteTimerDefaultSeconds = 30

	MafiaMinPlayers = 5
)

type Player struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	JoinedAt time.Time `json:"joinedAt"`
}

// Answer is a single recorded submission. Which field is meaningful depends
// on the mode and sub-phase it was admitted for.
type Answer struct {
	Target string `json:"target,omitempty"`
	Choice int    `json:"choice,omitempty"`
	Text   string `json:"text,omitempty"`
	Guess  int    `json:"guess,omitempty"`
}

// Payload is the raw submission a participant sends. Pointer fields
// distinguish "absent" from zero values.
type Payload struct {
	Target  string `json:"target,omitempty"`
	Choice  *int   `json:"choice,omitempty"`
	Text    string `json:"text,omitempty"`
	Guess   *int   `json:"guess,omitempty"`
	Buzz    bool   `json:"buzz,omitempty"`
	EntryID *int   `json:"entryId,omitempty"`
	Wager   *int   `json:"wager,omitempty"`
	Cat     *int   `json:"cat,omitempty"`
	Clue    *int   `json:"clue,omitempty"`
}

type TeamState struct {
	Enabled  bool           `json:"enabled"`
	Count    int            `json:"count"`
	Names    map[int]string `json:"names"`
	ByPlayer map[string]int `json:"byPlayer"`
}

type Timer struct {
	StartAt  time.Time
	Duration time.Duration
	Expired  bool
	Armed    bool
}

// Remaining seconds at the given instant, never negative.
func (t *Timer) Remaining(now time.Time) int {
	if !t.Armed {
		return 0
	}
	left := t.Duration - now.Sub(t.StartAt)
	if left < 0 {
		return 0
	}
	return int(left / time.Second)
}

// Settings are host-tunable knobs. Defaults mirror DefaultSettings.
type Settings struct {
	TimerEnabled     bool   `json:"timerEnabled"`
	TimerSeconds     int    `json:"timerSeconds"`
	VoteTimerSeconds int    `json:"voteTimerSeconds"`
	AutoAdvance      bool   `json:"autoAdvance"`
	LatePolicy       string `json:"latePolicy"` // "accept" | "lock_after_timer"

	WYRPointsMajority  bool   `json:"wyrPointsMajority"`
	QuickDrawScoring   string `json:"quickdrawScoring"` // "unique" | "host"
	BuzzerStealEnabled bool   `json:"buzzerStealEnabled"`

	SpyfallAutoStartVote bool `json:"spyfallAutoStartVote"`
	SpyfallAllowSelfVote bool `json:"spyfallAllowSelfVote"`

	MafiaSeerEnabled   bool `json:"mafiaSeerEnabled"`
	MafiaAutoWolfCount bool `json:"mafiaAutoWolfCount"`
	MafiaWolfCount     int  `json:"mafiaWolfCount"`
	MafiaRevealRoles   bool `json:"mafiaRevealRoles"`

	DraftQuestionCount int  `json:"draftQuestionCount"`
	EstimatePriceRight bool `json:"estimatePriceRight"`
	WagerMax           int  `json:"wagerMax"`
	WagerFloorZero     bool `json:"wagerFloorZero"`

	AllowRenames     bool `json:"allowRenames"`
	LobbyLocked      bool `json:"lobbyLocked"`
	RequireLobbyCode bool `json:"requireLobbyCode"`
}

func DefaultSettings() Settings {
	return Settings{
		TimerEnabled:         true,
		TimerSeconds:         TimerDefaultSeconds,
		VoteTimerSeconds:     VoteTimerDefaultSeconds,
		AutoAdvance:          true,
		LatePolicy:           "lock_after_timer",
		QuickDrawScoring:     "unique",
		BuzzerStealEnabled:   true,
		SpyfallAutoStartVote: true,
		MafiaSeerEnabled:     true,
		MafiaAutoWolfCount:   true,
		MafiaWolfCount:       1,
		MafiaRevealRoles:     true,
		DraftQuestionCount:   3,
		WagerMax:             3,
		WagerFloorZero:       true,
		AllowRenames:         true,
		RequireLobbyCode:     true,
	}
}

// Buzzer sub-phases (trivia_buzzer, team_trivia; reused by jeopardy/draft).
const (
	SubBuzz   = "buzz"
	SubAnswer = "answer"
	SubSteal  = "steal"
)

type buzzerState struct {
	Phase        string
	WinnerPID    string
	WinnerTeam   int
	BuzzAt       time.Time
	AnswerPID    string
	AnswerTeam   int
	AnswerChoice *int
	Steals       map[string]int
	StealOrder   []string // admission order; first correct steal scores
}

// Vote battle sub-phases.
const (
	SubSubmit = "submit"
	SubVote   = "vote"
)

type VoteBattleEntry struct {
	ID   int    `json:"id"`
	PID  string `json:"pid"`
	Text string `json:"text"`
}

type voteBattleState struct {
	Phase   string
	Entries []VoteBattleEntry
	Votes   map[string]int // voter pid -> entry id
	NextID  int
}

// Spyfall sub-phases.
const (
	SubQuestion = "question"
)

type spyfallState struct {
	Phase    string
	Location string
	SpyPID   string
	Roles    map[string]string
}

// Mafia sub-phases.
const (
	SubNight = "night"
	SubDay   = "day"
	SubOver  = "over"
)

const (
	RoleWerewolf = "werewolf"
	RoleSeer     = "seer"
	RoleVillager = "villager"
)

type SeerPeek struct {
	Target     string `json:"target"`
	IsWerewolf bool   `json:"isWerewolf"`
}

type mafiaState struct {
	Phase          string
	Roles          map[string]string
	Alive          []string
	WolfVotes      map[string]string
	DayVotes       map[string]string
	SeerPeeks      map[string]SeerPeek
	LastEliminated string
	Winner         string
}

func (m *mafiaState) isAlive(pid string) bool {
	for _, p := range m.Alive {
		if p == pid {
			return true
		}
	}
	return false
}

// Jeopardy.
const (
	SubBoard = "board"
)

type JeopardyClue struct {
	Value    int    `json:"value"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Used     bool   `json:"used"`
}

type JeopardyCategory struct {
	Name  string         `json:"name"`
	Clues []JeopardyClue `json:"clues"`
}

type jeopardyState struct {
	Phase      string
	Board      []JeopardyCategory
	PickTeam   int
	SelCat     int
	SelClue    int
	Buzz       buzzerState
	AnswerText string
	StealTexts map[int]string // team id -> answer text
	StealOrder []int
}

func (j *jeopardyState) selected() *JeopardyClue {
	if j.SelCat < 0 || j.SelCat >= len(j.Board) {
		return nil
	}
	clues := j.Board[j.SelCat].Clues
	if j.SelClue < 0 || j.SelClue >= len(clues) {
		return nil
	}
	return &clues[j.SelClue]
}

func (j *jeopardyState) exhausted() bool {
	for _, cat := range j.Board {
		for _, clue := range cat.Clues {
			if !clue.Used {
				return false
			}
		}
	}
	return true
}

// Relay.
type relayState struct {
	Phase    string
	Captains map[int]string
	Answers  map[int]int // team id -> choice
}

// Draft.
const (
	SubDraft = "draft"
)

type TriviaQuestion struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
}

type DraftOutcome struct {
	TeamID    int  `json:"teamId"`
	Question  int  `json:"question"`
	Correct   bool `json:"correct"`
	StealTeam int  `json:"stealTeam,omitempty"`
	Points    int  `json:"points"`
}

type draftState struct {
	Phase        string
	Pool         []TriviaQuestion
	TurnOrder    []int
	TurnIdx      int
	PickTeam     int // 0 when all picks are in
	Picks        map[int]int
	AnswerOrder  []int
	AnswerIdx    int
	AnswerChoice *int
	AnswerPID    string
	StealChoices map[int]int
	StealOrder   []int
	Outcomes     []DraftOutcome
}

func (d *draftState) activeTeam() int {
	if d.AnswerIdx < 0 || d.AnswerIdx >= len(d.AnswerOrder) {
		return 0
	}
	return d.AnswerOrder[d.AnswerIdx]
}

func (d *draftState) activeQuestion() *TriviaQuestion {
	team := d.activeTeam()
	if team == 0 {
		return nil
	}
	idx, ok := d.Picks[team]
	if !ok || idx < 0 || idx >= len(d.Pool) {
		return nil
	}
	return &d.Pool[idx]
}

// Wager.
const (
	SubWager = "wager"
)

type wagerState struct {
	Phase   string
	Wagers  map[string]int
	Answers map[string]int
}

type estimationState struct {
	Phase  string
	Target int
}

type GuessRow struct {
	PID      string `json:"pid"`
	Guess    int    `json:"guess"`
	Distance int    `json:"distance"`
	Over     bool   `json:"over"`
}

type AnswerGroup struct {
	Answer string   `json:"answer"`
	PIDs   []string `json:"pids"`
	Count  int      `json:"count"`
	Unique bool     `json:"unique"`
}

type EntryResult struct {
	ID    int    `json:"id"`
	PID   string `json:"pid"`
	Text  string `json:"text"`
	Votes int    `json:"votes"`
}

type TeamScore struct {
	TeamID int    `json:"teamId"`
	Name   string `json:"name"`
	Score  int    `json:"score"`
}

// Result is the immutable output of resolving one round. Only the fields
// relevant to the mode are populated.
type Result struct {
	Mode    Mode     `json:"mode"`
	RoundID int      `json:"roundId"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options,omitempty"`

	Tally       map[string]int `json:"tally,omitempty"`
	OptionTally []int          `json:"optionTally,omitempty"`
	Winners     []string       `json:"winners,omitempty"`
	MaxVotes    int            `json:"maxVotes,omitempty"`
	Majority    *int           `json:"majority,omitempty"`

	CorrectIndex *int `json:"correctIndex,omitempty"`

	BuzzWinnerPID string   `json:"buzzWinnerPid,omitempty"`
	BuzzWinner    int      `json:"buzzWinnerTeam,omitempty"`
	BuzzCorrect   bool     `json:"buzzCorrect,omitempty"`
	StealPID      string   `json:"stealPid,omitempty"`
	StealTeam     int      `json:"stealTeam,omitempty"`
	ScoringPIDs   []string `json:"scoringPids,omitempty"`
	Points        int      `json:"points,omitempty"`

	Answers    map[string]string `json:"answers,omitempty"`
	Groups     []AnswerGroup     `json:"groups,omitempty"`
	UniquePIDs []string          `json:"uniquePids,omitempty"`

	Target  *int       `json:"target,omitempty"`
	Guesses []GuessRow `json:"guesses,omitempty"`

	Entries []EntryResult `json:"entries,omitempty"`

	SpyPID    string `json:"spyPid,omitempty"`
	SpyCaught bool   `json:"spyCaught,omitempty"`
	Location  string `json:"location,omitempty"`

	MafiaWinner    string            `json:"mafiaWinner,omitempty"`
	Roles          map[string]string `json:"roles,omitempty"`
	Alive          []string          `json:"alive,omitempty"`
	LastEliminated string            `json:"lastEliminated,omitempty"`

	WagerDeltas map[string]int `json:"wagerDeltas,omitempty"`

	DraftOutcomes []DraftOutcome `json:"draftOutcomes,omitempty"`
	TeamScores    []TeamScore    `json:"teamScores,omitempty"`
}

type HistoryEntry struct {
	At     time.Time `json:"at"`
	Result Result    `json:"result"`
}

// ReclaimRequest is a pending identity-migration request: a new connection
// wants to take over an existing display name (and its score, team, and
// in-flight state). The host approves or denies it.
type ReclaimRequest struct {
	RequestID string    `json:"requestId"`
	Name      string    `json:"name"`
	NewPID    string    `json:"newPid"`
	At        time.Time `json:"at"`
}
