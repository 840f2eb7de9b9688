// Package content supplies the prompt material for every mode: built-in
// catalogs drawn through shuffled bags, so prompts do not repeat until a
// bag is exhausted and never repeat back to back.
package content

import (
	"math/rand"
	"sync"
	"time"

	"partyhub/internal/game"
)

type Catalog struct {
	mu   sync.Mutex
	rng  *rand.Rand
	bags map[string]*bag

	mlt        []string
	wyr        []wyrPrompt
	trivia     []game.TriviaQuestion
	hotseat    []string
	quickdraw  []string
	wavelength []string
	votebattle []string
	estimation []estimationPrompt
	spyfall    []spyLocation
	jeopardy   []game.JeopardyCategory
}

type wyrPrompt struct {
	Prompt  string
	OptionA string
	OptionB string
}

type estimationPrompt struct {
	Prompt string
	Target int
}

type spyLocation struct {
	Name  string
	Roles []string
}

func NewCatalog(opts ...Option) *Catalog {
	c := &Catalog{
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		bags:       make(map[string]*bag),
		mlt:        mltPrompts,
		wyr:        wyrPrompts,
		trivia:     triviaQuestions,
		hotseat:    hotseatPrompts,
		quickdraw:  quickdrawPrompts,
		wavelength: wavelengthPrompts,
		votebattle: votebattlePrompts,
		estimation: estimationPrompts,
		spyfall:    spyLocations,
		jeopardy:   jeopardyCategories,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type Option func(*Catalog)

// WithRand replaces the shuffle source, for tests.
func WithRand(rng *rand.Rand) Option {
	return func(c *Catalog) { c.rng = rng }
}

// Draw returns the next prompt for the mode. The third return value is the
// correct option index for trivia-style modes, the target number for
// estimation, and -1 otherwise.
func (c *Catalog) Draw(mode game.Mode) (string, []string, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch mode {
	case game.ModeMostLikely:
		return c.mlt[c.nextLocked("mlt", len(c.mlt))], nil, -1
	case game.ModeWouldYouRather:
		p := c.wyr[c.nextLocked("wyr", len(c.wyr))]
		return p.Prompt, []string{p.OptionA, p.OptionB}, -1
	case game.ModeTrivia, game.ModeTriviaBuzzer, game.ModeTeamTrivia,
		game.ModeRelayTrivia, game.ModeWagerTrivia:
		q := c.trivia[c.nextLocked("trivia", len(c.trivia))]
		return q.Question, q.Options, q.CorrectIndex
	case game.ModeHotSeat:
		return c.hotseat[c.nextLocked("hotseat", len(c.hotseat))], nil, -1
	case game.ModeQuickDraw:
		return c.quickdraw[c.nextLocked("quickdraw", len(c.quickdraw))], nil, -1
	case game.ModeWavelength:
		return c.wavelength[c.nextLocked("wavelength", len(c.wavelength))], nil, -1
	case game.ModeVoteBattle:
		return c.votebattle[c.nextLocked("votebattle", len(c.votebattle))], nil, -1
	case game.ModeEstimation:
		p := c.estimation[c.nextLocked("estimation", len(c.estimation))]
		return p.Prompt, nil, p.Target
	case game.ModeSpyfall:
		loc := c.spyfall[c.nextLocked("spyfall", len(c.spyfall))]
		return loc.Name, loc.Roles, -1
	}
	return "", nil, -1
}

// TriviaPool returns n distinct questions for the draft, fewer when the
// catalog is smaller than n.
func (c *Catalog) TriviaPool(n int) []game.TriviaQuestion {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n > len(c.trivia) {
		n = len(c.trivia)
	}
	pool := make([]game.TriviaQuestion, 0, n)
	seen := make(map[int]bool, n)
	for len(pool) < n {
		idx := c.nextLocked("trivia", len(c.trivia))
		if seen[idx] {
			continue
		}
		seen[idx] = true
		pool = append(pool, c.trivia[idx])
	}
	return pool
}

// JeopardyBoard assembles a fresh 4x3 board with row values 100/200/300.
func (c *Catalog) JeopardyBoard() []game.JeopardyCategory {
	c.mu.Lock()
	defer c.mu.Unlock()
	board := make([]game.JeopardyCategory, 0, 4)
	seen := make(map[int]bool, 4)
	for len(board) < 4 && len(board) < len(c.jeopardy) {
		idx := c.nextLocked("jeopardy", len(c.jeopardy))
		if seen[idx] {
			continue
		}
		seen[idx] = true
		src := c.jeopardy[idx]
		cat := game.JeopardyCategory{Name: src.Name}
		for row, clue := range src.Clues {
			clue.Value = (row + 1) * 100
			clue.Used = false
			cat.Clues = append(cat.Clues, clue)
		}
		board = append(board, cat)
	}
	return board
}

// SpyRoles returns the role list for a known location, or a generic set so
// manual locations still work.
func (c *Catalog) SpyRoles(location string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, loc := range c.spyfall {
		if loc.Name == location {
			return append([]string(nil), loc.Roles...)
		}
	}
	return []string{"Regular", "Employee", "Manager", "Visitor", "Old-Timer", "Newcomer"}
}

func (c *Catalog) nextLocked(key string, size int) int {
	b, ok := c.bags[key]
	if !ok {
		b = &bag{last: -1}
		c.bags[key] = b
	}
	return b.draw(c.rng, size)
}

// bag deals catalog indices in shuffled order, refilling on exhaustion and
// never dealing the same index twice in a row across refills.
type bag struct {
	items []int
	last  int
}

func (b *bag) draw(rng *rand.Rand, size int) int {
	if size <= 0 {
		return 0
	}
	if len(b.items) == 0 {
		b.items = make([]int, size)
		for i := range b.items {
			b.items[i] = i
		}
		rng.Shuffle(len(b.items), func(i, j int) {
			b.items[i], b.items[j] = b.items[j], b.items[i]
		})
		if size > 1 && b.items[0] == b.last {
			swap := 1 + rng.Intn(size-1)
			b.items[0], b.items[swap] = b.items[swap], b.items[0]
		}
	}
	idx := b.items[0]
	b.items = b.items[1:]
	b.last = idx
	return idx
}
