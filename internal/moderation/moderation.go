// Package moderation implements the content policy applied to every piece
// of participant free text before it is admitted: a tiered built-in word
// filter, optionally backed by the OpenAI moderation endpoint. When the
// backend cannot be reached the text is rejected, never waved through.
package moderation

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"
)

const (
	ModeOff    = "off"
	ModeMild   = "mild"
	ModeStrict = "strict"
)

var ErrFlagged = errors.New("text was flagged by the content policy")

type Policy struct {
	mode   string
	words  map[string]bool
	client *Client
}

// New builds a policy for the given filter mode. client may be nil.
func New(mode string, client *Client) *Policy {
	p := &Policy{mode: mode, words: make(map[string]bool), client: client}
	switch mode {
	case ModeStrict:
		for _, w := range strictWords {
			p.words[w] = true
		}
		fallthrough
	case ModeMild:
		for _, w := range mildWords {
			p.words[w] = true
		}
	}
	return p
}

// Allowed reports whether the text passes the policy. Called outside any
// session lock; may block on the network.
func (p *Policy) Allowed(text string) error {
	if p.mode == ModeOff {
		return nil
	}
	for _, word := range tokenize(text) {
		if p.words[word] {
			return ErrFlagged
		}
	}
	if p.client != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		flagged, err := p.client.Check(ctx, text)
		if err != nil {
			// Fail closed.
			return err
		}
		if flagged {
			return ErrFlagged
		}
	}
	return nil
}

// tokenize splits on anything that is not a letter or digit, lowercased,
// so punctuation cannot smuggle a listed word through.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// The built-in lists are intentionally small: the mild tier catches the
// words that derail a party with mixed company, the strict tier adds the
// ones a workplace session cannot show on a projector.
var mildWords = []string{
	"fuck", "fucking", "fucker", "shit", "bullshit", "asshole",
	"bitch", "cunt", "dickhead", "motherfucker",
}

var strictWords = []string{
	"damn", "hell", "crap", "piss", "bastard", "dick", "prick",
	"ass", "douche", "slut", "whore",
}
