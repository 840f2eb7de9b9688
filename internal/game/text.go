package game

import (
	"fmt"
	"strings"
	"unicode"
)

// CleanText collapses whitespace and truncates to limit runes.
func CleanText(text string, limit int) string {
	cleaned := strings.Join(strings.Fields(text), " ")
	runes := []rune(cleaned)
	if len(runes) > limit {
		cleaned = strings.TrimSpace(string(runes[:limit]))
	}
	return cleaned
}

// normalizeText lowercases, collapses whitespace, and strips one leading
// article so "The Eiffel Tower" and "eiffel tower" collide.
func normalizeText(text string) string {
	cleaned := strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(text))), " ")
	for _, prefix := range []string{"a ", "an ", "the "} {
		if strings.HasPrefix(cleaned, prefix) {
			cleaned = strings.TrimSpace(strings.TrimPrefix(cleaned, prefix))
			break
		}
	}
	return cleaned
}

// normalizeAnswerKey additionally drops punctuation, for free-text answer
// matching in jeopardy.
func normalizeAnswerKey(text string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return normalizeText(b.String())
}

func answerMatches(guess, answer string) bool {
	return normalizeAnswerKey(guess) == normalizeAnswerKey(answer)
}

func makeUniqueName(base string, existing []string) string {
	taken := func(name string) bool {
		for _, n := range existing {
			if n == name {
				return true
			}
		}
		return false
	}
	if !taken(base) {
		return base
	}
	for suffix := 2; ; suffix++ {
		candidate := fmt.Sprintf("%s (%d)", base, suffix)
		if !taken(candidate) {
			return candidate
		}
	}
}
