package repl

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/wfm/lang"
)

// ctrlPrefix introduces a control command.
const ctrlPrefix = ":"

// ctrlCommands are the available control commands.
var ctrlCommands = []string{"clear", "help", "history", "quit", "tables"}

// wordBounds returns the word at the cursor position, its byte boundaries
// within input and the sigil that introduces it. Words are runs of bytes that
// are not sigils of p. The sigil is 0 when the word is part of the prefix.
func wordBounds(
	p *lang.Profile,
	input string,
	cursor int,
) (word string, sigil byte, start, end int) {
	cursor = min(max(cursor, 0), len(input))

	start = cursor
	for start > 0 && !p.IsSigil(input[start-1]) {
		start--
	}

	end = cursor
	for end < len(input) && !p.IsSigil(input[end]) {
		end++
	}

	if start > 0 {
		sigil = input[start-1]
	}

	return input[start:end], sigil, start, end
}

// candidates returns the completions for a word introduced by sigil. Only
// macro names are completed.
func candidates(p *lang.Profile, sigil byte) []string {
	if sigil == '.' {
		return p.Tables.MacroNames()
	}

	return nil
}

// computeMatches determines the completion candidates for the current input
// and cursor. It returns the matches (ranked best-first) and the word
// boundaries. An empty macro name matches every macro.
func (m model) computeMatches() (
	matches fuzzy.Matches,
	wordStart, wordEnd int,
) {
	input := m.input.Value()
	cursor := m.input.Position()

	if cmd, ok := strings.CutPrefix(input, ctrlPrefix); ok {
		wordStart, wordEnd = len(ctrlPrefix), len(input)
		if cmd == "" {
			return nil, wordStart, wordEnd
		}

		return fuzzy.Find(cmd, ctrlCommands), wordStart, wordEnd
	}

	word, sigil, wordStart, wordEnd := wordBounds(m.profile, input, cursor)

	names := candidates(m.profile, sigil)
	if len(names) == 0 {
		return nil, wordStart, wordEnd
	}

	if word == "" {
		matches = make(fuzzy.Matches, len(names))
		for i, c := range names {
			matches[i] = fuzzy.Match{Str: c, Index: i}
		}

		return matches, wordStart, wordEnd
	}

	return fuzzy.Find(word, names), wordStart, wordEnd
}

// shortcutHint lists the shortcut keys and their templates, shown while the
// cursor follows a shortcut sigil.
func shortcutHint(p *lang.Profile, width int) string {
	keys := p.Tables.ShortcutKeys()
	parts := make([]string, len(keys))

	for i, k := range keys {
		parts[i] = suggestionStyle.Render(k) + hintStyle.Render("="+p.Tables.Shortcuts[k])
	}

	return ellipsize(parts, width)
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within the given terminal width. Each candidate is rendered with its matched
// characters highlighted. The selected candidate (when tabbing) uses the
// selected style.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	parts := make([]string, len(matches))

	for i, match := range matches {
		parts[i] = renderCandidate(match, tabActive && i == suggIdx)
	}

	return ellipsize(parts, width)
}

// ellipsize joins rendered parts with spaces, truncating with an ellipsis at
// the last part that fits within width.
func ellipsize(parts []string, width int) string {
	if len(parts) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, part := range parts {
		entryWidth := lipgloss.Width(part)
		if i > 0 {
			entryWidth += sepWidth
		}

		// Reserve room for the ellipsis unless this is the last part.
		reserve := ellipsisWidth
		if i == len(parts)-1 {
			reserve = 0
		}

		if i > 0 && used+entryWidth+reserve > width {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(part)

		used += entryWidth
	}

	return b.String()
}

// renderCandidate renders a single candidate with matched characters
// highlighted.
func renderCandidate(match fuzzy.Match, selected bool) string {
	baseStyle := suggestionStyle
	highlightStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("4")).
		Bold(true)

	if selected {
		baseStyle = selectedStyle
		highlightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4")).
			Bold(true)
	}

	matchSet := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matchSet[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		if matchSet[i] {
			b.WriteString(highlightStyle.Render(string(r)))
		} else {
			b.WriteString(baseStyle.Render(string(r)))
		}
	}

	return b.String()
}
