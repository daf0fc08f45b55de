// Package refmatch is a deliberately naive reference implementation of LIKE
// matching, used only by tests as a differential-testing oracle against the
// compiled matcher. It has no compilation step and no automaton: it just
// walks the pattern text and the input text together, recursing on '%'.
package refmatch

import "unicode/utf8"

// Match reports whether s matches pattern under SQL LIKE semantics: '%'
// matches any sequence of zero or more codepoints, '_' matches exactly one
// codepoint, and esc (if ok) escapes the following wildcard (or itself) into
// a literal codepoint. Both pattern and s are treated as UTF-8 text.
//
// This is intentionally naive backtracking on '%' rather than memoized, so
// its worst case grows exponentially with the number of '%' in the pattern —
// it exists to be obviously correct by inspection, not fast.
func Match(pattern, s string, esc rune, escOK bool) bool {
	return matchFrom(pattern, s, esc, escOK)
}

func matchFrom(pattern, s string, esc rune, escOK bool) bool {
	for {
		if pattern == "" {
			return s == ""
		}

		r, rsize := utf8.DecodeRuneInString(pattern)

		if escOK && r == esc {
			rest := pattern[rsize:]
			if rest == "" {
				// A trailing escape with nothing to escape is a parser-level
				// error elsewhere; refmatch treats it as "matches nothing"
				// since the caller should never construct this case.
				return false
			}
			lit, litsize := utf8.DecodeRuneInString(rest)
			if s == "" {
				return false
			}
			sr, ssize := utf8.DecodeRuneInString(s)
			if sr != lit {
				return false
			}
			pattern = rest[litsize:]
			s = s[ssize:]
			continue
		}

		switch r {
		case '%':
			rest := pattern[rsize:]
			// Try matching '%' against progressively longer prefixes of s,
			// including the empty prefix first.
			for i := 0; ; {
				if matchFrom(rest, s[i:], esc, escOK) {
					return true
				}
				if i >= len(s) {
					return false
				}
				_, size := utf8.DecodeRuneInString(s[i:])
				i += size
			}
		case '_':
			if s == "" {
				return false
			}
			_, ssize := utf8.DecodeRuneInString(s)
			pattern = pattern[rsize:]
			s = s[ssize:]
			continue
		default:
			if s == "" {
				return false
			}
			sr, ssize := utf8.DecodeRuneInString(s)
			if sr != r {
				return false
			}
			pattern = pattern[rsize:]
			s = s[ssize:]
			continue
		}
	}
}
