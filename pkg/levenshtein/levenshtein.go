package levenshtein

import (
	"errors"
	"fmt"
)

// ErrTraceMismatch is returned by Apply when a trace does not fit the source string.
var ErrTraceMismatch = errors.New("trace does not match source")

// Distance is the result of comparing two strings: the edit distance and an
// ordered trace of actions that turns the source into the target.
type Distance struct {
	Distance int
	Actions  []Action
}

// Calculate computes the Levenshtein distance between from and to using the
// Wagner–Fischer table and backtraces one optimal alignment.
//
// The backtrace prefers removal, then insertion, then the diagonal step when
// costs tie. The resulting action counts feed the error model, so the order
// must stay fixed.
func Calculate(from, to string) Distance {
	a, b := []rune(from), []rune(to)
	n, m := len(a), len(b)

	// dp[i][j] is the distance between the first i runes of a and the first j runes of b.
	dp := make([][]int, n+1)
	for i := range dp {
		dp[i] = make([]int, m+1)
		dp[i][0] = i
	}
	for j := 0; j <= m; j++ {
		dp[0][j] = j
	}
	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			dp[i][j] = min(dp[i-1][j]+1, dp[i][j-1]+1, dp[i-1][j-1]+replaceCost(a[i-1], b[j-1]))
		}
	}

	actions := make([]Action, 0, max(n, m))
	i, j := n, m
	for i > 0 && j > 0 {
		removal := dp[i-1][j] + 1
		insertion := dp[i][j-1] + 1
		diagonal := dp[i-1][j-1] + replaceCost(a[i-1], b[j-1])
		switch {
		case removal <= min(insertion, diagonal):
			actions = append(actions, Removal(a[i-1]))
			i--
		case insertion <= min(removal, diagonal):
			actions = append(actions, Insertion(b[j-1]))
			j--
		default:
			if a[i-1] == b[j-1] {
				actions = append(actions, Match(a[i-1]))
			} else {
				actions = append(actions, Replacement(a[i-1], b[j-1]))
			}
			i--
			j--
		}
	}
	for ; i > 0; i-- {
		actions = append(actions, Removal(a[i-1]))
	}
	for ; j > 0; j-- {
		actions = append(actions, Insertion(b[j-1]))
	}

	for l, r := 0, len(actions)-1; l < r; l, r = l+1, r-1 {
		actions[l], actions[r] = actions[r], actions[l]
	}
	return Distance{Distance: dp[n][m], Actions: actions}
}

// Apply replays actions against source and returns the produced string.
func Apply(source string, actions []Action) (string, error) {
	src := []rune(source)
	out := make([]rune, 0, len(src))
	pos := 0
	for k, act := range actions {
		switch act.Type {
		case InsertionType:
			out = append(out, act.To)
			continue
		case RemovalType, ReplacementType, MatchType:
		default:
			return "", fmt.Errorf("action %d (%v): %w", k, act, ErrTraceMismatch)
		}
		if pos >= len(src) || src[pos] != act.From {
			return "", fmt.Errorf("action %d (%v) at position %d: %w", k, act, pos, ErrTraceMismatch)
		}
		pos++
		if act.Type != RemovalType {
			out = append(out, act.To)
		}
	}
	if pos != len(src) {
		return "", fmt.Errorf("%d of %d runes consumed: %w", pos, len(src), ErrTraceMismatch)
	}
	return string(out), nil
}

func replaceCost(a, b rune) int {
	if a == b {
		return 0
	}
	return 1
}
