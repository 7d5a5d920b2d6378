package agent

import (
	"regexp"
	"strconv"
	"strings"
)

// Intent is the closed set of actions the assistant can take. Every user
// input classifies to exactly one variant; inputs matching nothing become
// IntentUnknown and are handled like IntentHelp.
type Intent int

const (
	IntentUnknown Intent = iota
	IntentSearch
	IntentMatch
	IntentRecommend
	IntentTopCandidates
	IntentSimilarity
	IntentCluster
	IntentHelp
)

func (i Intent) String() string {
	switch i {
	case IntentSearch:
		return "search"
	case IntentMatch:
		return "match"
	case IntentRecommend:
		return "recommend"
	case IntentTopCandidates:
		return "top_candidates"
	case IntentSimilarity:
		return "similarity"
	case IntentCluster:
		return "cluster"
	case IntentHelp:
		return "help"
	default:
		return "unknown"
	}
}

// Query is a classified user input together with the arguments extracted
// from it.
type Query struct {
	Intent Intent
	// Terms is the free-text argument for search-like intents.
	Terms string
	// Quoted holds the 'single' or "double" quoted fragments, in order.
	Quoted []string
	// Count is the requested cluster count; 0 when absent.
	Count int
}

var (
	quotedRe      = regexp.MustCompile(`['"]([^'"]+)['"]`)
	searchTermsRe = regexp.MustCompile(`(?i)(?:search\s+for|search|find|look\s+for)\s+(?:an?\s+)?(.+?)\s*[.?!]?$`)
	countRe       = regexp.MustCompile(`(\d+)\s*(?:cluster|group)`)
)

// Classify parses a free-text input into a Query. Pure function: same input,
// same result.
func Classify(input string) Query {
	lower := strings.ToLower(strings.TrimSpace(input))

	q := Query{Intent: IntentUnknown}
	for _, m := range quotedRe.FindAllStringSubmatch(input, -1) {
		q.Quoted = append(q.Quoted, m[1])
	}

	switch {
	case lower == "" || containsAny(lower, "help", "what can you do"):
		q.Intent = IntentHelp

	case containsAny(lower, "similar", "similarity"):
		q.Intent = IntentSimilarity

	case containsAny(lower, "cluster", "group"):
		q.Intent = IntentCluster
		if m := countRe.FindStringSubmatch(lower); m != nil {
			q.Count, _ = strconv.Atoi(m[1])
		}

	case strings.Contains(lower, "candidates for") || strings.Contains(lower, "top candidates"):
		q.Intent = IntentTopCandidates

	case containsAny(lower, "recommend", "suggest"):
		q.Intent = IntentRecommend

	case strings.Contains(lower, "match"):
		q.Intent = IntentMatch

	case containsAny(lower, "search", "find", "look for"):
		q.Intent = IntentSearch
		if m := searchTermsRe.FindStringSubmatch(strings.TrimSpace(input)); m != nil {
			q.Terms = strings.TrimSpace(m[1])
		}
	}

	return q
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
