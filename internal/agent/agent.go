// Package agent implements the rule-based recruitment assistant. It
// classifies free-text queries into a closed intent set and routes them to
// the ranking, matching and clustering services.
package agent

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/talentvec/talentvec/internal/clustering"
	"github.com/talentvec/talentvec/internal/logger"
	"github.com/talentvec/talentvec/internal/matching"
	"github.com/talentvec/talentvec/internal/ranking"
	"github.com/talentvec/talentvec/internal/store"
)

const (
	searchLimit    = 5
	recommendLimit = 3
	defaultGroups  = 3
)

// Deps aggregates the services the assistant dispatches to.
type Deps struct {
	Store   store.Repository
	Ranker  *ranking.Engine
	Scorer  *matching.Scorer
	Grouper *clustering.Grouper
	Logger  *zap.Logger
}

// Exchange is one turn of a conversation.
type Exchange struct {
	At   time.Time
	Role string // "user" or "assistant"
	Text string
}

// Session holds conversation state. It is owned by the caller and scoped to
// one conversation; the agent itself keeps no state between calls.
type Session struct {
	History []Exchange
}

func (s *Session) record(role, text string) {
	s.History = append(s.History, Exchange{At: time.Now().UTC(), Role: role, Text: text})
}

type Agent struct {
	deps Deps
}

func New(deps Deps) *Agent {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Agent{deps: deps}
}

// Respond classifies the input and dispatches to the matching handler. User
// mistakes (nothing found, missing arguments) come back as assistant text;
// only genuine failures (embedding backend down) surface as errors.
func (a *Agent) Respond(ctx context.Context, session *Session, input string) (string, error) {
	if session == nil {
		session = &Session{}
	}
	session.record("user", input)

	query := Classify(input)
	a.deps.Logger.Debug("classified query",
		zap.String("intent", query.Intent.String()),
		zap.String("input", logger.TruncateForLog(input, 120)),
		zap.Int("quoted_args", len(query.Quoted)),
	)

	var (
		response string
		err      error
	)

	switch query.Intent {
	case IntentSearch:
		response, err = a.handleSearch(ctx, query, input)
	case IntentMatch:
		response, err = a.handleMatch(ctx, input)
	case IntentRecommend:
		response, err = a.handleRecommend(ctx, input)
	case IntentTopCandidates:
		response, err = a.handleTopCandidates(ctx, input)
	case IntentSimilarity:
		response, err = a.handleSimilarity(ctx, query)
	case IntentCluster:
		response, err = a.handleCluster(ctx, query)
	case IntentHelp, IntentUnknown:
		response = helpText()
	}

	if err != nil {
		return "", err
	}

	session.record("assistant", response)
	return response, nil
}

func (a *Agent) handleSearch(ctx context.Context, query Query, input string) (string, error) {
	terms := query.Terms
	if terms == "" {
		terms = input
	}

	profiles := a.deps.Store.Profiles()
	if len(profiles) == 0 {
		return "There are no candidate profiles to search yet.", nil
	}

	candidates := make([]ranking.Candidate, len(profiles))
	byID := make(map[string]*store.Profile, len(profiles))
	for i, p := range profiles {
		candidates[i] = ranking.Candidate{ID: p.ID, Text: p.Description}
		byID[p.ID] = p
	}

	limit := searchLimit
	if limit > len(candidates) {
		limit = len(candidates)
	}

	results, err := a.deps.Ranker.Rank(ctx, terms, candidates, limit)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Candidates for %q:\n", terms)
	for _, r := range results {
		profile := byID[r.ID]
		fmt.Fprintf(&b, "%d. %s (%s)  %s %.1f%%\n", r.Rank, profile.Name, profile.ID, scoreBar(r.Similarity), r.Similarity*100)
		fmt.Fprintf(&b, "   %s\n", profile.Description)
	}
	return b.String(), nil
}

func (a *Agent) handleMatch(ctx context.Context, input string) (string, error) {
	profile := a.findProfile(input)
	if profile == nil {
		return "I could not tell which candidate you mean. Mention a name or id, e.g. \"match Alice Johnson with Senior Backend Python Developer\".", nil
	}

	position := a.findPosition(input)
	if position == nil {
		return "I could not tell which position you mean. Mention a position title or id.", nil
	}

	result, err := a.deps.Scorer.Score(ctx, profile, position)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Match: %s vs %s\n", profile.Name, position.Title)
	fmt.Fprintf(&b, "  profile similarity: %.1f%%\n", result.ProfileSimilarity*100)
	fmt.Fprintf(&b, "  skills match:       %.1f%%\n", result.SkillsMatch*100)
	fmt.Fprintf(&b, "  experience match:   %.1f%%\n", result.ExperienceMatch*100)
	fmt.Fprintf(&b, "  overall:            %.1f%%  (%s)\n", result.OverallScore*100, result.Tier)
	return b.String(), nil
}

func (a *Agent) handleRecommend(ctx context.Context, input string) (string, error) {
	profile := a.findProfile(input)
	if profile == nil {
		return "I could not tell which candidate to recommend positions for. Mention a name or id.", nil
	}

	positions := a.deps.Store.Positions()
	if len(positions) == 0 {
		return "There are no open positions yet.", nil
	}

	scored := make([]*matching.Result, 0, len(positions))
	titles := make(map[string]string, len(positions))
	for _, position := range positions {
		result, err := a.deps.Scorer.Score(ctx, profile, position)
		if err != nil {
			return "", err
		}
		scored = append(scored, result)
		titles[position.ID] = position.Title
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].OverallScore > scored[j].OverallScore
	})

	limit := recommendLimit
	if limit > len(scored) {
		limit = len(scored)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Recommended positions for %s:\n", profile.Name)
	for i, result := range scored[:limit] {
		fmt.Fprintf(&b, "%d. %s (%s)  %.1f%%  %s\n", i+1, titles[result.PositionID], result.PositionID, result.OverallScore*100, result.Tier)
	}
	return b.String(), nil
}

func (a *Agent) handleTopCandidates(ctx context.Context, input string) (string, error) {
	position := a.findPosition(input)
	if position == nil {
		return "I could not tell which position you mean. Mention a position title or id.", nil
	}

	profiles := a.deps.Store.Profiles()
	if len(profiles) == 0 {
		return "There are no candidate profiles yet.", nil
	}

	scored := make([]*matching.Result, 0, len(profiles))
	names := make(map[string]string, len(profiles))
	for _, profile := range profiles {
		result, err := a.deps.Scorer.Score(ctx, profile, position)
		if err != nil {
			return "", err
		}
		scored = append(scored, result)
		names[profile.ID] = profile.Name
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].OverallScore > scored[j].OverallScore
	})

	limit := searchLimit
	if limit > len(scored) {
		limit = len(scored)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Top candidates for %s:\n", position.Title)
	for i, result := range scored[:limit] {
		fmt.Fprintf(&b, "%d. %s (%s)  %.1f%%  %s\n", i+1, names[result.ProfileID], result.ProfileID, result.OverallScore*100, result.Tier)
	}
	return b.String(), nil
}

func (a *Agent) handleSimilarity(ctx context.Context, query Query) (string, error) {
	if len(query.Quoted) < 2 {
		return "To compare two texts, quote both of them, e.g. similar: 'senior developer' and 'python engineer'.", nil
	}

	score, err := a.deps.Ranker.Similarity(ctx, query.Quoted[0], query.Quoted[1])
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Similarity between %q and %q: %.4f (%.1f%%)\n", query.Quoted[0], query.Quoted[1], score, score*100)
	return b.String(), nil
}

func (a *Agent) handleCluster(ctx context.Context, query Query) (string, error) {
	profiles := a.deps.Store.Profiles()
	if len(profiles) == 0 {
		return "There are no candidate profiles to group yet.", nil
	}

	texts := make([]string, len(profiles))
	for i, p := range profiles {
		texts[i] = p.Description
	}

	count := query.Count
	if count == 0 {
		count = defaultGroups
	}

	result, err := a.deps.Grouper.Cluster(ctx, texts, count)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Grouped %d candidates into %d clusters:\n", len(texts), result.NClusters())
	for i, members := range result.Clusters {
		fmt.Fprintf(&b, "Group %d:\n", i+1)
		for _, text := range members {
			fmt.Fprintf(&b, "  - %s\n", text)
		}
	}
	return b.String(), nil
}

// findProfile matches a profile mentioned in the input by id or name.
func (a *Agent) findProfile(input string) *store.Profile {
	lower := strings.ToLower(input)
	for _, p := range a.deps.Store.Profiles() {
		if p.ID != "" && strings.Contains(lower, strings.ToLower(p.ID)) {
			return p
		}
		if p.Name != "" && strings.Contains(lower, strings.ToLower(p.Name)) {
			return p
		}
	}
	return nil
}

// findPosition matches a position mentioned in the input by id or title.
func (a *Agent) findPosition(input string) *store.Position {
	lower := strings.ToLower(input)
	for _, p := range a.deps.Store.Positions() {
		if p.ID != "" && strings.Contains(lower, strings.ToLower(p.ID)) {
			return p
		}
		if p.Title != "" && strings.Contains(lower, strings.ToLower(p.Title)) {
			return p
		}
	}
	return nil
}

func scoreBar(similarity float64) string {
	filled := int(similarity * 10)
	if filled < 0 {
		filled = 0
	}
	if filled > 10 {
		filled = 10
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", 10-filled) + "]"
}

func helpText() string {
	return strings.TrimSpace(`
I can help with:
  - search for <description>         find matching candidates
  - match <candidate> with <position>  score one pairing
  - recommend positions for <candidate>
  - top candidates for <position>
  - similar: '<text1>' and '<text2>'  compare two texts
  - group candidates into <n> clusters
`)
}
