// Package matching combines semantic similarity with rule-based sub-scores
// into a single candidate/position recommendation.
package matching

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/talentvec/talentvec/internal/embedding"
	"github.com/talentvec/talentvec/internal/faults"
	"github.com/talentvec/talentvec/internal/store"
)

// Score blend weights. Fixed design constants, not learned; they sum to 1.0
// so OverallScore is bounded in [-0.5, 1.0].
const (
	ProfileSimilarityWeight = 0.5
	SkillsMatchWeight       = 0.3
	ExperienceMatchWeight   = 0.2
)

// Tier thresholds; each is inclusive on the lower bound.
const (
	ExcellentThreshold = 0.8
	GoodThreshold      = 0.6
	ModerateThreshold  = 0.4
)

// Tier is the discrete recommendation derived from the overall score.
type Tier string

const (
	TierExcellent Tier = "EXCELLENT"
	TierGood      Tier = "GOOD"
	TierModerate  Tier = "MODERATE"
	TierLow       Tier = "LOW"
)

// TierForScore maps an overall score to its recommendation tier. Scores
// outside [0, 1] fall into the nearest outer tier.
func TierForScore(score float64) Tier {
	switch {
	case score >= ExcellentThreshold:
		return TierExcellent
	case score >= GoodThreshold:
		return TierGood
	case score >= ModerateThreshold:
		return TierModerate
	default:
		return TierLow
	}
}

// Result holds the component scores and the blended recommendation for one
// profile/position pair. Recomputed on every request, never persisted.
type Result struct {
	ProfileID         string  `json:"profile_id"`
	PositionID        string  `json:"position_id"`
	ProfileSimilarity float64 `json:"profile_similarity"`
	SkillsMatch       float64 `json:"skills_match"`
	ExperienceMatch   float64 `json:"experience_match"`
	OverallScore      float64 `json:"overall_score"`
	Tier              Tier    `json:"recommendation_tier"`
}

// Scorer computes match results. Stateless between calls; safe for
// concurrent use.
type Scorer struct {
	provider embedding.Provider
	logger   *zap.Logger
}

func NewScorer(provider embedding.Provider, logger *zap.Logger) *Scorer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scorer{provider: provider, logger: logger}
}

// Score evaluates how well a profile fits a position.
func (s *Scorer) Score(ctx context.Context, profile *store.Profile, position *store.Position) (*Result, error) {
	if profile == nil {
		return nil, faults.New(faults.InvalidInput, "profile is required")
	}
	if position == nil {
		return nil, faults.New(faults.InvalidInput, "position is required")
	}
	if strings.TrimSpace(profile.Description) == "" || strings.TrimSpace(position.Description) == "" {
		return nil, faults.New(faults.InvalidInput, "profile and position descriptions must not be empty")
	}

	vectors, err := embedding.EmbedAll(ctx, s.provider, []string{profile.Description, position.Description})
	if err != nil {
		return nil, faults.Wrap(faults.ProviderFailure, err, "embedding descriptions")
	}

	similarity := embedding.Cosine(vectors[0], vectors[1])
	skills := skillsMatch(profile.Skills, position.RequiredSkills)
	experience := experienceMatch(profile.Years, position.YearsRequired)

	overall := ProfileSimilarityWeight*similarity +
		SkillsMatchWeight*skills +
		ExperienceMatchWeight*experience

	result := &Result{
		ProfileID:         profile.ID,
		PositionID:        position.ID,
		ProfileSimilarity: similarity,
		SkillsMatch:       skills,
		ExperienceMatch:   experience,
		OverallScore:      overall,
		Tier:              TierForScore(overall),
	}

	s.logger.Debug("scored match",
		zap.String("profile_id", profile.ID),
		zap.String("position_id", position.ID),
		zap.Float64("overall_score", overall),
		zap.String("tier", string(result.Tier)),
	)

	return result, nil
}

// skillsMatch is the overlap ratio |profile ∩ required| / |required|.
// An empty requirement list yields 0 by definition, not an error.
func skillsMatch(profileSkills, requiredSkills []string) float64 {
	if len(requiredSkills) == 0 {
		return 0
	}

	have := make(map[string]struct{}, len(profileSkills))
	for _, skill := range profileSkills {
		have[normalizeSkill(skill)] = struct{}{}
	}

	matched := 0
	seen := make(map[string]struct{}, len(requiredSkills))
	for _, skill := range requiredSkills {
		key := normalizeSkill(skill)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if _, ok := have[key]; ok {
			matched++
		}
	}

	return float64(matched) / float64(len(seen))
}

// experienceMatch is 1.0 when the profile meets the requirement, else the
// ratio of years held to years required. A requirement of zero years is a
// full match for anyone with experience and 0 otherwise.
func experienceMatch(years, yearsRequired int) float64 {
	if yearsRequired <= 0 {
		if years > 0 {
			return 1.0
		}
		return 0
	}
	if years >= yearsRequired {
		return 1.0
	}
	return float64(years) / float64(yearsRequired)
}

func normalizeSkill(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
