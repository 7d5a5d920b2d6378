package matching

import (
	"context"
	"errors"
	"hash/fnv"
	"math"
	"strings"
	"testing"

	"github.com/talentvec/talentvec/internal/faults"
	"github.com/talentvec/talentvec/internal/store"
)

type wordbagProvider struct {
	fail bool
}

func (p *wordbagProvider) Embed(_ context.Context, text string) ([]float32, error) {
	if p.fail {
		return nil, errors.New("backend unavailable")
	}

	vector := make([]float32, 128)
	for _, token := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		h.Write([]byte(token))
		vector[h.Sum32()%128]++
	}
	return vector, nil
}

func TestScoreScenario(t *testing.T) {
	scorer := NewScorer(&wordbagProvider{}, nil)

	profile := &store.Profile{
		ID:          "C001",
		Description: "Senior Python Developer with 10 years experience",
		Skills:      []string{"Python", "Django", "Machine Learning"},
		Years:       10,
	}
	position := &store.Position{
		ID:             "J001",
		Description:    "We are looking for a senior backend developer with python expertise",
		RequiredSkills: []string{"Python", "Backend", "APIs"},
		YearsRequired:  5,
	}

	result, err := scorer.Score(context.Background(), profile, position)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if math.Abs(result.SkillsMatch-1.0/3.0) > 1e-9 {
		t.Fatalf("expected skills match 1/3, got %v", result.SkillsMatch)
	}
	if result.ExperienceMatch != 1.0 {
		t.Fatalf("expected experience match 1.0, got %v", result.ExperienceMatch)
	}

	want := ProfileSimilarityWeight*result.ProfileSimilarity +
		SkillsMatchWeight*result.SkillsMatch +
		ExperienceMatchWeight*result.ExperienceMatch
	if math.Abs(result.OverallScore-want) > 1e-9 {
		t.Fatalf("overall score %v does not match weighted blend %v", result.OverallScore, want)
	}

	if result.OverallScore < -0.5 || result.OverallScore > 1.0 {
		t.Fatalf("overall score %v out of [-0.5, 1.0]", result.OverallScore)
	}

	if result.Tier != TierForScore(result.OverallScore) {
		t.Fatalf("tier %v inconsistent with score %v", result.Tier, result.OverallScore)
	}
}

func TestSkillsMatchEmptyRequirements(t *testing.T) {
	scorer := NewScorer(&wordbagProvider{}, nil)

	profile := &store.Profile{Description: "engineer", Skills: []string{"Go"}, Years: 2}
	position := &store.Position{Description: "some role", RequiredSkills: nil, YearsRequired: 1}

	result, err := scorer.Score(context.Background(), profile, position)
	if err != nil {
		t.Fatalf("empty requirements must not be an error: %v", err)
	}
	if result.SkillsMatch != 0 {
		t.Fatalf("expected skills match 0 for empty requirements, got %v", result.SkillsMatch)
	}
}

func TestSkillsMatchCaseInsensitive(t *testing.T) {
	got := skillsMatch([]string{"python", "DJANGO"}, []string{"Python", "Django"})
	if got != 1.0 {
		t.Fatalf("expected full overlap regardless of case, got %v", got)
	}
}

func TestExperienceMatch(t *testing.T) {
	cases := []struct {
		name     string
		years    int
		required int
		want     float64
	}{
		{"meets requirement", 10, 5, 1.0},
		{"exact requirement", 5, 5, 1.0},
		{"partial", 2, 5, 0.4},
		{"no requirement with experience", 3, 0, 1.0},
		{"no requirement no experience", 0, 0, 0},
		{"zero years", 0, 5, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := experienceMatch(tc.years, tc.required)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("experienceMatch(%d, %d) = %v, want %v", tc.years, tc.required, got, tc.want)
			}
		})
	}
}

func TestTierForScore(t *testing.T) {
	cases := []struct {
		score float64
		want  Tier
	}{
		{0.95, TierExcellent},
		{0.8, TierExcellent},
		{1.3, TierExcellent},
		{0.79, TierGood},
		{0.6, TierGood},
		{0.59, TierModerate},
		{0.4, TierModerate},
		{0.39, TierLow},
		{0.0, TierLow},
		{-0.5, TierLow},
	}

	for _, tc := range cases {
		if got := TierForScore(tc.score); got != tc.want {
			t.Fatalf("TierForScore(%v) = %v, want %v", tc.score, got, tc.want)
		}
	}
}

func TestScoreInvalidInput(t *testing.T) {
	scorer := NewScorer(&wordbagProvider{}, nil)
	ctx := context.Background()

	profile := &store.Profile{Description: "engineer"}
	position := &store.Position{Description: "role"}

	if _, err := scorer.Score(ctx, nil, position); faults.KindOf(err) != faults.InvalidInput {
		t.Fatalf("expected InvalidInput for nil profile, got %v", err)
	}
	if _, err := scorer.Score(ctx, profile, nil); faults.KindOf(err) != faults.InvalidInput {
		t.Fatalf("expected InvalidInput for nil position, got %v", err)
	}
	if _, err := scorer.Score(ctx, &store.Profile{}, position); faults.KindOf(err) != faults.InvalidInput {
		t.Fatalf("expected InvalidInput for empty description, got %v", err)
	}
}

func TestScoreProviderFailure(t *testing.T) {
	scorer := NewScorer(&wordbagProvider{fail: true}, nil)

	profile := &store.Profile{Description: "engineer"}
	position := &store.Position{Description: "role"}

	_, err := scorer.Score(context.Background(), profile, position)
	if faults.KindOf(err) != faults.ProviderFailure {
		t.Fatalf("expected ProviderFailure, got %v", err)
	}
}
