package agent

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  Intent
	}{
		{"search", "search for a python developer", IntentSearch},
		{"find", "find senior backend engineers", IntentSearch},
		{"match", "match Alice Johnson with Senior Backend Python Developer", IntentMatch},
		{"recommend", "recommend positions for C001", IntentRecommend},
		{"top candidates", "top candidates for J001", IntentTopCandidates},
		{"candidates for", "show candidates for the ML Engineer role", IntentTopCandidates},
		{"similarity", "how similar are 'java dev' and 'python dev'?", IntentSimilarity},
		{"cluster", "group candidates into 4 clusters", IntentCluster},
		{"help", "help", IntentHelp},
		{"empty", "   ", IntentHelp},
		{"unknown", "what is the weather", IntentUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.input)
			if got.Intent != tc.want {
				t.Fatalf("Classify(%q).Intent = %v, want %v", tc.input, got.Intent, tc.want)
			}
		})
	}
}

func TestClassifyIsPure(t *testing.T) {
	input := "group candidates into 4 clusters"

	first := Classify(input)
	second := Classify(input)

	if first.Intent != second.Intent || first.Count != second.Count {
		t.Fatalf("classification must be deterministic: %+v vs %+v", first, second)
	}
}

func TestClassifyExtractsSearchTerms(t *testing.T) {
	q := Classify("search for a senior python developer.")
	if q.Terms != "senior python developer" {
		t.Fatalf("unexpected terms: %q", q.Terms)
	}
}

func TestClassifyExtractsQuoted(t *testing.T) {
	q := Classify(`similar: 'senior developer' and "python engineer"`)
	if len(q.Quoted) != 2 {
		t.Fatalf("expected 2 quoted fragments, got %v", q.Quoted)
	}
	if q.Quoted[0] != "senior developer" || q.Quoted[1] != "python engineer" {
		t.Fatalf("unexpected quoted fragments: %v", q.Quoted)
	}
}

func TestClassifyExtractsClusterCount(t *testing.T) {
	q := Classify("group candidates into 7 groups")
	if q.Count != 7 {
		t.Fatalf("expected count 7, got %d", q.Count)
	}

	q = Classify("cluster the candidates")
	if q.Count != 0 {
		t.Fatalf("expected no count, got %d", q.Count)
	}
}
