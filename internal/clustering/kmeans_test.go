package clustering

import (
	"context"
	"errors"
	"hash/fnv"
	"reflect"
	"strings"
	"testing"

	"github.com/talentvec/talentvec/internal/faults"
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

var nineTexts = []string{
	"python backend developer",
	"python api engineer",
	"senior python programmer",
	"react frontend developer",
	"vue frontend engineer",
	"css ui designer",
	"kubernetes devops engineer",
	"docker infrastructure engineer",
	"terraform cloud engineer",
}

func TestClusterPartition(t *testing.T) {
	grouper := NewGrouper(&wordbagProvider{}, nil)

	result, err := grouper.Cluster(context.Background(), nineTexts, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.NClusters() != 3 {
		t.Fatalf("expected 3 clusters, got %d", result.NClusters())
	}
	if result.Requested != 3 {
		t.Fatalf("expected requested count echoed, got %d", result.Requested)
	}

	seen := make(map[string]int)
	total := 0
	for _, members := range result.Clusters {
		total += len(members)
		for _, text := range members {
			seen[text]++
		}
	}

	if total != len(nineTexts) {
		t.Fatalf("member lists sum to %d, want %d", total, len(nineTexts))
	}
	for _, text := range nineTexts {
		if seen[text] != 1 {
			t.Fatalf("text %q appears %d times, want exactly once", text, seen[text])
		}
	}
}

func TestClusterDeterminism(t *testing.T) {
	grouper := NewGrouper(&wordbagProvider{}, nil)
	ctx := context.Background()

	first, err := grouper.Cluster(ctx, nineTexts, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := grouper.Cluster(ctx, nineTexts, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first.Clusters, second.Clusters) {
		t.Fatalf("identical inputs must produce identical partitions:\n%v\n%v", first.Clusters, second.Clusters)
	}
}

func TestClusterClamping(t *testing.T) {
	grouper := NewGrouper(&wordbagProvider{}, nil)
	ctx := context.Background()

	cases := []struct {
		name      string
		texts     []string
		requested int
		want      int
	}{
		{"below minimum", nineTexts, 1, 2},
		{"zero", nineTexts, 0, 2},
		{"negative", nineTexts, -4, 2},
		{"above input size", nineTexts[:3], 10, 3},
		{"single text", nineTexts[:1], 5, 1},
		{"valid untouched", nineTexts, 4, 4},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := grouper.Cluster(ctx, tc.texts, tc.requested)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.NClusters() != tc.want {
				t.Fatalf("expected %d clusters, got %d", tc.want, result.NClusters())
			}
			if result.Requested != tc.requested {
				t.Fatalf("expected requested %d echoed, got %d", tc.requested, result.Requested)
			}
		})
	}
}

func TestClusterGroupsSimilarTexts(t *testing.T) {
	grouper := NewGrouper(&wordbagProvider{}, nil)

	texts := []string{
		"python python python",
		"python python backend",
		"react react react",
		"react react frontend",
	}

	result, err := grouper.Cluster(context.Background(), texts, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	clusterOf := make(map[string]int)
	for ci, members := range result.Clusters {
		for _, text := range members {
			clusterOf[text] = ci
		}
	}

	if clusterOf[texts[0]] != clusterOf[texts[1]] {
		t.Fatalf("python texts should share a cluster: %v", result.Clusters)
	}
	if clusterOf[texts[2]] != clusterOf[texts[3]] {
		t.Fatalf("react texts should share a cluster: %v", result.Clusters)
	}
	if clusterOf[texts[0]] == clusterOf[texts[2]] {
		t.Fatalf("python and react texts should separate: %v", result.Clusters)
	}
}

func TestClusterDuplicateTextsStayIndependent(t *testing.T) {
	grouper := NewGrouper(&wordbagProvider{}, nil)

	texts := []string{"python developer", "python developer", "react developer"}

	result, err := grouper.Cluster(context.Background(), texts, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	total := 0
	for _, members := range result.Clusters {
		total += len(members)
	}
	if total != 3 {
		t.Fatalf("duplicates are independent entries, expected 3 members, got %d", total)
	}
}

func TestClusterEmptyInput(t *testing.T) {
	grouper := NewGrouper(&wordbagProvider{}, nil)

	_, err := grouper.Cluster(context.Background(), nil, 3)
	if faults.KindOf(err) != faults.InvalidInput {
		t.Fatalf("expected InvalidInput, got %v", err)
	}
}

func TestClusterProviderFailure(t *testing.T) {
	grouper := NewGrouper(&wordbagProvider{fail: true}, nil)

	_, err := grouper.Cluster(context.Background(), nineTexts, 3)
	if faults.KindOf(err) != faults.ProviderFailure {
		t.Fatalf("expected ProviderFailure, got %v", err)
	}
}
