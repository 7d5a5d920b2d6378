package server

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/talentvec/talentvec/internal/embedding"
	"github.com/talentvec/talentvec/internal/faults"
	"github.com/talentvec/talentvec/internal/matching"
	"github.com/talentvec/talentvec/internal/ranking"
	"github.com/talentvec/talentvec/internal/store"
)

type embedRequest struct {
	Texts []string `json:"texts"`
}

type embedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
	Dimension  int         `json:"dimension"`
	Count      int         `json:"count"`
}

type similarityRequest struct {
	Text1 string `json:"text1"`
	Text2 string `json:"text2"`
}

type similarityResponse struct {
	Text1      string  `json:"text1"`
	Text2      string  `json:"text2"`
	Similarity float64 `json:"similarity"`
}

type searchRequest struct {
	Query      string   `json:"query"`
	Candidates []string `json:"candidates"`
	TopK       *int     `json:"top_k"`
}

type searchResult struct {
	Candidate  string  `json:"candidate"`
	Similarity float64 `json:"similarity"`
	Rank       int     `json:"rank"`
}

type searchResponse struct {
	Query        string         `json:"query"`
	TotalResults int            `json:"total_results"`
	Results      []searchResult `json:"results"`
}

type clusterRequest struct {
	Texts     []string `json:"texts"`
	NClusters int      `json:"n_clusters"`
}

type clusterResponse struct {
	RequestedClusters int        `json:"requested_clusters"`
	NClusters         int        `json:"n_clusters"`
	TotalTexts        int        `json:"total_texts"`
	Clusters          [][]string `json:"clusters"`
}

type matchRequest struct {
	ProfileID  string `json:"profile_id"`
	PositionID string `json:"position_id"`
}

type candidateMatch struct {
	Name string `json:"name"`
	matching.Result
}

type infoResponse struct {
	Provider  string `json:"provider"`
	Model     string `json:"model"`
	Dimension int    `json:"dimension"`
	Version   string `json:"version"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, infoResponse{
		Provider:  s.providerName,
		Model:     s.modelName,
		Dimension: s.dimension(r.Context()),
		Version:   s.version,
	})
}

func (s *Server) handleEmbed(w http.ResponseWriter, r *http.Request) {
	var req embedRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	if len(req.Texts) == 0 {
		s.writeError(w, r, faults.New(faults.InvalidInput, "at least one text is required"))
		return
	}

	vectors, err := embedding.EmbedAll(r.Context(), s.provider, req.Texts)
	if err != nil {
		s.writeError(w, r, faults.Wrap(faults.ProviderFailure, err, "embedding texts"))
		return
	}

	dimension := 0
	if len(vectors) > 0 {
		dimension = len(vectors[0])
	}

	s.writeJSON(w, http.StatusOK, embedResponse{
		Embeddings: vectors,
		Dimension:  dimension,
		Count:      len(vectors),
	})
}

func (s *Server) handleSimilarity(w http.ResponseWriter, r *http.Request) {
	var req similarityRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	similarity, err := s.ranker.Similarity(r.Context(), req.Text1, req.Text2)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, similarityResponse{
		Text1:      req.Text1,
		Text2:      req.Text2,
		Similarity: similarity,
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	candidates := ranking.FromTexts(req.Candidates)

	var (
		results []ranking.Result
		err     error
	)
	if req.TopK != nil {
		results, err = s.ranker.Rank(r.Context(), req.Query, candidates, *req.TopK)
	} else {
		results, err = s.ranker.RankAll(r.Context(), req.Query, candidates)
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := make([]searchResult, len(results))
	for i, res := range results {
		out[i] = searchResult{
			Candidate:  res.Text,
			Similarity: res.Similarity,
			Rank:       res.Rank,
		}
	}

	s.writeJSON(w, http.StatusOK, searchResponse{
		Query:        req.Query,
		TotalResults: len(out),
		Results:      out,
	})
}

func (s *Server) handleCluster(w http.ResponseWriter, r *http.Request) {
	var req clusterRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.grouper.Cluster(r.Context(), req.Texts, req.NClusters)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, clusterResponse{
		RequestedClusters: result.Requested,
		NClusters:         result.NClusters(),
		TotalTexts:        len(req.Texts),
		Clusters:          result.Clusters,
	})
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	profile, err := s.repo.ProfileByID(req.ProfileID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	position, err := s.repo.PositionByID(req.PositionID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.scorer.Score(r.Context(), profile, position)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleListProfiles(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.repo.Profiles())
}

func (s *Server) handleAddProfile(w http.ResponseWriter, r *http.Request) {
	var profile store.Profile
	if err := s.decodeJSON(r, &profile); err != nil {
		s.writeError(w, r, err)
		return
	}

	stored, err := s.repo.AddProfile(&profile)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, stored)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.repo.ProfileByID(r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleListPositions(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.repo.Positions())
}

func (s *Server) handleAddPosition(w http.ResponseWriter, r *http.Request) {
	var position store.Position
	if err := s.decodeJSON(r, &position); err != nil {
		s.writeError(w, r, err)
		return
	}

	stored, err := s.repo.AddPosition(&position)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, stored)
}

func (s *Server) handleGetPosition(w http.ResponseWriter, r *http.Request) {
	position, err := s.repo.PositionByID(r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, position)
}

// handlePositionCandidates scores every profile against the position and
// returns the best matches ordered by overall score.
func (s *Server) handlePositionCandidates(w http.ResponseWriter, r *http.Request) {
	position, err := s.repo.PositionByID(r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	topK := 5
	if raw := r.URL.Query().Get("top_k"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			s.writeError(w, r, faults.Newf(faults.InvalidInput, "top_k must be a positive integer, got %q", raw))
			return
		}
		topK = parsed
	}

	profiles := s.repo.Profiles()
	if len(profiles) == 0 {
		s.writeJSON(w, http.StatusOK, []candidateMatch{})
		return
	}

	matches := make([]candidateMatch, 0, len(profiles))
	for _, profile := range profiles {
		result, err := s.scorer.Score(r.Context(), profile, position)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		matches = append(matches, candidateMatch{Name: profile.Name, Result: *result})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].OverallScore > matches[j].OverallScore
	})

	if topK < len(matches) {
		matches = matches[:topK]
	}

	s.writeJSON(w, http.StatusOK, matches)
}
