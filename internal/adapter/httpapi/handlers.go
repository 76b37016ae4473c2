package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/escalopa/quran-recite-api/internal/domain"
)

type recitationResponse struct {
	RecitationID string                     `json:"recitation_id"`
	LearnerID    string                     `json:"learner_id"`
	AyahID       string                     `json:"ayah_id"`
	Status       string                     `json:"status"`
	CreatedAt    string                     `json:"createdAt"`
	UpdatedAt    string                     `json:"updatedAt"`
	Feedback     *domain.RecitationFeedback `json:"feedback,omitempty"`
}

func mapRecitation(r *domain.Recitation) recitationResponse {
	return recitationResponse{
		RecitationID: r.ID,
		LearnerID:    r.LearnerID,
		AyahID:       r.AyahID,
		Status:       string(r.Status),
		CreatedAt:    r.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    r.UpdatedAt.UTC().Format(time.RFC3339),
		Feedback:     r.Feedback,
	}
}

// handleSubmit scores an uploaded recording against the expected ayah text.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	learnerID := r.URL.Query().Get("learner_id")
	if learnerID == "" {
		writeError(w, http.StatusBadRequest, "learner_id is required")
		return
	}
	ayahID := r.URL.Query().Get("ayah_id")

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	expectedText := r.FormValue("expected_text")

	file, _, err := r.FormFile("file")
	if err != nil {
		if expectedText == "" {
			writeError(w, http.StatusBadRequest, domain.ErrEmptyExpectedText.Error())
			return
		}
		writeError(w, http.StatusBadRequest, domain.ErrEmptyAudio.Error())
		return
	}
	defer file.Close()

	recitation, err := s.service.ScoreRecitation(r.Context(), learnerID, ayahID, expectedText, file)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, mapRecitation(recitation))
}

// handleGet fetches recitations by ID for a learner. Unknown IDs are reported
// in not_found rather than failing the whole request.
func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	learnerID := r.URL.Query().Get("learner_id")
	if learnerID == "" {
		writeError(w, http.StatusBadRequest, "learner_id is required")
		return
	}

	idsParam := r.URL.Query().Get("recitation_ids")
	if idsParam == "" {
		writeError(w, http.StatusBadRequest, "recitation_ids is required")
		return
	}

	var (
		found    []recitationResponse
		notFound []string
	)

	for _, id := range strings.Split(idsParam, ",") {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}

		recitation, err := s.service.GetRecitation(r.Context(), learnerID, id)
		if err != nil {
			notFound = append(notFound, id)
			continue
		}
		found = append(found, mapRecitation(recitation))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"recitations": found,
		"not_found":   notFound,
	})
}

// handleList returns the learner's most recent recitations.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	learnerID := r.PathValue("learner_id")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	recitations, err := s.service.ListRecitations(r.Context(), learnerID, limit)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	items := make([]recitationResponse, len(recitations))
	for i, recitation := range recitations {
		items[i] = mapRecitation(recitation)
	}

	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

// handleProgress returns the learner's hasanat total and streak.
func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	learnerID := r.PathValue("learner_id")

	progress, err := s.service.GetProgress(r.Context(), learnerID)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, progress)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
