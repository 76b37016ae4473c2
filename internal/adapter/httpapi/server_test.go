package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/escalopa/quran-recite-api/internal/adapter/transcriber/mock"
	"github.com/escalopa/quran-recite-api/internal/application"
	"github.com/escalopa/quran-recite-api/internal/domain"
)

type memStore struct {
	recitations map[string]*domain.Recitation
	order       []string
}

func newMemStore() *memStore {
	return &memStore{recitations: make(map[string]*domain.Recitation)}
}

func (m *memStore) Save(_ context.Context, r *domain.Recitation) error {
	m.recitations[r.ID] = r
	m.order = append(m.order, r.ID)
	return nil
}

func (m *memStore) Get(_ context.Context, learnerID, recitationID string) (*domain.Recitation, error) {
	r, ok := m.recitations[recitationID]
	if !ok || r.LearnerID != learnerID {
		return nil, domain.ErrNotFound
	}
	return r, nil
}

func (m *memStore) List(_ context.Context, learnerID string, limit int) ([]*domain.Recitation, error) {
	var out []*domain.Recitation
	for i := len(m.order) - 1; i >= 0; i-- {
		r := m.recitations[m.order[i]]
		if r.LearnerID != learnerID {
			continue
		}
		out = append(out, r)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

type memProgress struct {
	hasanat map[string]int64
}

func (m *memProgress) RecordRecitation(_ context.Context, learnerID string, hasanat int) (*domain.Progress, error) {
	if m.hasanat == nil {
		m.hasanat = make(map[string]int64)
	}
	m.hasanat[learnerID] += int64(hasanat)
	return &domain.Progress{LearnerID: learnerID, Hasanat: m.hasanat[learnerID]}, nil
}

func (m *memProgress) GetProgress(_ context.Context, learnerID string) (*domain.Progress, error) {
	return &domain.Progress{LearnerID: learnerID, Hasanat: m.hasanat[learnerID]}, nil
}

func newTestServer(t *testing.T, transcriber domain.Transcriber, apiKey string) (*Server, *memStore) {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	store := newMemStore()
	service := application.NewRecitationService(transcriber, store, &memProgress{}, "ar", nil, log)

	return NewServer("127.0.0.1:0", service, apiKey, nil, log), store
}

func multipartBody(t *testing.T, audio []byte, expectedText string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if audio != nil {
		part, err := writer.CreateFormFile("file", "recording.ogg")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write(audio); err != nil {
			t.Fatalf("write audio: %v", err)
		}
	}
	if expectedText != "" {
		if err := writer.WriteField("expected_text", expectedText); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	return &buf, writer.FormDataContentType()
}

func TestSubmitRecitation(t *testing.T) {
	transcriber := mock.New().WithResult(&domain.Transcription{
		Text: "قل هو الله أحد",
		Words: []domain.WordTimestamp{
			{Word: "قل", Start: 0.0, End: 0.4},
			{Word: "هو", Start: 0.5, End: 0.8},
			{Word: "الله", Start: 0.9, End: 1.4},
			{Word: "أحد", Start: 1.5, End: 2.0},
		},
		Duration: 2.0,
	})
	server, store := newTestServer(t, transcriber, "")

	body, contentType := multipartBody(t, []byte("ogg-bytes"), "قُلْ هُوَ اللَّهُ أَحَدٌ")
	req := httptest.NewRequest(http.MethodPost, "/recitations?learner_id=learner-1&ayah_id=112001", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	server.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var resp recitationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if resp.Status != string(domain.StatusDone) {
		t.Errorf("status = %q, want %q", resp.Status, domain.StatusDone)
	}
	if resp.Feedback == nil {
		t.Fatal("expected feedback in response")
	}
	if resp.Feedback.Accuracy != 100 {
		t.Errorf("accuracy = %v, want 100", resp.Feedback.Accuracy)
	}
	if resp.Feedback.Hasanat == 0 {
		t.Error("expected hasanat to be awarded")
	}
	if _, ok := store.recitations[resp.RecitationID]; !ok {
		t.Error("recitation was not persisted")
	}
}

func TestSubmitRecitation_MissingAudio(t *testing.T) {
	server, _ := newTestServer(t, mock.New(), "")

	body, contentType := multipartBody(t, nil, "بسم الله")
	req := httptest.NewRequest(http.MethodPost, "/recitations?learner_id=l", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	server.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestSubmitRecitation_MissingExpectedText(t *testing.T) {
	server, _ := newTestServer(t, mock.New(), "")

	body, contentType := multipartBody(t, []byte("audio"), "")
	req := httptest.NewRequest(http.MethodPost, "/recitations?learner_id=l", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	server.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestSubmitRecitation_TranscriberFailure(t *testing.T) {
	transcriber := mock.New().WithError(errors.New("engine crashed"))
	server, _ := newTestServer(t, transcriber, "")

	body, contentType := multipartBody(t, []byte("audio"), "بسم الله")
	req := httptest.NewRequest(http.MethodPost, "/recitations?learner_id=l", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	server.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestAPIKeyAuth(t *testing.T) {
	server, _ := newTestServer(t, mock.New(), "secret")

	req := httptest.NewRequest(http.MethodGet, "/recitations/learner-1", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("without key: status = %d, want 401", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/recitations/learner-1", nil)
	req.Header.Set("x-api-key", "secret")
	rec = httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("with key: status = %d, want 200", rec.Code)
	}

	// Health stays open for probes.
	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec = httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("healthz: status = %d, want 200", rec.Code)
	}
}

func TestGetRecitations(t *testing.T) {
	server, store := newTestServer(t, mock.New(), "")

	saved := &domain.Recitation{
		ID:        "abc123",
		LearnerID: "learner-1",
		AyahID:    "001001",
		Status:    domain.StatusDone,
		Feedback:  &domain.RecitationFeedback{OverallScore: 88},
	}
	if err := store.Save(context.Background(), saved); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/recitations?learner_id=learner-1&recitation_ids=abc123,missing", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Recitations []recitationResponse `json:"recitations"`
		NotFound    []string             `json:"not_found"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if len(resp.Recitations) != 1 || resp.Recitations[0].RecitationID != "abc123" {
		t.Errorf("recitations = %+v, want one entry abc123", resp.Recitations)
	}
	if len(resp.NotFound) != 1 || resp.NotFound[0] != "missing" {
		t.Errorf("not_found = %v, want [missing]", resp.NotFound)
	}
}

func TestListRecitations(t *testing.T) {
	server, store := newTestServer(t, mock.New(), "")

	for _, id := range []string{"r1", "r2", "r3"} {
		err := store.Save(context.Background(), &domain.Recitation{
			ID:        id,
			LearnerID: "learner-1",
			Status:    domain.StatusDone,
		})
		if err != nil {
			t.Fatalf("seed store: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/recitations/learner-1?limit=2", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Items []recitationResponse `json:"items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if len(resp.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(resp.Items))
	}
	if resp.Items[0].RecitationID != "r3" {
		t.Errorf("first item = %s, want r3 (newest first)", resp.Items[0].RecitationID)
	}
}

func TestGetProgress(t *testing.T) {
	transcriber := mock.New().WithResult(&domain.Transcription{Text: "بسم الله"})
	server, _ := newTestServer(t, transcriber, "")

	body, contentType := multipartBody(t, []byte("audio"), "بِسْمِ اللَّهِ")
	req := httptest.NewRequest(http.MethodPost, "/recitations?learner_id=learner-1&ayah_id=001001", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("submit: status = %d, want 200", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/progress/learner-1", nil)
	rec = httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var progress domain.Progress
	if err := json.Unmarshal(rec.Body.Bytes(), &progress); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if progress.Hasanat == 0 {
		t.Error("expected accumulated hasanat after a scored recitation")
	}
}
