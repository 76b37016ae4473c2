package application

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/escalopa/quran-recite-api/internal/domain"
	"github.com/escalopa/quran-recite-api/internal/scoring"
	"github.com/escalopa/quran-recite-api/internal/telemetry"
)

// RecitationService orchestrates one recitation attempt end to end:
// transcription, scoring, history persistence and progress tracking.
type RecitationService struct {
	transcriber domain.Transcriber
	store       domain.RecitationStore
	progress    domain.ProgressStore
	language    string
	metrics     *telemetry.Metrics
	log         *logrus.Logger

	now   func() time.Time
	newID func() string
}

func NewRecitationService(
	transcriber domain.Transcriber,
	store domain.RecitationStore,
	progress domain.ProgressStore,
	language string,
	metrics *telemetry.Metrics,
	log *logrus.Logger,
) *RecitationService {
	return &RecitationService{
		transcriber: transcriber,
		store:       store,
		progress:    progress,
		language:    language,
		metrics:     metrics,
		log:         log,
		now:         time.Now,
		newID:       newRecitationID,
	}
}

// ScoreRecitation transcribes the audio, scores it against the expected text
// and persists the result. The scored recitation is returned even when
// persistence fails; a learner's feedback is never lost to a storage error.
func (s *RecitationService) ScoreRecitation(ctx context.Context, learnerID, ayahID, expectedText string, audio io.Reader) (*domain.Recitation, error) {
	if audio == nil {
		return nil, domain.ErrEmptyAudio
	}
	if expectedText == "" {
		return nil, domain.ErrEmptyExpectedText
	}
	if s.transcriber == nil {
		return nil, domain.ErrTranscriberUnavailable
	}

	started := s.now()

	transcription, err := s.transcriber.Transcribe(ctx, audio, s.language)
	if err != nil {
		s.metrics.RecordScoring(ctx, 0, s.now().Sub(started), "failed")
		return nil, fmt.Errorf("transcribe: %w", err)
	}

	feedback := scoring.Evaluate(expectedText, ayahID, *transcription)

	recitation := &domain.Recitation{
		ID:           s.newID(),
		LearnerID:    learnerID,
		AyahID:       ayahID,
		ExpectedText: expectedText,
		Status:       domain.StatusDone,
		Feedback:     &feedback,
		CreatedAt:    started,
		UpdatedAt:    s.now(),
	}

	if err := s.store.Save(ctx, recitation); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"learner_id":    learnerID,
			"recitation_id": recitation.ID,
		}).Error("save recitation")
	}

	if s.progress != nil {
		if _, err := s.progress.RecordRecitation(ctx, learnerID, feedback.Hasanat); err != nil {
			s.log.WithError(err).WithField("learner_id", learnerID).Error("record progress")
		}
	}

	s.metrics.RecordScoring(ctx, feedback.OverallScore, s.now().Sub(started), "done")

	s.log.WithFields(logrus.Fields{
		"learner_id":    learnerID,
		"recitation_id": recitation.ID,
		"ayah_id":       ayahID,
		"overall_score": feedback.OverallScore,
		"hasanat":       feedback.Hasanat,
	}).Info("recitation scored")

	return recitation, nil
}

// GetRecitation retrieves a scored recitation by ID, scoped to a learner.
func (s *RecitationService) GetRecitation(ctx context.Context, learnerID, recitationID string) (*domain.Recitation, error) {
	return s.store.Get(ctx, learnerID, recitationID)
}

// ListRecitations retrieves the learner's most recent recitations.
func (s *RecitationService) ListRecitations(ctx context.Context, learnerID string, limit int) ([]*domain.Recitation, error) {
	return s.store.List(ctx, learnerID, limit)
}

// GetProgress returns the learner's accumulated hasanat and streak.
func (s *RecitationService) GetProgress(ctx context.Context, learnerID string) (*domain.Progress, error) {
	if s.progress == nil {
		return &domain.Progress{LearnerID: learnerID}, nil
	}
	return s.progress.GetProgress(ctx, learnerID)
}

func newRecitationID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Sprintf("read random bytes: %v", err))
	}
	return hex.EncodeToString(buf)
}
