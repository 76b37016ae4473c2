package application

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/escalopa/quran-recite-api/internal/domain"
)

// BotService handles the conversational flow for the bot: surah/ayah
// selection over the FSM, then a locally scored recitation attempt.
type BotService struct {
	recitations *RecitationService
	verses      domain.VersePort
	fsm         domain.FSMPort
	i18n        domain.I18nPort
}

func NewBotService(recitations *RecitationService, verses domain.VersePort, fsm domain.FSMPort, i18n domain.I18nPort) *BotService {
	return &BotService{
		recitations: recitations,
		verses:      verses,
		fsm:         fsm,
		i18n:        i18n,
	}
}

// HandleStart handles the /start command
func (s *BotService) HandleStart(ctx context.Context, userID string, lang domain.Language) error {
	// Set initial state
	if err := s.fsm.SetState(ctx, userID, domain.StateSelectSurah); err != nil {
		return fmt.Errorf("set state: %w", err)
	}

	// Store user language
	if err := s.fsm.SetData(ctx, userID, domain.SessionKeyLanguage, string(lang)); err != nil {
		return fmt.Errorf("set language: %w", err)
	}

	return nil
}

// GetCurrentState returns the current state for a user
func (s *BotService) GetCurrentState(ctx context.Context, userID string) (domain.State, error) {
	return s.fsm.GetState(ctx, userID)
}

// HandleSurahSelection handles when a user selects a Surah
func (s *BotService) HandleSurahSelection(ctx context.Context, userID string, surahNumber int) error {
	// Validate surah number
	surahs := domain.GetAllSurahs()
	if surahNumber < 1 || surahNumber > len(surahs) {
		return fmt.Errorf("invalid surah number: %d", surahNumber)
	}

	// Store selected surah
	if err := s.fsm.SetData(ctx, userID, domain.SessionKeySurah, strconv.Itoa(surahNumber)); err != nil {
		return fmt.Errorf("set surah: %w", err)
	}

	// Move to next state
	if err := s.fsm.SetState(ctx, userID, domain.StateEnterAyah); err != nil {
		return fmt.Errorf("set state: %w", err)
	}

	return nil
}

// HandleAyahInput handles when a user enters an Ayah number
func (s *BotService) HandleAyahInput(ctx context.Context, userID, input string) error {
	// Parse ayah number
	ayahNumber, err := strconv.Atoi(input)
	if err != nil {
		return fmt.Errorf("invalid ayah number: %s", input)
	}

	// Get selected surah
	surahStr, err := s.fsm.GetData(ctx, userID, domain.SessionKeySurah)
	if err != nil {
		return fmt.Errorf("get surah: %w", err)
	}

	surahNumber, err := strconv.Atoi(surahStr)
	if err != nil {
		return fmt.Errorf("parse surah: %w", err)
	}

	// Validate ayah number
	surahs := domain.GetAllSurahs()
	if surahNumber < 1 || surahNumber > len(surahs) {
		return fmt.Errorf("invalid surah: %d", surahNumber)
	}

	surah := surahs[surahNumber-1]
	if ayahNumber < 1 || ayahNumber > surah.Ayahs {
		return fmt.Errorf("invalid ayah number: %d (surah %d has %d ayahs)", ayahNumber, surahNumber, surah.Ayahs)
	}

	// Store ayah number
	if err := s.fsm.SetData(ctx, userID, domain.SessionKeyAyah, strconv.Itoa(ayahNumber)); err != nil {
		return fmt.Errorf("set ayah: %w", err)
	}

	// Move to next state
	if err := s.fsm.SetState(ctx, userID, domain.StateWaitRecording); err != nil {
		return fmt.Errorf("set state: %w", err)
	}

	return nil
}

// HandleRecording scores a voice recording against the selected ayah and
// resets the session so the user can start a new attempt.
func (s *BotService) HandleRecording(ctx context.Context, userID string, audioFile io.Reader) (*domain.Recitation, error) {
	// Get surah and ayah
	surahStr, err := s.fsm.GetData(ctx, userID, domain.SessionKeySurah)
	if err != nil {
		return nil, fmt.Errorf("get surah: %w", err)
	}

	ayahStr, err := s.fsm.GetData(ctx, userID, domain.SessionKeyAyah)
	if err != nil {
		return nil, fmt.Errorf("get ayah: %w", err)
	}

	surahNumber, _ := strconv.Atoi(surahStr)
	ayahNumber, _ := strconv.Atoi(ayahStr)

	expectedText, err := s.verses.GetAyahText(ctx, surahNumber, ayahNumber)
	if err != nil {
		return nil, fmt.Errorf("get ayah text: %w", err)
	}

	ayahID := domain.FormatAyahID(surahNumber, ayahNumber)

	recitation, err := s.recitations.ScoreRecitation(ctx, userID, ayahID, expectedText, audioFile)
	if err != nil {
		return nil, fmt.Errorf("score recitation: %w", err)
	}

	// Reset state to allow new recording
	if err := s.fsm.SetState(ctx, userID, domain.StateSelectSurah); err != nil {
		return nil, fmt.Errorf("reset state: %w", err)
	}

	return recitation, nil
}

// GetUserLanguage retrieves the user's preferred language
func (s *BotService) GetUserLanguage(ctx context.Context, userID string) domain.Language {
	langStr, err := s.fsm.GetData(ctx, userID, domain.SessionKeyLanguage)
	if err != nil || langStr == "" {
		return domain.LangEnglish // default
	}
	return domain.Language(langStr)
}

// FormatRecitationResult formats a scored recitation for display
func (s *BotService) FormatRecitationResult(lang domain.Language, recitation *domain.Recitation) string {
	fb := recitation.Feedback
	if fb == nil {
		return s.i18n.Get(lang, "recitation.failed")
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s: %d/100\n", s.i18n.Get(lang, "recitation.overall"), fb.OverallScore))
	sb.WriteString(fmt.Sprintf("%s: %.1f%%\n", s.i18n.Get(lang, "recitation.accuracy"), fb.Accuracy))
	sb.WriteString(fmt.Sprintf("%s: %d/100\n", s.i18n.Get(lang, "recitation.fluency"), fb.FluencyScore))
	sb.WriteString(fmt.Sprintf("%s: %d ✨\n\n", s.i18n.Get(lang, "recitation.hasanat"), fb.Hasanat))

	sb.WriteString(fb.Message)
	sb.WriteString("\n")

	if len(fb.Errors) > 0 {
		sb.WriteString("\n")
		sb.WriteString(s.i18n.Get(lang, "recitation.errors"))
		sb.WriteString("\n")

		for _, e := range fb.Errors {
			switch e.Kind {
			case domain.ErrorOmission:
				sb.WriteString(fmt.Sprintf("❌ %s\n", e.Expected))
			case domain.ErrorInsertion:
				sb.WriteString(fmt.Sprintf("➕ %s\n", e.Transcribed))
			case domain.ErrorSubstitution:
				sb.WriteString(fmt.Sprintf("🔄 %s → %s\n", e.Expected, e.Transcribed))
			}
		}
	}

	return sb.String()
}

// FormatProgress formats a learner's progress for display
func (s *BotService) FormatProgress(lang domain.Language, progress *domain.Progress) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s: %d ✨\n", s.i18n.Get(lang, "progress.hasanat"), progress.Hasanat))
	sb.WriteString(fmt.Sprintf("%s: %d\n", s.i18n.Get(lang, "progress.recitations"), progress.Recitations))
	sb.WriteString(fmt.Sprintf("%s: %d 🔥\n", s.i18n.Get(lang, "progress.streak"), progress.Streak))

	return sb.String()
}

// GetSelectedSurah returns the currently selected surah for a user
func (s *BotService) GetSelectedSurah(ctx context.Context, userID string) (int, error) {
	surahStr, err := s.fsm.GetData(ctx, userID, domain.SessionKeySurah)
	if err != nil {
		return 0, fmt.Errorf("get surah: %w", err)
	}

	return strconv.Atoi(surahStr)
}

// GetAllSurahs returns all surahs
func (s *BotService) GetAllSurahs() []domain.Surah {
	return domain.GetAllSurahs()
}

// GetAyahInput gets the accumulated ayah input for a user
func (s *BotService) GetAyahInput(ctx context.Context, userID string) string {
	input, err := s.fsm.GetData(ctx, userID, domain.SessionKeyAyahInput)
	if err != nil {
		return ""
	}
	return input
}

// SetAyahInput sets the accumulated ayah input for a user
func (s *BotService) SetAyahInput(ctx context.Context, userID, input string) error {
	return s.fsm.SetData(ctx, userID, domain.SessionKeyAyahInput, input)
}

// ClearAyahInput clears the accumulated ayah input for a user
func (s *BotService) ClearAyahInput(ctx context.Context, userID string) error {
	return s.fsm.DeleteData(ctx, userID, domain.SessionKeyAyahInput)
}

// GetRecitation retrieves a specific recitation by ID
func (s *BotService) GetRecitation(ctx context.Context, userID, recitationID string) (*domain.Recitation, error) {
	return s.recitations.GetRecitation(ctx, userID, recitationID)
}

// ListRecitations retrieves recent recitations for a user
func (s *BotService) ListRecitations(ctx context.Context, userID string, limit int) ([]*domain.Recitation, error) {
	return s.recitations.ListRecitations(ctx, userID, limit)
}

// GetProgress retrieves the learner's progress
func (s *BotService) GetProgress(ctx context.Context, userID string) (*domain.Progress, error) {
	return s.recitations.GetProgress(ctx, userID)
}
