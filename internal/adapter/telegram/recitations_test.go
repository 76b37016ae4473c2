package telegram

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/escalopa/quran-recite-api/internal/domain"
)

type stubI18n struct{}

func (stubI18n) Get(_ domain.Language, key string, args ...interface{}) string {
	if len(args) > 0 {
		return fmt.Sprintf(key, args...)
	}
	return key
}

func (stubI18n) GetSurahName(_ domain.Language, surahNumber int) string {
	return fmt.Sprintf("Surah %d", surahNumber)
}

func makeRecitations(n int) []*domain.Recitation {
	recitations := make([]*domain.Recitation, 0, n)
	for i := 0; i < n; i++ {
		recitations = append(recitations, &domain.Recitation{
			ID:        fmt.Sprintf("rec-%d", i),
			AyahID:    domain.FormatAyahID(112, i+1),
			Status:    domain.StatusDone,
			CreatedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC).Add(time.Duration(i) * time.Minute),
		})
	}
	return recitations
}

func TestFormatRecitationsList_PageClamping(t *testing.T) {
	bot := &Bot{i18n: stubI18n{}}

	tests := []struct {
		name        string
		count       int
		page        int
		wantButtons int
	}{
		{"empty list", 0, 0, 0},
		{"empty list with stale page", 0, 3, 0},
		{"negative page", 7, -2, 5},
		{"page past the end", 7, 9, 2},
		{"last page remainder", 7, 1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, keyboard := bot.formatRecitationsList(domain.LangEnglish, makeRecitations(tt.count), tt.page)

			if !strings.Contains(text, fmt.Sprintf("recitations.total: %d", tt.count)) {
				t.Errorf("text is missing the total count %d:\n%s", tt.count, text)
			}

			var buttons int
			for _, row := range keyboard.InlineKeyboard {
				for _, btn := range row {
					if btn.CallbackData != nil && strings.HasPrefix(*btn.CallbackData, "viewrec:") {
						buttons++
					}
				}
			}
			if buttons != tt.wantButtons {
				t.Errorf("recitation buttons = %d, want %d", buttons, tt.wantButtons)
			}
		})
	}
}
