package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/escalopa/quran-recite-api/internal/domain"
)

// handleViewRecitation shows details of a specific recitation
func (b *Bot) handleViewRecitation(ctx context.Context, msg *tgbotapi.Message, userID string, lang domain.Language, recitationID string) {
	recitation, err := b.service.GetRecitation(ctx, userID, recitationID)
	if err != nil {
		b.log.WithError(err).Error("get recitation")
		b.sendMessage(msg.Chat.ID, b.i18n.Get(lang, "error.recitation_not_found"))
		return
	}

	text := b.formatRecitationDetails(lang, recitation)

	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				b.i18n.Get(lang, "nav.back"),
				"backtorecs",
			),
			tgbotapi.NewInlineKeyboardButtonData(
				b.i18n.Get(lang, "recitation.new"),
				"newrecite",
			),
		),
	)

	edit := tgbotapi.NewEditMessageText(msg.Chat.ID, msg.MessageID, text)
	edit.ReplyMarkup = &keyboard
	edit.ParseMode = "HTML"
	b.api.Send(edit)
}

// sendRecitationsList sends a paginated list of recitations
func (b *Bot) sendRecitationsList(chatID int64, lang domain.Language, recitations []*domain.Recitation, page int) {
	text, keyboard := b.formatRecitationsList(lang, recitations, page)

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	msg.ParseMode = "HTML"
	b.api.Send(msg)
}

// editRecitationsList edits message with paginated list of recitations
func (b *Bot) editRecitationsList(msg *tgbotapi.Message, lang domain.Language, recitations []*domain.Recitation, page int) {
	text, keyboard := b.formatRecitationsList(lang, recitations, page)

	edit := tgbotapi.NewEditMessageText(msg.Chat.ID, msg.MessageID, text)
	edit.ReplyMarkup = &keyboard
	edit.ParseMode = "HTML"
	b.api.Send(edit)
}

// formatRecitationsList formats recitations into paginated list with keyboard
func (b *Bot) formatRecitationsList(lang domain.Language, recitations []*domain.Recitation, page int) (string, tgbotapi.InlineKeyboardMarkup) {
	const itemsPerPage = 5
	totalPages := (len(recitations) + itemsPerPage - 1) / itemsPerPage

	if page >= totalPages {
		page = totalPages - 1
	}
	if page < 0 {
		page = 0
	}

	start := page * itemsPerPage
	end := start + itemsPerPage
	if end > len(recitations) {
		end = len(recitations)
	}

	var text strings.Builder
	text.WriteString(fmt.Sprintf("<b>%s</b>\n\n", b.i18n.Get(lang, "recitations.title")))
	text.WriteString(fmt.Sprintf("%s: %d\n\n", b.i18n.Get(lang, "recitations.total"), len(recitations)))

	var rows [][]tgbotapi.InlineKeyboardButton

	// Add recitation buttons
	for i := start; i < end; i++ {
		rec := recitations[i]
		date := rec.CreatedAt.Format("2006-01-02 15:04")

		surahNum, ayahNum := domain.ParseAyahID(rec.AyahID)
		surahName := b.i18n.GetSurahName(lang, surahNum)

		score := "-"
		if rec.Feedback != nil {
			score = fmt.Sprintf("%d", rec.Feedback.OverallScore)
		}

		btnText := fmt.Sprintf("%s %s:%d · %s - %s", b.getStatusEmoji(rec.Status), surahName, ayahNum, score, date)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(btnText, fmt.Sprintf("viewrec:%s", rec.ID)),
		))
	}

	// Add navigation buttons
	if totalPages > 1 {
		var navRow []tgbotapi.InlineKeyboardButton
		if page > 0 {
			navRow = append(navRow, tgbotapi.NewInlineKeyboardButtonData(
				"⬅️ "+b.i18n.Get(lang, "nav.prev"),
				fmt.Sprintf("recpage:%d", page-1),
			))
		}
		navRow = append(navRow, tgbotapi.NewInlineKeyboardButtonData(
			fmt.Sprintf("%d/%d", page+1, totalPages),
			"noop",
		))
		if page < totalPages-1 {
			navRow = append(navRow, tgbotapi.NewInlineKeyboardButtonData(
				b.i18n.Get(lang, "nav.next")+" ➡️",
				fmt.Sprintf("recpage:%d", page+1),
			))
		}
		rows = append(rows, navRow)
	}

	// Add new recitation button
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(
			"➕ "+b.i18n.Get(lang, "recitation.new"),
			"newrecite",
		),
	))

	return text.String(), tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// formatRecitationDetails formats detailed recitation information
func (b *Bot) formatRecitationDetails(lang domain.Language, recitation *domain.Recitation) string {
	var text strings.Builder

	text.WriteString(fmt.Sprintf("<b>%s</b>\n\n", b.i18n.Get(lang, "recitation.details")))
	text.WriteString(fmt.Sprintf("🆔 ID: <code>%s</code>\n", recitation.ID))

	if recitation.AyahID != "" {
		surahNum, ayahNum := domain.ParseAyahID(recitation.AyahID)
		surahName := b.i18n.GetSurahName(lang, surahNum)
		text.WriteString(fmt.Sprintf("📖 Surah: <b>%s</b>\n", surahName))
		text.WriteString(fmt.Sprintf("📄 %s: <b>%d</b>\n", b.i18n.Get(lang, "ayah.ayah"), ayahNum))
	}

	text.WriteString(fmt.Sprintf("📅 %s: %s\n",
		b.i18n.Get(lang, "recitation.created"),
		recitation.CreatedAt.Format(time.RFC822),
	))
	text.WriteString(fmt.Sprintf("🔄 %s: %s %s\n\n",
		b.i18n.Get(lang, "recitation.status"),
		b.getStatusEmoji(recitation.Status),
		recitation.Status,
	))

	fb := recitation.Feedback
	if fb == nil {
		return text.String()
	}

	text.WriteString(fmt.Sprintf("<b>%s</b>\n", b.i18n.Get(lang, "recitation.results")))
	text.WriteString(fmt.Sprintf("🏆 %s: <b>%d/100</b>\n", b.i18n.Get(lang, "recitation.overall"), fb.OverallScore))
	text.WriteString(fmt.Sprintf("📊 %s: <b>%.1f%%</b>\n", b.i18n.Get(lang, "recitation.accuracy"), fb.Accuracy))
	text.WriteString(fmt.Sprintf("⏱ %s: <b>%d/100</b>\n", b.i18n.Get(lang, "recitation.timing"), fb.TimingScore))
	text.WriteString(fmt.Sprintf("🎵 %s: <b>%d/100</b>\n", b.i18n.Get(lang, "recitation.fluency"), fb.FluencyScore))
	text.WriteString(fmt.Sprintf("✨ %s: <b>%d</b>\n\n", b.i18n.Get(lang, "recitation.hasanat"), fb.Hasanat))

	text.WriteString(fb.Message)
	text.WriteString("\n")

	if len(fb.Errors) > 0 {
		text.WriteString(fmt.Sprintf("\n<b>%s:</b>\n", b.i18n.Get(lang, "recitation.errors")))
		for i, e := range fb.Errors {
			if i >= 20 { // Limit the list for long ayahs
				text.WriteString(fmt.Sprintf("... (%d %s)\n",
					len(fb.Errors)-20,
					b.i18n.Get(lang, "recitation.more_errors"),
				))
				break
			}
			switch e.Kind {
			case domain.ErrorOmission:
				text.WriteString(fmt.Sprintf("❌ <code>%s</code>\n", e.Expected))
			case domain.ErrorInsertion:
				text.WriteString(fmt.Sprintf("➕ <code>%s</code>\n", e.Transcribed))
			case domain.ErrorSubstitution:
				text.WriteString(fmt.Sprintf("🔄 <code>%s</code> → <code>%s</code>\n", e.Expected, e.Transcribed))
			}
		}
	}

	if fb.Transcript != "" {
		text.WriteString(fmt.Sprintf("\n<b>%s:</b>\n<code>%s</code>\n",
			b.i18n.Get(lang, "recitation.transcription"),
			fb.Transcript,
		))
	}

	return text.String()
}

// getStatusEmoji returns emoji for recitation status
func (b *Bot) getStatusEmoji(status domain.RecitationStatus) string {
	switch status {
	case domain.StatusDone:
		return "✅"
	case domain.StatusFailed:
		return "❌"
	default:
		return "❓"
	}
}
