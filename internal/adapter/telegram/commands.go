package telegram

import (
	"context"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type CommandHandler func(ctx context.Context, msg *tgbotapi.Message)

// registerCommands registers all bot commands
func (b *Bot) registerCommands() {
	// Register command handlers
	b.commands = map[string]CommandHandler{
		"start":      b.commandStart,
		"help":       b.commandHelp,
		"language":   b.commandLanguage,
		"myrecords":  b.commandMyRecords,
		"newrecite":  b.commandNewRecite,
		"myprogress": b.commandMyProgress,
	}

	// Set bot commands for Telegram UI
	commands := []tgbotapi.BotCommand{
		{Command: "start", Description: "Start the bot"},
		{Command: "newrecite", Description: "Recite a new ayah"},
		{Command: "myrecords", Description: "View my scored recitations"},
		{Command: "myprogress", Description: "View my hasanat and streak"},
		{Command: "language", Description: "Change language"},
		{Command: "help", Description: "Show help"},
	}

	cmdConfig := tgbotapi.NewSetMyCommands(commands...)
	if _, err := b.api.Request(cmdConfig); err != nil {
		b.log.WithError(err).Error("set bot commands")
	}
}

func (b *Bot) commandStart(ctx context.Context, msg *tgbotapi.Message) {
	userID := strconv.FormatInt(msg.From.ID, 10)
	lang := b.service.GetUserLanguage(ctx, userID)

	if err := b.service.HandleStart(ctx, userID, lang); err != nil {
		b.log.WithError(err).Error("handle start")
		b.sendMessage(msg.Chat.ID, b.i18n.Get(lang, "error.generic"))
		return
	}

	// Send welcome message
	b.sendMessage(msg.Chat.ID, b.i18n.Get(lang, "welcome.message"))

	// Show surah selection
	b.sendSurahSelection(ctx, msg.Chat.ID, userID, lang, 0)
}

func (b *Bot) commandHelp(ctx context.Context, msg *tgbotapi.Message) {
	userID := strconv.FormatInt(msg.From.ID, 10)
	lang := b.service.GetUserLanguage(ctx, userID)
	b.sendMessage(msg.Chat.ID, b.i18n.Get(lang, "help.message"))
}

func (b *Bot) commandLanguage(ctx context.Context, msg *tgbotapi.Message) {
	userID := strconv.FormatInt(msg.From.ID, 10)
	lang := b.service.GetUserLanguage(ctx, userID)
	b.sendLanguageSelection(msg.Chat.ID, lang)
}

func (b *Bot) commandNewRecite(ctx context.Context, msg *tgbotapi.Message) {
	userID := strconv.FormatInt(msg.From.ID, 10)
	lang := b.service.GetUserLanguage(ctx, userID)

	if err := b.service.HandleStart(ctx, userID, lang); err != nil {
		b.log.WithError(err).Error("handle start")
		b.sendMessage(msg.Chat.ID, b.i18n.Get(lang, "error.generic"))
		return
	}

	b.sendSurahSelection(ctx, msg.Chat.ID, userID, lang, 0)
}

func (b *Bot) commandMyRecords(ctx context.Context, msg *tgbotapi.Message) {
	userID := strconv.FormatInt(msg.From.ID, 10)
	lang := b.service.GetUserLanguage(ctx, userID)

	// Fetch recent recitations
	recitations, err := b.service.ListRecitations(ctx, userID, 10)
	if err != nil {
		b.log.WithError(err).Error("list recitations")
		b.sendMessage(msg.Chat.ID, b.i18n.Get(lang, "error.generic"))
		return
	}

	if len(recitations) == 0 {
		b.sendMessage(msg.Chat.ID, b.i18n.Get(lang, "recitations.empty"))
		return
	}

	b.sendRecitationsList(msg.Chat.ID, lang, recitations, 0)
}

func (b *Bot) commandMyProgress(ctx context.Context, msg *tgbotapi.Message) {
	userID := strconv.FormatInt(msg.From.ID, 10)
	lang := b.service.GetUserLanguage(ctx, userID)
	b.handleShowProgress(ctx, msg.Chat.ID, userID, lang)
}
