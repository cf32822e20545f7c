package service

import (
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"hanzidrill/internal/models"
)

// ReminderService pushes the daily due-count reminder to a Telegram chat
type ReminderService struct {
	bot     *tgbotapi.BotAPI
	chatID  int64
	enabled bool
}

// NewReminderService creates a new reminder service. Without a bot token
// and chat ID the service is created disabled.
func NewReminderService(token string, chatID int64) (*ReminderService, error) {
	if token == "" || chatID == 0 {
		log.Println("Telegram reminders disabled: TELEGRAM_BOT_TOKEN or TELEGRAM_CHAT_ID not configured")
		return &ReminderService{enabled: false}, nil
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	log.Printf("Telegram reminders enabled: bot=%s", bot.Self.UserName)
	return &ReminderService{bot: bot, chatID: chatID, enabled: true}, nil
}

// IsEnabled returns whether reminders are enabled
func (s *ReminderService) IsEnabled() bool {
	return s.enabled
}

// SendDueReminder sends a short message listing the characters due today
func (s *ReminderService) SendDueReminder(due []models.Character) error {
	if !s.enabled {
		return nil
	}
	if len(due) == 0 {
		return nil
	}

	glyphs := make([]string, len(due))
	for i, c := range due {
		glyphs[i] = c.Glyph
	}

	text := fmt.Sprintf("📚 %d characters due for review today: %s",
		len(due), strings.Join(glyphs, " "))

	if _, err := s.bot.Send(tgbotapi.NewMessage(s.chatID, text)); err != nil {
		return fmt.Errorf("failed to send Telegram reminder: %w", err)
	}
	return nil
}
