package telegram

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"mood-tracker/internal/graph"
	"mood-tracker/internal/mood"
)

// Matches integer-or-decimal ratings. The optional minus exists so that
// negative input reaches ingestion and gets a proper range rejection
// instead of the generic guidance reply.
var scoreRe = regexp.MustCompile(`^-?\d+(\.\d+)?$`)

const (
	welcomeText = "Привет! Я трекер настроения. 📊\n\n" +
		"Отправь мне цифру от 0 до 10 для оценки настроения.\n" +
		"Используй /mood для просмотра графика.\n" +
		"/help - справка"
	helpText = "📋 Команды:\n" +
		"/start - начать\n" +
		"/help - справка\n" +
		"/mood - график\n\n" +
		"📊 Шкала:\n" +
		"0-2: 😔 плохо\n" +
		"3-4: 😟 не очень\n" +
		"5-6: 😐 нормально\n" +
		"7-8: 🙂 хорошо\n" +
		"9-10: 😄 отлично!"
	guidanceText   = "Отправь цифру от 0 до 10 или /help"
	outOfRangeText = "Число должно быть от 0 до 10"
	noDataText     = "Нет данных за сегодня. Отправь первую оценку!"
	chartErrText   = "Ошибка создания графика 😔"
	saveWarnText   = "⚠️ Не удалось сохранить оценку на диск, она может потеряться при перезапуске"
	reminderText   = "🕘 Как прошёл день? Отправь оценку настроения от 0 до 10"
)

type Bot struct {
	api *tgbotapi.BotAPI
	s   sender
	svc *mood.Service
}

func New(botToken string, svc *mood.Service) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	return &Bot{api: api, s: botAPISender{api: api}, svc: svc}, nil
}

func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message != nil {
				b.handleIncomingMessage(update.Message)
			}
		}
	}
}

func (b *Bot) handleIncomingMessage(msg *tgbotapi.Message) {
	if msg.From == nil || msg.Text == "" {
		return
	}
	log.Printf("Incoming message from %d (@%s): %q", msg.From.ID, msg.From.UserName, msg.Text)

	if msg.IsCommand() {
		b.handleCommand(msg)
		return
	}
	if scoreRe.MatchString(strings.TrimSpace(msg.Text)) {
		b.handleScore(msg)
		return
	}
	b.sendMessage(msg.Chat.ID, guidanceText)
}

func (b *Bot) handleCommand(msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		b.sendMessage(msg.Chat.ID, welcomeText)
	case "help":
		b.sendMessage(msg.Chat.ID, helpText)
	case "mood":
		b.handleMood(msg)
	default:
		b.sendMessage(msg.Chat.ID, guidanceText)
	}
}

func (b *Bot) handleScore(msg *tgbotapi.Message) {
	acc, err := b.svc.Submit(msg.From.ID, msg.Text)
	if err != nil {
		switch {
		case errors.Is(err, mood.ErrOutOfRange):
			b.sendMessage(msg.Chat.ID, outOfRangeText)
		case errors.Is(err, mood.ErrNotANumber):
			b.sendMessage(msg.Chat.ID, guidanceText)
		default:
			log.Printf("submit failed for user %d: %v", msg.From.ID, err)
			b.sendMessage(msg.Chat.ID, guidanceText)
		}
		return
	}

	reply := fmt.Sprintf(
		"✅ Сохранено: %.1f/10\n📊 Всего: %d записей\n📈 Среднее: %.1f/10\n\nИспользуй /mood для графика",
		acc.Score, acc.Count, acc.Mean,
	)
	if acc.SaveFailed {
		reply += "\n\n" + saveWarnText
	}
	b.sendMessage(msg.Chat.ID, reply)
}

func (b *Bot) handleMood(msg *tgbotapi.Message) {
	scores, day := b.svc.TodayScores(msg.From.ID)
	if len(scores) == 0 {
		b.sendMessage(msg.Chat.ID, noDataText)
		return
	}

	png, err := graph.Render(scores, day)
	if err != nil {
		log.Printf("failed to render chart for user %d: %v", msg.From.ID, err)
		b.sendMessage(msg.Chat.ID, chartErrText)
		return
	}

	sum := graph.Summarize(scores)
	photo := tgbotapi.NewPhoto(msg.Chat.ID, tgbotapi.FileBytes{Name: "mood.png", Bytes: png})
	photo.Caption = fmt.Sprintf(
		"📊 Статистика:\nОценок: %d\nСреднее: %.1f/10\nМаксимум: %g/10\nМинимум: %g/10",
		sum.Count, sum.Mean, sum.Max, sum.Min,
	)
	if _, err := b.s.Send(photo); err != nil {
		log.Printf("failed to send chart: %v", err)
	}
}

// SendReminder prompts the user to rate their mood. For private chats the
// chat id equals the user id.
func (b *Bot) SendReminder(userID int64) {
	b.sendMessage(userID, reminderText)
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.s.Send(msg); err != nil {
		log.Printf("failed to send message: %v", err)
	}
}
