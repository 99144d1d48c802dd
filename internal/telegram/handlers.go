package telegram

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"formdesk/internal/entries"
	"formdesk/internal/stats"
)

// maxMessageLen is Telegram's limit for a single text message.
const maxMessageLen = 4096

const helpText = "Submit your information with:\n" +
	"/submit Name | email | message\n\n" +
	"Other commands:\n" +
	"/entries - show all submitted entries\n" +
	"/stats - today's submission statistics"

func (b *Bot) handleIncomingMessage(msg *tgbotapi.Message) {
	if msg.Chat == nil {
		return
	}
	if !msg.IsCommand() {
		b.sendMessage(msg.Chat.ID, helpText)
		return
	}
	log.Printf("Incoming command from chat %d: /%s", msg.Chat.ID, msg.Command())

	switch msg.Command() {
	case "start", "help":
		b.sendMessage(msg.Chat.ID, helpText)
	case "submit":
		b.handleSubmit(msg)
	case "entries":
		b.handleEntries(msg)
	case "stats":
		b.handleStats(msg)
	default:
		b.sendMessage(msg.Chat.ID, "Unknown command.\n\n"+helpText)
	}
}

func (b *Bot) handleSubmit(msg *tgbotapi.Message) {
	name, email, message, err := parseSubmission(msg.CommandArguments())
	if err != nil {
		b.sendMessage(msg.Chat.ID, "Please fill in all fields.\nUsage: /submit Name | email | message")
		return
	}
	rec, err := b.store.Add(name, email, message)
	if err != nil {
		log.Printf("❌ Failed to save entry from chat %d: %v", msg.Chat.ID, err)
		b.sendMessage(msg.Chat.ID, "Sorry, the entry could not be saved.")
		return
	}
	b.sendMessage(msg.Chat.ID, fmt.Sprintf("Thank you %s! Your entry has been saved.\n\n%s", rec.Name, prettyJSON(rec)))
}

func (b *Bot) handleEntries(msg *tgbotapi.Message) {
	records, err := b.store.Load()
	if err != nil {
		log.Printf("❌ Failed to load entries: %v", err)
		b.sendMessage(msg.Chat.ID, "Sorry, entries are unavailable right now.")
		return
	}
	if len(records) == 0 {
		b.sendMessage(msg.Chat.ID, "No entries yet.")
		return
	}
	for _, chunk := range splitMessage(prettyJSON(records), maxMessageLen) {
		b.sendMessage(msg.Chat.ID, chunk)
	}
}

func (b *Bot) handleStats(msg *tgbotapi.Message) {
	records, err := b.store.Load()
	if err != nil {
		log.Printf("❌ Failed to load entries: %v", err)
		b.sendMessage(msg.Chat.ID, "Sorry, statistics are unavailable right now.")
		return
	}
	sum := stats.Summarize(records)
	daily := stats.AnalyzeDay(records, time.Now())
	b.sendMessage(msg.Chat.ID, fmt.Sprintf("Total entries: %d\nUnique emails: %d\n\n%s", sum.TotalEntries, sum.UniqueEmails, daily.ReportSummary()))
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.s.Send(msg); err != nil {
		log.Printf("failed to send message: %v", err)
	}
}

// parseSubmission splits "name | email | message". The message may itself contain '|'.
func parseSubmission(args string) (name, email, message string, err error) {
	parts := strings.SplitN(args, "|", 3)
	if len(parts) != 3 {
		return "", "", "", entries.ErrMissingFields
	}
	name = strings.TrimSpace(parts[0])
	email = strings.TrimSpace(parts[1])
	message = strings.TrimSpace(parts[2])
	if err = entries.Validate(name, email, message); err != nil {
		return "", "", "", err
	}
	return name, email, message, nil
}

// splitMessage cuts text into chunks of at most limit runes, preferring line breaks.
func splitMessage(text string, limit int) []string {
	var chunks []string
	runes := []rune(text)
	for len(runes) > limit {
		cut := limit
		for i := limit; i > limit/2; i-- {
			if runes[i-1] == '\n' {
				cut = i
				break
			}
		}
		chunks = append(chunks, string(runes[:cut]))
		runes = runes[cut:]
	}
	if len(runes) > 0 {
		chunks = append(chunks, string(runes))
	}
	return chunks
}

func prettyJSON(v interface{}) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%+v", v)
	}
	return string(data)
}
