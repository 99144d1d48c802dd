package stats

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"formdesk/internal/entries"
)

// DailyStats содержит статистику заявок за день
type DailyStats struct {
	Date         string         `json:"date"`
	TotalEntries int            `json:"total_entries"`
	UniqueEmails int            `json:"unique_emails"`
	ByEmail      map[string]int `json:"by_email"`
}

// Summary описывает всё хранилище целиком
type Summary struct {
	TotalEntries int       `json:"total_entries"`
	UniqueEmails int       `json:"unique_emails"`
	First        time.Time `json:"first"`
	Last         time.Time `json:"last"`
}

// AnalyzeDay считает записи, созданные в календарный день targetDate
func AnalyzeDay(records []entries.Record, targetDate time.Time) *DailyStats {
	startOfDay := time.Date(targetDate.Year(), targetDate.Month(), targetDate.Day(), 0, 0, 0, 0, targetDate.Location())
	endOfDay := startOfDay.AddDate(0, 0, 1)

	ds := &DailyStats{
		Date:    startOfDay.Format("2006-01-02"),
		ByEmail: make(map[string]int),
	}
	for _, r := range records {
		if r.Timestamp.Before(startOfDay) || !r.Timestamp.Before(endOfDay) {
			continue
		}
		ds.TotalEntries++
		ds.ByEmail[r.Email]++
	}
	ds.UniqueEmails = len(ds.ByEmail)
	return ds
}

// Summarize возвращает сводку по всем записям
func Summarize(records []entries.Record) Summary {
	s := Summary{TotalEntries: len(records)}
	emails := make(map[string]struct{})
	for _, r := range records {
		emails[r.Email] = struct{}{}
		if r.Timestamp.IsZero() {
			continue
		}
		if s.First.IsZero() || r.Timestamp.Before(s.First) {
			s.First = r.Timestamp.Time
		}
		if r.Timestamp.After(s.Last) {
			s.Last = r.Timestamp.Time
		}
	}
	s.UniqueEmails = len(emails)
	return s
}

// ReportSummary формирует текстовый отчёт для логов и бота
func (ds *DailyStats) ReportSummary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Submissions for %s:\n", ds.Date)
	fmt.Fprintf(&b, "- Total entries: %d\n", ds.TotalEntries)
	fmt.Fprintf(&b, "- Unique emails: %d\n", ds.UniqueEmails)

	if len(ds.ByEmail) > 0 {
		emails := make([]string, 0, len(ds.ByEmail))
		for e := range ds.ByEmail {
			emails = append(emails, e)
		}
		sort.Strings(emails)
		b.WriteString("\nBy email:\n")
		for _, e := range emails {
			fmt.Fprintf(&b, "- %s: %d\n", e, ds.ByEmail[e])
		}
	}
	return b.String()
}

// ToJSON сериализует статистику в JSON
func (ds *DailyStats) ToJSON() (string, error) {
	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
