package history

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/linguaspark/internal/store"
)

// historyVersion is the envelope version written by this build.
const historyVersion = 1

// legacyDateLayouts are the shapes the browser build's toLocaleString and
// earlier Go builds produced for a conversation's date.
var legacyDateLayouts = []string{
	time.RFC3339Nano,
	"1/2/2006, 3:04:05 PM",
	"1/2/2006, 15:04:05",
	"2/1/2006, 15:04:05",
	"02/01/2006, 15:04:05",
	"2006-01-02 15:04:05",
	"2006/1/2 15:04:05",
}

type legacyTurn struct {
	Turn
	Sender string `json:"sender"`
}

type legacyRecord struct {
	Record
	Date     string       `json:"date"`
	Messages []legacyTurn `json:"messages"`
}

func encodeRecords(records []Record) (string, error) {
	return store.EncodeVersioned(historyVersion, records)
}

func decodeRecords(raw string) ([]Record, error) {
	version, data, err := store.DecodeVersioned(raw, historyVersion)
	if err != nil {
		return nil, err
	}
	if version >= 1 {
		var records []Record
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("decode history: %w", err)
		}
		return records, nil
	}

	var legacy []legacyRecord
	if err := json.Unmarshal(data, &legacy); err != nil {
		return nil, fmt.Errorf("decode legacy history: %w", err)
	}
	records := make([]Record, 0, len(legacy))
	for _, l := range legacy {
		records = append(records, migrateRecordV0(l))
	}
	return records, nil
}

// migrateRecordV0 maps the browser shape (sender "ai"|"user", a locale
// date string) onto Record.
func migrateRecordV0(l legacyRecord) Record {
	rec := l.Record
	rec.Turns = make([]Turn, 0, len(l.Messages))
	for _, m := range l.Messages {
		t := m.Turn
		if t.Speaker == "" {
			switch strings.ToLower(m.Sender) {
			case "ai", "assistant":
				t.Speaker = SpeakerAssistant
			default:
				t.Speaker = SpeakerUser
			}
		}
		if t.Feedback != nil && t.Feedback.Corrections == nil {
			t.Feedback.Corrections = []string{}
		}
		rec.Turns = append(rec.Turns, t)
	}
	if rec.StartedAt.IsZero() {
		rec.StartedAt = parseLegacyDate(l.Date)
	}
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = rec.StartedAt
	}
	return rec
}

func parseLegacyDate(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range legacyDateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t
		}
	}
	return time.Time{}
}
