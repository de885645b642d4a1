package export

import (
	"encoding/json"
	"time"

	"github.com/mbachinger/taeglich/model"
)

// Marshal serializes every stored record as a pretty-printed JSON array
// in the historical field names.
func Marshal(entries []model.JournalEntry) ([]byte, error) {
	if entries == nil {
		entries = []model.JournalEntry{}
	}
	return json.MarshalIndent(entries, "", "  ")
}

// Filename names the download after the moment of export, not after any
// entry date.
func Filename(now time.Time) string {
	return "taegliches_journal_eintraege_" + now.Format("2006-01-02") + ".json"
}
