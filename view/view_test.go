package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbachinger/taeglich/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func multiEntry(date time.Time, attacks ...model.PanicAttackDetail) model.JournalEntry {
	return model.JournalEntry{
		Date:                 date,
		SubmittedAt:          date.Add(20 * time.Hour),
		Stimmung:             "80",
		SituationenVermieden: "nein",
		Panic: model.PanicReport{
			Kind:    model.PanicMulti,
			Anzahl:  len(attacks),
			Attacks: attacks,
		},
	}
}

func TestRenderOrdersByDateDescending(t *testing.T) {
	cards := Render([]model.JournalEntry{
		multiEntry(day(2024, 1, 9)),
		multiEntry(day(2024, 1, 10)),
	})

	require.Len(t, cards, 2)
	assert.Equal(t, "10. Januar 2024", cards[0].DisplayDate)
	assert.Equal(t, "9. Januar 2024", cards[1].DisplayDate)
}

func TestRenderStableOnEqualDates(t *testing.T) {
	first := multiEntry(day(2024, 1, 10))
	first.Stimmung = "11"
	second := multiEntry(day(2024, 1, 10))
	second.Stimmung = "22"

	cards := Render([]model.JournalEntry{first, second})

	require.Len(t, cards, 2)
	assert.Equal(t, "11/100", cards[0].Details.Metrics[0].Value)
	assert.Equal(t, "22/100", cards[1].Details.Metrics[0].Value)
}

func TestRenderDoesNotMutateInput(t *testing.T) {
	entries := []model.JournalEntry{
		multiEntry(day(2024, 1, 9)),
		multiEntry(day(2024, 1, 10)),
	}

	Render(entries)

	assert.True(t, entries[0].Date.Equal(day(2024, 1, 9)), "input order untouched")
}

func TestRenderCardShape(t *testing.T) {
	e := multiEntry(day(2024, 1, 10))
	e.ID = 5

	cards := Render([]model.JournalEntry{e})
	require.Len(t, cards, 1)
	card := cards[0]

	assert.Equal(t, int64(5), card.ID)
	assert.True(t, card.Collapsed, "details start collapsed")
	assert.Equal(t, "Details anzeigen", card.ToggleLabel)
	assert.Contains(t, card.SubmissionTime, "Uhr")
	require.Len(t, card.Details.Metrics, 7)
	assert.Equal(t, "Stimmung", card.Details.Metrics[0].Label)
	assert.Equal(t, "80/100", card.Details.Metrics[0].Value)
}

func TestRenderNoAttacks(t *testing.T) {
	cards := Render([]model.JournalEntry{multiEntry(day(2024, 1, 10))})

	section := cards[0].Details.Panic
	assert.Equal(t, "Keine Panikattacken berichtet.", section.Note)
	assert.Empty(t, section.Count)
	assert.Empty(t, section.Attacks)

	// no avoidance detail line when nothing was avoided
	require.Len(t, cards[0].Details.Avoidance, 1)
	assert.Equal(t, "Nein", cards[0].Details.Avoidance[0].Value)
}

func TestRenderAvoidanceDetail(t *testing.T) {
	e := multiEntry(day(2024, 1, 10))
	e.SituationenVermieden = "ja"
	e.VermiedenWelche = "Supermarkt"

	cards := Render([]model.JournalEntry{e})

	avoidance := cards[0].Details.Avoidance
	require.Len(t, avoidance, 2)
	assert.Equal(t, "Ja", avoidance[0].Value)
	assert.Equal(t, "Supermarkt", avoidance[1].Value)
}

func TestRenderFourAttacksCapLabel(t *testing.T) {
	attack := model.PanicAttackDetail{Intensitaet: "50"}
	cards := Render([]model.JournalEntry{
		multiEntry(day(2024, 1, 10), attack, attack, attack, attack),
	})

	section := cards[0].Details.Panic
	assert.Equal(t, "4 oder mehr", section.Count)
	assert.Len(t, section.Attacks, 4)
	assert.Equal(t, "Panikanfall 1:", section.Attacks[0].Title)
	assert.Equal(t, "Panikanfall 4:", section.Attacks[3].Title)
}

func TestRenderLiteralCountBelowCap(t *testing.T) {
	attack := model.PanicAttackDetail{}
	cards := Render([]model.JournalEntry{
		multiEntry(day(2024, 1, 10), attack, attack),
	})

	assert.Equal(t, "2", cards[0].Details.Panic.Count)
}

func TestRenderSymptomResolution(t *testing.T) {
	attack := model.PanicAttackDetail{
		Symptome: []string{"symSchwitzen", "symUnknown"},
	}
	cards := Render([]model.JournalEntry{multiEntry(day(2024, 1, 10), attack)})

	got := cards[0].Details.Panic.Attacks[0].Symptome
	assert.Equal(t, []string{"Schwitzen", "symUnknown"}, got,
		"known codes resolve, unknown ones pass through verbatim")
}

func TestRenderNoSymptomsNote(t *testing.T) {
	attack := model.PanicAttackDetail{}
	cards := Render([]model.JournalEntry{multiEntry(day(2024, 1, 10), attack)})

	v := cards[0].Details.Panic.Attacks[0]
	assert.Empty(t, v.Symptome)
	assert.Equal(t, "Keine spezifischen Symptome angegeben.", v.SymptomNote)
	assert.Equal(t, "N/A", v.Beginn)
	assert.Equal(t, "0/100", v.Intensitaet)
}

func TestRenderSingleAttackGeneration(t *testing.T) {
	e := model.JournalEntry{
		Date:                 day(2023, 6, 1),
		SubmittedAt:          day(2023, 6, 1).Add(9 * time.Hour),
		SituationenVermieden: "nein",
		Panic: model.PanicReport{
			Kind:   model.PanicSingle,
			Erlebt: "ja",
			Single: model.PanicAttackDetail{
				Beginn:      "10:00",
				Intensitaet: "90",
				Symptome:    []string{"symZittern"},
			},
		},
	}

	cards := Render([]model.JournalEntry{e})

	section := cards[0].Details.Panic
	assert.Equal(t, "1", section.Count)
	require.Len(t, section.Attacks, 1)
	assert.Equal(t, "10:00", section.Attacks[0].Beginn)
	assert.Equal(t, []string{"Zittern oder Schwanken"}, section.Attacks[0].Symptome)
}

func TestRenderSingleAttackNein(t *testing.T) {
	e := model.JournalEntry{
		Date:                 day(2023, 6, 1),
		SubmittedAt:          day(2023, 6, 1),
		SituationenVermieden: "nein",
		Panic:                model.PanicReport{Kind: model.PanicSingle, Erlebt: "nein"},
	}

	cards := Render([]model.JournalEntry{e})
	assert.Equal(t, "Keine Panikattacken berichtet.", cards[0].Details.Panic.Note)
}

func TestRenderMixedGenerationsTogether(t *testing.T) {
	old := model.JournalEntry{
		Date:                 day(2023, 6, 1),
		SubmittedAt:          day(2023, 6, 1),
		SituationenVermieden: "nein",
		Panic:                model.PanicReport{Kind: model.PanicSingle, Erlebt: "nein"},
	}
	current := multiEntry(day(2024, 1, 10), model.PanicAttackDetail{})

	cards := Render([]model.JournalEntry{old, current})

	require.Len(t, cards, 2)
	assert.Equal(t, "10. Januar 2024", cards[0].DisplayDate)
	assert.Equal(t, "1. Juni 2023", cards[1].DisplayDate)
	assert.Equal(t, "N/A", cards[1].Details.Sleep[0].Value, "pre-sleep records fall back to N/A")
}
