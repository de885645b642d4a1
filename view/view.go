package view

import (
	"fmt"
	"sort"

	"github.com/mbachinger/taeglich/model"
)

// Card is the display shape of one entry: an always-visible summary and
// a details block that starts collapsed. Toggling is the surface's job;
// the card only exposes the affordance.
type Card struct {
	ID             int64  `json:"id"`
	DisplayDate    string `json:"displayDate"`
	SubmissionTime string `json:"submissionTime"`
	Collapsed      bool   `json:"collapsed"`
	ToggleLabel    string `json:"toggleLabel"`
	Details        Detail `json:"details"`
}

type Detail struct {
	Metrics   []Line       `json:"metrics"`
	Sleep     []Line       `json:"sleep"`
	Avoidance []Line       `json:"avoidance"`
	Panic     PanicSection `json:"panic"`
}

type Line struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type PanicSection struct {
	// Count is "4 oder mehr" at the cap, otherwise the literal count;
	// empty when no attacks were reported.
	Count   string       `json:"count,omitempty"`
	Note    string       `json:"note,omitempty"`
	Attacks []AttackView `json:"attacks,omitempty"`
}

type AttackView struct {
	Title       string   `json:"title"`
	Beginn      string   `json:"beginn"`
	Ende        string   `json:"ende"`
	Intensitaet string   `json:"intensitaet"`
	Symptome    []string `json:"symptome"`
	SymptomNote string   `json:"symptomNote,omitempty"`
	Situation   string   `json:"situation"`
	Ausloeser   string   `json:"ausloeser"`
}

const (
	toggleShow   = "Details anzeigen"
	noAttacks    = "Keine Panikattacken berichtet."
	noSymptoms   = "Keine spezifischen Symptome angegeben."
	notAvailable = "N/A"
)

var months = [...]string{
	"Januar", "Februar", "März", "April", "Mai", "Juni",
	"Juli", "August", "September", "Oktober", "November", "Dezember",
}

// Render turns stored entries into display cards, newest content date
// first. Entries sharing a date keep their incoming relative order.
// Both storage generations render; the single-attack shape shows as one
// sub-report.
func Render(entries []model.JournalEntry) []Card {
	sorted := make([]model.JournalEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})

	cards := make([]Card, 0, len(sorted))
	for _, e := range sorted {
		cards = append(cards, renderCard(e))
	}
	return cards
}

func renderCard(e model.JournalEntry) Card {
	card := Card{
		ID:             e.ID,
		DisplayDate:    displayDate(e),
		SubmissionTime: fmt.Sprintf("Eingereicht um %s Uhr", e.SubmittedAt.Local().Format("15:04")),
		Collapsed:      true,
		ToggleLabel:    toggleShow,
	}

	card.Details.Metrics = []Line{
		{"Stimmung", orZero(e.Stimmung) + "/100"},
		{"Energieniveau", orZero(e.Energieniveau) + "/100"},
		{"Körperl. Wohlbefinden", orZero(e.KoerperlichesWohlbefinden) + "/100"},
		{"Nervosität", orZero(e.Nervositaet) + "/100"},
		{"Unruhe", orZero(e.Unruhe) + "/100"},
		{"Traurigkeit", orZero(e.Traurigkeit) + "/100"},
		{"Einsamkeit", orZero(e.Einsamkeit) + "/100"},
	}

	// Sleep fields only exist since the second schema generation; older
	// records show the same N/A as a blank answer.
	card.Details.Sleep = []Line{
		{"Schlafen gegangen", orNA(e.SchlafStart)},
		{"Aufgewacht", orNA(e.SchlafEnde)},
		{"Schlafqualität", orNA(e.SchlafQualitaet) + "/100"},
		{"Wie oft aufgewacht", orNA(e.SchlafAufgewacht)},
	}

	if e.SituationenVermieden == "ja" {
		card.Details.Avoidance = []Line{
			{"Vermieden", "Ja"},
			{"Welche", orNA(e.VermiedenWelche)},
		}
	} else {
		card.Details.Avoidance = []Line{{"Vermieden", "Nein"}}
	}

	card.Details.Panic = renderPanic(e.Panic)
	return card
}

func renderPanic(p model.PanicReport) (section PanicSection) {
	switch p.Kind {
	case model.PanicMulti:
		if p.Anzahl <= 0 || len(p.Attacks) == 0 {
			section.Note = noAttacks
			return
		}
		if p.Anzahl >= 4 {
			section.Count = "4 oder mehr"
		} else {
			section.Count = fmt.Sprint(p.Anzahl)
		}
		for i, attack := range p.Attacks {
			section.Attacks = append(section.Attacks, renderAttack(i+1, attack))
		}
	case model.PanicSingle:
		if p.Erlebt != "ja" {
			section.Note = noAttacks
			return
		}
		section.Count = "1"
		section.Attacks = []AttackView{renderAttack(1, p.Single)}
	default:
		section.Note = noAttacks
	}
	return
}

func renderAttack(n int, attack model.PanicAttackDetail) AttackView {
	v := AttackView{
		Title:       fmt.Sprintf("Panikanfall %d:", n),
		Beginn:      orNA(attack.Beginn),
		Ende:        orNA(attack.Ende),
		Intensitaet: orZero(attack.Intensitaet) + "/100",
		Situation:   orNA(attack.Situation),
		Ausloeser:   orNA(attack.Ausloeser),
	}

	if len(attack.Symptome) == 0 {
		v.SymptomNote = noSymptoms
		return v
	}
	for _, code := range attack.Symptome {
		// Unknown codes render verbatim, never dropped.
		v.Symptome = append(v.Symptome, model.SymptomLabel(code))
	}
	return v
}

func displayDate(e model.JournalEntry) string {
	d := e.Date.Local()
	return fmt.Sprintf("%d. %s %d", d.Day(), months[d.Month()-1], d.Year())
}

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}

func orZero(s string) string {
	if s == "" {
		return "0"
	}
	return s
}
