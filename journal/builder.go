package journal

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/mbachinger/taeglich/model"
)

// ValidationError blocks submission; the message is shown to the user
// inline next to the form.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Msg)
}

// maxAttacks caps the number of collected panic attack reports; the form
// offers "4 or more" as its highest choice.
const maxAttacks = 4

const dateLayout = "2006-01-02"

// DefaultDate is the form's date prefill: today, in the entry date format.
func DefaultDate(now time.Time) string {
	return now.Format(dateLayout)
}

// Build assembles a journal entry from raw form state. The date is the
// only mandatory field; everything else tolerates missing or partial
// input and falls back to an empty string (or "0" for intensities).
// Build is pure: it never touches the store.
func Build(form url.Values, now time.Time) (model.JournalEntry, error) {
	dateStr := form.Get("entryDate")
	if dateStr == "" {
		return model.JournalEntry{}, &ValidationError{Field: "entryDate", Msg: "missing date"}
	}
	day, err := time.ParseInLocation(dateLayout, dateStr, now.Location())
	if err != nil {
		return model.JournalEntry{}, &ValidationError{Field: "entryDate", Msg: "malformed date"}
	}

	e := model.JournalEntry{
		Date:        day,
		SubmittedAt: now,

		Stimmung:                  form.Get("stimmung"),
		Energieniveau:             form.Get("energieniveau"),
		KoerperlichesWohlbefinden: form.Get("koerperlichesWohlbefinden"),
		Nervositaet:               form.Get("nervositaet"),
		Unruhe:                    form.Get("unruhe"),
		Traurigkeit:               form.Get("traurigkeit"),
		Einsamkeit:                form.Get("einsamkeit"),

		SchlafStart:      form.Get("schlafStart"),
		SchlafEnde:       form.Get("schlafEnde"),
		SchlafQualitaet:  form.Get("schlafQualitaet"),
		SchlafAufgewacht: form.Get("schlafAufgewacht"),

		SituationenVermieden: form.Get("situationenVermieden"),
	}

	// The detail text only survives an explicit "ja"; otherwise it is
	// the empty string, not absent.
	if e.SituationenVermieden == "ja" {
		e.VermiedenWelche = form.Get("vermiedenWelche")
	}

	count := clampCount(form.Get("anzahlPanikattacken"))
	e.Panic = model.PanicReport{
		Kind:    model.PanicMulti,
		Anzahl:  count,
		Attacks: make([]model.PanicAttackDetail, 0, count),
	}
	for i := 1; i <= count; i++ {
		e.Panic.Attacks = append(e.Panic.Attacks, collectAttack(form, i))
	}

	return e, nil
}

func collectAttack(form url.Values, i int) model.PanicAttackDetail {
	detail := model.PanicAttackDetail{
		Beginn:      form.Get(fmt.Sprintf("panikBeginn_%d", i)),
		Ende:        form.Get(fmt.Sprintf("panikEnde_%d", i)),
		Intensitaet: form.Get(fmt.Sprintf("panikIntensitaet_%d", i)),
		Situation:   form.Get(fmt.Sprintf("panikSituation_%d", i)),
		Ausloeser:   form.Get(fmt.Sprintf("panikAusloeser_%d", i)),
	}
	if detail.Intensitaet == "" {
		detail.Intensitaet = "0"
	}

	// One checkbox group per attack; repeated values, unique codes.
	detail.Symptome = []string{}
	seen := map[string]bool{}
	for _, code := range form[fmt.Sprintf("panikSymptome_%d", i)] {
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		detail.Symptome = append(detail.Symptome, code)
	}

	return detail
}

func clampCount(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	if n > maxAttacks {
		return maxAttacks
	}
	return n
}
