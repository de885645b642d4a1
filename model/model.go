package model

import (
	"encoding/json"
	"strconv"
	"time"
)

// JournalEntry is one day's submitted journal record. The JSON encoding
// keeps the historical field names, so exports stay readable by anything
// that consumed the old data files.
type JournalEntry struct {
	ID          int64
	Date        time.Time // the day the entry describes, local midnight
	SubmittedAt time.Time // when the record was written, display only

	Stimmung                  string
	Energieniveau             string
	KoerperlichesWohlbefinden string
	Nervositaet               string
	Unruhe                    string
	Traurigkeit               string
	Einsamkeit                string

	SchlafStart      string
	SchlafEnde       string
	SchlafQualitaet  string
	SchlafAufgewacht string

	SituationenVermieden string // "ja" or "nein"
	VermiedenWelche      string // empty string, never absent, when "nein"

	Panic PanicReport
}

// PanicAttackDetail is one sub-report of an anxiety episode. It has no
// identity of its own and only ever lives embedded in its entry.
type PanicAttackDetail struct {
	Beginn      string   `json:"beginn"`
	Ende        string   `json:"ende"`
	Intensitaet string   `json:"intensitaet"`
	Symptome    []string `json:"symptome"`
	Situation   string   `json:"situation"`
	Ausloeser   string   `json:"ausloeser"`
}

type PanicKind int

const (
	// PanicNone means the record carries no panic data at all.
	PanicNone PanicKind = iota
	// PanicSingle is the original flat single-attack shape.
	PanicSingle
	// PanicMulti is the current shape: a declared count plus up to four
	// attack details.
	PanicMulti
)

// PanicReport is the union of the two panic shapes found in storage.
// Which arm is populated depends on Kind.
type PanicReport struct {
	Kind PanicKind

	// PanicSingle
	Erlebt string            // "ja" or "nein"
	Single PanicAttackDetail // meaningful when Erlebt == "ja"

	// PanicMulti
	Anzahl  int // declared count as submitted, may exceed len(Attacks)
	Attacks []PanicAttackDetail
}

const isoLayout = "2006-01-02T15:04:05.000Z07:00"

// entryJSON is the wire/storage shape. Optional fields are pointers so
// that decoding can tell absent from empty, which is how the two schema
// generations are told apart.
type entryJSON struct {
	ID          int64  `json:"id,omitempty"`
	Date        string `json:"date"`
	SubmittedAt string `json:"submittedAt"`

	Stimmung                  string `json:"stimmung"`
	Energieniveau             string `json:"energieniveau"`
	KoerperlichesWohlbefinden string `json:"koerperlichesWohlbefinden"`
	Nervositaet               string `json:"nervositaet"`
	Unruhe                    string `json:"unruhe"`
	Traurigkeit               string `json:"traurigkeit"`
	Einsamkeit                string `json:"einsamkeit"`

	SchlafStart      *string `json:"schlafStart,omitempty"`
	SchlafEnde       *string `json:"schlafEnde,omitempty"`
	SchlafQualitaet  *string `json:"schlafQualitaet,omitempty"`
	SchlafAufgewacht *string `json:"schlafAufgewacht,omitempty"`

	SituationenVermieden string `json:"situationenVermieden"`
	VermiedenWelche      string `json:"vermiedenWelche"`

	AnzahlPanikattacken  *flexInt             `json:"anzahlPanikattacken,omitempty"`
	PanikattackenDetails *[]PanicAttackDetail `json:"panikattackenDetails,omitempty"`

	PanikanfallErlebt *string  `json:"panikanfallErlebt,omitempty"`
	PanikBeginn       string   `json:"panikBeginn,omitempty"`
	PanikEnde         string   `json:"panikEnde,omitempty"`
	PanikIntensitaet  string   `json:"panikIntensitaet,omitempty"`
	PanikSymptome     []string `json:"panikSymptome,omitempty"`
	PanikSituation    string   `json:"panikSituation,omitempty"`
	PanikAusloeser    string   `json:"panikAusloeser,omitempty"`
}

// flexInt tolerates the legacy string encoding ("3") next to plain numbers.
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	if len(b) > 1 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			*f = 0
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return err
		}
		*f = flexInt(n)
		return nil
	}
	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexInt(n)
	return nil
}

func (e JournalEntry) MarshalJSON() ([]byte, error) {
	out := entryJSON{
		ID:                        e.ID,
		Date:                      e.Date.UTC().Format(isoLayout),
		SubmittedAt:               e.SubmittedAt.UTC().Format(isoLayout),
		Stimmung:                  e.Stimmung,
		Energieniveau:             e.Energieniveau,
		KoerperlichesWohlbefinden: e.KoerperlichesWohlbefinden,
		Nervositaet:               e.Nervositaet,
		Unruhe:                    e.Unruhe,
		Traurigkeit:               e.Traurigkeit,
		Einsamkeit:                e.Einsamkeit,
		SituationenVermieden:      e.SituationenVermieden,
		VermiedenWelche:           e.VermiedenWelche,
	}

	switch e.Panic.Kind {
	case PanicMulti:
		// The multi-attack shape always carries the sleep block, even
		// when the fields were left blank.
		out.SchlafStart = ptr(e.SchlafStart)
		out.SchlafEnde = ptr(e.SchlafEnde)
		out.SchlafQualitaet = ptr(e.SchlafQualitaet)
		out.SchlafAufgewacht = ptr(e.SchlafAufgewacht)

		anzahl := flexInt(e.Panic.Anzahl)
		out.AnzahlPanikattacken = &anzahl
		attacks := e.Panic.Attacks
		if attacks == nil {
			attacks = []PanicAttackDetail{}
		}
		out.PanikattackenDetails = &attacks
	case PanicSingle:
		out.PanikanfallErlebt = ptr(e.Panic.Erlebt)
		if e.Panic.Erlebt == "ja" {
			out.PanikBeginn = e.Panic.Single.Beginn
			out.PanikEnde = e.Panic.Single.Ende
			out.PanikIntensitaet = e.Panic.Single.Intensitaet
			out.PanikSymptome = e.Panic.Single.Symptome
			out.PanikSituation = e.Panic.Single.Situation
			out.PanikAusloeser = e.Panic.Single.Ausloeser
		}
	}

	return json.Marshal(out)
}

func (e *JournalEntry) UnmarshalJSON(b []byte) error {
	var in entryJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}

	date, err := parseISO(in.Date)
	if err != nil {
		return err
	}
	submitted, err := parseISO(in.SubmittedAt)
	if err != nil {
		return err
	}

	*e = JournalEntry{
		ID:                        in.ID,
		Date:                      date,
		SubmittedAt:               submitted,
		Stimmung:                  in.Stimmung,
		Energieniveau:             in.Energieniveau,
		KoerperlichesWohlbefinden: in.KoerperlichesWohlbefinden,
		Nervositaet:               in.Nervositaet,
		Unruhe:                    in.Unruhe,
		Traurigkeit:               in.Traurigkeit,
		Einsamkeit:                in.Einsamkeit,
		SchlafStart:               deref(in.SchlafStart),
		SchlafEnde:                deref(in.SchlafEnde),
		SchlafQualitaet:           deref(in.SchlafQualitaet),
		SchlafAufgewacht:          deref(in.SchlafAufgewacht),
		SituationenVermieden:      in.SituationenVermieden,
		VermiedenWelche:           in.VermiedenWelche,
	}

	// anzahlPanikattacken marks the multi-attack generation, the flat
	// panikanfallErlebt field the single-attack one.
	switch {
	case in.AnzahlPanikattacken != nil:
		e.Panic.Kind = PanicMulti
		e.Panic.Anzahl = int(*in.AnzahlPanikattacken)
		if in.PanikattackenDetails != nil {
			e.Panic.Attacks = *in.PanikattackenDetails
		}
	case in.PanikanfallErlebt != nil:
		e.Panic.Kind = PanicSingle
		e.Panic.Erlebt = *in.PanikanfallErlebt
		if e.Panic.Erlebt == "ja" {
			e.Panic.Single = PanicAttackDetail{
				Beginn:      in.PanikBeginn,
				Ende:        in.PanikEnde,
				Intensitaet: in.PanikIntensitaet,
				Symptome:    in.PanikSymptome,
				Situation:   in.PanikSituation,
				Ausloeser:   in.PanikAusloeser,
			}
		}
	default:
		e.Panic.Kind = PanicNone
	}

	return nil
}

func parseISO(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, s)
}

func ptr(s string) *string { return &s }

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
