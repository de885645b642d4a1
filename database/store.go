package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/mbachinger/taeglich/model"
)

const isoLayout = "2006-01-02T15:04:05.000Z07:00"

// entryRow mirrors the entry table across both schema generations.
// Columns added by later migrations are nullable, so a NULL there marks
// a row written before the column existed.
type entryRow struct {
	ID          int64  `db:"id"`
	Date        string `db:"date"`
	SubmittedAt string `db:"submitted_at"`

	Stimmung                  string `db:"stimmung"`
	Energieniveau             string `db:"energieniveau"`
	KoerperlichesWohlbefinden string `db:"koerperliches_wohlbefinden"`
	Nervositaet               string `db:"nervositaet"`
	Unruhe                    string `db:"unruhe"`
	Traurigkeit               string `db:"traurigkeit"`
	Einsamkeit                string `db:"einsamkeit"`

	SituationenVermieden string `db:"situationen_vermieden"`
	VermiedenWelche      string `db:"vermieden_welche"`

	PanikanfallErlebt sql.NullString `db:"panikanfall_erlebt"`
	PanikBeginn       sql.NullString `db:"panik_beginn"`
	PanikEnde         sql.NullString `db:"panik_ende"`
	PanikIntensitaet  sql.NullString `db:"panik_intensitaet"`
	PanikSymptome     sql.NullString `db:"panik_symptome"`
	PanikSituation    sql.NullString `db:"panik_situation"`
	PanikAusloeser    sql.NullString `db:"panik_ausloeser"`

	SchlafStart      sql.NullString `db:"schlaf_start"`
	SchlafEnde       sql.NullString `db:"schlaf_ende"`
	SchlafQualitaet  sql.NullString `db:"schlaf_qualitaet"`
	SchlafAufgewacht sql.NullString `db:"schlaf_aufgewacht"`

	AnzahlPanikattacken  sql.NullInt64  `db:"anzahl_panikattacken"`
	PanikattackenDetails sql.NullString `db:"panikattacken_details"`
}

// Insert appends a new record and returns the store-assigned id. The
// write is a single statement, so it either lands whole or not at all.
func (s *Store) Insert(ctx context.Context, e model.JournalEntry) (int64, error) {
	row := entryRow{
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
	case model.PanicMulti:
		row.SchlafStart = nullable(e.SchlafStart)
		row.SchlafEnde = nullable(e.SchlafEnde)
		row.SchlafQualitaet = nullable(e.SchlafQualitaet)
		row.SchlafAufgewacht = nullable(e.SchlafAufgewacht)
		row.AnzahlPanikattacken = sql.NullInt64{Int64: int64(e.Panic.Anzahl), Valid: true}

		attacks := e.Panic.Attacks
		if attacks == nil {
			attacks = []model.PanicAttackDetail{}
		}
		details, err := json.Marshal(attacks)
		if err != nil {
			return 0, &WriteError{err}
		}
		row.PanikattackenDetails = sql.NullString{String: string(details), Valid: true}
	case model.PanicSingle:
		row.PanikanfallErlebt = sql.NullString{String: e.Panic.Erlebt, Valid: true}
		if e.Panic.Erlebt == "ja" {
			symptome, err := json.Marshal(e.Panic.Single.Symptome)
			if err != nil {
				return 0, &WriteError{err}
			}
			row.PanikBeginn = sql.NullString{String: e.Panic.Single.Beginn, Valid: true}
			row.PanikEnde = sql.NullString{String: e.Panic.Single.Ende, Valid: true}
			row.PanikIntensitaet = sql.NullString{String: e.Panic.Single.Intensitaet, Valid: true}
			row.PanikSymptome = sql.NullString{String: string(symptome), Valid: true}
			row.PanikSituation = sql.NullString{String: e.Panic.Single.Situation, Valid: true}
			row.PanikAusloeser = sql.NullString{String: e.Panic.Single.Ausloeser, Valid: true}
		}
	}

	var id int64
	err := s.db.QueryRowxContext(ctx, `
		INSERT INTO entry (
			date, submitted_at,
			stimmung, energieniveau, koerperliches_wohlbefinden,
			nervositaet, unruhe, traurigkeit, einsamkeit,
			situationen_vermieden, vermieden_welche,
			panikanfall_erlebt, panik_beginn, panik_ende, panik_intensitaet,
			panik_symptome, panik_situation, panik_ausloeser,
			schlaf_start, schlaf_ende, schlaf_qualitaet, schlaf_aufgewacht,
			anzahl_panikattacken, panikattacken_details
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`,
		row.Date, row.SubmittedAt,
		row.Stimmung, row.Energieniveau, row.KoerperlichesWohlbefinden,
		row.Nervositaet, row.Unruhe, row.Traurigkeit, row.Einsamkeit,
		row.SituationenVermieden, row.VermiedenWelche,
		row.PanikanfallErlebt, row.PanikBeginn, row.PanikEnde, row.PanikIntensitaet,
		row.PanikSymptome, row.PanikSituation, row.PanikAusloeser,
		row.SchlafStart, row.SchlafEnde, row.SchlafQualitaet, row.SchlafAufgewacht,
		row.AnzahlPanikattacken, row.PanikattackenDetails,
	).Scan(&id)
	if err != nil {
		return 0, &WriteError{err}
	}

	return id, nil
}

// ListAll returns every stored record in whatever order the engine keeps
// them. Callers sort; the date index guarantees nothing about ordering.
func (s *Store) ListAll(ctx context.Context) ([]model.JournalEntry, error) {
	var rows []entryRow
	err := s.db.SelectContext(ctx, &rows, `SELECT * FROM entry`)
	if err != nil {
		return nil, &ReadError{err}
	}

	entries := make([]model.JournalEntry, 0, len(rows))
	for _, row := range rows {
		e, err := rowToEntry(row)
		if err != nil {
			return nil, &ReadError{err}
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func rowToEntry(row entryRow) (e model.JournalEntry, err error) {
	e = model.JournalEntry{
		ID:                        row.ID,
		Stimmung:                  row.Stimmung,
		Energieniveau:             row.Energieniveau,
		KoerperlichesWohlbefinden: row.KoerperlichesWohlbefinden,
		Nervositaet:               row.Nervositaet,
		Unruhe:                    row.Unruhe,
		Traurigkeit:               row.Traurigkeit,
		Einsamkeit:                row.Einsamkeit,
		SituationenVermieden:      row.SituationenVermieden,
		VermiedenWelche:           row.VermiedenWelche,
		SchlafStart:               row.SchlafStart.String,
		SchlafEnde:                row.SchlafEnde.String,
		SchlafQualitaet:           row.SchlafQualitaet.String,
		SchlafAufgewacht:          row.SchlafAufgewacht.String,
	}

	e.Date, err = time.Parse(time.RFC3339, row.Date)
	if err != nil {
		return
	}
	e.SubmittedAt, err = time.Parse(time.RFC3339, row.SubmittedAt)
	if err != nil {
		return
	}

	switch {
	case row.AnzahlPanikattacken.Valid:
		e.Panic.Kind = model.PanicMulti
		e.Panic.Anzahl = int(row.AnzahlPanikattacken.Int64)
		if row.PanikattackenDetails.Valid && row.PanikattackenDetails.String != "" {
			err = json.Unmarshal([]byte(row.PanikattackenDetails.String), &e.Panic.Attacks)
			if err != nil {
				return
			}
		}
	case row.PanikanfallErlebt.Valid:
		e.Panic.Kind = model.PanicSingle
		e.Panic.Erlebt = row.PanikanfallErlebt.String
		if e.Panic.Erlebt == "ja" {
			e.Panic.Single = model.PanicAttackDetail{
				Beginn:      row.PanikBeginn.String,
				Ende:        row.PanikEnde.String,
				Intensitaet: row.PanikIntensitaet.String,
				Situation:   row.PanikSituation.String,
				Ausloeser:   row.PanikAusloeser.String,
			}
			if row.PanikSymptome.Valid && row.PanikSymptome.String != "" {
				err = json.Unmarshal([]byte(row.PanikSymptome.String), &e.Panic.Single.Symptome)
				if err != nil {
					return
				}
			}
		}
	default:
		e.Panic.Kind = model.PanicNone
	}

	return
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}
