package journal

import (
	"errors"
	"fmt"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbachinger/taeglich/model"
)

var testNow = time.Date(2024, 1, 10, 20, 30, 0, 0, time.Local)

func TestBuildMinimalForm(t *testing.T) {
	form := url.Values{"entryDate": {"2024-01-10"}}

	e, err := Build(form, testNow)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.Local), e.Date)
	assert.Equal(t, testNow, e.SubmittedAt)
	assert.Zero(t, e.ID, "ids are assigned by the store, never the builder")
	assert.Equal(t, model.PanicMulti, e.Panic.Kind)
	assert.Equal(t, 0, e.Panic.Anzahl)
	assert.Empty(t, e.Panic.Attacks)
	assert.Equal(t, "", e.VermiedenWelche)
}

func TestBuildMissingDate(t *testing.T) {
	_, err := Build(url.Values{"stimmung": {"80"}}, testNow)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "entryDate", verr.Field)
}

func TestBuildMalformedDate(t *testing.T) {
	_, err := Build(url.Values{"entryDate": {"10.01.2024"}}, testNow)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
}

func TestBuildClampsAttackCount(t *testing.T) {
	for _, tc := range []struct {
		raw  string
		want int
	}{
		{"", 0},
		{"0", 0},
		{"2", 2},
		{"4", 4},
		{"5", 4},
		{"-1", 0},
		{"quatsch", 0},
	} {
		form := url.Values{
			"entryDate":           {"2024-01-10"},
			"anzahlPanikattacken": {tc.raw},
		}
		e, err := Build(form, testNow)
		require.NoError(t, err, "count %q", tc.raw)
		assert.Equal(t, tc.want, e.Panic.Anzahl, "count %q", tc.raw)
		assert.Len(t, e.Panic.Attacks, tc.want, "count %q", tc.raw)
	}
}

func TestBuildCollectsAttackDetails(t *testing.T) {
	form := url.Values{
		"entryDate":           {"2024-01-10"},
		"anzahlPanikattacken": {"2"},
		"panikBeginn_1":       {"14:00"},
		"panikEnde_1":         {"14:20"},
		"panikIntensitaet_1":  {"70"},
		"panikSymptome_1":     {"symHerzklopfen", "symSchwitzen", "symHerzklopfen"},
		"panikSituation_1":    {"im Bus"},
		"panikAusloeser_1":    {"Enge"},
		// second attack left completely blank on purpose
	}

	e, err := Build(form, testNow)
	require.NoError(t, err)
	require.Len(t, e.Panic.Attacks, 2)

	first := e.Panic.Attacks[0]
	assert.Equal(t, "14:00", first.Beginn)
	assert.Equal(t, "70", first.Intensitaet)
	assert.Equal(t, []string{"symHerzklopfen", "symSchwitzen"}, first.Symptome, "duplicate codes collapse")
	assert.Equal(t, "im Bus", first.Situation)

	second := e.Panic.Attacks[1]
	assert.Equal(t, "", second.Beginn)
	assert.Equal(t, "0", second.Intensitaet, "missing intensity defaults to 0")
	assert.Empty(t, second.Symptome)
}

func TestBuildPartialInputNeverFails(t *testing.T) {
	// every combination of present/missing optional fields must build
	for count := 0; count <= 4; count++ {
		form := url.Values{
			"entryDate":           {"2024-01-10"},
			"anzahlPanikattacken": {fmt.Sprint(count)},
		}
		e, err := Build(form, testNow)
		require.NoError(t, err)
		assert.Len(t, e.Panic.Attacks, count)
	}
}

func TestBuildAvoidanceDetail(t *testing.T) {
	form := url.Values{
		"entryDate":            {"2024-01-10"},
		"situationenVermieden": {"ja"},
		"vermiedenWelche":      {"Supermarkt"},
	}
	e, err := Build(form, testNow)
	require.NoError(t, err)
	assert.Equal(t, "Supermarkt", e.VermiedenWelche)

	// a "nein" drops the detail text even if the field was filled in
	form.Set("situationenVermieden", "nein")
	e, err = Build(form, testNow)
	require.NoError(t, err)
	assert.Equal(t, "", e.VermiedenWelche)
}

func TestDefaultDate(t *testing.T) {
	assert.Equal(t, "2024-01-10", DefaultDate(testNow))
}
