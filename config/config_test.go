package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSlots(t *testing.T) {
	slots, err := ParseSlots("noon=12,evening=20")
	require.NoError(t, err)
	assert.Equal(t, []Slot{{Name: "noon", Hour: 12}, {Name: "evening", Hour: 20}}, slots)
}

func TestParseSlotsTrimsWhitespace(t *testing.T) {
	slots, err := ParseSlots(" morning = 8 , evening = 20 ")
	require.NoError(t, err)
	assert.Equal(t, []Slot{{Name: "morning", Hour: 8}, {Name: "evening", Hour: 20}}, slots)
}

func TestParseSlotsEmptyIsValid(t *testing.T) {
	slots, err := ParseSlots("")
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestParseSlotsRejectsBadInput(t *testing.T) {
	for _, s := range []string{
		"noon",             // no hour
		"noon=25",          // hour out of range
		"noon=-1",          // hour out of range
		"noon=zwölf",       // hour not a number
		"=12",              // empty name
		"noon=12,noon=13",  // duplicate name
	} {
		_, err := ParseSlots(s)
		assert.Error(t, err, "input %q", s)
	}
}

func TestUrl(t *testing.T) {
	assert.Equal(t, "http://localhost:8600", Config{Addr: "0.0.0.0:8600"}.Url())
	assert.Equal(t, "http://127.0.0.1:8600", Config{Addr: "127.0.0.1:8600"}.Url())
}
