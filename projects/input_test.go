package projects

import (
	"encoding/json"
	"testing"

	"projbank/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexIntAcceptsNumbersAndStrings(t *testing.T) {
	cases := []struct {
		in   string
		want flexInt
	}{
		{`{"year": 2021}`, 2021},
		{`{"year": "2021"}`, 2021},
		{`{"year": "  2021 "}`, 2021},
		{`{"year": ""}`, 0},
		{`{"year": null}`, 0},
		{`{"year": 2021.0}`, 2021},
	}

	for _, c := range cases {
		var in struct {
			Year flexInt `json:"year"`
		}
		require.NoError(t, json.Unmarshal([]byte(c.in), &in), c.in)
		assert.Equal(t, c.want, in.Year, c.in)
	}
}

func TestFlexIntRejectsGarbage(t *testing.T) {
	var in struct {
		Year flexInt `json:"year"`
	}
	assert.Error(t, json.Unmarshal([]byte(`{"year": "twenty"}`), &in))
}

func TestCounterMoveOnLevelOnlyEdit(t *testing.T) {
	existing := models.Project{Department: "Economics", Level: "BSc"}

	// a level change alone must move the counter bucket
	dept, level, moved := counterMove(existing, "", "MSc")
	assert.True(t, moved)
	assert.Equal(t, "Economics", dept)
	assert.Equal(t, "MSc", level)
}

func TestCounterMove(t *testing.T) {
	existing := models.Project{Department: "Economics", Level: "BSc"}

	_, _, moved := counterMove(existing, "", "")
	assert.False(t, moved)

	// same values submitted explicitly are not a move
	_, _, moved = counterMove(existing, "Economics", "BSc")
	assert.False(t, moved)

	dept, level, moved := counterMove(existing, "Agronomy", "")
	assert.True(t, moved)
	assert.Equal(t, "Agronomy", dept)
	assert.Equal(t, "BSc", level)

	dept, level, moved = counterMove(existing, "Agronomy", "HND")
	assert.True(t, moved)
	assert.Equal(t, "Agronomy", dept)
	assert.Equal(t, "HND", level)
}

func TestProjectInputSplitsDisplayStrings(t *testing.T) {
	payload := `{
		"title": "Inflation Study",
		"department": "Economics",
		"priceNGN": "4500",
		"formats": "PDF, DOCX, PDF",
		"includes": "Questionnaire, Source Code"
	}`

	var in projectInput
	require.NoError(t, json.Unmarshal([]byte(payload), &in))
	assert.Equal(t, flexInt(4500), in.PriceNGN)
	assert.Equal(t, "PDF, DOCX, PDF", in.Formats)
}
