package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitListCleansInput(t *testing.T) {
	got := SplitList(" PDF , DOCX ,, PDF ,PPT")
	assert.Equal(t, []string{"PDF", "DOCX", "PPT"}, got)
}

func TestSplitListEmpty(t *testing.T) {
	assert.Equal(t, []string{}, SplitList(""))
}

func TestSplitListPreservesOrderAndCase(t *testing.T) {
	got := SplitList("Questionnaire, Source Code, questionnaire")
	// case differs, so both survive; order follows first appearance
	assert.Equal(t, []string{"Questionnaire", "Source Code", "questionnaire"}, got)
}

func TestJoinSplitRoundTrip(t *testing.T) {
	original := "PDF, DOCX, Source Code"
	assert.Equal(t, original, JoinList(SplitList(original)))
}

func TestContainsIgnoreCase(t *testing.T) {
	assert.True(t, ContainsIgnoreCase("Impact of Microfinance", "MICRO"))
	assert.True(t, ContainsIgnoreCase("Economics", "economics"))
	assert.False(t, ContainsIgnoreCase("Economics", "physics"))
}

func TestGenerateIDLengthAndCharset(t *testing.T) {
	id := GenerateID(12)
	assert.Len(t, id, 12)
	for _, r := range id {
		assert.Contains(t, string(letterRunes), string(r))
	}
}
