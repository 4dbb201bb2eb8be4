package pager

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestTokenRoundTrip(t *testing.T) {
	tok := Token{Value: "2026-08-01T10:00:00Z", ID: "p42"}

	got, err := Decode(Encode(tok))
	require.NoError(t, err)
	assert.Equal(t, tok, got)
}

func TestDecodeGarbage(t *testing.T) {
	for _, cursor := range []string{"not base64 !!", "aGVsbG8", "%%%"} {
		_, err := Decode(cursor)
		assert.Error(t, err, "cursor %q should not decode", cursor)
	}
}

func TestSortDirection(t *testing.T) {
	asc := Spec{Field: "title", IDField: "projectid"}
	assert.Equal(t, bson.D{{Key: "title", Value: 1}, {Key: "projectid", Value: 1}}, asc.Sort())

	desc := Spec{Field: "created_at", IDField: "projectid", Desc: true}
	assert.Equal(t, bson.D{{Key: "created_at", Value: -1}, {Key: "projectid", Value: -1}}, desc.Sort())
}

func TestApplyFirstPageLeavesFilterAlone(t *testing.T) {
	s := Spec{Field: "year", IDField: "projectid"}
	filter := bson.M{"department": "Economics"}

	got, err := s.Apply(filter, "")
	require.NoError(t, err)
	assert.Equal(t, filter, got)
}

func TestApplyAscending(t *testing.T) {
	s := Spec{
		Field:   "year",
		IDField: "projectid",
		Parse:   func(v string) (any, error) { return strconv.Atoi(v) },
	}
	cursor := Encode(Token{Value: "2021", ID: "p9"})

	got, err := s.Apply(bson.M{}, cursor)
	require.NoError(t, err)

	want := bson.M{"$or": []bson.M{
		{"year": bson.M{"$gt": 2021}},
		{"year": 2021, "projectid": bson.M{"$gt": "p9"}},
	}}
	assert.Equal(t, want, got)
}

func TestApplyDescendingMergesFilter(t *testing.T) {
	s := Spec{Field: "title", IDField: "projectid", Desc: true}
	cursor := Encode(Token{Value: "Microfinance", ID: "p3"})

	got, err := s.Apply(bson.M{"level": "HND"}, cursor)
	require.NoError(t, err)

	after := bson.M{"$or": []bson.M{
		{"title": bson.M{"$lt": "Microfinance"}},
		{"title": "Microfinance", "projectid": bson.M{"$lt": "p3"}},
	}}
	assert.Equal(t, bson.M{"$and": []bson.M{{"level": "HND"}, after}}, got)
}

func TestApplyRejectsBadCursorValue(t *testing.T) {
	s := Spec{
		Field:   "year",
		IDField: "projectid",
		Parse:   func(v string) (any, error) { return strconv.Atoi(v) },
	}
	cursor := Encode(Token{Value: "not-a-year", ID: "p1"})

	_, err := s.Apply(bson.M{}, cursor)
	assert.Error(t, err)
}
