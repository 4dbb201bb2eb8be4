package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestParsePagination(t *testing.T) {
	cases := []struct {
		url       string
		wantSkip  int64
		wantLimit int64
	}{
		{"/api/x", 0, 10},
		{"/api/x?page=3&limit=20", 40, 20},
		{"/api/x?page=0&limit=-5", 0, 10},
		{"/api/x?limit=5000", 0, 100},
	}

	for _, c := range cases {
		r := httptest.NewRequest("GET", c.url, nil)
		skip, limit := ParsePagination(r, 10, 100)
		assert.Equal(t, c.wantSkip, skip, c.url)
		assert.Equal(t, c.wantLimit, limit, c.url)
	}
}

func TestParseSort(t *testing.T) {
	def := bson.D{{Key: "created_at", Value: -1}}
	allowed := map[string]string{"price": "price_ngn", "year": "year"}

	assert.Equal(t, def, ParseSort("", def, allowed))
	assert.Equal(t, def, ParseSort("downloads", def, allowed))
	assert.Equal(t, bson.D{{Key: "price_ngn", Value: 1}}, ParseSort("price", def, allowed))
	assert.Equal(t, bson.D{{Key: "year", Value: -1}}, ParseSort("-year", def, allowed))
}
