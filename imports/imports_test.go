package imports

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestParseCoercesAndSplits(t *testing.T) {
	csv := strings.Join([]string{
		"Title,Department,Author,Year,PriceNGN,Level,Formats,Pages",
		"Microfinance Impact,Economics,Adaeze Obi,2021,5000,BSc,\"PDF, DOCX\",84",
		"Inflation Study,Economics,Tunde Bakare,not-a-year,abc,HND,PDF,",
	}, "\n")

	res, err := Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, res.Projects, 2)
	assert.Empty(t, res.Skipped)

	first := res.Projects[0]
	assert.Equal(t, "Microfinance Impact", first.Title)
	assert.Equal(t, 2021, first.Year)
	assert.Equal(t, 5000, first.PriceNGN)
	assert.Equal(t, []string{"PDF", "DOCX"}, first.Formats)
	assert.Equal(t, 84, first.Pages)
	assert.NotEmpty(t, first.ProjectID)

	// bad numeric cells default to zero instead of failing the file
	second := res.Projects[1]
	assert.Equal(t, 0, second.Year)
	assert.Equal(t, 0, second.PriceNGN)
	assert.Equal(t, 0, second.Pages)
}

func TestParseSkipsRowsMissingRequiredFields(t *testing.T) {
	csv := strings.Join([]string{
		"Title,Department,Year",
		"Valid Project,Economics,2022",
		",Economics,2022",
		"No Department,,2021",
		"Another Valid,Agronomy,2020",
	}, "\n")

	res, err := Parse(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Len(t, res.Projects, 2)
	assert.Equal(t, []int{3, 4}, res.Skipped)
}

func TestParseIgnoresUnknownColumns(t *testing.T) {
	csv := strings.Join([]string{
		"Title,Department,SecretColumn,Price",
		"Some Project,Economics,boo,9999",
	}, "\n")

	res, err := Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, res.Projects, 1)
	// "Price" is not "PriceNGN", so it is ignored too
	assert.Equal(t, 0, res.Projects[0].PriceNGN)
}

func TestParseMalformedFileFailsWhole(t *testing.T) {
	csv := "Title,Department\n\"unterminated,Economics"
	_, err := Parse(strings.NewReader(csv))
	assert.Error(t, err)
}

func TestParseEmptyFile(t *testing.T) {
	_, err := Parse(strings.NewReader(""))
	assert.Error(t, err)
}

func TestCommittedRowsCountsLeadingRowsOfFailedChunk(t *testing.T) {
	// ordered insert stopped at document 7: rows 0-6 are committed
	bulkErr := mongo.BulkWriteException{
		WriteErrors: []mongo.BulkWriteError{
			{WriteError: mongo.WriteError{Index: 7, Code: 11000, Message: "duplicate key"}},
		},
	}
	assert.Equal(t, 7, committedRows(nil, bulkErr, 400))

	// the driver's own inserted-id count wins when it is present
	res := &mongo.InsertManyResult{InsertedIDs: []interface{}{"a", "b", "c"}}
	assert.Equal(t, 3, committedRows(res, bulkErr, 400))

	// a failure at the first document commits nothing
	firstErr := mongo.BulkWriteException{
		WriteErrors: []mongo.BulkWriteError{
			{WriteError: mongo.WriteError{Index: 0, Code: 11000}},
		},
	}
	assert.Equal(t, 0, committedRows(nil, firstErr, 400))

	// non-bulk errors give no commit guarantee
	assert.Equal(t, 0, committedRows(nil, errors.New("connection reset"), 400))
}

func TestChunk(t *testing.T) {
	in := make([]int, 950)

	chunks := Chunk(in, 400)
	require.Len(t, chunks, 3)
	assert.Len(t, chunks[0], 400)
	assert.Len(t, chunks[1], 400)
	assert.Len(t, chunks[2], 150)

	assert.Nil(t, Chunk([]int{}, 400))
	assert.Nil(t, Chunk(in, 0))
}
