package projects

import (
	"strconv"
	"strings"
)

// flexInt accepts JSON numbers or their string form, since the admin form
// submits input values as text. Empty and null coerce to 0.
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(strings.Trim(string(b), `"`))
	if s == "" || s == "null" {
		*f = 0
		return nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		fl, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return err
		}
		n = int(fl)
	}
	*f = flexInt(n)
	return nil
}

// projectInput is the admin create/edit payload. Formats and Includes arrive
// as comma-separated display strings and are split into sets before storage.
type projectInput struct {
	Title         string  `json:"title"`
	Department    string  `json:"department"`
	Author        string  `json:"author"`
	Level         string  `json:"level"`
	Abstract      string  `json:"abstract"`
	ChapterOne    string  `json:"chapterOne"`
	Formats       string  `json:"formats"`
	Includes      string  `json:"includes"`
	FileSize      string  `json:"fileSize"`
	ChaptersRange string  `json:"chaptersRange"`
	Year          flexInt `json:"year"`
	PriceNGN      flexInt `json:"priceNGN"`
	Pages         flexInt `json:"pages"`
}
