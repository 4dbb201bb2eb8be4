package imports

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"projbank/models"
	"projbank/utils"
)

// chunkSize stays below the store's 500-operation batch ceiling.
const chunkSize = 400

// columns is the ingestion allowlist: only these CSV headers are mapped
// onto project fields, everything else in the file is ignored.
var columns = map[string]bool{
	"title": true, "department": true, "author": true, "year": true,
	"pricengn": true, "level": true, "abstract": true, "chapterone": true,
	"formats": true, "includes": true, "pages": true, "filesize": true,
	"chaptersrange": true,
}

// Result reports what a parse produced: importable projects plus the 1-based
// row numbers that were skipped for missing required text fields.
type Result struct {
	Projects []models.Project
	Skipped  []int
}

// Parse reads a CSV of projects through the field allowlist with typed
// coercion. A malformed file fails as a whole before any write can happen;
// a bad numeric cell only defaults that field to 0.
func Parse(r io.Reader) (Result, error) {
	var res Result

	reader := csv.NewReader(r)
	headers, err := reader.Read()
	if err != nil {
		return res, fmt.Errorf("invalid CSV: %w", err)
	}

	for i, h := range headers {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}

	row := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Result{}, fmt.Errorf("invalid CSV at row %d: %w", row+1, err)
		}
		row++

		now := time.Now()
		p := models.Project{
			ProjectID: "p" + utils.GenerateID(12),
			CreatedAt: now,
			UpdatedAt: now,
		}
		for i, header := range headers {
			if i >= len(record) || !columns[header] {
				continue
			}
			value := strings.TrimSpace(record[i])
			switch header {
			case "title":
				p.Title = value
			case "department":
				p.Department = value
			case "author":
				p.Author = value
			case "level":
				p.Level = value
			case "abstract":
				p.Abstract = value
			case "chapterone":
				p.ChapterOne = value
			case "filesize":
				p.FileSize = value
			case "chaptersrange":
				p.ChaptersRange = value
			case "formats":
				p.Formats = utils.SplitList(value)
			case "includes":
				p.Includes = utils.SplitList(value)
			case "year":
				p.Year = coerceInt(value)
			case "pricengn":
				p.PriceNGN = coerceInt(value)
			case "pages":
				p.Pages = coerceInt(value)
			}
		}

		if p.Title == "" || p.Department == "" {
			res.Skipped = append(res.Skipped, row)
			continue
		}
		res.Projects = append(res.Projects, p)
	}

	return res, nil
}

// coerceInt defaults missing or non-numeric cells to 0 rather than
// rejecting the whole file for one bad row.
func coerceInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// Chunk splits records into batches of at most size.
func Chunk[T any](in []T, size int) [][]T {
	if size < 1 || len(in) == 0 {
		return nil
	}
	var out [][]T
	for start := 0; start < len(in); start += size {
		end := start + size
		if end > len(in) {
			end = len(in)
		}
		out = append(out, in[start:end])
	}
	return out
}
