package catalog

import (
	"projbank/models"
	"projbank/utils"
)

// Query narrows a loaded project list. Text is matched case-insensitively
// as a substring OR'd across title, author and department; the categorical
// fields are exact matches AND'd together. The zero Query matches everything.
type Query struct {
	Text       string
	Department string
	Level      string
	Year       int
}

// FilterProjects returns the subset of list satisfying q, preserving the
// original relative order. It is a pure function of (list, q): it only ever
// filters records already loaded, so matches outside the loaded window stay
// invisible.
func FilterProjects(list []models.Project, q Query) []models.Project {
	out := []models.Project{}
	for _, p := range list {
		if q.Text != "" && !MatchText(q.Text, p.Title, p.Author, p.Department) {
			continue
		}
		if q.Department != "" && p.Department != q.Department {
			continue
		}
		if q.Level != "" && p.Level != q.Level {
			continue
		}
		if q.Year != 0 && p.Year != q.Year {
			continue
		}
		out = append(out, p)
	}
	return out
}

// MatchText reports whether q is a case-insensitive substring of any field.
func MatchText(q string, fields ...string) bool {
	for _, f := range fields {
		if utils.ContainsIgnoreCase(f, q) {
			return true
		}
	}
	return false
}
