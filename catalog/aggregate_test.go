package catalog

import (
	"testing"

	"projbank/models"

	"github.com/stretchr/testify/assert"
)

func TestDepartmentCountsSumToInputSize(t *testing.T) {
	list := []models.Project{
		{ProjectID: "p1", Department: "Economics"},
		{ProjectID: "p2", Department: "Economics"},
		{ProjectID: "p3", Department: "Agronomy"},
		{ProjectID: "p4"}, // no department
		{ProjectID: "p5", Department: "Economics"},
	}

	counts := DepartmentCounts(list)

	assert.Equal(t, 3, counts["Economics"])
	assert.Equal(t, 1, counts["Agronomy"])
	assert.Equal(t, 1, counts[UnspecifiedDepartment])

	total := 0
	for _, n := range counts {
		total += n
	}
	assert.Equal(t, len(list), total)
}

func TestDepartmentCountsEmptyInput(t *testing.T) {
	assert.Empty(t, DepartmentCounts(nil))
	assert.Empty(t, DepartmentCounts([]models.Project{}))
}

func TestDepartmentLevelCounts(t *testing.T) {
	list := []models.Project{
		{ProjectID: "p1", Department: "Economics", Level: "BSc"},
		{ProjectID: "p2", Department: "Economics", Level: "BSc"},
		{ProjectID: "p3", Department: "Economics", Level: "MSc"},
		{ProjectID: "p4", Department: "Economics"}, // level unset
	}

	got := DepartmentLevelCounts(list)

	econ := got["Economics"]
	assert.Equal(t, "Economics", econ.Name)
	assert.Equal(t, 4, econ.Count)
	assert.Equal(t, 2, econ.Levels["BSc"])
	assert.Equal(t, 1, econ.Levels["MSc"])

	// the unleveled project counts toward the total but no level bucket
	levelTotal := 0
	for _, n := range econ.Levels {
		levelTotal += n
	}
	assert.Equal(t, 3, levelTotal)
}
