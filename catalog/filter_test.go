package catalog

import (
	"testing"

	"projbank/models"

	"github.com/stretchr/testify/assert"
)

func sampleProjects() []models.Project {
	return []models.Project{
		{ProjectID: "p1", Title: "Impact of Microfinance Banks", Author: "Adaeze Obi", Department: "Economics", Level: "BSc", Year: 2021},
		{ProjectID: "p2", Title: "Inflation and Household Savings", Author: "Tunde Bakare", Department: "Economics", Level: "HND", Year: 2022},
		{ProjectID: "p3", Title: "Poultry Feed Optimisation", Author: "Ngozi Eze", Department: "Animal Science", Level: "BSc", Year: 2021},
		{ProjectID: "p4", Title: "Exchange Rate Volatility", Author: "Chidi Okafor", Department: "Economics", Level: "BSc", Year: 2020},
		{ProjectID: "p5", Title: "Microcredit and Rural Women", Author: "Amina Yusuf", Department: "Economics", Level: "MSc", Year: 2021},
		{ProjectID: "p6", Title: "Soil Erosion Control", Author: "Bola Adeyemi", Department: "Agronomy", Level: "ND", Year: 2022},
		{ProjectID: "p7", Title: "Monetary Policy Transmission", Author: "Efe Oghenekaro", Department: "Economics", Level: "PhD", Year: 2023},
	}
}

func TestFilterTextAndDepartment(t *testing.T) {
	got := FilterProjects(sampleProjects(), Query{Text: "micro", Department: "Economics"})

	// p1 and p5 match "micro" in the title; order follows the input
	assert.Len(t, got, 2)
	assert.Equal(t, "p1", got[0].ProjectID)
	assert.Equal(t, "p5", got[1].ProjectID)
}

func TestFilterTextMatchesAuthorAndDepartment(t *testing.T) {
	byAuthor := FilterProjects(sampleProjects(), Query{Text: "ngozi"})
	assert.Len(t, byAuthor, 1)
	assert.Equal(t, "p3", byAuthor[0].ProjectID)

	byDept := FilterProjects(sampleProjects(), Query{Text: "agronomy"})
	assert.Len(t, byDept, 1)
	assert.Equal(t, "p6", byDept[0].ProjectID)
}

func TestFilterZeroQueryMatchesEverything(t *testing.T) {
	list := sampleProjects()
	got := FilterProjects(list, Query{})
	assert.Equal(t, list, got)
}

func TestFilterIsIdempotent(t *testing.T) {
	q := Query{Department: "Economics", Year: 2021}
	once := FilterProjects(sampleProjects(), q)
	twice := FilterProjects(once, q)
	assert.Equal(t, once, twice)
}

func TestFilterCategoricalsIntersect(t *testing.T) {
	list := sampleProjects()

	// applying both fields in one query equals applying them one at a time
	combined := FilterProjects(list, Query{Department: "Economics", Level: "BSc"})
	chained := FilterProjects(FilterProjects(list, Query{Department: "Economics"}), Query{Level: "BSc"})
	assert.Equal(t, chained, combined)

	for _, p := range combined {
		assert.Equal(t, "Economics", p.Department)
		assert.Equal(t, "BSc", p.Level)
	}
}

func TestFilterNoMatchesReturnsEmptyNotNil(t *testing.T) {
	got := FilterProjects(sampleProjects(), Query{Department: "Theology"})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestMatchTextCaseInsensitive(t *testing.T) {
	assert.True(t, MatchText("MICRO", "Impact of Microfinance Banks"))
	assert.True(t, MatchText("eze", "Poultry Feed", "Ngozi Eze"))
	assert.False(t, MatchText("quantum", "Poultry Feed", "Ngozi Eze", "Animal Science"))
}
