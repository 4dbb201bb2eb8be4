package catalog

import "projbank/models"

// UnspecifiedDepartment is the bucket for projects missing a department.
// Grouping them explicitly keeps sum(counts) == len(input).
const UnspecifiedDepartment = "Unspecified"

// DepartmentCounts rolls a project list up into department -> project count.
// The map carries no ordering; callers sort for presentation.
func DepartmentCounts(list []models.Project) map[string]int {
	counts := map[string]int{}
	for _, p := range list {
		counts[departmentOf(p)]++
	}
	return counts
}

// DepartmentLevelCounts is the variant with a per-level breakdown.
func DepartmentLevelCounts(list []models.Project) map[string]models.DepartmentCount {
	out := map[string]models.DepartmentCount{}
	for _, p := range list {
		dept := departmentOf(p)
		entry, ok := out[dept]
		if !ok {
			entry = models.DepartmentCount{Name: dept, Levels: map[string]int{}}
		}
		entry.Count++
		if p.Level != "" {
			entry.Levels[p.Level]++
		}
		out[dept] = entry
	}
	return out
}

func departmentOf(p models.Project) string {
	if p.Department == "" {
		return UnspecifiedDepartment
	}
	return p.Department
}
