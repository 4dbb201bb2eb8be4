package projects

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"projbank/db"
	"projbank/departments"
	"projbank/models"
	"projbank/mq"
	"projbank/rdx"
	"projbank/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// CreateProject adds a single catalogue entry from the admin form.
func CreateProject(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	var input projectInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	// Required fields are checked before anything is written.
	if input.Title == "" || input.Department == "" || input.PriceNGN <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Title, department and price are required")
		return
	}

	now := time.Now()
	project := models.Project{
		ProjectID:     "p" + utils.GenerateID(12),
		Title:         input.Title,
		Department:    input.Department,
		Author:        input.Author,
		Year:          int(input.Year),
		PriceNGN:      int(input.PriceNGN),
		Level:         input.Level,
		Abstract:      input.Abstract,
		ChapterOne:    input.ChapterOne,
		Formats:       utils.SplitList(input.Formats),
		Pages:         int(input.Pages),
		FileSize:      input.FileSize,
		ChaptersRange: input.ChaptersRange,
		Includes:      utils.SplitList(input.Includes),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if _, err := db.ProjectsCollection.InsertOne(ctx, project); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create project")
		return
	}

	if err := departments.Adjust(ctx, project.Department, project.Level, 1); err != nil {
		// counter drift is repaired by the admin rebuild, not worth failing the create
		log.Printf("department counter adjust failed: %v", err)
	}

	m := models.Index{EntityType: "project", EntityId: project.ProjectID, Method: "POST"}
	go mq.Emit(ctx, "project-created", m)

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"ok":        true,
		"projectid": project.ProjectID,
		"data":      project,
	})
}

// EditProject applies a partial field set. Numeric fields are coerced and
// multi-value display strings split before anything reaches the store.
func EditProject(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	projectID := ps.ByName("projectid")

	var existing models.Project
	if err := db.ProjectsCollection.FindOne(ctx, bson.M{"projectid": projectID}).Decode(&existing); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Project not found")
		return
	}

	var input projectInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	updateFields := bson.M{"updated_at": time.Now()}
	if input.Title != "" {
		updateFields["title"] = input.Title
	}
	if input.Department != "" {
		updateFields["department"] = input.Department
	}
	if input.Author != "" {
		updateFields["author"] = input.Author
	}
	if input.Level != "" {
		updateFields["level"] = input.Level
	}
	if input.Abstract != "" {
		updateFields["abstract"] = input.Abstract
	}
	if input.ChapterOne != "" {
		updateFields["chapter_one"] = input.ChapterOne
	}
	if input.Formats != "" {
		updateFields["formats"] = utils.SplitList(input.Formats)
	}
	if input.Includes != "" {
		updateFields["includes"] = utils.SplitList(input.Includes)
	}
	if input.FileSize != "" {
		updateFields["file_size"] = input.FileSize
	}
	if input.ChaptersRange != "" {
		updateFields["chapters_range"] = input.ChaptersRange
	}
	if input.Year > 0 {
		updateFields["year"] = int(input.Year)
	}
	if input.PriceNGN > 0 {
		updateFields["price_ngn"] = int(input.PriceNGN)
	}
	if input.Pages > 0 {
		updateFields["pages"] = int(input.Pages)
	}

	if _, err := db.ProjectsCollection.UpdateOne(ctx, bson.M{"projectid": projectID}, bson.M{"$set": updateFields}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update project")
		return
	}

	// a department or level change moves the project between counter buckets
	if dept, level, moved := counterMove(existing, input.Department, input.Level); moved {
		if err := departments.Adjust(ctx, existing.Department, existing.Level, -1); err != nil {
			log.Printf("department counter adjust failed: %v", err)
		}
		if err := departments.Adjust(ctx, dept, level, 1); err != nil {
			log.Printf("department counter adjust failed: %v", err)
		}
	}

	_ = rdx.RdxDel(cacheKey(projectID))

	m := models.Index{EntityType: "project", EntityId: projectID, Method: "PUT"}
	go mq.Emit(ctx, "project-edited", m)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "message": "Project updated"})
}

// GetProjectForEdit returns the admin form representation: multi-value sets
// joined back into their comma-separated display strings.
func GetProjectForEdit(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var project models.Project
	err := db.ProjectsCollection.FindOne(r.Context(), bson.M{"projectid": ps.ByName("projectid")}).Decode(&project)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Project not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"ok": true,
		"form": utils.M{
			"title":         project.Title,
			"department":    project.Department,
			"author":        project.Author,
			"year":          project.Year,
			"priceNGN":      project.PriceNGN,
			"level":         project.Level,
			"abstract":      project.Abstract,
			"chapterOne":    project.ChapterOne,
			"formats":       utils.JoinList(project.Formats),
			"includes":      utils.JoinList(project.Includes),
			"pages":         project.Pages,
			"fileSize":      project.FileSize,
			"chaptersRange": project.ChaptersRange,
		},
	})
}

// DeleteProject removes one catalogue entry. The client is responsible for
// confirming with the operator first; a DELETE that arrives is authoritative.
func DeleteProject(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	projectID := ps.ByName("projectid")

	var project models.Project
	if err := db.ProjectsCollection.FindOne(ctx, bson.M{"projectid": projectID}).Decode(&project); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Project not found")
		return
	}

	result, err := db.ProjectsCollection.DeleteOne(ctx, bson.M{"projectid": projectID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete project")
		return
	}
	if result.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Project not found")
		return
	}

	_ = departments.Adjust(ctx, project.Department, project.Level, -1)
	_ = rdx.RdxDel(cacheKey(projectID))

	m := models.Index{EntityType: "project", EntityId: projectID, Method: "DELETE"}
	go mq.Emit(ctx, "project-deleted", m)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "message": "Project deleted"})
}

// counterMove resolves where a partial edit leaves the project's counter
// bucket. Empty inputs mean "unchanged"; moved is true when either the
// department or the level ends up different.
func counterMove(existing models.Project, newDept, newLevel string) (dept, level string, moved bool) {
	dept = existing.Department
	if newDept != "" {
		dept = newDept
	}
	level = existing.Level
	if newLevel != "" {
		level = newLevel
	}
	moved = dept != existing.Department || level != existing.Level
	return dept, level, moved
}

func cacheKey(projectID string) string {
	return fmt.Sprintf("project:%s", projectID)
}
