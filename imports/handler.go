package imports

import (
	"context"
	"errors"
	"log"
	"net/http"

	"projbank/catalog"
	"projbank/db"
	"projbank/departments"
	"projbank/models"
	"projbank/mq"
	"projbank/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/mongo"
)

// BulkImport ingests a CSV of projects in batched writes.
//
// POST /api/admin/projects/import (multipart, field "file")
//
// The file is parsed in full before the first write, so a malformed CSV
// commits nothing. Upload then runs chunk by chunk; a failing chunk stops
// the run and the response names exactly how many rows were committed -
// including the leading rows of the failing chunk, since an ordered
// InsertMany commits everything before the first rejected document. Nothing
// is rolled back.
func BulkImport(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Unable to parse form: "+err.Error())
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "CSV file is required")
		return
	}
	defer file.Close()

	parsed, err := Parse(file)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(parsed.Projects) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "No importable rows found")
		return
	}

	imported := 0
	for i, chunk := range Chunk(parsed.Projects, chunkSize) {
		docs := make([]interface{}, len(chunk))
		for j, p := range chunk {
			docs[j] = p
		}

		res, err := db.ProjectsCollection.InsertMany(ctx, docs)
		committed := len(chunk)
		if err != nil {
			committed = committedRows(res, err, len(chunk))
		}
		if committed > 0 {
			adjustCounters(ctx, chunk[:committed])
			imported += committed
		}
		if err != nil {
			log.Printf("bulk import: chunk %d failed after %d rows: %v", i+1, imported, err)
			utils.RespondWithJSON(w, http.StatusInternalServerError, utils.M{
				"ok":          false,
				"error":       "Import failed partway; committed rows are not rolled back",
				"imported":    imported,
				"failedChunk": i + 1,
				"remaining":   len(parsed.Projects) - imported,
			})
			return
		}
	}

	m := models.Index{EntityType: "project", Method: "POST", ItemType: "bulk"}
	go mq.Emit(ctx, "projects-imported", m)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"ok":          true,
		"imported":    imported,
		"skippedRows": parsed.Skipped,
	})
}

// committedRows reports how many documents of a failed chunk were written.
// An ordered InsertMany stops at the first bad document, so that error's
// index is the count; the driver's InsertedIDs, when present, say the same
// thing directly. Errors outside the bulk-write shape (connection loss) give
// no such guarantee and count as zero.
func committedRows(res *mongo.InsertManyResult, err error, chunkLen int) int {
	if res != nil && len(res.InsertedIDs) > 0 {
		return len(res.InsertedIDs)
	}

	var bwe mongo.BulkWriteException
	if errors.As(err, &bwe) {
		n := chunkLen
		for _, we := range bwe.WriteErrors {
			if we.Index < n {
				n = we.Index
			}
		}
		return n
	}
	return 0
}

func adjustCounters(ctx context.Context, rows []models.Project) {
	for dept, dc := range catalog.DepartmentLevelCounts(rows) {
		for level, n := range dc.Levels {
			if err := departments.Adjust(ctx, dept, level, n); err != nil {
				log.Printf("department counter adjust failed: %v", err)
			}
		}
		if unleveled := dc.Count - levelTotal(dc.Levels); unleveled > 0 {
			if err := departments.Adjust(ctx, dept, "", unleveled); err != nil {
				log.Printf("department counter adjust failed: %v", err)
			}
		}
	}
}

func levelTotal(levels map[string]int) int {
	total := 0
	for _, n := range levels {
		total += n
	}
	return total
}
