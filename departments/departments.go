package departments

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"time"

	"projbank/catalog"
	"projbank/db"
	"projbank/models"
	"projbank/pager"
	"projbank/rdx"
	"projbank/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const listCacheKey = "departments:list"
const listCacheTTL = 2 * time.Hour

// Adjust moves one department's maintained counters by delta. Counters exist
// so the public listing never scans the projects collection; drift is
// repaired by Rebuild.
func Adjust(ctx context.Context, department, level string, delta int) error {
	if department == "" {
		department = catalog.UnspecifiedDepartment
	}

	inc := bson.M{"count": delta}
	if level != "" {
		inc["levels."+level] = delta
	}

	_, err := db.DepartmentsCollection.UpdateOne(ctx,
		bson.M{"name": department},
		bson.M{"$inc": inc},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return err
	}

	_ = rdx.RdxDel(listCacheKey)
	return nil
}

// GetDepartments lists departments with their project counts, from the
// counter documents (cached in Redis).
func GetDepartments(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if cached, err := rdx.RdxGet(listCacheKey); err == nil && cached != "" {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(cached))
		return
	}

	list, err := utils.FindAndDecode[models.DepartmentCount](r.Context(), db.DepartmentsCollection, bson.M{"count": bson.M{"$gt": 0}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch departments")
		return
	}

	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })

	payload := utils.M{"ok": true, "departments": list}
	if data, err := json.Marshal(payload); err == nil {
		_ = rdx.SetWithExpiry(listCacheKey, string(data), listCacheTTL)
	}

	utils.RespondWithJSON(w, http.StatusOK, payload)
}

// GetDepartmentProjects pages through one department's projects.
func GetDepartmentProjects(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	name := ps.ByName("department")
	q := r.URL.Query()

	limit, _ := strconv.ParseInt(q.Get("limit"), 10, 64)
	if limit < 1 {
		limit = 12
	}
	if limit > 50 {
		limit = 50
	}

	spec := pager.Spec{
		Field:   "created_at",
		IDField: "projectid",
		Desc:    true,
		Limit:   limit,
		Parse:   func(s string) (any, error) { return time.Parse(time.RFC3339Nano, s) },
	}

	last := func(p models.Project) pager.Token {
		return pager.Token{Value: p.CreatedAt.Format(time.RFC3339Nano), ID: p.ProjectID}
	}

	records, next, err := pager.FindPage(r.Context(), db.ProjectsCollection, spec, bson.M{"department": name}, q.Get("cursor"), last)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch department projects")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"ok":         true,
		"department": name,
		"projects":   records,
		"nextCursor": next,
	})
}

// Rebuild recomputes every counter document from the projects collection.
// Full scan, admin-triggered; the steady-state path never does this.
func Rebuild(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	all, err := utils.FindAndDecode[models.Project](ctx, db.ProjectsCollection, bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to scan projects")
		return
	}

	counts := catalog.DepartmentLevelCounts(all)

	if _, err := db.DepartmentsCollection.DeleteMany(ctx, bson.M{}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to reset departments")
		return
	}

	if len(counts) > 0 {
		docs := make([]interface{}, 0, len(counts))
		for _, dc := range counts {
			docs = append(docs, dc)
		}
		if _, err := db.DepartmentsCollection.InsertMany(ctx, docs); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to write departments")
			return
		}
	}

	_ = rdx.RdxDel(listCacheKey)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"ok":          true,
		"departments": len(counts),
		"projects":    len(all),
	})
}
