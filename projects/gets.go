package projects

import (
	"encoding/json"
	"net/http"
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
)

const projectCacheTTL = 30 * time.Minute

// listSpec builds the cursor paging spec for one orderBy choice. Unknown
// fields fall back to newest-first.
func listSpec(orderBy, dir string, limit int64) pager.Spec {
	spec := pager.Spec{IDField: "projectid", Desc: dir != "asc", Limit: limit}

	switch orderBy {
	case "priceNGN":
		spec.Field = "price_ngn"
		spec.Parse = parseIntCursor
	case "year":
		spec.Field = "year"
		spec.Parse = parseIntCursor
	case "title":
		spec.Field = "title"
	default:
		spec.Field = "created_at"
		spec.Parse = parseTimeCursor
	}
	return spec
}

func parseIntCursor(s string) (any, error) { return strconv.Atoi(s) }

func parseTimeCursor(s string) (any, error) { return time.Parse(time.RFC3339Nano, s) }

func lastToken(orderBy string) func(models.Project) pager.Token {
	return func(p models.Project) pager.Token {
		t := pager.Token{ID: p.ProjectID}
		switch orderBy {
		case "priceNGN":
			t.Value = strconv.Itoa(p.PriceNGN)
		case "year":
			t.Value = strconv.Itoa(p.Year)
		case "title":
			t.Value = p.Title
		default:
			t.Value = p.CreatedAt.Format(time.RFC3339Nano)
		}
		return t
	}
}

// GetProjects serves one page of the catalogue.
//
// GET /api/projects?orderBy=&dir=&limit=&cursor=&department=&level=&year=
//
// The response carries an opaque nextCursor; an empty cursor means the
// listing is exhausted. A failed page leaves whatever the client already
// holds untouched - nothing here is stateful.
func GetProjects(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query()

	limit, _ := strconv.ParseInt(q.Get("limit"), 10, 64)
	if limit < 1 {
		limit = 12
	}
	if limit > 50 {
		limit = 50
	}

	filter := bson.M{}
	if dept := q.Get("department"); dept != "" {
		filter["department"] = dept
	}
	if level := q.Get("level"); level != "" {
		filter["level"] = level
	}
	if year, err := strconv.Atoi(q.Get("year")); err == nil && year > 0 {
		filter["year"] = year
	}

	orderBy := q.Get("orderBy")
	spec := listSpec(orderBy, q.Get("dir"), limit)

	records, next, err := pager.FindPage(r.Context(), db.ProjectsCollection, spec, filter, q.Get("cursor"), lastToken(orderBy))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch projects")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"ok":         true,
		"projects":   records,
		"nextCursor": next,
	})
}

// GetProject returns one project, via the Redis detail cache when warm.
func GetProject(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	projectID := ps.ByName("projectid")

	if cached, err := rdx.RdxGet(cacheKey(projectID)); err == nil && cached != "" {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(cached))
		return
	}

	var project models.Project
	if err := db.ProjectsCollection.FindOne(r.Context(), bson.M{"projectid": projectID}).Decode(&project); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Project not found")
		return
	}

	if data, err := json.Marshal(project); err == nil {
		_ = rdx.SetWithExpiry(cacheKey(projectID), string(data), projectCacheTTL)
	}

	utils.RespondWithJSON(w, http.StatusOK, project)
}

// GetProjectsCount reports the catalogue size, optionally per department.
func GetProjectsCount(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	filter := bson.M{}
	if dept := r.URL.Query().Get("department"); dept != "" {
		filter["department"] = dept
	}

	count, err := db.ProjectsCollection.CountDocuments(r.Context(), filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to count projects")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "count": count})
}

// searchWindow bounds how many recent records a free-text search scans.
// Matches outside the window are invisible; this is a loaded-set filter,
// not a full-dataset search.
const searchWindow = 200

// SearchProjects narrows a window of recent projects by substring and
// categorical filters.
func SearchProjects(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query()

	year, _ := strconv.Atoi(q.Get("year"))
	query := catalog.Query{
		Text:       q.Get("q"),
		Department: q.Get("department"),
		Level:      q.Get("level"),
		Year:       year,
	}

	spec := pager.Spec{Field: "created_at", IDField: "projectid", Desc: true, Limit: searchWindow, Parse: parseTimeCursor}
	window, _, err := pager.FindPage(r.Context(), db.ProjectsCollection, spec, bson.M{}, "", lastToken(""))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Search failed")
		return
	}

	results := catalog.FilterProjects(window, query)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "results": results, "scanned": len(window)})
}

// DownloadProject records a download by a purchaser. The counter only ever
// moves up.
func DownloadProject(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	projectID := ps.ByName("projectid")
	userID := utils.GetUserIDFromRequest(r)

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unknown user")
		return
	}
	if !utils.Contains(user.PurchasedProjects, projectID) {
		utils.RespondWithError(w, http.StatusForbidden, "Project not purchased")
		return
	}

	var project models.Project
	err := db.ProjectsCollection.FindOneAndUpdate(ctx,
		bson.M{"projectid": projectID},
		bson.M{"$inc": bson.M{"downloads": 1}},
	).Decode(&project)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Project not found")
		return
	}

	_ = rdx.RdxDel(cacheKey(projectID))

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"ok":       true,
		"title":    project.Title,
		"formats":  project.Formats,
		"fileSize": project.FileSize,
	})
}
