package projects

import (
	"io"
	"net/http"
	"os"
	"time"

	"projbank/db"
	"projbank/rdx"
	"projbank/utils"

	"github.com/disintegration/imaging"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

var bannerUploadPath = "./static/projectpic"

// UploadBanner attaches a cover image to a project listing.
func UploadBanner(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	projectID := ps.ByName("projectid")

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Unable to parse form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("banner")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Banner file is required")
		return
	}
	defer file.Close()

	fileExtension := ""
	switch header.Header.Get("Content-Type") {
	case "image/jpeg":
		fileExtension = ".jpg"
	case "image/webp":
		fileExtension = ".webp"
	case "image/png":
		fileExtension = ".png"
	default:
		utils.RespondWithError(w, http.StatusUnsupportedMediaType, "Unsupported image type. Only JPG, PNG and WEBP are allowed.")
		return
	}

	if err := utils.EnsureDir(bannerUploadPath); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error saving banner: "+err.Error())
		return
	}

	savePath := bannerUploadPath + "/" + projectID + fileExtension
	out, err := os.Create(savePath)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error saving banner: "+err.Error())
		return
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error saving banner: "+err.Error())
		return
	}

	createThumb(savePath, bannerUploadPath+"/"+projectID+"_thumb.jpg")

	result, err := db.ProjectsCollection.UpdateOne(ctx,
		bson.M{"projectid": projectID},
		bson.M{"$set": bson.M{"banner_photo": projectID + fileExtension, "updated_at": time.Now()}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update project")
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Project not found")
		return
	}

	_ = rdx.RdxDel(cacheKey(projectID))

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"ok":          true,
		"bannerPhoto": projectID + fileExtension,
	})
}

// createThumb writes a 300x200 thumbnail next to the banner. Failures are
// tolerated: the full-size image is already saved.
func createThumb(srcPath, thumbPath string) {
	img, err := imaging.Open(srcPath)
	if err != nil {
		return
	}
	thumb := imaging.Thumbnail(img, 300, 200, imaging.Lanczos)
	_ = imaging.Save(thumb, thumbPath)
}
