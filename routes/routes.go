package routes

import (
	"net/http"

	"projbank/admin"
	"projbank/auth"
	"projbank/departments"
	"projbank/imports"
	"projbank/middleware"
	"projbank/orders"
	"projbank/profile"
	"projbank/projects"
	"projbank/ratelim"
	"projbank/reviews"

	"github.com/julienschmidt/httprouter"
)

func AddAuthRoutes(router *httprouter.Router) {
	router.POST("/api/auth/register", ratelim.RateLimit(auth.Register))
	router.POST("/api/auth/login", ratelim.RateLimit(auth.Login))
	router.POST("/api/auth/logout", auth.LogoutUser)
	router.POST("/api/auth/token/refresh", ratelim.RateLimit(auth.RefreshToken))
	router.POST("/api/auth/password/forgot", ratelim.RateLimit(auth.RequestPasswordReset))
	router.POST("/api/auth/password/reset", ratelim.RateLimit(auth.ResetPassword))
}

func AddProjectRoutes(router *httprouter.Router) {
	router.GET("/api/projects", projects.GetProjects)
	router.GET("/api/projects/count", projects.GetProjectsCount)
	router.GET("/api/projects/search", projects.SearchProjects)
	router.GET("/api/project/:projectid", projects.GetProject)
	router.POST("/api/project/:projectid/download", middleware.Authenticate(projects.DownloadProject))

	router.POST("/api/admin/projects", middleware.RequireAdmin(projects.CreateProject))
	router.GET("/api/admin/projects/:projectid", middleware.RequireAdmin(projects.GetProjectForEdit))
	router.PUT("/api/admin/projects/:projectid", middleware.RequireAdmin(projects.EditProject))
	router.DELETE("/api/admin/projects/:projectid", middleware.RequireAdmin(projects.DeleteProject))
	router.POST("/api/admin/projects/:projectid/banner", middleware.RequireAdmin(projects.UploadBanner))
	router.POST("/api/admin/import", middleware.RequireAdmin(imports.BulkImport))
}

func AddDepartmentRoutes(router *httprouter.Router) {
	router.GET("/api/departments", departments.GetDepartments)
	router.GET("/api/departments/:department/projects", departments.GetDepartmentProjects)
	router.POST("/api/admin/departments/rebuild", middleware.RequireAdmin(departments.Rebuild))
}

func AddOrderRoutes(router *httprouter.Router) {
	router.POST("/api/orders", ratelim.RateLimit(middleware.Authenticate(orders.CreateOrder)))
	router.GET("/api/orders/mine", middleware.Authenticate(orders.GetMyOrders))
	router.GET("/api/order/:orderid", middleware.Authenticate(orders.GetOrder))
	router.GET("/api/order/:orderid/receipt", middleware.Authenticate(orders.OrderReceipt))

	router.GET("/api/admin/orders", middleware.RequireAdmin(orders.GetOrders))
	router.POST("/api/admin/order/:orderid/complete", middleware.RequireAdmin(orders.CompleteOrder))
	router.GET("/api/admin/live", middleware.RequireAdmin(orders.LiveOrders))
}

func AddReviewRoutes(router *httprouter.Router) {
	router.GET("/api/project/:projectid/reviews", reviews.GetProjectReviews)
	router.POST("/api/project/:projectid/reviews", ratelim.RateLimit(middleware.Authenticate(reviews.AddReview)))

	router.GET("/api/admin/reviews", middleware.RequireAdmin(reviews.GetModerationQueue))
	router.PUT("/api/admin/reviews/:reviewid/approve", middleware.RequireAdmin(reviews.ApproveReview))
	router.DELETE("/api/admin/reviews/:reviewid", middleware.RequireAdmin(reviews.DeleteReview))
}

func AddProfileRoutes(router *httprouter.Router) {
	router.GET("/api/profile", middleware.Authenticate(profile.GetProfile))
	router.PUT("/api/profile", middleware.Authenticate(profile.EditProfile))
	router.GET("/api/profile/projects", middleware.Authenticate(profile.GetPurchasedProjects))
}

func AddAdminRoutes(router *httprouter.Router) {
	router.GET("/api/admin/stats", middleware.RequireAdmin(admin.GetStats))
	router.GET("/api/admin/users", middleware.RequireAdmin(admin.GetUsers))
	router.PUT("/api/admin/users/:userid/status", middleware.RequireAdmin(admin.SetUserStatus))
}

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/*filepath", http.Dir("static"))
}
