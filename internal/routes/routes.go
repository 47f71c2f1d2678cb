package routes

import (
	"github.com/anhbui5302/AnhBlogWebAPI/internal/authz"
	"github.com/anhbui5302/AnhBlogWebAPI/internal/config"
	"github.com/anhbui5302/AnhBlogWebAPI/internal/database"
	"github.com/anhbui5302/AnhBlogWebAPI/internal/handlers"
	"github.com/anhbui5302/AnhBlogWebAPI/internal/middleware"
	"github.com/anhbui5302/AnhBlogWebAPI/internal/oauth"
	"github.com/anhbui5302/AnhBlogWebAPI/internal/services"
	"github.com/anhbui5302/AnhBlogWebAPI/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRoutes(db *database.Database, login *oauth.Login, cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.AccessLog(), gin.Recovery())
	r.Use(cors.New(corsConfig(cfg.Server.AllowOrigins)))
	r.HandleMethodNotAllowed = true
	r.NoRoute(middleware.NotFound)
	r.NoMethod(middleware.MethodNotAllowed)

	// services and stores
	tokenService := services.NewTokenService(cfg)
	accounts := store.NewAccountStore(db.DB)
	posts := store.NewPostStore(db.DB)
	pipeline := authz.NewPipeline(authz.NewIdentityResolver(tokenService), accounts, posts)

	// handlers
	authHandler := handlers.NewAuthHandler(login, accounts, tokenService)
	userHandler := handlers.NewUserHandler(accounts)
	postHandler := handlers.NewPostHandler(accounts, posts)
	healthHandler := handlers.NewHealthHandler(db)

	account := middleware.Gate(pipeline, authz.PolicyAccount)
	member := middleware.Gate(pipeline, authz.PolicyMember)
	owned := middleware.Gate(pipeline, authz.PolicyPost)

	// public
	r.GET("/health", healthHandler.Check)
	for _, slug := range login.Slugs() {
		r.GET("/"+slug, authHandler.Login(slug))
		r.GET("/"+slug+"/callback", authHandler.Callback(slug))
	}

	// behind the authorization gate
	r.PATCH("/updateinfo", account, userHandler.UpdateInfo)
	r.GET("/info", member, userHandler.GetInfo)
	r.GET("/", member, postHandler.GetPosts)
	r.POST("/create", member, postHandler.CreatePost)
	r.GET("/:author_id/posts", member, postHandler.GetAuthorPosts)

	post := r.Group("/:author_id/posts/:post_id", owned)
	{
		post.GET("", postHandler.GetPost)
		post.POST("/like", postHandler.LikePost)
		post.DELETE("/like", postHandler.UnlikePost)
		post.GET("/likes", postHandler.GetLikes)
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization", middleware.RequestIDHeader)
	cfg.ExposeHeaders = []string{middleware.RequestIDHeader}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
