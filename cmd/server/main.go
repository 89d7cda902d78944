package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/Grupo5-Biologia-Marina/server/internal/auth"
	"github.com/Grupo5-Biologia-Marina/server/internal/category"
	"github.com/Grupo5-Biologia-Marina/server/internal/config"
	"github.com/Grupo5-Biologia-Marina/server/internal/database"
	"github.com/Grupo5-Biologia-Marina/server/internal/like"
	"github.com/Grupo5-Biologia-Marina/server/internal/middleware"
	"github.com/Grupo5-Biologia-Marina/server/internal/post"
	"github.com/Grupo5-Biologia-Marina/server/internal/storage"
	"github.com/Grupo5-Biologia-Marina/server/internal/user"
)

func main() {
	_ = godotenv.Load()

	cfg := config.LoadConfig()
	if cfg.DBUrl == "" {
		panic("DATABASE_URL no definida")
	}
	if cfg.JWTSecret == "" {
		panic("JWT_SECRET no definida")
	}

	database.Connect(cfg.DBUrl)

	err := database.DB.AutoMigrate(
		&user.User{},
		&category.Category{},
		&post.Post{},
		&post.PostImage{},
		&like.Like{},
	)
	if err != nil {
		log.Fatalf("Error de migración: %v", err)
	}

	if os.Getenv("SEED_ON_BOOT") == "true" {
		if err := seed(); err != nil {
			log.Fatalf("Error de seeding: %v", err)
		}
	}

	if os.Getenv("AWS_BUCKET_NAME") != "" {
		if err := storage.InitS3(); err != nil {
			log.Fatalf("Error inicializando S3: %v", err)
		}
	}

	r := gin.Default()
	r.Use(cors.Default())

	r.GET("/health", func(c *gin.Context) {
		if err := database.Ping(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "DB connection failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "DB connected"})
	})

	// Políticas de autorización, declaradas una vez y aplicadas por ruta.
	requireAuth := middleware.AuthMiddleware()
	optionalAuth := middleware.OptionalAuthMiddleware()
	adminOnly := middleware.Guard(middleware.Policy{
		Roles:     []string{user.RoleAdmin},
		FreshRole: user.RoleOf,
	})
	anyRole := middleware.Guard(middleware.Policy{
		Roles: []string{user.RoleUser, user.RoleAdmin},
	})
	selfOrAdmin := middleware.Guard(middleware.Policy{
		Roles:      []string{user.RoleAdmin},
		FreshRole:  user.RoleOf,
		OwnerParam: "id",
	})
	postOwnerOrAdmin := middleware.Guard(middleware.Policy{
		Roles:     []string{user.RoleAdmin},
		FreshRole: user.RoleOf,
		OwnerOf:   post.OwnerID,
	})

	// Inscripción y conexión
	authRoutes := r.Group("/auth")
	authRoutes.POST("/register", auth.Register)
	authRoutes.POST("/login", auth.Login)
	authRoutes.POST("/logout", auth.Logout)

	// Usuarios
	users := r.Group("/users", requireAuth)
	users.GET("", adminOnly, user.GetUsers)
	users.GET("/:id", user.GetUser)
	users.PATCH("/:id", selfOrAdmin, user.UpdateUser)
	users.PATCH("/:id/role", adminOnly, user.UpdateUserRole)

	api := r.Group("/api")

	// Posts
	api.GET("/posts", optionalAuth, post.GetPosts)
	api.GET("/posts/:id", optionalAuth, post.GetPostByID)
	api.GET("/posts/user/:userId", requireAuth, post.GetUserPosts)
	api.POST("/posts", requireAuth, anyRole, post.CreatePost)
	api.PATCH("/posts/:id", requireAuth, postOwnerOrAdmin, post.UpdatePost)
	api.DELETE("/posts/:id", requireAuth, postOwnerOrAdmin, post.DeletePost)
	api.POST("/posts/:id/images", requireAuth, postOwnerOrAdmin, post.AddImage)
	api.DELETE("/posts/:id/images/:imageId", requireAuth, postOwnerOrAdmin, post.DeleteImage)

	// Likes
	api.POST("/posts/:id/like", requireAuth, like.ToggleLike)
	api.GET("/posts/:id/likes", optionalAuth, like.GetLikeInfo)

	// Categorías
	api.GET("/categories", category.GetCategories)
	api.POST("/categories", requireAuth, adminOnly, category.CreateCategory)
	api.PUT("/categories/:id", requireAuth, adminOnly, category.UpdateCategory)
	api.DELETE("/categories/:id", requireAuth, adminOnly, category.DeleteCategory)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Error arrancando el servidor: %v", err)
	}
}
