package routes

import (
	"Farol/controllers"
	"Farol/middleware"
	"Farol/services/redis"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, db *gorm.DB, redisClient *redis.RedisClient) {
	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes group
	api := router.Group("/")

	api.GET("/ping", controllers.Ping)

	api.POST("/login", controllers.Login(db))

	api.POST("/signup", controllers.SignUp(db))

	authentication := api.Group("/auth")
	authentication.Use(middleware.AuthRequired)
	{
		authentication.DELETE("/logout", controllers.Logout)

		authentication.POST("/createGame", controllers.CreateGame(db))

		authentication.POST("/joinGame/:game_id", controllers.JoinGame(db))

		authentication.GET("/gameInfo/:game_id", controllers.GetGameInfo(db))

		authentication.GET("/getAllGames", controllers.GetAllGames(db))
	}
}
