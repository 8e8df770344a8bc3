package infrastructure

import (
	"fmt"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"liveface.io/infrastructure/logger"
	middlewares "liveface.io/infrastructure/middlewares"
	ratelimit "liveface.io/infrastructure/ratelimit"
	webRoutev1 "liveface.io/infrastructure/routes/ginRouter/web/v1"
	startup "liveface.io/infrastructure/startUp"
)

type ginServer struct{}

func (s *ginServer) Start() {
	err := godotenv.Load()
	if err != nil {
		logger.Info("error loading env variables")
	}

	startup.StartServices()
	defer startup.CleanUpServices()

	server := gin.Default()
	origins := []string{}
	if os.Getenv("GIN_MODE") == "release" {
		origins = append(origins, os.Getenv("ALLOWED_ORIGIN"))
	} else {
		origins = append(origins, "http://localhost:5173")
	}
	corsConfig := cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Device-Id", "X-Request-Id", "User-Agent"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	server.Use(cors.New(corsConfig))
	server.Use(middlewares.RequestIDMiddleware())
	server.Use(ratelimit.TokenBucketPerIP())
	server.MaxMultipartMemory = 32 << 20 // frame bursts are large

	routerV1 := server.Group("/api/v1")
	{
		webRoutev1.LivenessRouter(routerV1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logger.Info(fmt.Sprintf("starting liveness engine on port %s", port))
	if err := server.Run(fmt.Sprintf(":%s", port)); err != nil {
		logger.Error("gin server exited", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
	}
}

func StartServer() {
	server := ginServer{}
	server.Start()
}
