package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"paper-service/internal/ai"
	"paper-service/internal/db"
	"paper-service/internal/document"
	"paper-service/internal/event"
	"paper-service/internal/handlers"
	"paper-service/internal/repository"
	"paper-service/internal/service"
	"paper-service/internal/workspace"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system env")
	}
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		log.Fatal("MONGO_URI is required")
	}
	db.InitMongo(mongoURI)

	// RabbitMQ event publisher
	rabbitURL := os.Getenv("RABBITMQ_URI")
	eventExchange := os.Getenv("RABBITMQ_EXCHANGE")
	var publisher *event.EventPublisher
	if rabbitURL != "" && eventExchange != "" {
		var err error
		publisher, err = event.NewEventPublisher(rabbitURL, eventExchange)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RabbitMQ not configured, paper events will not be published")
	}

	workspaceURL := os.Getenv("WORKSPACE_URL")
	if workspaceURL == "" {
		workspaceURL = "http://localhost:8080"
	}
	aiURL := os.Getenv("AI_SERVICE_URL")
	if aiURL == "" {
		aiURL = "http://localhost:8090"
	}

	database := db.Client.Database("paper_service")

	store := document.NewStore()
	paperRepo := repository.NewPaperRepository(database)
	workspaceClient := workspace.NewClient(workspaceURL)
	aiClient := ai.NewClient(aiURL, os.Getenv("AI_API_KEY"))

	paperService := service.NewPaperService(store, paperRepo, workspaceClient, aiClient)

	// Restore the paper collection before serving; load requests must not
	// race hydration.
	hydrateCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := paperService.Hydrate(hydrateCtx); err != nil {
		log.Fatalf("Failed to hydrate paper store: %v", err)
	}
	cancel()

	paperHandler := handlers.NewPaperHandler(paperService)
	sectionHandler := handlers.NewSectionHandler(store)
	questionHandler := handlers.NewQuestionHandler(store)
	aiHandler := handlers.NewAIHandler(paperService)
	workspaceHandler := handlers.NewWorkspaceHandler(paperService)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With", "X-User-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"mongo":    db.IsConnected(),
			"hydrated": store.Hydrated(),
		})
	})

	// Public routes - read only
	publicPaper := r.Group("/public/papers")
	{
		publicPaper.GET("/", paperHandler.ListPapers)
		publicPaper.GET("/current", paperHandler.GetCurrent)
		publicPaper.GET("/workspace", func(c *gin.Context) {
			workspaceHandler.ListPapers(c)
			if publisher != nil {
				publisher.Publish("paper.workspace.listed", gin.H{
					"subject": c.Query("subject"),
					"class":   c.Query("class"),
				})
			}
		})
	}

	// Protected routes - every structural edit of a paper
	protectedPaper := r.Group("/protected/papers")
	protectedPaper.Use(requireUser())
	{
		protectedPaper.POST("/", func(c *gin.Context) {
			paperHandler.CreatePaper(c)
			if publisher != nil {
				publisher.Publish("paper.created", gin.H{
					"user_id":   c.GetHeader("X-User-ID"),
					"timestamp": time.Now(),
				})
			}
		})
		protectedPaper.POST("/:id/load", paperHandler.LoadPaper)
		protectedPaper.POST("/save", func(c *gin.Context) {
			paperHandler.SavePaper(c)
			if publisher != nil {
				publisher.Publish("paper.saved", gin.H{
					"user_id":   c.GetHeader("X-User-ID"),
					"timestamp": time.Now(),
				})
			}
		})
		protectedPaper.POST("/sync", func(c *gin.Context) {
			paperHandler.SyncPaper(c)
			if publisher != nil {
				publisher.Publish("paper.synced", gin.H{
					"user_id":   c.GetHeader("X-User-ID"),
					"timestamp": time.Now(),
				})
			}
		})
		protectedPaper.DELETE("/:id", func(c *gin.Context) {
			paperHandler.DeletePaper(c)
			if publisher != nil {
				publisher.Publish("paper.deleted", gin.H{"id": c.Param("id")})
			}
		})
		protectedPaper.POST("/:id/duplicate", paperHandler.DuplicatePaper)
		protectedPaper.PUT("/metadata", paperHandler.UpdateMetadata)
		protectedPaper.POST("/import", workspaceHandler.ImportPaper)
	}

	protectedSection := r.Group("/protected/sections")
	protectedSection.Use(requireUser())
	{
		protectedSection.POST("/", sectionHandler.AddSection)
		protectedSection.PUT("/:id", sectionHandler.UpdateSection)
		protectedSection.DELETE("/:id", sectionHandler.DeleteSection)
		protectedSection.POST("/reorder", sectionHandler.ReorderSections)
		protectedSection.POST("/select", sectionHandler.SelectSection)
	}

	protectedQuestion := r.Group("/protected/questions")
	protectedQuestion.Use(requireUser())
	{
		protectedQuestion.POST("/", questionHandler.AddQuestion)
		protectedQuestion.PUT("/:sectionId/:id", questionHandler.UpdateQuestion)
		protectedQuestion.DELETE("/:sectionId/:id", questionHandler.DeleteQuestion)
		protectedQuestion.POST("/:sectionId/:id/duplicate", questionHandler.DuplicateQuestion)
		protectedQuestion.POST("/move", questionHandler.MoveQuestion)
		protectedQuestion.POST("/:sectionId/reorder", questionHandler.ReorderQuestions)
		protectedQuestion.POST("/select", questionHandler.SelectQuestion)
	}

	protectedAI := r.Group("/protected/ai")
	protectedAI.Use(requireUser())
	{
		protectedAI.POST("/generate", func(c *gin.Context) {
			aiHandler.GenerateQuestions(c)
			if publisher != nil {
				publisher.Publish("paper.questions.generated", gin.H{
					"user_id":   c.GetHeader("X-User-ID"),
					"timestamp": time.Now(),
				})
			}
		})
		protectedAI.POST("/translate", func(c *gin.Context) {
			aiHandler.TranslatePaper(c)
			if publisher != nil {
				publisher.Publish("paper.translated", gin.H{
					"user_id":   c.GetHeader("X-User-ID"),
					"timestamp": time.Now(),
				})
			}
		})
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "6677"
	}
	r.Run(":" + port)
}

// requireUser gates editing routes behind the gateway-injected user header.
func requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("X-User-ID") == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
				"code":  "MISSING_USER_ID",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
