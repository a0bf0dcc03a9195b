// cmd/server/main.go
package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/go-chi/chi/v5"

	"github.com/agentuity/agent-social-marketing-v1/internal/controller"
	"github.com/agentuity/agent-social-marketing-v1/internal/db"
	"github.com/agentuity/agent-social-marketing-v1/internal/repository"
	"github.com/agentuity/agent-social-marketing-v1/internal/service"
    "github.com/agentuity/agent-social-marketing-v1/internal/config"
    "github.com/agentuity/agent-social-marketing-v1/internal/queue"
    "github.com/agentuity/agent-social-marketing-v1/internal/handler"
    "github.com/agentuity/agent-social-marketing-v1/internal/typefully"

)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	cfg := config.Parse()

	// Init DB
	db.Init(cfg.DatabaseURL)

	kv := &repository.PostgresKV{DB: db.DB}
	campaignRepo := repository.NewCampaignRepository(kv)

	campaignService := &service.CampaignService{
		CampaignRepo: campaignRepo,
	}

    if cfg.TypefullyAPIKey != "" {
        client := typefully.NewClient(cfg.TypefullyAPIKey)
        client.BaseURL = cfg.TypefullyBaseURL
        campaignService.Typefully = client
    } else {
        log.Println("⚠️ TYPEFULLY_API_KEY is not set, scheduling runs will fail until it is configured")
    }

    // With a broker the dedicated worker picks jobs up, without one the
    // in-process subscriber does the same work
    if cfg.AmqpURL != "" {
        amqpQueue, err := queue.NewAMQPQueue(cfg.AmqpURL)
        if err != nil {
            log.Fatal("Failed to connect to RabbitMQ:", err)
        }
        campaignService.Queue = amqpQueue
    } else {
        q := queue.NewInMemoryQueue()
        queue.StartCampaignScheduleSubscriber(q, campaignService)
        campaignService.Queue = q
    }

	campaignController := &controller.CampaignController{
		CampaignService: campaignService,
	}

    campaignHandler := &handler.CampaignHandler{
	Service: campaignService,
    }



	r := chi.NewRouter()

	// Campaign routes
	r.Post("/campaigns", campaignController.CreateCampaign)
	r.Get("/campaigns", campaignController.ListCampaigns)
	r.Get("/campaigns/{id}", campaignController.GetCampaign)
	r.Delete("/campaigns/{id}", campaignController.DeleteCampaign)
	r.Post("/campaigns/{id}/research", campaignController.AttachResearch)
	r.Post("/campaigns/{id}/content", campaignController.AttachContent)
	//r.Post("/campaigns/{id}/schedule-now", campaignController.ScheduleCampaignNow)
	r.Post("/campaigns/{id}/schedule", campaignController.ScheduleCampaign)
    r.Get("/campaigns/{id}/stats", campaignHandler.GetCampaignStatsHandler)


	log.Println("🚀 Server running on :" + cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, r))
}
