package bootstrap

import (
	"github.com/transformerAnt/orange-fitness-backend/internal/config"
	"github.com/transformerAnt/orange-fitness-backend/internal/controller"
	"github.com/transformerAnt/orange-fitness-backend/internal/pkg/logger"
	"github.com/transformerAnt/orange-fitness-backend/internal/repository/memory"
	"github.com/transformerAnt/orange-fitness-backend/internal/service"
	"github.com/transformerAnt/orange-fitness-backend/pkg/llm/mistral"
	"github.com/transformerAnt/orange-fitness-backend/pkg/rag"
)

type Container struct {
	// Controllers
	HealthController    controller.IHealthController
	ExerciseController  controller.IExerciseController
	NutritionController controller.INutritionController
	ChatController      controller.IChatController
	RagController       controller.IRagController

	Logger logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Retrieval document set (static, loaded once)
	documents, err := rag.LoadDocuments(cfg.Rag.DocumentsJSON)
	if err != nil {
		sysLogger.Warn("bootstrap", "RAG_DOCUMENTS is not valid JSON, starting with an empty document set", map[string]interface{}{
			"error": err.Error(),
		})
		documents = nil
	}

	// 3. Providers & Repositories
	llmProvider := mistral.NewProvider(cfg.Mistral.APIKey, cfg.Mistral.BaseURL, cfg.Mistral.TextModel)
	historyRepo := memory.NewHistoryRepository()

	// 4. Services
	exerciseService := service.NewExerciseService(cfg.ExerciseDB, nil, sysLogger)
	nutritionService := service.NewNutritionService(cfg.Mistral, llmProvider, sysLogger)
	chatService := service.NewChatService(cfg.Mistral, llmProvider, historyRepo, documents, sysLogger)

	// 5. Controllers
	return &Container{
		HealthController:    controller.NewHealthController(),
		ExerciseController:  controller.NewExerciseController(exerciseService),
		NutritionController: controller.NewNutritionController(nutritionService),
		ChatController:      controller.NewChatController(chatService),
		RagController:       controller.NewRagController(documents),

		Logger: sysLogger,
	}
}
