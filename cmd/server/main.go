package main

import (
	"flag"
	"log"
	"os"

	"k8s.io/klog/v2"

	"github.com/qmsdocs/backend/config"
	"github.com/qmsdocs/backend/internal/handler"
	"github.com/qmsdocs/backend/internal/pkg/database"
	"github.com/qmsdocs/backend/internal/repository"
	"github.com/qmsdocs/backend/internal/router"
	"github.com/qmsdocs/backend/internal/service"
)

func main() {
	// 初始化 klog
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	klog.V(6).Info("服务启动中...")

	cfg := config.GetConfig()

	if err := os.MkdirAll(cfg.Storage.Dir, 0755); err != nil {
		log.Fatalf("Failed to create storage directory: %v", err)
	}

	// 初始化数据库
	db, err := database.InitDB(cfg.Database.Type, cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// 初始化 Repository
	manualRepo := repository.NewManualRepository(db)
	sectionRepo := repository.NewSectionRepository(db)
	procRepo := repository.NewProcedureRepository(db)
	docRepo := repository.NewDocumentRepository(db)
	revRepo := repository.NewRevisionRepository(db)
	userRepo := repository.NewUserRepository(db)

	// 初始化 Service
	revisionService := service.NewRevisionService(revRepo)
	fileStore := service.NewFileStore(cfg.Storage.Dir, cfg.Storage.MaxUploadBytes)
	manualService := service.NewManualService(cfg, manualRepo, userRepo, revisionService)
	sectionService := service.NewSectionService(sectionRepo, manualRepo, revisionService)
	procService := service.NewProcedureService(procRepo, sectionRepo, userRepo, revisionService)
	docService := service.NewDocumentService(docRepo, manualRepo, sectionRepo, procRepo, userRepo, revisionService, fileStore)
	searchService := service.NewSearchService(manualRepo, sectionRepo, procRepo, docRepo, cfg.Search.GlobalLimit)
	userService := service.NewUserService(userRepo)

	// 初始化 Handler
	manualHandler := handler.NewManualHandler(cfg, manualService)
	sectionHandler := handler.NewSectionHandler(sectionService)
	procHandler := handler.NewProcedureHandler(cfg, procService)
	docHandler := handler.NewDocumentHandler(cfg, docService)
	searchHandler := handler.NewSearchHandler(searchService)
	userHandler := handler.NewUserHandler(userService)

	// 设置路由
	r := router.Setup(cfg, manualHandler, sectionHandler, procHandler, docHandler, searchHandler, userHandler)

	log.Printf("Server starting on port %s...", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
