package main

import (
	"log"

	"kiosk/configs"
	"kiosk/entity"
	"kiosk/repository"
	"kiosk/routes"
	"kiosk/services"
	"kiosk/ws"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := configs.LoadConfig()

	// DB
	configs.ConnectionDB(cfg.DBSource)
	configs.SetupDatabase()

	if err := configs.SeedCatalog(); err != nil {
		log.Fatalf("seed catalog failed: %v", err)
	}
	if err := configs.SeedStaff(); err != nil {
		log.Fatalf("seed staff failed: %v", err)
	}

	// Catalog snapshot the whole kiosk reads from
	menuRepo := repository.NewMenuRepository(configs.DB())
	catalog, err := services.LoadCatalog(menuRepo)
	if err != nil {
		log.Fatalf("load catalog failed: %v", err)
	}

	// Session machinery
	registry := services.NewSessionRegistry(catalog, services.NewScheduler(), services.Timings{
		Processing: cfg.ProcessingDelay,
		Completed:  cfg.CompletedDelay,
		Inactivity: cfg.InactivityDelay,
		StaffCall:  cfg.StaffCallDelay,
	})

	staffRepo := repository.NewStaffRepository(configs.DB())
	registry.SetStaffCallRecorder(func(sessionID string, view services.View) {
		call := entity.StaffCall{SessionID: sessionID, View: string(view)}
		if err := staffRepo.CreateCall(&call); err != nil {
			log.Printf("record staff call failed: %v", err)
		}
	})

	hub := ws.NewSessionHub(registry)
	registry.SetNotifier(hub)
	go hub.Run()

	// HTTP
	r := gin.Default()
	routes.RegisterRoutes(r, cfg, catalog, registry, hub)

	log.Println("kiosk backend listening on :" + cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
