package routes

import (
	"kiosk/configs"
	"kiosk/controllers"
	"kiosk/middlewares"
	"kiosk/repository"
	"kiosk/services"
	"kiosk/ws"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, cfg *configs.Config, catalog *services.Catalog, registry *services.SessionRegistry, hub *ws.SessionHub) {
	r.Use(middlewares.CORSMiddleware())
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	db := configs.DB()
	staffRepo := repository.NewStaffRepository(db)
	authSvc := services.NewAuthService(staffRepo, cfg.JWTSecret, cfg.JWTTTL)

	// Controllers
	menuCtrl := controllers.NewMenuController(catalog)
	sessionCtrl := controllers.NewSessionController(registry)
	voiceCtrl := controllers.NewVoiceController(registry)
	staffCtrl := controllers.NewStaffController(authSvc, staffRepo, registry)

	// Public: catalog browse
	r.GET("/menu", menuCtrl.List)
	r.GET("/menu/:id", menuCtrl.Detail)
	r.GET("/meta", menuCtrl.Meta)

	// Sessions (the kiosk screen is anonymous)
	s := r.Group("/sessions")
	{
		s.POST("", sessionCtrl.Create)
		s.GET("/:id", sessionCtrl.Get)
		s.DELETE("/:id", sessionCtrl.Delete)
		s.POST("/:id/events", sessionCtrl.Event)
		s.POST("/:id/voice/transcript", voiceCtrl.Transcript)
		s.POST("/:id/voice/listen", voiceCtrl.Listen)
		s.POST("/:id/voice/stop", voiceCtrl.Stop)
	}

	// Live session stream for the display
	r.GET("/ws/sessions/:id", hub.HandleWebSocket)

	// Staff service mode
	r.POST("/staff/login", staffCtrl.Login)
	staff := r.Group("/staff", middlewares.StaffAuth(cfg.JWTSecret, "staff"))
	{
		staff.GET("/calls", staffCtrl.Calls)
		staff.PATCH("/calls/:id/resolve", staffCtrl.ResolveCall)
		staff.GET("/sessions", staffCtrl.Sessions)
	}
}
