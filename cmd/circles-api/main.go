package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/circleshq/circles-api/internal/config"
	"github.com/circleshq/circles-api/internal/database"
	"github.com/circleshq/circles-api/internal/handlers"
	authmw "github.com/circleshq/circles-api/internal/middleware"
	"github.com/circleshq/circles-api/internal/services"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	jwtService := services.NewJWTService(cfg.JWTSecret, cfg.JWTAccessExpiry)
	userService := services.NewUserService(db)
	teamService := services.NewTeamService(db)
	authzService := services.NewAuthzService(db)
	inviteService := services.NewInviteService(db, authzService, cfg.BaseURL)
	emailService := services.NewEmailService(cfg.SMTP)

	userHandler := handlers.NewUserHandler(userService, teamService)
	teamHandler := handlers.NewTeamHandler(teamService, authzService)
	inviteHandler := handlers.NewInviteHandler(inviteService, teamService, userService, emailService)

	app := drift.New()

	if cfg.IsProduction() {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	app.Use(middleware.Recovery())
	app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", authmw.ServiceKeyHeader},
		MaxAge:       86400,
	}))
	app.Use(middleware.BodyParser())

	api := app.Group("/api/v1")

	// User provisioning is reserved for the identity collaborator.
	service := api.Group("")
	service.Use(authmw.ServiceKey(cfg.ServiceKey))
	service.Post("/users", userHandler.Create)

	protected := api.Group("")
	protected.Use(authmw.Auth(jwtService))

	protected.Get("/users/me", userHandler.GetMe)
	protected.Patch("/users/me", userHandler.UpdateMe)
	protected.Get("/users/me/memberships", userHandler.GetMyMemberships)

	protected.Get("/teams", teamHandler.List)
	protected.Post("/teams", teamHandler.Create)
	protected.Get("/teams/:id", teamHandler.Get)
	protected.Get("/teams/:id/members", teamHandler.GetMembers)
	protected.Patch("/teams/:id/members/:memberId", teamHandler.UpdateMemberRole)
	protected.Delete("/teams/:id/members/:memberId", teamHandler.RemoveMember)

	protected.Post("/invites", inviteHandler.Create)
	protected.Get("/invites/token/:token", inviteHandler.GetByToken)
	protected.Post("/invites/accept", inviteHandler.Accept)

	api.Get("/health", func(c *drift.Context) {
		_ = c.JSON(200, map[string]string{"status": "ok"})
	})

	// Public landing page behind emailed invite links.
	app.Get("/invite/accept", inviteHandler.ViewInvite)

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.Printf("Server starting on %s", addr)
		if err := app.Run(addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
}
