package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/circleshq/circles-api/internal/config"
	"github.com/circleshq/circles-api/internal/database"
	"github.com/circleshq/circles-api/internal/models"
)

// Recovery tool for teams left without an admin: the API refuses role
// changes on your own membership, so a team whose only admin is demoted or
// removed has no in-band way back.
func main() {
	if len(os.Args) != 3 {
		fmt.Println("Usage: grant-admin <email> <team-id>")
		os.Exit(1)
	}

	email := os.Args[1]
	teamID := os.Args[2]

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

	result, err := db.Pool.Exec(ctx, `
		UPDATE team_members SET role = $1
		WHERE team_id = $2
		  AND user_id = (SELECT id FROM users WHERE email = $3)
	`, models.RoleAdmin, teamID, email)
	if err != nil {
		log.Fatalf("Failed to update membership: %v", err)
	}

	if result.RowsAffected() == 0 {
		log.Fatalf("No membership found for %s on team %s", email, teamID)
	}

	fmt.Printf("Successfully granted admin on team %s to %s\n", teamID, email)
}
