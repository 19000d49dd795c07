package main

import (
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"taskboard-api/domain/models"
	"taskboard-api/infrastructure/postgres"
	"taskboard-api/pkg/config"
)

// Seeds the default team, its four board columns, and an admin account.
// Safe to run repeatedly: existing rows are left untouched.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := postgres.NewDatabase(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := postgres.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate: %v", err)
	}

	team, err := seedTeam(db, "Default Team")
	if err != nil {
		log.Fatalf("Failed to seed team: %v", err)
	}
	fmt.Printf("✓ Team %q (slug %s)\n", team.Name, team.Slug)

	if err := seedColumns(db, team.ID); err != nil {
		log.Fatalf("Failed to seed columns: %v", err)
	}
	fmt.Println("✓ Board columns To Do / Doing / Review / Complete")

	admin, err := seedAdmin(db, team.ID)
	if err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}
	fmt.Printf("✓ Admin user %q (%s)\n", admin.Username, admin.Email)

	fmt.Println("\nSeed complete.")
}

func seedTeam(db *gorm.DB, name string) (*models.Team, error) {
	team := &models.Team{
		Name:     name,
		Slug:     slug.Make(name),
		IsActive: true,
	}
	err := db.Where("slug = ?", team.Slug).FirstOrCreate(team).Error
	return team, err
}

func seedColumns(db *gorm.DB, teamID uint) error {
	defaults := []models.BoardColumn{
		{TeamID: teamID, Name: "To Do", Position: 0, Stage: models.StageTodo},
		{TeamID: teamID, Name: "Doing", Position: 1, Stage: models.StageDoing},
		{TeamID: teamID, Name: "Review", Position: 2, Stage: models.StageReview},
		{TeamID: teamID, Name: "Complete", Position: 3, Stage: models.StageComplete},
	}

	for i := range defaults {
		col := &defaults[i]
		err := db.Where("team_id = ? AND stage = ?", teamID, col.Stage).FirstOrCreate(col).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func seedAdmin(db *gorm.DB, teamID uint) (*models.User, error) {
	password := getSeedPassword()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	admin := &models.User{
		ID:          uuid.New(),
		Email:       "admin@taskboard.local",
		Username:    "admin",
		DisplayName: "Administrator",
		Password:    string(hash),
		Role:        models.RoleAdmin,
		TeamID:      &teamID,
		IsActive:    true,
	}
	err = db.Where("username = ?", admin.Username).FirstOrCreate(admin).Error
	return admin, err
}

func getSeedPassword() string {
	if pw := os.Getenv("SEED_ADMIN_PASSWORD"); pw != "" {
		return pw
	}
	return "changeme"
}
