// Command seeder wipes the admin and faculty credential and detail
// collections and inserts a known bootstrap account for each role.
package main

import (
	"context"
	"log"
	"time"

	"collegems/internal/admins"
	"collegems/internal/auth"
	"collegems/internal/config"
	"collegems/internal/faculty"
	"collegems/internal/model"
	"collegems/internal/store"
)

func main() {
	cfg := config.Load()

	db, err := store.NewMongo(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("mongo connect: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = db.Close(ctx)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.EnsureIndexes(ctx); err != nil {
		log.Fatalf("ensure indexes: %v", err)
	}

	creds := auth.NewCredentials(db)
	adminRepo := admins.NewRepository(db)
	facultyRepo := faculty.NewRepository(db)

	if err := creds.DeleteAll(ctx, auth.RoleAdmin); err != nil {
		log.Fatalf("wipe admin credentials: %v", err)
	}
	if err := creds.DeleteAll(ctx, auth.RoleFaculty); err != nil {
		log.Fatalf("wipe faculty credentials: %v", err)
	}
	if err := adminRepo.DeleteAll(ctx); err != nil {
		log.Fatalf("wipe admin details: %v", err)
	}
	if err := facultyRepo.DeleteAll(ctx); err != nil {
		log.Fatalf("wipe faculty details: %v", err)
	}

	if _, err := creds.Create(ctx, auth.RoleAdmin, 123456, "admin123"); err != nil {
		log.Fatalf("seed admin credential: %v", err)
	}
	if _, err := adminRepo.Insert(ctx, model.Admin{
		EmployeeID:  "123456",
		FirstName:   "Sundar",
		MiddleName:  "R",
		LastName:    "Pichai",
		Email:       "admin@college.edu",
		PhoneNumber: "9876543210",
		Gender:      "Male",
		Type:        "superadmin",
	}); err != nil {
		log.Fatalf("seed admin detail: %v", err)
	}
	log.Println("Admin seeded: loginid 123456 password admin123")

	if _, err := creds.Create(ctx, auth.RoleFaculty, 789012, "faculty123"); err != nil {
		log.Fatalf("seed faculty credential: %v", err)
	}
	if _, err := facultyRepo.Insert(ctx, model.Faculty{
		EmployeeID:  "789012",
		FirstName:   "John",
		MiddleName:  "D",
		LastName:    "Doe",
		Email:       "faculty@college.edu",
		PhoneNumber: "9123456780",
		Department:  "Computer Science",
		Gender:      "Male",
		Experience:  5,
		Post:        "Assistant Professor",
	}); err != nil {
		log.Fatalf("seed faculty detail: %v", err)
	}
	log.Println("Faculty seeded: loginid 789012 password faculty123")

	log.Println("Seeding complete")
}
