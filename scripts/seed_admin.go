package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/nagrik-seva/app-docvault/internal/config"
	"github.com/nagrik-seva/app-docvault/internal/logging"
	"github.com/nagrik-seva/app-docvault/internal/models"
	"github.com/nagrik-seva/app-docvault/internal/services"
)

func main() {
	fmt.Println("🌱 Seeding administrator account...")

	if err := logging.InitLogger(); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	if err := config.LoadConfig(); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	config.InitMongoDB()
	if config.MongoDB == nil {
		log.Fatal("Failed to initialize MongoDB")
	}

	employeeID := os.Getenv("SEED_ADMIN_EMPLOYEE_ID")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if employeeID == "" || password == "" {
		log.Fatal("SEED_ADMIN_EMPLOYEE_ID and SEED_ADMIN_PASSWORD are required")
	}
	name := os.Getenv("SEED_ADMIN_NAME")
	if name == "" {
		name = "Administrator"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	collection := config.MongoDB.Collection(config.AppConfig.AdminCollection)

	count, err := collection.CountDocuments(ctx, bson.M{"employee_id": employeeID})
	if err != nil {
		log.Fatalf("Failed to check existing admin: %v", err)
	}
	if count > 0 {
		fmt.Printf("⚠️  Admin %s already exists. Replace password? (y/N): ", employeeID)
		var response string
		if _, err := fmt.Scanln(&response); err != nil || (response != "y" && response != "Y") {
			fmt.Println("❌ Seeding cancelled")
			return
		}
		_, err := collection.UpdateOne(ctx,
			bson.M{"employee_id": employeeID},
			bson.M{"$set": bson.M{"password_hash": services.HashPassword(password)}},
		)
		if err != nil {
			log.Fatalf("Failed to update admin password: %v", err)
		}
		fmt.Println("✅ Password updated")
		return
	}

	admin := models.Admin{
		EmployeeID:   employeeID,
		Name:         name,
		PasswordHash: services.HashPassword(password),
		Department:   os.Getenv("SEED_ADMIN_DEPARTMENT"),
		CreatedAt:    time.Now(),
	}
	if _, err := collection.InsertOne(ctx, admin); err != nil {
		log.Fatalf("Failed to insert admin: %v", err)
	}

	fmt.Printf("✅ Successfully seeded admin %s (%s)\n", employeeID, name)
	fmt.Println("\n🎉 Seeding completed successfully!")
}
