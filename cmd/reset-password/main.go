package main

import (
	"flag"
	"log"
	"os"

	"dealership-backend/internal/model"
	"dealership-backend/pkg/database"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Emergency CLI: resets a staff account password straight in the
// database when nobody with OWNER access can log in anymore.
func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	email := flag.String("email", "", "account email to reset")
	password := flag.String("password", "owner123", "new password")
	flag.Parse()

	if *email == "" {
		*email = os.Getenv("SEED_OWNER_EMAIL")
	}
	if *email == "" {
		*email = "owner@dealership.local"
	}

	// 2. Setup Database
	db := database.ConnectDB()

	// 3. Find the account
	var user model.User
	if err := db.Where("email = ?", *email).First(&user).Error; err != nil {
		log.Fatalf("❌ User %s not found in database: %v", *email, err)
	}

	// 4. Hash new password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("❌ Failed to hash password: %v", err)
	}

	// 5. Update
	if err := db.Model(&user).Update("password", string(hashedPassword)).Error; err != nil {
		log.Fatalf("❌ Failed to update password in DB: %v", err)
	}

	log.Printf("✅ Success! Password for %s has been reset", *email)
}
