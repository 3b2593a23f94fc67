package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/lankacraft/marketapi/internal/config"
	"github.com/lankacraft/marketapi/internal/domain"
	"github.com/lankacraft/marketapi/internal/repository/postgres"
	"go.uber.org/zap"
)

func main() {
	if len(os.Args) < 4 {
		fmt.Println("Usage: go run cmd/create-user/main.go <email> <first-name> <last-name>")
		fmt.Println("Example: go run cmd/create-user/main.go \"oshada@example.com\" \"Oshada\" \"Bandaranayake\"")
		os.Exit(1)
	}

	email := os.Args[1]
	firstName := os.Args[2]
	lastName := os.Args[3]

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	// Connect to database
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := postgres.Migrate(db); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to run migrations: %v\n", err)
		os.Exit(1)
	}

	// Create repositories
	repos := postgres.NewRepositories(db, logger)

	user := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		MobileNumber: "+94771234567",
		Language:     domain.LanguageEnglish,
		DefaultMode:  domain.ModeBuyer,
		CurrentMode:  domain.ModeBuyer,
	}

	err = repos.Users.Create(context.Background(), user)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create user: %v\n", err)
		os.Exit(1)
	}

	// Mint a session token so the account is usable right away
	token := uuid.NewString()
	hash, err := bcrypt.GenerateFromPassword([]byte(token), 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to hash token: %v\n", err)
		os.Exit(1)
	}

	err = repos.Sessions.ReplaceForUser(context.Background(), &domain.Session{
		UserID:    user.ID,
		TokenHash: string(hash),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create session: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ User created successfully!\n\n")
	fmt.Printf("User ID: %s\n", user.ID.String())
	fmt.Printf("Email: %s\n", user.Email)
	fmt.Printf("Token: %s\n", token)
	fmt.Printf("\n⚠️  IMPORTANT: Save this token securely! You won't be able to see it again.\n")
	fmt.Printf("\nUse this token in the Authorization header:\n")
	fmt.Printf("Authorization: Bearer %s\n", token)
}
