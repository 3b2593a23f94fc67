package main

import (
	"context"
	"fmt"
	"os"

	"github.com/lankacraft/marketapi/internal/config"
	"github.com/lankacraft/marketapi/internal/genai"
	"go.uber.org/zap"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/gen-profile/main.go <shop-info>")
		fmt.Println("Example: go run cmd/gen-profile/main.go \"We carve traditional wooden masks in Ambalangoda\"")
		os.Exit(1)
	}

	shopInfo := os.Args[1]

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	client := genai.NewClient(cfg.Gemini, logger)

	fmt.Printf("🔍 Generating profile for: %s\n\n", shopInfo)

	profile, err := client.GenerateShopProfile(context.Background(), shopInfo)
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠️  Generation failed (%v), using fallback profile.\n\n", err)
		profile = genai.FallbackShopProfile(shopInfo)
	}

	fmt.Printf("Shop Name: %s\n", profile.ShopName)
	fmt.Printf("Description: %s\n", profile.Description)
	fmt.Printf("Specialties: %s\n", profile.Specialties)
	fmt.Printf("Business Hours: %s\n", profile.BusinessHours)
}
