package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/jafarshop/catalogapi/internal/config"
	"github.com/jafarshop/catalogapi/internal/repository/postgres"
	"github.com/jafarshop/catalogapi/internal/service"
)

func main() {
	var shopURL, accessToken, collectionID string
	flag.StringVar(&shopURL, "shop-url", "", "Shopify shop URL, e.g. https://<SHOP-NAME>.myshopify.com")
	flag.StringVar(&accessToken, "access-token", "", "Shopify access token")
	flag.StringVar(&collectionID, "collection-id", "", "ID of the Shopify collection to import")
	flag.Parse()

	if shopURL == "" || accessToken == "" || collectionID == "" {
		fmt.Fprintln(os.Stderr, "Usage: import-collection -shop-url <url> -access-token <token> -collection-id <id>")
		os.Exit(1)
	}

	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	// Initialize database
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	repos := postgres.NewRepositories(db, logger)
	images := service.NewImageIngestor(repos, logger)
	importer := service.NewImportService(cfg, repos, images, logger)

	fmt.Printf("🔄 Importing collection %s from %s...\n", collectionID, shopURL)
	fmt.Println("")

	products, err := importer.ImportCollection(context.Background(), shopURL, accessToken, collectionID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Import failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Imported %d new products:\n", len(products))
	for _, p := range products {
		shopifyID := ""
		if p.ShopifyID != nil {
			shopifyID = *p.ShopifyID
		}
		fmt.Printf("  - %s (slug: %s, shopify id: %s)\n", p.Name, p.Slug, shopifyID)
	}
}
