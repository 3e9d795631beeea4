package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"

	"irrigation-plan-service/internal/adapters/catalogstore"
	"irrigation-plan-service/internal/catalog"
	"irrigation-plan-service/internal/config"
	"irrigation-plan-service/internal/platform/db"
)

// catalogtool builds the sqlite coefficient reference database from the
// embedded dataset, then reads it back to confirm the load-time contract.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	dbPath := flag.String("db", cfg.Catalog.DBPath, "sqlite reference database path")
	flag.Parse()

	conn, err := db.Open(*dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	log.Println("Initializing reference schema...")
	if err := catalogstore.InitSchema(conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	embedded, err := catalog.Default()
	if err != nil {
		log.Fatalf("loading embedded dataset failed: %v", err)
	}

	log.Println("Seeding reference tables...")
	if err := catalogstore.Seed(conn, embedded); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("Seeding complete.")

	loaded, err := catalogstore.LoadCatalog(conn)
	if err != nil {
		log.Fatalf("verification load failed: %v", err)
	}

	log.Printf("Reference database ready: %d crops, %d plant profiles", len(loaded.Crops()), len(loaded.PlantProfiles()))
	for _, name := range loaded.Crops() {
		log.Printf("  crop: %s", name)
	}
	for _, name := range loaded.PlantProfiles() {
		log.Printf("  plant profile: %s", name)
	}
}
