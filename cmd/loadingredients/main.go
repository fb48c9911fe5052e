package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"

	"github.com/foodgramapp/foodgram-backend/internal/cache"
	"github.com/foodgramapp/foodgram-backend/internal/db"
	"github.com/foodgramapp/foodgram-backend/internal/logger"
	"github.com/foodgramapp/foodgram-backend/internal/repos"
	"github.com/foodgramapp/foodgram-backend/internal/services"
	"github.com/foodgramapp/foodgram-backend/internal/types"
)

// loadingredients bulk-loads the ingredient catalog from a CSV of
// "name,measurement_unit" rows.
func main() {
	_ = godotenv.Load()

	path := flag.String("file", "data/ingredients.csv", "path to the ingredients CSV")
	flag.Parse()

	log, err := logger.New(os.Getenv("LOG_MODE"))
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Fatal("Postgres init failed", "error", err)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		log.Fatal("Postgres automigrate failed", "error", err)
	}

	ingredientRepo := repos.NewIngredientRepo(pg.DB(), log)
	ingredientService := services.NewIngredientService(pg.DB(), log, ingredientRepo, cache.New(os.Getenv("REDIS_ADDR"), log))

	file, err := os.Open(*path)
	if err != nil {
		log.Fatal("Could not open CSV file", "path", *path, "error", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = 2

	var batch []*types.Ingredient
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatal("Could not read CSV row", "error", err)
		}
		batch = append(batch, &types.Ingredient{
			Name:            record[0],
			MeasurementUnit: record[1],
		})
	}

	ctx := context.Background()
	created, err := ingredientService.Create(ctx, batch)
	if err != nil {
		log.Fatal("Ingredient load failed", "error", err)
	}
	log.Info("Ingredient catalog loaded", "path", *path, "count", len(created))
}
