// Command importer loads a JSON file of raw video records into the catalogue,
// printing progress and a per-row failure report.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/vplaza/catalogue-service-go/internal/config"
	"github.com/vplaza/catalogue-service-go/internal/db"
	"github.com/vplaza/catalogue-service-go/internal/db/repository"
	"github.com/vplaza/catalogue-service-go/internal/importer"
	"github.com/vplaza/catalogue-service-go/pkg/logger"
)

func main() {
	var filePath string
	flag.StringVar(&filePath, "file", "", "Path to the JSON import file (array of records or a single object)")
	flag.Parse()

	if filePath == "" {
		fmt.Fprintln(os.Stderr, "usage: importer -file <records.json>")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	file, err := os.Open(filePath)
	if err != nil {
		logger.Log.Fatal("failed to open import file", zap.Error(err))
	}
	defer file.Close()

	records, err := importer.ReadRecords(file)
	if err != nil {
		logger.Log.Fatal("failed to parse import file", zap.Error(err))
	}

	ctx := context.Background()

	pool, err := db.NewPool(ctx, &db.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Name,
		SSLMode:         cfg.Database.SSLMode,
		MaxConns:        int32(cfg.Database.MaxConnections),
		MinConns:        int32(cfg.Database.MinConnections),
		MaxConnLifetime: cfg.Database.MaxLifetime,
		MaxConnIdleTime: cfg.Database.MaxIdleTime,
	})
	if err != nil {
		logger.Log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close(pool)

	imp := importer.New(repository.NewVideoRepository(pool))

	result := imp.Run(ctx, records, func(processed, total int) {
		fmt.Printf("\rImporting %d/%d", processed, total)
	})
	fmt.Println()

	fmt.Printf("Imported: %d, Failed: %d\n", result.Success, result.Failed)
	for _, message := range result.Errors {
		fmt.Println(message)
	}

	if result.Failed > 0 {
		os.Exit(1)
	}
}
