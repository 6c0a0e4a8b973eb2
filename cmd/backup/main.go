package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"rewardsprint/internal/config"
	"rewardsprint/internal/service"
	"rewardsprint/internal/storage"
)

func main() {
	// Define subcommands
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	importCmd := flag.NewFlagSet("import", flag.ExitOnError)
	resetCmd := flag.NewFlagSet("reset", flag.ExitOnError)

	// Export flags
	exportOutput := exportCmd.String("output", "", "Output file path (default: backup_YYYYMMDD_HHMMSS.json)")

	// Import flags
	importInput := importCmd.String("input", "", "Input file path (required)")
	importYes := importCmd.Bool("yes", false, "Replace existing state without asking")

	// Reset flags
	resetYes := resetCmd.Bool("yes", false, "Delete the state without asking")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg := config.Load()
	ctx := context.Background()

	store, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open %s storage: %v", cfg.StorageDriver, err)
	}
	defer store.Close()

	backupService := service.NewBackupService(store, cfg.StorageKey)

	switch os.Args[1] {
	case "export":
		exportCmd.Parse(os.Args[2:])
		handleExport(ctx, backupService, *exportOutput)

	case "import":
		importCmd.Parse(os.Args[2:])
		if *importInput == "" {
			fmt.Println("Error: -input flag is required")
			importCmd.PrintDefaults()
			os.Exit(1)
		}
		handleImport(ctx, backupService, store, cfg.StorageKey, *importInput, *importYes)

	case "reset":
		resetCmd.Parse(os.Args[2:])
		handleReset(ctx, backupService, *resetYes)

	default:
		printUsage()
		os.Exit(1)
	}
}

func handleExport(ctx context.Context, backupService *service.BackupService, outputPath string) {
	// Generate default filename if not provided
	if outputPath == "" {
		timestamp := time.Now().Format("20060102_150405")
		outputPath = fmt.Sprintf("backup_%s.json", timestamp)
	}

	dir := filepath.Dir(outputPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create output directory: %v", err)
		}
	}

	log.Printf("Exporting state to: %s", outputPath)
	if err := backupService.Export(ctx, outputPath); err != nil {
		log.Fatalf("Export failed: %v", err)
	}

	fileInfo, _ := os.Stat(outputPath)
	log.Printf("Export complete! File size: %.2f KB", float64(fileInfo.Size())/1024)
}

func handleImport(ctx context.Context, backupService *service.BackupService, store storage.Storage, key, inputPath string, skipConfirm bool) {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		log.Fatalf("Input file does not exist: %s", inputPath)
	}

	_, exists, err := store.Get(ctx, key)
	if err != nil {
		log.Fatalf("Failed to read current state: %v", err)
	}
	if exists && !skipConfirm {
		fmt.Print("WARNING: This will replace the existing family data. Type 'yes' to confirm: ")
		var confirmation string
		fmt.Scanln(&confirmation)
		if confirmation != "yes" {
			log.Println("Import cancelled")
			return
		}
	}

	log.Printf("Importing state from: %s", inputPath)
	if err := backupService.Import(ctx, inputPath); err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	log.Println("Import complete! Restart the server to load it.")
}

func handleReset(ctx context.Context, backupService *service.BackupService, skipConfirm bool) {
	if !skipConfirm {
		fmt.Print("WARNING: This will delete all family data. Type 'yes' to confirm: ")
		var confirmation string
		fmt.Scanln(&confirmation)
		if confirmation != "yes" {
			log.Println("Reset cancelled")
			return
		}
	}

	if err := backupService.Reset(ctx); err != nil {
		log.Fatalf("Reset failed: %v", err)
	}
	log.Println("Reset complete! Restart the server to start fresh.")
}

func printUsage() {
	fmt.Println("RewardSprint Backup Tool")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  backup export [options]    Export the persisted state to a JSON file")
	fmt.Println("  backup import [options]    Replace the persisted state from a JSON file")
	fmt.Println("  backup reset [-yes]        Delete the persisted state")
	fmt.Println()
	fmt.Println("Export Options:")
	fmt.Println("  -output <file>    Output file path (default: backup_YYYYMMDD_HHMMSS.json)")
	fmt.Println()
	fmt.Println("Import Options:")
	fmt.Println("  -input <file>     Input file path (required)")
	fmt.Println("  -yes              Replace existing state without asking")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  STORAGE_DRIVER   memory, file, sqlite, postgres, mysql, redis or s3 (default: sqlite)")
	fmt.Println("  STORAGE_KEY      Key holding the state (default: rewardsprint-storage)")
	fmt.Println("  DB_PATH          SQLite database path (default: ./rewardsprint.db)")
	fmt.Println("  DATABASE_URL     PostgreSQL or MySQL connection URL")
}
