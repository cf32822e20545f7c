package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"hanzidrill/internal/config"
	"hanzidrill/internal/database"
	"hanzidrill/internal/importer"
	"hanzidrill/internal/models"
	"hanzidrill/internal/repository"
	"hanzidrill/internal/review"
	"hanzidrill/internal/service"
	"hanzidrill/internal/validation"
)

func main() {
	// Define subcommands
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	importCmd := flag.NewFlagSet("import", flag.ExitOnError)
	sheetCmd := flag.NewFlagSet("import-sheet", flag.ExitOnError)

	// Export flags
	exportOutput := exportCmd.String("output", "", "Output file path (default: characters_YYYYMMDD_HHMMSS.csv)")

	// Import flags
	importInput := importCmd.String("input", "", "Input CSV file path (required)")
	importReplace := importCmd.Bool("replace", false, "Replace existing data with the snapshot (WARNING: destructive)")

	// Sheet import flags
	sheetInput := sheetCmd.String("input", "", "Input xlsx or CSV sheet path (required)")
	sheetSet := sheetCmd.Int("set", 0, "Set number to import into")
	sheetSchema := sheetCmd.String("schema", "tally", "Progress schema for new characters: tally or perday")
	sheetLearned := sheetCmd.String("learned", "", "Learned date for new characters (YYYY-MM-DD, optional)")
	sheetName := sheetCmd.String("sheet", "Sheet1", "Worksheet name (xlsx only)")
	sheetStartRow := sheetCmd.Int("start-row", 2, "First data row (1-based)")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations to ensure schema is up to date
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	characterRepo := repository.NewCharacterRepository(db)
	backupService := service.NewBackupService(characterRepo, review.DefaultLadder)

	switch os.Args[1] {
	case "export":
		exportCmd.Parse(os.Args[2:])
		handleExport(backupService, *exportOutput)

	case "import":
		importCmd.Parse(os.Args[2:])
		if *importInput == "" {
			fmt.Println("Error: -input flag is required")
			importCmd.PrintDefaults()
			os.Exit(1)
		}
		handleImport(backupService, *importInput, *importReplace)

	case "import-sheet":
		sheetCmd.Parse(os.Args[2:])
		if *sheetInput == "" {
			fmt.Println("Error: -input flag is required")
			sheetCmd.PrintDefaults()
			os.Exit(1)
		}
		characterService := service.NewCharacterService(characterRepo)
		handleSheetImport(characterService, *sheetInput, *sheetSet, *sheetSchema, *sheetLearned, *sheetName, *sheetStartRow)

	default:
		printUsage()
		os.Exit(1)
	}
}

func handleExport(backupService *service.BackupService, outputPath string) {
	if outputPath == "" {
		timestamp := time.Now().Format("20060102_150405")
		outputPath = fmt.Sprintf("characters_%s.csv", timestamp)
	}

	dir := filepath.Dir(outputPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create output directory: %v", err)
		}
	}

	log.Printf("Exporting characters to: %s", outputPath)
	if err := backupService.ExportFile(outputPath); err != nil {
		log.Fatalf("Export failed: %v", err)
	}

	fileInfo, _ := os.Stat(outputPath)
	log.Printf("Export complete! File size: %d bytes", fileInfo.Size())
}

func handleImport(backupService *service.BackupService, inputPath string, replace bool) {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		log.Fatalf("Input file does not exist: %s", inputPath)
	}

	if replace {
		fmt.Print("WARNING: This will delete all existing characters. Type 'yes' to confirm: ")
		var confirmation string
		fmt.Scanln(&confirmation)
		if confirmation != "yes" {
			log.Println("Import cancelled")
			return
		}
	}

	log.Printf("Importing characters from: %s", inputPath)
	count, err := backupService.ImportFile(inputPath, replace)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	log.Printf("Import complete! %d characters loaded", count)
}

func handleSheetImport(characterService *service.CharacterService, inputPath string, setNr int, schema, learned, sheetName string, startRow int) {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		log.Fatalf("Input file does not exist: %s", inputPath)
	}

	cfg := importer.DefaultConfig()
	cfg.FilePath = inputPath
	cfg.SetNr = setNr
	cfg.Schema = models.ProgressSchema(schema)
	cfg.SheetName = sheetName
	cfg.StartRow = startRow

	if learned != "" {
		t, err := validation.ParseDate(learned)
		if err != nil {
			log.Fatalf("Invalid -learned date: %v", err)
		}
		cfg.LearnedDate = &t
	}

	log.Printf("Importing sheet %s into set %d", inputPath, setNr)
	result, err := importer.New(characterService).ImportSheet(cfg)
	if err != nil {
		log.Fatalf("Sheet import failed: %v", err)
	}

	log.Printf("Sheet import complete! processed=%d created=%d skipped=%d",
		result.TotalProcessed, result.Created, result.Skipped)
	for _, msg := range result.Errors {
		log.Printf("  %s", msg)
	}
}

func printUsage() {
	fmt.Println("HanziDrill Backup Tool")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  backup export [options]          Export characters to a CSV snapshot")
	fmt.Println("  backup import [options]          Import characters from a CSV snapshot")
	fmt.Println("  backup import-sheet [options]    Import a character sheet (xlsx or CSV) into a set")
	fmt.Println()
	fmt.Println("Export Options:")
	fmt.Println("  -output <file>    Output file path (default: characters_YYYYMMDD_HHMMSS.csv)")
	fmt.Println()
	fmt.Println("Import Options:")
	fmt.Println("  -input <file>     Input file path (required)")
	fmt.Println("  -replace          Replace existing data with the snapshot (WARNING: destructive)")
	fmt.Println()
	fmt.Println("Sheet Import Options:")
	fmt.Println("  -input <file>     Input sheet path (required)")
	fmt.Println("  -set <n>          Set number to import into")
	fmt.Println("  -schema <name>    Progress schema for new characters: tally or perday")
	fmt.Println("  -learned <date>   Learned date for new characters (YYYY-MM-DD)")
	fmt.Println("  -sheet <name>     Worksheet name (xlsx only, default: Sheet1)")
	fmt.Println("  -start-row <n>    First data row, 1-based (default: 2)")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  DATABASE_TYPE    Database type: sqlite, postgres, or mysql (default: sqlite)")
	fmt.Println("  DB_PATH          SQLite database path (default: ./hanzidrill.db)")
	fmt.Println("  DATABASE_URL     PostgreSQL or MySQL connection URL")
}
