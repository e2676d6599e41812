package postgres

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/RajParmar007/Credit-Card-Statement-Parser/extractor"
)

// ImportResult tracks the outcome of an import operation
type ImportResult struct {
	Processed int
	Skipped   int
	Failed    int
	Errors    []string
}

// ImportOptions configures the import behavior
type ImportOptions struct {
	Bank    string // Issuer key for the statements being imported
	Force   bool   // Force reprocessing of existing statements
	Verbose bool   // Enable verbose logging
}

// ImportFile parses a single statement PDF and stores it in the database.
// Statements missing the card suffix or due date are rejected: without them
// there is no natural key to deduplicate on.
func (db *DB) ImportFile(ctx context.Context, registry *extractor.Registry, filePath string, opts ImportOptions) (processed int, skipped int, failed int, errors []string) {
	fileName := filepath.Base(filePath)

	file, err := os.Open(filePath)
	if err != nil {
		return 0, 0, 1, []string{fmt.Sprintf("%s: failed to open file: %v", fileName, err)}
	}
	defer file.Close()

	record, err := registry.ParseReader(file, opts.Bank)
	if err != nil {
		return 0, 0, 1, []string{fmt.Sprintf("%s: %v", fileName, err)}
	}

	if record.Last4Digits == nil {
		return 0, 0, 1, []string{fmt.Sprintf("%s: no card suffix extracted", fileName)}
	}
	if record.DueDate == nil {
		return 0, 0, 1, []string{fmt.Sprintf("%s [%s]: no due date extracted", fileName, *record.Last4Digits)}
	}

	cardID, err := db.GetOrCreateCard(ctx, record.Issuer, *record.Last4Digits)
	if err != nil {
		return 0, 0, 1, []string{fmt.Sprintf("%s [%s]: card error: %v", fileName, *record.Last4Digits, err)}
	}

	exists, existingID, err := db.StatementExists(ctx, cardID, *record.DueDate)
	if err != nil {
		return 0, 0, 1, []string{fmt.Sprintf("%s [%s]: check error: %v", fileName, *record.Last4Digits, err)}
	}

	if exists && !opts.Force {
		if opts.Verbose {
			log.Printf("SKIP %s [%s] (already exists)", fileName, *record.Last4Digits)
		}
		return 0, 1, 0, nil
	}

	if exists && opts.Force {
		if err := db.DeleteStatement(ctx, existingID); err != nil {
			return 0, 0, 1, []string{fmt.Sprintf("%s [%s]: delete error: %v", fileName, *record.Last4Digits, err)}
		}
	}

	source := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	statementID, err := db.CreateStatement(ctx, cardID, source, record)
	if err != nil {
		return 0, 0, 1, []string{fmt.Sprintf("%s [%s]: statement error: %v", fileName, *record.Last4Digits, err)}
	}

	if err := db.CreateTransactions(ctx, statementID, record.Transactions); err != nil {
		// Rollback by deleting the statement
		_ = db.DeleteStatement(ctx, statementID)
		return 0, 0, 1, []string{fmt.Sprintf("%s [%s]: transactions error: %v", fileName, *record.Last4Digits, err)}
	}

	if opts.Verbose {
		log.Printf("OK   %s [%s] (%d transactions)", fileName, *record.Last4Digits, len(record.Transactions))
	}
	return 1, 0, 0, nil
}

// ImportDirectory parses all PDF files in a directory
func (db *DB) ImportDirectory(ctx context.Context, registry *extractor.Registry, dirPath string, opts ImportOptions) (*ImportResult, error) {
	result := &ImportResult{}

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var pdfFiles []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(e.Name()), ".pdf") {
			pdfFiles = append(pdfFiles, filepath.Join(dirPath, e.Name()))
		}
	}

	log.Printf("Scanning: %s", dirPath)
	log.Printf("Found %d PDF files\n", len(pdfFiles))

	for _, filePath := range pdfFiles {
		processed, skipped, failed, errors := db.ImportFile(ctx, registry, filePath, opts)

		result.Processed += processed
		result.Skipped += skipped
		result.Failed += failed
		result.Errors = append(result.Errors, errors...)

		if opts.Verbose && failed > 0 {
			for _, errMsg := range errors {
				log.Printf("FAIL %s", errMsg)
			}
		}
	}

	return result, nil
}

// Import handles both file and directory imports
func (db *DB) Import(ctx context.Context, registry *extractor.Registry, path string, opts ImportOptions) (*ImportResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat path: %w", err)
	}

	if info.IsDir() {
		return db.ImportDirectory(ctx, registry, path, opts)
	}

	result := &ImportResult{}
	processed, skipped, failed, errors := db.ImportFile(ctx, registry, path, opts)

	result.Processed = processed
	result.Skipped = skipped
	result.Failed = failed
	result.Errors = errors

	return result, nil
}
