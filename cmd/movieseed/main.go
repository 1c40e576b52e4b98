package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	"gorm.io/gorm"

	"watchlist/pkg/config"
	"watchlist/postgres"
)

// Seeds the collection from a CSV with a
// title,year,description,img_url,rating,review header. Rating and review may
// be empty for entries not rated yet.
func main() {
	var (
		csvPath string
		limit   int
	)

	flag.StringVar(&csvPath, "csv", "", "Path to the movies CSV (required)")
	flag.IntVar(&limit, "limit", 0, "Limit number of rows to import (0 = all)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if csvPath == "" {
		slog.Error("missing required -csv flag")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("load config failed", "error", err)
		os.Exit(1)
	}

	db, err := postgres.NewConnection(postgres.Options{
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     fmt.Sprintf("%d", cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,
	})
	if err != nil {
		slog.Error("cannot open postgres connection", "error", err)
		os.Exit(1)
	}

	count, err := importMovies(context.Background(), db, csvPath, limit)
	if err != nil {
		slog.Error("import failed", "error", err)
		os.Exit(1)
	}

	slog.Info("import completed", "rows", count)
}

func importMovies(ctx context.Context, db *gorm.DB, csvPath string, limit int) (int, error) {
	file, err := os.Open(csvPath)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	columns, err := parseSeedHeader(reader)
	if err != nil {
		return 0, err
	}

	stmt := `
INSERT INTO movies (title, year, description, img_url, rating, review)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (title) DO UPDATE SET
	year = EXCLUDED.year,
	description = EXCLUDED.description,
	img_url = EXCLUDED.img_url,
	rating = EXCLUDED.rating,
	review = EXCLUDED.review
`

	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return 0, tx.Error
	}

	count := 0
	for limit <= 0 || count < limit {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			_ = tx.Rollback()
			return count, err
		}

		row, ok := parseSeedRecord(record, columns)
		if !ok {
			continue
		}

		if err := tx.Exec(stmt, row.title, row.year, row.description, row.imgURL, row.rating, row.review).Error; err != nil {
			_ = tx.Rollback()
			return count, err
		}

		count++
	}

	if err := tx.Commit().Error; err != nil {
		return count, err
	}

	return count, nil
}

type seedColumns struct {
	title, year, description, imgURL, rating, review int
}

type seedRow struct {
	title       string
	year        int
	description string
	imgURL      string
	rating      *float64
	review      *string
}

func parseSeedHeader(reader *csv.Reader) (seedColumns, error) {
	header, err := reader.Read()
	if err != nil {
		return seedColumns{}, err
	}

	columns := seedColumns{title: -1, year: -1, description: -1, imgURL: -1, rating: -1, review: -1}
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case "title":
			columns.title = i
		case "year":
			columns.year = i
		case "description":
			columns.description = i
		case "img_url":
			columns.imgURL = i
		case "rating":
			columns.rating = i
		case "review":
			columns.review = i
		}
	}
	if columns.title == -1 || columns.year == -1 || columns.description == -1 || columns.imgURL == -1 {
		return seedColumns{}, errors.New("missing required columns in csv header")
	}

	return columns, nil
}

func parseSeedRecord(record []string, columns seedColumns) (seedRow, bool) {
	field := func(idx int) string {
		if idx < 0 || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	row := seedRow{
		title:       field(columns.title),
		description: field(columns.description),
		imgURL:      field(columns.imgURL),
	}
	if row.title == "" || row.description == "" || row.imgURL == "" {
		return seedRow{}, false
	}

	year, err := strconv.Atoi(field(columns.year))
	if err != nil {
		return seedRow{}, false
	}
	row.year = year

	if raw := field(columns.rating); raw != "" {
		rating, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return seedRow{}, false
		}
		row.rating = &rating
	}
	if raw := field(columns.review); raw != "" {
		row.review = &raw
	}

	return row, true
}
