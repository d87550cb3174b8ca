package database

import (
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// CatalogStats summarizes the catalog for dashboard-style consumers.
type CatalogStats struct {
	TotalImages    int64            `json:"total_images"`
	ByFormat       map[string]int64 `json:"by_format"`
	ImagesPerGroup []GroupCount     `json:"images_per_category"`
	ImagesPerPlace []GroupCount     `json:"images_per_location"`
}

// GroupCount pairs an entity name with the number of images referencing it.
type GroupCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// CollectStats runs the reporting queries against the catalog's underlying
// sql.DB. These are read-only aggregates over the same rows the
// repositories write; there is no cache layer in between.
func CollectStats(db *gorm.DB) (*CatalogStats, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB for stats: %w", err)
	}

	stats := &CatalogStats{ByFormat: make(map[string]int64)}

	totalQuery := psql.Select("COUNT(*)").From("images")
	sqlStr, args, err := totalQuery.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build total image count query: %w", err)
	}
	if err := sqlDB.QueryRow(sqlStr, args...).Scan(&stats.TotalImages); err != nil {
		return nil, fmt.Errorf("failed to count images: %w", err)
	}

	formatQuery := psql.Select("file_type", "COUNT(*)").
		From("images").
		GroupBy("file_type")
	if err := collectPairs(sqlDB, formatQuery, func(name string, count int64) {
		stats.ByFormat[name] = count
	}); err != nil {
		return nil, fmt.Errorf("failed to count images per format: %w", err)
	}

	categoryQuery := psql.Select("c.name", "COUNT(i.id)").
		From("categories c").
		LeftJoin("images i ON i.category_id = c.id").
		GroupBy("c.id").
		OrderBy("c.name ASC")
	if err := collectPairs(sqlDB, categoryQuery, func(name string, count int64) {
		stats.ImagesPerGroup = append(stats.ImagesPerGroup, GroupCount{Name: name, Count: count})
	}); err != nil {
		return nil, fmt.Errorf("failed to count images per category: %w", err)
	}

	locationQuery := psql.Select("l.name", "COUNT(il.image_id)").
		From("locations l").
		LeftJoin("images_locations il ON il.location_id = l.id").
		GroupBy("l.id").
		OrderBy("l.name ASC")
	if err := collectPairs(sqlDB, locationQuery, func(name string, count int64) {
		stats.ImagesPerPlace = append(stats.ImagesPerPlace, GroupCount{Name: name, Count: count})
	}); err != nil {
		return nil, fmt.Errorf("failed to count images per location: %w", err)
	}

	return stats, nil
}

func collectPairs(db *sql.DB, builder sq.SelectBuilder, emit func(name string, count int64)) error {
	sqlStr, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build stats query: %w", err)
	}

	rows, err := db.Query(sqlStr, args...)
	if err != nil {
		return fmt.Errorf("failed to run stats query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		var count int64
		if err := rows.Scan(&name, &count); err != nil {
			return fmt.Errorf("failed to scan stats row: %w", err)
		}
		emit(name, count)
	}
	return rows.Err()
}
