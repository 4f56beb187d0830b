package database

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ColumnInfo describes one live table column. Field and Type are lower-cased.
type ColumnInfo struct {
	Field   string `json:"field"`
	Type    string `json:"type"`
	Null    bool   `json:"null"`
	Primary bool   `json:"primary"`
}

// GetTableColumns retrieves the column definitions for a given table.
// A missing table yields no columns on sqlite.
func GetTableColumns(db *gorm.DB, tableName string) ([]ColumnInfo, error) {
	if db.Dialector.Name() == DriverSQLite {
		return sqliteColumns(db, tableName)
	}
	return mysqlColumns(db, tableName)
}

func sqliteColumns(db *gorm.DB, tableName string) ([]ColumnInfo, error) {
	type pragmaColumn struct {
		Cid     int
		Name    string
		Type    string
		Notnull int
		Pk      int
	}
	var rows []pragmaColumn
	if err := db.Raw(fmt.Sprintf("PRAGMA table_info('%s')", tableName)).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
	}

	columns := make([]ColumnInfo, 0, len(rows))
	for _, r := range rows {
		columns = append(columns, ColumnInfo{
			Field:   strings.ToLower(r.Name),
			Type:    strings.ToLower(r.Type),
			Null:    r.Notnull == 0,
			Primary: r.Pk > 0,
		})
	}
	return columns, nil
}

func mysqlColumns(db *gorm.DB, tableName string) ([]ColumnInfo, error) {
	// Field names match the SHOW COLUMNS result set.
	type showColumn struct {
		Field string
		Type  string
		Null  string
		Key   string
	}
	var rows []showColumn
	if err := db.Raw(fmt.Sprintf("SHOW COLUMNS FROM `%s`", tableName)).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
	}

	columns := make([]ColumnInfo, 0, len(rows))
	for _, r := range rows {
		columns = append(columns, ColumnInfo{
			Field:   strings.ToLower(r.Field),
			Type:    strings.ToLower(r.Type),
			Null:    strings.EqualFold(r.Null, "YES"),
			Primary: r.Key == "PRI",
		})
	}
	return columns, nil
}
