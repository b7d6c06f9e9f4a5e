package db

import (
	"database/sql"
	"fmt"

	"github.com/banshee-data/apt.report/internal/spectrum"
)

// SaveRangeSet stores (or replaces) a named set of mass ranges. The
// set is validated before anything is written.
func (db *DB) SaveRangeSet(rs *spectrum.RangeSet) error {
	if rs.Name == "" {
		return fmt.Errorf("range set needs a name")
	}
	if err := rs.Validate(); err != nil {
		return fmt.Errorf("invalid range set %q: %w", rs.Name, err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM mass_ranges WHERE set_name = ?`, rs.Name); err != nil {
		return fmt.Errorf("failed to clear old ranges: %w", err)
	}
	if _, err := tx.Exec(`INSERT OR REPLACE INTO mass_range_sets (set_name) VALUES (?)`, rs.Name); err != nil {
		return fmt.Errorf("failed to upsert range set: %w", err)
	}
	for _, r := range rs.Ranges {
		if _, err := tx.Exec(`INSERT INTO mass_ranges (set_name, ion, lo, hi) VALUES (?, ?, ?, ?)`,
			rs.Name, r.Ion, r.Lo, r.Hi); err != nil {
			return fmt.Errorf("failed to insert range %s: %w", r.Ion, err)
		}
	}
	return tx.Commit()
}

// LoadRangeSet returns a stored range set by name.
func (db *DB) LoadRangeSet(name string) (*spectrum.RangeSet, error) {
	var stored string
	err := db.QueryRow(`SELECT set_name FROM mass_range_sets WHERE set_name = ?`, name).Scan(&stored)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("range set %q not found", name)
	}
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(`SELECT ion, lo, hi FROM mass_ranges WHERE set_name = ? ORDER BY lo`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rs := &spectrum.RangeSet{Name: name}
	for rows.Next() {
		var r spectrum.Range
		if err := rows.Scan(&r.Ion, &r.Lo, &r.Hi); err != nil {
			return nil, err
		}
		rs.Ranges = append(rs.Ranges, r)
	}
	return rs, rows.Err()
}

// ListRangeSets returns the stored range set names.
func (db *DB) ListRangeSets() ([]string, error) {
	rows, err := db.Query(`SELECT set_name FROM mass_range_sets ORDER BY set_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
