// Package efficiencydb implements the optional per-run override of b-tag
// efficiency formulas from a MySQL table, generalizing the teacher's
// per-run Huffman-code override (database.go's getHuffmanCodesFromDB) from
// sensor calibration to physics calibration constants.
package efficiencydb

import (
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

// Connect opens a MySQL connection via the given DSN, the same
// sqlx.Connect("mysql", dsn) call the teacher's ConnectToDatabase makes.
func Connect(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("efficiencydb: connect: %w", err)
	}
	return db, nil
}

// row mirrors one BTagEfficiency table row: an efficiency formula string
// for one absolute-PID flavour, valid over a closed run-number range.
type row struct {
	Flavour int32  `db:"flavour"`
	MinRun  int    `db:"min_run"`
	MaxRun  int    `db:"max_run"`
	Formula string `db:"formula"`
}

// LoadFormulas returns the flavour -> formula-string overrides covering
// runNumber, keyed by |PID| the same way btag.Module.efficiency is keyed.
// Following the teacher's getHuffmanCodesFromDB query shape
// (MinRun <= ? AND MaxRun >= ?), but via a parameterized query rather than
// the teacher's Sprintf-built one.
func LoadFormulas(db *sqlx.DB, runNumber int) (map[int32]string, error) {
	const query = `SELECT flavour, min_run, max_run, formula FROM BTagEfficiency WHERE min_run <= ? AND max_run >= ?`

	rows, err := db.Queryx(query, runNumber, runNumber)
	if err != nil {
		return nil, fmt.Errorf("efficiencydb: query: %w", err)
	}
	defer rows.Close()

	out := make(map[int32]string)
	for rows.Next() {
		var r row
		if err := rows.StructScan(&r); err != nil {
			return nil, fmt.Errorf("efficiencydb: scan: %w", err)
		}
		out[r.Flavour] = r.Formula
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("efficiencydb: rows: %w", err)
	}
	return out, nil
}
