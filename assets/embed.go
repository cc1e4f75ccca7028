package assets

import (
	"embed"
	"io/fs"
)

//go:embed sql/*.sql
var sqlFS embed.FS

// Migrations returns the SQL migrations rooted at their directory, so
// entries are named like "001_round_results.sql".
func Migrations() fs.FS {
	sub, err := fs.Sub(sqlFS, "sql")
	if err != nil {
		// fs.Sub only fails on an invalid path, and "sql" is valid.
		panic(err)
	}
	return sub
}
