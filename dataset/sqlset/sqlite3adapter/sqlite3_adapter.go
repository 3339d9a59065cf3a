/*
Package sqlite3adapter provides an implementation of the
Adapter interface in the sqlset package that works
over a SQLite3 database file.
*/
package sqlite3adapter

import (
	"database/sql"

	"github.com/pkg/errors"
	"github.com/titigmr/cart/dataset/sqlset"

	// Import of SQLite3 driver
	_ "github.com/mattn/go-sqlite3"
)

// Dialect is the SQLite3 dialect: positional
// placeholders and an autoincremented id column.
var Dialect = sqlset.Dialect{
	Placeholder: func(int) string { return "?" },
	IDColumn:    "INTEGER PRIMARY KEY AUTOINCREMENT",
}

/*
New takes the path of a SQLite3 database file and returns an Adapter that
works on the database or an error if it cannot be opened.
*/
func New(path string) (sqlset.Adapter, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "opening SQLite3 database")
	}
	return sqlset.NewAdapter(db, Dialect), nil
}
