//go:build cgo

package storage

import _ "github.com/mattn/go-sqlite3"

// DriverName is the database/sql driver used to open the store.
const DriverName = "sqlite3"
