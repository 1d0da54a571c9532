//go:build !cgo

package storage

import _ "modernc.org/sqlite"

// DriverName is the database/sql driver used to open the store.
const DriverName = "sqlite"
