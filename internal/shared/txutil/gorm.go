package txutil

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// Conn mengembalikan session gorm yang ikut transaksi tx bila tx tidak nil,
// sehingga repository berbasis gorm bisa berbagi transaksi *sql.Tx milik service.
func Conn(ctx context.Context, db *gorm.DB, tx *sql.Tx) *gorm.DB {
	session := db.WithContext(ctx)
	if tx != nil {
		session.Statement.ConnPool = tx
	}
	return session
}
