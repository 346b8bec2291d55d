// Package tenant membatasi query gorm ke satu perusahaan.
package tenant

import "gorm.io/gorm"

// Scope menambahkan filter company_id tanpa prefix tabel.
// Gunakan ScopeTable untuk query yang memakai JOIN.
func Scope(companyID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("company_id = ?", companyID)
	}
}

func ScopeTable(table, companyID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(table+".company_id = ?", companyID)
	}
}
