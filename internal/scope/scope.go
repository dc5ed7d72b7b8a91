package scope

import "gorm.io/gorm"

// Department filters on an exact department match. Empty means no filter.
func Department(department string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if department == "" {
			return db
		}
		return db.Where("department = ?", department)
	}
}

// Status filters on an exact status match. Empty means no filter.
func Status(status string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if status == "" {
			return db
		}
		return db.Where("status = ?", status)
	}
}

// Search matches the term case-insensitively against name, email,
// position and department. Empty means no filter.
func Search(term string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if term == "" {
			return db
		}
		pattern := "%" + term + "%"
		return db.Where(
			"name ILIKE ? OR email ILIKE ? OR position ILIKE ? OR department ILIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}
}
