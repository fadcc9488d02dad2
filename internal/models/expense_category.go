package models

import (
	"gorm.io/gorm"
)

// ExpenseCategory is a system wide category for expenses. Categories are
// seeded during migration and read only for users, they are not owned by
// anyone.
type ExpenseCategory struct {
	DefaultModel
	Slug        string `gorm:"uniqueIndex:expense_category_slug"`
	Name        string
	DisplayName string
}

// defaultExpenseCategories returns the categories every instance ships with.
func defaultExpenseCategories() []ExpenseCategory {
	return []ExpenseCategory{
		{Slug: "groceries", Name: "groceries", DisplayName: "Groceries"},
		{Slug: "dining", Name: "dining", DisplayName: "Dining & Takeout"},
		{Slug: "transport", Name: "transport", DisplayName: "Transport"},
		{Slug: "housing", Name: "housing", DisplayName: "Housing & Rent"},
		{Slug: "utilities", Name: "utilities", DisplayName: "Utilities"},
		{Slug: "health", Name: "health", DisplayName: "Health"},
		{Slug: "entertainment", Name: "entertainment", DisplayName: "Entertainment"},
		{Slug: "travel", Name: "travel", DisplayName: "Travel"},
		{Slug: "shopping", Name: "shopping", DisplayName: "Shopping"},
		{Slug: "other", Name: "other", DisplayName: "Other"},
	}
}

// seedExpenseCategories inserts the default categories if they do not exist
// yet. Seeding runs on every startup and is idempotent.
func seedExpenseCategories(db *gorm.DB) error {
	for _, category := range defaultExpenseCategories() {
		var count int64
		err := db.Model(&ExpenseCategory{}).Where("slug = ?", category.Slug).Count(&count).Error
		if err != nil {
			return err
		}

		if count > 0 {
			continue
		}

		err = db.Create(&category).Error
		if err != nil {
			return err
		}
	}

	return nil
}
