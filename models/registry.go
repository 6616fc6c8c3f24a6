package models

// All lists the tables in parent -> child order for AutoMigrate.
func All() []any {
	return []any{
		&User{},
		&Room{},
		&Booking{},
		&Payment{},
		&WishlistItem{},
		&Review{},
	}
}
