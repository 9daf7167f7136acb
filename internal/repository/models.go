package repository

// Models lists every table for AutoMigrate, parents first.
func Models() []any {
	return []any{
		&userModel{},
		&roomModel{},
		&guestModel{},
		&bookingModel{},
		&paymentModel{},
	}
}
