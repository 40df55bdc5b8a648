package entity

// Models lists every table in migration order.
func Models() []any {
	return []any{
		&User{},
		&Customer{},
		&Admin{},
		&Collection{},
		&Product{},
		&ProductImage{},
		&Review{},
		&Cart{},
		&CartItem{},
		&Order{},
		&OrderItem{},
	}
}
