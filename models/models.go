package models

// All returns every model in migration order
func All() []interface{} {
	return []interface{}{
		&Buyer{},
		&Seller{},
		&Machinery{},
		&Category{},
		&Order{},
		&Image{},
	}
}
