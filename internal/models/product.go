package models

import "time"

// Product represents a catalog entry in the store.
type Product struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	Price     float64   `json:"price" gorm:"not null"`
	Photo     *string   `json:"photo"`
	IsPromo   bool      `json:"is_promo" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateProductInput is the accepted body for creating a product.
// Pointers distinguish an absent field from a zero value.
type CreateProductInput struct {
	Name    *string  `json:"name" validate:"required,min=1,max=255"`
	Price   *float64 `json:"price" validate:"required,gte=0"`
	Photo   *string  `json:"photo"`
	IsPromo *bool    `json:"is_promo" validate:"required"`
}

// Product builds the entity to insert. Call only after validation.
// An empty photo is stored as null.
func (in CreateProductInput) Product() *Product {
	photo := in.Photo
	if photo != nil && *photo == "" {
		photo = nil
	}
	return &Product{
		Name:    *in.Name,
		Price:   *in.Price,
		Photo:   photo,
		IsPromo: *in.IsPromo,
	}
}

// UpdateProductInput is the accepted body for a partial update.
// Absent fields are left untouched.
type UpdateProductInput struct {
	Name    *string  `json:"name" validate:"omitempty,min=1,max=255"`
	Price   *float64 `json:"price" validate:"omitempty,gte=0"`
	Photo   *string  `json:"photo" validate:"omitempty,min=1"`
	IsPromo *bool    `json:"is_promo"`
}

// Fields returns the column set to update, keyed by column name.
func (in UpdateProductInput) Fields() map[string]interface{} {
	fields := make(map[string]interface{}, 4)
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Price != nil {
		fields["price"] = *in.Price
	}
	if in.Photo != nil {
		fields["photo"] = *in.Photo
	}
	if in.IsPromo != nil {
		fields["is_promo"] = *in.IsPromo
	}
	return fields
}
