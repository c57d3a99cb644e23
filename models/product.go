package models

// Product is a catalog entry. Storefront code treats products as read-only;
// only the admin panel creates or deletes them.
type Product struct {
	ProductID   string   `json:"id" bson:"productid"`
	Name        string   `json:"name" bson:"name"`
	Category    string   `json:"category" bson:"category"`
	Price       float64  `json:"price" bson:"price"`
	Image       string   `json:"image" bson:"image"`
	Description string   `json:"description,omitempty" bson:"description,omitempty"`
	Colors      []string `json:"colors,omitempty" bson:"colors,omitempty"`
	Sizes       []string `json:"sizes,omitempty" bson:"sizes,omitempty"`
}
