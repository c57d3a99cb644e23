package models

import "time"

// Roles. An empty or missing role means customer; the register flow never
// writes admin, that happens only by direct data manipulation.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

type User struct {
	UserID        string    `json:"userid" bson:"userid"`
	Username      string    `json:"username" bson:"username"`
	Email         string    `json:"email,omitempty" bson:"email,omitempty"`
	Password      string    `json:"-" bson:"password"`
	Role          string    `json:"role,omitempty" bson:"role,omitempty"`
	Name          string    `json:"name,omitempty" bson:"name,omitempty"`
	Phone         string    `json:"phone,omitempty" bson:"phone,omitempty"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	LastLogin     time.Time `json:"last_login,omitempty" bson:"last_login,omitempty"`
	RefreshToken  string    `json:"-" bson:"refresh_token,omitempty"`
	RefreshExpiry time.Time `json:"-" bson:"refresh_expiry,omitempty"`
}

// Address is one entry in a customer's address book. Free-text body, owned
// by exactly one user.
type Address struct {
	AddressID string `json:"id" bson:"addressid"`
	UserID    string `json:"userId" bson:"userId"`
	Address   string `json:"address" bson:"address"`
}
