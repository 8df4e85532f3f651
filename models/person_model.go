package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Person is a phonebook contact. Phone is optional: an empty string means
// the contact has no number and the field is omitted from the stored document.
type Person struct {
	ID     primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name   string             `json:"name" bson:"name"`
	Phone  string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Street string             `json:"street" bson:"street"`
	City   string             `json:"city" bson:"city"`
}

// Address is a read-time view over a person's street and city. It is never
// stored as its own document.
type Address struct {
	Street string `json:"street"`
	City   string `json:"city"`
}

func (p Person) Address() Address {
	return Address{Street: p.Street, City: p.City}
}

// HasPhone reports whether the contact has a phone number on record.
func (p Person) HasPhone() bool {
	return p.Phone != ""
}
