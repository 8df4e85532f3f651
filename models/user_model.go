package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User is an account identity. Friends holds weak references to Person
// documents by id; a referenced person may be deleted independently, so
// readers must tolerate dangling ids.
type User struct {
	ID       primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Username string               `json:"username" bson:"username"`
	Friends  []primitive.ObjectID `json:"friends" bson:"friends"`
}

// IsFriend reports whether the given person id is already on the friends list.
func (u User) IsFriend(id primitive.ObjectID) bool {
	for _, friendID := range u.Friends {
		if friendID == id {
			return true
		}
	}
	return false
}
