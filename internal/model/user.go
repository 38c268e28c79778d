package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// User is a registered blog account. Password holds the bcrypt hash, never the plaintext.
type User struct {
	ID       primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Email    string             `json:"email" bson:"email"`
	Username string             `json:"username" bson:"username"`
	Password string             `json:"password,omitempty" bson:"password"`
	IsAdmin  bool               `json:"isAdmin" bson:"isAdmin"`
}

// Sanitized returns a copy safe to serialize: the password hash is blanked.
func (u User) Sanitized() User {
	u.Password = ""
	return u
}
