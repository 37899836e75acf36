package model

import "time"

type User struct {
	UserID    string    `bson:"user_id" json:"user_id"`
	Username  string    `bson:"username" json:"username" validate:"required,min=4,max=20"`
	Email     string    `bson:"email" json:"email" validate:"required,email"`
	Password  string    `bson:"password" json:"password,omitempty" validate:"required,password"`
	TeamCode  string    `bson:"team_code,omitempty" json:"team_code,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
