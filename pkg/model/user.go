package model

type User struct {
	ID       int64  `json:"id" bson:"_id"`
	Name     string `json:"name" bson:"name"`
	Email    string `json:"email" bson:"email"`
	EmailKey string `json:"-" bson:"email_key"`
}

type UserCreate struct {
	Name  string `json:"name" validate:"required,max=255"`
	Email string `json:"email" validate:"required,email,max=512"`
}

// UserUpdate carries a partial update. Nil fields are left untouched.
type UserUpdate struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Email *string `json:"email,omitempty" validate:"omitempty,email,max=512"`
}

// UserShort is the booker as shown inside a booking.
type UserShort struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
