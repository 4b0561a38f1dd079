package model

import "time"

type Request struct {
	ID          int64     `json:"id" bson:"_id"`
	Description string    `json:"description" bson:"description"`
	RequesterID int64     `json:"requesterId" bson:"requester_id"`
	Created     time.Time `json:"created" bson:"created"`
}

type RequestCreate struct {
	Description string `json:"description" validate:"required,max=1024"`
}

// RequestView is a request together with the items created against it.
type RequestView struct {
	ID          int64          `json:"id"`
	Description string         `json:"description"`
	Created     Timestamp      `json:"created"`
	Items       []*RequestItem `json:"items"`
}

type RequestItem struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	RequestID   int64  `json:"requestId"`
	OwnerID     int64  `json:"ownerId"`
}
