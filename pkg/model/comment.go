package model

import "time"

type Comment struct {
	ID       int64     `json:"id" bson:"_id"`
	Text     string    `json:"text" bson:"text"`
	ItemID   int64     `json:"itemId" bson:"item_id"`
	AuthorID int64     `json:"authorId" bson:"author_id"`
	Created  time.Time `json:"created" bson:"created"`
}

type CommentCreate struct {
	Text string `json:"text" validate:"required,max=1024"`
}

type CommentView struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    Timestamp `json:"created"`
}
