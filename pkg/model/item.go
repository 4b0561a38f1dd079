package model

type Item struct {
	ID          int64  `json:"id" bson:"_id"`
	Name        string `json:"name" bson:"name"`
	Description string `json:"description" bson:"description"`
	Available   bool   `json:"available" bson:"available"`
	OwnerID     int64  `json:"ownerId" bson:"owner_id"`
	RequestID   *int64 `json:"requestId,omitempty" bson:"request_id,omitempty"`
}

type ItemCreate struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"required,max=1024"`
	Available   *bool  `json:"available" validate:"required"`
	RequestID   *int64 `json:"requestId,omitempty" validate:"omitempty,gt=0"`
}

type ItemUpdate struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description,omitempty" validate:"omitempty,min=1,max=1024"`
	Available   *bool   `json:"available,omitempty"`
}

// ItemDetails is an item as returned by the item endpoints.
// LastBooking and NextBooking are only filled for the owner.
type ItemDetails struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Available   bool           `json:"available"`
	RequestID   *int64         `json:"requestId"`
	LastBooking *BookingShort  `json:"lastBooking"`
	NextBooking *BookingShort  `json:"nextBooking"`
	Comments    []*CommentView `json:"comments"`
}

func NewItemDetails(item *Item) *ItemDetails {
	return &ItemDetails{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Available:   item.Available,
		RequestID:   item.RequestID,
		Comments:    []*CommentView{},
	}
}

// ItemShort is the item as shown inside a booking.
type ItemShort struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
