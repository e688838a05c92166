package models

// Service is a bookable offering. Duration doubles as the slot
// granularity when availability is computed for this service.
type Service struct {
	ID       string  `bson:"id" json:"id"`
	Name     string  `bson:"name" json:"name"`
	Price    float64 `bson:"price" json:"price"`       // non-negative
	Duration int     `bson:"duration" json:"duration"` // minutes, positive
}
