package database

// Image is the only persisted record. Every field except ID is optional
// and omitted from JSON when absent.
type Image struct {
	ID             string   `json:"id"`
	Title          *string  `json:"title,omitempty"`
	Width          *float64 `json:"width,omitempty"`
	FilterID       *float64 `json:"filterId,omitempty"`
	Image          *string  `json:"image,omitempty"`
	CreatedAt      *string  `json:"createdAt,omitempty"`
	ProcessedImage *string  `json:"processedImage,omitempty"`
}

// CollectionName is the logical collection, table or key all backends store images under.
const CollectionName = "images"
