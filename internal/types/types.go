package types

type Alert struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	URL         string  `json:"url"`
	ImageURL    string  `json:"image_url"`
	Price       float64 `json:"price"` // last-known price, informational only
	TargetPrice float64 `json:"target_price"`
	UserEmail   string  `json:"user_email"`
	CreatedAt   string  `json:"created_at"`
}

// Product is a snapshot of a retailer product page at fetch time.
type Product struct {
	URL         string  `json:"product_url"`
	Title       string  `json:"product_title"`
	ImageURL    string  `json:"product_image_url"`
	Price       float64 `json:"product_price"`
	SpecsHTML   string  `json:"product_specs,omitempty"`
	Description string  `json:"product_description,omitempty"`
}
