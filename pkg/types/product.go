package types

// UnknownSeller is used in place of a missing seller, both when deriving
// the seller facet and when matching a seller filter.
const UnknownSeller = "Unknown Seller"

type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// Product is an immutable record from the external feed. Ids are unique
// within one loaded collection.
type Product struct {
	Id          uint    `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Rating      Rating  `json:"rating"`
	Image       string  `json:"image,omitempty"`
	Seller      string  `json:"seller,omitempty"`
}

func (p *Product) SellerOrDefault() string {
	if p.Seller == "" {
		return UnknownSeller
	}
	return p.Seller
}
