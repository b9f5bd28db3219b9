package exchange

import "time"

// Condition is the physical state of a listed textbook.
type Condition string

const (
	ConditionNew  Condition = "New"
	ConditionGood Condition = "Good"
	ConditionUsed Condition = "Used"
)

// Conditions lists the accepted conditions in display order.
var Conditions = []Condition{ConditionNew, ConditionGood, ConditionUsed}

// Valid reports whether c is one of the enumerated conditions. Matching is
// case-sensitive.
func (c Condition) Valid() bool {
	for _, v := range Conditions {
		if c == v {
			return true
		}
	}
	return false
}

// Status is the sale state of a listing. Hidden is reserved: no operation
// sets it, but hidden listings are excluded from every query.
type Status string

const (
	StatusAvailable Status = "Available"
	StatusSold      Status = "Sold"
	StatusHidden    Status = "Hidden"
)

// User is a registered student. Password is stored as entered; this is a
// demo store and must not hold real credentials.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"created_at"`
}

// Book is a single textbook listing offered by a seller.
// Image, when set, is a self-describing data URL (data:<mime>;base64,...).
type Book struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Course    string    `json:"course"`
	Price     float64   `json:"price"`
	Condition Condition `json:"condition"`
	Image     string    `json:"image"`
	SellerID  string    `json:"seller_id"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Favorites maps user id -> book id -> saved flag. A missing entry and a
// false flag mean the same thing.
type Favorites map[string]map[string]bool

// Actor identifies who is performing a mutation. The zero Actor means no
// session is active.
type Actor struct {
	UserID string
}

// ActorFor returns the Actor for u.
func ActorFor(u User) Actor { return Actor{UserID: u.ID} }

// Anonymous reports whether a carries no user.
func (a Actor) Anonymous() bool { return a.UserID == "" }

// Filters narrows a listing query. Empty strings and nil bounds are ignored.
type Filters struct {
	Course    string
	Condition Condition
	MinPrice  *float64
	MaxPrice  *float64
}

// ListingInput carries the seller-supplied fields of a new listing. Price is
// kept as entered and parsed by CreateListing.
type ListingInput struct {
	Title     string
	Author    string
	Course    string
	Price     string
	Condition Condition
	Image     string
}
