package models

import "time"

// Listing is a posted offer: goods (milk), a service (transport, vet),
// a research collaboration, or anything else.
type Listing struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	OwnerID     int64     `json:"owner_id"`
	// OwnerUsername is joined from users at query time; it is not a
	// column of the listings table.
	OwnerUsername string    `json:"-"`
	Category      string    `json:"category"`
	Price         *float64  `json:"price"`
	Quantity      string    `json:"quantity"`
	Location      string    `json:"location"`
	CreatedAt     time.Time `json:"created_at"`
}

// Message is a directed note between two users. Immutable once sent;
// there is no read state and no threading.
type Message struct {
	ID             int64     `json:"id"`
	SenderID       int64     `json:"sender_id"`
	SenderUsername string    `json:"-"` // joined from users
	ReceiverID     int64     `json:"receiver_id"`
	Subject        string    `json:"subject"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"created_at"`
}

// Event is a scheduled gathering. Date is a calendar date; the time of
// day is always midnight UTC.
type Event struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	OrganizerID int64     `json:"organizer_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListingOwner is the owner summary nested in API listing payloads.
type ListingOwner struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// APIListing is the shape returned by GET /api/listings.
type APIListing struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Category    string       `json:"category"`
	Price       *float64     `json:"price"`
	Quantity    string       `json:"quantity"`
	Location    string       `json:"location"`
	Owner       ListingOwner `json:"owner"`
}

// APIProfile always carries all four fields; they default to "" when
// the user has no profile row.
type APIProfile struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Bio      string `json:"bio"`
}

// APIUser is the shape returned by GET /api/users/{id}.
type APIUser struct {
	ID       int64      `json:"id"`
	Username string     `json:"username"`
	Email    string     `json:"email"`
	Role     Role       `json:"role"`
	Profile  APIProfile `json:"profile"`
}
