package event

import (
	"encoding/json"
	"fmt"
	"time"
)

type Type string

const (
	TypeUserCreated   Type = "user_created"
	TypeUserLoggedIn  Type = "user_logged_in"
	TypeUserLoggedOut Type = "user_logged_out"

	TypeProductCreated Type = "product_created"
	TypeProductUpdated Type = "product_updated"
	TypeProductDeleted Type = "product_deleted"

	TypeOrderPlaced  Type = "order_placed"
	TypeOrderUpdated Type = "order_updated"
	TypeOrderDeleted Type = "order_deleted"

	TypeUserDataSync Type = "user_data_sync"
)

// Envelope is the wire shape of every broker message: a type tag plus a
// payload whose structure depends on the tag.
type Envelope struct {
	Type Type            `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Event is one decoded variant of the envelope's tagged union.
type Event interface {
	EventType() Type
}

type Auth struct {
	Type   Type
	UserID int64
}

func (e Auth) EventType() Type { return e.Type }

type Product struct {
	Type        Type
	Title       string
	Description string
	Category    string
	Price       float64
	Quantity    int
	SellerID    int64
	CreatedAt   time.Time
}

func (e Product) EventType() Type { return e.Type }

type Order struct {
	Type       Type
	UserID     int64
	SellerIDs  []int64
	Titles     []string
	Quantities []int
}

func (e Order) EventType() Type { return e.Type }

type UserSync struct {
	ID       int64
	Username string
	Email    string
	Role     string
}

func (UserSync) EventType() Type { return TypeUserDataSync }

// Unknown carries an unrecognized type tag. Consumers treat it as a no-op,
// not a failure.
type Unknown struct {
	Type Type
}

func (e Unknown) EventType() Type { return e.Type }

type authPayload struct {
	UserID int64 `json:"userId"`
}

type productPayload struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Seller      struct {
		ID int64 `json:"id"`
	} `json:"seller"`
	CreatedAt time.Time `json:"createdAt"`
}

type orderPayload struct {
	UserID     int64    `json:"userId"`
	SellerIDs  []int64  `json:"sellerIds"`
	Titles     []string `json:"titles"`
	Quantities []int    `json:"quantities"`
}

type userSyncPayload struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Decode unmarshals a broker message body into its typed event variant.
// An unrecognized type tag yields Unknown with a nil error; a body that
// cannot be decoded into its variant's payload shape is an error.
func Decode(body []byte) (Event, error) {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode event envelope: %w", err)
	}
	if env.Type == "" {
		return nil, fmt.Errorf("decode event envelope: missing type")
	}

	switch env.Type {
	case TypeUserCreated, TypeUserLoggedIn, TypeUserLoggedOut:
		var p authPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", env.Type, err)
		}
		return Auth{Type: env.Type, UserID: p.UserID}, nil

	case TypeProductCreated, TypeProductUpdated, TypeProductDeleted:
		var p productPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", env.Type, err)
		}
		return Product{
			Type:        env.Type,
			Title:       p.Title,
			Description: p.Description,
			Category:    p.Category,
			Price:       p.Price,
			Quantity:    p.Quantity,
			SellerID:    p.Seller.ID,
			CreatedAt:   p.CreatedAt,
		}, nil

	case TypeOrderPlaced, TypeOrderUpdated, TypeOrderDeleted:
		var p orderPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", env.Type, err)
		}
		if len(p.SellerIDs) != len(p.Titles) || len(p.Titles) != len(p.Quantities) {
			return nil, fmt.Errorf("decode %s payload: line item arrays differ in length", env.Type)
		}
		return Order{
			Type:       env.Type,
			UserID:     p.UserID,
			SellerIDs:  p.SellerIDs,
			Titles:     p.Titles,
			Quantities: p.Quantities,
		}, nil

	case TypeUserDataSync:
		var p userSyncPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", env.Type, err)
		}
		return UserSync{ID: p.ID, Username: p.Username, Email: p.Email, Role: p.Role}, nil

	default:
		return Unknown{Type: env.Type}, nil
	}
}
