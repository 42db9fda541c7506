package api

// Station represents a gas station and its current price list.
type Station struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	City           string  `json:"city"`
	State          string  `json:"state"`
	Address        string  `json:"address"`
	Prices         []Price `json:"price"`
	TotalReactions int     `json:"total_reactions"`
}

// Price is a single fuel type and its amount at a station.
type Price struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	StationID int64   `json:"station_id,omitempty"`
}

// NewStation is the payload used to register a station.
type NewStation struct {
	Name    string `json:"name"`
	City    string `json:"city"`
	State   string `json:"state"`
	Address string `json:"address"`
}

// PriceUpdate is one element of a bulk price update.
type PriceUpdate struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Value     float64 `json:"value"`
	StationID int64   `json:"station_id"`
}

// NewPrice is one element of a bulk price creation.
type NewPrice struct {
	Name      string  `json:"name"`
	Value     float64 `json:"value"`
	StationID int64   `json:"station_id"`
}

// ReactionKind is either a like or a dislike.
type ReactionKind string

const (
	Like    ReactionKind = "like"
	Dislike ReactionKind = "dislike"
)

// Opposite returns the other reaction kind.
func (k ReactionKind) Opposite() ReactionKind {
	if k == Like {
		return Dislike
	}
	return Like
}

// Valid reports whether k is a known reaction kind.
func (k ReactionKind) Valid() bool {
	return k == Like || k == Dislike
}

// Reaction is a user's like or dislike on a station.
type Reaction struct {
	ID        int64        `json:"id"`
	UserID    int64        `json:"user_id"`
	StationID int64        `json:"station_id"`
	Kind      ReactionKind `json:"reaction"`
	CreatedAt string       `json:"created_at"`
	UpdatedAt string       `json:"updated_at"`
}

// NewReaction is the payload used to record a reaction.
type NewReaction struct {
	StationID int64        `json:"station_id"`
	UserID    int64        `json:"user_id"`
	Kind      ReactionKind `json:"reaction"`
}

type updatePricesRequest struct {
	Prices []PriceUpdate `json:"prices"`
}

type createPricesRequest struct {
	Prices []NewPrice `json:"prices"`
}

type deletePricesRequest struct {
	PriceIDs []int64 `json:"price_ids"`
}
