package types

// EntityCategory is the coarse trip-entity category an extracted type tag
// classifies into.
type EntityCategory string

const (
	CategoryAccommodation  EntityCategory = "accommodation"
	CategoryEatery         EntityCategory = "eatery"
	CategoryAttraction     EntityCategory = "attraction"
	CategoryService        EntityCategory = "service"
	CategoryTransportation EntityCategory = "transportation"
	CategoryContact        EntityCategory = "contact"
)

// EntityStatus tracks how firmly an entity belongs to the plan. Email-sourced
// creations start as booked (a confirmation is a fact); recommendation-sourced
// creations start as candidate (a suggestion).
type EntityStatus string

const (
	StatusCandidate EntityStatus = "candidate"
	StatusInPlan    EntityStatus = "in_plan"
	StatusMatched   EntityStatus = "matched"
	StatusBooked    EntityStatus = "booked"
	StatusVisited   EntityStatus = "visited"
)

// Coordinates is a WGS84 lat/lng pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Location describes where an entity is. All fields are optional; fuzzy
// location agreement is only required when both sides carry one.
type Location struct {
	City        string       `json:"city,omitempty"`
	Country     string       `json:"country,omitempty"`
	Address     string       `json:"address,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// IsEmpty reports whether no location information is present.
func (l Location) IsEmpty() bool {
	return l.City == "" && l.Country == "" && l.Address == "" && l.Coordinates == nil
}

// SourceRefs records which inbound events contributed to an entity's current
// state. Ids are never duplicated.
type SourceRefs struct {
	EmailIDs          []string `json:"emailIds"`
	RecommendationIDs []string `json:"recommendationIds"`
}

// AddEmailID appends id unless already present. Returns true when added.
func (r *SourceRefs) AddEmailID(id string) bool {
	if id == "" || containsString(r.EmailIDs, id) {
		return false
	}
	r.EmailIDs = append(r.EmailIDs, id)
	return true
}

// AddRecommendationID appends id unless already present. Returns true when added.
func (r *SourceRefs) AddRecommendationID(id string) bool {
	if id == "" || containsString(r.RecommendationIDs, id) {
		return false
	}
	r.RecommendationIDs = append(r.RecommendationIDs, id)
	return true
}

func containsString(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
