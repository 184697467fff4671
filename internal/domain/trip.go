package domain

// TripState represents the driver-controlled state of a trip.
type TripState int

const (
	TripStateOpen   TripState = 0
	TripStateClosed TripState = 1
)

// Route describes where and when a trip runs. The engine treats these
// fields as opaque text beyond requiring them to be non-empty.
type Route struct {
	StartPoint    string
	EndPoint      string
	Sector        string
	DepartureTime string
	Date          string
}

// ReservationRequest is a rider's attempt to claim a seat on a trip.
// A given rider ID appears in at most one of the trip's three request
// lists at any time.
type ReservationRequest struct {
	RiderID  string `json:"rider_id"`
	Location string `json:"location"`
}

// Trip represents a driver-published ride offer with fixed seat capacity
// and a mutable pool of reservation requests.
//
// Capacity accounting: ReservationsCount + Availability == Capacity after
// every mutation. Availability is decremented only by accepting a pending
// request and restored only by cancelling an accepted one.
type Trip struct {
	ID                string
	DriverID          string
	Route             Route
	Price             float64
	Capacity          int
	Availability      int
	ReservationsCount int
	State             TripState
	CarPhotoURL       string
	PendingRequests   []ReservationRequest
	AcceptedRequests  []ReservationRequest
	RejectedRequests  []ReservationRequest
}

// FindRequest returns the index of riderID in the given list, or -1.
func FindRequest(list []ReservationRequest, riderID string) int {
	for i, r := range list {
		if r.RiderID == riderID {
			return i
		}
	}
	return -1
}

// HasRider reports whether riderID appears in any of the trip's three
// request lists.
func (t *Trip) HasRider(riderID string) bool {
	return FindRequest(t.PendingRequests, riderID) >= 0 ||
		FindRequest(t.AcceptedRequests, riderID) >= 0 ||
		FindRequest(t.RejectedRequests, riderID) >= 0
}

// HasAcceptedRider reports whether riderID holds an accepted seat.
func (t *Trip) HasAcceptedRider(riderID string) bool {
	return FindRequest(t.AcceptedRequests, riderID) >= 0
}
