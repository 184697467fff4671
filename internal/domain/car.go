package domain

// Car represents a driver's registered vehicle. Its capacity bounds the
// seat capacity of any trip the driver publishes.
type Car struct {
	ID          string
	OwnerID     string // university ID of the owning driver
	Plate       string
	Capacity    int
	Brand       string
	Model       string
	CarPhotoURL string
}
