package domain

// Stats - агрегированные показатели по врачам и слотам
type Stats struct {
	TotalDoctors   int `json:"totalDoctors"`
	TotalSlots     int `json:"totalSlots"`
	AvailableSeats int `json:"availableSeats"`
	TotalBookings  int `json:"totalBookings"`
}
