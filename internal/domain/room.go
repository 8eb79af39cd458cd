package domain

// Room is administered outside this service and read-only here.
// Only active rooms are listed or bookable.
type Room struct {
	ID          int64
	Name        string
	AccessGroup string
	Active      bool
}
