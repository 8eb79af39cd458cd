package domain

// Derived read views served by the HTTP layer. Student identity never
// appears here: the schedule is display-facing.

type RoomAvailability struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	IsAvailable bool   `json:"is_available"`
}

type ScheduleEntry struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type RoomSchedule struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Bookings []ScheduleEntry `json:"bookings"`
}

type DaySchedule struct {
	Date  string         `json:"date"`
	Rooms []RoomSchedule `json:"rooms"`
}
