package domain

import "time"

// DayHours is the opening window of an establishment for a single weekday.
// Times are local wall-clock "HH:MM" strings; both are empty when the day is
// closed.
type DayHours struct {
	IsOpen    bool   `json:"isOpen"`
	OpenTime  string `json:"openTime,omitempty"`
	CloseTime string `json:"closeTime,omitempty"`
}

// WeekHours holds the operating hours for all seven weekdays, indexed
// 0=Sunday..6=Saturday.
type WeekHours [7]DayHours

type Establishment struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	OperatingHours       WeekHours `json:"operatingHours"`
	MinEmployeesPerShift int       `json:"minEmployeesPerShift"`
	CreatedAt            time.Time `json:"createdAt"`
	Version              int32     `json:"-"`
}
