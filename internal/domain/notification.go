package domain

// NotificationMessage is the envelope published to the notification queue.
type NotificationMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type SchedulePublishedData struct {
	EmployeeName      string  `json:"employeeName"`
	EstablishmentName string  `json:"establishmentName"`
	WeekStartDate     string  `json:"weekStartDate"`
	WeekEndDate       string  `json:"weekEndDate"`
	Shifts            []Shift `json:"shifts"`
}

type CreateUserMailData struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type ResetPasswordMailData struct {
	FullName   string `json:"fullName"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}
