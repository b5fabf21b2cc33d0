package upstream

// ClassRecord is the raw wire shape of one class as the backend reports it.
// classDate and schedule are loosely formatted strings; status is free text
// and enrolledCount may be missing entirely. Interpretation of all three is
// deferred to the schedule package.
type ClassRecord struct {
	ID            string `json:"id"`
	ClassName     string `json:"className"`
	LocationName  string `json:"locationName"`
	TrainerName   string `json:"trainerName"`
	ClassDate     string `json:"classDate"`
	Duration      int    `json:"duration"`
	MaxCapacity   int    `json:"maxCapacity"`
	Schedule      string `json:"schedule"`
	Active        bool   `json:"active"`
	Description   string `json:"description"`
	Status        string `json:"status,omitempty"`
	EnrolledCount int    `json:"enrolledCount,omitempty"`
}

// ClassPage mirrors the backend's pagination envelope.
type ClassPage struct {
	Content       []ClassRecord `json:"content"`
	Number        int           `json:"number"`
	Size          int           `json:"size"`
	TotalElements int           `json:"totalElements"`
	TotalPages    int           `json:"totalPages"`
	First         bool          `json:"first"`
	Last          bool          `json:"last"`
}

// ReservationRecord is the raw wire shape of a reservation: its identifier,
// lifecycle status, and a normalized description of the reserved session.
type ReservationRecord struct {
	ID          string `json:"id"`
	ClassID     string `json:"classId"`
	Status      string `json:"status"`
	ClassName   string `json:"className"`
	ClassDate   string `json:"classDate"`
	Schedule    string `json:"schedule"`
	TrainerName string `json:"trainerName"`
}
