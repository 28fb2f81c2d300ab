package backup

// FormatVersion is the snapshot format version this service writes.
// Imports accept any version with the same major component.
const FormatVersion = "1.0"

// Snapshot is one self-contained logbook export. The id fields inside Data
// are local to the snapshot: they only link records to each other and are
// never written to the store.
type Snapshot struct {
	Version    string                 `json:"version"`
	ExportDate string                 `json:"exportDate"`
	UserEmail  string                 `json:"userEmail"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	Data       SnapshotData           `json:"data"`
}

// SnapshotData holds the four entity collections.
type SnapshotData struct {
	Aircrafts   []AircraftRecord   `json:"aircrafts"`
	CrewMembers []CrewMemberRecord `json:"crew_members"`
	Flights     []FlightRecord     `json:"flights"`
	FlightRoles []FlightRoleRecord `json:"flight_roles"`
}

// AircraftRecord is one aircraft as stored in a snapshot.
type AircraftRecord struct {
	ID              string `json:"id"`
	Registration    string `json:"registration"`
	AircraftType    string `json:"type"`
	Model           string `json:"model"`
	Class           string `json:"class"`
	Condition       string `json:"condition"`
	Complex         bool   `json:"complex"`
	HighPerformance bool   `json:"high_performance"`
	Tailwheel       bool   `json:"tailwheel"`
	GlassPanel      bool   `json:"glass_panel"`
	Deleted         bool   `json:"deleted,omitempty"`
}

// CrewMemberRecord is one crew member as stored in a snapshot.
type CrewMemberRecord struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	LicenseNumber string `json:"license_number"`
	Notes         string `json:"notes"`
	Deleted       bool   `json:"deleted,omitempty"`
}

// FlightRecord is one flight as stored in a snapshot. AircraftID references
// an AircraftRecord within the same snapshot; Registration is carried
// separately so the flight stays matchable when that reference is broken.
type FlightRecord struct {
	ID               string  `json:"id"`
	AircraftID       string  `json:"aircraft_id"`
	Registration     string  `json:"registration"`
	FlightDate       string  `json:"date"`
	DepartureAirport string  `json:"departure_airport"`
	ArrivalAirport   string  `json:"arrival_airport"`
	DepartureTime    string  `json:"departure_time"`
	ArrivalTime      string  `json:"arrival_time"`
	TotalTime        float64 `json:"total_time"`
	NightTime        float64 `json:"night_time"`
	PICTime          float64 `json:"pic_time"`
	DayLandings      int     `json:"day_landings"`
	NightLandings    int     `json:"night_landings"`
	Remarks          string  `json:"remarks"`
	Deleted          bool    `json:"deleted,omitempty"`
}

// FlightRoleRecord assigns a crew member to a flight within the snapshot.
type FlightRoleRecord struct {
	FlightID     string `json:"flight_id"`
	CrewMemberID string `json:"crew_member_id"`
	RoleName     string `json:"role_name"`
}
