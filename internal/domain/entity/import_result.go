package entity

// ImportCounts accumulates per-entity-type outcomes for one import run.
type ImportCounts struct {
	Imported int      `json:"imported"`
	Updated  int      `json:"updated"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors"`
}

// ImportResults holds the counts for each of the four entity types.
type ImportResults struct {
	Aircrafts   ImportCounts `json:"aircrafts"`
	CrewMembers ImportCounts `json:"crew_members"`
	Flights     ImportCounts `json:"flights"`
	FlightRoles ImportCounts `json:"flight_roles"`
}

// ImportTotals sums the counters across all entity types.
type ImportTotals struct {
	Imported int `json:"imported"`
	Updated  int `json:"updated"`
	Skipped  int `json:"skipped"`
	Errors   int `json:"errors"`
}

// ImportResult is the outcome of a committed import.
type ImportResult struct {
	Success     bool          `json:"success"`
	BackupDate  string        `json:"backupDate"`
	BackupEmail string        `json:"backupEmail"`
	Results     ImportResults `json:"results"`
	Totals      ImportTotals  `json:"totals"`
}

// BackupInfo echoes a snapshot's declared metadata for display.
type BackupInfo struct {
	Version    string                 `json:"version"`
	ExportDate string                 `json:"exportDate"`
	UserEmail  string                 `json:"userEmail"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}

// ContentCounts reports how many records of each type a snapshot contains.
type ContentCounts struct {
	Flights     int `json:"flights"`
	Aircrafts   int `json:"aircrafts"`
	CrewMembers int `json:"crew_members"`
	FlightRoles int `json:"flight_roles"`
}

// DuplicateCounts reports how many snapshot records already exist for the
// owner. Aircraft and crew counts are exact; the flight count is an estimate.
type DuplicateCounts struct {
	Aircrafts   int `json:"aircrafts"`
	CrewMembers int `json:"crew_members"`
	Flights     int `json:"flights"`
}

// PreviewResult is the outcome of a read-only snapshot preview.
type PreviewResult struct {
	Valid               bool            `json:"valid"`
	Backup              BackupInfo      `json:"backup"`
	Content             ContentCounts   `json:"content"`
	PotentialDuplicates DuplicateCounts `json:"potential_duplicates"`
	FileSize            int             `json:"file_size"`
	FileName            string          `json:"file_name"`
}
