package usecase

import (
	"context"
	"time"

	"logbook-service/pkg/backup"
)

// Export produces a snapshot of everything the user owns. The emitted ids
// are the live identities, which makes the file valid input for Import
// into any account: importers treat them as snapshot-local.
func (s *ImportService) Export(ctx context.Context, userID, userEmail string) (*backup.Snapshot, error) {
	aircrafts, err := s.aircraftRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	crewMembers, err := s.crewRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	flights, err := s.flightRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	assignments, err := s.flightCrewRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	snapshot := &backup.Snapshot{
		Version:    backup.FormatVersion,
		ExportDate: time.Now().UTC().Format(time.RFC3339),
		UserEmail:  userEmail,
		Data: backup.SnapshotData{
			Aircrafts:   make([]backup.AircraftRecord, 0, len(aircrafts)),
			CrewMembers: make([]backup.CrewMemberRecord, 0, len(crewMembers)),
			Flights:     make([]backup.FlightRecord, 0, len(flights)),
			FlightRoles: make([]backup.FlightRoleRecord, 0, len(assignments)),
		},
	}

	for i := range aircrafts {
		a := &aircrafts[i]
		snapshot.Data.Aircrafts = append(snapshot.Data.Aircrafts, backup.AircraftRecord{
			ID:              a.ID,
			Registration:    a.Registration,
			AircraftType:    a.AircraftType,
			Model:           a.Model,
			Class:           a.Class,
			Condition:       a.Condition,
			Complex:         a.Complex,
			HighPerformance: a.HighPerformance,
			Tailwheel:       a.Tailwheel,
			GlassPanel:      a.GlassPanel,
		})
	}

	for i := range crewMembers {
		c := &crewMembers[i]
		snapshot.Data.CrewMembers = append(snapshot.Data.CrewMembers, backup.CrewMemberRecord{
			ID:            c.ID,
			Name:          c.Name,
			Email:         c.Email,
			Phone:         c.Phone,
			LicenseNumber: c.LicenseNumber,
			Notes:         c.Notes,
		})
	}

	for i := range flights {
		f := &flights[i]
		snapshot.Data.Flights = append(snapshot.Data.Flights, backup.FlightRecord{
			ID:               f.ID,
			AircraftID:       f.AircraftID,
			Registration:     f.Registration,
			FlightDate:       f.FlightDate,
			DepartureAirport: f.DepartureAirport,
			ArrivalAirport:   f.ArrivalAirport,
			DepartureTime:    f.DepartureTime,
			ArrivalTime:      f.ArrivalTime,
			TotalTime:        f.TotalTime,
			NightTime:        f.NightTime,
			PICTime:          f.PICTime,
			DayLandings:      f.DayLandings,
			NightLandings:    f.NightLandings,
			Remarks:          f.Remarks,
		})
	}

	for i := range assignments {
		r := &assignments[i]
		snapshot.Data.FlightRoles = append(snapshot.Data.FlightRoles, backup.FlightRoleRecord{
			FlightID:     r.FlightID,
			CrewMemberID: r.CrewMemberID,
			RoleName:     r.RoleName,
		})
	}

	s.logger.Info("Exported backup",
		"userID", userID,
		"aircrafts", len(snapshot.Data.Aircrafts),
		"crewMembers", len(snapshot.Data.CrewMembers),
		"flights", len(snapshot.Data.Flights),
		"flightRoles", len(snapshot.Data.FlightRoles))

	return snapshot, nil
}
