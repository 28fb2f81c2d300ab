package usecase

import (
	"context"
	"fmt"
	"time"

	"logbook-service/internal/domain/entity"
	"logbook-service/internal/domain/repository"
	"logbook-service/pkg/backup"
	"logbook-service/pkg/logger"
	"logbook-service/pkg/metrics"
)

// ImportService reconciles uploaded backup snapshots against the live
// record store. It processes entity types in dependency order, one record
// at a time: a failing record is reported and skipped, never aborts the
// run, and the run as a whole is not atomic.
type ImportService struct {
	aircraftRepo   repository.AircraftRepository
	crewRepo       repository.CrewMemberRepository
	flightRepo     repository.FlightRepository
	flightCrewRepo repository.FlightCrewRepository
	historyRepo    repository.ImportHistoryRepository
	validator      *backup.Validator
	sampleSize     int
	logger         logger.Logger
	metrics        *metrics.Metrics
}

// NewImportService creates a new import service
func NewImportService(
	aircraftRepo repository.AircraftRepository,
	crewRepo repository.CrewMemberRepository,
	flightRepo repository.FlightRepository,
	flightCrewRepo repository.FlightCrewRepository,
	historyRepo repository.ImportHistoryRepository,
	validator *backup.Validator,
	sampleSize int,
	logger logger.Logger,
	m *metrics.Metrics,
) *ImportService {
	return &ImportService{
		aircraftRepo:   aircraftRepo,
		crewRepo:       crewRepo,
		flightRepo:     flightRepo,
		flightCrewRepo: flightCrewRepo,
		historyRepo:    historyRepo,
		validator:      validator,
		sampleSize:     sampleSize,
		logger:         logger,
		metrics:        m,
	}
}

// Import validates a snapshot and reconciles it into the user's records
// under the given strategy. Validation failures return an error; record
// level failures are accumulated in the result instead.
func (s *ImportService) Import(ctx context.Context, userID string, raw []byte, strategy Strategy, fileName string) (*entity.ImportResult, error) {
	started := time.Now()

	snapshot, err := s.validator.Parse(raw)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Starting backup import",
		"userID", userID,
		"strategy", strategy,
		"file", fileName,
		"aircrafts", len(snapshot.Data.Aircrafts),
		"crewMembers", len(snapshot.Data.CrewMembers),
		"flights", len(snapshot.Data.Flights),
		"flightRoles", len(snapshot.Data.FlightRoles))

	// Snapshot-local id -> live id, one table per entity type.
	aircraftIDs := newIDMap()
	crewIDs := newIDMap()
	flightIDs := newIDMap()

	// Dependency order: flights reference aircraft, roles reference both
	// flights and crew members.
	var results entity.ImportResults
	results.Aircrafts = s.importAircrafts(ctx, userID, snapshot.Data.Aircrafts, strategy, aircraftIDs)
	results.CrewMembers = s.importCrewMembers(ctx, userID, snapshot.Data.CrewMembers, strategy, crewIDs)
	results.Flights = s.importFlights(ctx, userID, snapshot.Data.Flights, strategy, aircraftIDs, flightIDs)
	results.FlightRoles = s.importFlightRoles(ctx, userID, snapshot.Data.FlightRoles, flightIDs, crewIDs)

	totals := sumTotals(&results)
	result := &entity.ImportResult{
		Success:     true,
		BackupDate:  snapshot.ExportDate,
		BackupEmail: snapshot.UserEmail,
		Results:     results,
		Totals:      totals,
	}

	s.observeOutcomes("aircraft", results.Aircrafts)
	s.observeOutcomes("crew_member", results.CrewMembers)
	s.observeOutcomes("flight", results.Flights)
	s.observeOutcomes("flight_role", results.FlightRoles)
	if s.metrics != nil {
		s.metrics.ImportsProcessed.Inc()
		s.metrics.ImportDuration.Observe(time.Since(started).Seconds())
	}

	s.recordRun(ctx, &entity.ImportRun{
		UserID:      userID,
		Kind:        entity.RunKindImport,
		Strategy:    string(strategy),
		FileName:    fileName,
		FileSize:    len(raw),
		BackupDate:  snapshot.ExportDate,
		BackupEmail: snapshot.UserEmail,
		Imported:    totals.Imported,
		Updated:     totals.Updated,
		Skipped:     totals.Skipped,
		ErrorCount:  totals.Errors,
	})

	s.logger.Info("Backup import finished",
		"userID", userID,
		"imported", totals.Imported,
		"updated", totals.Updated,
		"skipped", totals.Skipped,
		"errors", totals.Errors)

	return result, nil
}

func (s *ImportService) importAircrafts(ctx context.Context, userID string, records []backup.AircraftRecord, strategy Strategy, ids idMap) entity.ImportCounts {
	counts := entity.ImportCounts{Errors: []string{}}

	for i := range records {
		rec := &records[i]

		existing, err := s.aircraftRepo.FindByRegistration(ctx, userID, rec.Registration)
		if err != nil {
			counts.Errors = append(counts.Errors, fmt.Sprintf("aircraft %s: %v", rec.Registration, err))
			s.logger.Error("Aircraft lookup failed", "registration", rec.Registration, "error", err)
			continue
		}

		if existing == nil {
			// New records never carry the snapshot id or its deletion
			// marker into the store.
			aircraft := &entity.Aircraft{
				UserID:          userID,
				Registration:    rec.Registration,
				AircraftType:    rec.AircraftType,
				Model:           rec.Model,
				Class:           rec.Class,
				Condition:       rec.Condition,
				Complex:         rec.Complex,
				HighPerformance: rec.HighPerformance,
				Tailwheel:       rec.Tailwheel,
				GlassPanel:      rec.GlassPanel,
			}
			if err := s.aircraftRepo.Create(ctx, aircraft); err != nil {
				counts.Errors = append(counts.Errors, fmt.Sprintf("aircraft %s: %v", rec.Registration, err))
				s.logger.Error("Aircraft create failed", "registration", rec.Registration, "error", err)
				continue
			}
			ids.record(rec.ID, aircraft.ID)
			counts.Imported++
			continue
		}

		// Matched. Dependents can resolve the reference regardless of
		// what the strategy does next.
		ids.record(rec.ID, existing.ID)

		switch strategy {
		case StrategyOverwrite:
			existing.AircraftType = rec.AircraftType
			existing.Model = rec.Model
			existing.Class = rec.Class
			existing.Condition = rec.Condition
			existing.Complex = rec.Complex
			existing.HighPerformance = rec.HighPerformance
			existing.Tailwheel = rec.Tailwheel
			existing.GlassPanel = rec.GlassPanel
			if err := s.aircraftRepo.Update(ctx, existing); err != nil {
				counts.Errors = append(counts.Errors, fmt.Sprintf("aircraft %s: %v", rec.Registration, err))
				s.logger.Error("Aircraft update failed", "registration", rec.Registration, "error", err)
				continue
			}
			counts.Updated++

		case StrategyMerge:
			changed := fillIfEmpty(&existing.AircraftType, rec.AircraftType)
			changed = fillIfEmpty(&existing.Model, rec.Model) || changed
			changed = fillIfEmpty(&existing.Class, rec.Class) || changed
			changed = fillIfEmpty(&existing.Condition, rec.Condition) || changed
			if !changed {
				counts.Skipped++
				continue
			}
			if err := s.aircraftRepo.Update(ctx, existing); err != nil {
				counts.Errors = append(counts.Errors, fmt.Sprintf("aircraft %s: %v", rec.Registration, err))
				s.logger.Error("Aircraft merge failed", "registration", rec.Registration, "error", err)
				continue
			}
			counts.Updated++

		default:
			counts.Skipped++
		}
	}

	return counts
}

func (s *ImportService) importCrewMembers(ctx context.Context, userID string, records []backup.CrewMemberRecord, strategy Strategy, ids idMap) entity.ImportCounts {
	counts := entity.ImportCounts{Errors: []string{}}

	for i := range records {
		rec := &records[i]

		existing, err := s.crewRepo.FindByName(ctx, userID, rec.Name)
		if err != nil {
			counts.Errors = append(counts.Errors, fmt.Sprintf("crew member %s: %v", rec.Name, err))
			s.logger.Error("Crew member lookup failed", "name", rec.Name, "error", err)
			continue
		}

		if existing == nil {
			crew := &entity.CrewMember{
				UserID:        userID,
				Name:          rec.Name,
				Email:         rec.Email,
				Phone:         rec.Phone,
				LicenseNumber: rec.LicenseNumber,
				Notes:         rec.Notes,
			}
			if err := s.crewRepo.Create(ctx, crew); err != nil {
				counts.Errors = append(counts.Errors, fmt.Sprintf("crew member %s: %v", rec.Name, err))
				s.logger.Error("Crew member create failed", "name", rec.Name, "error", err)
				continue
			}
			ids.record(rec.ID, crew.ID)
			counts.Imported++
			continue
		}

		ids.record(rec.ID, existing.ID)

		switch strategy {
		case StrategyOverwrite:
			existing.Email = rec.Email
			existing.Phone = rec.Phone
			existing.LicenseNumber = rec.LicenseNumber
			existing.Notes = rec.Notes
			if err := s.crewRepo.Update(ctx, existing); err != nil {
				counts.Errors = append(counts.Errors, fmt.Sprintf("crew member %s: %v", rec.Name, err))
				s.logger.Error("Crew member update failed", "name", rec.Name, "error", err)
				continue
			}
			counts.Updated++

		case StrategyMerge:
			changed := fillIfEmpty(&existing.Email, rec.Email)
			changed = fillIfEmpty(&existing.Phone, rec.Phone) || changed
			changed = fillIfEmpty(&existing.LicenseNumber, rec.LicenseNumber) || changed
			changed = fillIfEmpty(&existing.Notes, rec.Notes) || changed
			if !changed {
				counts.Skipped++
				continue
			}
			if err := s.crewRepo.Update(ctx, existing); err != nil {
				counts.Errors = append(counts.Errors, fmt.Sprintf("crew member %s: %v", rec.Name, err))
				s.logger.Error("Crew member merge failed", "name", rec.Name, "error", err)
				continue
			}
			counts.Updated++

		default:
			counts.Skipped++
		}
	}

	return counts
}

func (s *ImportService) importFlights(ctx context.Context, userID string, records []backup.FlightRecord, strategy Strategy, aircraftIDs, ids idMap) entity.ImportCounts {
	counts := entity.ImportCounts{Errors: []string{}}

	for i := range records {
		rec := &records[i]

		// Remap the aircraft reference. An unresolved reference keeps the
		// raw snapshot value rather than failing the flight.
		aircraftID, ok := aircraftIDs.resolve(rec.AircraftID)
		if !ok {
			aircraftID = rec.AircraftID
			s.logger.Warn("Aircraft reference unresolved, keeping raw value",
				"flightDate", rec.FlightDate, "aircraftID", rec.AircraftID)
		}

		existing, err := s.flightRepo.FindByNaturalKey(ctx, userID, rec.FlightDate, rec.Registration, rec.DepartureAirport, rec.ArrivalAirport)
		if err != nil {
			counts.Errors = append(counts.Errors, fmt.Sprintf("flight %s %s: %v", rec.FlightDate, rec.Registration, err))
			s.logger.Error("Flight lookup failed", "flightDate", rec.FlightDate, "registration", rec.Registration, "error", err)
			continue
		}

		if existing == nil {
			flight := &entity.Flight{
				UserID:           userID,
				AircraftID:       aircraftID,
				FlightDate:       rec.FlightDate,
				Registration:     rec.Registration,
				DepartureAirport: rec.DepartureAirport,
				ArrivalAirport:   rec.ArrivalAirport,
				DepartureTime:    rec.DepartureTime,
				ArrivalTime:      rec.ArrivalTime,
				TotalTime:        rec.TotalTime,
				NightTime:        rec.NightTime,
				PICTime:          rec.PICTime,
				DayLandings:      rec.DayLandings,
				NightLandings:    rec.NightLandings,
				Remarks:          rec.Remarks,
			}
			if err := s.flightRepo.Create(ctx, flight); err != nil {
				counts.Errors = append(counts.Errors, fmt.Sprintf("flight %s %s: %v", rec.FlightDate, rec.Registration, err))
				s.logger.Error("Flight create failed", "flightDate", rec.FlightDate, "registration", rec.Registration, "error", err)
				continue
			}
			ids.record(rec.ID, flight.ID)
			counts.Imported++
			continue
		}

		ids.record(rec.ID, existing.ID)

		switch strategy {
		case StrategyOverwrite:
			existing.AircraftID = aircraftID
			existing.DepartureTime = rec.DepartureTime
			existing.ArrivalTime = rec.ArrivalTime
			existing.TotalTime = rec.TotalTime
			existing.NightTime = rec.NightTime
			existing.PICTime = rec.PICTime
			existing.DayLandings = rec.DayLandings
			existing.NightLandings = rec.NightLandings
			existing.Remarks = rec.Remarks
			if err := s.flightRepo.Update(ctx, existing); err != nil {
				counts.Errors = append(counts.Errors, fmt.Sprintf("flight %s %s: %v", rec.FlightDate, rec.Registration, err))
				s.logger.Error("Flight update failed", "flightDate", rec.FlightDate, "registration", rec.Registration, "error", err)
				continue
			}
			counts.Updated++

		case StrategyMerge:
			changed := fillIfEmpty(&existing.AircraftID, aircraftID)
			changed = fillIfEmpty(&existing.DepartureTime, rec.DepartureTime) || changed
			changed = fillIfEmpty(&existing.ArrivalTime, rec.ArrivalTime) || changed
			changed = fillIfEmpty(&existing.Remarks, rec.Remarks) || changed
			changed = fillIfZeroFloat(&existing.TotalTime, rec.TotalTime) || changed
			changed = fillIfZeroFloat(&existing.NightTime, rec.NightTime) || changed
			changed = fillIfZeroFloat(&existing.PICTime, rec.PICTime) || changed
			changed = fillIfZeroInt(&existing.DayLandings, rec.DayLandings) || changed
			changed = fillIfZeroInt(&existing.NightLandings, rec.NightLandings) || changed
			if !changed {
				counts.Skipped++
				continue
			}
			if err := s.flightRepo.Update(ctx, existing); err != nil {
				counts.Errors = append(counts.Errors, fmt.Sprintf("flight %s %s: %v", rec.FlightDate, rec.Registration, err))
				s.logger.Error("Flight merge failed", "flightDate", rec.FlightDate, "registration", rec.Registration, "error", err)
				continue
			}
			counts.Updated++

		default:
			counts.Skipped++
		}
	}

	return counts
}

func (s *ImportService) importFlightRoles(ctx context.Context, userID string, records []backup.FlightRoleRecord, flightIDs, crewIDs idMap) entity.ImportCounts {
	counts := entity.ImportCounts{Errors: []string{}}

	for i := range records {
		rec := &records[i]

		// Both references must resolve. A missing one means the upstream
		// record failed or was never in the snapshot; the assignment is
		// skipped, never created dangling, and this is not an error.
		flightID, flightOK := flightIDs.resolve(rec.FlightID)
		crewMemberID, crewOK := crewIDs.resolve(rec.CrewMemberID)
		if !flightOK || !crewOK {
			s.logger.Debug("Flight role reference unavailable, skipping",
				"flightRef", rec.FlightID, "crewRef", rec.CrewMemberID, "role", rec.RoleName)
			counts.Skipped++
			continue
		}

		existing, err := s.flightCrewRepo.FindByNaturalKey(ctx, flightID, crewMemberID, rec.RoleName)
		if err != nil {
			counts.Errors = append(counts.Errors, fmt.Sprintf("flight role %s: %v", rec.RoleName, err))
			s.logger.Error("Flight role lookup failed", "role", rec.RoleName, "error", err)
			continue
		}
		if existing != nil {
			// Nothing mutable beyond the natural key, so every strategy
			// leaves a matched assignment alone.
			counts.Skipped++
			continue
		}

		assignment := &entity.FlightCrew{
			UserID:       userID,
			FlightID:     flightID,
			CrewMemberID: crewMemberID,
			RoleName:     rec.RoleName,
		}
		if err := s.flightCrewRepo.Create(ctx, assignment); err != nil {
			counts.Errors = append(counts.Errors, fmt.Sprintf("flight role %s: %v", rec.RoleName, err))
			s.logger.Error("Flight role create failed", "role", rec.RoleName, "error", err)
			continue
		}
		counts.Imported++
	}

	return counts
}

// recordRun saves the audit document for a run. History is best effort and
// never fails the request.
func (s *ImportService) recordRun(ctx context.Context, run *entity.ImportRun) {
	if s.historyRepo == nil {
		return
	}
	if err := s.historyRepo.Save(ctx, run); err != nil {
		s.logger.Error("Failed to save import history", "userID", run.UserID, "kind", run.Kind, "error", err)
		if s.metrics != nil {
			s.metrics.ErrorsCount.WithLabelValues("history_save").Inc()
		}
	}
}

// History returns the most recent preview/import runs for a user.
func (s *ImportService) History(ctx context.Context, userID string, limit int64) ([]entity.ImportRun, error) {
	return s.historyRepo.FindByUser(ctx, userID, limit)
}

func (s *ImportService) observeOutcomes(entityType string, counts entity.ImportCounts) {
	if s.metrics == nil {
		return
	}
	s.metrics.RecordsProcessed.WithLabelValues(entityType, "imported").Add(float64(counts.Imported))
	s.metrics.RecordsProcessed.WithLabelValues(entityType, "updated").Add(float64(counts.Updated))
	s.metrics.RecordsProcessed.WithLabelValues(entityType, "skipped").Add(float64(counts.Skipped))
	s.metrics.RecordsProcessed.WithLabelValues(entityType, "error").Add(float64(len(counts.Errors)))
}

func sumTotals(results *entity.ImportResults) entity.ImportTotals {
	var totals entity.ImportTotals
	for _, counts := range []entity.ImportCounts{results.Aircrafts, results.CrewMembers, results.Flights, results.FlightRoles} {
		totals.Imported += counts.Imported
		totals.Updated += counts.Updated
		totals.Skipped += counts.Skipped
		totals.Errors += len(counts.Errors)
	}
	return totals
}
