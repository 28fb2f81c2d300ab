package usecase

import (
	"context"
	"math"

	"logbook-service/internal/domain/entity"
	"logbook-service/pkg/backup"
)

// Preview validates a snapshot and reports its contents plus duplicate
// estimates without writing anything to the record store. Aircraft and
// crew duplicate counts are exact (one batched existence check each);
// the flight count is extrapolated from a fixed-size sample so preview
// cost does not grow with snapshot size.
func (s *ImportService) Preview(ctx context.Context, userID string, raw []byte, fileName string) (*entity.PreviewResult, error) {
	snapshot, err := s.validator.Parse(raw)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Previewing backup", "userID", userID, "file", fileName, "size", len(raw))

	content := entity.ContentCounts{
		Flights:     len(snapshot.Data.Flights),
		Aircrafts:   len(snapshot.Data.Aircrafts),
		CrewMembers: len(snapshot.Data.CrewMembers),
		FlightRoles: len(snapshot.Data.FlightRoles),
	}

	registrations := make([]string, 0, len(snapshot.Data.Aircrafts))
	for i := range snapshot.Data.Aircrafts {
		registrations = append(registrations, snapshot.Data.Aircrafts[i].Registration)
	}
	aircraftDups, err := s.aircraftRepo.CountByRegistrations(ctx, userID, uniqueStrings(registrations))
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(snapshot.Data.CrewMembers))
	for i := range snapshot.Data.CrewMembers {
		names = append(names, snapshot.Data.CrewMembers[i].Name)
	}
	crewDups, err := s.crewRepo.CountByNames(ctx, userID, uniqueStrings(names))
	if err != nil {
		return nil, err
	}

	flightDups := s.estimateFlightDuplicates(ctx, userID, snapshot.Data.Flights)

	result := &entity.PreviewResult{
		Valid: true,
		Backup: entity.BackupInfo{
			Version:    snapshot.Version,
			ExportDate: snapshot.ExportDate,
			UserEmail:  snapshot.UserEmail,
			Metadata:   snapshot.Metadata,
		},
		Content: content,
		PotentialDuplicates: entity.DuplicateCounts{
			Aircrafts:   int(aircraftDups),
			CrewMembers: int(crewDups),
			Flights:     flightDups,
		},
		FileSize: len(raw),
		FileName: fileName,
	}

	if s.metrics != nil {
		s.metrics.PreviewsProcessed.Inc()
	}
	s.recordRun(ctx, &entity.ImportRun{
		UserID:      userID,
		Kind:        entity.RunKindPreview,
		FileName:    fileName,
		FileSize:    len(raw),
		BackupDate:  snapshot.ExportDate,
		BackupEmail: snapshot.UserEmail,
	})

	return result, nil
}

// estimateFlightDuplicates probes the first sampleSize flights and
// extrapolates the sample's duplicate ratio to the whole collection.
func (s *ImportService) estimateFlightDuplicates(ctx context.Context, userID string, flights []backup.FlightRecord) int {
	if len(flights) == 0 {
		return 0
	}

	sample := s.sampleSize
	if sample <= 0 || sample > len(flights) {
		sample = len(flights)
	}

	found := 0
	for i := 0; i < sample; i++ {
		rec := &flights[i]
		existing, err := s.flightRepo.FindByNaturalKey(ctx, userID, rec.FlightDate, rec.Registration, rec.DepartureAirport, rec.ArrivalAirport)
		if err != nil {
			s.logger.Warn("Flight probe failed during preview", "flightDate", rec.FlightDate, "registration", rec.Registration, "error", err)
			continue
		}
		if existing != nil {
			found++
		}
	}

	ratio := float64(found) / float64(sample)
	return int(math.Round(ratio * float64(len(flights))))
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	unique := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		unique = append(unique, v)
	}
	return unique
}
