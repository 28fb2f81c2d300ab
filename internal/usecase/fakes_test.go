package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"logbook-service/internal/domain/entity"
	"logbook-service/pkg/backup"
	"logbook-service/pkg/logger"

	"github.com/stretchr/testify/require"
)

// fakeClock hands out strictly increasing timestamps so creation/update
// bookkeeping is observable in tests.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) tick() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

// nopLogger satisfies logger.Logger without output.
type nopLogger struct{}

func (nopLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Warn(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Error(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Fatal(msg string, keysAndValues ...interface{}) {}
func (n nopLogger) With(keysAndValues ...interface{}) logger.Logger {
	return n
}

type fakeAircraftRepo struct {
	clock     *fakeClock
	rows      []*entity.Aircraft
	seq       int
	createErr map[string]error // registration -> error
}

func (r *fakeAircraftRepo) FindByRegistration(_ context.Context, userID, registration string) (*entity.Aircraft, error) {
	for _, row := range r.rows {
		if row.UserID == userID && row.Registration == registration {
			cp := *row
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeAircraftRepo) CountByRegistrations(_ context.Context, userID string, registrations []string) (int64, error) {
	want := make(map[string]struct{}, len(registrations))
	for _, reg := range registrations {
		want[reg] = struct{}{}
	}
	var count int64
	for _, row := range r.rows {
		if row.UserID != userID {
			continue
		}
		if _, ok := want[row.Registration]; ok {
			count++
		}
	}
	return count, nil
}

func (r *fakeAircraftRepo) Create(_ context.Context, aircraft *entity.Aircraft) error {
	if err := r.createErr[aircraft.Registration]; err != nil {
		return err
	}
	r.seq++
	aircraft.ID = fmt.Sprintf("ac-%d", r.seq)
	now := r.clock.tick()
	aircraft.CreatedAt = now
	aircraft.UpdatedAt = now
	cp := *aircraft
	r.rows = append(r.rows, &cp)
	return nil
}

func (r *fakeAircraftRepo) Update(_ context.Context, aircraft *entity.Aircraft) error {
	for i, row := range r.rows {
		if row.ID == aircraft.ID {
			cp := *aircraft
			cp.CreatedAt = row.CreatedAt
			cp.UpdatedAt = r.clock.tick()
			r.rows[i] = &cp
			aircraft.CreatedAt = cp.CreatedAt
			aircraft.UpdatedAt = cp.UpdatedAt
			return nil
		}
	}
	return fmt.Errorf("aircraft %s not found", aircraft.ID)
}

func (r *fakeAircraftRepo) ListByUser(_ context.Context, userID string) ([]entity.Aircraft, error) {
	var out []entity.Aircraft
	for _, row := range r.rows {
		if row.UserID == userID {
			out = append(out, *row)
		}
	}
	return out, nil
}

type fakeCrewRepo struct {
	clock     *fakeClock
	rows      []*entity.CrewMember
	seq       int
	createErr map[string]error // name -> error
}

func (r *fakeCrewRepo) FindByName(_ context.Context, userID, name string) (*entity.CrewMember, error) {
	for _, row := range r.rows {
		if row.UserID == userID && row.Name == name {
			cp := *row
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCrewRepo) CountByNames(_ context.Context, userID string, names []string) (int64, error) {
	want := make(map[string]struct{}, len(names))
	for _, name := range names {
		want[name] = struct{}{}
	}
	var count int64
	for _, row := range r.rows {
		if row.UserID != userID {
			continue
		}
		if _, ok := want[row.Name]; ok {
			count++
		}
	}
	return count, nil
}

func (r *fakeCrewRepo) Create(_ context.Context, crew *entity.CrewMember) error {
	if err := r.createErr[crew.Name]; err != nil {
		return err
	}
	r.seq++
	crew.ID = fmt.Sprintf("cm-%d", r.seq)
	now := r.clock.tick()
	crew.CreatedAt = now
	crew.UpdatedAt = now
	cp := *crew
	r.rows = append(r.rows, &cp)
	return nil
}

func (r *fakeCrewRepo) Update(_ context.Context, crew *entity.CrewMember) error {
	for i, row := range r.rows {
		if row.ID == crew.ID {
			cp := *crew
			cp.CreatedAt = row.CreatedAt
			cp.UpdatedAt = r.clock.tick()
			r.rows[i] = &cp
			crew.CreatedAt = cp.CreatedAt
			crew.UpdatedAt = cp.UpdatedAt
			return nil
		}
	}
	return fmt.Errorf("crew member %s not found", crew.ID)
}

func (r *fakeCrewRepo) ListByUser(_ context.Context, userID string) ([]entity.CrewMember, error) {
	var out []entity.CrewMember
	for _, row := range r.rows {
		if row.UserID == userID {
			out = append(out, *row)
		}
	}
	return out, nil
}

type fakeFlightRepo struct {
	clock     *fakeClock
	rows      []*entity.Flight
	seq       int
	createErr map[string]error // flight date -> error
}

func (r *fakeFlightRepo) FindByNaturalKey(_ context.Context, userID, flightDate, registration, departureAirport, arrivalAirport string) (*entity.Flight, error) {
	for _, row := range r.rows {
		if row.UserID == userID && row.FlightDate == flightDate && row.Registration == registration &&
			row.DepartureAirport == departureAirport && row.ArrivalAirport == arrivalAirport {
			cp := *row
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeFlightRepo) Create(_ context.Context, flight *entity.Flight) error {
	if err := r.createErr[flight.FlightDate]; err != nil {
		return err
	}
	r.seq++
	flight.ID = fmt.Sprintf("fl-%d", r.seq)
	now := r.clock.tick()
	flight.CreatedAt = now
	flight.UpdatedAt = now
	cp := *flight
	r.rows = append(r.rows, &cp)
	return nil
}

func (r *fakeFlightRepo) Update(_ context.Context, flight *entity.Flight) error {
	for i, row := range r.rows {
		if row.ID == flight.ID {
			cp := *flight
			cp.CreatedAt = row.CreatedAt
			cp.UpdatedAt = r.clock.tick()
			r.rows[i] = &cp
			flight.CreatedAt = cp.CreatedAt
			flight.UpdatedAt = cp.UpdatedAt
			return nil
		}
	}
	return fmt.Errorf("flight %s not found", flight.ID)
}

func (r *fakeFlightRepo) ListByUser(_ context.Context, userID string) ([]entity.Flight, error) {
	var out []entity.Flight
	for _, row := range r.rows {
		if row.UserID == userID {
			out = append(out, *row)
		}
	}
	return out, nil
}

type fakeFlightCrewRepo struct {
	clock     *fakeClock
	rows      []*entity.FlightCrew
	seq       int
	createErr map[string]error // role name -> error
}

func (r *fakeFlightCrewRepo) FindByNaturalKey(_ context.Context, flightID, crewMemberID, roleName string) (*entity.FlightCrew, error) {
	for _, row := range r.rows {
		if row.FlightID == flightID && row.CrewMemberID == crewMemberID && row.RoleName == roleName {
			cp := *row
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeFlightCrewRepo) Create(_ context.Context, assignment *entity.FlightCrew) error {
	if err := r.createErr[assignment.RoleName]; err != nil {
		return err
	}
	r.seq++
	assignment.ID = fmt.Sprintf("fc-%d", r.seq)
	now := r.clock.tick()
	assignment.CreatedAt = now
	assignment.UpdatedAt = now
	cp := *assignment
	r.rows = append(r.rows, &cp)
	return nil
}

func (r *fakeFlightCrewRepo) ListByUser(_ context.Context, userID string) ([]entity.FlightCrew, error) {
	var out []entity.FlightCrew
	for _, row := range r.rows {
		if row.UserID == userID {
			out = append(out, *row)
		}
	}
	return out, nil
}

type fakeHistoryRepo struct {
	runs []*entity.ImportRun
}

func (r *fakeHistoryRepo) Save(_ context.Context, run *entity.ImportRun) error {
	cp := *run
	r.runs = append(r.runs, &cp)
	return nil
}

func (r *fakeHistoryRepo) FindByUser(_ context.Context, userID string, limit int64) ([]entity.ImportRun, error) {
	var out []entity.ImportRun
	for i := len(r.runs) - 1; i >= 0 && int64(len(out)) < limit; i-- {
		if r.runs[i].UserID == userID {
			out = append(out, *r.runs[i])
		}
	}
	return out, nil
}

// fixture bundles one service instance with its backing fakes.
type fixture struct {
	clock    *fakeClock
	aircraft *fakeAircraftRepo
	crew     *fakeCrewRepo
	flights  *fakeFlightRepo
	roles    *fakeFlightCrewRepo
	history  *fakeHistoryRepo
	svc      *ImportService
}

func newFixture() *fixture {
	return newFixtureWithSample(10)
}

func newFixtureWithSample(sampleSize int) *fixture {
	clock := newFakeClock()
	f := &fixture{
		clock:    clock,
		aircraft: &fakeAircraftRepo{clock: clock},
		crew:     &fakeCrewRepo{clock: clock},
		flights:  &fakeFlightRepo{clock: clock},
		roles:    &fakeFlightCrewRepo{clock: clock},
		history:  &fakeHistoryRepo{},
	}
	f.svc = NewImportService(
		f.aircraft, f.crew, f.flights, f.roles, f.history,
		backup.NewValidator(50*1024*1024), sampleSize, nopLogger{}, nil,
	)
	return f
}

func marshalSnapshot(t *testing.T, snapshot backup.Snapshot) []byte {
	t.Helper()
	if snapshot.Version == "" {
		snapshot.Version = "1.0"
	}
	if snapshot.ExportDate == "" {
		snapshot.ExportDate = "2026-08-30T12:00:00Z"
	}
	if snapshot.UserEmail == "" {
		snapshot.UserEmail = "pilot@example.com"
	}
	raw, err := json.Marshal(snapshot)
	require.NoError(t, err)
	return raw
}
