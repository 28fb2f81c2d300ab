package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"logbook-service/internal/domain/entity"
	"logbook-service/internal/usecase"
	"logbook-service/pkg/backup"
	"logbook-service/pkg/logger"

	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Warn(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Error(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Fatal(msg string, keysAndValues ...interface{}) {}
func (n nopLogger) With(keysAndValues ...interface{}) logger.Logger {
	return n
}

type stubAircraftRepo struct {
	created []entity.Aircraft
}

func (s *stubAircraftRepo) FindByRegistration(context.Context, string, string) (*entity.Aircraft, error) {
	return nil, nil
}
func (s *stubAircraftRepo) CountByRegistrations(context.Context, string, []string) (int64, error) {
	return 0, nil
}
func (s *stubAircraftRepo) Create(_ context.Context, aircraft *entity.Aircraft) error {
	aircraft.ID = "ac-1"
	s.created = append(s.created, *aircraft)
	return nil
}
func (s *stubAircraftRepo) Update(context.Context, *entity.Aircraft) error { return nil }
func (s *stubAircraftRepo) ListByUser(context.Context, string) ([]entity.Aircraft, error) {
	return nil, nil
}

type stubCrewRepo struct{}

func (stubCrewRepo) FindByName(context.Context, string, string) (*entity.CrewMember, error) {
	return nil, nil
}
func (stubCrewRepo) CountByNames(context.Context, string, []string) (int64, error) { return 0, nil }
func (stubCrewRepo) Create(context.Context, *entity.CrewMember) error             { return nil }
func (stubCrewRepo) Update(context.Context, *entity.CrewMember) error             { return nil }
func (stubCrewRepo) ListByUser(context.Context, string) ([]entity.CrewMember, error) {
	return nil, nil
}

type stubFlightRepo struct{}

func (stubFlightRepo) FindByNaturalKey(context.Context, string, string, string, string, string) (*entity.Flight, error) {
	return nil, nil
}
func (stubFlightRepo) Create(context.Context, *entity.Flight) error { return nil }
func (stubFlightRepo) Update(context.Context, *entity.Flight) error { return nil }
func (stubFlightRepo) ListByUser(context.Context, string) ([]entity.Flight, error) {
	return nil, nil
}

type stubFlightCrewRepo struct{}

func (stubFlightCrewRepo) FindByNaturalKey(context.Context, string, string, string) (*entity.FlightCrew, error) {
	return nil, nil
}
func (stubFlightCrewRepo) Create(context.Context, *entity.FlightCrew) error { return nil }
func (stubFlightCrewRepo) ListByUser(context.Context, string) ([]entity.FlightCrew, error) {
	return nil, nil
}

type stubHistoryRepo struct{}

func (stubHistoryRepo) Save(context.Context, *entity.ImportRun) error { return nil }
func (stubHistoryRepo) FindByUser(context.Context, string, int64) ([]entity.ImportRun, error) {
	return []entity.ImportRun{}, nil
}

func newTestRouter(maxBytes int64) (http.Handler, *stubAircraftRepo) {
	aircraftRepo := &stubAircraftRepo{}
	service := usecase.NewImportService(
		aircraftRepo, stubCrewRepo{}, stubFlightRepo{}, stubFlightCrewRepo{}, stubHistoryRepo{},
		backup.NewValidator(maxBytes), 10, nopLogger{}, nil,
	)
	handler := NewBackupHandler(service, maxBytes, nopLogger{})
	return NewRouter(handler), aircraftRepo
}

func multipartUpload(t *testing.T, contents []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", "backup.json")
	require.NoError(t, err)
	_, err = fw.Write(contents)
	require.NoError(t, err)
	for key, value := range fields {
		require.NoError(t, w.WriteField(key, value))
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func emptySnapshotJSON(t *testing.T) []byte {
	t.Helper()
	raw, err := json.Marshal(backup.Snapshot{
		Version:    "1.0",
		ExportDate: "2026-08-30T12:00:00Z",
		UserEmail:  "pilot@example.com",
	})
	require.NoError(t, err)
	return raw
}

func TestBackupHandler_RequiresUserIdentity(t *testing.T) {
	router, _ := newTestRouter(1 << 20)

	body, contentType := multipartUpload(t, emptySnapshotJSON(t), nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/backup/preview", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBackupHandler_ImportRejectsUnknownStrategy(t *testing.T) {
	router, _ := newTestRouter(1 << 20)

	body, contentType := multipartUpload(t, emptySnapshotJSON(t), map[string]string{"strategy": "upsert"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/backup/import", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set(headerUserID, "user-1")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBackupHandler_PreviewRejectsOversizeUpload(t *testing.T) {
	router, _ := newTestRouter(16)

	body, contentType := multipartUpload(t, emptySnapshotJSON(t), nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/backup/preview", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set(headerUserID, "user-1")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestBackupHandler_PreviewRejectsMalformedSnapshot(t *testing.T) {
	router, _ := newTestRouter(1 << 20)

	body, contentType := multipartUpload(t, []byte("{not json"), nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/backup/preview", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set(headerUserID, "user-1")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBackupHandler_PreviewHappyPath(t *testing.T) {
	router, _ := newTestRouter(1 << 20)

	body, contentType := multipartUpload(t, emptySnapshotJSON(t), nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/backup/preview", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set(headerUserID, "user-1")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result entity.PreviewResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.True(t, result.Valid)
	require.Equal(t, "1.0", result.Backup.Version)
	require.Equal(t, "backup.json", result.FileName)
}

func TestBackupHandler_ImportHappyPath(t *testing.T) {
	router, aircraftRepo := newTestRouter(1 << 20)

	raw, err := json.Marshal(backup.Snapshot{
		Version:    "1.0",
		ExportDate: "2026-08-30T12:00:00Z",
		UserEmail:  "pilot@example.com",
		Data: backup.SnapshotData{
			Aircrafts: []backup.AircraftRecord{{ID: "a1", Registration: "N123AB"}},
		},
	})
	require.NoError(t, err)

	body, contentType := multipartUpload(t, raw, map[string]string{"strategy": "skip"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/backup/import", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set(headerUserID, "user-1")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result entity.ImportResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.True(t, result.Success)
	require.Equal(t, 1, result.Results.Aircrafts.Imported)
	require.Len(t, aircraftRepo.created, 1)
	require.Equal(t, "user-1", aircraftRepo.created[0].UserID)
}

func TestBackupHandler_ExportSetsAttachmentHeaders(t *testing.T) {
	router, _ := newTestRouter(1 << 20)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/backup/export", nil)
	req.Header.Set(headerUserID, "user-1")
	req.Header.Set(headerUserEmail, "pilot@example.com")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")

	var snapshot backup.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snapshot))
	require.Equal(t, backup.FormatVersion, snapshot.Version)
	require.Equal(t, "pilot@example.com", snapshot.UserEmail)
}

func TestBackupHandler_History(t *testing.T) {
	router, _ := newTestRouter(1 << 20)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/backup/history", nil)
	req.Header.Set(headerUserID, "user-1")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}
