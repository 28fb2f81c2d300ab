package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Validation failures, coarsest first. Callers pick response codes with
// errors.Is.
var (
	ErrTooLarge           = errors.New("backup file exceeds size limit")
	ErrMalformed          = errors.New("backup file is not valid JSON")
	ErrMissingField       = errors.New("backup file is missing a required field")
	ErrUnsupportedVersion = errors.New("unsupported backup format version")
)

// supportedMajor is the only format major version this engine understands.
// Minor and patch components are accepted as-is.
const supportedMajor = 1

// Validator parses and sanity-checks uploaded snapshots before any
// reconciliation runs.
type Validator struct {
	maxBytes int64
}

// NewValidator creates a validator with the given payload size bound.
func NewValidator(maxBytes int64) *Validator {
	return &Validator{maxBytes: maxBytes}
}

// envelope mirrors Snapshot with a pointer Data so an absent "data" key is
// distinguishable from an empty one.
type envelope struct {
	Version    string                 `json:"version"`
	ExportDate string                 `json:"exportDate"`
	UserEmail  string                 `json:"userEmail"`
	Metadata   map[string]interface{} `json:"metadata"`
	Data       *SnapshotData          `json:"data"`
}

// Parse validates raw snapshot bytes and returns the parsed snapshot
// unchanged. It never normalizes or mutates the payload.
func (v *Validator) Parse(raw []byte) (*Snapshot, error) {
	if int64(len(raw)) > v.maxBytes {
		return nil, fmt.Errorf("%w: %d bytes (limit %d)", ErrTooLarge, len(raw), v.maxBytes)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	for _, field := range []struct {
		name    string
		present bool
	}{
		{"version", env.Version != ""},
		{"exportDate", env.ExportDate != ""},
		{"userEmail", env.UserEmail != ""},
		{"data", env.Data != nil},
	} {
		if !field.present {
			return nil, fmt.Errorf("%w: %s", ErrMissingField, field.name)
		}
	}

	major, err := majorVersion(env.Version)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedVersion, env.Version)
	}
	if major != supportedMajor {
		return nil, fmt.Errorf("%w: %q (supported major: %d)", ErrUnsupportedVersion, env.Version, supportedMajor)
	}

	return &Snapshot{
		Version:    env.Version,
		ExportDate: env.ExportDate,
		UserEmail:  env.UserEmail,
		Metadata:   env.Metadata,
		Data:       *env.Data,
	}, nil
}

func majorVersion(version string) (int, error) {
	head, _, _ := strings.Cut(version, ".")
	return strconv.Atoi(head)
}
