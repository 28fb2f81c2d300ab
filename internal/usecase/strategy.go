package usecase

import "fmt"

// Strategy is the conflict resolution policy applied to every matched
// record in one import run.
type Strategy string

const (
	// StrategySkip leaves matched records completely untouched.
	StrategySkip Strategy = "skip"
	// StrategyOverwrite replaces all mutable fields of matched records
	// with the snapshot's values.
	StrategyOverwrite Strategy = "overwrite"
	// StrategyMerge fills only fields that are empty on the live record
	// and non-empty in the snapshot.
	StrategyMerge Strategy = "merge"
)

// ParseStrategy validates a caller-supplied strategy name.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategySkip, StrategyOverwrite, StrategyMerge:
		return Strategy(s), nil
	}
	return "", fmt.Errorf("unknown import strategy %q", s)
}

// fillIfEmpty copies src into dst when dst is empty and src is not,
// reporting whether a copy happened.
func fillIfEmpty(dst *string, src string) bool {
	if *dst == "" && src != "" {
		*dst = src
		return true
	}
	return false
}

func fillIfZeroFloat(dst *float64, src float64) bool {
	if *dst == 0 && src != 0 {
		*dst = src
		return true
	}
	return false
}

func fillIfZeroInt(dst *int, src int) bool {
	if *dst == 0 && src != 0 {
		*dst = src
		return true
	}
	return false
}
