// Package report folds wear readings into a monitoring plugin status line.
//
// The line follows the Nagios plugin convention: a summary, a pipe, then performance
// data. The exit code carries the status.
package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/nuclearlighters/check-ssd/internal/models"
)

// Status is the plugin state; its value is the process exit code.
type Status int

const (
	StatusOK       Status = 0
	StatusWarning  Status = 1
	StatusCritical Status = 2
	// StatusUnknown is part of the plugin exit code space. The wear fold never produces it.
	StatusUnknown Status = 3
)

// Thresholds on remaining endurance, in percent.
const (
	CriticalBelow = 10
	WarningBelow  = 30
	MaxPercent    = 100
)

// String returns the plugin state name.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusWarning:
		return "WARNING"
	case StatusCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// ExitCode returns the process exit status for s.
func (s Status) ExitCode() int {
	return int(s)
}

// Summary returns the human-readable part of the status line.
func (s Status) Summary() string {
	switch s {
	case StatusOK:
		return "SSD OK: All SSDs are healthy"
	case StatusWarning:
		return fmt.Sprintf("SSD WARNING: One or more below %d%% lifetime", WarningBelow)
	case StatusCritical:
		return fmt.Sprintf("SSD CRITICAL: One or more below %d%% lifetime", CriticalBelow)
	default:
		return "SSD UNKNOWN: Unable to determine SSD wear levels"
	}
}

// Fold applies one wear level to the running status. The rules are applied in order,
// so a critical value sticks and a value above MaxPercent leaves the state alone.
func Fold(state Status, percent int) Status {
	if percent < CriticalBelow {
		state = StatusCritical
	}
	if percent < WarningBelow && state != StatusCritical {
		state = StatusWarning
	}
	if percent <= MaxPercent && state < StatusWarning {
		state = StatusOK
	}
	return state
}

// DriveWear is the reading of one OS drive.
type DriveWear struct {
	Drive string
	Wear  models.WearReading
}

// Report is the outcome of one check run.
type Report struct {
	Status Status
	Drives []DriveWear
}

// Source yields drives and their wear levels.
type Source interface {
	Drives() []string
	WearLevels(ctx context.Context, drive string) models.WearReading
}

// Collect reads every drive of src, in order, and builds the report.
func Collect(ctx context.Context, src Source) *Report {
	drives := []DriveWear{}
	for _, drive := range src.Drives() {
		wear := src.WearLevels(ctx, drive)
		log.Debug().Str("drive", drive).Str("wear", wear.String()).Msg("Wear levels")
		drives = append(drives, DriveWear{Drive: drive, Wear: wear})
	}
	return Build(drives)
}

// Build folds every wear level of every drive, left to right, starting from StatusOK.
// No drives at all is OK.
func Build(drives []DriveWear) *Report {
	status := StatusOK
	for _, d := range drives {
		for _, l := range d.Wear {
			status = Fold(status, l.Percent)
		}
	}
	return &Report{Status: status, Drives: drives}
}

// PerfData renders "<drive>=<id>:<percent>%,...;" for every drive.
func (r *Report) PerfData() string {
	var b strings.Builder
	for _, d := range r.Drives {
		b.WriteString(d.Drive)
		b.WriteByte('=')
		b.WriteString(d.Wear.String())
		b.WriteByte(';')
	}
	return b.String()
}

// String renders the full status line without a trailing newline.
func (r *Report) String() string {
	return r.Status.Summary() + "|" + r.PerfData()
}
