// Package models holds the data types shared by the wear backends and the report.
package models

import (
	"fmt"
	"strings"
)

// Sentinel marks a value nobody could determine.
const Sentinel = -1

// =============================================================================
// Wear levels
// =============================================================================

// WearLevel is the remaining write endurance of one physical disk, in percent.
type WearLevel struct {
	// DeviceID is the RAID device ID (DID) of the disk, or 0 when the OS drive is the disk itself.
	DeviceID int `json:"device_id"`
	Percent  int `json:"percent"`
}

// WearReading holds the wear levels of the physical disks behind one OS drive, in
// discovery order. Device IDs are unique.
//
// A disk whose wear level could not be read is left out, for every backend alike, so
// an empty reading means "no data". The single entry {Sentinel: Sentinel} is reserved
// for a drive no backend claims.
type WearReading []WearLevel

// SingleDisk returns the reading of a backend that sees one disk per OS drive.
func SingleDisk(percent int) WearReading {
	return WearReading{{DeviceID: 0, Percent: percent}}
}

// UnknownDrive returns the reading for a drive that no backend owns.
func UnknownDrive() WearReading {
	return WearReading{{DeviceID: Sentinel, Percent: Sentinel}}
}

// Get returns the wear level recorded for id.
func (r WearReading) Get(id int) (int, bool) {
	for _, l := range r {
		if l.DeviceID == id {
			return l.Percent, true
		}
	}
	return 0, false
}

// With returns a copy of r with id set to percent. An existing entry keeps its position.
func (r WearReading) With(id, percent int) WearReading {
	out := append(make(WearReading, 0, len(r)+1), r...)
	for i, l := range out {
		if l.DeviceID == id {
			out[i].Percent = percent
			return out
		}
	}
	return append(out, WearLevel{DeviceID: id, Percent: percent})
}

// String renders the reading as performance data values, e.g. "0:85%,1:90%".
func (r WearReading) String() string {
	parts := make([]string, 0, len(r))
	for _, l := range r {
		parts = append(parts, fmt.Sprintf("%d:%d%%", l.DeviceID, l.Percent))
	}
	return strings.Join(parts, ",")
}
