// Package controllers finds the SSDs of a host and reads their wear levels.
//
// Each storage backend (a StorCLI managed RAID HBA, NVMe drives, plain SATA/SAS
// drives) is a Controller. Disks aggregates the available ones and routes each OS
// drive to the backend that discovered it.
package controllers

import (
	"context"

	"github.com/nuclearlighters/check-ssd/internal/models"
)

// Binary locations. They are fixed so the check behaves the same under every
// monitoring agent, whatever its PATH.
const (
	StorCLIPath  = "/usr/bin/storcli"
	NVMePath     = "/usr/sbin/nvme"
	LsblkPath    = "/bin/lsblk"
	SmartctlPath = "/usr/sbin/smartctl"
)

// Controller is one storage backend.
//
// Availability and the drive inventory are settled when the Controller is
// constructed and never change afterwards.
type Controller interface {
	// Name identifies the backend in logs.
	Name() string
	// Available reports whether the backend's tools are installed.
	Available() bool
	// Drives lists the OS drives this backend owns, in discovery order.
	Drives() []string
	// WearLevels reads the wear levels of an owned drive. Disks without a reading
	// are omitted; the result is never nil.
	WearLevels(ctx context.Context, drive string) models.WearReading
}

// Options tune discovery.
type Options struct {
	// BoundByVolumeCount makes StorCLI probe volumes [0, volume count) of each
	// controller instead of [0, controller count).
	BoundByVolumeCount bool
}
