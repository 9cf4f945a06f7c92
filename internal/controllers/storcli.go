package controllers

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/nuclearlighters/check-ssd/internal/models"
	"github.com/nuclearlighters/check-ssd/internal/toolexec"
)

// virtualDrive is a RAID volume as the OS sees it.
type virtualDrive struct {
	osDrive   string
	deviceIDs []int
}

// raidController is the inventory of one HBA.
type raidController struct {
	volumeCount int
	volumes     map[int]virtualDrive
}

// StorCLI reads wear levels of SSDs behind Broadcom/LSI MegaRAID controllers.
// smartctl addresses each member disk through the OS drive of its virtual drive
// plus the disk's DID.
type StorCLI struct {
	runner      toolexec.Runner
	available   bool
	controllers []raidController
}

var _ Controller = (*StorCLI)(nil)

// NewStorCLI detects storcli and, when present, inventories every controller.
func NewStorCLI(ctx context.Context, runner toolexec.Runner, opts Options) *StorCLI {
	s := &StorCLI{
		runner:    runner,
		available: runner.Exists(StorCLIPath),
	}
	if !s.available {
		log.Debug().Str("path", StorCLIPath).Msg("storcli not installed")
		return s
	}

	s.discover(ctx, opts)
	return s
}

func (s *StorCLI) discover(ctx context.Context, opts Options) {
	count := parseControllerCount(s.storcli(ctx, "show", "ctrlcount"))
	log.Debug().Int("controllers", count).Msg("storcli controller count")

	for c := 0; c < count; c++ {
		ctrl := raidController{
			volumeCount: parseVolumeCount(s.storcli(ctx, fmt.Sprintf("/c%d/vall", c), "show")),
			volumes:     make(map[int]virtualDrive),
		}

		// The default bound is the controller count, so volumes at or beyond it are
		// never probed.
		bound := count
		if opts.BoundByVolumeCount {
			bound = ctrl.volumeCount
		}

		for v := 0; v < bound; v++ {
			lines := s.storcli(ctx, fmt.Sprintf("/c%d/v%d", c, v), "show", "all")

			vd := virtualDrive{deviceIDs: parseSSDDeviceIDs(lines)}
			vd.osDrive, _ = parseOSDriveName(lines)
			ctrl.volumes[v] = vd

			log.Debug().
				Int("controller", c).
				Int("volume", v).
				Str("os_drive", vd.osDrive).
				Ints("device_ids", vd.deviceIDs).
				Msg("storcli virtual drive")
		}

		s.controllers = append(s.controllers, ctrl)
	}
}

func (s *StorCLI) storcli(ctx context.Context, args ...string) []string {
	res := s.runner.Run(ctx, StorCLIPath, args...)
	if !res.Ran() {
		return nil
	}
	return res.Lines
}

// Name implements Controller.
func (s *StorCLI) Name() string {
	return "storcli"
}

// Available implements Controller.
func (s *StorCLI) Available() bool {
	return s.available
}

// Drives implements Controller. Volumes without an OS drive are skipped.
func (s *StorCLI) Drives() []string {
	drives := []string{}
	s.eachVolume(func(vd virtualDrive) {
		drives = append(drives, vd.osDrive)
	})
	return drives
}

// WearLevels implements Controller. Member disks without a wear attribute are omitted.
func (s *StorCLI) WearLevels(ctx context.Context, drive string) models.WearReading {
	reading := models.WearReading{}
	for _, did := range s.deviceIDs(drive) {
		percent, ok := readSmartWearLevel(ctx, s.runner, fmt.Sprintf("megaraid,%d", did), drive)
		if !ok {
			continue
		}
		reading = reading.With(did, percent)
	}
	return reading
}

// deviceIDs returns the SSD members of the volume exposed as drive. Should two volumes
// report the same OS drive, the last one wins.
func (s *StorCLI) deviceIDs(drive string) []int {
	var ids []int
	s.eachVolume(func(vd virtualDrive) {
		if vd.osDrive == drive {
			ids = vd.deviceIDs
		}
	})
	return ids
}

// eachVolume visits volumes [0, volume count) of every controller that have an OS drive.
func (s *StorCLI) eachVolume(fn func(vd virtualDrive)) {
	for _, ctrl := range s.controllers {
		for v := 0; v < ctrl.volumeCount; v++ {
			vd, ok := ctrl.volumes[v]
			if !ok || vd.osDrive == "" {
				continue
			}
			fn(vd)
		}
	}
}
