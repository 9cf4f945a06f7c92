package controllers

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/nuclearlighters/check-ssd/internal/models"
	"github.com/nuclearlighters/check-ssd/internal/toolexec"
)

// Host reads wear levels of SATA/SAS SSDs the OS sees directly. NVMe drives are
// left to the NVMe backend.
type Host struct {
	runner    toolexec.Runner
	available bool
	devices   []string
}

var _ Controller = (*Host)(nil)

// NewHost detects lsblk and, when present, lists the non-rotating drives.
func NewHost(ctx context.Context, runner toolexec.Runner) *Host {
	h := &Host{
		runner:    runner,
		available: runner.Exists(LsblkPath),
		devices:   []string{},
	}
	if !h.available {
		log.Debug().Str("path", LsblkPath).Msg("lsblk not installed")
		return h
	}

	res := runner.Run(ctx, LsblkPath, "-d", "-o", "rota,name")
	if res.Ran() {
		h.devices = parseSolidStateDevices(res.Lines)
	}
	log.Debug().Strs("drives", h.devices).Msg("Solid state drives")

	return h
}

// Name implements Controller.
func (h *Host) Name() string {
	return "host"
}

// Available implements Controller.
func (h *Host) Available() bool {
	return h.available
}

// Drives implements Controller.
func (h *Host) Drives() []string {
	return append([]string{}, h.devices...)
}

// WearLevels implements Controller.
func (h *Host) WearLevels(ctx context.Context, drive string) models.WearReading {
	percent, ok := readSmartWearLevel(ctx, h.runner, "auto", drive)
	if !ok {
		return models.WearReading{}
	}
	return models.SingleDisk(percent)
}
