package controllers

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/nuclearlighters/check-ssd/internal/models"
	"github.com/nuclearlighters/check-ssd/internal/toolexec"
)

// NVMe reads wear levels of NVMe drives through nvme-cli's Intel plugin.
//
// Drives are recognised by their "nvme" name prefix. A spinning NVMe disk would be
// picked up too, and a namespace under a different naming scheme would be missed.
type NVMe struct {
	runner    toolexec.Runner
	available bool
	devices   []string
}

var _ Controller = (*NVMe)(nil)

// NewNVMe detects nvme-cli and lsblk and, when both are present, lists NVMe drives.
func NewNVMe(ctx context.Context, runner toolexec.Runner) *NVMe {
	n := &NVMe{
		runner:    runner,
		available: runner.Exists(NVMePath) && runner.Exists(LsblkPath),
		devices:   []string{},
	}
	if !n.available {
		log.Debug().Str("nvme", NVMePath).Str("lsblk", LsblkPath).Msg("nvme-cli or lsblk not installed")
		return n
	}

	res := runner.Run(ctx, LsblkPath, "-d", "-o", "name")
	if res.Ran() {
		n.devices = parseNVMeDevices(res.Lines)
	}
	log.Debug().Strs("drives", n.devices).Msg("NVMe drives")

	return n
}

// Name implements Controller.
func (n *NVMe) Name() string {
	return "nvme"
}

// Available implements Controller.
func (n *NVMe) Available() bool {
	return n.available
}

// Drives implements Controller.
func (n *NVMe) Drives() []string {
	return append([]string{}, n.devices...)
}

// WearLevels implements Controller.
func (n *NVMe) WearLevels(ctx context.Context, drive string) models.WearReading {
	res := n.runner.Run(ctx, NVMePath, "intel", "smart-log-add", drive)
	if !res.Ran() {
		return models.WearReading{}
	}

	percent, ok := parseNVMeWearLevel(res.Lines)
	if !ok {
		log.Debug().Str("drive", drive).Int("exit_code", res.ExitCode).Msg("No wear_leveling in nvme smart-log-add output")
		return models.WearReading{}
	}
	return models.SingleDisk(percent)
}
