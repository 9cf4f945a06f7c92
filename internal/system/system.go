// Package system describes the host the check runs on.
//
// It reads platform and virtualization facts through gopsutil so the check can
// log where it ran and flag guests, whose virtual disks carry no wear data.
package system

import (
	"context"
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
)

// Virtualization roles reported by gopsutil.
const (
	RoleGuest = "guest"
	RoleHost  = "host"
)

// HostSummary holds static host information.
type HostSummary struct {
	Hostname        string `json:"hostname"`
	Platform        string `json:"platform"`
	PlatformVersion string `json:"platform_version"`
	Kernel          string `json:"kernel"`
	Architecture    string `json:"architecture"`
	Virtualization  string `json:"virtualization,omitempty"`
	Role            string `json:"role,omitempty"`
}

// IsGuest reports whether the host is a virtual machine or container guest.
func (h *HostSummary) IsGuest() bool {
	return h.Role == RoleGuest
}

// Describe returns the host summary.
func Describe(ctx context.Context) (*HostSummary, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read host info: %w", err)
	}
	return summarize(info), nil
}

func summarize(info *host.InfoStat) *HostSummary {
	return &HostSummary{
		Hostname:        info.Hostname,
		Platform:        info.Platform,
		PlatformVersion: info.PlatformVersion,
		Kernel:          info.KernelVersion,
		Architecture:    info.KernelArch,
		Virtualization:  info.VirtualizationSystem,
		Role:            strings.ToLower(info.VirtualizationRole),
	}
}

// DriveSerial returns the serial number udev recorded for drive, e.g. "/dev/sda".
func DriveSerial(ctx context.Context, drive string) (string, error) {
	serial, err := disk.SerialNumberWithContext(ctx, drive)
	if err != nil {
		return "", fmt.Errorf("failed to read serial of %s: %w", drive, err)
	}
	return serial, nil
}
