package controllers

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/nuclearlighters/check-ssd/internal/models"
	"github.com/nuclearlighters/check-ssd/internal/toolexec"
)

// Disks aggregates the available controllers in registration order.
type Disks struct {
	controllers []Controller
}

// Discover builds every backend against runner and keeps the available ones, in the
// order StorCLI, NVMe, Host.
func Discover(ctx context.Context, runner toolexec.Runner, opts Options) *Disks {
	return NewDisks(
		NewStorCLI(ctx, runner, opts),
		NewNVMe(ctx, runner),
		NewHost(ctx, runner),
	)
}

// NewDisks keeps the candidates that report themselves available. Having none is fine.
func NewDisks(candidates ...Controller) *Disks {
	d := &Disks{}
	for _, c := range candidates {
		if !c.Available() {
			continue
		}
		d.controllers = append(d.controllers, c)
		log.Debug().Str("controller", c.Name()).Int("drives", len(c.Drives())).Msg("Controller available")
	}

	if len(d.controllers) == 0 {
		log.Info().Msg("No storage controller tooling found")
	}

	return d
}

// Controllers returns the available controllers.
func (d *Disks) Controllers() []Controller {
	return append([]Controller{}, d.controllers...)
}

// Drives concatenates the drives of every available controller. A drive reported by
// two controllers appears twice.
func (d *Disks) Drives() []string {
	return lo.Flatten(lo.Map(d.controllers, func(c Controller, _ int) []string {
		return c.Drives()
	}))
}

// WearLevels asks the first controller owning drive. A drive nobody owns yields
// models.UnknownDrive.
func (d *Disks) WearLevels(ctx context.Context, drive string) models.WearReading {
	for _, c := range d.controllers {
		if lo.Contains(c.Drives(), drive) {
			return c.WearLevels(ctx, drive)
		}
	}

	log.Warn().Str("drive", drive).Msg("Drive not owned by any controller")
	return models.UnknownDrive()
}
