package controllers

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/nuclearlighters/check-ssd/internal/toolexec"
)

// smartctl sets bits 3-7 of its exit status for disk conditions (failing attributes,
// error log entries) while still printing a complete report. Bits 0-2 mean the report
// itself could not be produced.
// https://www.smartmontools.org/browser/trunk/smartmontools/smartctl.8.in (EXIT STATUS)
const smartctlConditionBits = 0xf8

// readSmartWearLevel runs "smartctl -A -d <deviceType> <drive>" and extracts the wear level.
func readSmartWearLevel(ctx context.Context, runner toolexec.Runner, deviceType, drive string) (int, bool) {
	res := runner.Run(ctx, SmartctlPath, "-A", "-d", deviceType, drive)
	if !res.Ran() {
		log.Debug().Err(res.Err).Str("drive", drive).Str("device_type", deviceType).Msg("smartctl did not run")
		return 0, false
	}

	if masked := res.ExitCode &^ smartctlConditionBits; masked != 0 {
		// parsed anyway: attributes may be present even when some ATA command failed
		log.Debug().
			Str("drive", drive).
			Str("device_type", deviceType).
			Int("exit_code", res.ExitCode).
			Msg("smartctl reported a command failure")
	}

	percent, ok := parseSmartWearLevel(res.Lines)
	if !ok {
		log.Debug().Str("drive", drive).Str("device_type", deviceType).Msg("No wear level attribute in smartctl output")
	}
	return percent, ok
}
