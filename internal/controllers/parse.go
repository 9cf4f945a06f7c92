package controllers

import (
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// =============================================================================
// storcli output layout
// =============================================================================

const (
	// "storcli show ctrlcount" prints five status lines and a blank line before
	// "Controller Count = N".
	ctrlCountLine = 6

	// "storcli /cN/vall show" prints 13 lines of status, banner and table header
	// before the first virtual drive row.
	vdListHeaderLines = 13

	// Divider closing the virtual drive table. Its index among the lines after the
	// header block equals the number of virtual drives.
	vdListDivider = "---------------------------------------------------------------"

	osDriveNamePrefix = "OS Drive Name = "

	// Physical drive table of "storcli /cN/vM show all": the header row, a divider,
	// the rows, and a closing divider.
	pdTableHeaderPrefix = "EID:Slt DID"
	pdTableHeaderRows   = 2
	pdTableDivider      = "----------------------------------------------------------------------------------------"

	// The medium column is located through the header's "Med" label; this is where
	// storcli puts it for the usual column widths.
	pdMediumLabel         = "Med"
	pdMediumDefaultOffset = 37
	pdMediumWidth         = 3
	pdMediumSSD           = "SSD"

	// DID is the second column of a physical drive row.
	pdDeviceIDField = 1
)

// parseControllerCount reads the controller count from "storcli show ctrlcount".
// Output that does not match the expected layout counts as zero controllers.
func parseControllerCount(lines []string) int {
	if len(lines) <= ctrlCountLine {
		return 0
	}

	n, ok := parseAssignedInt(lines[ctrlCountLine])
	if !ok || n < 0 {
		return 0
	}
	return n
}

// parseAssignedInt parses the integer in a "Key = Value" line.
func parseAssignedInt(line string) (int, bool) {
	_, value, found := strings.Cut(line, "=")
	if !found {
		return 0, false
	}

	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseVolumeCount derives the number of virtual drives of one controller from
// "storcli /cN/vall show": the position of the closing divider in the lines that
// follow the fixed header block. The last divider wins; none means zero.
func parseVolumeCount(lines []string) int {
	if len(lines) <= vdListHeaderLines {
		return 0
	}

	count := 0
	for i, line := range lines[vdListHeaderLines:] {
		if line == vdListDivider {
			count = i
		}
	}
	return count
}

// parseOSDriveName finds the OS block device of a virtual drive in "storcli /cN/vM show all".
func parseOSDriveName(lines []string) (string, bool) {
	for _, line := range lines {
		if strings.HasPrefix(line, osDriveNamePrefix) {
			_, name, _ := strings.Cut(line, " = ")
			name = strings.TrimSpace(name)
			return name, name != ""
		}
	}
	return "", false
}

// parseSSDDeviceIDs lists the DIDs of the SSD members of a virtual drive in
// "storcli /cN/vM show all", in table order without duplicates.
func parseSSDDeviceIDs(lines []string) []int {
	header, stop := -1, -1
	for i, line := range lines {
		if strings.HasPrefix(line, pdTableHeaderPrefix) {
			header = i
		}
		if line == pdTableDivider {
			stop = i
		}
	}
	if header < 0 {
		return nil
	}

	start := header + pdTableHeaderRows
	if stop < start {
		return nil
	}

	offset := mediumOffset(lines[header])

	ids := []int{}
	for _, row := range lines[start:stop] {
		if !isSSDRow(row, offset) {
			continue
		}

		fields := strings.Fields(row)
		if len(fields) <= pdDeviceIDField {
			continue
		}

		did, err := strconv.Atoi(fields[pdDeviceIDField])
		if err != nil {
			continue
		}
		ids = append(ids, did)
	}

	return lo.Uniq(ids)
}

func mediumOffset(header string) int {
	if i := strings.Index(header, " "+pdMediumLabel+" "); i >= 0 {
		return i + 1
	}
	return pdMediumDefaultOffset
}

func isSSDRow(row string, offset int) bool {
	if len(row) < offset+pdMediumWidth {
		return false
	}
	return row[offset:offset+pdMediumWidth] == pdMediumSSD
}

// =============================================================================
// smartctl output layout
// =============================================================================

// smartValueField is the normalized VALUE column of a "smartctl -A" attribute row:
// ID# ATTRIBUTE_NAME FLAG VALUE WORST THRESH TYPE UPDATED WHEN_FAILED RAW_VALUE
const smartValueField = 3

// Attribute IDs reporting remaining endurance: 177 Wear_Leveling_Count (Samsung and
// others) and 233 Media_Wearout_Indicator (Intel).
var wearAttributeIDs = []string{"177", "233"}

// parseSmartWearLevel extracts the wear level from "smartctl -A". The first wear
// attribute row decides.
func parseSmartWearLevel(lines []string) (int, bool) {
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) == 0 || !lo.Contains(wearAttributeIDs, fields[0]) {
			continue
		}

		if len(fields) <= smartValueField {
			return 0, false
		}

		n, err := strconv.Atoi(fields[smartValueField])
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// =============================================================================
// lsblk and nvme-cli output layout
// =============================================================================

const (
	devPrefix      = "/dev/"
	nvmeNamePrefix = "nvme"

	// "nvme intel smart-log-add" row, e.g. "wear_leveling   : 97%   min: 29, max: 33, avg: 31".
	nvmeWearPrefix = "wear_leveling"
	nvmeWearWidth  = 5

	// "lsblk -d -o rota,name" value for non-rotating media.
	nonRotational = "0"
)

// parseNVMeDevices picks the NVMe namespace from "lsblk -d -o name". Only the last
// NVMe device listed is kept.
func parseNVMeDevices(lines []string) []string {
	devices := []string{}
	for _, line := range lines {
		name := strings.TrimSpace(line)
		if strings.HasPrefix(name, nvmeNamePrefix) {
			devices = []string{devPrefix + name}
		}
	}
	return devices
}

// parseNVMeWearLevel extracts the wear level from "nvme intel smart-log-add". The
// percentage is the first five characters after the first colon.
func parseNVMeWearLevel(lines []string) (int, bool) {
	for _, line := range lines {
		if !strings.HasPrefix(line, nvmeWearPrefix) {
			continue
		}

		parts := strings.Split(line, ":")
		if len(parts) < 2 {
			return 0, false
		}

		value := parts[1]
		if len(value) > nvmeWearWidth {
			value = value[:nvmeWearWidth]
		}
		value = strings.TrimSpace(strings.Trim(strings.TrimSpace(value), "%"))

		n, err := strconv.Atoi(value)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// parseSolidStateDevices lists the non-rotating, non-NVMe disks of "lsblk -d -o rota,name".
func parseSolidStateDevices(lines []string) []string {
	devices := []string{}
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) < 2 || fields[0] != nonRotational {
			continue
		}
		if strings.Contains(fields[1], nvmeNamePrefix) {
			continue
		}
		devices = append(devices, devPrefix+fields[1])
	}
	return devices
}
