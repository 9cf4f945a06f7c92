package controllers

import (
	"fmt"
	"strings"
)

var (
	dash63 = strings.Repeat("-", 63)
	dash88 = strings.Repeat("-", 88)
)

func ctrlCountOutput(n int) string {
	return fmt.Sprintf(`CLI Version = 007.1017.0000.0000 May 10, 2019
Operating system = Linux 5.4.0-42-generic
Status Code = 0
Status = Success
Description = None

Controller Count = %d
`, n)
}

// vallOutput renders "storcli /cN/vall show" with one row per volume.
func vallOutput(controller int, volumes int) string {
	var b strings.Builder
	fmt.Fprintf(&b, `CLI Version = 007.1017.0000.0000 May 10, 2019
Operating system = Linux 5.4.0-42-generic
Controller = %d
Status = Success
Description = None


Virtual Drives :
==============

%s
DG/VD TYPE  State Access Consist Cache Cac sCC       Size Name
%s
`, controller, dash63, dash63)

	for v := 0; v < volumes; v++ {
		fmt.Fprintf(&b, "%d/%d   RAID1 Optl  RW     Yes     RWBD  -   ON  893.750 GB\n", v, v)
	}

	fmt.Fprintf(&b, `%s

Cac=CacheCade|Rec=Recovery|OfLn=OffLine|Pdgd=Partially Degraded|Dgrd=Degraded
Optl=Optimal|RO=Read Only|RW=Read Write|HD=Hidden|TRANS=TransportReady|B=Blocked|
`, dash63)

	return b.String()
}

// pdRow renders one row of the physical drive table with the medium at offset 37.
func pdRow(slot, did int, medium string) string {
	return fmt.Sprintf("252:%d %5d Onln   0 893.750 GB SATA %s N   N  512B SAMSUNG MZ7LM960HMJP-00005 U  -", slot, did, medium)
}

// showAllOutput renders "storcli /cN/vM show all". An empty osDrive leaves the
// "OS Drive Name" property out.
func showAllOutput(controller, volume int, osDrive string, rows ...string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `CLI Version = 007.1017.0000.0000 May 10, 2019
Operating system = Linux 5.4.0-42-generic
Controller = %d
Status = Success
Description = None


/c%d/v%d :
======

%s
DG/VD TYPE  State Access Consist Cache Cac sCC       Size Name
%s
%d/%d   RAID1 Optl  RW     Yes     RWBD  -   ON  893.750 GB
%s

PDs for VD %d :
============

%s
EID:Slt DID State DG       Size Intf Med SED PI SeSz Model                      Sp Type
%s
`, controller, controller, volume, dash63, dash63, volume, volume, dash63, volume, dash88, dash88)

	for _, row := range rows {
		b.WriteString(row + "\n")
	}

	fmt.Fprintf(&b, `%s

EID=Enclosure Device ID|Slt=Slot No|DID=Device ID|DG=DriveGroup|DHS=Dedicated Hot Spare

VD%d Properties :
==============
Strip Size = 256 KB
Number of Blocks = 1874329600
Span Depth = 1
Number of Drives Per Span = 2
Write Cache(initial setting) = WriteBack
`, dash88, volume)

	if osDrive != "" {
		fmt.Fprintf(&b, "OS Drive Name = %s\n", osDrive)
	}
	b.WriteString("Creation Date = 07-08-2020\nCreation Time = 10:22:31 AM\n")

	return b.String()
}

func smartctlOutput(rows ...string) string {
	return `smartctl 7.1 2019-12-30 r5022 [x86_64-linux-5.4.0-42-generic] (local build)
Copyright (C) 2002-19, Bruce Allen, Christian Franke, www.smartmontools.org

=== START OF READ SMART DATA SECTION ===
SMART Attributes Data Structure revision number: 1
Vendor Specific SMART Attributes with Thresholds:
ID# ATTRIBUTE_NAME          FLAG     VALUE WORST THRESH TYPE      UPDATED  WHEN_FAILED RAW_VALUE
  5 Reallocated_Sector_Ct   0x0033   100   100   010    Pre-fail  Always       -       0
  9 Power_On_Hours          0x0032   097   097   000    Old_age   Always       -       13524
` + strings.Join(rows, "\n") + "\n"
}

func wearLevelingRow(value int) string {
	return fmt.Sprintf("177 Wear_Leveling_Count     0x0013   %03d   %03d   005    Pre-fail  Always       -       312", value, value)
}

func mediaWearoutRow(value int) string {
	return fmt.Sprintf("233 Media_Wearout_Indicator 0x0032   %03d   %03d   000    Old_age   Always       -       0", value, value)
}

func nvmeSmartLogAddOutput(wear string) string {
	return `Additional Smart Log for NVME device:nvme0 namespace-id:ffffffff
key                               normalized raw
program_fail_count              : 100%       0
erase_fail_count                : 100%       0
wear_leveling                   : ` + wear + `       min: 29, max: 33, avg: 31
end_to_end_error_detection_count: 100%       0
crc_error_count                 : 100%       0
`
}
