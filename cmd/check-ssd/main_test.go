package main

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/nuclearlighters/check-ssd/internal/config"
	"github.com/nuclearlighters/check-ssd/internal/controllers"
	"github.com/nuclearlighters/check-ssd/internal/report"
	"github.com/nuclearlighters/check-ssd/internal/toolexec/toolexectest"
)

const smartAttributes = `smartctl 7.3 2022-02-28 r5338 [x86_64-linux-6.1.0-18-amd64] (local build)

=== START OF READ SMART DATA SECTION ===
ID# ATTRIBUTE_NAME          FLAG     VALUE WORST THRESH TYPE      UPDATED  WHEN_FAILED RAW_VALUE
  9 Power_On_Hours          0x0032   097   097   000    Old_age   Always       -       13524
177 Wear_Leveling_Count     0x0013   %s   %s   005    Pre-fail  Always       -       312
`

func smartWithValue(v string) string {
	return fmt.Sprintf(smartAttributes, v, v)
}

func TestRun(t *testing.T) {
	tests := []struct {
		name   string
		script *toolexectest.Script
		want   string
		status report.Status
	}{
		{
			name:   "no tools installed",
			script: toolexectest.New(),
			want:   "SSD OK: All SSDs are healthy|\n",
			status: report.StatusOK,
		},
		{
			name: "healthy ssd",
			script: toolexectest.New().
				WithTools(controllers.LsblkPath, controllers.SmartctlPath).
				On(controllers.LsblkPath+" -d -o rota,name", "ROTA NAME\n   0 sda\n   1 sdb\n").
				On(controllers.SmartctlPath+" -A -d auto /dev/sda", smartWithValue("085")),
			want:   "SSD OK: All SSDs are healthy|/dev/sda=0:85%;\n",
			status: report.StatusOK,
		},
		{
			name: "worn ssd",
			script: toolexectest.New().
				WithTools(controllers.LsblkPath, controllers.SmartctlPath).
				On(controllers.LsblkPath+" -d -o rota,name", "ROTA NAME\n   0 sda\n   0 sdc\n").
				On(controllers.SmartctlPath+" -A -d auto /dev/sda", smartWithValue("085")).
				On(controllers.SmartctlPath+" -A -d auto /dev/sdc", smartWithValue("005")),
			want:   "SSD CRITICAL: One or more below 10% lifetime|/dev/sda=0:85%;/dev/sdc=0:5%;\n",
			status: report.StatusCritical,
		},
		{
			name: "ssd without wear attribute",
			script: toolexectest.New().
				WithTools(controllers.LsblkPath, controllers.SmartctlPath).
				On(controllers.LsblkPath+" -d -o rota,name", "ROTA NAME\n   0 sda\n"),
			want:   "SSD OK: All SSDs are healthy|/dev/sda=;\n",
			status: report.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Defaults()
			cfg.DescribeHost = false

			var out bytes.Buffer
			status := run(context.Background(), cfg, tt.script, &out)

			if out.String() != tt.want {
				t.Errorf("output = %q, want %q", out.String(), tt.want)
			}
			if status != tt.status {
				t.Errorf("status = %v, want %v", status, tt.status)
			}
		})
	}
}
