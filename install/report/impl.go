package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/osprey-linux/installer/lib/constants"
	"github.com/osprey-linux/installer/lib/fsutil"
	"github.com/osprey-linux/installer/lib/json"
	"github.com/osprey-linux/installer/lib/log"
)

const timestampFormat = "2006-01-02 15:04:05.000"

func newActionLog(options Options, logger log.DebugLogger) (
	*ActionLog, error) {
	if options.LogDirectory == "" {
		options.LogDirectory = constants.LogDirectory
	}
	if err := os.MkdirAll(options.LogDirectory, fsutil.DirPerms); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(
		filepath.Join(options.LogDirectory, "install.log"),
		os.O_APPEND|os.O_CREATE|os.O_WRONLY, fsutil.PublicFilePerms)
	if err != nil {
		return nil, err
	}
	actionLog := &ActionLog{
		options: options,
		logger:  logger,
		runID:   uuid.New().String(),
		file:    file,
	}
	fmt.Fprintf(file, "%s === run %s ===\n",
		time.Now().Format(timestampFormat), actionLog.runID)
	return actionLog, nil
}

func (l *ActionLog) record(component, action string, err error) {
	outcome := "OK"
	if err != nil {
		outcome = "error: " + err.Error()
	}
	_, writeErr := fmt.Fprintf(l.file, "%s %s: %s: %s\n",
		time.Now().Format(timestampFormat), component, action, outcome)
	if writeErr != nil {
		// The log must never take down the install it is describing.
		l.logger.Printf("error appending to action log: %s\n", writeErr)
	}
}

func (l *ActionLog) copyInto(targetRoot string) error {
	targetDir := filepath.Join(targetRoot, constants.TargetLogDirectory)
	return fsutil.CopyTree(targetDir, l.options.LogDirectory)
}

func (l *ActionLog) writeSummary(summary *Summary, targetRoot string) error {
	filename := filepath.Join(l.options.LogDirectory, "report.json")
	if err := json.WriteToFile(filename, fsutil.PublicFilePerms, "    ",
		summary); err != nil {
		return err
	}
	if targetRoot == "" {
		return nil
	}
	targetDir := filepath.Join(targetRoot, constants.TargetLogDirectory)
	if err := os.MkdirAll(targetDir, fsutil.DirPerms); err != nil {
		return err
	}
	return json.WriteToFile(filepath.Join(targetDir, "report.json"),
		fsutil.PublicFilePerms, "    ", summary)
}

func printSummary(w io.Writer, summary *Summary) {
	firmware := "legacy BIOS"
	if summary.UEFI {
		firmware = "UEFI"
	}
	fmt.Fprintf(w, "Installation complete (run %s)\n", summary.RunID)
	fmt.Fprintf(w, "  Target:   %s (%s)\n", summary.TargetDevice, firmware)
	fmt.Fprintf(w, "  Hostname: %s\n", summary.Hostname)
	fmt.Fprintf(w, "  Account:  %s (root password matches this account)\n",
		summary.AccountName)
	fmt.Fprintf(w, "  Desktop:  %s\n", summary.DesktopVariant)
	fmt.Fprintf(w, "  Locale:   %s (keymap %s, timezone %s)\n",
		summary.Locale, summary.KeyboardLayout, summary.Timezone)
	fmt.Fprintf(w, "  Mirrors:  %s\n", summary.MirrorDescription)
	fmt.Fprintf(w, "  Duration: %s\n", summary.Duration)
	fmt.Fprintf(w, "  Logs:     %s\n", summary.LogDirectory)
	for _, attempt := range summary.Attempts {
		if !attempt.Succeeded {
			fmt.Fprintf(w, "  Package install attempt failed: %s\n",
				attempt.Error)
		}
	}
	if len(summary.Warnings) > 0 {
		fmt.Fprintf(w, "  %d warnings:\n", len(summary.Warnings))
		for _, warning := range summary.Warnings {
			fmt.Fprintf(w, "    %s\n", warning)
		}
	}
}
