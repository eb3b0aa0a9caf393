/*
Package report records what the installer did. The action log is an
append-only, timestamped record of every destructive and configuring action,
written as it happens so a crash mid-install still leaves evidence. At the
end of a successful run the log and a machine-readable summary are copied
into the installed system.
*/
package report

import (
	"io"
	"time"

	"github.com/osprey-linux/installer/install/provision"
	"github.com/osprey-linux/installer/lib/log"
)

type Options struct {
	LogDirectory string // Default: "/var/log/osprey-installer".
}

type ActionLog struct {
	options Options
	logger  log.DebugLogger
	runID   string
	file    io.WriteCloser
}

// Summary is the machine-readable record of a completed run.
type Summary struct {
	AccountName       string              `json:"accountName"`
	Attempts          []provision.Attempt `json:"attempts,omitempty"`
	DesktopVariant    string              `json:"desktopVariant"`
	Duration          string              `json:"duration"`
	FinishedAt        time.Time           `json:"finishedAt"`
	Hostname          string              `json:"hostname"`
	KeyboardLayout    string              `json:"keyboardLayout"`
	Locale            string              `json:"locale"`
	LogDirectory      string              `json:"logDirectory"`
	MirrorDescription string              `json:"mirrorDescription"`
	RunID             string              `json:"runId"`
	TargetDevice      string              `json:"targetDevice"`
	Timezone          string              `json:"timezone"`
	UEFI              bool                `json:"uefi"`
	Warnings          []string            `json:"warnings,omitempty"`
}

// New will create an ActionLog, creating the log directory if needed and
// opening the log file in append mode. Each run is headed by a fresh run ID.
func New(options Options, logger log.DebugLogger) (*ActionLog, error) {
	return newActionLog(options, logger)
}

// Close will close the underlying log file.
func (l *ActionLog) Close() error {
	return l.file.Close()
}

// CopyInto will copy the action log and the raw session log into the
// installed system rooted at targetRoot.
func (l *ActionLog) CopyInto(targetRoot string) error {
	return l.copyInto(targetRoot)
}

// Record will append one timestamped entry for the specified component and
// action. A nil err records success.
func (l *ActionLog) Record(component, action string, err error) {
	l.record(component, action, err)
}

// LogDirectory will return the directory holding the log files.
func (l *ActionLog) LogDirectory() string {
	return l.options.LogDirectory
}

// RunID will return the identifier of this run.
func (l *ActionLog) RunID() string {
	return l.runID
}

// WriteSummary will write the summary as JSON next to the action log and,
// if targetRoot is not empty, into the installed system as well.
func (l *ActionLog) WriteSummary(summary *Summary, targetRoot string) error {
	return l.writeSummary(summary, targetRoot)
}

// PrintSummary will write a human-readable rendition of the summary to w.
func PrintSummary(w io.Writer, summary *Summary) {
	printSummary(w, summary)
}
