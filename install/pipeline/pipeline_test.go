package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/osprey-linux/installer/install/plan"
	"github.com/osprey-linux/installer/install/report"
	"github.com/osprey-linux/installer/lib/log/testlogger"
	"github.com/osprey-linux/installer/lib/prompt/testprompt"
	"github.com/osprey-linux/installer/lib/runner/testrunner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const generatedFstab = `UUID=11111111-2222-3333-4444-555555555555	/	ext4	rw,relatime	0 1
`

type fixture struct {
	pipeline  *Pipeline
	runner    *testrunner.Runner
	options   Options
	logDir    string
	actionLog *report.ActionLog
}

func makeFixture(t *testing.T, device string, partitions []string) *fixture {
	topDir := t.TempDir()
	options := Options{
		DevDirectory:      filepath.Join(topDir, "dev"),
		MirrorlistFile:    filepath.Join(topDir, "mirrorlist"),
		MountPoint:        filepath.Join(topDir, "mnt"),
		PacmanConfFile:    filepath.Join(topDir, "pacman.conf"),
		ProcDirectory:     filepath.Join(topDir, "proc"),
		SysfsDirectory:    filepath.Join(topDir, "sys"),
		TemplateDirectory: filepath.Join(topDir, "templates"),
	}
	require.NoError(t, os.MkdirAll(options.ProcDirectory, 0755))
	require.NoError(t, os.MkdirAll(options.DevDirectory, 0755))
	require.NoError(t,
		os.WriteFile(options.PacmanConfFile, []byte("[options]\n"), 0644))
	blockDir := filepath.Join(options.SysfsDirectory, "class", "block",
		filepath.Base(device))
	for _, partition := range partitions {
		require.NoError(t,
			os.MkdirAll(filepath.Join(blockDir, partition), 0755))
	}
	for _, dir := range []string{"etc/default", "etc/sudoers.d",
		"etc/systemd"} {
		require.NoError(t,
			os.MkdirAll(filepath.Join(options.MountPoint, dir), 0755))
	}
	require.NoError(t, os.WriteFile(
		filepath.Join(options.MountPoint, "etc", "locale.gen"),
		[]byte("#en_US.UTF-8 UTF-8\n"), 0644))
	logger := testlogger.New(t)
	logDir := filepath.Join(topDir, "log")
	actionLog, err := report.New(report.Options{LogDirectory: logDir},
		logger)
	require.NoError(t, err)
	t.Cleanup(func() { actionLog.Close() })
	r := testrunner.New()
	r.PushResult("genfstab", generatedFstab, nil)
	return &fixture{
		pipeline:  New(options, r, actionLog, logger),
		runner:    r,
		options:   options,
		logDir:    logDir,
		actionLog: actionLog,
	}
}

func makePlan(t *testing.T, device string) *plan.Plan {
	installPlan := &plan.Plan{
		AccountName:    "alice",
		AccountSecret:  "hunter2",
		DesktopVariant: "openbox",
		Hostname:       "osprey",
		KeyboardLayout: "us",
		Locale:         "en_US.UTF-8",
		MirrorMode:     plan.MirrorAuto,
		TargetDevice:   device,
		Timezone:       "UTC",
	}
	prompter := &testprompt.Prompter{Strings: []string{device, device}}
	require.NoError(t, installPlan.ConfirmTarget(prompter))
	return installPlan
}

func indexOf(t *testing.T, lines []string, wantPrefix string) int {
	for index, line := range lines {
		if strings.HasPrefix(line, wantPrefix) {
			return index
		}
	}
	t.Fatalf("command not found: %s", wantPrefix)
	return -1
}

func TestRunRefusesUnconfirmedPlan(t *testing.T) {
	f := makeFixture(t, "/dev/sda", []string{"sda1", "sda2"})
	installPlan := &plan.Plan{
		AccountName:    "alice",
		AccountSecret:  "hunter2",
		DesktopVariant: "openbox",
		Hostname:       "osprey",
		KeyboardLayout: "us",
		Locale:         "en_US.UTF-8",
		MirrorMode:     plan.MirrorAuto,
		TargetDevice:   "/dev/sda",
		Timezone:       "UTC",
	}
	prompter := &testprompt.Prompter{Strings: []string{"/dev/sda",
		"/dev/sdb"}}
	assert.Error(t, installPlan.ConfirmTarget(prompter))
	_, err := f.pipeline.Run(installPlan)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not confirmed")
	assert.Empty(t, f.runner.Calls())
}

func TestRunEfiWorkstation(t *testing.T) {
	f := makeFixture(t, "/dev/sda", []string{"sda1", "sda2"})
	installPlan := makePlan(t, "/dev/sda")
	installPlan.UEFI = true
	summary, err := f.pipeline.Run(installPlan)
	require.NoError(t, err)
	assert.True(t, summary.UEFI)
	assert.Equal(t, "/dev/sda", summary.TargetDevice)
	assert.Equal(t, "ranked mirror list", summary.MirrorDescription)
	assert.Equal(t, f.actionLog.RunID(), summary.RunID)
	require.Len(t, summary.Attempts, 1)
	assert.True(t, summary.Attempts[0].Succeeded)
	lines := f.runner.CommandLines()
	// Destructive ordering: reclaim, wipe, partition, provision, boot.
	umount := indexOf(t, lines, "umount -R")
	wipe := indexOf(t, lines, "wipefs")
	parted := indexOf(t, lines, "parted")
	pacstrap := indexOf(t, lines, "pacstrap")
	grub := indexOf(t, lines, "grub-install")
	assert.Less(t, umount, wipe)
	assert.Less(t, wipe, parted)
	assert.Less(t, parted, pacstrap)
	assert.Less(t, pacstrap, grub)
	assert.Contains(t, lines, "grub-install --target=x86_64-efi "+
		"--efi-directory=/boot --bootloader-id=GRUB")
	assert.Contains(t, lines[pacstrap], "efibootmgr")
	assert.Contains(t, lines, "systemctl disable sshd.service")
	// No templates were installed: theming warned and fell back.
	assert.NotEmpty(t, summary.Warnings)
	data, err := os.ReadFile(filepath.Join(f.logDir, "install.log"))
	require.NoError(t, err)
	for _, stage := range []string{"reclaim", "partition", "mirrors",
		"provision", "configure", "bootloader"} {
		assert.Contains(t, string(data), stage)
	}
	// Logs and summary were copied into the target.
	targetLogDir := filepath.Join(f.options.MountPoint, "var", "log",
		"osprey-installer")
	_, err = os.Stat(filepath.Join(targetLogDir, "install.log"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(targetLogDir, "report.json"))
	assert.NoError(t, err)
}

func TestRunBiosGamingLowMemory(t *testing.T) {
	f := makeFixture(t, "/dev/vda", []string{"vda1"})
	installPlan := makePlan(t, "/dev/vda")
	installPlan.GamingProfile = true
	installPlan.LowMemory = true
	installPlan.MirrorMode = plan.MirrorSafe
	summary, err := f.pipeline.Run(installPlan)
	require.NoError(t, err)
	assert.False(t, summary.UEFI)
	assert.Contains(t, summary.MirrorDescription, "serial downloads")
	lines := f.runner.CommandLines()
	assert.Contains(t, lines, "grub-install --target=i386-pc /dev/vda")
	assert.Zero(t, f.runner.NumCalls("reflector"))
	// Safe profile: the bootstrap runs at minimum priority.
	assert.Zero(t, f.runner.NumCalls("pacstrap"))
	nice := lines[indexOf(t, lines, "nice -n 19 ionice -c 3 pacstrap")]
	assert.Contains(t, nice, "steam")
	assert.NotContains(t, nice, "efibootmgr")
	conf, err := os.ReadFile(f.options.PacmanConfFile)
	require.NoError(t, err)
	assert.Contains(t, string(conf), "ParallelDownloads = 1")
	governor, err := os.ReadFile(filepath.Join(f.options.MountPoint, "etc",
		"default", "cpupower"))
	require.NoError(t, err)
	assert.Equal(t, "governor='performance'\n", string(governor))
	_, err = os.Stat(filepath.Join(f.options.MountPoint, "etc", "systemd",
		"zram-generator.conf"))
	assert.NoError(t, err)
}
