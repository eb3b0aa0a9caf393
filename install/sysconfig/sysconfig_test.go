package sysconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/osprey-linux/installer/install/plan"
	"github.com/osprey-linux/installer/lib/log/testlogger"
	"github.com/osprey-linux/installer/lib/runner/testrunner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const generatedFstab = `# /dev/sda2
UUID=11111111-2222-3333-4444-555555555555	/	ext4	rw,relatime	0 1

# /dev/sda1
UUID=ABCD-EF01	/boot	vfat	rw,relatime,fmask=0022	0 2
`

func makeConfigurator(t *testing.T) (*Configurator, *testrunner.Runner) {
	topDir := t.TempDir()
	options := Options{
		MountPoint:        filepath.Join(topDir, "mnt"),
		SysfsDirectory:    filepath.Join(topDir, "sys"),
		TemplateDirectory: filepath.Join(topDir, "templates"),
	}
	for _, dir := range []string{"etc/default", "etc/sudoers.d",
		"etc/systemd"} {
		require.NoError(t,
			os.MkdirAll(filepath.Join(options.MountPoint, dir), 0755))
	}
	require.NoError(t, os.WriteFile(
		filepath.Join(options.MountPoint, "etc", "locale.gen"),
		[]byte("#de_DE.UTF-8 UTF-8\n#en_US.UTF-8 UTF-8\n"), 0644))
	r := testrunner.New()
	return New(options, r, testlogger.New(t)), r
}

func makePlan() *plan.Plan {
	return &plan.Plan{
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
}

func readTargetFile(t *testing.T, c *Configurator, relPath string) string {
	data, err := os.ReadFile(filepath.Join(c.options.MountPoint, relPath))
	require.NoError(t, err)
	return string(data)
}

func TestFileSystemTableNoatime(t *testing.T) {
	c, r := makeConfigurator(t)
	r.PushResult("genfstab", generatedFstab, nil)
	require.NoError(t, c.writeFileSystemTable())
	fstab := readTargetFile(t, c, "etc/fstab")
	assert.Contains(t, fstab, "noatime")
	assert.NotContains(t, fstab, "relatime")
	assert.Contains(t, fstab, "UUID=11111111-2222-3333-4444-555555555555")
}

func TestFileSystemTableEmptyIsFatal(t *testing.T) {
	c, _ := makeConfigurator(t)
	assert.Error(t, c.writeFileSystemTable())
}

func TestConfigureLocale(t *testing.T) {
	c, r := makeConfigurator(t)
	require.NoError(t, c.configureLocale(makePlan()))
	localeGen := readTargetFile(t, c, "etc/locale.gen")
	assert.Contains(t, localeGen, "\nen_US.UTF-8 UTF-8")
	assert.Contains(t, localeGen, "#de_DE.UTF-8")
	assert.Equal(t, "LANG=en_US.UTF-8\n", readTargetFile(t, c,
		"etc/locale.conf"))
	assert.Equal(t, "KEYMAP=us\n", readTargetFile(t, c, "etc/vconsole.conf"))
	lines := r.CommandLines()
	assert.Contains(t, lines, "locale-gen")
	assert.Contains(t, lines,
		"ln -sf /usr/share/zoneinfo/UTC /etc/localtime")
	for _, call := range r.Calls() {
		assert.Equal(t, c.options.MountPoint, call.Chroot)
	}
}

func TestCreateAccounts(t *testing.T) {
	c, r := makeConfigurator(t)
	require.NoError(t, c.createAccounts(makePlan()))
	assert.Contains(t, r.CommandLines(),
		"useradd -m -G wheel,audio,video,input,storage -s /bin/bash alice")
	var inputs []string
	for _, call := range r.Calls() {
		if call.Name == "chpasswd" {
			inputs = append(inputs, call.Input)
		}
	}
	assert.Equal(t, []string{"alice:hunter2\n", "root:hunter2\n"}, inputs)
	fileInfo, err := os.Stat(filepath.Join(c.options.MountPoint, "etc",
		"sudoers.d", "10-wheel"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0440), fileInfo.Mode().Perm())
}

func TestCreateAccountsFailureIsFatal(t *testing.T) {
	c, r := makeConfigurator(t)
	r.SetError("useradd", fmt.Errorf("exit status 1"))
	assert.Error(t, c.createAccounts(makePlan()))
}

func TestEnableServices(t *testing.T) {
	c, r := makeConfigurator(t)
	installPlan := makePlan()
	installPlan.VMVariant = "qemu"
	c.enableServices(installPlan)
	lines := r.CommandLines()
	assert.Contains(t, lines, "systemctl enable NetworkManager.service")
	assert.Contains(t, lines, "systemctl enable lightdm.service")
	assert.Contains(t, lines, "systemctl enable qemu-guest-agent.service")
	// SSH was not requested: it is explicitly disabled.
	assert.Contains(t, lines, "systemctl disable sshd.service")
	assert.NotContains(t, lines, "systemctl enable sshd.service")
	// Rotational state is unknown in this environment: no periodic trim.
	assert.NotContains(t, lines, "systemctl enable fstrim.timer")
	assert.Empty(t, c.Warnings())
}

func TestEnableServicesFailuresAreWarnings(t *testing.T) {
	c, r := makeConfigurator(t)
	r.SetError("systemctl", fmt.Errorf("no such unit"))
	c.enableServices(makePlan())
	assert.NotEmpty(t, c.Warnings())
}

func TestFstrimOnFlashStorage(t *testing.T) {
	c, r := makeConfigurator(t)
	queueDir := filepath.Join(c.options.SysfsDirectory, "class", "block",
		"sda", "queue")
	require.NoError(t, os.MkdirAll(queueDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(queueDir, "rotational"),
		[]byte("0\n"), 0644))
	c.enableServices(makePlan())
	assert.Contains(t, r.CommandLines(), "systemctl enable fstrim.timer")
}

func TestConfigurePerformance(t *testing.T) {
	c, _ := makeConfigurator(t)
	installPlan := makePlan()
	installPlan.GamingProfile = true
	installPlan.LowMemory = true
	c.configurePerformance(installPlan)
	assert.Equal(t, "governor='performance'\n",
		readTargetFile(t, c, "etc/default/cpupower"))
	assert.Contains(t, readTargetFile(t, c,
		"etc/systemd/zram-generator.conf"), "zram-size")

	c, _ = makeConfigurator(t)
	c.configurePerformance(makePlan())
	assert.Equal(t, "governor='schedutil'\n",
		readTargetFile(t, c, "etc/default/cpupower"))
	_, err := os.Stat(filepath.Join(c.options.MountPoint, "etc", "systemd",
		"zram-generator.conf"))
	assert.True(t, os.IsNotExist(err))
}

func TestApplyThemeTemplates(t *testing.T) {
	c, _ := makeConfigurator(t)
	templateFile := filepath.Join(c.options.TemplateDirectory, "etc", "skel",
		".gtkrc-2.0")
	require.NoError(t, os.MkdirAll(filepath.Dir(templateFile), 0755))
	require.NoError(t, os.WriteFile(templateFile,
		[]byte("gtk-theme-name = \"@THEME@\" # for @USER@\n"), 0644))
	c.applyTheme(makePlan())
	rendered := readTargetFile(t, c, "etc/skel/.gtkrc-2.0")
	assert.Contains(t, rendered, "Arc-Dark")
	assert.Contains(t, rendered, "alice")
	assert.NotContains(t, rendered, "@THEME@")
	assert.Empty(t, c.Warnings())
}

func TestApplyThemeBuiltinFallback(t *testing.T) {
	c, _ := makeConfigurator(t)
	c.applyTheme(makePlan())
	assert.NotEmpty(t, c.Warnings())
	greeter := readTargetFile(t, c, "etc/lightdm/lightdm-gtk-greeter.conf")
	assert.Contains(t, greeter, "Arc-Dark")
	assert.Contains(t, greeter, "keyboard = us")
}

func TestStripFootprint(t *testing.T) {
	c, _ := makeConfigurator(t)
	localeDir := filepath.Join(c.options.MountPoint, "usr", "share",
		"locale")
	for _, name := range []string{"de", "de_DE", "en", "en_GB", "fr", "ja"} {
		require.NoError(t, os.MkdirAll(filepath.Join(localeDir, name), 0755))
	}
	manDir := filepath.Join(c.options.MountPoint, "usr", "share", "man")
	require.NoError(t, os.MkdirAll(manDir, 0755))
	installPlan := makePlan()
	installPlan.Locale = "de_DE.UTF-8"
	c.stripFootprint(installPlan)
	var kept []string
	entries, err := os.ReadDir(localeDir)
	require.NoError(t, err)
	for _, entry := range entries {
		kept = append(kept, entry.Name())
	}
	// Only the selected language (all regional variants) survives.
	assert.ElementsMatch(t, []string{"de", "de_DE"}, kept)
	_, err = os.Stat(manDir)
	assert.True(t, os.IsNotExist(err))
}

func commandIndex(t *testing.T, lines []string, wantPrefix string) int {
	for index, line := range lines {
		if strings.HasPrefix(line, wantPrefix) {
			return index
		}
	}
	t.Fatalf("command not found: %s", wantPrefix)
	return -1
}

func TestConfigureFullRun(t *testing.T) {
	c, r := makeConfigurator(t)
	r.PushResult("genfstab", generatedFstab, nil)
	require.NoError(t, c.Configure(makePlan()))
	lines := r.CommandLines()
	joined := strings.Join(lines, "\n")
	assert.Contains(t, joined, "locale-gen")
	assert.Contains(t, joined, "useradd")
	assert.Contains(t, joined, "ufw default deny incoming")
	// The file-system table is generated after the service and firewall
	// steps, once nothing else will touch the mounts.
	assert.Greater(t, commandIndex(t, lines, "genfstab"),
		commandIndex(t, lines, "ufw default deny incoming"))
}
