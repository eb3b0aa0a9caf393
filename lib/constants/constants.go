package constants

const (
	DefaultMountPoint     = "/mnt"
	DefaultProcDirectory  = "/proc"
	DefaultSysfsDirectory = "/sys"
	DefaultDevDirectory   = "/dev"

	EfiVariablesDirectory = "/sys/firmware/efi"

	DefaultMirrorlistFile = "/etc/pacman.d/mirrorlist"
	DefaultPacmanConfFile = "/etc/pacman.conf"
	PacmanLockFile        = "/var/lib/pacman/db.lck"

	// Globally anycast mirror used when an operator-selected mirror has
	// already failed once.
	FallbackMirror = "https://geo.mirror.pkgbuild.com/$repo/os/$arch"

	LogDirectory       = "/var/log/osprey-installer"
	ActionLogFile      = LogDirectory + "/install.log"
	SessionLogFile     = LogDirectory + "/session.log"
	ReportFile         = LogDirectory + "/report.json"
	TargetLogDirectory = "/var/log/osprey-installer"

	DefaultTemplateDirectory = "/usr/share/osprey-installer/templates"

	EfiPartitionMiB = 512

	// Temporary swap-file tiers, sized from free space on the target.
	SwapFileTier1FreeKiB = 1500000
	SwapFileTier1SizeMiB = 1024
	SwapFileTier2FreeKiB = 800000
	SwapFileTier2SizeMiB = 512

	MirrorRankTimeoutSeconds = 90

	OutputTailLines = 50
)
