package plan

// Package catalogs are pure configuration data. The install tool
// deduplicates, so overlap between sets is harmless.

func basePackages(uefi bool) []string {
	packages := []string{
		"base",
		"linux",
		"linux-firmware",
		"sudo",
		"networkmanager",
		"grub",
		"ufw",
		"cpupower",
		"zram-generator",
		"xdg-user-dirs",
		"vim",
	}
	if uefi {
		packages = append(packages, "efibootmgr")
	}
	return packages
}

func desktopPackages(variant string) []string {
	common := []string{
		"xorg-server",
		"xorg-xinit",
		"lightdm",
		"lightdm-gtk-greeter",
		"picom",
		"feh",
		"alacritty",
		"thunar",
		"cups",
		"udisks2",
		"bluez",
		"bluez-utils",
	}
	switch variant {
	case "openbox":
		return append(common, "openbox", "obconf", "tint2", "rofi")
	case "i3":
		return append(common, "i3-wm", "i3status", "i3lock", "dmenu")
	case "xfce":
		return append(common, "xfce4", "xfce4-goodies")
	default:
		return common
	}
}

func themePackages() []string {
	return []string{
		"arc-gtk-theme",
		"papirus-icon-theme",
		"ttf-dejavu",
		"ttf-jetbrains-mono",
	}
}

func vmPackages(variant string) []string {
	switch variant {
	case "qemu":
		return []string{"qemu-guest-agent", "spice-vdagent"}
	case "virtualbox":
		return []string{"virtualbox-guest-utils"}
	case "vmware":
		return []string{"open-vm-tools", "gtkmm3"}
	default:
		return nil
	}
}

func gamingPackages() []string {
	return []string{"steam", "gamemode", "mangohud"}
}
