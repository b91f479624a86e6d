package utils

import (
	"strings"
)

// NormalizeOSName maps self-reported OS names onto a small canonical set so
// that agents running the same distro group together regardless of how their
// platform string is spelled.
func NormalizeOSName(osName string) string {
	osName = strings.ToLower(strings.TrimSpace(osName))
	switch {
	case strings.Contains(osName, "ubuntu"):
		return "ubuntu"
	case strings.Contains(osName, "debian"):
		return "debian"
	case strings.Contains(osName, "centos"):
		return "centos"
	case strings.Contains(osName, "rhel"), strings.Contains(osName, "redhat"):
		return "rhel"
	case strings.Contains(osName, "fedora"):
		return "fedora"
	case strings.Contains(osName, "amazon"), strings.Contains(osName, "amzn"):
		return "amazon-linux"
	case strings.Contains(osName, "darwin"), strings.Contains(osName, "macos"):
		return "macos"
	case strings.Contains(osName, "windows"):
		return "windows"
	default:
		return osName
	}
}

// NormalizeArch normalizes architecture name
func NormalizeArch(arch string) string {
	switch strings.ToLower(strings.TrimSpace(arch)) {
	case "x86_64", "amd64":
		return "amd64"
	case "aarch64", "arm64":
		return "arm64"
	case "i386", "i686", "x86":
		return "i386"
	default:
		return strings.ToLower(strings.TrimSpace(arch))
	}
}
