// Package platform provides host platform detection and package manager
// discovery.
package platform

import "runtime"

// OS represents the operating system family.
type OS string

const (
	// OSDarwin is macOS.
	OSDarwin OS = "darwin"
	// OSLinux is Linux.
	OSLinux OS = "linux"
	// OSWindows is Windows.
	OSWindows OS = "windows"
)

// Detect returns the OS family of the current host. The result is always a
// member of the closed set; unrecognized hosts resolve to linux. That
// fallback is intentional: package manager probing degrades gracefully on
// an unknown Unix, whereas refusing to run helps nobody.
func Detect() OS {
	return FromGOOS(runtime.GOOS)
}

// FromGOOS maps a GOOS-style string to an OS family.
func FromGOOS(goos string) OS {
	switch goos {
	case "darwin":
		return OSDarwin
	case "windows":
		return OSWindows
	default:
		return OSLinux
	}
}

// String returns the OS family name.
func (o OS) String() string {
	return string(o)
}

// DisplayName returns a human-readable OS name for summaries.
func (o OS) DisplayName() string {
	switch o {
	case OSDarwin:
		return "macOS"
	case OSWindows:
		return "Windows"
	default:
		return "Linux"
	}
}
