package core

import "strings"

// LocationMode selects between a cloud grid and the local machine.
type LocationMode int

const (
	LocationUnknown LocationMode = iota
	LocationLocal
	LocationCloud
)

// String returns the flag spelling of the mode ("y" for cloud, "n" for local).
func (m LocationMode) String() string {
	switch m {
	case LocationCloud:
		return "y"
	case LocationLocal:
		return "n"
	default:
		return "unknown"
	}
}

// ParseLocationMode accepts "y" (cloud) or "n" (local), case-insensitively.
func ParseLocationMode(flag string) (LocationMode, error) {
	switch strings.ToLower(strings.TrimSpace(flag)) {
	case "y":
		return LocationCloud, nil
	case "n":
		return LocationLocal, nil
	}
	return LocationUnknown, ErrUnknownLocationMode.WithDetails(map[string]interface{}{
		"mode": flag,
	})
}

// MobileTarget is where a mobile session runs. Exactly one is chosen per session.
type MobileTarget int

const (
	MobileTargetUnknown MobileTarget = iota
	PhysicalDevice
	Emulator
	CloudGrid
)

// String returns the string representation of MobileTarget
func (t MobileTarget) String() string {
	switch t {
	case PhysicalDevice:
		return "device"
	case Emulator:
		return "emulator"
	case CloudGrid:
		return "cloud"
	default:
		return "unknown"
	}
}

// ParseMobileTarget resolves "device", "emulator" or "cloud".
func ParseMobileTarget(name string) (MobileTarget, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "device", "physical":
		return PhysicalDevice, nil
	case "emulator", "simulator":
		return Emulator, nil
	case "cloud", "sauce":
		return CloudGrid, nil
	}
	return MobileTargetUnknown, ErrUnknownMobileTarget.WithDetails(map[string]interface{}{
		"target": name,
	})
}

// MobileTargetFromFlags converts the three legacy selection flags into a
// single target. Zero or several set flags are rejected.
func MobileTargetFromFlags(cloud, physical, emulator bool) (MobileTarget, error) {
	var selected []MobileTarget
	if physical {
		selected = append(selected, PhysicalDevice)
	}
	if emulator {
		selected = append(selected, Emulator)
	}
	if cloud {
		selected = append(selected, CloudGrid)
	}
	if len(selected) != 1 {
		return MobileTargetUnknown, ErrAmbiguousMobileTarget.WithDetails(map[string]interface{}{
			"cloud":    cloud,
			"device":   physical,
			"emulator": emulator,
		})
	}
	return selected[0], nil
}

// ParseFlag reads a "y"/"n" style flag. Anything other than "y" is false.
func ParseFlag(flag string) bool {
	return strings.EqualFold(strings.TrimSpace(flag), "y")
}
