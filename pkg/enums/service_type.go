package enums

import "fmt"

// ServiceType identifies a purchasable sub-service on a catalog service.
type ServiceType string

const (
	ServiceTypeInstallation ServiceType = "installation"
	ServiceTypeDismantling  ServiceType = "dismantling"
	ServiceTypeRepair       ServiceType = "repair"
)

var validServiceTypes = []ServiceType{
	ServiceTypeInstallation,
	ServiceTypeDismantling,
	ServiceTypeRepair,
}

// String implements fmt.Stringer.
func (s ServiceType) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ServiceType.
func (s ServiceType) IsValid() bool {
	for _, candidate := range validServiceTypes {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseServiceType converts raw input into a ServiceType.
func ParseServiceType(value string) (ServiceType, error) {
	for _, candidate := range validServiceTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid service type %q", value)
}

// ParseServiceTypes converts a slice of raw values, preserving order and
// rejecting duplicates.
func ParseServiceTypes(values []string) ([]ServiceType, error) {
	seen := make(map[ServiceType]struct{}, len(values))
	out := make([]ServiceType, 0, len(values))
	for _, value := range values {
		parsed, err := ParseServiceType(value)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[parsed]; ok {
			return nil, fmt.Errorf("duplicate service type %q", value)
		}
		seen[parsed] = struct{}{}
		out = append(out, parsed)
	}
	return out, nil
}
