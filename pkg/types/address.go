package types

import (
	"regexp"
	"strings"
)

var (
	mobilePattern  = regexp.MustCompile(`^[0-9]{10}$`)
	pincodePattern = regexp.MustCompile(`^[0-9]{6}$`)
)

// AddressFields is the structured service address collected at checkout.
// Optional fields are plain strings; empty means not provided.
type AddressFields struct {
	CustomerName    string `json:"customer_name"`
	Mobile          string `json:"mobile"`
	AlternateMobile string `json:"alternate_mobile,omitempty"`
	FlatNo          string `json:"flat_no"`
	Floor           string `json:"floor,omitempty"`
	BuildingName    string `json:"building_name,omitempty"`
	Street          string `json:"street"`
	AreaZone        string `json:"area_zone,omitempty"`
	Landmark        string `json:"landmark,omitempty"`
	City            string `json:"city"`
	State           string `json:"state"`
	Pincode         string `json:"pincode"`
}

// Validate returns a field-name keyed error map. An empty map means the
// address is acceptable. The function is pure: same input, same output.
func (a AddressFields) Validate() map[string]string {
	errs := map[string]string{}

	required := []struct {
		field string
		value string
	}{
		{"customer_name", a.CustomerName},
		{"mobile", a.Mobile},
		{"flat_no", a.FlatNo},
		{"street", a.Street},
		{"city", a.City},
		{"state", a.State},
		{"pincode", a.Pincode},
	}
	for _, req := range required {
		if strings.TrimSpace(req.value) == "" {
			errs[req.field] = "is required"
		}
	}

	if _, missing := errs["mobile"]; !missing && !mobilePattern.MatchString(a.Mobile) {
		errs["mobile"] = "must be exactly 10 digits"
	}
	if alt := strings.TrimSpace(a.AlternateMobile); alt != "" && !mobilePattern.MatchString(alt) {
		errs["alternate_mobile"] = "must be exactly 10 digits"
	}
	if _, missing := errs["pincode"]; !missing && !pincodePattern.MatchString(a.Pincode) {
		errs["pincode"] = "must be exactly 6 digits"
	}

	return errs
}

// Valid reports whether Validate finds no problems.
func (a AddressFields) Valid() bool {
	return len(a.Validate()) == 0
}
