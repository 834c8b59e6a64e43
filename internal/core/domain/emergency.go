package domain

import "fmt"

// National numbers that work regardless of province.
const (
	NationalEmergencyNumber = "10177"
	PoliceEmergencyNumber   = "10111"
)

// Disclaimer is shown alongside every listing.
const Disclaimer = "Verify numbers locally. This app is informational only."

// FallbackAdvice follows the disclaimer.
const FallbackAdvice = "Always call " + NationalEmergencyNumber +
	" for immediate emergency assistance if local numbers are unavailable."

// Tip is a labelled emergency number.
type Tip struct {
	Label  string `json:"label"`
	Number string `json:"number"`
}

// EmergencyTips returns the fixed list of national numbers.
func EmergencyTips() []Tip {
	return []Tip{
		{Label: "National emergency number", Number: NationalEmergencyNumber},
		{Label: "Police emergency", Number: PoliceEmergencyNumber},
		{Label: "Fire emergency", Number: NationalEmergencyNumber},
		{Label: "Medical emergency", Number: NationalEmergencyNumber},
	}
}

// NoMatchAdvice is the advisory shown when a search finds no services.
func NoMatchAdvice(searchText string) string {
	return fmt.Sprintf("No emergency services listed for %q. Use national emergency number: %s",
		searchText, NationalEmergencyNumber)
}
