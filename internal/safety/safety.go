// Package safety maps disaster categories to ordered precautions shown
// alongside evacuation routes.
package safety

import "github.com/shambhavi-kumar59/safenet/internal/models"

// InstructionsFor returns three precautions for t, most important first.
// Unrecognized categories get generic evacuation guidance. The returned slice
// is owned by the caller.
func InstructionsFor(t models.DisasterType) []string {
	switch t {
	case models.DisasterTypeEarthquake:
		return []string{
			"Avoid buildings and power lines",
			"Cover your head and neck",
			"If indoors, stay inside and take cover under sturdy furniture",
		}
	case models.DisasterTypeFlood:
		return []string{
			"Avoid walking through moving water",
			"Do not drive through flooded areas",
			"Move to higher ground immediately",
		}
	case models.DisasterTypeWildfire:
		return []string{
			"Wear protective clothing",
			"Breathe through a wet cloth",
			"Move perpendicular to the fire's path",
		}
	case models.DisasterTypeHurricane:
		return []string{
			"Stay away from windows",
			"Take refuge in a small interior room",
			"Avoid using electrical equipment",
		}
	case models.DisasterTypeTornado:
		return []string{
			"Seek shelter in a basement or windowless interior room",
			"Stay away from vehicles and mobile homes",
			"Protect your head and neck from flying debris",
		}
	default:
		return []string{
			"Follow official evacuation routes",
			"Stay calm and move quickly",
			"Help others if it's safe to do so",
		}
	}
}
