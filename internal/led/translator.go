package led

import "strings"

// Model identifies a light array layout.
type Model string

// Supported models. Codes follow the device project numbers.
const (
	ModelPhone1  Model = "20111"
	ModelPhone2  Model = "22111"
	ModelPhone2a Model = "23111"
	ModelGeneric Model = "generic"
)

// Phone (1) channel codes.
const (
	phone1C1  = 2
	phone1C4  = 5
	phone1D11 = 7
	phone1D18 = 14
	phone1Len = 15
)

// Phone (2) channel codes.
const (
	phone2C11  = 3
	phone2C116 = 18
	phone2D11  = 25
	phone2D18  = 32
	phone2Len  = 33
)

// Phone (2a) channel codes.
const (
	phone2aC1  = 0
	phone2aC24 = 23
	phone2aLen = 26
)

// genericZones is the zone count assumed for unknown hardware.
const genericZones = 4

// ParseModel accepts a project number or a marketing name and returns the
// matching Model, falling back to ModelGeneric.
func ParseModel(s string) Model {
	switch m := Model(strings.TrimSpace(s)); m {
	case ModelPhone1, ModelPhone2, ModelPhone2a:
		return m
	}

	lower := strings.ToLower(s)
	switch {
	case strings.Contains(lower, "phone (2a)"):
		return ModelPhone2a
	case strings.Contains(lower, "phone (2)"):
		return ModelPhone2
	case strings.Contains(lower, "phone (1)"):
		return ModelPhone1
	default:
		return ModelGeneric
	}
}

// ZoneCount returns how many logical zones a model exposes to configuration.
func (m Model) ZoneCount() int {
	switch m {
	case ModelPhone1:
		return 5
	case ModelPhone2:
		return 11
	case ModelPhone2a:
		return 3
	default:
		return genericZones
	}
}

// ChannelCount returns the number of hardware channels of the model.
func (m Model) ChannelCount() int {
	switch m {
	case ModelPhone1:
		return phone1Len
	case ModelPhone2:
		return phone2Len
	case ModelPhone2a:
		return phone2aLen
	default:
		return genericZones
	}
}

// Translator maps logical zones to hardware channels for one model.
type Translator struct {
	model Model
}

// NewTranslator returns the zone translator for m.
func NewTranslator(m Model) Translator {
	return Translator{model: m}
}

// Model returns the model the translator was built for.
func (t Translator) Model() Model { return t.model }

// Translate returns the hardware channels lit for a logical zone. Zones with
// no finer sub-zoning map to themselves.
func (t Translator) Translate(zone int) []int {
	switch {
	case zone == 2 && t.model == ModelPhone1:
		return channelRange(phone1C1, phone1C4)
	case zone == 2 && t.model == ModelPhone2a:
		return channelRange(phone2aC1, phone2aC24)
	case zone == 3 && t.model == ModelPhone1:
		return channelRange(phone1D11, phone1D18)
	case zone == 3 && t.model == ModelPhone2:
		return channelRange(phone2C11, phone2C116)
	case zone == 9 && t.model == ModelPhone2:
		return channelRange(phone2D11, phone2D18)
	default:
		return []int{zone}
	}
}

func channelRange(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for ch := from; ch <= to; ch++ {
		out = append(out, ch)
	}
	return out
}
