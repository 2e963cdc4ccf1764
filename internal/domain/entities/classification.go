package entities

// Classification labels the speaker of a statement for readout purposes.
type Classification string

const (
	AfricanMemberState Classification = "African Member State"
	DevelopmentPartner Classification = "Development Partner"
	Unspecified        Classification = "Unspecified"
)

// IsValid checks if the classification is one of the closed set
func (c Classification) IsValid() bool {
	switch c {
	case AfricanMemberState, DevelopmentPartner, Unspecified:
		return true
	}
	return false
}
