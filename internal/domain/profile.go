package domain

import "strings"

// Mode selects which set of profile fields applies.
type Mode string

const (
	ModeFarm  Mode = "farm"
	ModePlant Mode = "plant"
)

// Stage is a crop growth phase with its own coefficient.
type Stage string

const (
	StageInitial Stage = "initial"
	StageMid     Stage = "mid"
	StageEnd     Stage = "end"
)

// Method is the irrigation delivery method, used for efficiency defaults.
type Method string

const (
	MethodDrip        Method = "drip"
	MethodSprinkler   Method = "sprinkler"
	MethodUnspecified Method = "unspecified"
)

// Placement marks a plant as indoor or outdoor.
type Placement string

const (
	PlacementIndoor  Placement = "indoor"
	PlacementOutdoor Placement = "outdoor"
)

// Profile is the user's irrigation intent, tagged by mode. Exactly one
// mode's required fields must be populated; mixing fields across modes or
// omitting required ones is a validation failure.
type Profile struct {
	Mode Mode

	// Farm mode.
	CropName  string
	Stage     Stage // optional; empty defaults to mid at computation time
	AreaM2    *float64
	AreaDunam *float64
	Method    Method

	// Plant mode. Exactly one of PotVolumeL / PotDiameterCM.
	ProfileName   string
	PotVolumeL    *float64
	PotDiameterCM *float64
	Placement     Placement

	// Optional explicit application efficiency in (0, 1]; overrides the
	// method-keyed default for either mode.
	Efficiency *float64
}

// NewFarmProfile builds a farm-mode profile and enforces its field invariant.
func NewFarmProfile(crop string, stage Stage, areaM2, areaDunam *float64, method Method, efficiency *float64) (Profile, error) {
	p := Profile{
		Mode:       ModeFarm,
		CropName:   crop,
		Stage:      stage,
		AreaM2:     areaM2,
		AreaDunam:  areaDunam,
		Method:     method,
		Efficiency: efficiency,
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// NewPlantProfile builds a plant-mode profile and enforces its field invariant.
func NewPlantProfile(name string, potVolumeL, potDiameterCM *float64, placement Placement, efficiency *float64) (Profile, error) {
	p := Profile{
		Mode:          ModePlant,
		ProfileName:   name,
		PotVolumeL:    potVolumeL,
		PotDiameterCM: potDiameterCM,
		Placement:     placement,
		Efficiency:    efficiency,
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Validate checks the mode-field invariant without resolving any values.
func (p Profile) Validate() error {
	switch p.Mode {
	case ModeFarm:
		return p.validateFarm()
	case ModePlant:
		return p.validatePlant()
	default:
		return &ValidationError{Field: "mode", Reason: `must be "farm" or "plant"`}
	}
}

func (p Profile) validateFarm() error {
	if strings.TrimSpace(p.CropName) == "" {
		return &ValidationError{Field: "crop_name", Reason: "required in farm mode"}
	}
	if p.AreaM2 == nil && p.AreaDunam == nil {
		return &ValidationError{Field: "area", Reason: "farm mode requires area_m2 or area_dunam"}
	}
	if p.ProfileName != "" || p.PotVolumeL != nil || p.PotDiameterCM != nil || p.Placement != "" {
		return &ValidationError{Field: "mode", Reason: "farm mode must not carry plant fields"}
	}
	switch p.Stage {
	case "", StageInitial, StageMid, StageEnd:
	default:
		return &ValidationError{Field: "stage", Reason: `must be one of "initial", "mid", "end"`}
	}
	switch p.Method {
	case "", MethodUnspecified, MethodDrip, MethodSprinkler:
	default:
		return &ValidationError{Field: "irrigation_method", Reason: `must be one of "drip", "sprinkler", "unspecified"`}
	}
	return nil
}

func (p Profile) validatePlant() error {
	if strings.TrimSpace(p.ProfileName) == "" {
		return &ValidationError{Field: "plant_profile", Reason: "required in plant mode"}
	}
	if (p.PotVolumeL == nil) == (p.PotDiameterCM == nil) {
		return &ValidationError{Field: "pot", Reason: "plant mode requires exactly one of pot_volume_liters or pot_diameter_cm"}
	}
	if p.CropName != "" || p.AreaM2 != nil || p.AreaDunam != nil || p.Stage != "" || p.Method != "" {
		return &ValidationError{Field: "mode", Reason: "plant mode must not carry farm fields"}
	}
	switch p.Placement {
	case "", PlacementIndoor, PlacementOutdoor:
	default:
		return &ValidationError{Field: "indoor_outdoor", Reason: `must be "indoor" or "outdoor"`}
	}
	return nil
}
