// Package catalog holds the fixed coefficient reference tables: FAO-56
// stage-keyed crop coefficients and single-value plant-profile coefficients.
// The dataset is loaded once, validated, and immutable afterwards.
package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"

	"irrigation-plan-service/internal/domain"
)

//go:embed data/*.json
var embeddedData embed.FS

// Load-time sanity bounds for any coefficient value.
const maxKc = 1.5

const (
	sourceTypeCrop  = "fao56_stage"
	sourceTypePlant = "plant_profile"
)

// CropRecord is one crop's stage coefficient triple with provenance.
type CropRecord struct {
	Name    string
	Initial float64
	Mid     float64
	End     float64
	Source  domain.CoefficientSource
}

// PlantRecord is one plant profile's single coefficient with provenance.
type PlantRecord struct {
	Name   string
	Kc     float64
	Source domain.CoefficientSource
}

// Catalog is the loaded, read-only coefficient table set. Safe for
// concurrent reads; there are no writes after construction.
type Catalog struct {
	crops  map[string]CropRecord
	plants map[string]PlantRecord
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the process-wide catalog built from the embedded dataset.
// The first call performs the load; concurrent first callers share it.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		sub, err := fs.Sub(embeddedData, "data")
		if err != nil {
			defaultErr = fmt.Errorf("load default catalog: %w", err)
			return
		}
		defaultCatalog, defaultErr = Load(sub)
	})
	return defaultCatalog, defaultErr
}

// document mirrors one coefficient JSON file.
type document struct {
	CropName     string `json:"crop_name"`
	ProfileType  string `json:"profile_type"`
	Coefficients struct {
		Type      string   `json:"type"`
		Basis     string   `json:"basis"`
		KcInitial *float64 `json:"kc_initial"`
		KcMid     *float64 `json:"kc_mid"`
		KcEnd     *float64 `json:"kc_end"`
		KcValue   *float64 `json:"kc_value"`
	} `json:"coefficients"`
	Metadata struct {
		Source struct {
			Title string `json:"title"`
			URL   string `json:"url"`
			Table string `json:"table"`
		} `json:"source"`
	} `json:"metadata"`
}

// Load builds a catalog from coefficient JSON documents in the root of fsys.
// Callers that prefer an explicit handle over the Default singleton use this
// with their own fs.FS.
func Load(fsys fs.FS) (*Catalog, error) {
	names, err := fs.Glob(fsys, "*.json")
	if err != nil {
		return nil, fmt.Errorf("load catalog: glob: %w", err)
	}

	var crops []CropRecord
	var plants []PlantRecord

	for _, name := range names {
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("load catalog: read %q: %w", name, err)
		}

		var doc document
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("load catalog: parse %q: %w", name, err)
		}

		source := domain.CoefficientSource{
			Title: doc.Metadata.Source.Title,
			URL:   doc.Metadata.Source.URL,
			Table: doc.Metadata.Source.Table,
		}

		if strings.EqualFold(doc.ProfileType, "plant") {
			if doc.Coefficients.Type != "single" {
				return nil, fmt.Errorf("load catalog: %q: plant profile needs coefficient type \"single\", got %q", name, doc.Coefficients.Type)
			}
			if doc.Coefficients.KcValue == nil {
				return nil, fmt.Errorf("load catalog: %q: missing kc_value", name)
			}
			source.Type = sourceTypePlant
			plants = append(plants, PlantRecord{
				Name:   doc.CropName,
				Kc:     *doc.Coefficients.KcValue,
				Source: source,
			})
			continue
		}

		if doc.Coefficients.Type != "stage" {
			return nil, fmt.Errorf("load catalog: %q: crop needs coefficient type \"stage\", got %q", name, doc.Coefficients.Type)
		}
		if doc.Coefficients.KcInitial == nil || doc.Coefficients.KcMid == nil || doc.Coefficients.KcEnd == nil {
			return nil, fmt.Errorf("load catalog: %q: missing one of kc_initial/kc_mid/kc_end", name)
		}
		source.Type = sourceTypeCrop
		crops = append(crops, CropRecord{
			Name:    doc.CropName,
			Initial: *doc.Coefficients.KcInitial,
			Mid:     *doc.Coefficients.KcMid,
			End:     *doc.Coefficients.KcEnd,
			Source:  source,
		})
	}

	return New(crops, plants)
}

// New builds a catalog from explicit records, enforcing the load-time
// contract: non-empty names and every coefficient in (0, 1.5].
func New(crops []CropRecord, plants []PlantRecord) (*Catalog, error) {
	c := &Catalog{
		crops:  make(map[string]CropRecord, len(crops)),
		plants: make(map[string]PlantRecord, len(plants)),
	}

	for _, rec := range crops {
		key := normalize(rec.Name)
		if key == "" {
			return nil, fmt.Errorf("new catalog: crop with empty name")
		}
		for stage, kc := range map[domain.Stage]float64{
			domain.StageInitial: rec.Initial,
			domain.StageMid:     rec.Mid,
			domain.StageEnd:     rec.End,
		} {
			if kc <= 0 || kc > maxKc {
				return nil, fmt.Errorf("new catalog: crop %q stage %q: kc %v outside (0, %v]", rec.Name, stage, kc, maxKc)
			}
		}
		rec.Name = key
		c.crops[key] = rec
	}

	for _, rec := range plants {
		key := normalize(rec.Name)
		if key == "" {
			return nil, fmt.Errorf("new catalog: plant profile with empty name")
		}
		if rec.Kc <= 0 || rec.Kc > maxKc {
			return nil, fmt.Errorf("new catalog: plant profile %q: kc %v outside (0, %v]", rec.Name, rec.Kc, maxKc)
		}
		rec.Name = key
		c.plants[key] = rec
	}

	return c, nil
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ResolveCrop returns the coefficient for a crop at an explicit growth stage.
// Unknown crops fail with domain.UnknownCropError; there is no defaulting.
func (c *Catalog) ResolveCrop(name string, stage domain.Stage) (domain.CoefficientChoice, error) {
	rec, ok := c.crops[normalize(name)]
	if !ok {
		return domain.CoefficientChoice{}, &domain.UnknownCropError{Name: name, Available: c.Crops()}
	}

	var kc float64
	switch stage {
	case domain.StageInitial:
		kc = rec.Initial
	case domain.StageMid:
		kc = rec.Mid
	case domain.StageEnd:
		kc = rec.End
	default:
		return domain.CoefficientChoice{}, &domain.ValidationError{
			Field:  "stage",
			Reason: fmt.Sprintf("invalid stage %q; allowed stages: initial, mid, end", string(stage)),
		}
	}

	return domain.CoefficientChoice{Value: kc, Source: rec.Source}, nil
}

// ResolvePlant returns the coefficient for a plant profile.
func (c *Catalog) ResolvePlant(name string) (domain.CoefficientChoice, error) {
	rec, ok := c.plants[normalize(name)]
	if !ok {
		return domain.CoefficientChoice{}, &domain.UnknownProfileError{Name: name, Available: c.PlantProfiles()}
	}
	return domain.CoefficientChoice{Value: rec.Kc, Source: rec.Source}, nil
}

// Crops lists the known crop identifiers in sorted order.
func (c *Catalog) Crops() []string {
	names := make([]string, 0, len(c.crops))
	for name := range c.crops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PlantProfiles lists the known plant-profile identifiers in sorted order.
func (c *Catalog) PlantProfiles() []string {
	names := make([]string, 0, len(c.plants))
	for name := range c.plants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CropRecords returns the crop table contents, sorted by name. Used by the
// sqlite reference-store seeder.
func (c *Catalog) CropRecords() []CropRecord {
	recs := make([]CropRecord, 0, len(c.crops))
	for _, name := range c.Crops() {
		recs = append(recs, c.crops[name])
	}
	return recs
}

// PlantRecords returns the plant-profile table contents, sorted by name.
func (c *Catalog) PlantRecords() []PlantRecord {
	recs := make([]PlantRecord, 0, len(c.plants))
	for _, name := range c.PlantProfiles() {
		recs = append(recs, c.plants[name])
	}
	return recs
}
