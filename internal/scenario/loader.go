// Scenario files — named starting conditions loaded from YAML.
// See design doc Section 12.
package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/talgya/statecraft/internal/ledger"
	"github.com/talgya/statecraft/internal/nations"
	"github.com/talgya/statecraft/internal/world"
)

// Scenario describes a starting world. An empty Nations list means the
// roster is generated procedurally from the seed.
type Scenario struct {
	Name        string         `yaml:"name" json:"name"`
	Description string         `yaml:"description,omitempty" json:"description,omitempty"`
	Seed        int64          `yaml:"seed" json:"seed"`
	MapRadius   int            `yaml:"map_radius,omitempty" json:"map_radius,omitempty"`
	NationCount int            `yaml:"nation_count,omitempty" json:"nation_count,omitempty"`
	Nations     []NationSpec   `yaml:"nations,omitempty" json:"nations,omitempty"`
	Relations   []RelationSpec `yaml:"relations,omitempty" json:"relations,omitempty"`
}

// NationSpec pins down one nation. Zero stockpiles and forces keep the
// seeded endowment; name and personality are required.
type NationSpec struct {
	Name        string     `yaml:"name" json:"name"`
	Personality string     `yaml:"personality" json:"personality"`
	Production  float32    `yaml:"production,omitempty" json:"production,omitempty"`
	Intel       float32    `yaml:"intel,omitempty" json:"intel,omitempty"`
	Uranium     float32    `yaml:"uranium,omitempty" json:"uranium,omitempty"`
	Forces      ForcesSpec `yaml:"forces,omitempty" json:"forces,omitempty"`
}

// ForcesSpec mirrors nations.Forces for scenario files.
type ForcesSpec struct {
	Infantry uint32 `yaml:"infantry,omitempty" json:"infantry,omitempty"`
	Armor    uint32 `yaml:"armor,omitempty" json:"armor,omitempty"`
	Fleet    uint32 `yaml:"fleet,omitempty" json:"fleet,omitempty"`
	Aircraft uint32 `yaml:"aircraft,omitempty" json:"aircraft,omitempty"`
}

func (f ForcesSpec) set() bool {
	return f.Infantry+f.Armor+f.Fleet+f.Aircraft > 0
}

// RelationSpec pre-sets standing between two named nations.
type RelationSpec struct {
	A            string  `yaml:"a" json:"a"`
	B            string  `yaml:"b" json:"b"`
	Relationship float64 `yaml:"relationship" json:"relationship"`
	Trust        float64 `yaml:"trust,omitempty" json:"trust,omitempty"`
}

// DefaultNationCount is used when a scenario pins neither a roster nor a
// count.
const DefaultNationCount = 8

// Default returns the procedurally generated balance-of-powers scenario.
func Default() *Scenario {
	return &Scenario{
		Name:        "balance-of-powers",
		Description: "Eight procedurally seeded powers on a fresh map.",
		Seed:        42,
		NationCount: DefaultNationCount,
	}
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load scenario %q: %w", path, err)
	}

	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario %q: %w", path, err)
	}

	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %q: %w", path, err)
	}
	return &sc, nil
}

// LoadOrDefault loads path, or returns the default scenario when path is
// empty.
func LoadOrDefault(path string) (*Scenario, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks internal consistency before materialization.
func (sc *Scenario) Validate() error {
	if sc.Name == "" {
		return fmt.Errorf("missing name")
	}
	if sc.MapRadius < 0 || (sc.MapRadius > 0 && sc.MapRadius < 4) {
		return fmt.Errorf("map_radius %d too small (minimum 4)", sc.MapRadius)
	}
	if len(sc.Nations) == 0 && sc.NationCount == 0 {
		sc.NationCount = DefaultNationCount
	}
	if len(sc.Nations) == 1 {
		return fmt.Errorf("a scenario needs at least two nations")
	}

	seen := make(map[string]bool, len(sc.Nations))
	for i, ns := range sc.Nations {
		if ns.Name == "" {
			return fmt.Errorf("nation %d: missing name", i)
		}
		if seen[ns.Name] {
			return fmt.Errorf("nation %q listed twice", ns.Name)
		}
		seen[ns.Name] = true
		if _, ok := nations.ParsePersonality(ns.Personality); !ok {
			return fmt.Errorf("nation %q: unknown personality %q", ns.Name, ns.Personality)
		}
	}

	for i, rs := range sc.Relations {
		if len(sc.Nations) > 0 && (!seen[rs.A] || !seen[rs.B]) {
			return fmt.Errorf("relation %d: unknown nation %q or %q", i, rs.A, rs.B)
		}
		if rs.A == rs.B {
			return fmt.Errorf("relation %d: %q related to itself", i, rs.A)
		}
		if rs.Relationship < -100 || rs.Relationship > 100 {
			return fmt.Errorf("relation %d: relationship %.0f out of range", i, rs.Relationship)
		}
	}
	return nil
}

// Materialize generates the map, seeds the roster, and pre-sets the
// ledger. Pinned specs override the seeded nation in list order.
func (sc *Scenario) Materialize() (*world.Map, []*nations.Nation, *ledger.Ledger, error) {
	if err := sc.Validate(); err != nil {
		return nil, nil, nil, err
	}

	cfg := world.DefaultGenConfig()
	cfg.Seed = sc.Seed
	if sc.MapRadius > 0 {
		cfg.Radius = sc.MapRadius
	}
	m := world.Generate(cfg)

	count := sc.NationCount
	if len(sc.Nations) > 0 {
		count = len(sc.Nations)
	}

	seeder := nations.NewSeeder(sc.Seed)
	roster := seeder.SeedRoster(m, count)
	if len(roster) < 2 || len(roster) < len(sc.Nations) {
		return nil, nil, nil, fmt.Errorf("map too small: placed %d capitals for %d nations", len(roster), count)
	}

	byName := make(map[string]*nations.Nation, len(roster))
	for i, n := range roster {
		if i < len(sc.Nations) {
			applySpec(n, sc.Nations[i])
		}
		byName[n.Name] = n
	}

	led := ledger.New()
	for _, rs := range sc.Relations {
		a, okA := byName[rs.A]
		b, okB := byName[rs.B]
		if !okA || !okB {
			continue
		}
		led.SetRelationship(a.ID, b.ID, rs.Relationship)
		if rs.Trust != 0 {
			led.SetTrust(a.ID, b.ID, rs.Trust)
		}
	}

	return m, roster, led, nil
}

func applySpec(n *nations.Nation, ns NationSpec) {
	n.Name = ns.Name
	if p, ok := nations.ParsePersonality(ns.Personality); ok {
		n.Personality = p
	}
	if ns.Production > 0 {
		n.Production = ns.Production
	}
	if ns.Intel > 0 {
		n.Intel = ns.Intel
	}
	if ns.Uranium > 0 {
		n.Uranium = ns.Uranium
	}
	if ns.Forces.set() {
		n.Forces = nations.Forces{
			Infantry: ns.Forces.Infantry,
			Armor:    ns.Forces.Armor,
			Fleet:    ns.Forces.Fleet,
			Aircraft: ns.Forces.Aircraft,
		}
	}
}
