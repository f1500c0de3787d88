// Package catalog holds the seed content a fresh game starts from: the chapter,
// the city, the rival gangs, random events and the crime list.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/jwebster45206/mafios/pkg/state"
)

//go:embed seed.yaml
var seed []byte

type Catalog struct {
	Chapter         string            `yaml:"chapter"`
	StartingCash    int64             `yaml:"startingCash"`
	StartingRespekt int               `yaml:"startingRespekt"`
	Members         []state.Member    `yaml:"members"`
	Territories     []state.Territory `yaml:"territories"`
	Businesses      []state.Business  `yaml:"businesses"`
	Operations      []state.Operation `yaml:"operations"`
	Gangs           []state.RivalGang `yaml:"gangs"`
	Events          []state.GameEvent `yaml:"events"`
	Crimes          []state.Crime     `yaml:"crimes"`
}

// Default parses the embedded seed catalog.
func Default() (*Catalog, error) {
	c, err := Parse(seed)
	if err != nil {
		return nil, fmt.Errorf("embedded catalog: %w", err)
	}
	return c, nil
}

// LoadFile parses a catalog from disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes YAML strictly: unknown keys are an error.
func Parse(data []byte) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var c Catalog
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("catalog is empty")
		}
		return nil, fmt.Errorf("failed strict YAML unmarshaling: %w", err)
	}
	return &c, nil
}

// Crime returns the crime with the given id.
func (c *Catalog) Crime(id string) (state.Crime, bool) {
	i := slices.IndexFunc(c.Crimes, func(cr state.Crime) bool { return cr.ID == id })
	if i < 0 {
		return state.Crime{}, false
	}
	return c.Crimes[i], true
}

// NewGameState builds a fresh, normalized game for the named player from the
// catalog. The result shares nothing with c.
func NewGameState(c *Catalog, playerName string) state.GameState {
	gs := state.NewGameState(playerName)
	gs.Player.Cash = c.StartingCash
	gs.Player.Respekt = c.StartingRespekt
	gs.Chapter.Name = c.Chapter
	gs.Chapter.Members = c.Members
	gs.Territories = c.Territories
	gs.Businesses = c.Businesses
	gs.Operations = c.Operations
	gs.RivalGangs = c.Gangs
	gs.Events = c.Events

	gs = gs.Clone()
	for i := range gs.Chapter.Members {
		if gs.Chapter.Members[i].Status == "" {
			gs.Chapter.Members[i].Status = state.MemberActive
		}
	}
	gs.Normalize()
	return gs
}
