package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"garage/internal/domains/appointment/schedule"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog/log"
)

// DefaultBay is used for services missing from the catalog when the file does not set default_bay.
const DefaultBay = 2

//go:embed services.toml
var servicesData []byte

var errEmptyCatalog = errors.New("service catalog is empty")

type Service struct {
	ID       string `toml:"id"       json:"id"`
	Name     string `toml:"name"     json:"name"`
	Duration string `toml:"duration" json:"duration"`
	Bay      int    `toml:"bay"      json:"bay"`
}

type file struct {
	DefaultBay int       `toml:"default_bay"`
	Services   []Service `toml:"services"`
}

// Catalog is the static service to bay lookup. It is safe for concurrent use once built.
type Catalog struct {
	defaultBay int
	services   []Service
	index      map[string]int
	slots      map[string]int
}

// New decodes the embedded services.toml.
func New() (*Catalog, error) {
	var data file

	if _, err := toml.Decode(string(servicesData), &data); err != nil {
		log.Error().Err(err).Msg("failed to decode embedded service catalog")

		return nil, fmt.Errorf("failed to decode service catalog: %w", err)
	}

	if len(data.Services) == 0 {
		return nil, errEmptyCatalog
	}

	c := NewFromServices(data.DefaultBay, data.Services)

	log.Info().Int("services", len(c.services)).Int("default_bay", c.defaultBay).Msg("Successfully loaded embedded service catalog")

	return c, nil
}

func NewFromServices(defaultBay int, services []Service) *Catalog {
	if defaultBay <= 0 {
		defaultBay = DefaultBay
	}

	c := &Catalog{
		defaultBay: defaultBay,
		services:   make([]Service, 0, len(services)),
		index:      make(map[string]int, len(services)),
		slots:      make(map[string]int, len(services)),
	}

	for _, s := range services {
		if _, exists := c.index[s.ID]; exists {
			log.Warn().Str("service", s.ID).Msg("duplicate service in catalog, keeping the first entry")

			continue
		}

		if s.Bay <= 0 {
			s.Bay = defaultBay
		}

		c.index[s.ID] = len(c.services)
		c.services = append(c.services, s)
		c.slots[s.ID] = schedule.SlotCount(schedule.ParseDurationMinutes(s.Duration))
	}

	return c
}

func (c *Catalog) Services() []Service {
	return append([]Service(nil), c.services...)
}

func (c *Catalog) Find(serviceID string) (Service, bool) {
	idx, ok := c.index[serviceID]
	if !ok {
		return Service{}, false
	}

	return c.services[idx], true
}

// BayOf returns the bay a service occupies, or the default bay for unknown services.
func (c *Catalog) BayOf(serviceID string) int {
	if s, ok := c.Find(serviceID); ok {
		return s.Bay
	}

	return c.defaultBay
}

// SlotCount returns the number of grid slots a service occupies. Unknown services take one slot.
func (c *Catalog) SlotCount(serviceID string) int {
	if slots, ok := c.slots[serviceID]; ok {
		return slots
	}

	log.Warn().Str("service", serviceID).Msg("service not in catalog, assuming a single slot")

	return schedule.SlotCount(schedule.ParseDurationMinutes(""))
}

func (c *Catalog) DefaultBay() int {
	return c.defaultBay
}
