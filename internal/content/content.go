package content

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v2"
)

//go:embed site.yaml
var siteYAML []byte

// Templates holds the page templates.
//
//go:embed templates/*.tmpl
var Templates embed.FS

type Brand struct {
	Name      string `yaml:"name"`
	ShortName string `yaml:"short_name"`
	Badge     string `yaml:"badge"`
	Tagline   string `yaml:"tagline"`
	Address   string `yaml:"address"`
}

type Hero struct {
	Title     string `yaml:"title"`
	Highlight string `yaml:"highlight"`
	Subtitle  string `yaml:"subtitle"`
	FleetNote string `yaml:"fleet_note"`
}

// Section is a same-page navigation target.
type Section struct {
	ID       string `yaml:"id"`
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`
}

// Feature is a "Why Choose Us" card. Extra features are the small
// pills under the main grid.
type Feature struct {
	ID      string `yaml:"id"`
	Title   string `yaml:"title"`
	Summary string `yaml:"summary"`
	Detail  string `yaml:"detail"`
	Extra   bool   `yaml:"extra"`
}

// Channels are the fixed contact points of the company.
type Channels struct {
	PhoneDisplay     string `yaml:"phone_display"`
	PhoneDial        string `yaml:"phone_dial"`
	WhatsAppNumber   string `yaml:"whatsapp_number"`
	WhatsAppGreeting string `yaml:"whatsapp_greeting"`
	Email            string `yaml:"email"`
}

// Store is an app store destination.
type Store struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// Site is the copy and contact data of the landing page.
type Site struct {
	Brand    Brand     `yaml:"brand"`
	Hero     Hero      `yaml:"hero"`
	Sections []Section `yaml:"sections"`
	Features []Feature `yaml:"features"`
	Contact  Channels  `yaml:"contact"`
	Stores   []Store   `yaml:"stores"`
}

// Load parses the embedded site document.
func Load() (Site, error) {
	return Parse(siteYAML)
}

// Parse decodes a site document and checks the fields the page relies on.
func Parse(raw []byte) (Site, error) {
	var s Site
	if err := yaml.UnmarshalStrict(raw, &s); err != nil {
		return Site{}, fmt.Errorf("parse site content: %w", err)
	}
	if strings.TrimSpace(s.Contact.PhoneDial) == "" || strings.TrimSpace(s.Contact.Email) == "" {
		return Site{}, fmt.Errorf("site content: contact phone and email are required")
	}
	seen := map[string]bool{}
	for _, f := range s.Features {
		if f.ID == "" || seen["feature:"+f.ID] {
			return Site{}, fmt.Errorf("site content: feature id %q missing or duplicated", f.ID)
		}
		seen["feature:"+f.ID] = true
	}
	for _, sec := range s.Sections {
		if sec.ID == "" || seen["section:"+sec.ID] {
			return Site{}, fmt.Errorf("site content: section id %q missing or duplicated", sec.ID)
		}
		seen["section:"+sec.ID] = true
	}
	return s, nil
}

func (s Site) Feature(id string) (Feature, bool) {
	for _, f := range s.Features {
		if f.ID == id {
			return f, true
		}
	}
	return Feature{}, false
}

func (s Site) Section(id string) (Section, bool) {
	for _, sec := range s.Sections {
		if sec.ID == id {
			return sec, true
		}
	}
	return Section{}, false
}

func (s Site) Store(id string) (Store, bool) {
	for _, st := range s.Stores {
		if st.ID == id {
			return st, true
		}
	}
	return Store{}, false
}

// MainFeatures are the cards of the feature grid.
func (s Site) MainFeatures() []Feature {
	return s.filterFeatures(false)
}

// ExtraFeatures are the pills under the grid.
func (s Site) ExtraFeatures() []Feature {
	return s.filterFeatures(true)
}

func (s Site) filterFeatures(extra bool) []Feature {
	out := []Feature{}
	for _, f := range s.Features {
		if f.Extra == extra {
			out = append(out, f)
		}
	}
	return out
}
