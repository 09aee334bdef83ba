package seed

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultFixture []byte

// Fixture is a seed file. Entities refer to each other by key, never by
// database id.
type Fixture struct {
	Sellers     []SellerFixture    `yaml:"sellers"`
	Buyers      []BuyerFixture     `yaml:"buyers"`
	Machineries []MachineryFixture `yaml:"machineries"`
	Categories  []CategoryFixture  `yaml:"categories"`
	Orders      []OrderFixture     `yaml:"orders"`
}

// AccountFixture holds the identity fields shared by buyers and sellers
type AccountFixture struct {
	Key         string `yaml:"key"`
	UserName    string `yaml:"username"`
	Email       string `yaml:"email"`
	Password    string `yaml:"password"`
	PhoneNumber string `yaml:"phone_number"`
}

type SellerFixture struct {
	AccountFixture `yaml:",inline"`
	AddressLine    string  `yaml:"address_line"`
	LogoURL        *string `yaml:"logo_url,omitempty"`
}

type BuyerFixture struct {
	AccountFixture `yaml:",inline"`
	Name           string `yaml:"name"`
	Surname        string `yaml:"surname"`
	AddressLine    string `yaml:"address_line"`
}

type MachineryFixture struct {
	Key         string   `yaml:"key"`
	Name        string   `yaml:"name"`
	AddressLine string   `yaml:"address_line"`
	Price       string   `yaml:"price"`
	Seller      string   `yaml:"seller"`
	Images      []string `yaml:"images,omitempty"`
}

type CategoryFixture struct {
	Name        string   `yaml:"name"`
	Machineries []string `yaml:"machineries"`
}

type OrderFixture struct {
	Buyer       string   `yaml:"buyer"`
	Status      string   `yaml:"status"`
	Machineries []string `yaml:"machineries"`
}

// Load reads a fixture from path, or the built-in development fixture when
// path is empty. Unknown fields are rejected.
func Load(path string) (*Fixture, error) {
	data := defaultFixture
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read seed file: %w", err)
		}
	}
	return Parse(data)
}

// Parse decodes and checks a fixture
func Parse(data []byte) (*Fixture, error) {
	var fixture Fixture
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&fixture); err != nil {
		return nil, fmt.Errorf("failed to parse seed YAML: %w", err)
	}

	if err := fixture.validate(); err != nil {
		return nil, fmt.Errorf("invalid seed file: %w", err)
	}
	return &fixture, nil
}

// validate checks that keys are unique and every reference resolves
func (f *Fixture) validate() error {
	sellers := make(map[string]bool)
	for _, s := range f.Sellers {
		if s.Key == "" || sellers[s.Key] {
			return fmt.Errorf("seller key %q is empty or repeated", s.Key)
		}
		sellers[s.Key] = true
	}

	buyers := make(map[string]bool)
	for _, b := range f.Buyers {
		if b.Key == "" || buyers[b.Key] {
			return fmt.Errorf("buyer key %q is empty or repeated", b.Key)
		}
		buyers[b.Key] = true
	}

	machineries := make(map[string]bool)
	for _, m := range f.Machineries {
		if m.Key == "" || machineries[m.Key] {
			return fmt.Errorf("machinery key %q is empty or repeated", m.Key)
		}
		if !sellers[m.Seller] {
			return fmt.Errorf("machinery %q refers to unknown seller %q", m.Key, m.Seller)
		}
		machineries[m.Key] = true
	}

	for _, c := range f.Categories {
		for _, key := range c.Machineries {
			if !machineries[key] {
				return fmt.Errorf("category %q refers to unknown machinery %q", c.Name, key)
			}
		}
	}

	for i, o := range f.Orders {
		if !buyers[o.Buyer] {
			return fmt.Errorf("order %d refers to unknown buyer %q", i+1, o.Buyer)
		}
		for _, key := range o.Machineries {
			if !machineries[key] {
				return fmt.Errorf("order %d refers to unknown machinery %q", i+1, key)
			}
		}
	}

	return nil
}
