package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/caarlos0/env/v9"
	"gopkg.in/yaml.v3"

	"github.com/eniac111/plumbcfg/internal/types"
)

// Credentials are the process-wide SSH credentials applied to every
// host in the inventory. Both values are required; their absence aborts
// the run before any host is contacted.
type Credentials struct {
	Username string `env:"SSH_USERNAME,notEmpty"`
	Password string `env:"SSH_PASSWORD,notEmpty"`
}

// LoadCredentials reads SSH_USERNAME and SSH_PASSWORD from the environment.
func LoadCredentials() (Credentials, error) {
	var creds Credentials
	if err := env.Parse(&creds); err != nil {
		return Credentials{}, fmt.Errorf("failed to load SSH credentials: %w", err)
	}
	return creds, nil
}

// LoadItems reads the ordered list of configuration items from a YAML
// file. Unknown keys and missing required keys for an item's type are
// fatal at load time. State values are deliberately not checked here:
// an invalid state must surface at run time, after preceding items
// have been applied.
func LoadItems(path string) ([]types.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var items []types.Item
	if err := dec.Decode(&items); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	for i, it := range items {
		if err := validateItem(it); err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
	}
	return items, nil
}

func validateItem(it types.Item) error {
	switch it.Type {
	case types.TypeFile:
		if it.Path == "" {
			return fmt.Errorf("file item is missing 'path'")
		}
	case types.TypePackage, types.TypeService:
		if it.Name == "" {
			return fmt.Errorf("%s item is missing 'name'", it.Type)
		}
		if it.State == "" {
			return fmt.Errorf("%s item %q is missing 'state'", it.Type, it.Name)
		}
	case "":
		return fmt.Errorf("item is missing 'type'")
	default:
		return fmt.Errorf("unknown item type %q", it.Type)
	}
	return nil
}

// LoadInventory reads the list of target hosts from a YAML file.
func LoadInventory(path string) (types.Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Inventory{}, fmt.Errorf("failed to read inventory: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var inv types.Inventory
	if err := dec.Decode(&inv); err != nil && !errors.Is(err, io.EOF) {
		return types.Inventory{}, fmt.Errorf("failed to parse inventory: %w", err)
	}

	for i, srv := range inv.Servers {
		if srv.Host == "" {
			return types.Inventory{}, fmt.Errorf("inventory entry %d is missing 'host'", i)
		}
	}
	return inv, nil
}
