package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/paid-media-etl/internal/domain"
	"gopkg.in/yaml.v3"
)

// Reference is the static client reference file: industries, the accounts used
// by historical fetches, and routing overrides.
type Reference struct {
	Clients           map[string]ClientReference    `yaml:"clients"`
	ReservedDatabases []domain.ReservedDatabaseRule `yaml:"reserved_databases"`
	FileRoutes        []domain.FileRoute            `yaml:"file_routes"`
}

type ClientReference struct {
	Industry string                   `yaml:"industry"`
	Facebook []domain.PlatformAccount `yaml:"facebook"`
	TikTok   []domain.PlatformAccount `yaml:"tiktok"`
	LinkedIn []domain.PlatformAccount `yaml:"linkedin"`
	YouTube  []domain.PlatformAccount `yaml:"youtube"`
}

// Accounts returns the configured accounts of one platform.
func (c ClientReference) Accounts(platform domain.Platform) []domain.PlatformAccount {
	switch platform {
	case domain.PlatformFacebook:
		return c.Facebook
	case domain.PlatformTikTok:
		return c.TikTok
	case domain.PlatformLinkedIn:
		return c.LinkedIn
	case domain.PlatformYouTube:
		return c.YouTube
	}
	return nil
}

const UnknownIndustry = "Unknown"

// IndustryFor returns the industry of a client, "Unknown" when not listed.
func (r Reference) IndustryFor(client string) string {
	if ref, ok := r.Clients[client]; ok && ref.Industry != "" {
		return ref.Industry
	}
	return UnknownIndustry
}

// ClientNames returns the configured clients in name order.
func (r Reference) ClientNames() []string {
	names := make([]string, 0, len(r.Clients))
	for name := range r.Clients {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Advertiser builds the account set of a configured client.
func (r Reference) Advertiser(client string) (*domain.AdvertiserAccounts, bool) {
	ref, ok := r.Clients[client]
	if !ok {
		return nil, false
	}

	advertiser := domain.NewAdvertiserAccounts(client, client)
	advertiser.Industry = r.IndustryFor(client)
	for _, platform := range domain.Platforms {
		for _, account := range ref.Accounts(platform) {
			advertiser.Add(platform, account)
		}
	}
	return advertiser, true
}

// LoadReference reads the YAML reference file. A missing file yields an empty
// reference; a malformed one is an error.
func LoadReference(path string) (*Reference, error) {
	reference := &Reference{Clients: map[string]ClientReference{}}
	if path == "" {
		return reference, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logrus.WithField("path", path).Warn("reference file not found, industries default to Unknown")
			return reference, nil
		}
		return nil, fmt.Errorf("error reading reference file: %w", err)
	}

	if err := yaml.Unmarshal(data, reference); err != nil {
		return nil, fmt.Errorf("error decoding reference file %s: %w", path, err)
	}

	if reference.Clients == nil {
		reference.Clients = map[string]ClientReference{}
	}

	for i, route := range reference.FileRoutes {
		mode, err := domain.ParseLoadMode(string(route.Mode))
		if err != nil {
			return nil, fmt.Errorf("file route %q: %w", route.Name, err)
		}
		reference.FileRoutes[i].Mode = mode
	}

	return reference, nil
}
