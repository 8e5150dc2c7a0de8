package domain

import "sort"

type PlatformAccount struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// AdvertiserAccounts groups every native account of one logical advertiser.
type AdvertiserAccounts struct {
	Key         string                         `json:"key"`
	DisplayName string                         `json:"display_name"`
	Industry    string                         `json:"industry,omitempty"`
	Accounts    map[Platform][]PlatformAccount `json:"accounts"`
}

func NewAdvertiserAccounts(key, displayName string) *AdvertiserAccounts {
	return &AdvertiserAccounts{
		Key:         key,
		DisplayName: displayName,
		Accounts:    make(map[Platform][]PlatformAccount),
	}
}

func (a *AdvertiserAccounts) Add(platform Platform, account PlatformAccount) {
	a.Accounts[platform] = append(a.Accounts[platform], account)
}

func (a *AdvertiserAccounts) AccountsFor(platform Platform) []PlatformAccount {
	return a.Accounts[platform]
}

// AccountMapping is keyed by the normalized advertiser name.
type AccountMapping map[string]*AdvertiserAccounts

// Sorted returns advertisers ordered by key.
func (m AccountMapping) Sorted() []*AdvertiserAccounts {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make([]*AdvertiserAccounts, 0, len(keys))
	for _, key := range keys {
		out = append(out, m[key])
	}
	return out
}

// ByDisplayName finds an advertiser by its display name or key.
func (m AccountMapping) ByDisplayName(name string) (*AdvertiserAccounts, bool) {
	for _, advertiser := range m {
		if advertiser.DisplayName == name || advertiser.Key == name {
			return advertiser, true
		}
	}
	return nil, false
}
