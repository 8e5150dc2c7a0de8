package resolving

import (
	"context"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/paid-media-etl/internal/domain"
)

// AccountLister lists the native accounts a platform credential can see.
type AccountLister interface {
	Platform() domain.Platform
	ListAccounts(ctx context.Context) ([]domain.PlatformAccount, error)
}

type Resolver interface {
	BuildMapping(ctx context.Context) (domain.AccountMapping, error)
}

type resolver struct {
	listers []AccountLister
}

func NewResolver(listers ...AccountLister) Resolver {
	sorted := append([]AccountLister(nil), listers...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return platformOrder(sorted[i].Platform()) < platformOrder(sorted[j].Platform())
	})
	return &resolver{listers: sorted}
}

// BuildMapping groups every listed account under its normalized advertiser
// name. Accounts whose name normalizes to "" are skipped. A lister failure is
// logged and contributes nothing; the mapping fails only when every lister fails.
func (r *resolver) BuildMapping(ctx context.Context) (domain.AccountMapping, error) {
	mapping := make(domain.AccountMapping)
	failures := 0

	for _, lister := range r.listers {
		platform := lister.Platform()

		accounts, err := lister.ListAccounts(ctx)
		if err != nil {
			failures++
			logrus.WithFields(logrus.Fields{
				"platform": platform,
				"error":    err.Error(),
			}).Error("resolver: failed to list platform accounts")
			continue
		}

		sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })

		for _, account := range accounts {
			key := NormalizeAccountName(account.Name)
			if key == "" {
				logrus.WithFields(logrus.Fields{
					"platform":   platform,
					"account_id": account.ID,
					"name":       account.Name,
				}).Warn("resolver: skipping account with empty normalized name")
				continue
			}

			advertiser, ok := mapping[key]
			if !ok {
				advertiser = domain.NewAdvertiserAccounts(key, account.Name)
				mapping[key] = advertiser
			}
			advertiser.Add(platform, account)
		}

		logrus.WithFields(logrus.Fields{
			"platform": platform,
			"accounts": len(accounts),
		}).Info("resolver: platform accounts listed")
	}

	if len(r.listers) > 0 && failures == len(r.listers) {
		return nil, fmt.Errorf("%w: all %d platform listings failed", domain.ErrMappingResolution, failures)
	}

	return mapping, nil
}

func platformOrder(platform domain.Platform) int {
	for i, p := range domain.Platforms {
		if p == platform {
			return i
		}
	}
	return len(domain.Platforms)
}
