package connect

import (
	"context"
	"sync"
)

type accountLister interface {
	ListAccounts(ctx context.Context) ([]Account, error)
}

// AccountList caches the account list until it is invalidated.
type AccountList struct {
	api accountLister

	mu       sync.Mutex
	accounts []Account
	valid    bool
}

// NewAccountList creates a cache that loads through api.
func NewAccountList(api accountLister) *AccountList {
	return &AccountList{api: api}
}

// Get returns the cached list, loading it on first use or after Invalidate.
func (c *AccountList) Get(ctx context.Context) ([]Account, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.valid {
		return c.accounts, nil
	}
	accounts, err := c.api.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	c.accounts = accounts
	c.valid = true
	return accounts, nil
}

// Invalidate drops the cached list.
func (c *AccountList) Invalidate() {
	c.mu.Lock()
	c.valid = false
	c.accounts = nil
	c.mu.Unlock()
}
