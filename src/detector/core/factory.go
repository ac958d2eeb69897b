package core

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// FactoryConfig captures the inputs required to construct a provider client.
// Zero values mean "use the provider's default".
type FactoryConfig struct {
	Provider string

	APIKey  string
	BaseURL string

	RequestTimeout time.Duration
	UploadAttempts int
	PollInterval   time.Duration
	PollTimeout    time.Duration
}

// ProviderFactory implements provider-specific Client creation.
type ProviderFactory func(FactoryConfig) (Client, error)

var (
	mu         sync.RWMutex
	providers  = map[string]ProviderFactory{}
	defaultKey = "realitydefender"
)

// RegisterProvider registers a provider factory under one or more names.
// Meant to be called from provider package init functions.
func RegisterProvider(name string, factory ProviderFactory, aliases ...string) {
	mu.Lock()
	defer mu.Unlock()

	all := append([]string{name}, aliases...)
	for _, n := range all {
		providers[strings.ToLower(n)] = factory
	}
}

// NewClient returns a provider-agnostic detection client.
func NewClient(cfg FactoryConfig) (Client, error) {
	providerName := cfg.Provider
	if strings.TrimSpace(providerName) == "" {
		providerName = defaultKey
	}

	mu.RLock()
	factory := providers[strings.ToLower(providerName)]
	mu.RUnlock()

	if factory == nil {
		return nil, fmt.Errorf("detector: provider %q not registered", providerName)
	}
	return factory(cfg)
}
