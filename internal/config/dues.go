package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/kapitulo/kapitulo/pkg/money"
	"github.com/spf13/viper"
)

// DuesPolicy controls how the member portal classifies the current month:
// paid when the month's payments reach MonthlyDues, partial when something
// but not enough was paid, pending otherwise.
type DuesPolicy struct {
	MonthlyDues money.Amount `mapstructure:"-"`
	Currency    string       `mapstructure:"currency"`

	// MonthlyDuesRaw is the decimal string as written in dues.yml.
	MonthlyDuesRaw string `mapstructure:"monthlyDues"`
}

func DefaultDuesPolicy() DuesPolicy {
	return DuesPolicy{
		MonthlyDues:    money.FromMajor(100),
		MonthlyDuesRaw: "100.00",
		Currency:       "PHP",
	}
}

// DuesPolicyHolder serves the current dues policy and hot-reloads it when
// dues.yml changes on disk.
type DuesPolicyHolder struct {
	current atomic.Value // holds DuesPolicy
}

func NewDuesPolicyHolder() (*DuesPolicyHolder, error) {
	v := viper.New()

	v.SetConfigName("dues")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/kapitulo")
	v.AddConfigPath(".")

	v.SetEnvPrefix("KAPITULO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultDuesPolicy()
	v.SetDefault("dues.monthlyDues", defaults.MonthlyDuesRaw)
	v.SetDefault("dues.currency", defaults.Currency)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	cfg, err := readDuesPolicy(v)
	if err != nil {
		return nil, err
	}

	holder := &DuesPolicyHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		updated, err := readDuesPolicy(v)
		if err != nil {
			log.Printf("[dues-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[dues-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *DuesPolicyHolder) Get() DuesPolicy {
	return h.current.Load().(DuesPolicy)
}

func readDuesPolicy(v *viper.Viper) (DuesPolicy, error) {
	var cfg DuesPolicy
	if err := v.UnmarshalKey("dues", &cfg); err != nil {
		return DuesPolicy{}, err
	}
	amount, err := money.Parse(cfg.MonthlyDuesRaw)
	if err != nil {
		return DuesPolicy{}, err
	}
	cfg.MonthlyDues = amount
	if err := validateDuesPolicy(cfg); err != nil {
		return DuesPolicy{}, err
	}
	return cfg, nil
}

func validateDuesPolicy(cfg DuesPolicy) error {
	if cfg.MonthlyDues <= 0 {
		return errors.New("dues.monthlyDues must be positive")
	}
	if strings.TrimSpace(cfg.Currency) == "" {
		return errors.New("dues.currency cannot be empty")
	}
	return nil
}
