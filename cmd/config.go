package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every environment variable read by bgt.
const EnvPrefix = "BGT"

// Config holds the settings shared by all commands.
type Config struct {
	LedgerFile     string `envconfig:"LEDGER_FILE" default:"budget_data.json" validate:"required"`
	CategoriesFile string `envconfig:"CATEGORIES_FILE"`
	Currency       string `envconfig:"CURRENCY" default:"USD" validate:"required,iso4217"`
	GotenbergURL   string `envconfig:"GOTENBERG_URL" default:"http://127.0.0.1:3000" validate:"required,url"`
	Verbose        bool   `envconfig:"VERBOSE"`
}

var validate = validator.New()

// LoadConfig reads the configuration from the environment, after loading
// the dotenv file if it exists. Global flags set on the command line take
// precedence.
func LoadConfig(dotenv string) (*Config, error) {
	if dotenv != "" {
		if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("could not load %q: %w", dotenv, err)
		}
	}

	var c Config
	if err := envconfig.Process(EnvPrefix, &c); err != nil {
		return nil, fmt.Errorf("invalid environment: %w", err)
	}

	if *ledgerFile != "" {
		c.LedgerFile = *ledgerFile
	}
	if *categoriesFile != "" {
		c.CategoriesFile = *categoriesFile
	}
	if *currency != "" {
		c.Currency = *currency
	}
	if *Verbose {
		c.Verbose = true
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	var errs []error
	for _, fe := range fieldErrs {
		errs = append(errs, fmt.Errorf("invalid %s_%s %q: failed on %q", EnvPrefix, envName(fe.Field()), fe.Value(), fe.Tag()))
	}
	return errors.Join(errs...)
}

func envName(field string) string {
	switch field {
	case "LedgerFile":
		return "LEDGER_FILE"
	case "CategoriesFile":
		return "CATEGORIES_FILE"
	case "GotenbergURL":
		return "GOTENBERG_URL"
	case "Currency":
		return "CURRENCY"
	default:
		return field
	}
}
