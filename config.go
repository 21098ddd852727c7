// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package simpleca

import (
	"os"
	"time"

	"github.com/absmach/simpleca/errors"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v2"
)

var (
	errReadConfig    = errors.New("failed to read config file")
	errDecodeConfig  = errors.New("failed to decode config file")
	errUnknownOption = errors.New("unrecognized config option")
)

// CAConfig describes the root certificate subject used when the CA is
// bootstrapped for the first time.
type CAConfig struct {
	CommonName         string   `yaml:"common_name"`
	Organization       []string `yaml:"organization"`
	OrganizationalUnit []string `yaml:"organizational_unit"`
	Country            []string `yaml:"country"`
	Province           []string `yaml:"province"`
	Locality           []string `yaml:"locality"`
	StreetAddress      []string `yaml:"street_address"`
	PostalCode         []string `yaml:"postal_code"`
	KeyBits            int      `yaml:"key_bits"`
	ValidityYears      int      `yaml:"validity_years"`
}

// LoadCAConfig loads the root subject configuration from a YAML file.
func LoadCAConfig(filename string) (CAConfig, error) {
	file, err := os.Open(filename)
	if err != nil {
		return CAConfig{}, errors.Wrap(errReadConfig, err)
	}
	defer file.Close()

	var config CAConfig
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&config); err != nil {
		return CAConfig{}, errors.Wrap(errDecodeConfig, err)
	}
	return config, nil
}

// policyFile is the on-disk shape of the policy options. Validities are
// expressed in days.
type policyFile struct {
	DefaultValidityDays int    `mapstructure:"default_validity_days"`
	MaxValidityDays     int    `mapstructure:"max_validity_days"`
	CRLValidityDays     int    `mapstructure:"crl_validity_days"`
	StoragePath         string `mapstructure:"storage_path"`
}

// LoadPolicy loads the CA policy configuration from a YAML file. Options
// outside the recognized set are rejected rather than silently ignored.
func LoadPolicy(filename string) (Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, errors.Wrap(errReadConfig, err)
	}

	raw := map[string]interface{}{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, errors.Wrap(errDecodeConfig, err)
	}

	var pf policyFile
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &pf,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return Config{}, errors.Wrap(errDecodeConfig, err)
	}
	if err := decoder.Decode(raw); err != nil {
		return Config{}, errors.Wrap(errUnknownOption, err)
	}

	return Config{
		DefaultValidity: time.Duration(pf.DefaultValidityDays) * day,
		MaxValidity:     time.Duration(pf.MaxValidityDays) * day,
		CRLValidity:     time.Duration(pf.CRLValidityDays) * day,
		StoragePath:     pf.StoragePath,
	}, nil
}
