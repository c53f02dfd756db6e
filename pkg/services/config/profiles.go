package config

import (
	"context"
	"fmt"
	"time"

	"github.com/de-tools/boutique-reports/pkg/models/domain"
	"gopkg.in/ini.v1"
)

// Registry reads named backend profiles from an ini file such as
//
//	[tienda-centro]
//	api_url = https://centro.example.com/api/v1
//	token   = abc123
type Registry interface {
	GetProfiles(ctx context.Context) ([]domain.ConfigProfile, error)
	GetConfig(ctx context.Context, profile string) (*Settings, error)
}

type cfgRegistry struct {
	cfg *ini.File
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load profiles from %s: %w", path, err)
	}
	return &cfgRegistry{cfg: cfg}, nil
}

func (cr *cfgRegistry) GetProfiles(_ context.Context) ([]domain.ConfigProfile, error) {
	var profiles []domain.ConfigProfile
	for _, section := range cr.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, domain.ConfigProfile{
				Name:   section.Name(),
				APIURL: section.Key("api_url").String(),
			})
		}
	}
	return profiles, nil
}

func (cr *cfgRegistry) GetConfig(_ context.Context, profile string) (*Settings, error) {
	section, err := cr.cfg.GetSection(profile)
	if err != nil {
		return nil, fmt.Errorf("profile %s not found", profile)
	}

	var timeout time.Duration
	if section.HasKey("timeout") {
		timeout, err = section.Key("timeout").Duration()
		if err != nil {
			return nil, fmt.Errorf("profile %s: invalid timeout: %w", profile, err)
		}
	}

	return &Settings{
		APIURL:   section.Key("api_url").String(),
		Token:    section.Key("token").String(),
		Timeout:  timeout,
		LogLevel: section.Key("log_level").String(),
	}, nil
}
