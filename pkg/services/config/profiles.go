package config

import (
	"context"
	"fmt"

	"gopkg.in/ini.v1"
)

// Profile describes one named warehouse connection from the INI config.
// Type selects the backend; the remaining fields are read per type.
type Profile struct {
	Name string
	Type string // duckdb | databricks | snowflake

	// duckdb
	Path string

	// databricks
	Host     string
	HTTPPath string
	Token    string

	// snowflake
	Account   string
	User      string
	Password  string
	Database  string
	Warehouse string
	Role      string
}

type Registry interface {
	GetProfiles(ctx context.Context) ([]Profile, error)
	GetProfile(ctx context.Context, name string) (*Profile, error)
}

type iniRegistry struct {
	cfg *ini.File
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load profiles from %s: %w", path, err)
	}
	return &iniRegistry{cfg: cfg}, nil
}

func (r *iniRegistry) GetProfiles(_ context.Context) ([]Profile, error) {
	var profiles []Profile
	for _, section := range r.cfg.Sections() {
		if len(section.Keys()) == 0 {
			continue
		}
		profiles = append(profiles, profileFromSection(section))
	}
	return profiles, nil
}

func (r *iniRegistry) GetProfile(_ context.Context, name string) (*Profile, error) {
	section, err := r.cfg.GetSection(name)
	if err != nil {
		return nil, fmt.Errorf("profile %s not found", name)
	}
	profile := profileFromSection(section)
	return &profile, nil
}

func profileFromSection(section *ini.Section) Profile {
	return Profile{
		Name:      section.Name(),
		Type:      section.Key("type").String(),
		Path:      section.Key("path").String(),
		Host:      section.Key("host").String(),
		HTTPPath:  section.Key("http_path").String(),
		Token:     section.Key("token").String(),
		Account:   section.Key("account").String(),
		User:      section.Key("user").String(),
		Password:  section.Key("password").String(),
		Database:  section.Key("database").String(),
		Warehouse: section.Key("warehouse").String(),
		Role:      section.Key("role").String(),
	}
}
