package services

import (
	"testing"
)

func TestLDAPConfigResponse_Defaults(t *testing.T) {
	resp := LDAPConfigResponse{}

	if resp.Enabled {
		t.Error("Enabled should be false by default")
	}
	if resp.Host != "" {
		t.Errorf("Host should be empty, got %q", resp.Host)
	}
	if resp.Port != 0 {
		t.Errorf("Port = %d, expected 0", resp.Port)
	}
	if resp.PasswordSet {
		t.Error("PasswordSet should be false by default")
	}
}

func TestLDAPConfigResponse_Structure(t *testing.T) {
	resp := LDAPConfigResponse{
		Enabled:     true,
		Host:        "ldap.example.com",
		Port:        636,
		BaseDN:      "dc=example,dc=com",
		BindDN:      "cn=admin,dc=example,dc=com",
		UserFilter:  "(uid=%s)",
		UseSSL:      true,
		PasswordSet: true,
	}

	if !resp.Enabled {
		t.Error("Enabled should be true")
	}
	if resp.Host != "ldap.example.com" {
		t.Errorf("Host = %q, expected %q", resp.Host, "ldap.example.com")
	}
	if resp.Port != 636 {
		t.Errorf("Port = %d, expected 636", resp.Port)
	}
	if resp.UserFilter != "(uid=%s)" {
		t.Errorf("UserFilter = %q, expected %q", resp.UserFilter, "(uid=%s)")
	}
	if !resp.UseSSL {
		t.Error("UseSSL should be true")
	}
}

func TestUpdateLDAPConfigRequest_PartialUpdate(t *testing.T) {
	host := "ldap.internal"
	enabled := true

	req := UpdateLDAPConfigRequest{
		Enabled: &enabled,
		Host:    &host,
	}

	if req.Enabled == nil || !*req.Enabled {
		t.Error("Enabled should be true")
	}
	if req.Host == nil || *req.Host != "ldap.internal" {
		t.Error("Host should be ldap.internal")
	}
	if req.Port != nil {
		t.Error("Port should be nil when not provided")
	}
	if req.BindPassword != nil {
		t.Error("BindPassword should be nil when not provided")
	}
}

func TestInsightDigestConfig_Structure(t *testing.T) {
	cfg := InsightDigestConfig{
		Enabled: true,
		Day:     1,
		Hour:    6,
	}

	if !cfg.Enabled {
		t.Error("Enabled should be true")
	}
	if cfg.Day != 1 {
		t.Errorf("Day = %d, expected 1 (Monday)", cfg.Day)
	}
	if cfg.Hour != 6 {
		t.Errorf("Hour = %d, expected 6", cfg.Hour)
	}
}

func TestInsightDigestConfig_Defaults(t *testing.T) {
	cfg := InsightDigestConfig{}

	if cfg.Enabled {
		t.Error("Enabled should be false by default")
	}
	if cfg.Day != 0 {
		t.Errorf("Day = %d, expected 0 (Sunday)", cfg.Day)
	}
}
