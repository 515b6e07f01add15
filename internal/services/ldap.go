package services

import (
	"crypto/tls"
	"fmt"
	"strconv"

	"github.com/basecode360/traintrack/internal/config"
	"github.com/go-ldap/ldap/v3"
	"gorm.io/gorm"
)

// LDAPService authenticates against a directory server. Settings stored in
// system config by an admin override the static config file.
type LDAPService struct {
	fileConfig *config.LDAPConfig
	configSvc  *SystemConfigService
}

func NewLDAPService(db *gorm.DB, cfg *config.LDAPConfig) *LDAPService {
	return &LDAPService{
		fileConfig: cfg,
		configSvc:  NewSystemConfigService(db),
	}
}

type LDAPUser struct {
	DN          string
	Username    string
	Email       string
	DisplayName string
}

// effectiveConfig merges database-stored LDAP settings over the file config.
func (s *LDAPService) effectiveConfig() *config.LDAPConfig {
	cfg := *s.fileConfig

	if v, err := s.configSvc.Get("ldap_enabled"); err == nil {
		cfg.Enabled = v == "true"
	}
	if v, err := s.configSvc.Get("ldap_host"); err == nil && v != "" {
		cfg.Host = v
	}
	if v, err := s.configSvc.Get("ldap_port"); err == nil && v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
		}
	}
	if v, err := s.configSvc.Get("ldap_base_dn"); err == nil && v != "" {
		cfg.BaseDN = v
	}
	if v, err := s.configSvc.Get("ldap_bind_dn"); err == nil && v != "" {
		cfg.BindDN = v
	}
	if v, err := s.configSvc.Get("ldap_bind_password"); err == nil && v != "" {
		cfg.BindPassword = v
	}
	if v, err := s.configSvc.Get("ldap_user_filter"); err == nil && v != "" {
		cfg.UserFilter = v
	}
	if v, err := s.configSvc.Get("ldap_use_ssl"); err == nil {
		cfg.UseSSL = v == "true"
	}
	return &cfg
}

func (s *LDAPService) IsEnabled() bool {
	return s.effectiveConfig().Enabled
}

// Authenticate authenticates a user against LDAP
func (s *LDAPService) Authenticate(username, password string) (*LDAPUser, error) {
	cfg := s.effectiveConfig()
	if !cfg.Enabled {
		return nil, fmt.Errorf("LDAP is not enabled")
	}

	// Connect to LDAP server
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	var conn *ldap.Conn
	var err error

	if cfg.UseSSL {
		conn, err = ldap.DialTLS("tcp", addr, &tls.Config{InsecureSkipVerify: true})
	} else {
		conn, err = ldap.Dial("tcp", addr)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect to LDAP server: %w", err)
	}
	defer conn.Close()

	// Bind with service account (if configured)
	if cfg.BindDN != "" {
		err = conn.Bind(cfg.BindDN, cfg.BindPassword)
		if err != nil {
			return nil, fmt.Errorf("failed to bind with service account: %w", err)
		}
	}

	// Search for user
	searchFilter := fmt.Sprintf(cfg.UserFilter, ldap.EscapeFilter(username))
	searchRequest := ldap.NewSearchRequest(
		cfg.BaseDN,
		ldap.ScopeWholeSubtree, ldap.NeverDerefAliases, 0, 0, false,
		searchFilter,
		[]string{"dn", "cn", "mail", "uid", "sAMAccountName"},
		nil,
	)

	result, err := conn.Search(searchRequest)
	if err != nil {
		return nil, fmt.Errorf("LDAP search failed: %w", err)
	}

	if len(result.Entries) == 0 {
		return nil, fmt.Errorf("user not found in LDAP")
	}

	if len(result.Entries) > 1 {
		return nil, fmt.Errorf("multiple users found in LDAP")
	}

	userDN := result.Entries[0].DN

	// Bind as user to verify password
	err = conn.Bind(userDN, password)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	// Extract user info
	entry := result.Entries[0]
	user := &LDAPUser{
		DN:          userDN,
		Username:    entry.GetAttributeValue("uid"),
		Email:       entry.GetAttributeValue("mail"),
		DisplayName: entry.GetAttributeValue("cn"),
	}

	// Try sAMAccountName if uid is empty (Active Directory)
	if user.Username == "" {
		user.Username = entry.GetAttributeValue("sAMAccountName")
	}

	return user, nil
}
