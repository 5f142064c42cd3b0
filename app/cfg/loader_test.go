package cfg

import (
	"testing"
)

func TestGetVersion(t *testing.T) {
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}
}

func TestParseBool(t *testing.T) {
	tests := []struct {
		value    string
		def      bool
		expected bool
	}{
		{"1", false, true},
		{"true", false, true},
		{"Yes", false, true},
		{"on", false, true},
		{"0", true, false},
		{"false", true, false},
		{"No", true, false},
		{"off", true, false},
		{"", true, true},
		{"", false, false},
		{"garbage", true, true},
	}

	for _, tt := range tests {
		if got := parseBool(tt.value, tt.def); got != tt.expected {
			t.Errorf("parseBool(%q, %v) = %v, expected %v", tt.value, tt.def, got, tt.expected)
		}
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" a@example.com, b@example.com ,,c@example.com")
	if len(got) != 3 {
		t.Fatalf("Expected 3 addresses, got %d: %v", len(got), got)
	}
	if got[0] != "a@example.com" || got[1] != "b@example.com" || got[2] != "c@example.com" {
		t.Errorf("Unexpected addresses: %v", got)
	}

	if got := splitList(""); got != nil {
		t.Errorf("Expected nil for empty input, got %v", got)
	}
}

func TestValidate_LookbackWindow(t *testing.T) {
	cfg := &Cfg{
		LookbackHours: 0,
		MaxItems:      100,
		BaseURL:       "https://rss.example.com",
		Username:      "user",
		APIPassword:   "pass",
		DryRun:        true,
	}

	if err := validate(cfg); err == nil {
		t.Error("Expected error for zero lookback window")
	}

	cfg.LookbackHours = 24
	if err := validate(cfg); err != nil {
		t.Errorf("Expected valid configuration, got error: %v", err)
	}
}

func TestValidate_RequiresSource(t *testing.T) {
	cfg := &Cfg{
		LookbackHours: 24,
		MaxItems:      100,
		DryRun:        true,
	}

	if err := validate(cfg); err == nil {
		t.Error("Expected error when neither base URL nor feed URLs are set")
	}

	cfg.FeedURLs = []string{"https://example.com/feed.xml"}
	if err := validate(cfg); err != nil {
		t.Errorf("Expected feed URLs alone to satisfy source requirement, got: %v", err)
	}
}

func TestValidate_FreshRSSCredentials(t *testing.T) {
	cfg := &Cfg{
		LookbackHours: 24,
		MaxItems:      100,
		BaseURL:       "https://rss.example.com",
		DryRun:        true,
	}

	if err := validate(cfg); err == nil {
		t.Error("Expected error for missing FreshRSS username")
	}

	cfg.Username = "user"
	if err := validate(cfg); err == nil {
		t.Error("Expected error for missing FreshRSS API password")
	}

	cfg.APIPassword = "pass"
	if err := validate(cfg); err != nil {
		t.Errorf("Expected valid configuration, got error: %v", err)
	}
}

func TestValidate_EmailDelivery(t *testing.T) {
	cfg := &Cfg{
		LookbackHours: 24,
		MaxItems:      100,
		BaseURL:       "https://rss.example.com",
		Username:      "user",
		APIPassword:   "pass",
	}

	// Not a dry run and no OPML path: SMTP settings are required.
	if err := validate(cfg); err == nil {
		t.Error("Expected error for missing SMTP host")
	}

	cfg.SMTPHost = "smtp.example.com"
	if err := validate(cfg); err == nil {
		t.Error("Expected error for missing sender address")
	}

	cfg.FromEmail = "digest@example.com"
	if err := validate(cfg); err == nil {
		t.Error("Expected error for missing recipients")
	}

	cfg.ToEmails = []string{"team@example.com"}
	if err := validate(cfg); err != nil {
		t.Errorf("Expected valid configuration, got error: %v", err)
	}
}

func TestSendsEmail(t *testing.T) {
	cfg := &Cfg{}
	if !cfg.SendsEmail() {
		t.Error("Default run should send email")
	}

	for _, modify := range []func(*Cfg){
		func(c *Cfg) { c.DryRun = true },
		func(c *Cfg) { c.Serve = true },
		func(c *Cfg) { c.OPMLPath = "out.opml" },
	} {
		c := &Cfg{}
		modify(c)
		if c.SendsEmail() {
			t.Errorf("Run with %+v should not send email", c)
		}
	}
}

func TestLocation_Fallback(t *testing.T) {
	cfg := &Cfg{Timezone: "Not/AZone"}
	loc, err := cfg.Location()
	if err == nil {
		t.Error("Expected error for unknown timezone")
	}
	if loc == nil {
		t.Fatal("Expected UTC fallback, got nil location")
	}
	if loc.String() != "UTC" {
		t.Errorf("Expected UTC fallback, got %s", loc)
	}
}
