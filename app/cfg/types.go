package cfg

type Cfg struct {
	// FreshRSS configuration
	BaseURL     string
	Username    string
	APIPassword string
	Label       string

	// Direct feed sources (bypass the aggregator)
	FeedURLs []string

	// Fetch window
	LookbackHours float64
	MaxItems      int
	Timeout       int // seconds

	// Digest configuration
	ConfigPath string
	Timezone   string

	// Output
	DryRun   bool
	OPMLPath string

	// Email delivery
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPUseTLS   bool
	FromEmail    string
	ToEmails     []string

	// Preview server
	Serve        bool
	Port         string
	APIAccessKey string

	// Application metadata
	UserAgent string
	Debug     bool
	Version   string
}

// SendsEmail reports whether this run is expected to deliver the digest
// over SMTP rather than printing, serving or exporting it.
func (c *Cfg) SendsEmail() bool {
	return !c.DryRun && !c.Serve && c.OPMLPath == ""
}
