package config

// AppConfig holds the application configuration
type AppConfig struct {
	DBURL        string
	RedisAddress string
	BearerToken  string

	// StrictPartnerPercentages makes profit distribution fail when the
	// partnership percentages do not sum to 100.
	StrictPartnerPercentages bool
}

// GetBearerToken returns the BearerToken from the config
func (c *AppConfig) GetBearerToken() string {
	return c.BearerToken
}
