package config

// DemoUserConfig names the account the development server seeds at startup.
type DemoUserConfig interface {
	GetDemoUserEmail() string
	GetDemoUserPassword() string
}

type DemoUser struct{}

var _ DemoUserConfig = DemoUser{}

func (DemoUser) GetDemoUserEmail() string {
	return GetEnv("DEMO_USER_EMAIL", "demo@example.com")
}

// GetDemoUserPassword returns the seeded password. Empty means the server generates one and logs it.
func (DemoUser) GetDemoUserPassword() string {
	return GetEnv("DEMO_USER_PASSWORD", "")
}
