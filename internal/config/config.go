package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	DatabaseURL string `env:"DATABASE_URL"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"marketplace.db"`
	SeedDemo    bool   `env:"SEED_DEMO_DATA" envDefault:"false"`

	Auth      Auth      `envPrefix:"AUTH_"`
	Orders    Orders    `envPrefix:"ORDERS_"`
	Inventory Inventory `envPrefix:"INVENTORY_"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}

type Auth struct {
	// HS256 secret shared with the credential issuer
	JWTSecret string `env:"JWT_SECRET,required"`
}

type Orders struct {
	// when true, only the order owner or an admin may mark an order
	// paid; off by default to keep the trusted-webhook flow working
	RequirePayerOwnership bool `env:"REQUIRE_PAYER_OWNERSHIP" envDefault:"false"`
}

type Inventory struct {
	// when true, placement clamps stock at zero instead of failing
	// with insufficient stock
	AllowOversell bool `env:"ALLOW_OVERSELL" envDefault:"false"`
}
