package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	BaseURL     string `env:"BASE_URL"`
	DatabaseURL string `env:"DATABASE_URL"`

	AdminJWTSecret string `env:"ADMIN_JWT_SECRET"`

	Midtrans Midtrans `envPrefix:"MIDTRANS_"`
}

type Midtrans struct {
	BaseApiURL   string `env:"BASE_API_URL" envDefault:"https://app.sandbox.midtrans.com"`
	ServerKey    string `env:"SERVER_KEY"`
	ClientKey    string `env:"CLIENT_KEY"`
	IsProduction bool   `env:"IS_PRODUCTION" envDefault:"false"`
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
