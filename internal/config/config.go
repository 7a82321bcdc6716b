package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	BaseURL     string `env:"BASE_URL"`
	DatabaseURL string `env:"DATABASE_URL" envDefault:"medieaze.db"`
	Currency    string `env:"CURRENCY" envDefault:"INR"`

	JWT      JWT      `envPrefix:"JWT_"`
	Razorpay Razorpay `envPrefix:"RAZORPAY_"`
}

type Razorpay struct {
	BaseApiURL string `env:"BASE_API_URL" envDefault:"https://api.razorpay.com"`
	KeyID      string `env:"KEY_ID"`
	KeySecret  string `env:"KEY_SECRET"`
}

type JWT struct {
	Secret   string `env:"SECRET" envDefault:"dev-secret-please-change"`
	TTLHours int    `env:"TTL_HOURS" envDefault:"24"`
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
