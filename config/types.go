package config

import "time"

type config struct {
	Server   server   `yaml:"server" mapstructure:"server"`
	Store    store    `yaml:"store" mapstructure:"store"`
	Mongo    mongo    `yaml:"mongo" mapstructure:"mongo"`
	Mysql    mysql    `yaml:"mysql" mapstructure:"mysql"`
	Redis    redis    `yaml:"redis" mapstructure:"redis"`
	RabbitMq rabbitmq `yaml:"rabbitmq" mapstructure:"rabbitmq"`
	Jwt      jwt      `yaml:"jwt" mapstructure:"jwt"`
	Sentinel sentinel `yaml:"sentinel" mapstructure:"sentinel"`
	Jaeger   jaeger   `yaml:"jaeger" mapstructure:"jaeger"`
}

type server struct {
	Addr           string   `yaml:"addr"`
	MaxBodySize    int      `yaml:"max_body_size" mapstructure:"max_body_size"`
	PprofAddr      string   `yaml:"pprof_addr" mapstructure:"pprof_addr"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// store.driver: mongo | badger
type store struct {
	Driver   string `yaml:"driver"`
	Dir      string `yaml:"dir"`
	InMemory bool   `yaml:"in_memory" mapstructure:"in_memory"`
}

type mongo struct {
	Addr     string `yaml:"addr"`
	Database string `yaml:"database"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type mysql struct {
	Addr     string `yaml:"addr"`
	Database string `yaml:"database"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Charset  string `yaml:"charset"`
}

type redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type rabbitmq struct {
	Addr     string `yaml:"addr"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type jwt struct {
	Secret     string        `yaml:"secret"`
	Timeout    time.Duration `yaml:"timeout"`
	MaxRefresh time.Duration `yaml:"max_refresh" mapstructure:"max_refresh"`
}

type sentinel struct {
	EngagementQPS float64 `yaml:"engagement_qps" mapstructure:"engagement_qps"`
}

type jaeger struct {
	AgentAddr    string  `yaml:"agent_addr" mapstructure:"agent_addr"`
	SamplerParam float64 `yaml:"sampler_param" mapstructure:"sampler_param"`
}
