package config

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type MongoConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type S3Config struct {
	Bucket   string `yaml:"bucket"`
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"`
	Local    bool   `yaml:"local"`
}

// StorageConfig : выбор хранилища файлов, mode = "s3" либо "local"
type StorageConfig struct {
	Mode     string `yaml:"mode"`
	LocalDir string `yaml:"local_dir"`
}

type JWTConfig struct {
	SecretKey string `yaml:"secret_key"`
	TokenTTL  string `yaml:"token_ttl"`
}

type SMTPConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
	User string `yaml:"user"`
	Pass string `yaml:"pass"`
	From string `yaml:"from"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type TTL struct {
	WorkspaceCache int `yaml:"workspace_cache"`
}
