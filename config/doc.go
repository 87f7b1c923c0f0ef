// Package config loads service configuration from a YAML file, an optional
// .env file and the process environment using viper and godotenv.
//
// Each binary defines its own config struct embedding ServiceConfig:
//
//	type Config struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Server server.Config `yaml:"server" mapstructure:"server"`
//	}
//	err := config.LoadConfig("voxrelay", &cfg)
//
// Environment variables override file values: SERVER_PORT sets server.port,
// REGISTRY_MONGO_URI sets registry.mongo.uri. Extra names can be bound with
// WithEnvAlias.
package config
