package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_ConfigYAML(t *testing.T) {
	path := filepath.Join("..", "..", "config.yaml")
	cfg, err := Load(path)
	require.NoError(t, err)
	require.NotEmpty(t, cfg.Database.Host)
	require.NotZero(t, cfg.RabbitMQ.Port)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_InvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "missing database host",
			content: "database:\n  port: 5432\n  database: canteen\nrabbitmq:\n  host: localhost\n  port: 5672\n",
		},
		{
			name:    "missing rabbitmq port",
			content: "database:\n  host: localhost\n  port: 5432\n  database: canteen\nrabbitmq:\n  host: localhost\n",
		},
		{
			name:    "not yaml",
			content: "{{{{",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))
			_, err := Load(path)
			require.Error(t, err)
		})
	}
}

func TestURLHelpers(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Database: "canteen"},
		RabbitMQ: RabbitMQConfig{Host: "mq", Port: 5672, User: "guest", Password: "guest"},
	}

	require.Equal(t, "postgres://u:p@db:5432/canteen?sslmode=disable", cfg.DatabaseURL())
	require.Equal(t, "amqp://guest:guest@mq:5672/", cfg.RabbitMQURL())
}
