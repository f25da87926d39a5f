package database

import (
	"testing"

	"mahjongsim/common/config"
)

func TestClientOptions(t *testing.T) {
	opts := clientOptions(config.MongoConf{
		Url:         "mongodb://localhost:27017",
		Username:    "sim",
		Password:    "secret",
		MinPoolSize: 2,
		MaxPoolSize: 8,
	})
	if opts.MinPoolSize == nil || *opts.MinPoolSize != 2 {
		t.Fatalf("expected min pool 2, got %v", opts.MinPoolSize)
	}
	if opts.MaxPoolSize == nil || *opts.MaxPoolSize != 8 {
		t.Fatalf("expected max pool 8, got %v", opts.MaxPoolSize)
	}
	if opts.Auth == nil || opts.Auth.Username != "sim" {
		t.Fatalf("expected credentials to be set, got %+v", opts.Auth)
	}

	noAuth := clientOptions(config.MongoConf{Url: "mongodb://localhost:27017"})
	if noAuth.Auth != nil {
		t.Fatalf("no credentials expected, got %+v", noAuth.Auth)
	}
}

func TestMongoManager_CloseNil(t *testing.T) {
	var m *MongoManager
	if err := m.Close(); err != nil {
		t.Fatalf("closing a nil manager should be a no-op: %v", err)
	}
}
