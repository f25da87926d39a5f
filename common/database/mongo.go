package database

import (
	"context"
	"fmt"
	"time"

	"mahjongsim/common/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type MongoManager struct {
	Cli *mongo.Client
	Db  *mongo.Database
}

func clientOptions(conf config.MongoConf) *options.ClientOptions {
	opts := options.Client().ApplyURI(conf.Url)
	if conf.MinPoolSize > 0 {
		opts.SetMinPoolSize(uint64(conf.MinPoolSize))
	}
	if conf.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(uint64(conf.MaxPoolSize))
	}
	if conf.Username != "" && conf.Password != "" {
		opts.SetAuth(options.Credential{
			Username: conf.Username,
			Password: conf.Password,
		})
	}
	return opts
}

// NewMongo 连接并 Ping，超时 10 秒
func NewMongo(ctx context.Context, conf config.MongoConf) (*MongoManager, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions(conf))
	if err != nil {
		return nil, fmt.Errorf("mongodb 连接错误: %w", err)
	}
	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongodb Ping 错误: %w", err)
	}
	return &MongoManager{
		Cli: client,
		Db:  client.Database(conf.Db),
	}, nil
}

func (m *MongoManager) Close() error {
	if m == nil || m.Cli == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.Cli.Disconnect(ctx)
}
