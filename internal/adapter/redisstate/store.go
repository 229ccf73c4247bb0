// Package redisstate persists ledger state in Redis.
package redisstate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// Store implements ledger.Store on a Redis keyspace. Keys are namespaced as
// "ledger:{network}:{contract_id}:" followed by the binary ledger key.
type Store struct {
	client redis.UniversalClient
	prefix string
}

func NewStore(client redis.UniversalClient, network, contractID string) *Store {
	network = strings.TrimSpace(network)
	if network == "" {
		network = "testnet"
	}
	return &Store{
		client: client,
		prefix: fmt.Sprintf("ledger:%s:%s:", network, strings.TrimSpace(contractID)),
	}
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	return v, true, nil
}

// Apply writes the batch inside MULTI/EXEC.
func (s *Store) Apply(ctx context.Context, writes map[string][]byte) error {
	if len(writes) == 0 {
		return nil
	}
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for k, v := range writes {
			pipe.Set(ctx, s.prefix+k, v, 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis apply: %w", err)
	}
	return nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Connect parses a redis:// URL and verifies the connection.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}
