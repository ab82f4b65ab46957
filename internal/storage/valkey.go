package storage

import (
	"context"
	"fmt"

	"github.com/valkey-io/valkey-go"
)

// ValkeyStore keeps blobs as plain string values on a valkey server.
type ValkeyStore struct {
	client valkey.Client
}

func OpenValkey(ctx context.Context, addr string) (*ValkeyStore, error) {
	client, err := valkey.NewClient(valkey.ClientOption{InitAddress: []string{addr}})
	if err != nil {
		return nil, fmt.Errorf("storage: connect valkey %s: %w", addr, err)
	}
	return &ValkeyStore{client: client}, nil
}

func (s *ValkeyStore) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := s.client.Do(ctx, s.client.B().Get().Key(key).Build()).AsBytes()
	if valkey.IsValkeyNil(err) {
		return nil, ErrNotFound
	}
	return v, err
}

func (s *ValkeyStore) Put(ctx context.Context, key string, value []byte) error {
	return s.client.Do(ctx, s.client.B().Set().Key(key).Value(valkey.BinaryString(value)).Build()).Error()
}

func (s *ValkeyStore) Close() error {
	s.client.Close()
	return nil
}
