package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"localaichat/configs"
	"localaichat/internal/domain"
	"localaichat/internal/ports/output"
)

// Compile-time check to ensure SessionStore implements the output port
var _ output.SessionRepository = (*SessionStore)(nil)

const defaultPrefix = "localaichat:session:"

// SessionStore struct - Output adapter keeping session snapshots in Redis.
// Each session is one JSON value with a TTL; a set indexes the stored ids.
type SessionStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewSessionStore func - Creates new Redis session store
func NewSessionStore(config configs.Redis) *SessionStore {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})
	logrus.Infof("Redis session store initialized, addr: %s, db: %d", config.Addr, config.DB)
	return newSessionStore(client, config.Prefix, time.Duration(config.TTL)*time.Minute)
}

func newSessionStore(client *redis.Client, prefix string, ttl time.Duration) *SessionStore {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &SessionStore{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

// GetSession loads a session snapshot. A missing or expired key yields nil.
func (s *SessionStore) GetSession(ctx context.Context, id uuid.UUID) (*domain.ChatSession, error) {
	raw, err := s.client.Get(ctx, s.sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		logrus.Errorf("Failed to load session %s: %v", id, err)
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	session, err := decodeSession(raw)
	if err != nil {
		return nil, err
	}
	session.LastAccessTime = time.Now()
	if s.ttl > 0 {
		if err := s.client.Expire(ctx, s.sessionKey(id), s.ttl).Err(); err != nil {
			logrus.Warnf("Failed to refresh session ttl %s: %v", id, err)
		}
	}
	return session, nil
}

// UpdateSession writes the session snapshot and indexes its id
func (s *SessionStore) UpdateSession(ctx context.Context, session *domain.ChatSession) error {
	session.LastAccessTime = time.Now()

	raw, err := encodeSession(session)
	if err != nil {
		return err
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.sessionKey(session.ID), raw, s.ttl)
		pipe.SAdd(ctx, s.setKey(), session.ID.String())
		return nil
	})
	if err != nil {
		logrus.Errorf("Failed to save session %s: %v", session.ID, err)
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// DeleteSession removes the snapshot and its index entry
func (s *SessionStore) DeleteSession(ctx context.Context, id uuid.UUID) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.sessionKey(id))
		pipe.SRem(ctx, s.setKey(), id.String())
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// ListSessions returns indexed ids whose snapshot still exists.
// Entries whose snapshot expired are pruned from the index.
func (s *SessionStore) ListSessions(ctx context.Context) ([]uuid.UUID, error) {
	members, err := s.client.SMembers(ctx, s.setKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(members))
	for _, member := range members {
		id, err := uuid.Parse(member)
		if err != nil {
			s.unindex(ctx, member)
			continue
		}
		exists, err := s.client.Exists(ctx, s.sessionKey(id)).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to check session existence: %w", err)
		}
		if exists == 0 {
			s.unindex(ctx, member)
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// unindex drops a stale id from the index; failures only leave it for the next listing
func (s *SessionStore) unindex(ctx context.Context, member string) {
	if err := s.client.SRem(ctx, s.setKey(), member).Err(); err != nil {
		logrus.Warnf("Failed to prune session index entry %s: %v", member, err)
	}
}

// Ping checks if Redis connection is alive
func (s *SessionStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the underlying Redis client
func (s *SessionStore) Close() error {
	return s.client.Close()
}

func (s *SessionStore) sessionKey(id uuid.UUID) string {
	return s.prefix + id.String()
}

func (s *SessionStore) setKey() string {
	return s.prefix + "set"
}

func encodeSession(session *domain.ChatSession) ([]byte, error) {
	raw, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session: %w", err)
	}
	return raw, nil
}

func decodeSession(raw []byte) (*domain.ChatSession, error) {
	var session domain.ChatSession
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	if session.Params == nil {
		session.Params = domain.Params{}
	}
	if session.Messages == nil {
		session.Messages = make([]domain.ChatMessage, 0)
	}
	return &session, nil
}
