package session

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// RedisConf redis 后端配置
type RedisConf struct {
	Address      string
	Password     string
	DB           int
	PoolSize     int
	UseTLS       bool
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// Prefix 键前缀，多套环境共用一个 redis 时区分会话。
	Prefix string
}

// RedisStorage 把会话放进 redis，供共享环境（CI、跳板机）使用，
// 多台机器上的 dcctl 可以复用同一份登录态。
type RedisStorage struct {
	client *redis.Client
	prefix string
}

func NewRedis(cfg RedisConf) (*redis.Client, error) {
	options := &redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if cfg.UseTLS {
		options.TLSConfig = &tls.Config{}
	}
	client := redis.NewClient(options)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, errors.Wrap(err, "connect redis")
	}
	return client, nil
}

func NewRedisStorage(client *redis.Client, prefix string) *RedisStorage {
	if prefix == "" {
		prefix = "dcctl:session:"
	}
	return &RedisStorage{client: client, prefix: prefix}
}

func (s *RedisStorage) Get(key string) (string, error) {
	val, err := s.client.Get(context.Background(), s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrap(err, "redis get")
	}
	return val, nil
}

func (s *RedisStorage) Set(key, value string) error {
	return errors.Wrap(s.client.Set(context.Background(), s.prefix+key, value, 0).Err(), "redis set")
}

// SetMany 用事务管道一次提交，保证登录写入的原子性。
func (s *RedisStorage) SetMany(values map[string]string) error {
	pipe := s.client.TxPipeline()
	for k, v := range values {
		pipe.Set(context.Background(), s.prefix+k, v, 0)
	}
	_, err := pipe.Exec(context.Background())
	return errors.Wrap(err, "redis setmany")
}

func (s *RedisStorage) Del(keys ...string) error {
	prefixed := make([]string, 0, len(keys))
	for _, k := range keys {
		prefixed = append(prefixed, s.prefix+k)
	}
	return errors.Wrap(s.client.Del(context.Background(), prefixed...).Err(), "redis del")
}
