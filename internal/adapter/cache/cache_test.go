package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"

	"taskboard/internal/adapter/cache"
	"taskboard/internal/core/port"
	"taskboard/pkg/config"
)

// CacheContractSuite runs against every CacheRepository implementation.
type CacheContractSuite struct {
	suite.Suite
	newCache func() port.CacheRepository
	cache    port.CacheRepository
	expire   func(d time.Duration)
}

func (s *CacheContractSuite) SetupTest() {
	s.cache = s.newCache()
}

func (s *CacheContractSuite) TearDownTest() {
	s.cache.Close()
}

func (s *CacheContractSuite) TestSetGetDelete() {
	ctx := context.Background()

	Expect(s.cache.Set(ctx, "cache:/lists:a", []byte(`{"data":[]}`), time.Minute)).To(Succeed())

	value, err := s.cache.Get(ctx, "cache:/lists:a")
	Expect(err).NotTo(HaveOccurred())
	Expect(string(value)).To(Equal(`{"data":[]}`))

	Expect(s.cache.Delete(ctx, "cache:/lists:a")).To(Succeed())

	value, err = s.cache.Get(ctx, "cache:/lists:a")
	Expect(err).NotTo(HaveOccurred())
	Expect(value).To(BeNil())
}

func (s *CacheContractSuite) TestGet_Miss() {
	value, err := s.cache.Get(context.Background(), "missing")

	Expect(err).NotTo(HaveOccurred())
	Expect(value).To(BeNil())
}

func (s *CacheContractSuite) TestDeleteByPrefix() {
	ctx := context.Background()

	for _, key := range []string{"cache:/todos:1", "cache:/todos:2", "cache:/lists:1"} {
		Expect(s.cache.Set(ctx, key, []byte(key), time.Minute)).To(Succeed())
	}

	Expect(s.cache.DeleteByPrefix(ctx, "cache:/todos:")).To(Succeed())

	for _, key := range []string{"cache:/todos:1", "cache:/todos:2"} {
		value, _ := s.cache.Get(ctx, key)
		Expect(value).To(BeNil())
	}

	value, _ := s.cache.Get(ctx, "cache:/lists:1")
	Expect(string(value)).To(Equal("cache:/lists:1"))
}

func (s *CacheContractSuite) TestExpiry() {
	ctx := context.Background()

	Expect(s.cache.Set(ctx, "short", []byte("x"), 50*time.Millisecond)).To(Succeed())
	s.expire(100 * time.Millisecond)

	value, err := s.cache.Get(ctx, "short")
	Expect(err).NotTo(HaveOccurred())
	Expect(value).To(BeNil())
}

func TestMemoryCache(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, &CacheContractSuite{
		newCache: func() port.CacheRepository { return cache.NewMemoryCache(time.Minute) },
		expire:   time.Sleep,
	})
}

func TestRedisCache(t *testing.T) {
	RegisterTestingT(t)
	server := miniredis.RunT(t)

	suite.Run(t, &CacheContractSuite{
		newCache: func() port.CacheRepository {
			server.FlushAll()
			c, err := cache.NewRedisCache(context.Background(), "redis://"+server.Addr())
			if err != nil {
				t.Fatalf("connect to miniredis: %v", err)
			}
			return c
		},
		expire: server.FastForward,
	})
}

func TestRedisCache_UnreachableServer(t *testing.T) {
	RegisterTestingT(t)

	_, err := cache.NewRedisCache(context.Background(), "redis://127.0.0.1:1")
	Expect(err).To(MatchError(ContainSubstring("ping redis")))

	_, err = cache.NewRedisCache(context.Background(), "not a url")
	Expect(err).To(HaveOccurred())
}

func TestNew_SelectsDriver(t *testing.T) {
	RegisterTestingT(t)
	server := miniredis.RunT(t)
	ctx := context.Background()

	memory, err := cache.New(ctx, config.CacheConfig{Driver: "memory", TTL: time.Minute})
	Expect(err).NotTo(HaveOccurred())
	Expect(memory).To(BeAssignableToTypeOf(&cache.MemoryCache{}))

	redisCache, err := cache.New(ctx, config.CacheConfig{Driver: "redis", RedisURL: "redis://" + server.Addr()})
	Expect(err).NotTo(HaveOccurred())
	Expect(redisCache).To(BeAssignableToTypeOf(&cache.RedisCache{}))
	Expect(redisCache.Close()).To(Succeed())

	_, err = cache.New(ctx, config.CacheConfig{Driver: "memcached"})
	Expect(err).To(MatchError(ContainSubstring("unknown cache driver")))
}
