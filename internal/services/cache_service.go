package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/models"
	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/utils"
	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/pkg/logger"
)

type CacheService interface {
	// Basic cache operations
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)

	// Entity cache operations
	CacheDispute(ctx context.Context, dispute *models.Dispute, expiration time.Duration) error
	GetCachedDispute(ctx context.Context, disputeID primitive.ObjectID) (*models.Dispute, error)
	InvalidateDispute(ctx context.Context, disputeID primitive.ObjectID) error

	CacheSubmission(ctx context.Context, submission *models.EvidenceSubmission, expiration time.Duration) error
	GetCachedSubmission(ctx context.Context, submissionID primitive.ObjectID) (*models.EvidenceSubmission, error)
	InvalidateSubmission(ctx context.Context, submissionID primitive.ObjectID) error

	CacheProposal(ctx context.Context, proposal *models.MediationProposal, expiration time.Duration) error
	GetCachedProposal(ctx context.Context, proposalID primitive.ObjectID) (*models.MediationProposal, error)
	InvalidateProposal(ctx context.Context, proposalID primitive.ObjectID) error

	// Rate limiting
	CheckRateLimit(ctx context.Context, key string, limit int64, window time.Duration) (*RateLimitResult, error)

	// Health
	Ping(ctx context.Context) error
}

type RedisClient interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Del(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, keys ...string) (int64, error)
	IncrBy(ctx context.Context, key string, value int64) (int64, error)
	Expire(ctx context.Context, key string, expiration time.Duration) (bool, error)
	TTL(ctx context.Context, key string) (time.Duration, error)
	Ping(ctx context.Context) (string, error)
}

type RateLimitResult struct {
	Allowed    bool          `json:"allowed"`
	Count      int64         `json:"count"`
	Remaining  int64         `json:"remaining"`
	ResetTime  time.Time     `json:"reset_time"`
	RetryAfter time.Duration `json:"retry_after"`
}

type cacheService struct {
	redisClient RedisClient
	logger      *logger.Logger
	defaultTTL  time.Duration
	keyPrefix   string
}

func NewCacheService(redisClient RedisClient, logger *logger.Logger, keyPrefix string, defaultTTL time.Duration) CacheService {
	return &cacheService{
		redisClient: redisClient,
		logger:      logger,
		keyPrefix:   keyPrefix,
		defaultTTL:  defaultTTL,
	}
}

// Basic cache operations
func (s *cacheService) Get(ctx context.Context, key string, dest interface{}) error {
	fullKey := s.buildKey(key)

	data, err := s.redisClient.Get(ctx, fullKey)
	if err != nil {
		return fmt.Errorf("failed to get cache key %s: %w", key, err)
	}

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return fmt.Errorf("failed to unmarshal cache data: %w", err)
	}

	s.logger.WithField("cache_key", key).Debug("Cache hit")
	return nil
}

func (s *cacheService) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	fullKey := s.buildKey(key)

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache data: %w", err)
	}

	if expiration == 0 {
		expiration = s.defaultTTL
	}

	if err := s.redisClient.Set(ctx, fullKey, data, expiration); err != nil {
		return fmt.Errorf("failed to set cache key %s: %w", key, err)
	}

	return nil
}

func (s *cacheService) Delete(ctx context.Context, keys ...string) error {
	fullKeys := make([]string, len(keys))
	for i, key := range keys {
		fullKeys[i] = s.buildKey(key)
	}

	if err := s.redisClient.Del(ctx, fullKeys...); err != nil {
		return fmt.Errorf("failed to delete cache keys: %w", err)
	}

	return nil
}

func (s *cacheService) Exists(ctx context.Context, key string) (bool, error) {
	fullKey := s.buildKey(key)

	count, err := s.redisClient.Exists(ctx, fullKey)
	if err != nil {
		return false, fmt.Errorf("failed to check cache key existence: %w", err)
	}

	return count > 0, nil
}

// Entity cache operations
func (s *cacheService) CacheDispute(ctx context.Context, dispute *models.Dispute, expiration time.Duration) error {
	return s.Set(ctx, utils.CacheDisputePrefix+dispute.ID.Hex(), dispute, expiration)
}

func (s *cacheService) GetCachedDispute(ctx context.Context, disputeID primitive.ObjectID) (*models.Dispute, error) {
	var dispute models.Dispute
	if err := s.Get(ctx, utils.CacheDisputePrefix+disputeID.Hex(), &dispute); err != nil {
		return nil, err
	}
	return &dispute, nil
}

func (s *cacheService) InvalidateDispute(ctx context.Context, disputeID primitive.ObjectID) error {
	return s.Delete(ctx, utils.CacheDisputePrefix+disputeID.Hex())
}

func (s *cacheService) CacheSubmission(ctx context.Context, submission *models.EvidenceSubmission, expiration time.Duration) error {
	return s.Set(ctx, utils.CacheSubmissionPrefix+submission.ID.Hex(), submission, expiration)
}

func (s *cacheService) GetCachedSubmission(ctx context.Context, submissionID primitive.ObjectID) (*models.EvidenceSubmission, error) {
	var submission models.EvidenceSubmission
	if err := s.Get(ctx, utils.CacheSubmissionPrefix+submissionID.Hex(), &submission); err != nil {
		return nil, err
	}
	return &submission, nil
}

func (s *cacheService) InvalidateSubmission(ctx context.Context, submissionID primitive.ObjectID) error {
	return s.Delete(ctx, utils.CacheSubmissionPrefix+submissionID.Hex())
}

func (s *cacheService) CacheProposal(ctx context.Context, proposal *models.MediationProposal, expiration time.Duration) error {
	return s.Set(ctx, utils.CacheProposalPrefix+proposal.ID.Hex(), proposal, expiration)
}

func (s *cacheService) GetCachedProposal(ctx context.Context, proposalID primitive.ObjectID) (*models.MediationProposal, error) {
	var proposal models.MediationProposal
	if err := s.Get(ctx, utils.CacheProposalPrefix+proposalID.Hex(), &proposal); err != nil {
		return nil, err
	}
	return &proposal, nil
}

func (s *cacheService) InvalidateProposal(ctx context.Context, proposalID primitive.ObjectID) error {
	return s.Delete(ctx, utils.CacheProposalPrefix+proposalID.Hex())
}

// Rate limiting
func (s *cacheService) CheckRateLimit(ctx context.Context, key string, limit int64, window time.Duration) (*RateLimitResult, error) {
	rateLimitKey := utils.CacheRateLimitPrefix + key

	count, err := s.redisClient.IncrBy(ctx, rateLimitKey, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}

	if count == 1 {
		s.redisClient.Expire(ctx, rateLimitKey, window)
	}

	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}

	retryAfter := time.Duration(0)
	if count > limit {
		ttl, _ := s.redisClient.TTL(ctx, rateLimitKey)
		retryAfter = ttl
	}

	return &RateLimitResult{
		Allowed:    count <= limit,
		Count:      count,
		Remaining:  remaining,
		ResetTime:  time.Now().Add(window),
		RetryAfter: retryAfter,
	}, nil
}

func (s *cacheService) Ping(ctx context.Context) error {
	_, err := s.redisClient.Ping(ctx)
	return err
}

func (s *cacheService) buildKey(key string) string {
	if s.keyPrefix != "" {
		return s.keyPrefix + ":" + key
	}
	return key
}
