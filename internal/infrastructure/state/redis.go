package state

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"auction_house/internal/domain"
	"auction_house/internal/domain/entity"
	"auction_house/internal/domain/value"
	"auction_house/pkg/errcodes"
)

const DefaultKey = "auction:state"

const (
	fieldStatus      = "status"
	fieldActiveLotID = "activeLotId"
	fieldCurrentBid  = "currentBid"
	fieldLeaderID    = "leaderId"
	fieldCountdown   = "countdown"
)

// admitBidScript проверяет и применяет ставку за один вызов.
// KEYS[1]: хэш записи; ARGV[1]: сумма, ARGV[2]: участник, ARGV[3]: новое
// значение таймера, далее пары (верхняя граница, шаг); граница 0 снимает ограничение.
var admitBidScript = redis.NewScript(`
local state = redis.call('HMGET', KEYS[1], 'status', 'currentBid', 'countdown')
if state[1] ~= 'RUNNING' then
  return 0
end

local countdown = tonumber(state[3])
if countdown == nil or countdown <= 0 then
  return 0
end

local current = tonumber(state[2]) or 0
local amount = tonumber(ARGV[1])

local step = nil
for i = 4, #ARGV, 2 do
  local upper = tonumber(ARGV[i])
  if upper == 0 or current < upper then
    step = tonumber(ARGV[i + 1])
    break
  end
end
if step == nil then
  step = tonumber(ARGV[#ARGV])
end

if amount <= current or amount - current < step then
  return 0
end

redis.call('HSET', KEYS[1], 'currentBid', ARGV[1], 'leaderId', ARGV[2], 'countdown', ARGV[3])
return 1
`)

// RedisStore хранит запись аукциона в хэше Redis.
type RedisStore struct {
	client   redis.UniversalClient
	key      string
	schedule value.IncrementSchedule
	tierArgs []any
}

func NewRedisStore(client redis.UniversalClient, key string, schedule value.IncrementSchedule) *RedisStore {
	if key == "" {
		key = DefaultKey
	}

	tierArgs := make([]any, 0, len(schedule)*2)
	for _, tier := range schedule {
		tierArgs = append(tierArgs, tier.UpperBound, tier.Step)
	}

	return &RedisStore{
		client:   client,
		key:      key,
		schedule: schedule,
		tierArgs: tierArgs,
	}
}

func (s *RedisStore) Load(ctx context.Context) (entity.AuctionRecord, error) {
	fields, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return entity.AuctionRecord{}, unavailable(err, "failed to read auction state")
	}

	record, err := decodeRecord(fields)
	if err != nil {
		return entity.AuctionRecord{}, domain.WrapError(err, errcodes.InternalServerError, "corrupt auction state")
	}

	return record, nil
}

func (s *RedisStore) Save(ctx context.Context, record entity.AuctionRecord) error {
	if err := s.client.HSet(ctx, s.key, encodeRecord(record)).Err(); err != nil {
		return unavailable(err, "failed to write auction state")
	}
	return nil
}

func (s *RedisStore) SetStatus(ctx context.Context, status value.AuctionStatus) error {
	if err := s.client.HSet(ctx, s.key, fieldStatus, string(status)).Err(); err != nil {
		return unavailable(err, "failed to write auction status")
	}
	return nil
}

func (s *RedisStore) AddCountdown(ctx context.Context, delta int) (int, error) {
	countdown, err := s.client.HIncrBy(ctx, s.key, fieldCountdown, int64(delta)).Result()
	if err != nil {
		return 0, unavailable(err, "failed to move countdown")
	}
	return int(countdown), nil
}

func (s *RedisStore) AdmitBid(ctx context.Context, partyID uuid.UUID, amount int64, countdown int) (bool, error) {
	args := make([]any, 0, 3+len(s.tierArgs))
	args = append(args, amount, partyID.String(), countdown)
	args = append(args, s.tierArgs...)

	admitted, err := admitBidScript.Run(ctx, s.client, []string{s.key}, args...).Int()
	if err != nil {
		return false, unavailable(err, "failed to evaluate bid")
	}

	return admitted == 1, nil
}

func encodeRecord(r entity.AuctionRecord) map[string]any {
	return map[string]any{
		fieldStatus:      string(r.Status),
		fieldActiveLotID: uuidOrEmpty(r.ActiveLotID),
		fieldCurrentBid:  r.CurrentBid,
		fieldLeaderID:    uuidOrEmpty(r.LeaderID),
		fieldCountdown:   r.Countdown,
	}
}

func decodeRecord(fields map[string]string) (entity.AuctionRecord, error) {
	record := entity.IdleRecord(entity.DefaultCountdown)

	if status := fields[fieldStatus]; status != "" {
		record.Status = value.AuctionStatus(status)
	}

	var err error

	if record.ActiveLotID, err = parseOptionalUUID(fields[fieldActiveLotID]); err != nil {
		return record, fmt.Errorf("%s: %w", fieldActiveLotID, err)
	}

	if record.LeaderID, err = parseOptionalUUID(fields[fieldLeaderID]); err != nil {
		return record, fmt.Errorf("%s: %w", fieldLeaderID, err)
	}

	if raw := fields[fieldCurrentBid]; raw != "" {
		if record.CurrentBid, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return record, fmt.Errorf("%s: %w", fieldCurrentBid, err)
		}
	}

	if raw := fields[fieldCountdown]; raw != "" {
		if record.Countdown, err = strconv.Atoi(raw); err != nil {
			return record, fmt.Errorf("%s: %w", fieldCountdown, err)
		}
	}

	return record, nil
}

func parseOptionalUUID(raw string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil //nolint:nilnil
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("uuid.Parse: %w", err)
	}

	return &id, nil
}

func uuidOrEmpty(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}

func unavailable(err error, message string) error {
	return domain.WrapError(err, errcodes.StateStoreUnavailable, message)
}
