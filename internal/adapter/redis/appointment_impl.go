package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/user/salon-service/internal/entity"
	"github.com/user/salon-service/internal/repository"
)

const (
	appointmentKeyPrefix = "appointment:"
	appointmentIndexKey  = "appointments:index"
)

// AppointmentRepoImpl stores each appointment as a JSON string under its own
// key, with a sorted set scored by creation time as the listing index.
type AppointmentRepoImpl struct {
	client *redis.Client
}

// NewAppointmentRepo creates a new instance of AppointmentRepoImpl.
func NewAppointmentRepo(client *redis.Client) *AppointmentRepoImpl {
	return &AppointmentRepoImpl{client: client}
}

func (r *AppointmentRepoImpl) generateKey(id string) string {
	return fmt.Sprintf("%s%s", appointmentKeyPrefix, id)
}

// Save writes the document and its index entry in one MULTI/EXEC.
func (r *AppointmentRepoImpl) Save(ctx context.Context, appt *entity.Appointment) error {
	doc, err := json.Marshal(appt)
	if err != nil {
		return err
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.generateKey(appt.ID), doc, 0)
		pipe.ZAdd(ctx, appointmentIndexKey, redis.Z{
			Score:  float64(appt.CreatedAt.UnixMilli()),
			Member: appt.ID,
		})
		return nil
	})
	return err
}

func (r *AppointmentRepoImpl) FindByID(ctx context.Context, id string) (*entity.Appointment, error) {
	doc, err := r.client.Get(ctx, r.generateKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return decode(doc)
}

// FindAll walks the index in score order and fetches the documents with MGET.
// Index entries whose document has vanished are skipped.
func (r *AppointmentRepoImpl) FindAll(ctx context.Context) ([]*entity.Appointment, error) {
	ids, err := r.client.ZRange(ctx, appointmentIndexKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.generateKey(id)
	}
	vals, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	appts := make([]*entity.Appointment, 0, len(vals))
	for _, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}
		appt, err := decode([]byte(s))
		if err != nil {
			return nil, err
		}
		appts = append(appts, appt)
	}
	return appts, nil
}

// Update overwrites the document only if it exists (SET XX).
func (r *AppointmentRepoImpl) Update(ctx context.Context, appt *entity.Appointment) error {
	doc, err := json.Marshal(appt)
	if err != nil {
		return err
	}

	ok, err := r.client.SetXX(ctx, r.generateKey(appt.ID), doc, 0).Result()
	if err != nil {
		return err
	}
	if !ok {
		return repository.ErrNotFound
	}
	return nil
}

func (r *AppointmentRepoImpl) Delete(ctx context.Context, id string) error {
	var del *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, r.generateKey(id))
		pipe.ZRem(ctx, appointmentIndexKey, id)
		return nil
	})
	if err != nil {
		return err
	}
	if del.Val() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *AppointmentRepoImpl) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func decode(doc []byte) (*entity.Appointment, error) {
	var appt entity.Appointment
	if err := json.Unmarshal(doc, &appt); err != nil {
		return nil, fmt.Errorf("failed to decode appointment document: %w", err)
	}
	return &appt, nil
}
