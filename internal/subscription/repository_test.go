package subscription

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func subscriptionRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "consumer_id", "order_id", "status",
		"frequency", "next_delivery_date",
		"paused_at", "cancelled_at", "created_at", "updated_at",
	})
}

func TestRepository_Create(t *testing.T) {
	now := time.Now()

	newSub := func() *Subscription {
		return &Subscription{
			ID:               uuid.New(),
			ConsumerID:       1,
			OrderID:          uuid.New(),
			Status:           StatusActive,
			Frequency:        "WEEKLY",
			NextDeliveryDate: now.AddDate(0, 0, 7),
		}
	}

	t.Run("Success", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		sub := newSub()

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO subscriptions")).
			WithArgs(sub.ID, sub.ConsumerID, sub.OrderID, sub.Status, sub.Frequency, sub.NextDeliveryDate).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

		err := repo.Create(context.Background(), sub)
		require.NoError(t, err)
		assert.Equal(t, now, sub.CreatedAt)
	})

	t.Run("DuplicateOrder_UniqueViolation", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		sub := newSub()

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO subscriptions")).
			WillReturnError(&pq.Error{Code: pq.ErrorCode(PgUniqueViolation)})

		err := repo.Create(context.Background(), sub)
		assert.ErrorIs(t, err, ErrAlreadySubscribed)
	})
}

func TestRepository_GetByID(t *testing.T) {
	subID := uuid.New()
	now := time.Now()

	t.Run("Success", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1")).
			WithArgs(subID).
			WillReturnRows(subscriptionRows().AddRow(
				subID, 1, uuid.New(), "ACTIVE",
				"WEEKLY", now.AddDate(0, 0, 7),
				nil, nil, now, now,
			))

		sub, err := repo.GetByID(context.Background(), subID)
		require.NoError(t, err)
		assert.Equal(t, subID, sub.ID)
		assert.Equal(t, StatusActive, sub.Status)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1")).
			WithArgs(subID).
			WillReturnRows(subscriptionRows())

		_, err := repo.GetByID(context.Background(), subID)
		assert.ErrorIs(t, err, ErrSubscriptionNotFound)
	})
}

func TestRepository_GetByOrderID(t *testing.T) {
	repo, mock := newMockRepo(t)
	orderID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE order_id = $1")).
		WithArgs(orderID).
		WillReturnRows(subscriptionRows().AddRow(
			uuid.New(), 1, orderID, "PAUSED",
			"MONTHLY", now.AddDate(0, 1, 0),
			now, nil, now, now,
		))

	sub, err := repo.GetByOrderID(context.Background(), orderID)
	require.NoError(t, err)
	assert.Equal(t, orderID, sub.OrderID)
	assert.Equal(t, StatusPaused, sub.Status)
	require.NotNil(t, sub.PausedAt)
}

func TestRepository_ListByConsumer(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE consumer_id = $1")).
		WithArgs(uint(1)).
		WillReturnRows(subscriptionRows().
			AddRow(uuid.New(), 1, uuid.New(), "ACTIVE", "WEEKLY", now, nil, nil, now, now).
			AddRow(uuid.New(), 1, uuid.New(), "CANCELLED", "MONTHLY", now, nil, now, now, now))

	subs, err := repo.ListByConsumer(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, StatusActive, subs[0].Status)
	assert.Equal(t, StatusCancelled, subs[1].Status)
}

func TestRepository_UpdateStatus(t *testing.T) {
	subID := uuid.New()

	t.Run("PauseKeepsNextDelivery", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectExec(regexp.QuoteMeta("UPDATE subscriptions")).
			WithArgs(StatusPaused, nil, subID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStatus(context.Background(), subID, StatusPaused, nil)
		assert.NoError(t, err)
	})

	t.Run("ResumeSetsNextDelivery", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		next := time.Now().AddDate(0, 0, 7)

		mock.ExpectExec(regexp.QuoteMeta("UPDATE subscriptions")).
			WithArgs(StatusActive, &next, subID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStatus(context.Background(), subID, StatusActive, &next)
		assert.NoError(t, err)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectExec(regexp.QuoteMeta("UPDATE subscriptions")).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStatus(context.Background(), subID, StatusCancelled, nil)
		assert.ErrorIs(t, err, ErrSubscriptionNotFound)
	})
}
