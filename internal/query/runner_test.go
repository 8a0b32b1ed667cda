package query

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"carrental-backend/internal/domain"
)

type MockExecutor struct {
	mock.Mock
}

func (m *MockExecutor) Aggregate(ctx context.Context, collection string, pipeline mongo.Pipeline) ([]bson.M, error) {
	args := m.Called(ctx, collection, pipeline)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]bson.M), args.Error(1)
}

func TestRun_DecodesFacet(t *testing.T) {
	exec := new(MockExecutor)
	spec := QuerySpec{Collection: "cars"}
	req := ListRequest{Start: 0, Length: 2}
	pipeline, err := Build(req, spec)
	require.NoError(t, err)

	exec.On("Aggregate", mock.Anything, "cars", pipeline).Return([]bson.M{{
		"data":  bson.A{bson.M{"plateNumber": "A-1"}, bson.M{"plateNumber": "B-2"}},
		"total": bson.A{bson.M{"count": int32(7)}},
	}}, nil)

	res, err := Run(context.Background(), exec, req, spec)
	require.NoError(t, err)
	assert.Equal(t, int64(7), res.RecordsTotal)
	assert.Equal(t, []bson.M{{"plateNumber": "A-1"}, {"plateNumber": "B-2"}}, res.Data)
	exec.AssertExpectations(t)
}

func TestRun_EmptyTotal(t *testing.T) {
	exec := new(MockExecutor)
	exec.On("Aggregate", mock.Anything, "cars", mock.Anything).Return([]bson.M{{
		"data":  bson.A{},
		"total": bson.A{},
	}}, nil)

	res, err := Run(context.Background(), exec, ListRequest{Length: 10}, QuerySpec{Collection: "cars"})
	require.NoError(t, err)
	assert.Zero(t, res.RecordsTotal)
	assert.NotNil(t, res.Data)
	assert.Empty(t, res.Data)
}

func TestRun_ExecutorFailure(t *testing.T) {
	exec := new(MockExecutor)
	cause := errors.New("server selection timeout")
	exec.On("Aggregate", mock.Anything, "cars", mock.Anything).Return(nil, cause)

	_, err := Run(context.Background(), exec, ListRequest{Length: 10}, QuerySpec{Collection: "cars"})
	require.Error(t, err)
	assert.True(t, domain.IsExecutionFailure(err))
	assert.ErrorIs(t, err, cause)
	exec.AssertNumberOfCalls(t, "Aggregate", 1)
}

func TestRun_InvalidRequestNeverReachesExecutor(t *testing.T) {
	exec := new(MockExecutor)
	_, err := Run(context.Background(), exec, ListRequest{Start: -3, Length: 10}, QuerySpec{Collection: "cars"})
	assert.True(t, domain.IsInvalidRequest(err))
	exec.AssertNotCalled(t, "Aggregate", mock.Anything, mock.Anything, mock.Anything)
}

func TestToInt64(t *testing.T) {
	assert.Equal(t, int64(3), toInt64(int32(3)))
	assert.Equal(t, int64(4), toInt64(int64(4)))
	assert.Equal(t, int64(5), toInt64(float64(5)))
	assert.Equal(t, int64(0), toInt64("6"))
}
