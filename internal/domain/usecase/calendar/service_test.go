package calendar

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/amirhossein-jamali/calendar-duration/internal/domain/entity"
	errs "github.com/amirhossein-jamali/calendar-duration/internal/domain/error"
	"github.com/amirhossein-jamali/calendar-duration/internal/domain/port/usecase"
	coremocks "github.com/amirhossein-jamali/calendar-duration/mocks/port/core"
	persistencemocks "github.com/amirhossein-jamali/calendar-duration/mocks/port/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func quietLogger(t *testing.T) *coremocks.MockLogger {
	logger := coremocks.NewMockLogger(t)
	logger.EXPECT().Debug(mock.Anything, mock.Anything).Maybe()
	logger.EXPECT().Info(mock.Anything, mock.Anything).Maybe()
	logger.EXPECT().Warn(mock.Anything, mock.Anything).Maybe()
	return logger
}

func newTestService(t *testing.T, limits Limits) (*Service, *persistencemocks.MockPresetRepository, *coremocks.MockTimeProvider) {
	repo := persistencemocks.NewMockPresetRepository(t)
	clock := coremocks.NewMockTimeProvider(t)
	return NewService(repo, clock, quietLogger(t), limits), repo, clock
}

func TestDescribe(t *testing.T) {
	ctx := context.Background()

	t.Run("Duration text", func(t *testing.T) {
		service, _, _ := newTestService(t, Limits{})

		info, err := service.Describe(ctx, "23h")

		require.NoError(t, err)
		assert.Equal(t, "23h", info.Duration.String())
		assert.Equal(t, "1d", info.Parent)
		assert.Empty(t, info.Preset)
		assert.False(t, info.IsUniform)
		assert.False(t, info.IsCalendarRequired)
		assert.False(t, info.HasExactSeconds)
		assert.Equal(t, 3600.0, info.MinSeconds)
		assert.Equal(t, 82800.0, info.MaxSeconds)
	})

	t.Run("Year has no parent", func(t *testing.T) {
		service, _, _ := newTestService(t, Limits{})

		info, err := service.Describe(ctx, "1y")

		require.NoError(t, err)
		assert.Empty(t, info.Parent)
		assert.True(t, info.IsCalendarRequired)
	})

	t.Run("Preset name", func(t *testing.T) {
		service, repo, _ := newTestService(t, Limits{})
		repo.EXPECT().GetByName(mock.Anything, "billing").
			Return(&entity.Preset{Name: "billing", Duration: entity.MustParse("1M")}, nil).Once()

		info, err := service.Describe(ctx, "Billing")

		require.NoError(t, err)
		assert.Equal(t, "1M", info.Duration.String())
		assert.Equal(t, "billing", info.Preset)
	})

	t.Run("Unknown preset reports the parse error", func(t *testing.T) {
		service, repo, _ := newTestService(t, Limits{})
		repo.EXPECT().GetByName(mock.Anything, "fortnightly").Return(nil, errs.ErrPresetNotFound).Once()

		_, err := service.Describe(ctx, "fortnightly")

		assert.ErrorIs(t, err, errs.ErrInvalidInput)
	})

	t.Run("Store failure surfaces", func(t *testing.T) {
		service, repo, _ := newTestService(t, Limits{})
		repo.EXPECT().GetByName(mock.Anything, "weekly").Return(nil, errs.ErrDatabaseConnection).Once()

		_, err := service.Describe(ctx, "weekly")

		assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
	})

	t.Run("Malformed text is not looked up", func(t *testing.T) {
		service, _, _ := newTestService(t, Limits{})

		_, err := service.Describe(ctx, "1d 1h")

		assert.ErrorIs(t, err, errs.ErrInvalidInput)
	})

	t.Run("Works without a preset store", func(t *testing.T) {
		service := NewService(nil, coremocks.NewMockTimeProvider(t), quietLogger(t), Limits{})

		_, err := service.Describe(ctx, "hourly")
		assert.ErrorIs(t, err, errs.ErrInvalidInput)

		info, err := service.Describe(ctx, "1h")
		require.NoError(t, err)
		assert.True(t, info.HasExactSeconds)
	})
}

func TestSpan(t *testing.T) {
	ctx := context.Background()

	t.Run("Explicit timestamp", func(t *testing.T) {
		service, _, _ := newTestService(t, Limits{})

		span, err := service.Span(ctx, "20w", "2018-12-07 13:12", false)

		require.NoError(t, err)
		assert.Equal(t, entity.NewInterval(entity.MustTimestamp("2018-10-08"), entity.MustTimestamp("2018-12-31"), false, true), span)
	})

	t.Run("Empty timestamp means now", func(t *testing.T) {
		service, _, clock := newTestService(t, Limits{})
		clock.EXPECT().Now().Return(time.Date(2018, 12, 7, 13, 12, 0, 0, time.UTC)).Once()

		span, err := service.Span(ctx, "1M", "", false)

		require.NoError(t, err)
		assert.Equal(t, entity.MustTimestamp("2018-12-01"), span.Start)
		assert.Equal(t, entity.MustTimestamp("2019-01-01"), span.End)
	})

	t.Run("Invalid timestamp", func(t *testing.T) {
		service, _, _ := newTestService(t, Limits{})

		_, err := service.Span(ctx, "1d", "yesterday-ish", false)

		assert.ErrorIs(t, err, errs.ErrInvalidTimestamp)
	})
}

func TestAlignAndStep(t *testing.T) {
	ctx := context.Background()
	service, _, _ := newTestService(t, Limits{})

	testCases := []struct {
		mode     usecase.AlignMode
		expected string
	}{
		{usecase.AlignFloor, "2018-12-07"},
		{usecase.AlignCeil, "2018-12-08"},
		{usecase.AlignNext, "2018-12-08"},
		{usecase.AlignPrevious, "2018-12-07"},
	}

	for _, tc := range testCases {
		t.Run(string(tc.mode), func(t *testing.T) {
			boundary, err := service.Align(ctx, "1d", "2018-12-07 13:12", tc.mode)

			require.NoError(t, err)
			assert.Equal(t, entity.MustTimestamp(tc.expected), boundary)
		})
	}

	_, err := service.Align(ctx, "1d", "2018-12-07", usecase.AlignMode("round"))
	assert.ErrorIs(t, err, errs.ErrInvalidRequest)

	result, err := service.Step(ctx, "1M", "2018-06-01", -3, false)
	require.NoError(t, err)
	assert.Equal(t, entity.MustTimestamp("2018-03-01"), result)
}

func TestWalk(t *testing.T) {
	ctx := context.Background()

	t.Run("Limit is honored", func(t *testing.T) {
		service, _, _ := newTestService(t, Limits{})

		spans, err := service.Walk(ctx, "1h", "7200", entity.WalkOptions{Limit: 2, Backward: true})

		require.NoError(t, err)
		assert.Equal(t, []entity.Interval{
			entity.NewInterval(7200, 10800, false, true),
			entity.NewInterval(3600, 7200, false, true),
		}, spans)
	})

	t.Run("Missing limit uses the configured cap", func(t *testing.T) {
		service, _, _ := newTestService(t, Limits{MaxWalkLimit: 5})

		spans, err := service.Walk(ctx, "1d", "2018-12-07", entity.WalkOptions{})

		require.NoError(t, err)
		assert.Len(t, spans, 5)
	})

	t.Run("Oversized limit is capped", func(t *testing.T) {
		service, _, _ := newTestService(t, Limits{MaxWalkLimit: 3})

		spans, err := service.Walk(ctx, "1d", "2018-12-07", entity.WalkOptions{Limit: 100})

		require.NoError(t, err)
		assert.Len(t, spans, 3)
	})

	t.Run("Canceled context stops the walk", func(t *testing.T) {
		service, _, _ := newTestService(t, Limits{})
		canceled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := service.Walk(canceled, "1d", "2018-12-07", entity.WalkOptions{Limit: 10})

		assert.True(t, errors.Is(err, context.Canceled))
	})
}

func TestIterate(t *testing.T) {
	ctx := context.Background()
	iv := entity.NewInterval(entity.MustTimestamp("2018-05-02"), entity.MustTimestamp("2018-08-10"), false, true)

	t.Run("Sized months", func(t *testing.T) {
		service, _, _ := newTestService(t, Limits{})

		spans, err := service.Iterate(ctx, "1M", iv, entity.IterateOptions{Size: 2})

		require.NoError(t, err)
		require.Len(t, spans, 2)
		assert.Equal(t, entity.MustTimestamp("2018-05-01"), spans[0].Start)
		assert.Equal(t, entity.MustTimestamp("2018-09-01"), spans[1].End)
	})

	t.Run("Too many spans", func(t *testing.T) {
		service, _, _ := newTestService(t, Limits{MaxIterateItems: 10})

		_, err := service.Iterate(ctx, "1d", iv, entity.IterateOptions{})

		assert.ErrorIs(t, err, errs.ErrInvalidRequest)
	})

	t.Run("Exactly at the limit", func(t *testing.T) {
		service, _, _ := newTestService(t, Limits{MaxIterateItems: 4})

		spans, err := service.Iterate(ctx, "1M", iv, entity.IterateOptions{})

		require.NoError(t, err)
		assert.Len(t, spans, 4)
	})
}

func TestCountAndPad(t *testing.T) {
	ctx := context.Background()
	service, _, _ := newTestService(t, Limits{})

	n, err := service.Count(ctx, "1h", entity.OpenInterval(7200, 14400), false)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	iv := entity.NewInterval(entity.MustTimestamp("2018-03-10"), entity.MustTimestamp("2019-03-20"), false, true)
	padded, err := service.Pad(ctx, "1d", iv, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, entity.NewInterval(entity.MustTimestamp("2018-03-08"), entity.MustTimestamp("2019-03-23"), false, true), padded)

	spanned, err := service.SpanInterval(ctx, "1h", entity.ClosedInterval(3600, 7200), true)
	require.NoError(t, err)
	assert.Equal(t, entity.NewInterval(0, 7200, true, false), spanned)
}

func TestEvaluate(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		op       usecase.ArithmeticOp
		operand  float64
		expected float64
	}{
		{usecase.OpSeconds, 0, 3600},
		{usecase.OpAdd, 1, 3601},
		{usecase.OpSub, 1, 3599},
		{usecase.OpMul, 10, 36000},
		{usecase.OpDiv, 10, 360},
		{usecase.OpDivideInto, 7200, 2},
		{usecase.OpNeg, 0, -3600},
		{usecase.OpAbs, 0, 3600},
	}

	for _, tc := range testCases {
		t.Run(string(tc.op), func(t *testing.T) {
			service, _, _ := newTestService(t, Limits{})

			result, err := service.Evaluate(ctx, "1h", tc.op, tc.operand)

			require.NoError(t, err)
			assert.Equal(t, tc.expected, result)
		})
	}

	t.Run("Division of a variable-length duration", func(t *testing.T) {
		repo := persistencemocks.NewMockPresetRepository(t)
		logger := coremocks.NewMockLogger(t)
		logger.EXPECT().Warn("Division refused", mock.Anything).Once()
		service := NewService(repo, coremocks.NewMockTimeProvider(t), logger, Limits{})

		_, err := service.Evaluate(ctx, "23h", usecase.OpDiv, 10)

		assert.ErrorIs(t, err, errs.ErrIncompatibleOperation)
	})

	t.Run("Variable-length arithmetic warns", func(t *testing.T) {
		repo := persistencemocks.NewMockPresetRepository(t)
		logger := coremocks.NewMockLogger(t)
		logger.EXPECT().Warn("Arithmetic on a variable-length duration uses its longest span", mock.Anything).Once()
		logger.EXPECT().Info("Arithmetic evaluated", mock.Anything).Once()
		service := NewService(repo, coremocks.NewMockTimeProvider(t), logger, Limits{})

		result, err := service.Evaluate(ctx, "1M", usecase.OpMul, 2)

		require.NoError(t, err)
		assert.Equal(t, 62*86400.0, result)
	})

	t.Run("Unknown operation", func(t *testing.T) {
		service, _, _ := newTestService(t, Limits{})

		_, err := service.Evaluate(ctx, "1h", usecase.ArithmeticOp("pow"), 2)

		assert.ErrorIs(t, err, errs.ErrInvalidRequest)
	})
}
