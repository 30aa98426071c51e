package combination

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/wordcraft/internal/inference"
	mock_inference "github.com/at-ishikawa/wordcraft/internal/mocks/inference"
)

func TestCombiner_CombineAll(t *testing.T) {
	ctx := context.Background()

	t.Run("combines every classic pair", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		engine := mock_inference.NewMockEngine(ctrl)
		engine.EXPECT().Generate(gomock.Any(), wordRequest()).Return(`{"result":"Element"}`, nil).Times(len(ClassicPairs))
		engine.EXPECT().Generate(gomock.Any(), emojiRequest()).Return(`{"emoji":"✨"}`, nil).Times(len(ClassicPairs))
		cache := newSQLiteCache(t)

		got, err := NewCombiner(cache, engine).CombineAll(ctx, ClassicPairs, 3)
		require.NoError(t, err)
		require.Len(t, got, len(ClassicPairs))
		for i, result := range got {
			assert.Equal(t, ClassicPairs[i], result.Pair)
			assert.NoError(t, result.Err)
			assert.Equal(t, Result{Word: "Element", Symbol: "✨", IsNovel: true}, result.Result)
		}

		count, err := cache.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, len(ClassicPairs), count)
	})

	t.Run("a failing pair does not stop the others", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		engine := mock_inference.NewMockEngine(ctrl)
		engine.EXPECT().Generate(gomock.Any(), wordRequest()).DoAndReturn(func(_ context.Context, req inference.Request) (string, error) {
			return `{"answer":"?"}`, nil
		}).Times(2)
		cache := newSQLiteCache(t)

		got, err := NewCombiner(cache, engine).CombineAll(ctx, ClassicPairs[:2], 1)
		require.NoError(t, err)
		require.Len(t, got, 2)
		for _, result := range got {
			assert.ErrorIs(t, result.Err, ErrMalformedModelOutput)
		}
	})

	t.Run("canceled context", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		engine := mock_inference.NewMockEngine(ctrl)
		cache := newSQLiteCache(t)

		canceled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := NewCombiner(cache, engine).CombineAll(canceled, ClassicPairs, 2)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
