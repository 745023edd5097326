package usecase_search

import (
	"context"
	"errors"
	"testing"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/squabble-app/squabble/server/internal/model"
	searcher_mocks "github.com/squabble-app/squabble/server/internal/usecase/search/mocks/search/searcher"
	"github.com/stretchr/testify/assert"
)

type UsecaseSearchUnitSuite struct {
	suite.Suite
}

func (suite *UsecaseSearchUnitSuite) TestSearch(t provider.T) {
	t.Parallel()

	t.Run("Should return catalog matches", func(t provider.T) {
		searcher := searcher_mocks.NewTrackSearcher(t)
		usecase := New(searcher)
		ctx := context.Background()

		expected := []model.Song{
			{Title: "Dancing Queen", Artist: "ABBA", ID: "1"},
			{Title: "Dancing in the Dark", Artist: "Bruce Springsteen", ID: "2"},
		}
		searcher.On("Search", ctx, "dancing").Return(expected, nil).Once()

		songs, err := usecase.Search(ctx, "dancing")

		assert.NoError(t, err)
		assert.Equal(t, expected, songs)
		searcher.AssertExpectations(t)
	})

	t.Run("Should reject empty query without calling the catalog", func(t provider.T) {
		searcher := searcher_mocks.NewTrackSearcher(t)
		usecase := New(searcher)

		for _, q := range []string{"", "   ", "\t"} {
			songs, err := usecase.Search(context.Background(), q)

			assert.ErrorIs(t, err, ErrEmptyQuery)
			assert.Nil(t, songs)
		}
		searcher.AssertExpectations(t)
	})

	t.Run("Should wrap catalog failures", func(t provider.T) {
		searcher := searcher_mocks.NewTrackSearcher(t)
		usecase := New(searcher)
		ctx := context.Background()

		searcher.On("Search", ctx, "dancing").Return(nil, errors.New("upstream 500")).Once()

		songs, err := usecase.Search(ctx, "dancing")

		assert.ErrorIs(t, err, ErrSearchFailed)
		assert.Nil(t, songs)
		searcher.AssertExpectations(t)
	})
}

func TestUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(UsecaseSearchUnitSuite))
}
