package usecase_search

import (
	"context"
	"errors"
	"strings"

	"github.com/squabble-app/squabble/server/internal/model"
)

var (
	ErrEmptyQuery   = errors.New("empty query")
	ErrSearchFailed = errors.New("song search failed")
)

//go:generate mockery --name=TrackSearcher --output=./mocks/search/searcher --filename=searcher.go
type TrackSearcher interface {
	Search(ctx context.Context, query string) ([]model.Song, error)
}

type Usecase struct {
	searcher TrackSearcher
}

func New(searcher TrackSearcher) *Usecase {
	return &Usecase{searcher: searcher}
}

func (u *Usecase) Search(ctx context.Context, query string) ([]model.Song, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	songs, err := u.searcher.Search(ctx, query)
	if err != nil {
		return nil, errors.Join(ErrSearchFailed, err)
	}
	return songs, nil
}
