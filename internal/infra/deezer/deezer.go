package infra_deezer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/squabble-app/squabble/server/internal/model"
)

// Client queries the Deezer public search API. No authentication, no
// pagination: first page only, which is all the selection screen shows.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type trackDTO struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Link    string `json:"link"`
	Preview string `json:"preview"`
	Artist  struct {
		Name string `json:"name"`
	} `json:"artist"`
	Album struct {
		Cover string `json:"cover"`
	} `json:"album"`
}

type searchResponse struct {
	Data []trackDTO `json:"data"`
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Search(ctx context.Context, query string) ([]model.Song, error) {
	params := url.Values{}
	params.Add("q", query)

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("deezer: search request failed with status %d", resp.StatusCode)
	}

	var searchResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, err
	}

	songs := make([]model.Song, 0, len(searchResp.Data))
	for _, track := range searchResp.Data {
		songs = append(songs, model.Song{
			Title:   track.Title,
			Artist:  track.Artist.Name,
			URI:     track.Link,
			ID:      strconv.FormatInt(track.ID, 10),
			Image:   track.Album.Cover,
			Preview: track.Preview,
		})
	}

	return songs, nil
}
