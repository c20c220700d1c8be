package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Thumbnail qualities tried in order; the first real image wins. YouTube
// serves a tiny placeholder for qualities a video lacks, hence the size gate.
var thumbnailQualities = []string{"maxresdefault", "sddefault", "hqdefault", "mqdefault", "default"}

const minThumbnailBytes = 1024

// FetchThumbnail returns best-effort cover art for a video, or nil when no
// usable thumbnail exists. It never returns an error; cover art is optional.
func FetchThumbnail(ctx context.Context, client *http.Client, videoID string) []byte {
	if videoID == "" {
		return nil
	}
	if client == nil {
		client = &http.Client{Timeout: 12 * time.Second}
	}
	for _, quality := range thumbnailQualities {
		url := fmt.Sprintf("https://i.ytimg.com/vi/%s/%s.jpg", videoID, quality)
		data := fetchImage(ctx, client, url)
		if len(data) > minThumbnailBytes {
			return data
		}
	}
	return nil
}

func fetchImage(ctx context.Context, client *http.Client, url string) []byte {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil
	}
	return data
}
