package ytmusic

import (
	"regexp"
	"strconv"
	"strings"

	"tunepull/internal/matching"
)

type searchRequest struct {
	Context innerTubeContext `json:"context"`
	Query   string           `json:"query"`
	Params  string           `json:"params,omitempty"`
}

type innerTubeContext struct {
	Client innerTubeClient `json:"client"`
}

type innerTubeClient struct {
	ClientName    string `json:"clientName"`
	ClientVersion string `json:"clientVersion"`
	HL            string `json:"hl"`
}

// The response structs model only the slice of the InnerTube search payload
// needed to pull video ids, titles, artists, and durations out of the
// musicShelfRenderer rows.
type searchResponse struct {
	Contents struct {
		TabbedSearchResultsRenderer struct {
			Tabs []struct {
				TabRenderer struct {
					Content struct {
						SectionListRenderer struct {
							Contents []sectionContent `json:"contents"`
						} `json:"sectionListRenderer"`
					} `json:"content"`
				} `json:"tabRenderer"`
			} `json:"tabs"`
		} `json:"tabbedSearchResultsRenderer"`
	} `json:"contents"`
}

type sectionContent struct {
	MusicShelfRenderer struct {
		Contents []shelfItem `json:"contents"`
	} `json:"musicShelfRenderer"`
}

type shelfItem struct {
	MusicResponsiveListItemRenderer struct {
		PlaylistItemData struct {
			VideoID string `json:"videoId"`
		} `json:"playlistItemData"`
		FlexColumns []struct {
			MusicResponsiveListItemFlexColumnRenderer struct {
				Text struct {
					Runs []textRun `json:"runs"`
				} `json:"text"`
			} `json:"musicResponsiveListItemFlexColumnRenderer"`
		} `json:"flexColumns"`
	} `json:"musicResponsiveListItemRenderer"`
}

type textRun struct {
	Text               string `json:"text"`
	NavigationEndpoint struct {
		WatchEndpoint struct {
			VideoID string `json:"videoId"`
		} `json:"watchEndpoint"`
		BrowseEndpoint struct {
			BrowseID string `json:"browseId"`
		} `json:"browseEndpoint"`
	} `json:"navigationEndpoint"`
}

var clockPattern = regexp.MustCompile(`^(?:(\d+):)?(\d{1,2}):(\d{2})$`)

// parseClockDuration converts "3:45" or "1:02:30" to whole seconds.
// Returns 0 for anything that is not a clock string.
func parseClockDuration(text string) int {
	match := clockPattern.FindStringSubmatch(strings.TrimSpace(text))
	if match == nil {
		return 0
	}
	hours := 0
	if match[1] != "" {
		hours, _ = strconv.Atoi(match[1])
	}
	minutes, _ := strconv.Atoi(match[2])
	seconds, _ := strconv.Atoi(match[3])
	return hours*3600 + minutes*60 + seconds
}

func extractCandidates(parsed searchResponse, limit int) []matching.Candidate {
	var out []matching.Candidate
	for _, tab := range parsed.Contents.TabbedSearchResultsRenderer.Tabs {
		for _, section := range tab.TabRenderer.Content.SectionListRenderer.Contents {
			for _, item := range section.MusicShelfRenderer.Contents {
				candidate, ok := candidateFromItem(item)
				if !ok {
					continue
				}
				out = append(out, candidate)
				if limit > 0 && len(out) >= limit {
					return out
				}
			}
		}
	}
	return out
}

func candidateFromItem(item shelfItem) (matching.Candidate, bool) {
	renderer := item.MusicResponsiveListItemRenderer
	candidate := matching.Candidate{VideoID: renderer.PlaylistItemData.VideoID}

	var artists []string
	for columnIndex, column := range renderer.FlexColumns {
		runs := column.MusicResponsiveListItemFlexColumnRenderer.Text.Runs
		if columnIndex == 0 {
			if len(runs) > 0 {
				candidate.Title = runs[0].Text
				if candidate.VideoID == "" {
					candidate.VideoID = runs[0].NavigationEndpoint.WatchEndpoint.VideoID
				}
			}
			continue
		}
		for _, run := range runs {
			if run.NavigationEndpoint.BrowseEndpoint.BrowseID != "" {
				artists = append(artists, run.Text)
				continue
			}
			if seconds := parseClockDuration(run.Text); seconds > 0 {
				candidate.DurationSeconds = seconds
			}
		}
	}
	candidate.Artists = strings.Join(artists, ", ")

	if candidate.VideoID == "" {
		return matching.Candidate{}, false
	}
	return candidate, true
}
