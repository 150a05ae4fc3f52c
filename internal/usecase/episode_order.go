package usecase

import (
	"sort"

	"streamvault/internal/data/entity"

	"github.com/google/uuid"
)

// SortEpisodes orders episodes by (season, episode) in place. The sort is
// stable so rows sharing a key keep their fetch order.
func SortEpisodes(episodes []*entity.Episode) {
	sort.SliceStable(episodes, func(i, j int) bool {
		return episodes[i].Before(episodes[j])
	})
}

// GroupBySeason splits an ordered episode list into seasons, keeping the
// order seasons and episodes appear in.
func GroupBySeason(episodes []*entity.Episode) []entity.Season {
	var seasons []entity.Season
	index := make(map[int]int)

	for _, ep := range episodes {
		i, ok := index[ep.SeasonNumber]
		if !ok {
			i = len(seasons)
			index[ep.SeasonNumber] = i
			seasons = append(seasons, entity.Season{Number: ep.SeasonNumber})
		}
		seasons[i].Episodes = append(seasons[i].Episodes, ep)
	}

	return seasons
}

// AdjacentEpisodes returns the neighbours of episodeID in the ordered list.
// prev is nil for the first episode and next is nil for the last; found is
// false when episodeID is not in the list.
func AdjacentEpisodes(episodes []*entity.Episode, episodeID uuid.UUID) (prev, next *entity.Episode, found bool) {
	for i, ep := range episodes {
		if ep.ID != episodeID {
			continue
		}
		if i > 0 {
			prev = episodes[i-1]
		}
		if i+1 < len(episodes) {
			next = episodes[i+1]
		}
		return prev, next, true
	}
	return nil, nil, false
}
