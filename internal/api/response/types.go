package response

import (
	"time"

	"github.com/mcoot/stonegame/internal/model"
)

// Room represents a room in API responses
type Room struct {
	ID              string `json:"id"`
	Title           string `json:"title,omitempty"`
	Host            string `json:"host"`
	Challenger      string `json:"challenger,omitempty"`
	ChallengerReady bool   `json:"challenger_ready"`
	Started         bool   `json:"started"`
	State           string `json:"state"`
}

// RoomFromModel converts a model.RoomSummary to a response Room
func RoomFromModel(r model.RoomSummary) Room {
	return Room{
		ID:              string(r.ID),
		Title:           r.Title,
		Host:            r.HostName,
		Challenger:      r.ChallengerName,
		ChallengerReady: r.ChallengerReady,
		Started:         r.Started,
		State:           string(r.State),
	}
}

// RoomDetail is the response for GET /rooms/{id}
type RoomDetail struct {
	Room
	CreatedAt time.Time    `json:"created_at"`
	Match     *MatchDetail `json:"match,omitempty"`
}

// MatchDetail is the live state of a started room. The host plays B and the challenger plays A.
type MatchDetail struct {
	Turn           string    `json:"turn"`
	MovesPlayed    int       `json:"moves_played"`
	CapturedByHost int       `json:"captured_by_host"`
	CapturedByChal int       `json:"captured_by_challenger"`
	HostMovesLeft  int       `json:"host_moves_left"`
	ChalMovesLeft  int       `json:"challenger_moves_left"`
	HostPasses     int       `json:"host_passes"`
	ChalPasses     int       `json:"challenger_passes"`
	StartedAt      time.Time `json:"started_at"`
}

// RoomDetailFromModel converts a full room copy
func RoomDetailFromModel(r model.Room) RoomDetail {
	detail := RoomDetail{Room: RoomFromModel(r.Summary()), CreatedAt: r.CreatedAt}
	if m := r.Match; m != nil {
		turn := "challenger"
		if m.CurrentTurn == model.ColorB {
			turn = "host"
		}
		detail.Match = &MatchDetail{
			Turn:           turn,
			MovesPlayed:    m.MovesPlayed,
			CapturedByHost: m.Captured[model.ColorB],
			CapturedByChal: m.Captured[model.ColorA],
			HostMovesLeft:  m.MoveBudget[model.ColorB],
			ChalMovesLeft:  m.MoveBudget[model.ColorA],
			HostPasses:     m.Passes[model.ColorB],
			ChalPasses:     m.Passes[model.ColorA],
			StartedAt:      m.StartedAt,
		}
	}
	return detail
}

// RoomList is the response for GET /rooms
type RoomList struct {
	Rooms []Room `json:"rooms"`
}

// RoomListFromModel converts room summaries
func RoomListFromModel(rooms []model.RoomSummary) RoomList {
	list := RoomList{Rooms: make([]Room, 0, len(rooms))}
	for _, r := range rooms {
		list.Rooms = append(list.Rooms, RoomFromModel(r))
	}
	return list
}

// PlayerList is the response for GET /players
type PlayerList struct {
	Players []string `json:"players"`
	Count   int      `json:"count"`
}

// Result represents a finished match in API responses
type Result struct {
	RoomID         string    `json:"room_id"`
	Host           string    `json:"host"`
	Challenger     string    `json:"challenger"`
	Winner         string    `json:"winner,omitempty"`
	Loser          string    `json:"loser,omitempty"`
	Draw           bool      `json:"draw"`
	Reason         string    `json:"reason"`
	CapturedByHost int       `json:"captured_by_host"`
	CapturedByChal int       `json:"captured_by_challenger"`
	HostStones     int       `json:"host_stones"`
	ChalStones     int       `json:"challenger_stones"`
	MovesPlayed    int       `json:"moves_played"`
	StartedAt      time.Time `json:"started_at"`
	EndedAt        time.Time `json:"ended_at"`
}

// ResultFromModel converts a model.MatchResult. The host plays B and the challenger plays A.
func ResultFromModel(r *model.MatchResult) Result {
	return Result{
		RoomID:         string(r.RoomID),
		Host:           r.HostName,
		Challenger:     r.ChallengerName,
		Winner:         r.WinnerName,
		Loser:          r.LoserName,
		Draw:           r.Draw,
		Reason:         r.Reason,
		CapturedByHost: r.Captured[model.ColorB],
		CapturedByChal: r.Captured[model.ColorA],
		HostStones:     r.Stones[model.ColorB],
		ChalStones:     r.Stones[model.ColorA],
		MovesPlayed:    r.MovesPlayed,
		StartedAt:      r.StartedAt,
		EndedAt:        r.EndedAt,
	}
}

// ResultList is the response for GET /results
type ResultList struct {
	Results []Result `json:"results"`
}

// ResultListFromModel converts archived results
func ResultListFromModel(results []*model.MatchResult) ResultList {
	list := ResultList{Results: make([]Result, 0, len(results))}
	for _, r := range results {
		list.Results = append(list.Results, ResultFromModel(r))
	}
	return list
}

// Health is the response for GET /health
type Health struct {
	Status string `json:"status"`
}
