package job

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// TaskListingCreated is emitted after a venue, artist or show is created.
	TaskListingCreated = "listing:created"
)

// Listing kinds carried in ListingCreatedPayload.Kind.
const (
	KindVenue  = "venue"
	KindArtist = "artist"
	KindShow   = "show"
)

type ListingCreatedPayload struct {
	Kind string `json:"kind"`
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// URL is the site path of the listing's detail page.
func (p ListingCreatedPayload) URL() string {
	switch p.Kind {
	case KindVenue:
		return "/venues/" + strconv.FormatInt(p.ID, 10)
	case KindArtist:
		return "/artists/" + strconv.FormatInt(p.ID, 10)
	default:
		return "/shows"
	}
}

func NewListingCreatedTask(p ListingCreatedPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskListingCreated,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("low"),
		asynq.Timeout(30*time.Second),
	), nil
}
