package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	calls []string
	err   error
}

func (f *fakeMailer) SendListingCreatedEmail(to, kind string, id int64, name, url string) error {
	f.calls = append(f.calls, to+"|"+kind+"|"+name+"|"+url)
	return f.err
}

func newTestService() *JobService {
	logger := zerolog.Nop()
	return &JobService{logger: &logger}
}

func TestNewListingCreatedTask(t *testing.T) {
	task, err := NewListingCreatedTask(ListingCreatedPayload{Kind: KindVenue, ID: 3, Name: "Park Square Live Music & Coffee"})
	require.NoError(t, err)
	assert.Equal(t, TaskListingCreated, task.Type())

	var p ListingCreatedPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &p))
	assert.Equal(t, int64(3), p.ID)
	assert.Equal(t, "/venues/3", p.URL())
}

func TestPayloadURL(t *testing.T) {
	assert.Equal(t, "/artists/4", ListingCreatedPayload{Kind: KindArtist, ID: 4}.URL())
	assert.Equal(t, "/shows", ListingCreatedPayload{Kind: KindShow, ID: 9}.URL())
}

func TestHandleListingCreated_SendsEmail(t *testing.T) {
	j := newTestService()
	mailer := &fakeMailer{}
	j.SetMailer(mailer, "ops@fyyur.test")

	task, err := NewListingCreatedTask(ListingCreatedPayload{Kind: KindArtist, ID: 5, Name: "Guns N Petals"})
	require.NoError(t, err)

	require.NoError(t, j.handleListingCreatedTask(context.Background(), task))
	assert.Equal(t, []string{"ops@fyyur.test|artist|Guns N Petals|/artists/5"}, mailer.calls)
}

func TestHandleListingCreated_NoNotifier(t *testing.T) {
	j := newTestService()
	task, err := NewListingCreatedTask(ListingCreatedPayload{Kind: KindShow, ID: 1})
	require.NoError(t, err)

	assert.NoError(t, j.handleListingCreatedTask(context.Background(), task))
}

func TestHandleListingCreated_MailerErrorRetries(t *testing.T) {
	j := newTestService()
	j.SetMailer(&fakeMailer{err: errors.New("resend down")}, "ops@fyyur.test")

	task, err := NewListingCreatedTask(ListingCreatedPayload{Kind: KindVenue, ID: 1, Name: "x"})
	require.NoError(t, err)

	err = j.handleListingCreatedTask(context.Background(), task)
	require.Error(t, err)
	assert.False(t, errors.Is(err, asynq.SkipRetry))
}

func TestHandleListingCreated_BadPayloadSkipsRetry(t *testing.T) {
	j := newTestService()
	task := asynq.NewTask(TaskListingCreated, []byte("{not json"))

	err := j.handleListingCreatedTask(context.Background(), task)
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}
