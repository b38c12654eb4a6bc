package twilio

import (
	"context"
	"errors"
	"garage/infras/otel/mocks"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

type fakeAPI struct {
	err    error
	params []*openapi.CreateMessageParams
}

func (f *fakeAPI) CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error) {
	f.params = append(f.params, params)
	if f.err != nil {
		return nil, f.err
	}

	sid := "SM123"

	return &openapi.ApiV2010Message{Sid: &sid}, nil
}

func TestSMS_Send(t *testing.T) {
	api := &fakeAPI{}
	sms := NewWithClient(api, "+3612345678", mocks.NewOtel())

	err := sms.Send(context.Background(), "+36301234567", "Holnap 10:00-kor várjuk.")
	require.NoError(t, err)

	require.Len(t, api.params, 1)
	assert.Equal(t, "+36301234567", *api.params[0].To)
	assert.Equal(t, "+3612345678", *api.params[0].From)
	assert.Equal(t, "Holnap 10:00-kor várjuk.", *api.params[0].Body)
}

func TestSMS_SendErrors(t *testing.T) {
	tests := []struct {
		name    string
		api     messageCreator
		to      string
		wantErr error
	}{
		{name: "not configured", api: nil, to: "+36301234567", wantErr: ErrNotConfigured},
		{name: "empty number", api: &fakeAPI{}, to: "", wantErr: ErrEmptyNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sms := NewWithClient(tt.api, "+3612345678", mocks.NewOtel())

			assert.ErrorIs(t, sms.Send(context.Background(), tt.to, "x"), tt.wantErr)
		})
	}

	t.Run("api error", func(t *testing.T) {
		sms := NewWithClient(&fakeAPI{err: errors.New("unreachable")}, "+3612345678", mocks.NewOtel())

		assert.Error(t, sms.Send(context.Background(), "+36301234567", "x"))
	})
}
