package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSES struct {
	input *ses.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestSESMailer_Send(t *testing.T) {
	api := &fakeSES{}
	m := &SESMailer{client: api}

	err := m.Send(context.Background(), Message{
		From: "alerts@example.com", To: "ada@example.com",
		Subject: "Ada, Health Alert Notification", Body: "Hello Ada,",
	})
	require.NoError(t, err)
	require.NotNil(t, api.input)

	assert.Equal(t, "alerts@example.com", aws.ToString(api.input.Source))
	assert.Equal(t, []string{"ada@example.com"}, api.input.Destination.ToAddresses)
	assert.Equal(t, "Ada, Health Alert Notification", aws.ToString(api.input.Message.Subject.Data))
	assert.Equal(t, "Hello Ada,", aws.ToString(api.input.Message.Body.Text.Data))
}

func TestSESMailer_SendError(t *testing.T) {
	m := &SESMailer{client: &fakeSES{err: errors.New("MessageRejected")}}

	err := m.Send(context.Background(), Message{From: "a@example.com", To: "b@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ses send failed")
}
