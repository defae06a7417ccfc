/*
Copyright 2024 Sanad Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package notification

import (
	"errors"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"

	"github.com/sanadpay/sanad/config"
	"github.com/sanadpay/sanad/internal/request"
)

const maxSlackRetries = 3

// newBackOff is swapped in tests to avoid real sleeps.
var newBackOff = func() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxElapsedTime = 30 * time.Second
	return b
}

type slackText struct {
	Type  string `json:"type"`
	Text  string `json:"text"`
	Emoji bool   `json:"emoji,omitempty"`
}

type slackBlock struct {
	Type   string      `json:"type"`
	Text   *slackText  `json:"text,omitempty"`
	Fields []slackText `json:"fields,omitempty"`
}

type slackMessage struct {
	Blocks []slackBlock `json:"blocks"`
}

func newSlackMessage(systemError error, at time.Time) slackMessage {
	return slackMessage{Blocks: []slackBlock{
		{Type: "header", Text: &slackText{Type: "plain_text", Text: "Error From Sanad 🐞", Emoji: true}},
		{Type: "section", Fields: []slackText{{Type: "mrkdwn", Text: "*Error:*\n" + systemError.Error()}}},
		{Type: "section", Fields: []slackText{{Type: "mrkdwn", Text: "*Time:*\n" + at.Format(time.RFC822)}}},
	}}
}

// SlackNotification posts an error report to the configured Slack webhook.
// Server-side failures are retried with exponential backoff; a 4xx answer is final.
//
// Parameters:
// - systemError: The error to be reported via Slack.
//
// Returns:
// - error: The last delivery error, if the message could not be delivered.
func SlackNotification(systemError error) error {
	conf, err := config.Fetch()
	if err != nil {
		return err
	}
	webhookURL := conf.Notification.Slack.WebhookUrl
	if webhookURL == "" {
		return errors.New("slack webhook url is not configured")
	}

	message := newSlackMessage(systemError, time.Now())

	operation := func() error {
		payload, err := request.ToJsonReq(message)
		if err != nil {
			return backoff.Permanent(err)
		}
		req, err := http.NewRequest(http.MethodPost, webhookURL, payload)
		if err != nil {
			return backoff.Permanent(err)
		}
		_, err = request.Call(req, nil)
		var statusErr *request.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode < http.StatusInternalServerError {
			return backoff.Permanent(err)
		}
		return err
	}

	return backoff.Retry(operation, backoff.WithMaxRetries(newBackOff(), maxSlackRetries))
}

// NotifyError logs systemError and, when a Slack webhook is configured,
// reports it there. It never blocks the caller.
func NotifyError(systemError error) {
	go func(systemError error) {
		logrus.Error(systemError)

		conf, err := config.Fetch()
		if err != nil {
			logrus.Warn(err)
			return
		}

		if conf.Notification.Slack.WebhookUrl != "" {
			if err := SlackNotification(systemError); err != nil {
				logrus.WithError(err).Warn("failed to deliver slack notification")
			}
		}
	}(systemError)
}
