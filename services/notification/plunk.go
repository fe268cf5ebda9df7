package notification

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fintrackpro/FinTrack-Backend/utils"
)

// Plunk delivers transactional email. Callers treat it as fire-and-forget;
// a failed send is logged, never propagated into a ledger operation.
type Plunk struct {
	HttpClient *http.Client
	Config     *utils.Config
}

func NewPlunk(config *utils.Config) *Plunk {
	return &Plunk{
		HttpClient: &http.Client{Timeout: 10 * time.Second},
		Config:     config,
	}
}

type EmailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type TemplatedEmailRequest struct {
	To         string         `json:"to"`
	TemplateID string         `json:"template"`
	Data       map[string]any `json:"data"`
}

func (s *Plunk) SendEmail(to, subject, body string) error {
	_, err := s.makeRequest(http.MethodPost, "/v1/send", EmailRequest{
		To:      to,
		Subject: subject,
		Body:    body,
	})
	return err
}

func (s *Plunk) SendWelcomeEmail(to, firstName string) error {
	if s.Config.WelcomeTemplateID == "" {
		return s.SendEmail(to, "Welcome to FinTrack", fmt.Sprintf("Hi %s, your account is ready.", firstName))
	}
	_, err := s.makeRequest(http.MethodPost, "/v1/send", TemplatedEmailRequest{
		To:         to,
		TemplateID: s.Config.WelcomeTemplateID,
		Data:       map[string]any{"first_name": firstName},
	})
	return err
}

func (s *Plunk) makeRequest(method, endpoint string, body any) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, s.Config.PlunkBaseUrl+endpoint, reqBody)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+s.Config.PlunkApiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.HttpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("plunk returned %d: %s", resp.StatusCode, respBody)
	}

	return respBody, nil
}
