package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"inkwell/app/forms"

	"github.com/rs/zerolog/log"
)

// submission is the wire shape expected by POST /api/createComment.
type submission struct {
	ID      string `json:"_id"`
	Comment string `json:"comment"`
	Email   string `json:"email"`
	Name    string `json:"name"`
}

// CommentClient submits comment forms to the submission endpoint. It owns
// the network half of the form state machine: validation failures never
// reach the wire, transport failures fall back to an editable form, and only
// a 2xx response lands in the submitted state.
type CommentClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewCommentClient creates a client against the given server base URL.
func NewCommentClient(baseURL string, httpClient *http.Client) *CommentClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &CommentClient{baseURL: baseURL, httpClient: httpClient}
}

// Submit drives the form through one submission attempt. A validation
// failure leaves the form idle with inline errors and no network call. A
// transport failure returns the form to idle and logs; the user sees only a
// re-enabled button. Once the response arrives the status decides: 2xx moves
// to submitted, anything else re-enables the form.
func (c *CommentClient) Submit(form *forms.CommentForm) error {
	if !form.Validate() {
		form.State = forms.StateIdle
		return nil
	}

	form.State = forms.StateSubmitting

	body, err := json.Marshal(submission{
		ID:      form.PostID,
		Comment: form.Comment,
		Email:   form.Email,
		Name:    form.Name,
	})
	if err != nil {
		form.State = forms.StateIdle
		return err
	}

	resp, err := c.httpClient.Post(c.baseURL+"/api/createComment", "application/json", bytes.NewReader(body))
	if err != nil {
		log.Error().Err(err).Str("post_id", form.PostID).Msg("comment submission failed")
		form.State = forms.StateIdle
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Error().Int("status", resp.StatusCode).Str("post_id", form.PostID).
			Msg("comment submission rejected")
		form.State = forms.StateIdle
		return fmt.Errorf("comment submission rejected with status %d", resp.StatusCode)
	}

	form.State = forms.StateSubmitted
	return nil
}
