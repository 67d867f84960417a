// Package imagehost is a thin client for the hosted image service.
// Uploads return a public https URL plus a public id; the id is all
// that is needed to delete the asset later.
package imagehost

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"
)

// Upload is the host's record of a stored image.
type Upload struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
}

// Client calls the image host HTTP API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// New returns a Client for the given API base URL. Uploads go to
// <base>/upload, deletions to <base>/destroy.
func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Upload streams the file to the host as a multipart form and returns
// the stored asset's URL and public id.
func (c *Client) Upload(ctx context.Context, filename string, file io.Reader) (Upload, error) {
	if c.baseURL == "" {
		return Upload{}, errors.New("imagehost: no endpoint configured")
	}
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		part, err := mw.CreateFormFile("file", filename)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, file); err != nil {
			pw.CloseWithError(err)
			return
		}
		if c.apiKey != "" {
			if err := mw.WriteField("api_key", c.apiKey); err != nil {
				pw.CloseWithError(err)
				return
			}
		}
		pw.CloseWithError(mw.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", pr)
	if err != nil {
		return Upload{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return Upload{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Upload{}, fmt.Errorf("imagehost: upload returned %s", resp.Status)
	}
	var up Upload
	if err := json.NewDecoder(resp.Body).Decode(&up); err != nil {
		return Upload{}, err
	}
	if up.SecureURL == "" || up.PublicID == "" {
		return Upload{}, errors.New("imagehost: incomplete upload response")
	}
	return up, nil
}

// Destroy deletes a previously uploaded asset by its public id.
func (c *Client) Destroy(ctx context.Context, publicID string) error {
	if c.baseURL == "" {
		return errors.New("imagehost: no endpoint configured")
	}
	form := url.Values{}
	form.Set("public_id", publicID)
	if c.apiKey != "" {
		form.Set("api_key", c.apiKey)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/destroy", nil)
	if err != nil {
		return err
	}
	req.URL.RawQuery = form.Encode()

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("imagehost: destroy returned %s", resp.Status)
	}
	return nil
}
