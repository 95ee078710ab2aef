package campaign

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"placard/internal/assets"
	"placard/internal/config"
	"placard/internal/manifest"
	"placard/internal/screens"
	"placard/internal/services"
)

// HTTPDoer abstracts http.Client.Do for testing.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// UploadRequest describes one per-slot creative upload.
type UploadRequest struct {
	ScreenID   string
	SlotNumber int
	SourcePath string
	Filename   string
	SizeBytes  int64
}

// Snapshot is the result of one asset-status fetch.
type Snapshot struct {
	Assets    map[manifest.SlotKey]assets.Asset
	FetchedAt time.Time
}

// Client talks to the campaign backend for one campaign.
type Client struct {
	baseURL    string
	apiToken   string
	campaignID string
	userID     string
	httpClient HTTPDoer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client HTTPDoer) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates a campaign backend client from configuration.
func New(cfg *config.Config, opts ...Option) (*Client, error) {
	baseURL := strings.TrimSpace(cfg.Campaign.BackendURL)
	if baseURL == "" {
		return nil, services.Wrap(services.ErrConfiguration, "campaign", "new", "backend url required", nil)
	}
	campaignID := strings.TrimSpace(cfg.Campaign.ID)
	if campaignID == "" {
		return nil, services.Wrap(services.ErrConfiguration, "campaign", "new", "campaign id required", nil)
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiToken:   strings.TrimSpace(cfg.Campaign.APIToken),
		campaignID: campaignID,
		userID:     strings.TrimSpace(cfg.Campaign.UserID),
		httpClient: &http.Client{Timeout: time.Duration(cfg.Campaign.RequestTimeout) * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Screens fetches the campaign's screen/slot manifest. The backend returns
// one row per slot; rows are folded into screen records with slot counts.
func (c *Client) Screens(ctx context.Context) ([]screens.Screen, error) {
	var rows []screenRow
	path := fmt.Sprintf("/api/v1/campaigns/%s/screens", url.PathEscape(c.campaignID))
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &rows); err != nil {
		return nil, fmt.Errorf("fetch screens: %w", err)
	}
	return aggregateScreens(rows), nil
}

// Assets fetches the campaign's uploaded-asset snapshot.
func (c *Client) Assets(ctx context.Context) (Snapshot, error) {
	var rows []assetRow
	path := fmt.Sprintf("/api/v1/campaigns/%s/assets", url.PathEscape(c.campaignID))
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &rows); err != nil {
		return Snapshot{}, fmt.Errorf("fetch assets: %w", err)
	}

	snapshot := Snapshot{
		Assets:    make(map[manifest.SlotKey]assets.Asset, len(rows)),
		FetchedAt: time.Now().UTC(),
	}
	for _, row := range rows {
		key, asset := row.toAsset(snapshot.FetchedAt)
		snapshot.Assets[key] = asset
	}
	return snapshot, nil
}

// FileGroups fetches the optional bundle file-group hints.
func (c *Client) FileGroups(ctx context.Context) ([]manifest.FileGroup, error) {
	var rows []fileGroupRow
	path := fmt.Sprintf("/api/v1/campaigns/%s/file-groups", url.PathEscape(c.campaignID))
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &rows); err != nil {
		return nil, fmt.Errorf("fetch file groups: %w", err)
	}
	groups := make([]manifest.FileGroup, 0, len(rows))
	for _, row := range rows {
		groups = append(groups, row.toFileGroup())
	}
	return groups, nil
}

// Upload writes one creative to one slot as a multipart request and returns
// the backend's resulting asset record.
func (c *Client) Upload(ctx context.Context, req UploadRequest) (manifest.SlotKey, assets.Asset, error) {
	file, err := os.Open(req.SourcePath)
	if err != nil {
		return manifest.SlotKey{}, assets.Asset{}, fmt.Errorf("open source file: %w", err)
	}
	defer file.Close()

	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)
	go func() {
		err := writeUploadForm(writer, req, file)
		if closeErr := writer.Close(); err == nil {
			err = closeErr
		}
		pw.CloseWithError(err)
	}()

	path := fmt.Sprintf("/api/v1/campaigns/%s/assets", url.PathEscape(c.campaignID))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, pr)
	if err != nil {
		return manifest.SlotKey{}, assets.Asset{}, fmt.Errorf("build upload request: %w", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())
	httpReq.Header.Set("Accept", "application/json")
	c.applyAuth(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return manifest.SlotKey{}, assets.Asset{}, fmt.Errorf("upload request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return manifest.SlotKey{}, assets.Asset{}, backendError(resp)
	}

	var row assetRow
	if err := json.NewDecoder(resp.Body).Decode(&row); err != nil {
		return manifest.SlotKey{}, assets.Asset{}, fmt.Errorf("decode upload response: %w", err)
	}
	if row.ScreenID == "" {
		row.ScreenID = req.ScreenID
	}
	if row.SlotNumber == 0 {
		row.SlotNumber = req.SlotNumber
	}
	key, asset := row.toAsset(time.Now().UTC())
	return key, asset, nil
}

func writeUploadForm(writer *multipart.Writer, req UploadRequest, file *os.File) error {
	filename := req.Filename
	if filename == "" {
		filename = filepath.Base(req.SourcePath)
	}

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return fmt.Errorf("create file part: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("copy file data: %w", err)
	}

	fields := map[string]string{
		"file_name":   filename,
		"file_size":   strconv.FormatInt(req.SizeBytes, 10),
		"file_type":   contentTypeFor(filename),
		"slot_number": strconv.Itoa(req.SlotNumber),
		"screen_id":   req.ScreenID,
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return fmt.Errorf("write field %s: %w", name, err)
		}
	}
	return nil
}

func contentTypeFor(filename string) string {
	if typ := mime.TypeByExtension(filepath.Ext(filename)); typ != "" {
		return typ
	}
	return "application/octet-stream"
}

// Delete removes the asset occupying a slot. The backend keys deletes by
// screen and slot number, not by asset id.
func (c *Client) Delete(ctx context.Context, key manifest.SlotKey) error {
	query := url.Values{}
	query.Set("screen_id", key.ScreenID)
	query.Set("slot_number", strconv.Itoa(key.Slot))
	path := fmt.Sprintf("/api/v1/campaigns/%s/assets?%s", url.PathEscape(c.campaignID), query.Encode())
	if err := c.doJSON(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("delete asset %s: %w", key, err)
	}
	return nil
}

// Suggest triggers the creative-suggestion service for one screen and passes
// the structured brief through untouched.
func (c *Client) Suggest(ctx context.Context, screenID string) (json.RawMessage, error) {
	body := map[string]string{
		"user_id":     c.userID,
		"campaign_id": c.campaignID,
		"screen_id":   screenID,
	}
	var brief json.RawMessage
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/suggestions", body, &brief); err != nil {
		return nil, fmt.Errorf("request suggestion: %w", err)
	}
	return brief, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = strings.NewReader(string(data))
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.applyAuth(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return backendError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) applyAuth(req *http.Request) {
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}
}

// backendError surfaces the backend-provided message when one exists,
// otherwise a generic status-based message. The error carries the services
// marker matching the failure class so callers can classify it.
func backendError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))

	marker := services.ErrTransient
	switch {
	case resp.StatusCode == http.StatusNotFound:
		marker = services.ErrNotFound
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		marker = services.ErrValidation
	}

	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &payload); err == nil {
		if message := strings.TrimSpace(payload.Error); message != "" {
			return fmt.Errorf("%w: backend rejected request (%d): %s", marker, resp.StatusCode, message)
		}
		if message := strings.TrimSpace(payload.Message); message != "" {
			return fmt.Errorf("%w: backend rejected request (%d): %s", marker, resp.StatusCode, message)
		}
	}
	if message := strings.TrimSpace(string(data)); message != "" {
		return fmt.Errorf("%w: backend rejected request (%d): %s", marker, resp.StatusCode, message)
	}
	return fmt.Errorf("%w: backend request failed with status %d", marker, resp.StatusCode)
}
