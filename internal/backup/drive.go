package backup

import (
	"bytes"
	"context"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const folderMimeType = "application/vnd.google-apps.folder"

// DriveConfig configures the Drive-style HTTP adapter. The service account
// credential is a client email plus an RSA private key, exchanged for a
// bearer token via the JWT grant.
type DriveConfig struct {
	BaseURL     string
	UploadURL   string
	TokenURL    string
	ClientEmail string
	PrivateKey  string
	Scope       string
}

// DefaultDriveConfig returns the production endpoints with no credential.
func DefaultDriveConfig() DriveConfig {
	return DriveConfig{
		BaseURL:   "https://www.googleapis.com/drive/v3",
		UploadURL: "https://www.googleapis.com/upload/drive/v3",
		TokenURL:  "https://oauth2.googleapis.com/token",
		Scope:     "https://www.googleapis.com/auth/drive.file",
	}
}

// LoadDriveConfig reads adapter settings from PLANFAIRY_DRIVE_* variables.
// The private key is read from the file named by PLANFAIRY_DRIVE_KEY_FILE.
func LoadDriveConfig() (DriveConfig, error) {
	cfg := DefaultDriveConfig()

	if v := os.Getenv("PLANFAIRY_DRIVE_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("PLANFAIRY_DRIVE_UPLOAD_URL"); v != "" {
		cfg.UploadURL = v
	}
	if v := os.Getenv("PLANFAIRY_DRIVE_TOKEN_URL"); v != "" {
		cfg.TokenURL = v
	}
	if v := os.Getenv("PLANFAIRY_DRIVE_CLIENT_EMAIL"); v != "" {
		cfg.ClientEmail = v
	}
	if path := os.Getenv("PLANFAIRY_DRIVE_KEY_FILE"); path != "" {
		pem, err := os.ReadFile(path)
		if err != nil {
			return DriveConfig{}, fmt.Errorf("reading drive key file: %w", err)
		}
		cfg.PrivateKey = string(pem)
	}

	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	cfg.UploadURL = strings.TrimRight(cfg.UploadURL, "/")
	return cfg, nil
}

// Configured reports whether a credential is present.
func (c DriveConfig) Configured() bool {
	return c.ClientEmail != "" && c.PrivateKey != ""
}

// DriveAdapter implements Adapter against a Drive v3 compatible HTTP API.
type DriveAdapter struct {
	cfg  DriveConfig
	http *http.Client

	mu      sync.Mutex
	token   string
	expires time.Time
}

// NewDriveAdapter creates a DriveAdapter from the given config.
func NewDriveAdapter(cfg DriveConfig) *DriveAdapter {
	return &DriveAdapter{
		cfg:  cfg,
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

func (d *DriveAdapter) Authenticate(ctx context.Context) error {
	if !d.cfg.Configured() {
		return ErrNotAuthenticated
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.token != "" && time.Now().Before(d.expires.Add(-time.Minute)) {
		return nil
	}

	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(d.cfg.PrivateKey))
	if err != nil {
		return fmt.Errorf("parsing service account key: %w", err)
	}

	assertion, err := d.signAssertion(key)
	if err != nil {
		return err
	}

	form := url.Values{}
	form.Set("grant_type", "urn:ietf:params:oauth:grant-type:jwt-bearer")
	form.Set("assertion", assertion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.cfg.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("creating token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := d.http.Do(req)
	if err != nil {
		return fmt.Errorf("requesting access token: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("token grant failed with status %d: %s", resp.StatusCode, body)
	}

	var grant struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &grant); err != nil {
		return fmt.Errorf("decoding token response: %w", err)
	}
	if grant.AccessToken == "" {
		return fmt.Errorf("token grant returned no access token")
	}

	d.token = grant.AccessToken
	d.expires = time.Now().Add(time.Duration(grant.ExpiresIn) * time.Second)
	return nil
}

func (d *DriveAdapter) signAssertion(key *rsa.PrivateKey) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss":   d.cfg.ClientEmail,
		"scope": d.cfg.Scope,
		"aud":   d.cfg.TokenURL,
		"iat":   jwt.NewNumericDate(now),
		"exp":   jwt.NewNumericDate(now.Add(time.Hour)),
	}
	assertion, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	if err != nil {
		return "", fmt.Errorf("signing grant assertion: %w", err)
	}
	return assertion, nil
}

func (d *DriveAdapter) bearer() (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.token == "" {
		return "", ErrNotAuthenticated
	}
	return d.token, nil
}

type driveFile struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ModifiedTime string `json:"modifiedTime"`
}

type driveFileList struct {
	Files []driveFile `json:"files"`
}

func (d *DriveAdapter) EnsureFolder(ctx context.Context, name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", nil
	}

	query := fmt.Sprintf("name = '%s' and mimeType = '%s' and trashed = false",
		escapeQuery(name), folderMimeType)
	list, err := d.listFiles(ctx, query, "")
	if err != nil {
		return "", err
	}
	if len(list.Files) > 0 {
		return list.Files[0].ID, nil
	}

	body, err := json.Marshal(map[string]string{"name": name, "mimeType": folderMimeType})
	if err != nil {
		return "", fmt.Errorf("encoding folder metadata: %w", err)
	}

	var created driveFile
	if err := d.doJSON(ctx, http.MethodPost, d.cfg.BaseURL+"/files", "application/json", bytes.NewReader(body), &created); err != nil {
		return "", fmt.Errorf("creating folder %q: %w", name, err)
	}
	return created.ID, nil
}

func (d *DriveAdapter) Upload(ctx context.Context, name, folderID string, data []byte) (string, error) {
	existing, err := d.FindLatest(ctx, name, folderID)
	if err != nil && !errors.Is(err, ErrNoBackup) {
		return "", err
	}

	meta := map[string]any{"name": name}
	method := http.MethodPost
	uploadURL := d.cfg.UploadURL + "/files?uploadType=multipart"
	if existing != nil {
		method = http.MethodPatch
		uploadURL = d.cfg.UploadURL + "/files/" + existing.ID + "?uploadType=multipart"
	} else if folderID != "" {
		meta["parents"] = []string{folderID}
	}

	body, contentType, err := multipartRelated(meta, data)
	if err != nil {
		return "", err
	}

	var uploaded driveFile
	if err := d.doJSON(ctx, method, uploadURL, contentType, body, &uploaded); err != nil {
		return "", fmt.Errorf("uploading %q: %w", name, err)
	}
	return uploaded.ID, nil
}

func (d *DriveAdapter) FindLatest(ctx context.Context, name, folderID string) (*RemoteFile, error) {
	query := fmt.Sprintf("name = '%s' and trashed = false", escapeQuery(name))
	if folderID != "" {
		query += fmt.Sprintf(" and '%s' in parents", escapeQuery(folderID))
	}

	list, err := d.listFiles(ctx, query, "modifiedTime desc")
	if err != nil {
		return nil, err
	}
	if len(list.Files) == 0 {
		return nil, ErrNoBackup
	}

	f := list.Files[0]
	var modified int64
	if ts, err := time.Parse(time.RFC3339, f.ModifiedTime); err == nil {
		modified = ts.UnixMilli()
	}
	return &RemoteFile{ID: f.ID, Name: f.Name, ModifiedAt: modified}, nil
}

func (d *DriveAdapter) Download(ctx context.Context, fileID string) ([]byte, error) {
	token, err := d.bearer()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.cfg.BaseURL+"/files/"+fileID+"?alt=media", nil)
	if err != nil {
		return nil, fmt.Errorf("creating download request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := d.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("download failed with status %d: %s", resp.StatusCode, body)
	}
	return io.ReadAll(resp.Body)
}

func (d *DriveAdapter) listFiles(ctx context.Context, query, orderBy string) (*driveFileList, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("fields", "files(id,name,modifiedTime)")
	params.Set("pageSize", "10")
	if orderBy != "" {
		params.Set("orderBy", orderBy)
	}

	var list driveFileList
	if err := d.doJSON(ctx, http.MethodGet, d.cfg.BaseURL+"/files?"+params.Encode(), "", nil, &list); err != nil {
		return nil, fmt.Errorf("listing files: %w", err)
	}
	return &list, nil
}

func (d *DriveAdapter) doJSON(ctx context.Context, method, url, contentType string, body io.Reader, out any) error {
	token, err := d.bearer()
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := d.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("drive returned status %d: %s", resp.StatusCode, respBody)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// multipartRelated builds a multipart/related body with a JSON metadata
// part followed by the JSON media part, as the Drive upload API expects.
func multipartRelated(meta map[string]any, data []byte) (io.Reader, string, error) {
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return nil, "", fmt.Errorf("encoding file metadata: %w", err)
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	metaPart, err := w.CreatePart(textproto.MIMEHeader{"Content-Type": {"application/json; charset=UTF-8"}})
	if err != nil {
		return nil, "", fmt.Errorf("creating metadata part: %w", err)
	}
	if _, err := metaPart.Write(metaJSON); err != nil {
		return nil, "", fmt.Errorf("writing metadata part: %w", err)
	}

	mediaPart, err := w.CreatePart(textproto.MIMEHeader{"Content-Type": {"application/json"}})
	if err != nil {
		return nil, "", fmt.Errorf("creating media part: %w", err)
	}
	if _, err := mediaPart.Write(data); err != nil {
		return nil, "", fmt.Errorf("writing media part: %w", err)
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("finalizing multipart body: %w", err)
	}
	return &buf, "multipart/related; boundary=" + w.Boundary(), nil
}

func escapeQuery(s string) string {
	return strings.ReplaceAll(s, "'", `\'`)
}

var _ Adapter = (*DriveAdapter)(nil)
