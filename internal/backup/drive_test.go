package backup

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	waitFor = 2 * time.Second
	tick    = 10 * time.Millisecond
)

func testKeyPEM(t *testing.T) (*rsa.PrivateKey, string) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	block := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
	return key, string(block)
}

func TestAuthenticateExchangesSignedAssertion(t *testing.T) {
	key, pemStr := testKeyPEM(t)

	var assertion string
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "urn:ietf:params:oauth:grant-type:jwt-bearer", r.Form.Get("grant_type"))
		assertion = r.Form.Get("assertion")
		json.NewEncoder(w).Encode(map[string]any{"access_token": "tok-1", "expires_in": 3600})
	}))
	defer tokenSrv.Close()

	cfg := DefaultDriveConfig()
	cfg.TokenURL = tokenSrv.URL
	cfg.ClientEmail = "svc@planfairy.example"
	cfg.PrivateKey = pemStr

	adapter := NewDriveAdapter(cfg)
	require.NoError(t, adapter.Authenticate(context.Background()))

	tok, err := jwt.Parse(assertion, func(token *jwt.Token) (any, error) {
		return &key.PublicKey, nil
	})
	require.NoError(t, err)
	claims := tok.Claims.(jwt.MapClaims)
	assert.Equal(t, "svc@planfairy.example", claims["iss"])
	assert.Equal(t, cfg.Scope, claims["scope"])
	assert.Equal(t, tokenSrv.URL, claims["aud"])

	token, err := adapter.bearer()
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)
}

func TestAuthenticateWithoutCredential(t *testing.T) {
	adapter := NewDriveAdapter(DefaultDriveConfig())
	assert.ErrorIs(t, adapter.Authenticate(context.Background()), ErrNotAuthenticated)
}

func driveTestAdapter(t *testing.T, handler http.Handler) *DriveAdapter {
	t.Helper()
	_, pemStr := testKeyPEM(t)

	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"access_token": "tok-1", "expires_in": 3600})
	})
	mux.Handle("/", handler)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	cfg := DefaultDriveConfig()
	cfg.BaseURL = srv.URL + "/drive"
	cfg.UploadURL = srv.URL + "/upload"
	cfg.TokenURL = srv.URL + "/token"
	cfg.ClientEmail = "svc@planfairy.example"
	cfg.PrivateKey = pemStr

	adapter := NewDriveAdapter(cfg)
	require.NoError(t, adapter.Authenticate(context.Background()))
	return adapter
}

func TestFindLatestAndDownload(t *testing.T) {
	adapter := driveTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))

		switch {
		case r.URL.Path == "/drive/files" && r.Method == http.MethodGet:
			q := r.URL.Query()
			assert.Contains(t, q.Get("q"), "name = '"+BackupFilename+"'")
			assert.Equal(t, "modifiedTime desc", q.Get("orderBy"))
			json.NewEncoder(w).Encode(driveFileList{Files: []driveFile{
				{ID: "file-7", Name: BackupFilename, ModifiedTime: "2026-08-30T10:00:00Z"},
			}})
		case r.URL.Path == "/drive/files/file-7":
			assert.Equal(t, "media", r.URL.Query().Get("alt"))
			w.Write([]byte(`{"project":null,"standardsDB":{},"ts":5}`))
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL)
		}
	}))

	ctx := context.Background()
	file, err := adapter.FindLatest(ctx, BackupFilename, "")
	require.NoError(t, err)
	assert.Equal(t, "file-7", file.ID)
	assert.NotZero(t, file.ModifiedAt)

	data, err := adapter.Download(ctx, file.ID)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"ts":5`)
}

func TestFindLatestEmptyListing(t *testing.T) {
	adapter := driveTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(driveFileList{})
	}))

	_, err := adapter.FindLatest(context.Background(), BackupFilename, "")
	assert.ErrorIs(t, err, ErrNoBackup)
}

func TestUploadCreatesThenUpdates(t *testing.T) {
	var uploads []string
	existing := false

	adapter := driveTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/drive/files" && r.Method == http.MethodGet:
			list := driveFileList{}
			if existing {
				list.Files = []driveFile{{ID: "file-1", Name: BackupFilename, ModifiedTime: "2026-08-30T10:00:00Z"}}
			}
			json.NewEncoder(w).Encode(list)
		case strings.HasPrefix(r.URL.Path, "/upload/files"):
			assert.Equal(t, "multipart", r.URL.Query().Get("uploadType"))
			assert.Contains(t, r.Header.Get("Content-Type"), "multipart/related")
			uploads = append(uploads, r.Method+" "+r.URL.Path)
			json.NewEncoder(w).Encode(driveFile{ID: "file-1", Name: BackupFilename})
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL)
		}
	}))
	ctx := context.Background()

	id, err := adapter.Upload(ctx, BackupFilename, "", []byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, "file-1", id)

	existing = true
	_, err = adapter.Upload(ctx, BackupFilename, "", []byte(`{}`))
	require.NoError(t, err)

	require.Len(t, uploads, 2)
	assert.Equal(t, "POST /upload/files", uploads[0])
	assert.Equal(t, "PATCH /upload/files/file-1", uploads[1])
}

func TestEnsureFolderCreatesWhenAbsent(t *testing.T) {
	adapter := driveTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(driveFileList{})
		case http.MethodPost:
			var meta map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&meta))
			assert.Equal(t, "Lesson Plans", meta["name"])
			assert.Equal(t, folderMimeType, meta["mimeType"])
			json.NewEncoder(w).Encode(driveFile{ID: "folder-1"})
		}
	}))

	id, err := adapter.EnsureFolder(context.Background(), "Lesson Plans")
	require.NoError(t, err)
	assert.Equal(t, "folder-1", id)

	root, err := adapter.EnsureFolder(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, root)
}
