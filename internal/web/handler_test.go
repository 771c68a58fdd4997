package web

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/catchboard/internal/auth"
	"github.com/mmynk/catchboard/internal/models"
	"github.com/mmynk/catchboard/internal/storage/blob"
	"github.com/mmynk/catchboard/internal/storage/sqlite"
	"github.com/mmynk/catchboard/internal/tournament"
)

const testCookie = "catchboard_test"

var testNow = time.Date(2024, 6, 1, 9, 7, 0, 0, time.UTC)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestEngine(t *testing.T, participants ...string) (*gin.Engine, *sqlite.SQLiteStore) {
	t.Helper()

	dir := t.TempDir()
	store, err := sqlite.New(filepath.Join(dir, "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	objects, err := blob.New(filepath.Join(dir, "objects"), "/objects")
	require.NoError(t, err)

	require.NoError(t, tournament.SeedRoster(context.Background(), store, participants))

	backend := &tournament.Backend{
		Store:         store,
		Objects:       objects,
		Authenticator: auth.NewPasswordAuthenticator(store).WithCost(bcrypt.MinCost),
		JWT:           auth.NewJWTManager("test-secret", time.Hour),
		Clock:         func() time.Time { return testNow },
		Location:      time.UTC,
	}

	h, err := NewHandler(backend, Options{
		Title:      "Test Derby",
		Species:    []string{"Walleye", "Northern Pike"},
		CookieName: testCookie,
		Objects:    objects.Handler(),
	})
	require.NoError(t, err)

	return h.Engine(), store
}

func do(engine *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == testCookie {
			return c
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

// registerBrowser registers a participant through the login form and returns
// the session cookie.
func registerBrowser(t *testing.T, engine *gin.Engine, name, email string) *http.Cookie {
	t.Helper()
	w := do(engine, postForm("/register", url.Values{
		"name":     {name},
		"email":    {email},
		"password": {"password123"},
	}))
	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())
	return sessionCookie(t, w)
}

type fishUpload struct {
	name, length, species string
	filename, contentType string
	data                  []byte
}

func fishRequest(t *testing.T, f fishUpload) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("name", f.name))
	require.NoError(t, mw.WriteField("length", f.length))
	require.NoError(t, mw.WriteField("species", f.species))
	if f.filename != "" {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="fishImage"; filename="`+f.filename+`"`)
		header.Set("Content-Type", f.contentType)
		part, err := mw.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/fish", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func validUpload(name string) fishUpload {
	return fishUpload{
		name:        name,
		length:      "12.5",
		species:     "Walleye",
		filename:    "walleye.png",
		contentType: "image/png",
		data:        []byte("\x89PNG\r\n\x1a\nfake"),
	}
}

func TestShowIndex_SignedOut(t *testing.T) {
	engine, _ := newTestEngine(t, "Alice", "Bob")

	w := do(engine, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, `<div id="loginScreen" style="display: block">`)
	assert.Contains(t, body, `<div id="tournamentScreen" style="display: none">`)
	assert.Contains(t, body, `<option value="Alice">Alice</option>`)
	assert.Contains(t, body, `<option value="Bob">Bob</option>`)
	assert.NotContains(t, body, "fishTableBody")
}

func TestShowIndex_InvalidCookie(t *testing.T) {
	engine, _ := newTestEngine(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: "garbage"})
	w := do(engine, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `<div id="loginScreen" style="display: block">`)
}

func TestRegister(t *testing.T) {
	engine, store := newTestEngine(t)

	cookie := registerBrowser(t, engine, "Alice", "alice@example.com")
	assert.True(t, cookie.HttpOnly)
	assert.NotEmpty(t, cookie.Value)

	participants, err := store.ListParticipants(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Participant{{Name: "Alice"}}, participants)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	w := do(engine, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `<div id="tournamentScreen" style="display: block">`)
	assert.Contains(t, w.Body.String(), `<div id="loginScreen" style="display: none">`)
}

func TestRegister_ErrorShowsMessage(t *testing.T) {
	engine, _ := newTestEngine(t)
	registerBrowser(t, engine, "Alice", "alice@example.com")

	w := do(engine, postForm("/register", url.Values{
		"name":     {"Alice"},
		"email":    {"alice@example.com"},
		"password": {"password123"},
	}))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), auth.ErrEmailExists.Error())
	assert.Contains(t, w.Body.String(), `value="alice@example.com"`, "email field keeps its value")
	assert.Empty(t, w.Result().Cookies())
}

func TestSignInAndSignOut(t *testing.T) {
	engine, _ := newTestEngine(t)
	registerBrowser(t, engine, "Alice", "alice@example.com")

	w := do(engine, postForm("/sign-in", url.Values{
		"email":    {"alice@example.com"},
		"password": {"wrong-password"},
	}))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), auth.ErrInvalidCredentials.Error())

	w = do(engine, postForm("/sign-in", url.Values{
		"email":    {"alice@example.com"},
		"password": {"password123"},
	}))
	require.Equal(t, http.StatusSeeOther, w.Code)
	cookie := sessionCookie(t, w)

	req := httptest.NewRequest(http.MethodPost, "/sign-out", nil)
	req.AddCookie(cookie)
	w = do(engine, req)
	require.Equal(t, http.StatusSeeOther, w.Code)

	cleared := sessionCookie(t, w)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)
}

func TestSubmitFish(t *testing.T) {
	engine, store := newTestEngine(t)
	cookie := registerBrowser(t, engine, "Alice", "alice@example.com")

	req := fishRequest(t, validUpload("Alice"))
	req.AddCookie(cookie)
	w := do(engine, req)
	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())

	fish, err := store.ListFish(context.Background())
	require.NoError(t, err)
	require.Len(t, fish, 1)
	key := models.FishKey("Alice", testNow)
	assert.Equal(t, key, fish[0].ID)
	assert.Equal(t, "/objects/fish/"+key, fish[0].ImageURL)

	req = httptest.NewRequest(http.MethodGet, "/?image="+key, nil)
	req.AddCookie(cookie)
	w = do(engine, req)
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "<td>Walleye</td>")
	assert.Contains(t, body, "<td>12.5</td>")
	assert.Contains(t, body, "<td>9:07 AM</td>")
	assert.Contains(t, body, `<dialog id="fishTableDialog" open>`)
	assert.Contains(t, body, `src="/objects/fish/`+key+`"`)

	w = do(engine, httptest.NewRequest(http.MethodGet, "/objects/fish/"+key, nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
}

func TestSubmitFish_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*fishUpload)
		message string
	}{
		{
			name:    "missing photo",
			mutate:  func(f *fishUpload) { f.filename = "" },
			message: tournament.MsgAllFieldsRequired,
		},
		{
			name:    "non-participant",
			mutate:  func(f *fishUpload) { f.name = "Mallory" },
			message: tournament.MsgNotParticipant,
		},
		{
			name:    "non-numeric length",
			mutate:  func(f *fishUpload) { f.length = "abc" },
			message: tournament.MsgLengthNotNumber,
		},
		{
			name:    "not an image",
			mutate:  func(f *fishUpload) { f.contentType = "application/pdf" },
			message: tournament.MsgFileMustBeImage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, store := newTestEngine(t)
			cookie := registerBrowser(t, engine, "Alice", "alice@example.com")

			upload := validUpload("Alice")
			tt.mutate(&upload)

			req := fishRequest(t, upload)
			req.AddCookie(cookie)
			w := do(engine, req)

			require.Equal(t, http.StatusUnprocessableEntity, w.Code)
			body := w.Body.String()
			assert.Contains(t, body, `<p id="fishSubmitErrorMessage" class="error">`+tt.message+`</p>`)
			assert.Contains(t, body, `<input id="length" name="length" value="`+upload.length+`">`, "form keeps its values")

			fish, err := store.ListFish(context.Background())
			require.NoError(t, err)
			assert.Empty(t, fish)
		})
	}
}

func TestSubmitFish_SignedOutRedirects(t *testing.T) {
	engine, store := newTestEngine(t, "Alice")

	w := do(engine, fishRequest(t, validUpload("Alice")))
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	fish, err := store.ListFish(context.Background())
	require.NoError(t, err)
	assert.Empty(t, fish)
}
