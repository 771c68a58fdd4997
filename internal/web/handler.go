// Package web serves the single-page tournament UI: a login screen and a
// tournament screen, switched by the session gate.
package web

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mmynk/catchboard/internal/auth"
	"github.com/mmynk/catchboard/internal/tournament"
	"github.com/mmynk/catchboard/internal/validation"
)

//go:embed all:templates
var templateFS embed.FS

// MaxImageBytes caps the size of an uploaded photo.
const MaxImageBytes = 10 << 20

// Options configures the web handler.
type Options struct {
	Title      string
	Species    []string
	CookieName string

	// SecureCookie marks the session cookie Secure (HTTPS only).
	SecureCookie bool

	// Objects serves locally stored photos under /objects/. Nil when photos live
	// elsewhere.
	Objects http.Handler
}

// Handler holds the dependencies for the HTTP handlers.
type Handler struct {
	backend   *tournament.Backend
	templates *template.Template
	opts      Options
}

// fishForm is what the submission form shows after a rejected submission.
type fishForm struct {
	Name    string
	Length  string
	Species string
}

// pageData is the data rendered by index.html.
type pageData struct {
	Title            string
	Screen           string
	Participants     []string
	Species          []string
	Email            string
	Message          string
	Form             fishForm
	FishError        string
	ImageTypeMessage string
	Rows             []tournament.Row
	Dialog           *tournament.Row
}

// NewHandler creates a Handler and parses the embedded templates.
func NewHandler(backend *tournament.Backend, opts Options) (*Handler, error) {
	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Handler{
		backend:   backend,
		templates: templates,
		opts:      opts,
	}, nil
}

// Engine returns a gin engine with every route registered.
func (h *Handler) Engine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.MaxMultipartMemory = MaxImageBytes
	h.RegisterRoutes(r)
	return r
}

// RegisterRoutes registers all the page routes.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/", h.ShowIndex)
	r.POST("/register", h.Register)
	r.POST("/sign-in", h.SignIn)
	r.POST("/sign-out", h.SignOut)
	r.POST("/fish", h.SubmitFish)
	if h.opts.Objects != nil {
		r.GET("/objects/*key", gin.WrapH(http.StripPrefix("/objects", h.opts.Objects)))
	}
}

// page is the per-request state: the session, and the gate that keeps screen
// in sync with it.
type page struct {
	sess   *auth.Session
	screen *tournament.ScreenState
	gate   *tournament.Gate
}

// openPage restores the session from the cookie and starts the gate.
// Callers must call close.
func (h *Handler) openPage(c *gin.Context) *page {
	p := &page{
		sess:   h.backend.NewSession(),
		screen: &tournament.ScreenState{},
	}
	if token, err := c.Cookie(h.opts.CookieName); err == nil && token != "" {
		if err := p.sess.Restore(token); err != nil {
			slog.Debug("Session cookie rejected", "error", err)
		}
	}
	p.gate = tournament.NewGate(p.sess, p.screen)
	p.gate.Start()
	return p
}

func (p *page) close() {
	p.gate.Stop()
}

func (p *page) signedIn() bool {
	return p.screen.Current() == tournament.ScreenTournament
}

// ShowIndex renders the page for the current session. ?image=<id> opens the
// image dialog for that row.
func (h *Handler) ShowIndex(c *gin.Context) {
	p := h.openPage(c)
	defer p.close()

	h.render(c, http.StatusOK, p, pageData{})
}

// Register creates a credential and participant, then signs the browser in.
func (h *Handler) Register(c *gin.Context) {
	p := h.openPage(c)
	defer p.close()

	email := c.PostForm("email")
	registry := h.backend.NewRegistry(p.sess)
	if err := registry.RegisterParticipant(c.Request.Context(), c.PostForm("name"), email, c.PostForm("password")); err != nil {
		h.render(c, http.StatusOK, p, pageData{Email: email, Message: err.Error()})
		return
	}

	h.finishSignIn(c, p)
}

// SignIn signs the browser in.
func (h *Handler) SignIn(c *gin.Context) {
	p := h.openPage(c)
	defer p.close()

	email := c.PostForm("email")
	registry := h.backend.NewRegistry(p.sess)
	if err := registry.SignIn(c.Request.Context(), email, c.PostForm("password")); err != nil {
		h.render(c, http.StatusOK, p, pageData{Email: email, Message: err.Error()})
		return
	}

	h.finishSignIn(c, p)
}

// SignOut clears the session cookie.
func (h *Handler) SignOut(c *gin.Context) {
	p := h.openPage(c)
	defer p.close()

	h.backend.NewRegistry(p.sess).SignOut()
	h.setSessionCookie(c, "", -1)
	c.Redirect(http.StatusSeeOther, "/")
}

// SubmitFish runs the submission pipeline on the multipart form.
func (h *Handler) SubmitFish(c *gin.Context) {
	p := h.openPage(c)
	defer p.close()

	if !p.signedIn() {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	form := fishForm{
		Name:    c.PostForm("name"),
		Length:  c.PostForm("length"),
		Species: c.PostForm("species"),
	}
	submission := tournament.Submission{
		Name:    form.Name,
		Length:  form.Length,
		Species: form.Species,
	}

	image, err := readImage(c)
	if err != nil {
		slog.Warn("Failed to read uploaded image", "error", err)
		h.render(c, http.StatusBadRequest, p, pageData{Form: form, FishError: tournament.MsgFileMustBeImage})
		return
	}
	submission.Image = image

	_, err = h.backend.NewPipeline().Submit(c.Request.Context(), submission)
	var failure *validation.Failure
	switch {
	case err == nil:
		c.Redirect(http.StatusSeeOther, "/")
	case errors.As(err, &failure):
		h.render(c, http.StatusUnprocessableEntity, p, pageData{Form: form, FishError: failure.Message})
	default:
		// Persist failures show no message and keep the form filled in.
		h.render(c, http.StatusInternalServerError, p, pageData{Form: form})
	}
}

func (h *Handler) finishSignIn(c *gin.Context, p *page) {
	if !p.signedIn() {
		h.render(c, http.StatusOK, p, pageData{})
		return
	}
	h.setSessionCookie(c, p.sess.Token(), int(h.backend.JWT.TokenDuration().Seconds()))
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.opts.CookieName, token, maxAge, "/", "", h.opts.SecureCookie, true)
}

// readImage returns the uploaded photo, or nil when none was selected.
func readImage(c *gin.Context) (*tournament.Image, error) {
	fh, err := c.FormFile("fishImage")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if fh.Filename == "" {
		return nil, nil
	}

	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxImageBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxImageBytes {
		return nil, errors.New("image exceeds size limit")
	}

	return &tournament.Image{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// render fills in the parts of the page that depend on the session and writes it.
func (h *Handler) render(c *gin.Context, status int, p *page, data pageData) {
	ctx := c.Request.Context()

	data.Title = h.opts.Title
	data.Species = h.opts.Species
	data.Screen = p.screen.Current().String()
	data.ImageTypeMessage = tournament.MsgFileMustBeImage

	names, err := h.backend.NewRegistry(p.sess).ListParticipants(ctx)
	if err != nil {
		slog.Error("Failed to list participants", "error", err)
	}
	data.Participants = names

	if p.signedIn() {
		table := h.backend.NewTable()
		if err := table.Refresh(ctx); err != nil {
			slog.Error("Failed to refresh fish table", "error", err)
		}
		if id := c.Query("image"); id != "" {
			if _, ok := table.Open(id); !ok {
				slog.Debug("Image dialog requested for unknown row", "id", id)
			}
		}
		data.Rows = table.Rows()
		if row, ok := table.Dialog(); ok {
			data.Dialog = &row
		}
	}

	buf := new(bytes.Buffer)
	if err := h.templates.ExecuteTemplate(buf, "index.html", data); err != nil {
		slog.Error("Error executing template", "error", err)
		c.String(http.StatusInternalServerError, "Template rendering error")
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}
