package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"go.uber.org/zap"

	"github.com/dgnsrekt/fc-pro-number/internal/frame"
	"github.com/dgnsrekt/fc-pro-number/internal/session"
	"github.com/dgnsrekt/fc-pro-number/internal/share"
	"github.com/dgnsrekt/fc-pro-number/internal/view"
)

// maxFrameBody bounds POST /frame bodies.
const maxFrameBody = 64 << 10

type Server struct {
	sequencer *session.Sequencer
	composer  *share.Composer
	appURL    string
	metrics   *Metrics
	logger    *zap.Logger
}

func NewServer(sequencer *session.Sequencer, composer *share.Composer, appURL string, metrics *Metrics, logger *zap.Logger) *Server {
	return &Server{
		sequencer: sequencer,
		composer:  composer,
		appURL:    appURL,
		metrics:   metrics,
		logger:    logger,
	}
}

// HandleIndex renders the page for ?fid=, or the fallback viewer.
func (s *Server) HandleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, queryHost(r))
}

// HandleFrame renders the page for a frame context posted by the host. With
// ?fragment=1 only the #app content is written, which is what the page
// bootstrap swaps in after reading sdk.context.
func (s *Server) HandleFrame(w http.ResponseWriter, r *http.Request) {
	host := &frame.StaticHost{}
	fc, err := frame.Decode(http.MaxBytesReader(w, r.Body, maxFrameBody))
	if err != nil {
		host.Err = err
	} else {
		host.Frame = fc
	}

	if r.URL.Query().Get("fragment") != "" {
		s.renderFragment(w, r, host)
		return
	}
	s.renderPage(w, r, host)
}

// HandleShare composes the post for ?fid= and redirects to the compose URL,
// which is how the host's open-URL action reaches a server.
func (s *Server) HandleShare(w http.ResponseWriter, r *http.Request) {
	st := s.sequencer.Start(r.Context(), queryHost(r))
	s.metrics.ObserveLookup(st.Outcome)

	msg := s.composer.Compose(st)
	chain := share.NewChain(s.logger, share.HostOpenURL{Opener: redirectOpener{w: w, r: r}})
	res := chain.Share(r.Context(), msg)
	s.metrics.ObserveShare(res.Provider)
}

type userViewResponse struct {
	FID        int64         `json:"fid"`
	Subscribed bool          `json:"subscribed"`
	Position   *int64        `json:"position,omitempty"`
	Timestamp  *time.Time    `json:"timestamp,omitempty"`
	View       view.View     `json:"view"`
	Share      shareResponse `json:"share"`
}

type shareResponse struct {
	Text       string `json:"text"`
	ComposeURL string `json:"composeUrl"`
}

// HandleUserView returns the view payload as JSON.
func (s *Server) HandleUserView(w http.ResponseWriter, r *http.Request) {
	var fid int64
	err := runtime.BindStyledParameterWithOptions("simple", "fid", chi.URLParam(r, "fid"), &fid, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid format for parameter fid: " + err.Error()})
		return
	}
	if fid <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid fid"})
		return
	}

	st := s.sequencer.StartWithFID(r.Context(), fid)
	s.metrics.ObserveLookup(st.Outcome)

	msg := s.composer.Compose(st)
	resp := userViewResponse{
		FID:        st.FID(),
		Subscribed: st.Subscribed(),
		View:       view.Render(st),
		Share:      shareResponse{Text: msg.Text, ComposeURL: msg.ComposeURL},
	}
	if st.Record != nil {
		resp.Position = &st.Record.Position
		resp.Timestamp = &st.Record.Timestamp
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, host *frame.StaticHost) {
	s.render(w, r, host, view.View.WriteHTML)
}

func (s *Server) renderFragment(w http.ResponseWriter, r *http.Request, host *frame.StaticHost) {
	s.render(w, r, host, view.View.WriteFragment)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, host *frame.StaticHost, write func(view.View, io.Writer, view.HTMLOptions) error) {
	st := s.sequencer.Start(r.Context(), host)
	s.metrics.ObserveLookup(st.Outcome)

	v := view.Render(st)
	msg := s.composer.Compose(st)
	opts := view.HTMLOptions{
		SharePath:  "/share",
		FramePath:  "/frame?fragment=1",
		AppURL:     s.appURL,
		ShareText:  msg.Text,
		ComposeURL: msg.ComposeURL,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := write(v, w, opts); err != nil {
		s.logger.Error("render failed", zap.String("session", st.ID.String()), zap.Error(err))
		return
	}

	st = st.Rendered()
	s.logger.Debug("session rendered",
		zap.String("session", st.ID.String()),
		zap.String("kind", string(v.Kind)),
	)
}

// queryHost builds a host from ?fid=. Without a usable fid the request is
// treated as running outside a frame.
func queryHost(r *http.Request) *frame.StaticHost {
	raw := r.URL.Query().Get("fid")
	if raw == "" {
		return &frame.StaticHost{Err: frame.ErrNoContext}
	}
	fid, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || fid <= 0 {
		return &frame.StaticHost{Err: frame.ErrNoContext}
	}
	return &frame.StaticHost{Frame: &frame.Context{User: &frame.User{FID: fid}}}
}

type redirectOpener struct {
	w http.ResponseWriter
	r *http.Request
}

func (o redirectOpener) OpenURL(_ context.Context, url string) error {
	http.Redirect(o.w, o.r, url, http.StatusFound)
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
