package probe

import (
	"cmp"
	"context"
	"log/slog"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"

	"auction_house/pkg/contextx"
	"auction_house/pkg/httpx"
	"auction_house/pkg/logx"
)

var (
	json   = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip
	logger = contextx.LoggerFromContextOrDefault          //nolint:gochecknoglobals
)

const (
	httpServerReadHeaderTimeout = 5 * time.Second
	checkTimeout                = 2 * time.Second
)

// Check is a readiness dependency, e.g. a database ping.
type Check struct {
	Name  string
	Probe func(ctx context.Context) error
}

type Server struct {
	listenAddress string
	options       Options
	checks        []Check
}

type Options struct {
	Name    string `json:"name"`
	Version string `json:"version"`

	// CheckTimeout bounds all readiness checks together. Zero means 2s.
	CheckTimeout time.Duration `json:"-"`
}

type readiness struct {
	Options

	Failed map[string]string `json:"failed,omitempty"`
}

func NewServer(
	listenAddress string,
	options Options,
	checks ...Check,
) Server {
	return Server{
		listenAddress: listenAddress,
		options:       options,
		checks:        checks,
	}
}

func (s Server) Run(ctx context.Context) error {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", s.handlerHealthz)
	mux.HandleFunc("/ready", s.handlerReady)

	return httpx.Serve(ctx, "probe", &http.Server{ //nolint:wrapcheck
		//nolint:exhaustruct
		Addr:              s.listenAddress,
		Handler:           mux,
		ReadHeaderTimeout: httpServerReadHeaderTimeout,
	}, 0)
}

func (s Server) handlerHealthz(w http.ResponseWriter, _ *http.Request) {
	s.write(w, http.StatusOK, readiness{Options: s.options})
}

// handlerReady answers 503 while any dependency check fails.
func (s Server) handlerReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), cmp.Or(s.options.CheckTimeout, checkTimeout))
	defer cancel()

	state := readiness{Options: s.options}

	for _, check := range s.checks {
		if err := check.Probe(ctx); err != nil {
			if state.Failed == nil {
				state.Failed = make(map[string]string)
			}

			state.Failed[check.Name] = err.Error()

			logger(ctx).Warn("readiness check failed", slog.String("check", check.Name), logx.Error(err))
		}
	}

	status := http.StatusOK
	if len(state.Failed) > 0 {
		status = http.StatusServiceUnavailable
	}

	s.write(w, status, state)
}

func (s Server) write(w http.ResponseWriter, status int, state readiness) {
	body, _ := json.Marshal(state) //nolint:errcheck,errchkjson

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body) //nolint:errcheck
}
