// Command sessionctl drives a session against an auth API from the terminal.
//
//	sessionctl -email demo@example.com -password secret -get /api/v1/users/me -ws hello -logout
//
// Settings come from the environment (API_BASE_URL, STORE_DRIVER, ...) or the
// YAML file named by SESSION_CONFIG_FILE.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/websocket"
	"github.com/jrsteele09/go-session-client/authapi"
	"github.com/jrsteele09/go-session-client/internal/config"
	"github.com/jrsteele09/go-session-client/internal/logging"
	"github.com/jrsteele09/go-session-client/metrics"
	"github.com/jrsteele09/go-session-client/session"
	"github.com/jrsteele09/go-session-client/storage"
	"github.com/jrsteele09/go-session-client/wsconn"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

type options struct {
	email       string
	password    string
	get         string
	wsMessage   string
	logout      bool
	metricsFile string
}

func main() {
	var opts options
	flag.StringVar(&opts.email, "email", "", "log in with this email before anything else")
	flag.StringVar(&opts.password, "password", "", "password for -email")
	flag.StringVar(&opts.get, "get", "", "GET this API path with the session's token")
	flag.StringVar(&opts.wsMessage, "ws", "", "open the WebSocket, send this message and print the reply")
	flag.BoolVar(&opts.logout, "logout", false, "end the session when done")
	flag.StringVar(&opts.metricsFile, "metrics-file", "", "write session metrics to this file on exit")
	flag.Parse()

	if err := config.LoadFromEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	c := config.New()
	log.Logger = logging.New(c.GetEnv(), c.GetLogLevel())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, c, opts); err != nil {
		log.Error().Err(err).Msg("sessionctl failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, c config.Config, opts options) error {
	store, err := storage.NewStore(c)
	if err != nil {
		return err
	}
	defer store.Close()

	registry := prometheus.NewRegistry()
	collector, err := metrics.NewSessionCollector(registry)
	if err != nil {
		return err
	}
	if opts.metricsFile != "" {
		defer func() {
			if err := prometheus.WriteToTextfile(opts.metricsFile, registry); err != nil {
				log.Warn().Err(err).Msg("failed to write metrics")
			}
		}()
	}

	manager, err := session.New(c, store,
		session.WithObserver(collector),
		session.WithNavigator(session.NavigatorFunc(func(_ context.Context, page string) error {
			log.Info().Str("page", page).Msg("session ended, log in again")
			return nil
		})),
	)
	if err != nil {
		return err
	}

	if opts.email != "" {
		if err := manager.Login(ctx, opts.email, opts.password); err != nil {
			return err
		}
		log.Info().Str("email", opts.email).Msg("logged in")
	}

	if opts.get != "" {
		if err := get(ctx, manager, opts.get); err != nil {
			return err
		}
	}

	if opts.wsMessage != "" {
		if err := echo(ctx, c, manager, opts.wsMessage); err != nil {
			return err
		}
	}

	if opts.logout {
		manager.Terminate(ctx)
	}
	return nil
}

func get(ctx context.Context, manager *session.Manager, path string) error {
	res, err := manager.Fetch(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	fmt.Println(res.Status)
	_, err = io.Copy(os.Stdout, res.Body)
	fmt.Println()
	return err
}

func echo(ctx context.Context, c config.SessionConfig, manager *session.Manager, message string) error {
	endpoint, err := wsconn.EndpointURL(c.GetAPIBaseURL(), authapi.RouteWebSocket)
	if err != nil {
		return err
	}
	dialer, err := wsconn.NewDialer(endpoint, wsconn.WithDialer(&websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: websocket.DefaultDialer.HandshakeTimeout,
		Jar:              manager.CookieJar(),
	}))
	if err != nil {
		return err
	}
	defer dialer.Close()

	if err := manager.ConnectWebSocket(ctx, dialer.Connect); err != nil {
		return err
	}

	conn := dialer.Conn()
	if err := conn.WriteMessage(websocket.TextMessage, []byte(message)); err != nil {
		return err
	}
	_, reply, err := conn.ReadMessage()
	if err != nil {
		return err
	}
	fmt.Println(string(reply))
	return nil
}
