// Command ssodemo runs a minimal application fronted by the SSO kit. It is a
// working reference for the wiring: environment config, the login callback,
// sign-out and a protected page that greets the signed-in user.
package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/ssokit"
	"github.com/dmitrymomot/ssokit/core/config"
	"github.com/dmitrymomot/ssokit/middleware"
)

type serverConfig struct {
	Addr string `env:"SERVER_ADDR" envDefault:":8080"`
}

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	var srvCfg serverConfig
	config.MustLoad(&srvCfg)

	var ssoCfg ssokit.Config
	config.MustLoad(&ssoCfg)

	kit, err := ssokit.New(ssoCfg, ssokit.WithLogger(log))
	if err != nil {
		log.Error("failed to assemble sso kit", "error", err)
		os.Exit(1)
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)

	r.Get(kit.CallbackPath(), kit.Handlers().Callback)
	r.Get("/api/sso/signout", kit.Handlers().SignOut)
	r.Post("/api/sso/session", kit.Handlers().SessionSet)
	r.Delete("/api/sso/session", kit.Handlers().SessionClear)

	r.Group(func(r chi.Router) {
		r.Use(kit.Middleware())
		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			sess, ok := middleware.GetSession(req.Context())
			if !ok {
				http.Error(w, "no session", http.StatusInternalServerError)
				return
			}
			_, _ = w.Write([]byte("Signed in as " + sess.User.Name + "\n"))
		})
	})

	log.Info("listening", "addr", srvCfg.Addr)
	if err := http.ListenAndServe(srvCfg.Addr, r); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
