/*
Copyright 2024 Sanad Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"context"
	"log"
	"net/http"
	"path/filepath"

	"github.com/caddyserver/certmagic"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sanadpay/sanad/api"
	"github.com/sanadpay/sanad/config"
	trace "github.com/sanadpay/sanad/internal/traces"
)

const certStorageDir = "certmagic"

/*
serveTLS starts an HTTPS server with TLS enabled using CertMagic for automatic certificate management.
If no domain is specified, the server will default to running on localhost.
*/
func serveTLS(r *gin.Engine, conf config.ServerConfig) error {
	certmagic.DefaultACME.Agreed = true
	certmagic.DefaultACME.Email = conf.Email
	cfg := certmagic.NewDefault()
	cfg.Storage = &certmagic.FileStorage{Path: filepath.Join(".", certStorageDir)}

	domains := []string{conf.Domain}
	if conf.Domain == "" {
		log.Println("No domain specified, defaulting to localhost")
		domains = []string{"localhost"}
	}

	if err := cfg.ManageSync(context.Background(), domains); err != nil {
		return errors.Wrap(err, "error managing certificates")
	}

	server := &http.Server{
		Addr:      ":" + conf.Port,
		Handler:   r,
		TLSConfig: cfg.TLSConfig(),
	}

	log.Printf("Starting HTTPS server on %s\n", conf.Port)
	if err := server.ListenAndServeTLS("", ""); err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, "failed to start HTTPS server")
	}
	return nil
}

func initializeRouter(s *sanadInstance) (*gin.Engine, error) {
	a := api.NewAPI(s.sanad)
	if a == nil {
		return nil, errors.New("configuration not loaded")
	}
	return a.Router(), nil
}

func initializeTracing(ctx context.Context, cfg *config.Configuration) (func(context.Context) error, error) {
	if !cfg.EnableTelemetry {
		return func(context.Context) error { return nil }, nil
	}
	if err := config.SetOtelExporterEnvs(); err != nil {
		return nil, errors.Wrap(err, "error exporting otel settings")
	}
	shutdown, err := trace.SetupOTelSDK(ctx, cfg.ProjectName)
	if err != nil {
		return nil, errors.Wrap(err, "error setting up OTel SDK")
	}
	return shutdown, nil
}

func startServer(router *gin.Engine, cfg config.ServerConfig) error {
	if cfg.SSL {
		return serveTLS(router, cfg)
	}
	log.Printf("Starting server on http://localhost:%s", cfg.Port)
	return router.Run(":" + cfg.Port)
}

// serveWithShutdown runs the server and flushes the tracer however it exits.
func serveWithShutdown(ctx context.Context, router *gin.Engine, cfg config.ServerConfig, shutdown func(context.Context) error) error {
	defer func() {
		if err := shutdown(ctx); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	}()
	return startServer(router, cfg)
}

/*
serverCommands returns the Cobra command responsible for starting the Sanad server.
It sets up tracing and the API routes before launching the server.
*/
func serverCommands(s *sanadInstance) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "start sanad server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			cfg, err := config.Fetch()
			if err != nil {
				return err
			}

			router, err := initializeRouter(s)
			if err != nil {
				return err
			}

			shutdown, err := initializeTracing(ctx, cfg)
			if err != nil {
				return err
			}

			return serveWithShutdown(ctx, router, cfg.Server, shutdown)
		},
	}

	return cmd
}
