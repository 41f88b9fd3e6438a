package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/askbench/askbench/pkg/cache/redisstore"
	"github.com/askbench/askbench/pkg/config"
	"github.com/askbench/askbench/pkg/qa"
	"github.com/askbench/askbench/pkg/server"
)

func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the question answering server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			kb, err := qa.Load(cfg.QAPath)
			if err != nil {
				return fmt.Errorf("load knowledge base: %w", err)
			}
			log.Printf("knowledge base: %d records from %s", kb.Len(), cfg.QAPath)

			var cache server.Cache
			var store *redisstore.Store
			if cfg.Cache.Enabled {
				store, err = redisstore.Open(cfg.RedisURL)
				if err != nil {
					return fmt.Errorf("open cache store: %w", err)
				}
				defer func() { _ = store.Close() }()

				pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				if err := store.Ping(pingCtx); err != nil {
					// Fail open: reads will count as misses until Redis is back.
					log.Printf("redis unreachable at %s: %v", cfg.RedisURL, err)
				}
				cancel()
				cache = store
			} else {
				log.Printf("cache disabled (control mode), every request recomputes")
			}

			srv := server.New(cfg, kb, cache)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			err = srv.ListenAndServe(ctx)
			if store != nil {
				st := store.Stats()
				log.Printf("cache store counters: hits=%d misses=%d errors=%d", st.Hits, st.Misses, st.Errors)
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "askbench.yaml", "path to config file")
	return cmd
}
