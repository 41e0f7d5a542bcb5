package main

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	gossh "golang.org/x/crypto/ssh"

	"infiniship/internal/config"
	"infiniship/internal/logx"
	"infiniship/internal/server"
	"infiniship/internal/ship"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfgPath := flag.String("config", "infiniship.toml", "config file (missing file = defaults)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log := newLogger(cfg.Log)
	log.Debugf("config %q, log level %v", *cfgPath, log.Level())

	// Generate host key if it doesn't exist
	if err := ensureHostKey(cfg.Server.HostKey, log); err != nil {
		log.Fatalf("host key: %v", err)
	}

	sshServer := server.NewSSHServer(cfg.Server.Addr, cfg.Server.HostKey, ship.DefaultSource, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		log.Infof("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := sshServer.Shutdown(sctx); err != nil {
			log.Errorf("shutdown: %v", err)
		}
	}()

	log.Infof("starting infiniship gallery, connect with: ssh -p %s YourName@localhost", port(cfg.Server.Addr))
	if err := sshServer.Start(); err != nil {
		log.Fatalf("ssh server: %v", err)
	}
}

func newLogger(c config.Log) *logx.Logger {
	// Both values were checked by config.Validate.
	lvl, _ := logx.ParseLevel(c.Level)
	mode, _ := logx.ParseColorMode(c.Color)
	return logx.New(os.Stderr, lvl, mode)
}

func port(addr string) string {
	if _, p, err := net.SplitHostPort(addr); err == nil {
		return p
	}
	return addr
}

// ensureHostKey writes a fresh ed25519 key in OpenSSH format when path does
// not exist yet.
func ensureHostKey(path string, log *logx.Logger) error {
	if _, err := os.Stat(path); err == nil {
		return nil // key already exists
	}

	log.Infof("generating new host key at %s", path)
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return err
	}

	block, err := gossh.MarshalPrivateKey(priv, "infiniship host key")
	if err != nil {
		return fmt.Errorf("marshal key: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	return pem.Encode(f, block)
}
