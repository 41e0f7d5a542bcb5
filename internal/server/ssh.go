package server

import (
	"context"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/gliderlabs/ssh"

	"infiniship/internal/gallery"
	"infiniship/internal/logx"
	"infiniship/internal/render"
	"infiniship/internal/ship"
)

const inputChanSize = 16

// SSHServer serves one ship gallery per SSH session.
type SSHServer struct {
	addr     string
	hostKey  string
	sessions *gallery.Registry
	log      *logx.Logger
	srv      *ssh.Server
}

// NewSSHServer creates a new SSH server bound to the given address.
// Fresh ships are drawn from src.
func NewSSHServer(addr string, hostKey string, src ship.SeedSource, log *logx.Logger) *SSHServer {
	s := &SSHServer{
		addr:     addr,
		hostKey:  hostKey,
		sessions: gallery.NewRegistry(src),
		log:      log.Section("ssh"),
	}
	s.srv = &ssh.Server{
		Addr:    addr,
		Handler: s.handleSession,
	}
	return s
}

// Start begins listening for SSH connections. It blocks until the server
// stops.
func (s *SSHServer) Start() error {
	if err := s.srv.SetOption(ssh.HostKeyFile(s.hostKey)); err != nil {
		return fmt.Errorf("set host key: %w", err)
	}

	s.log.Infof("listening on %s", s.addr)
	err := s.srv.ListenAndServe()
	if err == ssh.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown stops accepting sessions and waits for open ones to finish
// until ctx is done.
func (s *SSHServer) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *SSHServer) handleSession(sess ssh.Session) {
	ptyReq, winCh, ok := sess.Pty()
	if !ok {
		s.log.Warnf("%s (%s): no PTY requested, closing", sess.User(), sess.RemoteAddr())
		fmt.Fprintln(sess, "Error: PTY required. Use: ssh -t ...")
		return
	}

	username := sess.User()
	if username == "" {
		username = "Anonymous"
	}

	// Username is identity: a returning user gets their gallery back.
	id, gal := s.sessions.Join(username)

	s.log.Infof("viewer connected: %s (%s, %d online)", id, sess.RemoteAddr(), s.sessions.Online())
	defer s.disconnect(id, gal)

	engine := render.NewEngine(ptyReq.Window.Width, ptyReq.Window.Height)
	gal.Fit(engine.ImageArea())

	io.WriteString(sess, render.EnableAltScreen())
	io.WriteString(sess, render.HideCursor())
	io.WriteString(sess, render.ClearScreen())
	defer func() {
		io.WriteString(sess, render.ShowCursor())
		io.WriteString(sess, render.DisableAltScreen())
	}()

	inputCh := make(chan gallery.Action, inputChanSize)
	quitCh := make(chan struct{})

	go func() {
		buf := make([]byte, 64)
		for {
			n, err := sess.Read(buf)
			if err != nil {
				close(quitCh)
				return
			}
			for _, action := range parseInput(buf[:n]) {
				if action == gallery.ActionQuit {
					close(quitCh)
					return
				}
				select {
				case inputCh <- action:
				default:
				}
			}
		}
	}()

	redraw := func() {
		if out := engine.Frame(gal.Frame(), hudLines(gal, s.sessions.Online())); len(out) > 0 {
			io.WriteString(sess, out)
		}
	}
	redraw()

	for {
		select {
		case <-quitCh:
			return
		case <-sess.Context().Done():
			return
		case win, ok := <-winCh:
			if !ok {
				winCh = nil
				continue
			}
			engine.Resize(win.Width, win.Height)
			gal.Fit(engine.ImageArea())
			w, h := engine.Size()
			tx, ty := gal.Tiles()
			s.log.Debugf("%s: resized to %dx%d, %dx%d ships per page", id, w, h, tx, ty)
			io.WriteString(sess, render.ClearScreen())
			redraw()
		case action := <-inputCh:
			if gal.Apply(action) {
				s.log.Debugf("%s: %v -> page %d, ship %v", id, action, gal.Page(), gal.Selected())
				redraw()
			}
		}
	}
}

// disconnect logs the session's last ship and hands its gallery back to the
// registry. Once Leave returns a rejoining session may own gal.
func (s *SSHServer) disconnect(id string, gal *gallery.Gallery) {
	s.log.Infof("viewer disconnected: %s, last ship %v", id, gal.Selected())
	s.sessions.Leave(id)
}

func hudLines(g *gallery.Gallery, online int) []string {
	mode := "Color"
	if g.Monochrome() {
		mode = "Mono"
	}
	return []string{
		fmt.Sprintf("Page %d  │  Ship %v  │  %s  │  %d Online", g.Page(), g.Selected(), mode, online),
		"←↑↓→/WASD Select  │  N/Space Next  P/B Prev  │  M Mono  │  Q Quit",
	}
}

// parseInput converts raw bytes into gallery actions.
// Handles WASD, arrow keys, page keys, N/P/B/M/Q, space and Ctrl-C.
func parseInput(data []byte) []gallery.Action {
	var actions []gallery.Action
	i := 0
	for i < len(data) {
		// Page Up / Page Down: ESC [ 5 ~ and ESC [ 6 ~
		if i+3 < len(data) && data[i] == 0x1b && data[i+1] == '[' && data[i+3] == '~' {
			switch data[i+2] {
			case '5':
				actions = append(actions, gallery.ActionPrevPage)
			case '6':
				actions = append(actions, gallery.ActionNextPage)
			}
			i += 4
			continue
		}

		// Arrow keys
		if i+2 < len(data) && data[i] == 0x1b && data[i+1] == '[' {
			switch data[i+2] {
			case 'A':
				actions = append(actions, gallery.ActionUp)
			case 'B':
				actions = append(actions, gallery.ActionDown)
			case 'C':
				actions = append(actions, gallery.ActionRight)
			case 'D':
				actions = append(actions, gallery.ActionLeft)
			}
			i += 3
			continue
		}

		// Single byte inputs
		r, size := utf8.DecodeRune(data[i:])
		switch r {
		case 'w', 'W':
			actions = append(actions, gallery.ActionUp)
		case 's', 'S':
			actions = append(actions, gallery.ActionDown)
		case 'a', 'A':
			actions = append(actions, gallery.ActionLeft)
		case 'd', 'D':
			actions = append(actions, gallery.ActionRight)
		case 'n', 'N', ' ':
			actions = append(actions, gallery.ActionNextPage)
		case 'p', 'P', 'b', 'B':
			actions = append(actions, gallery.ActionPrevPage)
		case 'm', 'M':
			actions = append(actions, gallery.ActionMono)
		case 'q', 'Q':
			actions = append(actions, gallery.ActionQuit)
		case 3: // Ctrl-C
			actions = append(actions, gallery.ActionQuit)
		}
		i += size
	}
	return actions
}
