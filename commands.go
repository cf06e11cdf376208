package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"PenBoard/internal/canvas"
	"PenBoard/internal/config"
	"PenBoard/internal/export"
	"PenBoard/internal/lang"
	pbnet "PenBoard/internal/net"
	"PenBoard/internal/program"
	"PenBoard/internal/ui"
)

type env struct {
	cfg    config.Config
	log    *slog.Logger
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// session is an interpreter drawing into a raster and, when asked, a PDF.
type session struct {
	interp *lang.Interpreter
	raster *export.Raster
	pdf    *export.PDF
}

func (e *env) newSession(withPDF bool) *session {
	bg := e.cfg.BackgroundColor()
	s := &session{raster: export.NewRaster(e.cfg.Canvas.Width, e.cfg.Canvas.Height, e.cfg.Pen.Width, bg)}
	surfaces := canvas.Tee{s.raster}
	if withPDF {
		s.pdf = export.NewPDF(e.cfg.Canvas.Width, e.cfg.Canvas.Height, e.cfg.Pen.Width, bg)
		surfaces = append(surfaces, s.pdf)
	}
	s.interp = lang.New(surfaces, lang.WithBackground(bg))
	return s
}

func (s *session) Close() error { return s.raster.Close() }

func (e *env) run(args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	pngPath := fs.String("png", "", "write the canvas as PNG")
	pdfPath := fs.String("pdf", "", "write the canvas as PDF")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(e.stderr, "usage: penboard run [-png file] [-pdf file] FILE")
		return errUsage
	}

	text, err := program.Load(fs.Arg(0))
	if err != nil {
		return err
	}
	s := e.newSession(*pdfPath != "")
	defer s.Close()

	runErr := s.interp.Run(text)
	if *pngPath != "" {
		if err := s.raster.SavePNG(*pngPath); err != nil {
			return err
		}
		e.log.Info("wrote PNG", "path", *pngPath)
	}
	if *pdfPath != "" {
		if err := s.pdf.Save(*pdfPath); err != nil {
			return err
		}
		e.log.Info("wrote PDF", "path", *pdfPath)
	}
	if runErr != nil {
		return runErr
	}
	pen := s.interp.Pen()
	fmt.Fprintf(e.stdout, "ok: pen %s at %s, fill %t\n", pen.Color, pen.Position, pen.Fill)
	return nil
}

func (e *env) check(args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(e.stderr, "usage: penboard check FILE")
		return errUsage
	}
	text, err := program.Load(args[0])
	if err != nil {
		return err
	}
	s := e.newSession(false)
	defer s.Close()
	if err := s.interp.Check(text); err != nil {
		return err
	}
	fmt.Fprintln(e.stdout, "Syntax is correct. You can run now!")
	return nil
}

// repl executes stdin lines one by one. Command errors are printed and the
// session carries on; the exit status reports whether any line failed.
func (e *env) repl() error {
	s := e.newSession(false)
	defer s.Close()

	var failed bool
	sc := bufio.NewScanner(e.stdin)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if err := s.interp.Execute(line); err != nil {
			fmt.Fprintln(e.stdout, "error:", err)
			failed = true
			continue
		}
		fmt.Fprintln(e.stdout, "ok")
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read commands: %w", err)
	}
	if failed {
		return errors.New("some commands failed")
	}
	return nil
}

func (e *env) serve() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	host := pbnet.NewHost(e.cfg, e.log)
	port := e.cfg.Server.Port
	if e.cfg.Server.Advertise {
		srv, err := pbnet.Advertise(e.cfg.Server.Name, port)
		if err != nil {
			e.log.Warn("mDNS advertise failed", "err", err)
		} else {
			defer srv.Shutdown()
		}
	}

	url := pbnet.ShareURL(pbnet.OutgoingIP(), port)
	fmt.Fprintf(e.stdout, "share link: %s%s\n", LinkScheme, strings.TrimPrefix(url, "ws://"))
	return host.Serve(ctx, ":"+strconv.Itoa(port))
}

func (e *env) connect(args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(e.stderr, "usage: penboard connect URL")
		return errUsage
	}
	url := args[0]
	if strings.HasPrefix(url, LinkScheme) {
		url = "ws://" + strings.TrimPrefix(url, LinkScheme)
	}
	if !strings.HasSuffix(url, "/ws") {
		url = strings.TrimSuffix(url, "/") + "/ws"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	client, err := pbnet.Dial(ctx, url)
	cancel()
	if err != nil {
		return err
	}
	defer client.Close()

	done := make(chan error, 1)
	go func() {
		done <- client.Listen(func(msg pbnet.Message) {
			switch msg.Type {
			case pbnet.TypeResult:
				if msg.OK {
					fmt.Fprintln(e.stdout, "ok")
				} else {
					fmt.Fprintln(e.stdout, "error:", msg.Error)
				}
			case pbnet.TypeSnapshot:
				fmt.Fprintf(e.stdout, "joined: %d primitives\n", len(msg.Primitives))
			case pbnet.TypeDraw:
				e.log.Debug("draw", "op", msg.Primitive.Op, "seq", msg.Primitive.Seq)
			}
		})
	}()

	sc := bufio.NewScanner(e.stdin)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if err := client.Send(pbnet.TypeCommand, line); err != nil {
			return err
		}
	}
	// Give the host a moment to answer the last command.
	select {
	case err := <-done:
		return err
	case <-time.After(500 * time.Millisecond):
	}
	e.log.Info("disconnecting", "primitives", len(client.Replica().Primitives()))
	return nil
}

func (e *env) discover() error {
	hosts, err := pbnet.Browse(3 * time.Second)
	if err != nil {
		return err
	}
	if len(hosts) == 0 {
		fmt.Fprintln(e.stdout, "no hosts found")
		return nil
	}
	for _, h := range hosts {
		fmt.Fprintln(e.stdout, h)
	}
	return nil
}

func (e *env) gui(args []string) error {
	var text string
	if len(args) > 0 {
		var err error
		if text, err = program.Load(args[0]); err != nil {
			return err
		}
	}
	ui.RunApp(e.cfg, text)
	return nil
}
