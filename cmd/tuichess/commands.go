package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gliderlabs/ssh"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/qnkhuat/tuichess/pkg/board"
	"github.com/qnkhuat/tuichess/pkg/config"
	"github.com/qnkhuat/tuichess/pkg/gui"
	"github.com/qnkhuat/tuichess/pkg/logx"
	"github.com/qnkhuat/tuichess/pkg/rules"
	"github.com/qnkhuat/tuichess/pkg/server"
)

var errNotTerminal = errors.New("play needs an interactive terminal, try the print command")

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "tuichess",
		Usage: "chess in the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to a config file instead of the XDG one",
			},
			&cli.StringFlag{
				Name:  "fen",
				Usage: "start from this position",
			},
			&cli.BoolFlag{
				Name:  "black",
				Usage: "draw black at the bottom",
			},
			&cli.StringFlag{
				Name:  "theme",
				Usage: "board theme (brown, blue, basic or one from the config)",
			},
			&cli.StringFlag{
				Name:  "glyphs",
				Usage: "piece glyphs: unicode, letters or block",
			},
			&cli.StringFlag{
				Name:  "log",
				Usage: "log file, defaults to the XDG cache directory",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "debug, info, warn or error",
			},
			&cli.BoolFlag{
				Name:    "dev",
				Aliases: []string{"d"},
				Usage:   "development logging, internal errors panic",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "play",
				Usage:  "play on this terminal (default)",
				Action: runPlay,
			},
			{
				Name:      "print",
				Usage:     "print the position after the given moves and exit",
				ArgsUsage: "[moves...]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "color",
						Usage: "force ANSI colours when not writing to a terminal",
					},
				},
				Action: runPrint,
			},
			{
				Name:  "serve",
				Usage: "host games over SSH, one per session",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "addr",
						Usage: "listen address",
					},
					&cli.StringFlag{
						Name:  "host-key",
						Usage: "PEM host key, a throwaway key is generated when empty",
					},
				},
				Action: runServe,
			},
			{
				Name:  "config",
				Usage: "show the effective config",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "save",
						Usage: "write it to the XDG config directory",
					},
				},
				Action: runConfig,
			},
		},
		Action: runPlay,
	}
}

// loadConfig reads the config file and applies the command line on top.
func loadConfig(c *cli.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path := c.String("config"); path != "" {
		cfg, err = config.LoadConfig(path)
	} else {
		cfg, err = config.InitConfig()
	}
	if err != nil {
		return nil, err
	}
	if c.IsSet("theme") {
		cfg.Theme = c.String("theme")
	}
	if c.IsSet("glyphs") {
		cfg.Glyphs = c.String("glyphs")
	}
	if c.Bool("black") {
		cfg.Orientation = "black"
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("log") {
		cfg.LogFile = c.String("log")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func openLog(cfg *config.Config, c *cli.Command, name string) (*zap.SugaredLogger, func(), error) {
	path, err := cfg.LogPath()
	if err != nil {
		return nil, nil, err
	}
	return logx.InitLog(path, name, logx.LevelByString(cfg.LogLevel), c.Bool("dev"))
}

func newRules(fen string) func() (board.Rules, error) {
	return func() (board.Rules, error) {
		if fen == "" {
			return rules.NewGame(), nil
		}
		return rules.GameFromFEN(fen)
	}
}

func orientation(cfg *config.Config) board.Orientation {
	if cfg.Orientation == "black" {
		return board.BlackBottom
	}
	return board.WhiteBottom
}

func runPlay(ctx context.Context, c *cli.Command) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errNotTerminal
	}
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	log, closeLog, err := openLog(cfg, c, "client")
	if err != nil {
		return err
	}
	defer closeLog()

	theme, err := gui.ImportThemes(cfg.Theme, cfg.Themes)
	if err != nil {
		return err
	}
	glyphs, err := gui.GlyphsByName(cfg.Glyphs)
	if err != nil {
		return err
	}
	app, err := gui.NewApp(gui.Options{
		Theme:       theme,
		Glyphs:      glyphs,
		Orientation: orientation(cfg),
		Mouse:       cfg.Mouse,
		NewRules:    newRules(c.String("fen")),
		Log:         log,
	})
	if err != nil {
		return err
	}
	log.Infow("client started", "theme", theme.Name, "glyphs", glyphs.Name, "game", app.Name)
	if err := app.Run(); err != nil {
		log.Errorw("client stopped", "error", err)
		return err
	}
	return nil
}

func runPrint(ctx context.Context, c *cli.Command) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	glyphs, err := gui.GlyphsByName(cfg.Glyphs)
	if err != nil {
		return err
	}
	r, err := newRules(c.String("fen"))()
	if err != nil {
		return err
	}
	b := board.NewBoard(r, orientation(cfg), nil)
	for _, san := range c.Args().Slice() {
		if res := b.Submit(san); res != board.InputAccepted {
			return fmt.Errorf("move %s: %s", san, res)
		}
	}

	if err := gui.PrintGrid(os.Stdout, b.Render(), glyphs, c.Bool("color")); err != nil {
		return err
	}
	if o := b.Outcome(); o != nil {
		fmt.Println(o)
	} else {
		fmt.Printf("%s to move\n", r.SideToMove().Name())
	}
	return nil
}

func runServe(ctx context.Context, c *cli.Command) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if c.IsSet("addr") {
		cfg.SSH.Addr = c.String("addr")
	}
	if c.IsSet("host-key") {
		cfg.SSH.HostKeyFile = c.String("host-key")
	}
	log, closeLog, err := openLog(cfg, c, "server")
	if err != nil {
		return err
	}
	defer closeLog()

	exe, err := os.Executable()
	if err != nil {
		return err
	}
	srv, err := server.NewServer(server.Config{
		Addr:        cfg.SSH.Addr,
		HostKeyFile: cfg.SSH.HostKeyFile,
		IdleTimeout: cfg.SSH.Timeout(),
		Command:     playCommand(exe, c),
	}, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		log.Infow("server stopping", "active", srv.Active())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			srv.Close()
		}
	}()

	log.Infow("server started", "addr", cfg.SSH.Addr)
	fmt.Printf("listening on %s\n", cfg.SSH.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return err
	}
	return nil
}

// playCommand is the command line every SSH session runs: this binary's
// play command with the server's display flags passed along.
func playCommand(exe string, c *cli.Command) []string {
	args := []string{exe}
	for _, name := range []string{"config", "fen", "theme", "glyphs", "log", "log-level"} {
		if c.IsSet(name) {
			args = append(args, "--"+name, c.String(name))
		}
	}
	if c.Bool("black") {
		args = append(args, "--black")
	}
	return append(args, "play")
}

func runConfig(ctx context.Context, c *cli.Command) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if c.Bool("save") {
		return cfg.Save()
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
