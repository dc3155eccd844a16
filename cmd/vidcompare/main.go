// Package main provides the CLI entry point for vidcompare.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/vidcompare/pkg/adapters/pngdisplay"
	"github.com/user/vidcompare/pkg/adapters/prefstore"
	"github.com/user/vidcompare/pkg/adapters/systimer"
	"github.com/user/vidcompare/pkg/compare"
	"github.com/user/vidcompare/pkg/ports"
	"github.com/user/vidcompare/pkg/session"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, l10n.F("Error: %v", err))
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "vidcompare",
		Usage:   l10n.T("Compare two videos frame by frame"),
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: l10n.T("YAML configuration file")},
			&cli.StringFlag{Name: "log-level", Aliases: []string{"l"}, Usage: l10n.T("Log level (debug, info, warn, error)")},
			&cli.StringFlag{Name: "log-format", Usage: l10n.T("Log format (console, json)")},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: l10n.T("Suppress all log output")},
			&cli.StringFlag{Name: "ffmpeg", Usage: l10n.T("Path to ffmpeg (falls back to FFMPEG_PATH, then PATH)")},
			&cli.StringFlag{Name: "ffprobe", Usage: l10n.T("Path to ffprobe (falls back to FFPROBE_PATH, then PATH)")},
		},
		Commands: []*cli.Command{
			infoCommand(),
			snapshotCommand(),
			playCommand(),
			sessionCommand(),
			{
				Name:  "version",
				Usage: l10n.T("Show version information"),
				Action: func(c *cli.Context) error {
					fmt.Println(l10n.F("vidcompare version %s", version))
					return nil
				},
			},
		},
	}
}

// viewFlags are shared by the commands that render frames.
func viewFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "width", Aliases: []string{"W"}, Usage: l10n.T("Panel width in pixels")},
		&cli.IntFlag{Name: "height", Aliases: []string{"H"}, Usage: l10n.T("Panel height in pixels")},
		&cli.StringFlag{Name: "mode", Aliases: []string{"m"}, Usage: l10n.T("View mode (side, overlay)")},
		&cli.Float64Flag{Name: "divider", Usage: l10n.T("Overlay divider position (0 to 1)")},
		&cli.BoolFlag{Name: "loop", Usage: l10n.T("Restart from the first frame at the end")},
	}
}

func infoCommand() *cli.Command {
	return &cli.Command{
		Name:      "info",
		Usage:     l10n.T("Print video metadata"),
		ArgsUsage: "FILE...",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return cli.Exit(l10n.T("at least one file is required"), 2)
			}
			env, err := setup(c)
			if err != nil {
				return err
			}
			defer env.close()
			var failed int
			for _, path := range c.Args().Slice() {
				info, err := env.probe(path)
				if err != nil {
					env.log.Error("Failed to load %s: %v", path, err)
					failed++
					continue
				}
				fmt.Println(compare.InfoText(info))
				fmt.Println(l10n.F("Frames: %d | Codec: %s", info.FrameCount, info.Codec))
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files could not be read", failed, c.NArg())
			}
			return nil
		},
	}
}

func snapshotCommand() *cli.Command {
	return &cli.Command{
		Name:      "snapshot",
		Usage:     l10n.T("Write one comparison frame as PNG"),
		ArgsUsage: "VIDEO1 VIDEO2",
		Flags: append(viewFlags(),
			&cli.IntFlag{Name: "frame", Aliases: []string{"f"}, Usage: l10n.T("Frame index (clamped to the shared range)")},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Required: true, Usage: l10n.T("Output PNG file path (required)")},
		),
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return cli.Exit(l10n.T("exactly two videos are required"), 2)
			}
			env, err := setup(c)
			if err != nil {
				return err
			}
			defer env.close()

			display := pngdisplay.New("", env.fs, env.renderer, env.log, env.cfg.ToDisplayOptions())
			ctrl, err := env.controller(display, systimer.New())
			if err != nil {
				return err
			}
			defer ctrl.Close()

			for i, path := range c.Args().Slice() {
				if err := ctrl.LoadVideo(ports.Slot(i+1), path); err != nil {
					return err
				}
			}
			if err := ctrl.Seek(c.Int("frame")); err != nil {
				return err
			}

			img := display.Latest()
			if img == nil {
				return errors.New("no frame was rendered")
			}
			data, err := env.renderer.EncodeImage(img, ports.FormatPNG, 0)
			if err != nil {
				return err
			}
			out := c.String("output")
			if err := env.fs.WriteFile(out, data); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			env.log.Info("Snapshot of frame %d saved to %s", ctrl.Position(), out)
			return nil
		},
	}
}

func playCommand() *cli.Command {
	return &cli.Command{
		Name:      "play",
		Usage:     l10n.T("Play both videos in real time and write every displayed frame"),
		ArgsUsage: "VIDEO1 VIDEO2",
		Flags: append(viewFlags(),
			&cli.StringFlag{Name: "out-dir", Aliases: []string{"o"}, Usage: l10n.T("Directory for frame-NNNNNN.png files")},
			&cli.IntFlag{Name: "from", Usage: l10n.T("First frame")},
			&cli.IntFlag{Name: "to", Value: -1, Usage: l10n.T("Pause at this frame (-1 plays to the end)")},
		),
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return cli.Exit(l10n.T("exactly two videos are required"), 2)
			}
			env, err := setup(c)
			if err != nil {
				return err
			}
			defer env.close()
			if c.Bool("loop") && c.Int("to") < 0 {
				return cli.Exit(l10n.T("--loop needs --to, otherwise playback never ends"), 2)
			}

			dir := env.cfg.OutputDir
			if c.IsSet("out-dir") {
				dir = c.String("out-dir")
			}
			display := pngdisplay.New(dir, env.fs, env.renderer, env.log, env.cfg.ToDisplayOptions())
			timer := systimer.New()
			ctrl, err := env.controller(display, timer)
			if err != nil {
				return err
			}

			opts := session.DefaultOptions()
			opts.ExitWhenIdle = true
			opts.StopAt = c.Int("to")
			opts.StopOnError = true
			s := session.New(ctrl, timer, nil, nil, env.log, os.Stdout, opts)

			args := c.Args().Slice()
			script := session.Feed(
				"load 1 "+args[0],
				"load 2 "+args[1],
				"seek "+strconv.Itoa(c.Int("from")),
				"play",
			)
			if err := s.Run(c.Context, script); err != nil {
				return err
			}
			env.log.Info("Wrote %d frames to %s", len(display.Written()), dir)
			return nil
		},
	}
}

func sessionCommand() *cli.Command {
	return &cli.Command{
		Name:      "session",
		Usage:     l10n.T("Interactive comparison driven by commands on stdin"),
		ArgsUsage: "[VIDEO1] [VIDEO2]",
		Flags: append(viewFlags(),
			&cli.StringFlag{Name: "out-dir", Aliases: []string{"o"}, Usage: l10n.T("Directory for frame-NNNNNN.png files (none by default)")},
			&cli.BoolFlag{Name: "no-restore", Usage: l10n.T("Do not reopen the videos from the previous session")},
		),
		Action: func(c *cli.Context) error {
			if c.NArg() > 2 {
				return cli.Exit(l10n.T("at most two videos can be given"), 2)
			}
			env, err := setup(c)
			if err != nil {
				return err
			}
			defer env.close()

			display := pngdisplay.New(c.String("out-dir"), env.fs, env.renderer, env.log, env.cfg.ToDisplayOptions())
			timer := systimer.New()
			ctrl, err := env.controller(display, timer)
			if err != nil {
				return err
			}

			prefs := prefstore.New(env.fs, env.cfg.PrefsPath)
			s := session.New(ctrl, timer, prefs, env.fs, env.log, os.Stdout, session.DefaultOptions())
			if env.cfg.RestoreLast && !c.Bool("no-restore") && c.NArg() == 0 {
				s.Restore()
			}
			for i, path := range c.Args().Slice() {
				s.Execute(fmt.Sprintf("load %d %s", i+1, path))
			}

			fmt.Println(l10n.T("Commands: load <1|2> <path>, play, pause, toggle, seek <n>, step [n], resize <1|2> <w> <h>, loop, mode, divider <f>, status, quit"))
			err = s.Run(c.Context, session.ReadLines(c.Context, os.Stdin))
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}
