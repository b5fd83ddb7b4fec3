package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/ioutil"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/bodgit/rgb565"
	"github.com/bodgit/rgb565/pixel"
	"github.com/bodgit/rgb565/preview"
	"github.com/urfave/cli/v2"
)

const (
	defaultDB     = "rgb565.db"
	defaultConfig = "rgb565.toml"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func loadConfig(c *cli.Context) (rgb565.Config, error) {
	return rgb565.LoadConfig(c.String("config"))
}

// options merges any render flags over the configured defaults
func options(c *cli.Context, cfg rgb565.Config) rgb565.Options {
	opts := rgb565.Options{
		Colors: cfg.Colors,
		Label:  cfg.Label,
	}
	if c.IsSet("colors") {
		opts.Colors = c.Int("colors")
	}
	if c.IsSet("label") {
		opts.Label = c.Bool("label")
	}
	return opts
}

func size(c *cli.Context, cfg rgb565.Config, file string) (int, int, error) {
	return cfg.Size(file, c.String("width"), c.String("height"))
}

var sizeFlags = []cli.Flag{
	&cli.StringFlag{
		Name:  "width",
		Usage: "image width, defaults to the WIDTHxHEIGHT file extension",
	},
	&cli.StringFlag{
		Name:  "height",
		Usage: "image height, defaults to the WIDTHxHEIGHT file extension",
	},
}

var renderFlags = []cli.Flag{
	&cli.IntFlag{
		Name:  "colors",
		Usage: "reduce the rendered image to at most `N` colors",
	},
	&cli.BoolFlag{
		Name:  "label",
		Usage: "draw the image size and name onto the rendered image",
	},
}

func flags(groups ...[]cli.Flag) []cli.Flag {
	var f []cli.Flag
	for _, g := range groups {
		f = append(f, g...)
	}
	return f
}

func main() {
	app := cli.NewApp()

	app.Name = "rgb565"
	app.Usage = "RGB565 raw image previewer"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"RGB565_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to database",
		},
		&cli.StringFlag{
			Name:    "config",
			EnvVars: []string{"RGB565_CONFIG"},
			Value:   filepath.Join(cwd, defaultConfig),
			Usage:   "path to configuration file",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "decode",
			Usage:       "Render a raw image as a PNG",
			Description: "",
			ArgsUsage:   "FILE",
			Flags: flags(sizeFlags, renderFlags, []cli.Flag{
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Usage:   "output `FILE`, defaults to FILE.png",
				},
			}),
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				cfg, err := loadConfig(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				file := c.Args().First()
				width, height, err := size(c, cfg, file)
				if err != nil {
					return cli.Exit(err, 1)
				}

				output := c.String("output")
				if output == "" {
					output = file + ".png"
				}

				if err := rgb565.Convert(file, output, width, height, options(c, cfg)); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "encode",
			Usage:       "Convert a GIF, JPEG, or PNG image to a raw image",
			Description: "The raw image is named after the source with a WIDTHxHEIGHT extension.",
			ArgsUsage:   "FILE",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "dir",
					Usage: "output `DIRECTORY`, defaults to the directory of FILE",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				file := c.Args().First()
				dir := c.String("dir")
				if dir == "" {
					dir = filepath.Dir(file)
				}

				out, err := rgb565.Import(file, dir)
				if err != nil {
					return cli.Exit(err, 1)
				}

				newLogger(c).Printf("Wrote \"%s\"\n", out)

				return nil
			},
		},
		{
			Name:        "scan",
			Usage:       "Scan filesystem and render raw images",
			Description: "Every file with a WIDTHxHEIGHT extension is rendered to a PNG alongside it.",
			ArgsUsage:   "DIRECTORY",
			Flags:       renderFlags,
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				cfg, err := loadConfig(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				p, err := rgb565.New(c.String("db"), newLogger(c))
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer p.Close()

				if err := p.Scan(c.Args().First(), options(c, cfg)); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:  "list",
			Usage: "List rendered raw images",
			Action: func(c *cli.Context) error {
				p, err := rgb565.New(c.String("db"), newLogger(c))
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer p.Close()

				entries, err := p.List()
				if err != nil {
					return cli.Exit(err, 1)
				}

				for _, e := range entries {
					fmt.Fprintf(c.App.Writer, "%s\t%dx%d\t%s\t%s\n", e.Source, e.Width, e.Height, e.SHA1, e.Output)
				}

				return nil
			},
		},
		{
			Name:        "watch",
			Usage:       "Re-render a raw image as a PNG periodically",
			Description: "The PNG is only rewritten when the raw image changes and still decodes.",
			ArgsUsage:   "FILE",
			Flags: flags(sizeFlags, renderFlags, []cli.Flag{
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Usage:   "output `FILE`, defaults to FILE.png",
				},
				&cli.StringFlag{
					Name:  "interval",
					Usage: "update interval in `SECONDS`",
				},
			}),
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				cfg, err := loadConfig(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				file := c.Args().First()
				width, height, err := size(c, cfg, file)
				if err != nil {
					return cli.Exit(err, 1)
				}

				output := c.String("output")
				if output == "" {
					output = file + ".png"
				}

				logger := newLogger(c)
				p, err := rgb565.New("", logger)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer p.Close()

				ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
				defer stop()

				opts := options(c, cfg)
				err = p.Watch(ctx, file, width, height, cfg.ParseInterval(c.String("interval")), func(m *pixel.RGB) {
					if err := rgb565.WritePNGFile(output, m, file, opts); err != nil {
						logger.Printf("Cannot write \"%s\": %s\n", output, err)
					}
				})
				if err != nil && !errors.Is(err, context.Canceled) {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "serve",
			Usage:       "Preview a raw image in a browser",
			Description: "The image is re-rendered periodically and open pages reload it when it changes.",
			ArgsUsage:   "FILE",
			Flags: flags(sizeFlags, renderFlags, []cli.Flag{
				&cli.StringFlag{
					Name:  "listen",
					Usage: "listen on `ADDRESS`",
				},
				&cli.StringFlag{
					Name:  "interval",
					Usage: "update interval in `SECONDS`",
				},
			}),
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				cfg, err := loadConfig(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				file := c.Args().First()
				width, height, err := size(c, cfg, file)
				if err != nil {
					return cli.Exit(err, 1)
				}

				addr := c.String("listen")
				if addr == "" {
					addr = cfg.Listen
				}

				logger := newLogger(c)
				p, err := rgb565.New("", logger)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer p.Close()

				ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
				defer stop()

				s := preview.New(fmt.Sprintf("%s (%dx%d)", filepath.Base(file), width, height), logger)
				srv := &http.Server{
					Addr:    addr,
					Handler: s,
				}

				errc := make(chan error, 1)
				go func() {
					errc <- srv.ListenAndServe()
				}()
				logger.Printf("Serving \"%s\" on %s\n", file, addr)

				opts := options(c, cfg)
				go p.Watch(ctx, file, width, height, cfg.ParseInterval(c.String("interval")), func(m *pixel.RGB) {
					b := new(bytes.Buffer)
					if err := rgb565.WritePNG(b, m, file, opts); err != nil {
						logger.Printf("Cannot render \"%s\": %s\n", file, err)
						return
					}
					s.Update(b.Bytes())
				})

				select {
				case err := <-errc:
					return cli.Exit(err, 1)
				case <-ctx.Done():
				}

				if err := srv.Shutdown(context.Background()); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
