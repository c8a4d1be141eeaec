// Command ecelgamal demonstrates arithmetic on Weierstrass curves and ElGamal encryption
// over their group of points.
//
//	ecelgamal points --count 20
//	ecelgamal order --method bsgs
//	ecelgamal --config testdata/secp256k1.toml roundtrip
//	ecelgamal selftest --iterations 256
package main

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli"
)

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		log.Logger = newLogger(os.Stderr, false, false)
		log.Error().Err(err).Msg("ecelgamal failed")
		os.Exit(1)
	}
}

// env is the state shared by the commands, set up before any of them runs.
type env struct {
	log zerolog.Logger
	cfg *Config
}

func newApp() *cli.App {
	e := &env{log: zerolog.Nop()}

	app := cli.NewApp()
	app.Name = "ecelgamal"
	app.Usage = "Weierstrass curve arithmetic and curve ElGamal encryption"
	app.Version = "0.1"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Usage: "TOML file with the curve, generator and ElGamal values",
		},
		cli.BoolFlag{
			Name:  "debug, d",
			Usage: "log at debug level",
		},
		cli.BoolFlag{
			Name:  "json",
			Usage: "log JSON lines instead of console output",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:   "points",
			Usage:  "print the first multiples of the generator and count the distinct ones",
			Action: e.points,
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "count, n",
					Value: defaultPointCount,
					Usage: "number of multiples to print",
				},
			},
		},
		{
			Name:   "order",
			Usage:  "compute the order of the generator",
			Action: e.order,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "method, m",
					Value: methodBSGS,
					Usage: "brute or bsgs",
				},
			},
		},
		{
			Name:    "roundtrip",
			Aliases: []string{"rt"},
			Usage:   "encrypt the configured message and decrypt it again",
			Action:  e.roundtrip,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "k",
					Usage: "ephemeral scalar, drawn at random when empty",
				},
				cli.StringFlag{
					Name:  "seed",
					Usage: "derive the randomness from this seed, for reproducible demonstrations only",
				},
			},
		},
		{
			Name:   "selftest",
			Usage:  "check the group laws on random multiples of the generator",
			Action: e.selftest,
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "iterations, i",
					Value: 128,
					Usage: "number of random triples to check",
				},
				cli.IntFlag{
					Name:  "workers, w",
					Usage: "number of parallel workers, 0 for one per CPU",
				},
				cli.StringFlag{
					Name:  "seed",
					Usage: "derive the randomness from this seed",
				},
			},
		},
	}
	app.Before = func(c *cli.Context) error {
		e.log = newLogger(c.App.ErrWriter, c.GlobalBool("debug"), c.GlobalBool("json"))
		cfg, err := LoadConfig(c.GlobalString("config"))
		if err != nil {
			return err
		}
		e.cfg = cfg
		return nil
	}
	return app
}

func newLogger(w io.Writer, debug, json bool) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	if !json {
		w = zerolog.ConsoleWriter{Out: w, NoColor: true}
	}
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
