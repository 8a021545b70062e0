// Command focalstat computes a focal statistic over a TIFF grid and writes
// the result as a 16-bit TIFF.
//
// Usage:
//
//	focalstat -in dem.tif -out std.tif -size 5 -stat std -workers 8
//	focalstat -in dem.tif -config focal.json -plan
//
// Flags given on the command line override values from -config.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/gogpu/focal"
	"github.com/gogpu/focal/gridio"
)

func main() {
	var (
		in           = flag.String("in", "", "input TIFF grid")
		out          = flag.String("out", "focal.tif", "output TIFF file")
		configPath   = flag.String("config", "", "JSON config file")
		size         = flag.Int("size", 3, "neighborhood size (odd)")
		tile         = flag.Int("tile", 0, "square tile edge; 0 uses the source block")
		block        = flag.Int("block", 0, "native block edge reported by the source; 0 for none")
		workers      = flag.Int("workers", 1, "workers: <1 whole grid, 1 sequential tiles, >1 chunk-parallel")
		stat         = flag.String("stat", "std", "statistic: mean, variance, std, min, max, range")
		nodata       = flag.Float64("nodata", 0, "no-data sentinel of the input")
		nodataOffset = flag.Float64("nodata-offset", 1, "treat values <= nodata+offset as missing")
		ignoreNaN    = flag.Bool("ignore-nan", false, "reduce over valid cells instead of propagating missing ones")
		planOnly     = flag.Bool("plan", false, "print the tile plan and exit")
		verbose      = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	focal.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if *in == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := focal.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = focal.LoadConfig(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	var flagErr error
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "size":
			cfg.Size = *size
		case "tile":
			cfg.TileWidth, cfg.TileHeight = *tile, *tile
		case "workers":
			cfg.Workers = *workers
		case "stat":
			r, err := focal.ParseReducer(*stat)
			if err != nil {
				flagErr = err
			}
			cfg.Reducer = r
		case "nodata-offset":
			cfg.NoDataOffset = *nodataOffset
		case "ignore-nan":
			cfg.IgnoreNaN = *ignoreNaN
		}
	})
	if flagErr != nil {
		log.Fatalf("Invalid flag: %v", flagErr)
	}

	src, err := gridio.ReadTIFFFile(*in)
	if err != nil {
		log.Fatalf("Failed to read input: %v", err)
	}
	if isSet("nodata") {
		src.SetNoData(*nodata)
	}
	if *block > 0 {
		src.SetBlockSize(*block, *block)
	}

	dst := gridio.NewMemGridLike(src.Descriptor())
	eng, err := focal.New(src, dst, focal.WithConfig(cfg), focal.WithProgress(focal.TextProgress(os.Stderr)))
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if *planOnly {
		if err := printPlan(eng); err != nil {
			log.Fatalf("Failed to plan: %v", err)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := eng.Run(ctx)
	if err != nil {
		log.Fatalf("Run failed: %v", err)
	}

	scale, err := gridio.WriteTIFFFile(*out, dst.Array())
	if err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	log.Printf("%s saved to %s (%d tiles, %s, %v); value = %g + (sample-1) * %g / 65534\n",
		cfg.Reducer, *out, res.Tiles, res.Mode, res.Elapsed, scale.Min, scale.Max-scale.Min)
}

func isSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func printPlan(eng *focal.Engine) error {
	tiles, err := eng.Plan()
	if err != nil {
		return err
	}

	g := eng.Grid()
	w, h := eng.TileSize()
	fmt.Printf("grid %dx%d, tiles %dx%d, %s, %d tiles\n", g.Width, g.Height, w, h, eng.Mode(), len(tiles))

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TILE\tWRITE\tREAD\tMARGINS (L R T B)")
	for _, t := range tiles {
		m := t.Margins
		fmt.Fprintf(tw, "%d\t%v\t%v\t%d %d %d %d\n", t.Index, t.Write, t.Read, m.Left, m.Right, m.Top, m.Bottom)
	}
	return tw.Flush()
}
