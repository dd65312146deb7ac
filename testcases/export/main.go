// Command export renders the drawing test cases and a depth fusion demo
// to PNG files.
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"maps"
	"math"
	"os"
	"path/filepath"
	"slices"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"golang.org/x/image/math/f32"

	"seehuhn.de/go/vision"
	"seehuhn.de/go/vision/testcases"
	"seehuhn.de/go/vision/volume"
)

func main() {
	app := cli.NewApp()
	app.Name = "export"
	app.Usage = "Render test cases to PNG files"
	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "Log progress to stderr",
		},
	}
	app.Before = func(c *cli.Context) error {
		if c.Bool("verbose") {
			h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
			vision.SetLogger(slog.New(h))
		}
		return nil
	}
	app.Commands = []*cli.Command{
		{
			Name:  "raster",
			Usage: "Render all drawing test cases",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "out",
					Value: "testdata/raster",
					Usage: "Output directory",
				},
			},
			Action: runRaster,
		},
		{
			Name:  "volume",
			Usage: "Fuse the semisphere scene and render the surface",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "out",
					Value: "testdata/volume",
					Usage: "Output directory",
				},
				&cli.StringFlag{
					Name:  "type",
					Value: volume.TSDF.String(),
					Usage: "Volume type: tsdf, hash_tsdf or color_tsdf",
				},
				&cli.StringFlag{
					Name:  "config",
					Usage: "YAML file with volume settings, overrides --type",
				},
				&cli.IntFlag{
					Name:  "frames",
					Value: 0,
					Usage: "Number of frames to integrate, 0 for the whole trajectory",
				},
				&cli.BoolFlag{
					Name:  "only-semisphere",
					Usage: "Remove the plane and the small sphere from the scene",
				},
			},
			Action: runVolume,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func runRaster(c *cli.Context) error {
	out := c.String("out")
	if err := os.MkdirAll(out, 0755); err != nil {
		return err
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			if err := writePNG(filepath.Join(out, name+".png"), tc.Render()); err != nil {
				return errors.Wrap(err, name)
			}
		}
	}
	return nil
}

func runVolume(c *cli.Context) error {
	settings, err := loadSettings(c)
	if err != nil {
		return err
	}
	v, err := volume.New(settings)
	if err != nil {
		return err
	}

	scene := &testcases.SemisphereScene{
		Width:          settings.IntegrateWidth,
		Height:         settings.IntegrateHeight,
		Intrinsics:     settings.IntegrateIntrinsics,
		DepthFactor:    settings.DepthFactor,
		OnlySemisphere: c.Bool("only-semisphere"),
	}
	poses := scene.Poses()
	if n := c.Int("frames"); n > 0 && n < len(poses) {
		poses = poses[:n]
	}

	for i, pose := range poses {
		depth := scene.Depth(pose)
		var err error
		if settings.Type == volume.ColorTSDF {
			err = v.IntegrateColor(depth, scene.RGB(pose), pose)
		} else {
			err = v.Integrate(depth, pose)
		}
		if err != nil {
			return errors.Wrapf(err, "frame %d", i)
		}
	}

	out := c.String("out")
	if err := os.MkdirAll(out, 0755); err != nil {
		return err
	}
	last := poses[len(poses)-1]
	if err := writePNG(filepath.Join(out, "depth.png"), depthImage(scene.Depth(last))); err != nil {
		return err
	}
	frame := v.Raycast(last)
	if err := writePNG(filepath.Join(out, "shaded.png"), shade(frame)); err != nil {
		return err
	}
	if frame.Colors != nil {
		if err := writePNG(filepath.Join(out, "colors.png"), colorImage(frame)); err != nil {
			return err
		}
	}

	points, _ := v.FetchPointsNormals()
	vision.Logger().Info("volume exported",
		"frames", v.IntegratedFrames(), "points", len(points),
		"units", v.TotalVolumeUnits(), "visible_blocks", v.VisibleBlocks())
	return nil
}

func loadSettings(c *cli.Context) (volume.Settings, error) {
	if name := c.String("config"); name != "" {
		f, err := os.Open(name)
		if err != nil {
			return volume.Settings{}, err
		}
		defer f.Close()
		return volume.LoadSettings(f)
	}

	t, err := volume.ParseType(c.String("type"))
	if err != nil {
		return volume.Settings{}, err
	}
	return volume.DefaultSettings(t), nil
}

// depthImage converts raw depth values into a 16 bit image.
func depthImage(d *volume.Depth) *image.Gray16 {
	img := image.NewGray16(image.Rect(0, 0, d.Width, d.Height))
	for y := range d.Height {
		for x := range d.Width {
			v := min(max(d.At(x, y), 0), math.MaxUint16)
			img.SetGray16(x, y, color.Gray16{Y: uint16(v)})
		}
	}
	return img
}

// shade renders the raycast normals with a light at the camera.
func shade(f *volume.Frame) *image.Gray {
	w, h := f.Points.Width, f.Points.Height
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			p, n := f.Points.At(x, y), f.Normals.At(x, y)
			if !volume.Valid(p) || !volume.Valid(n) {
				continue
			}
			l := f32.Vec3{-p[0], -p[1], -p[2]}
			ll := float32(math.Sqrt(float64(l[0]*l[0] + l[1]*l[1] + l[2]*l[2])))
			diffuse := (n[0]*l[0] + n[1]*l[1] + n[2]*l[2]) / ll
			img.SetGray(x, y, color.Gray{Y: uint8(255 * min(max(diffuse, 0.1), 1))})
		}
	}
	return img
}

func colorImage(f *volume.Frame) *image.RGBA {
	w, h := f.Colors.Width, f.Colors.Height
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			c := f.Colors.At(x, y)
			if math.IsNaN(float64(c[0])) {
				continue
			}
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(min(c[0], 255)),
				G: uint8(min(c[1], 255)),
				B: uint8(min(c[2], 255)),
				A: 255,
			})
		}
	}
	return img
}

func writePNG(name string, img image.Image) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return png.Encode(f, img)
}
