package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/nfnt/resize"
	"github.com/pkg/errors"

	"github.com/juruen/digitpad/classifier"
	"github.com/juruen/digitpad/downsample"
	"github.com/juruen/digitpad/raster"
	"github.com/juruen/digitpad/sample"
	"github.com/juruen/digitpad/surface"
)

func main() {
	inputName := flag.String("i", "", "image to encode (png or jpeg)")
	outputName := flag.String("o", "", "output file, stdout when empty")
	filterName := flag.String("f", downsample.DefaultFilter, "resampling filter")
	submitURL := flag.String("submit", "", "classifier url; prints the predicted digit instead of the sample")
	flag.Parse()

	if err := run(*inputName, *outputName, *filterName, *submitURL); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(inputName, outputName, filterName, submitURL string) error {
	if inputName == "" {
		return errors.New("missing input file")
	}

	s, err := encodeFile(inputName, filterName)
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if outputName != "" {
		f, err := os.Create(outputName)
		if err != nil {
			return errors.Wrap(err, "can't create outputfile")
		}
		defer f.Close()
		out = f
	}

	if submitURL != "" {
		client, err := classifier.NewClient(submitURL)
		if err != nil {
			return err
		}
		digit, err := client.Classify(context.Background(), s)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, digit)
		return err
	}

	return json.NewEncoder(out).Encode(s)
}

func encodeFile(inputName, filterName string) (sample.Sample, error) {
	filter, err := downsample.ParseFilter(filterName)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(inputName)
	if err != nil {
		return nil, errors.Wrap(err, "can't open file")
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, errors.Wrapf(err, "can't decode %s", inputName)
	}

	d := downsample.New(filter)
	d.Resample(onSurface(inkRaster(img), filter))
	return sample.Encode(d.Raster())
}

// onSurface scales r to the size of a drawing surface so files go through
// the same reduction as drawings do.
func onSurface(r *raster.Raster, filter resize.InterpolationFunction) *raster.Raster {
	if r.Width() == surface.DefaultWidth && r.Height() == surface.DefaultHeight {
		return r
	}
	return raster.FromImage(resize.Resize(surface.DefaultWidth, surface.DefaultHeight, r.Image(), filter))
}

// inkRaster takes ink from the alpha channel of drawings with
// transparency. Opaque images are treated as dark ink on a light
// background.
func inkRaster(img image.Image) *raster.Raster {
	r := raster.FromImage(img)
	if !opaque(r) {
		return r
	}

	b := img.Bounds()
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			g := color.GrayModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray)
			r.Set(x, y, 255-g.Y)
		}
	}
	return r
}

func opaque(r *raster.Raster) bool {
	for _, v := range r.Image().Pix {
		if v != 255 {
			return false
		}
	}
	return true
}
