package benchplot

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

var imageFormats = NewStringSetFrom([]string{
	"png", "jpg", "jpeg", "tif", "tiff", "svg", "pdf", "eps",
})

// WriteImage encodes p in format (png, jpg, jpeg, tif, tiff, svg, pdf,
// eps) to w. Raster formats are rendered at th.DPI; a nil th means
// DefaultTheme.
func WriteImage(p *plot.Plot, w io.Writer, format string, th *Theme) error {
	if th == nil {
		th = &DefaultTheme
	}
	format = strings.ToLower(format)

	var raster func(*vgimg.Canvas) io.WriterTo
	switch format {
	case "png":
		raster = func(c *vgimg.Canvas) io.WriterTo { return vgimg.PngCanvas{Canvas: c} }
	case "jpg", "jpeg":
		raster = func(c *vgimg.Canvas) io.WriterTo { return vgimg.JpegCanvas{Canvas: c} }
	case "tif", "tiff":
		raster = func(c *vgimg.Canvas) io.WriterTo { return vgimg.TiffCanvas{Canvas: c} }
	}

	if raster != nil {
		dpi := th.DPI
		if dpi <= 0 {
			dpi = vgimg.DefaultDPI
		}
		c := vgimg.NewWith(vgimg.UseWH(th.Width, th.Height), vgimg.UseDPI(dpi))
		p.Draw(draw.New(c))
		_, err := raster(c).WriteTo(w)
		return err
	}

	wt, err := p.WriterTo(th.Width, th.Height, format)
	if err != nil {
		return fmt.Errorf("image format %q: %w", format, err)
	}
	_, err = wt.WriteTo(w)
	return err
}

// Save writes p to path in the format given by its extension, creating
// missing directories. Errors of the file system are returned as is.
func Save(p *plot.Plot, path string, th *Theme) error {
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if format == "" {
		return fmt.Errorf("save %s: no file extension to choose image format", path)
	}
	if !imageFormats.Contains(format) {
		return fmt.Errorf("save %s: unsupported image format %q", path, format)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteImage(p, f, format, th); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	debugf(logrus.Fields{"path": path}, "saved chart")
	return nil
}
