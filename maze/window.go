package maze

import (
	"image"
	"image/color"
	"image/draw"
	"log"
	"sync"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
)

// Window shows a Grid as it is being explored.
type Window struct {
	title string
	scale int
	frame chan *image.RGBA

	buf screen.Buffer
	tex screen.Texture
}

// NewWindow returns a Window that draws every location as a block of
// scale×scale pixels. Run opens it.
func NewWindow(title string, scale int) *Window {
	return &Window{
		title: title,
		scale: scale,
		frame: make(chan *image.RGBA, 1),
	}
}

// Show queues a rendering of g for display, replacing any rendering not
// yet drawn. It must be called from a single goroutine.
func (w *Window) Show(g *Grid) {
	img := Image(g, w.scale)
	select {
	case <-w.frame:
	default:
	}
	w.frame <- img
}

// Run drives the window until it is closed, Escape is pressed, or exit is
// closed. It must be called from the main goroutine.
func (w *Window) Run(exit <-chan bool) (err error) {
	driver.Main(func(s screen.Screen) {
		win, e := s.NewWindow(&screen.NewWindowOptions{Title: w.title, Width: 640, Height: 640})
		if e != nil {
			err = e
			return
		}
		defer win.Release()
		defer w.release()

		// send delivers e unless the window has been released.
		var (
			mu   sync.Mutex
			dead bool
		)
		send := func(e interface{}) bool {
			mu.Lock()
			defer mu.Unlock()
			if !dead {
				win.Send(e)
			}
			return !dead
		}
		defer func() {
			mu.Lock()
			dead = true
			mu.Unlock()
		}()

		type update struct{}
		go func() {
			t := time.NewTicker(time.Second / 30)
			defer t.Stop()
			for {
				select {
				case <-t.C:
					if !send(update{}) {
						return
					}
				case <-exit:
					// Wake the event loop so it sees exit.
					send(update{})
					return
				}
			}
		}()

		var (
			sz    size.Event
			dirty bool
		)
		for {
			e := win.NextEvent()

			select {
			case <-exit:
				return
			default:
			}

			switch e := e.(type) {
			case size.Event:
				sz = e
				if sz.WidthPx+sz.HeightPx == 0 {
					return
				}
				dirty = true

			case lifecycle.Event:
				if e.To == lifecycle.StageDead {
					return
				}

			case key.Event:
				if e.Code == key.CodeEscape && e.Direction == key.DirPress {
					return
				}

			case paint.Event:
				dirty = true

			case update:
				select {
				case img := <-w.frame:
					if err := w.upload(s, img); err != nil {
						log.Printf("maze window: %v", err)
						break
					}
					dirty = true
				default:
				}
				if dirty && w.tex != nil {
					win.Fill(sz.Bounds(), color.Black, draw.Src)
					win.Scale(fit(sz.Bounds(), w.tex.Size()), w.tex, w.tex.Bounds(), draw.Src, nil)
					win.Publish()
					dirty = false
				}

			case error:
				log.Print(e)
			}
		}
	})
	return err
}

func (w *Window) upload(s screen.Screen, img *image.RGBA) (err error) {
	sz := img.Bounds().Size()
	if w.tex == nil || w.tex.Size() != sz {
		w.release()
		w.buf, err = s.NewBuffer(sz)
		if err != nil {
			return
		}
		w.tex, err = s.NewTexture(sz)
		if err != nil {
			return
		}
	}
	draw.Draw(w.buf.RGBA(), w.buf.Bounds(), img, img.Bounds().Min, draw.Src)
	w.tex.Upload(image.Point{}, w.buf, w.buf.Bounds())
	return nil
}

func (w *Window) release() {
	if w.tex != nil {
		w.tex.Release()
		w.tex = nil
	}
	if w.buf != nil {
		w.buf.Release()
		w.buf = nil
	}
}

// fit returns the largest rectangle with the proportions of src that fits
// centred in dst.
func fit(dst image.Rectangle, src image.Point) image.Rectangle {
	if src.X == 0 || src.Y == 0 {
		return dst
	}
	w, h := dst.Dx(), dst.Dy()
	if w*src.Y > h*src.X {
		w = h * src.X / src.Y
	} else {
		h = w * src.Y / src.X
	}
	min := dst.Min.Add(image.Pt((dst.Dx()-w)/2, (dst.Dy()-h)/2))
	return image.Rectangle{Min: min, Max: min.Add(image.Pt(w, h))}
}
