package gui

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"sync"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/memtree/internal/scene"
	"github.com/san-kum/memtree/internal/upload"
)

type decoded struct {
	img  image.Image
	raw  []byte // set when Go cannot decode the format; raylib gets a try
	mime string
	err  error
	done func(scene.Texture, error)
}

// Loader decodes images on goroutines and uploads them on the frame thread
// in Drain.
type Loader struct {
	results chan decoded
	quit    chan struct{}
	once    sync.Once
}

func NewLoader() *Loader {
	return &Loader{results: make(chan decoded, 64), quit: make(chan struct{})}
}

func (l *Loader) Load(url string, done func(scene.Texture, error)) {
	go func() {
		res := decode(url)
		res.done = done
		select {
		case l.results <- res:
		case <-l.quit:
		}
	}()
}

func decode(url string) decoded {
	mime, data, err := upload.Open(url)
	if err != nil {
		return decoded{err: err}
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return decoded{raw: data, mime: mime}
	}
	return decoded{img: img, mime: mime}
}

// Drain uploads up to max finished images and hands them to their
// callbacks. It must run on the window thread.
func (l *Loader) Drain(max int) int {
	n := 0
	for n < max {
		select {
		case res := <-l.results:
			res.done(toTexture(res))
			n++
		default:
			return n
		}
	}
	return n
}

func toTexture(res decoded) (scene.Texture, error) {
	if res.err != nil {
		return nil, res.err
	}
	var img *rl.Image
	if res.img != nil {
		img = rl.NewImageFromImage(res.img)
	} else {
		img = rl.LoadImageFromMemory(upload.Extension(res.mime), res.raw, int32(len(res.raw)))
	}
	if img == nil || img.Width == 0 {
		return nil, upload.ErrNotImage
	}
	tex := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	rl.SetTextureFilter(tex, rl.FilterBilinear)
	return &rlTexture{tex: tex}, nil
}

// Close abandons pending loads; their callbacks never run.
func (l *Loader) Close() {
	l.once.Do(func() { close(l.quit) })
	for {
		select {
		case <-l.results:
		default:
			return
		}
	}
}
