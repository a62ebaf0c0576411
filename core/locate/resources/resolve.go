package resources

import (
	"context"
	"fmt"
	"os"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/basicshape/core"
	"github.com/npillmayer/basicshape/core/font"
)

// FallbackName is the name under which ResolveFont delivers the
// packaged fallback font.
const FallbackName = "fallback"

// NotFound returns an application error for a missing font.
func NotFound(name string) error {
	e := fmt.Errorf("resource missing: %v", name)
	return core.WrapError(e, core.EMISSING, "font not found: %s", name)
}

type fontPlusErr struct {
	font *font.ScalableFont
	err  error
}

// FontPromise delivers a font once it has been loaded.
type FontPromise interface {
	Font() (*font.ScalableFont, error)
	Await(ctx context.Context) (*font.ScalableFont, error)
}

type fontLoader struct {
	await func(ctx context.Context) (*font.ScalableFont, error)
}

func (loader fontLoader) Font() (*font.ScalableFont, error) {
	return loader.await(context.Background())
}

func (loader fontLoader) Await(ctx context.Context) (*font.ScalableFont, error) {
	return loader.await(ctx)
}

// ResolveFont locates and loads a font. name may be a path to a font file
// or the file name of a system font, with or without extension.
// An empty name or FallbackName resolves to the packaged fallback font.
func ResolveFont(name string) FontPromise {
	ch := make(chan fontPlusErr, 1)
	go func(ch chan<- fontPlusErr) {
		ch <- locate(name)
		close(ch)
	}(ch)
	return fontLoader{
		await: func(ctx context.Context) (*font.ScalableFont, error) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case r := <-ch:
				return r.font, r.err
			}
		},
	}
}

func locate(name string) (result fontPlusErr) {
	if name == "" || name == FallbackName {
		result.font = font.FallbackFont()
		return
	}
	if fi, err := os.Stat(name); err == nil && !fi.IsDir() {
		tracer().Debugf("%s is a font file", name)
		result.font, result.err = font.LoadOpenTypeFont(name)
		return
	}
	fpath, err := findfont.Find(name) // try to find as system font
	if err != nil || fpath == "" {
		tracer().Infof("font %s not found: %v", name, err)
		result.err = NotFound(name)
		return
	}
	tracer().Debugf("%s is a system font at %s", name, fpath)
	result.font, result.err = font.LoadOpenTypeFont(fpath)
	return
}
