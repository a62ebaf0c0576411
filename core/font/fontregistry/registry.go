package fontregistry

import (
	"path"
	"strings"
	"sync"

	"github.com/npillmayer/basicshape/core"
	"github.com/npillmayer/basicshape/core/dimen"
	"github.com/npillmayer/basicshape/core/font"
	"github.com/npillmayer/basicshape/core/font/sfntset"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	xfont "golang.org/x/image/font"
)

// ReleaseHook is called for a font which is released from a registry.
type ReleaseHook func(font.Font)

// Registry is a type for holding information about loaded fonts for a
// shaper.
type Registry struct {
	sync.Mutex
	fonts    map[string]font.Font
	refs     map[font.Key]int // number of names a font is stored under
	hooks    []ReleaseHook
	fallback font.Font
}

// DefaultSize is the size of the fallback font.
const DefaultSize = 10 * dimen.BP

var globalFontRegistry *Registry

var globalRegistryCreation sync.Once

// GlobalRegistry is an application-wide singleton to hold information about
// loaded fonts.
func GlobalRegistry() *Registry {
	globalRegistryCreation.Do(func() {
		globalFontRegistry = NewRegistry()
	})
	return globalFontRegistry
}

func NewRegistry() *Registry {
	fr := &Registry{
		fonts: make(map[string]font.Font),
		refs:  make(map[font.Key]int),
	}
	return fr
}

// StoreFont pushes a font into the registry if it isn't contained yet.
//
// The font will be stored using the normalized font name as a key. If this
// key is already associated with a font, that font will not be overridden.
// A font may be stored under more than one name. Fonts without an identity
// (see font.KeyOf) are rejected.
func (fr *Registry) StoreFont(normalizedName string, f font.Font) error {
	key, err := font.KeyOf(f)
	if err != nil {
		tracer().Errorf("registry cannot store font: %v", err)
		return err
	}
	fr.Lock()
	defer fr.Unlock()
	if _, ok := fr.fonts[normalizedName]; !ok {
		tracer().Debugf("registry stores font as %s", normalizedName)
		fr.fonts[normalizedName] = f
		fr.refs[key]++
	}
	return nil
}

// Font returns the font stored under a normalized name.
//
// If no such font is present, Font returns a fallback font, together with an
// error of code EMISSING.
func (fr *Registry) Font(normalizedName string) (font.Font, error) {
	tracer().Debugf("registry searches for font %s", normalizedName)
	fr.Lock()
	defer fr.Unlock()
	if f, ok := fr.fonts[normalizedName]; ok {
		return f, nil
	}
	tracer().Infof("registry does not contain font %s", normalizedName)
	err := core.Error(core.EMISSING, "font %s not found in registry", normalizedName)
	if fr.fallback == nil {
		fr.fallback = sfntset.Fallback(DefaultSize)
		tracer().Infof("font registry caches fallback font at %s", DefaultSize)
	}
	return fr.fallback, err
}

// OnRelease installs a hook to be called whenever a font is released.
func (fr *Registry) OnRelease(hook ReleaseHook) {
	if hook == nil {
		return
	}
	fr.Lock()
	defer fr.Unlock()
	fr.hooks = append(fr.hooks, hook)
}

// Release removes a font name from the registry. If the font is not stored
// under any other name, the release hooks are called for it. Hooks run
// synchronously, outside of the registry's lock. Returns false if no font was
// stored under the name.
func (fr *Registry) Release(normalizedName string) bool {
	fr.Lock()
	f, ok := fr.fonts[normalizedName]
	if !ok {
		fr.Unlock()
		return false
	}
	delete(fr.fonts, normalizedName)
	key, _ := font.KeyOf(f) // stored fonts always have a key
	fr.refs[key]--
	last := fr.refs[key] == 0
	if last {
		delete(fr.refs, key)
	}
	hooks := make([]ReleaseHook, len(fr.hooks))
	copy(hooks, fr.hooks)
	fr.Unlock()
	//
	if last {
		tracer().Debugf("registry releases font %s", normalizedName)
		for _, hook := range hooks {
			hook(f)
		}
	}
	return true
}

// Names returns the names of all fonts stored in the registry, sorted.
func (fr *Registry) Names() []string {
	fr.Lock()
	names := maps.Keys(fr.fonts)
	fr.Unlock()
	slices.Sort(names)
	return names
}

// LogFontList is a helper function to dump the list of known fonts in a
// registry to the trace-file (log-level Info).
func (fr *Registry) LogFontList() {
	level := tracer().GetTraceLevel()
	tracer().SetTraceLevel(tracing.LevelInfo)
	tracer().Infof("--- registered fonts ---")
	fr.Lock()
	for k, v := range fr.fonts {
		key, _ := font.KeyOf(v)
		tracer().Infof("font [%s] = %T (%d names)", k, v, fr.refs[key])
	}
	fr.Unlock()
	tracer().Infof("------------------------")
	tracer().SetTraceLevel(level)
}

// NormalizeFontname creates a registry key from a font name, a style and a
// weight, e.g. "clarendon-italic-bold".
func NormalizeFontname(fname string, style xfont.Style, weight xfont.Weight) string {
	fname = strings.TrimSpace(fname)
	fname = strings.ReplaceAll(fname, " ", "_")
	if dot := strings.LastIndex(fname, "."); dot > 0 {
		fname = fname[:dot]
	}
	fname = strings.ToLower(fname)
	switch style {
	case xfont.StyleItalic, xfont.StyleOblique:
		fname += "-italic"
	}
	switch weight {
	case xfont.WeightLight, xfont.WeightExtraLight:
		fname += "-light"
	case xfont.WeightBold, xfont.WeightExtraBold, xfont.WeightSemiBold:
		fname += "-bold"
	}
	return fname
}

// GuessStyleAndWeight trys to guess a font's style and weight from the
// font's file name.
func GuessStyleAndWeight(fontfilename string) (xfont.Style, xfont.Weight) {
	fontfilename = path.Base(fontfilename)
	ext := path.Ext(fontfilename)
	fontfilename = strings.ToLower(fontfilename[:len(fontfilename)-len(ext)])
	s := strings.Split(fontfilename, "-")
	if len(s) > 1 {
		switch s[len(s)-1] {
		case "light", "xlight":
			return xfont.StyleNormal, xfont.WeightLight
		case "normal", "medium", "regular", "r":
			return xfont.StyleNormal, xfont.WeightNormal
		case "bold", "b":
			return xfont.StyleNormal, xfont.WeightBold
		case "xbold", "black":
			return xfont.StyleNormal, xfont.WeightExtraBold
		}
	}
	style, weight := xfont.StyleNormal, xfont.WeightNormal
	if strings.Contains(fontfilename, "italic") {
		style = xfont.StyleItalic
	}
	if strings.Contains(fontfilename, "light") {
		weight = xfont.WeightLight
	}
	if strings.Contains(fontfilename, "bold") {
		weight = xfont.WeightBold
	}
	return style, weight
}

// NameForFile derives a registry key from a font's file name.
func NameForFile(fontfilename string) string {
	style, weight := GuessStyleAndWeight(fontfilename)
	base := path.Base(fontfilename)
	base = strings.TrimSuffix(base, path.Ext(base))
	if dash := strings.LastIndex(base, "-"); dash > 0 {
		switch strings.ToLower(base[dash+1:]) {
		case "light", "xlight", "normal", "medium", "regular", "r", "bold", "b", "xbold", "black":
			base = base[:dash]
		}
	}
	return NormalizeFontname(base, style, weight)
}
