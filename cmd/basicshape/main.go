/*
Command basicshape shapes text with the basic shaper and prints the
resulting glyphs.

Usage:

	basicshape [flags] text…

Flags:

	-font      OpenType/TrueType font file or system font name (default: Go Regular)
	-charset   comma separated list of XLFD charsets to register the font for
	-size      font size, e.g. 12pt
	-cells     use a character-cell font instead of an OpenType font
	-trace     trace level [Debug|Info|Error]
	-coverage  print the characters of the BMP the font covers
	-center    center zero-width combining marks
	-i         interactive mode

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/basicshape/core"
	"github.com/npillmayer/basicshape/core/dimen"
	"github.com/npillmayer/basicshape/core/font"
	"github.com/npillmayer/basicshape/core/font/cellfont"
	"github.com/npillmayer/basicshape/core/font/fontregistry"
	"github.com/npillmayer/basicshape/core/font/sfntset"
	"github.com/npillmayer/basicshape/core/locate/resources"
	"github.com/npillmayer/basicshape/engine/glyphing/basic"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
	"golang.org/x/term"
	"golang.org/x/text/language"
)

// tracer traces with key 'basicshape.cli'
func tracer() tracing.Trace {
	return tracing.Select("basicshape.cli")
}

func main() {
	initDisplay()

	// command line flags
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	fontfile := flag.String("font", "", "Font file or system font to load")
	charsets := flag.String("charset", "iso10646-1", "Charsets to register the font for (XLFD, comma separated)")
	size := flag.String("size", "12pt", "Font size")
	lang := flag.String("lang", "und", "Language of the text (BCP 47)")
	cells := flag.Bool("cells", false, "Use a character-cell font")
	coverage := flag.Bool("coverage", false, "Print coverage of the font")
	center := flag.Bool("center", true, "Center zero-width combining marks")
	interactive := flag.Bool("i", false, "Interactive mode")
	flag.Parse()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":          "go",
		"trace.basicshape.cli":     *tlevel,
		"trace.basicshape.charset": *tlevel,
		"trace.basicshape.fonts":   *tlevel,
		"trace.basicshape.glyphs":  *tlevel,
		basic.ConfigCenterMarks:    *center,
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	tracer().Infof("Trace level is %s", *tlevel)
	//
	pt, _, err := dimen.ParseDimen(*size)
	if err != nil {
		pterm.Error.Printfln("invalid font size %q: %v", *size, err)
		os.Exit(2)
	}
	tag, err := language.Parse(*lang)
	if err != nil {
		pterm.Error.Printfln("invalid language %q: %v", *lang, err)
		os.Exit(2)
	}
	//
	// load font to use and register it
	intp := &Intp{
		engine:   basic.New(basic.WithConfiguration(conf)),
		registry: fontregistry.GlobalRegistry(),
		lang:     tag,
	}
	intp.engine.AttachTo(intp.registry)
	if *cells {
		intp.useCellFont(pt)
	} else if err := intp.loadFont(*fontfile, strings.Split(*charsets, ","), pt); err != nil {
		reportError(err)
		os.Exit(4)
	}
	defer intp.registry.Release(intp.fontname)
	//
	if *coverage {
		intp.printCoverage()
	}
	for _, text := range flag.Args() {
		if err := intp.shape(text); err != nil {
			reportError(err)
		}
	}
	if !*interactive {
		return
	}
	//
	// set up REPL
	repl, err := readline.New("shape > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	defer repl.Close()
	intp.repl = repl
	pterm.Info.Println("Welcome to the basic shaper CLI")
	pterm.Info.Println("Quit with <ctrl>D")
	intp.REPL()
}

// reportError logs err in full and shows its user message.
func reportError(err error) {
	tracer().Errorf("%v", err)
	pterm.Error.Println(core.UserMessage(err))
}

// We use pterm for moderately fancy output. Styling is switched off if
// output is redirected.
func initDisplay() {
	pterm.EnableDebugMessages()
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		pterm.DisableStyling()
	}
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	engine   *basic.Engine
	registry *fontregistry.Registry
	font     font.Font
	fontname string
	lang     language.Tag
	repl     *readline.Instance
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if quit := intp.execute(line); quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

// execute runs a command (prefixed by ':') or shapes a line of text.
func (intp *Intp) execute(line string) (quit bool) {
	if !strings.HasPrefix(line, ":") {
		if err := intp.shape(line); err != nil {
			reportError(err)
		}
		return false
	}
	cmd := strings.Fields(line[1:])
	if len(cmd) == 0 {
		help()
		return false
	}
	tracer().Infof("command = %v", cmd)
	switch strings.ToLower(cmd[0]) {
	case "quit", "q":
		return true
	case "coverage":
		intp.printCoverage()
	case "charsets":
		printCharsets()
	case "lang":
		if len(cmd) < 2 {
			pterm.Printfln("language is %s", intp.lang)
		} else if tag, err := language.Parse(cmd[1]); err != nil {
			pterm.Error.Printfln("invalid language %q", cmd[1])
		} else {
			intp.lang = tag
		}
	default:
		help()
	}
	return false
}

func (intp *Intp) loadFont(fontname string, charsets []string, size dimen.Dimen) error {
	f, err := resources.ResolveFont(fontname).Font()
	if err != nil {
		if core.Code(err) == core.EINTERNAL {
			err = core.WrapError(err, core.EINVALID, "cannot load font %s", fontname)
		}
		return err
	}
	intp.fontname = resources.FallbackName
	if fontname != "" {
		intp.fontname = fontregistry.NameForFile(fontname)
	}
	tracer().Infof("loaded SFNT font = %s", f.Fontname)
	set := sfntset.New(f.Fontname, size)
	for _, cs := range charsets {
		if _, err := set.Add(f, strings.TrimSpace(cs)); err != nil {
			return err
		}
	}
	intp.font = set
	if err := intp.registry.StoreFont(intp.fontname, intp.font); err != nil {
		return err
	}
	pterm.Info.Printfln("font %s at %.1fbp as %s for %v", f.Fontname, size.Points(), intp.fontname, charsets)
	return nil
}

// useCellFont sets up a character-cell font with cells half as wide as
// the font size.
func (intp *Intp) useCellFont(size dimen.Dimen) {
	intp.fontname = "cells"
	intp.font = cellfont.New(size/2, nil)
	intp.registry.StoreFont(intp.fontname, intp.font)
	pterm.Info.Printfln("cell font with %.1fbp cells", (size / 2).Points())
}

func (intp *Intp) shape(text string) error {
	table, err := shapeTable(intp.engine, intp.font, []byte(text), intp.lang)
	if err != nil {
		return err
	}
	return pterm.DefaultTable.WithHasHeader().WithData(table).Render()
}

func (intp *Intp) printCoverage() {
	cov := intp.engine.Coverage(intp.font, intp.lang)
	for _, r := range coverageLines(cov) {
		pterm.Println(r)
	}
}

func printCharsets() {
	data := pterm.TableData{{"index", "XLFD", "encoding", "kind"}}
	for _, cs := range charsetRows() {
		data = append(data, cs)
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func help() {
	pterm.Info.Println("Commands")
	pterm.Println(`
	<text>          shape text and print glyphs
	:coverage       print the characters covered by the font
	:charsets       list the charsets known to the shaper
	:lang <tag>     set the language of the text
	:quit           leave
	`)
}
