// This file is part of the program "dragkern".
// Please see the LICENSE file for copyright information.

package main

import (
	"image"
	"io"
	"log"
	"os"
	"time"

	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/aarzilli/nucular"
	"github.com/aarzilli/nucular/font"
	"github.com/aarzilli/nucular/style"

	"dragkern/tool"
)

var appName = "dragkern"

var version = "unknown" // will be changed by build

func main() {
	opt := parseCLIOpts()

	if opt.doLog {
		log.SetOutput(os.Stdout)
	} else {
		log.SetOutput(io.Discard)
	}
	log.Printf("Application starting. Version: %s\n", version)

	initializeConfigIfNot()

	ctx := dkcontext{}
	ctx.config = readConfig()
	applyCLIOpts(opt, ctx.config)

	data, err := fontData(ctx.config.FontPath)
	if err != nil {
		log.Fatalf("Couldn't read font: %v\n", err)
	}
	ctx.doc, err = loadDocument(data, ctx.config.Masters)
	if err != nil {
		log.Fatalf("Couldn't load font: %v\n", err)
	}

	doCLI(opt, ctx.doc, ctx.config)

	ctx.renderer = newRenderer(ctx.doc.font)
	ctx.view = newEditView(ctx.doc)
	setZoom(&ctx, ctx.config.Zoom)
	ctx.tool = newTool(ctx.view, ctx.config)

	resetUI(&ctx)

	wnd := nucular.NewMasterWindowSize(0, appName, image.Point{900, 600}, func(w *nucular.Window) {
		updatefn(&ctx, w)
	})

	ctx.masterWindow = &wnd
	ctx.view.redraw = func() { (*ctx.masterWindow).Changed() }
	(*ctx.masterWindow).Changed()

	style := style.FromTheme(style.DarkTheme, 2.0)
	style.Font = font.DefaultFont(16, 1)
	wnd.SetStyle(style)

	//this is a disgusting hack that searches for the dragkern window
	//and then fixes up the WM_CLASS attribute so it displays
	//properly in the taskbar
	go fixWindowClass()
	wnd.Main()

	ctx.tool.Deactivate()
	saveConfig(ctx.config)
	waitSaves()
}

func newTool(h tool.Host, conf *config) *tool.Tool {
	t := tool.New(h, prefs{conf})
	t.Log = log.Default()
	t.Tolerance = float64(conf.Tolerance)
	t.LiveUpdate = conf.LiveUpdate
	t.Configure(conf.FineFactor, float64(conf.SnapStep))
	t.Activate()
	return t
}

// this is disgusting
func fixWindowClass() {
	xu, err := xgbutil.NewConn()
	if err != nil {
		log.Printf("Couldn't create XU xdg conn: %+v\n", err)
		return
	}
	defer xu.Conn().Close()
	for i := 0; i < 100; i++ {
		wnds, _ := ewmh.ClientListGet(xu)
		for _, w := range wnds {
			n, _ := ewmh.WmNameGet(xu, w)
			if n == appName {
				_, err := icccm.WmClassGet(xu, w)
				//if we have *NO* WM_CLASS, then the above call errors. We *want* to make sure this errors
				if err == nil {
					continue
				}

				class := icccm.WmClass{}
				class.Class = appName
				class.Instance = appName
				icccm.WmClassSet(xu, w, &class)
				return
			}

		}
		time.Sleep(100 * time.Millisecond)
	}

}
