package main

import (
	"fmt"
	"image/color"
	"io/fs"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/olivierh59500/glowboard/internal/background"
	"github.com/olivierh59500/glowboard/internal/chart"
	"github.com/olivierh59500/glowboard/internal/config"
	"github.com/olivierh59500/glowboard/internal/host"
)

// Dashboard constants
const (
	ChartFPS   = 20 // Chart re-renders per second while animating
	LineHeight = 16 // Debug font line advance
	PanelWidth = 300
	TableRows  = 24 // Rows listed in the table view
	MarginLeft = 24
	MarginTop  = 24
)

type screenMode int

const (
	heroScreen screenMode = iota
	dashboardScreen
)

type viewTab int

const (
	chartTab viewTab = iota
	tableTab
)

// Dashboard is the ebiten game: particle background, hero page and chart dashboard
type Dashboard struct {
	cfg    config.Config
	host   *host.Host
	driver *background.Driver
	board  *board

	mode      screenMode
	tab       viewTab
	showPanel bool

	chartImg  *ebiten.Image
	chartTick int

	editor cellEditor
	runes  []rune
}

// NewDashboard wires the background driver to the window and loads the built-in tables
func NewDashboard(cfg config.Config, b *board) *Dashboard {
	h := host.New(cfg.Window.Width, cfg.Window.Height, cfg.BackdropColor())
	pointer := background.NewPointer(0, 0)
	return &Dashboard{
		cfg:       cfg,
		host:      h,
		driver:    background.NewDriver(cfg.BackgroundOptions(), h, h, pointer),
		board:     b,
		showPanel: true,
	}
}

// Update is called each tick by Ebitengine
func (d *Dashboard) Update() error {
	d.syncLifecycle()
	d.host.Poll()
	d.handleInput()
	d.handleDrops()

	d.chartTick++
	if d.chartTick%max(d.cfg.Window.TPS/ChartFPS, 1) == 0 {
		d.board.step()
	}
	return nil
}

// syncLifecycle runs the background only while the window has focus
func (d *Dashboard) syncLifecycle() {
	focused := ebiten.IsFocused()
	running := d.driver.State() == background.Running
	switch {
	case focused && !running:
		if err := d.driver.Start(d.host.Screen()); err != nil {
			log.Printf("start background: %v", err)
		}
	case !focused && running:
		d.driver.Stop()
	}
}

// Stop halts the background loop; call after RunGame returns
func (d *Dashboard) Stop() {
	d.driver.Stop()
}

// Draw is called each frame by Ebitengine
func (d *Dashboard) Draw(screen *ebiten.Image) {
	d.host.Draw(screen)

	switch d.mode {
	case heroScreen:
		d.drawHero(screen)
	case dashboardScreen:
		d.drawDashboard(screen)
	}
}

// Layout returns the screen size
func (d *Dashboard) Layout(outsideWidth, outsideHeight int) (int, int) {
	return d.host.Layout(outsideWidth, outsideHeight)
}

// handleInput processes keyboard input
func (d *Dashboard) handleInput() {
	if d.editor.editing {
		d.handleEditInput()
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		if d.mode == heroScreen {
			d.mode = dashboardScreen
		} else {
			d.mode = heroScreen
		}
	}
	if d.mode != dashboardScreen {
		return
	}

	b := d.board
	for i, k := range []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5, ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9} {
		if inpututil.IsKeyJustPressed(k) {
			b.selectDataset(i)
		}
	}
	for i, k := range []ebiten.Key{ebiten.KeyF1, ebiten.KeyF2, ebiten.KeyF3, ebiten.KeyF4, ebiten.KeyF5, ebiten.KeyF6, ebiten.KeyF7, ebiten.KeyF8, ebiten.KeyF9} {
		if inpututil.IsKeyJustPressed(k) {
			b.toggleY(i)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		b.cycleType()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyX) {
		b.nextX()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyA) {
		b.toggleAnimate()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		d.showPanel = !d.showPanel
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyV) {
		if d.tab == chartTab {
			d.tab = tableTab
		} else {
			d.tab = chartTab
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		b.addRow()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyK) {
		b.addColumn()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		b.deleteLastRow()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		d.export()
	}
	if d.tab == tableTab {
		d.handleTableCursor()
	}
}

// handleTableCursor moves the table selection and opens it for editing with E
func (d *Dashboard) handleTableCursor() {
	data := d.board.data()
	rows, cols := min(len(data.Rows), TableRows), len(data.Headers)
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		d.editor.move(-1, 0, rows, cols)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		d.editor.move(1, 0, rows, cols)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		d.editor.move(0, -1, rows, cols)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		d.editor.move(0, 1, rows, cols)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		d.editor.begin(d.board)
	}
}

// handleEditInput feeds typed text to the open cell; the other bindings wait until it closes
func (d *Dashboard) handleEditInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		d.editor.cancel()
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter) {
		if err := d.editor.commit(d.board); err != nil {
			d.board.errMsg = err.Error()
		}
		return
	}
	if held := inpututil.KeyPressDuration(ebiten.KeyBackspace); held == 1 || (held > 30 && held%4 == 0) {
		d.editor.backspace()
	}
	d.runes = ebiten.AppendInputChars(d.runes[:0])
	d.editor.typeRunes(d.runes)
}

// handleDrops imports files dropped onto the window
func (d *Dashboard) handleDrops() {
	files := ebiten.DroppedFiles()
	if files == nil {
		return
	}
	d.editor.cancel()
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		log.Printf("read dropped files: %v", err)
		return
	}
	for _, e := range entries {
		if e.IsDir() {
			d.board.errMsg = msgNotCSV
			continue
		}
		f, err := files.Open(e.Name())
		if err != nil {
			log.Printf("open dropped %s: %v", e.Name(), err)
			d.board.errMsg = msgBadCSV
			continue
		}
		d.board.dropFile(e.Name(), f)
		f.Close()
	}
	d.mode = dashboardScreen
}

// export saves the table and chart to the export directory
func (d *Dashboard) export() {
	csvPath, pngPath, err := d.board.export(d.cfg.ExportDir, d.cfg.Chart.Width, d.cfg.Chart.Height)
	if err != nil {
		log.Printf("export: %v", err)
		d.board.errMsg = msgNoExport
		return
	}
	d.board.status = fmt.Sprintf("Saved %s and %s", csvPath, pngPath)
	log.Print(d.board.status)
}

func (d *Dashboard) drawHero(screen *ebiten.Image) {
	w, h := d.host.Size()
	lines := []string{
		"DATA",
		"VISUALIZATION",
		"",
		"Experience your metrics like never before.",
		"Interactive, real-time, and beautifully designed.",
		"",
		"[ Press Enter to start exploring ]",
	}
	y := h/2 - len(lines)*LineHeight/2
	for _, l := range lines {
		x := w/2 - len(l)*6/2
		ebitenutil.DebugPrintAt(screen, l, x, y)
		y += LineHeight
	}
}

func (d *Dashboard) drawDashboard(screen *ebiten.Image) {
	b := d.board
	w, _ := d.host.Size()

	ebitenutil.DebugPrintAt(screen, "Analytics Overview            [Enter] back to home", MarginLeft, MarginTop)

	var names []string
	for i, ds := range b.datasets {
		mark := " "
		if i == b.current {
			mark = "*"
		}
		names = append(names, fmt.Sprintf("%s%d %s", mark, i+1, ds.Name))
	}
	ebitenutil.DebugPrintAt(screen, "Datasets: "+strings.Join(names, "  "), MarginLeft, MarginTop+LineHeight)

	y := MarginTop + 2*LineHeight
	if b.errMsg != "" {
		ebitenutil.DebugPrintAt(screen, "! "+b.errMsg, MarginLeft, y)
	} else if b.status != "" {
		ebitenutil.DebugPrintAt(screen, b.status, MarginLeft, y)
	}
	y += LineHeight * 2

	left := MarginLeft
	if d.showPanel {
		d.drawPanel(screen, MarginLeft, y)
		left += PanelWidth
	}

	switch d.tab {
	case chartTab:
		d.drawChart(screen, left, y, w-left-MarginLeft)
	case tableTab:
		d.drawTable(screen, left, y)
	}
}

// drawPanel lists the chart configuration and the key bindings that change it
func (d *Dashboard) drawPanel(screen *ebiten.Image, x, y int) {
	b := d.board
	panelBg := color.NRGBA{R: 15, G: 23, B: 42, A: 180}
	vector.DrawFilledRect(screen, float32(x-8), float32(y-8), PanelWidth-16, float32(LineHeight*(15+len(b.data().Headers))), panelBg, false)

	lines := []string{
		"Chart Configuration  [C]",
		"Title: " + b.chart.Title,
		"[T] Type: " + b.chart.Type.Label(),
		"[X] X-Axis: " + b.chart.XColumn,
		"Y-Axis Data:",
	}
	for i, h := range b.data().Headers {
		check := "[ ]"
		if b.chart.HasY(h) {
			check = "[x]"
		}
		key := "  "
		if i < 9 {
			key = fmt.Sprintf("F%d", i+1)
		}
		lines = append(lines, fmt.Sprintf(" %s %s %s", key, check, h))
	}
	anim := "off"
	if b.chart.Animate {
		anim = "on"
	}
	lines = append(lines,
		"[A] Animation: "+anim,
		"",
		"[V] chart / table view",
		"[R] add row  [K] add column",
		"[D] delete last row",
		"[E] edit selected cell (table)",
		"[S] export CSV + PNG",
		"Drop a .csv file to import",
	)
	for i, l := range lines {
		ebitenutil.DebugPrintAt(screen, l, x, y+i*LineHeight)
	}
}

func (d *Dashboard) drawChart(screen *ebiten.Image, x, y, width int) {
	b := d.board
	if b.dirty || d.chartImg == nil {
		d.renderChart(width)
	}
	if d.chartImg == nil {
		ebitenutil.DebugPrintAt(screen, "Nothing to plot: pick an X column and at least one Y column.", x, y)
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	screen.DrawImage(d.chartImg, op)
}

// renderChart rasterises the current animation frame into the chart image
func (d *Dashboard) renderChart(width int) {
	b := d.board
	b.dirty = false
	if width > d.cfg.Chart.Width || width <= 0 {
		width = d.cfg.Chart.Width
	}

	img, err := chart.RenderImage(b.animator.Current(), b.chart, width, d.cfg.Chart.Height)
	if d.chartImg != nil {
		d.chartImg.Deallocate()
		d.chartImg = nil
	}
	if err != nil {
		log.Printf("render chart: %v", err)
		return
	}
	d.chartImg = ebiten.NewImageFromImage(img)
}

// drawTable lists the table on display, one row per line, with the selected cell in brackets
func (d *Dashboard) drawTable(screen *ebiten.Image, x, y int) {
	data := d.board.data()
	e := &d.editor
	e.clamp(min(len(data.Rows), TableRows), len(data.Headers))

	cell := func(row, col int, s string) string {
		if row != e.row || col != e.col {
			return s
		}
		if e.editing {
			return "[" + e.text() + "]"
		}
		return "[" + s + "]"
	}

	headers := make([]string, len(data.Headers))
	for j, h := range data.Headers {
		headers[j] = cell(headerRow, j, h)
	}
	ebitenutil.DebugPrintAt(screen, "# | "+strings.Join(headers, " | "), x, y)
	for i, row := range data.Rows {
		if i >= TableRows {
			ebitenutil.DebugPrintAt(screen, fmt.Sprintf("... %d more rows", len(data.Rows)-TableRows), x, y+(i+1)*LineHeight)
			break
		}
		cells := make([]string, len(data.Headers))
		for j := range data.Headers {
			var s string
			if j < len(row) {
				s = row[j].String()
			}
			cells[j] = cell(i, j, s)
		}
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d | %s", i+1, strings.Join(cells, " | ")), x, y+(i+1)*LineHeight)
	}
	hint := "Arrows select a cell, [E] edits it"
	if e.editing {
		hint = "Type a value, [Enter] to save, [Esc] to cancel"
	}
	ebitenutil.DebugPrintAt(screen, hint, x, y+(min(len(data.Rows), TableRows)+2)*LineHeight)
}
