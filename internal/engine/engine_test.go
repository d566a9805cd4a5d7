package engine

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/floatwm/internal/config"
	"github.com/1broseidon/floatwm/internal/geom"
	"github.com/1broseidon/floatwm/internal/gesture"
	"github.com/1broseidon/floatwm/internal/ipc"
	"github.com/1broseidon/floatwm/internal/x11"
)

// fakeBackend is a scripted display: a fixed client list, one monitor
// and recorders for everything the engine asks it to do.
type fakeBackend struct {
	clients  []x11.Client
	monitors []x11.Monitor
	active   xproto.Window

	hooks      x11.RootHooks
	placements map[xproto.Window]geom.Rect
	raised     []xproto.Window
	focused    []xproto.Window
	closed     []xproto.Window
	detached   []xproto.Window
	grabs      map[xproto.Window]map[string]x11.DragHooks
	opacities  map[xproto.Window]float64
}

func newFakeBackend(clients ...x11.Client) *fakeBackend {
	return &fakeBackend{
		clients: clients,
		monitors: []x11.Monitor{
			{ID: 0, Name: "eDP-1", Width: 1920, Height: 1080, Primary: true},
		},
		placements: make(map[xproto.Window]geom.Rect),
		grabs:      make(map[xproto.Window]map[string]x11.DragHooks),
		opacities:  make(map[xproto.Window]float64),
	}
}

func (f *fakeBackend) ListClients() ([]x11.Client, error) {
	return append([]x11.Client(nil), f.clients...), nil
}

func (f *fakeBackend) WindowTitle(win xproto.Window) string {
	for _, cl := range f.clients {
		if cl.Window == win {
			return cl.Title
		}
	}
	return ""
}

func (f *fakeBackend) MoveResize(win xproto.Window, x, y, width, height int) error {
	f.placements[win] = geom.Rect{
		X: float64(x), Y: float64(y),
		Width: float64(width), Height: float64(height),
	}
	return nil
}

func (f *fakeBackend) Raise(win xproto.Window) error {
	f.raised = append(f.raised, win)
	return nil
}

func (f *fakeBackend) Focus(win xproto.Window) error {
	f.focused = append(f.focused, win)
	return nil
}

func (f *fakeBackend) CloseWindow(win xproto.Window) error {
	f.closed = append(f.closed, win)
	return nil
}

func (f *fakeBackend) ActiveWindow() (xproto.Window, error) { return f.active, nil }

func (f *fakeBackend) SetOpacity(win xproto.Window, opacity float64) error {
	f.opacities[win] = opacity
	return nil
}

func (f *fakeBackend) Monitors() ([]x11.Monitor, error) {
	return append([]x11.Monitor(nil), f.monitors...), nil
}

func (f *fakeBackend) ActiveMonitor() (*x11.Monitor, error) {
	if len(f.monitors) == 0 {
		return nil, fmt.Errorf("no monitors")
	}
	mon := f.monitors[0]
	return &mon, nil
}

func (f *fakeBackend) MonitorWorkArea(name string) (*x11.Monitor, error) {
	if len(f.monitors) == 0 {
		return nil, fmt.Errorf("no monitors")
	}
	for _, mon := range f.monitors {
		if mon.Name == name {
			pick := mon
			return &pick, nil
		}
	}
	mon := f.monitors[0]
	return &mon, nil
}

func (f *fakeBackend) WatchRoot(hooks x11.RootHooks) error {
	f.hooks = hooks
	return nil
}

func (f *fakeBackend) BindDrag(win xproto.Window, buttonStr string, hooks x11.DragHooks) {
	if f.grabs[win] == nil {
		f.grabs[win] = make(map[string]x11.DragHooks)
	}
	f.grabs[win][buttonStr] = hooks
}

func (f *fakeBackend) DetachWindow(win xproto.Window) {
	f.detached = append(f.detached, win)
	delete(f.grabs, win)
}

func (f *fakeBackend) addClient(cl x11.Client) { f.clients = append(f.clients, cl) }

func (f *fakeBackend) removeClient(win xproto.Window) {
	for i, cl := range f.clients {
		if cl.Window == win {
			f.clients = append(f.clients[:i], f.clients[i+1:]...)
			return
		}
	}
}

func term(win xproto.Window, x, y, w, h int) x11.Client {
	return x11.Client{
		Window: win,
		Class:  "Alacritty",
		Title:  "shell",
		Rect:   x11.ClientRect{X: x, Y: y, Width: w, Height: h},
	}
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.ManageClasses = []string{"Alacritty"}
	cfg.Animation.Enabled = false
	return cfg
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func startEngine(t *testing.T, cfg *config.Config, f *fakeBackend) *Engine {
	t.Helper()
	eng, err := New(Options{Config: cfg, Backend: f, Logger: discardLogger()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	eng.sched = &gesture.ManualScheduler{}
	if err := eng.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return eng
}

func TestStartAdoptsManagedClasses(t *testing.T) {
	f := newFakeBackend(
		term(1, 100, 100, 800, 600),
		x11.Client{Window: 2, Class: "Polybar", Rect: x11.ClientRect{Width: 1920, Height: 24}},
	)
	eng := startEngine(t, testConfig(), f)

	st, err := eng.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if st.WindowCount != 1 {
		t.Fatalf("window count = %d, want 1", st.WindowCount)
	}
	if st.ActiveLayout != "floating" || st.Monitor != "eDP-1" || !st.DaemonRunning {
		t.Fatalf("status = %+v", st)
	}

	if got := f.placements[1]; got != (geom.Rect{X: 100, Y: 100, Width: 800, Height: 600}) {
		t.Fatalf("adopted placement = %+v", got)
	}
	if _, ok := f.placements[2]; ok {
		t.Fatal("unmanaged class was placed")
	}
	if _, ok := f.grabs[1]["Mod4-1"]; !ok {
		t.Fatal("move grab missing")
	}
	if _, ok := f.grabs[1]["Mod4-Shift-1"]; !ok {
		t.Fatal("resize grab missing")
	}
	if f.hooks.MapWindow == nil || f.hooks.DestroyWindow == nil || f.hooks.GeometryChange == nil {
		t.Fatal("root hooks not installed")
	}
}

func TestIgnoreClassesSkipAdoption(t *testing.T) {
	cfg := testConfig()
	cfg.ManageClasses = nil
	cfg.IgnoreClasses = []string{"Polybar"}
	f := newFakeBackend(
		term(1, 100, 100, 800, 600),
		x11.Client{Window: 2, Class: "Polybar", Rect: x11.ClientRect{Width: 1920, Height: 24}},
	)
	eng := startEngine(t, cfg, f)

	st, _ := eng.Status()
	if st.WindowCount != 1 {
		t.Fatalf("window count = %d, want 1", st.WindowCount)
	}
}

func TestMapNotifyAdopts(t *testing.T) {
	f := newFakeBackend()
	eng := startEngine(t, testConfig(), f)

	f.addClient(term(7, 50, 60, 640, 480))
	f.hooks.MapWindow(7)

	st, _ := eng.Status()
	if st.WindowCount != 1 {
		t.Fatalf("window count = %d, want 1", st.WindowCount)
	}
	if got := f.placements[7]; got != (geom.Rect{X: 50, Y: 60, Width: 640, Height: 480}) {
		t.Fatalf("placement = %+v", got)
	}
}

func TestVanishedClientReleased(t *testing.T) {
	f := newFakeBackend(term(1, 100, 100, 800, 600))
	eng := startEngine(t, testConfig(), f)

	f.removeClient(1)
	eng.Reconcile()

	st, _ := eng.Status()
	if st.WindowCount != 0 {
		t.Fatalf("window count = %d, want 0", st.WindowCount)
	}
	if len(f.detached) != 1 || f.detached[0] != 1 {
		t.Fatalf("detached = %v, want [1]", f.detached)
	}
}

func TestDestroyNotifyReleases(t *testing.T) {
	f := newFakeBackend(term(1, 100, 100, 800, 600))
	eng := startEngine(t, testConfig(), f)

	f.hooks.DestroyWindow(1)

	st, _ := eng.Status()
	if st.WindowCount != 0 {
		t.Fatalf("window count = %d, want 0", st.WindowCount)
	}
	wd, _ := eng.ListWindows()
	if len(wd.Windows) != 0 {
		t.Fatalf("windows = %+v, want none", wd.Windows)
	}
}

func TestSetLayoutRederivesAndRestores(t *testing.T) {
	f := newFakeBackend(
		term(1, 100, 100, 800, 600),
		term(2, 300, 200, 640, 480),
	)
	eng := startEngine(t, testConfig(), f)

	if err := eng.SetLayout("grid-2x2"); err != nil {
		t.Fatalf("SetLayout: %v", err)
	}
	if got := f.placements[1]; got != (geom.Rect{X: 4, Y: 4, Width: 952, Height: 532}) {
		t.Fatalf("first cell placement = %+v", got)
	}
	if got := f.placements[2]; got != (geom.Rect{X: 964, Y: 4, Width: 952, Height: 532}) {
		t.Fatalf("second cell placement = %+v", got)
	}

	// Switching back restores the rects the free-form layout parked.
	if err := eng.SetLayout("floating"); err != nil {
		t.Fatalf("SetLayout back: %v", err)
	}
	if got := f.placements[1]; got != (geom.Rect{X: 100, Y: 100, Width: 800, Height: 600}) {
		t.Fatalf("restored placement = %+v", got)
	}
	if got := f.placements[2]; got != (geom.Rect{X: 300, Y: 200, Width: 640, Height: 480}) {
		t.Fatalf("restored placement = %+v", got)
	}
}

func TestSetLayoutUnknown(t *testing.T) {
	f := newFakeBackend()
	eng := startEngine(t, testConfig(), f)

	err := eng.SetLayout("bogus")
	if err == nil || !strings.Contains(err.Error(), "unknown layout") {
		t.Fatalf("err = %v", err)
	}
}

func TestCycleLayoutWraps(t *testing.T) {
	cfg := testConfig()
	cfg.CycleOrder = []string{"floating", "grid-2x2"}
	f := newFakeBackend()
	eng := startEngine(t, cfg, f)

	eng.CycleLayout(1)
	if st, _ := eng.Status(); st.ActiveLayout != "grid-2x2" {
		t.Fatalf("after cycle = %q", st.ActiveLayout)
	}
	eng.CycleLayout(1)
	if st, _ := eng.Status(); st.ActiveLayout != "floating" {
		t.Fatalf("after wrap = %q", st.ActiveLayout)
	}
	eng.CycleLayout(-1)
	if st, _ := eng.Status(); st.ActiveLayout != "grid-2x2" {
		t.Fatalf("after reverse = %q", st.ActiveLayout)
	}
}

func TestMoveWindowClampsToWorkArea(t *testing.T) {
	cfg := testConfig()
	cfg.DefaultLayout = "clamped"
	f := newFakeBackend(term(1, 100, 100, 800, 600))
	eng := startEngine(t, cfg, f)

	if err := eng.MoveWindow(ipc.WindowRef{ID: 0}, 5000, 0); err != nil {
		t.Fatalf("MoveWindow: %v", err)
	}
	if got := f.placements[1]; got != (geom.Rect{X: 1120, Y: 100, Width: 800, Height: 600}) {
		t.Fatalf("placement = %+v, want pinned at the right bound", got)
	}
}

func TestMoveWindowUnknownRef(t *testing.T) {
	f := newFakeBackend()
	eng := startEngine(t, testConfig(), f)

	err := eng.MoveWindow(ipc.WindowRef{ID: 99}, 1, 1)
	if err == nil || !strings.Contains(err.Error(), "no window with id 99") {
		t.Fatalf("err = %v", err)
	}
}

func TestResizeWindowHonorsSizeRange(t *testing.T) {
	cfg := testConfig()
	cfg.DefaultLayout = "clamped"
	f := newFakeBackend(term(1, 100, 100, 800, 600))
	eng := startEngine(t, cfg, f)

	if err := eng.ResizeWindow(ipc.WindowRef{ID: 0}, 0, 0, -600, 0); err != nil {
		t.Fatalf("ResizeWindow: %v", err)
	}
	if got := f.placements[1]; got != (geom.Rect{X: 100, Y: 100, Width: 320, Height: 600}) {
		t.Fatalf("placement = %+v, want width floored at 320", got)
	}
}

func TestSetWindowLayoutOverride(t *testing.T) {
	f := newFakeBackend(
		term(1, 100, 100, 800, 600),
		term(2, 300, 200, 640, 480),
	)
	eng := startEngine(t, testConfig(), f)

	if err := eng.SetWindowLayout(ipc.WindowRef{ID: 0}, "dialog"); err != nil {
		t.Fatalf("SetWindowLayout: %v", err)
	}
	centered := geom.Rect{X: 720, Y: 380, Width: 480, Height: 320}
	if got := f.placements[1]; got != centered {
		t.Fatalf("override placement = %+v, want %+v", got, centered)
	}
	wd, _ := eng.ListWindows()
	if wd.Windows[0].Layout != "dialog" || !wd.Windows[0].Override {
		t.Fatalf("window info = %+v, want dialog override", wd.Windows[0])
	}

	// The collection swap passes the override window by.
	if err := eng.SetLayout("grid-2x2"); err != nil {
		t.Fatalf("SetLayout: %v", err)
	}
	if got := f.placements[1]; got != centered {
		t.Fatalf("override moved on swap: %+v", got)
	}
	if got := f.placements[2]; got != (geom.Rect{X: 4, Y: 4, Width: 952, Height: 532}) {
		t.Fatalf("peer placement = %+v", got)
	}

	// Clearing the override rejoins the collection layout.
	if err := eng.SetWindowLayout(ipc.WindowRef{ID: 0}, ""); err != nil {
		t.Fatalf("clear override: %v", err)
	}
	if got := f.placements[1]; got != (geom.Rect{X: 964, Y: 4, Width: 952, Height: 532}) {
		t.Fatalf("rejoined placement = %+v", got)
	}
	wd, _ = eng.ListWindows()
	if wd.Windows[0].Override || wd.Windows[0].Layout != "grid-2x2" {
		t.Fatalf("window info after clear = %+v", wd.Windows[0])
	}
}

func TestMoveRefusedUnderDialog(t *testing.T) {
	f := newFakeBackend(term(1, 100, 100, 800, 600))
	eng := startEngine(t, testConfig(), f)

	if err := eng.SetWindowLayout(ipc.WindowRef{ID: 0}, "dialog"); err != nil {
		t.Fatalf("SetWindowLayout: %v", err)
	}
	err := eng.MoveWindow(ipc.WindowRef{ID: 0}, 10, 10)
	if err == nil || !strings.Contains(err.Error(), "does not permit moving") {
		t.Fatalf("err = %v", err)
	}
}

func TestWorkAreaFollowsMonitorGeometry(t *testing.T) {
	cfg := testConfig()
	cfg.DefaultLayout = "clamped"
	f := newFakeBackend(term(1, 100, 100, 800, 600))
	eng := startEngine(t, cfg, f)

	f.monitors[0].Width = 1000
	f.monitors[0].Height = 800
	eng.Reconcile()

	// Bound changes are breaking: the window re-derives from the new
	// top-right corner at its preferred size.
	if got := f.placements[1]; got != (geom.Rect{X: 280, Y: 0, Width: 720, Height: 480}) {
		t.Fatalf("re-derived placement = %+v", got)
	}
}

func TestScreenPaddingInsetsWorkArea(t *testing.T) {
	cfg := testConfig()
	cfg.DefaultLayout = "clamped"
	cfg.ScreenPadding = config.Margins{Top: 20, Left: 10, Right: 10}
	f := newFakeBackend(term(1, 0, 0, 800, 600))
	startEngine(t, cfg, f)

	if got := f.placements[1]; got != (geom.Rect{X: 10, Y: 20, Width: 800, Height: 600}) {
		t.Fatalf("placement = %+v, want pushed inside the padding", got)
	}
}

func TestFrontWindowRestacks(t *testing.T) {
	f := newFakeBackend(
		term(1, 100, 100, 800, 600),
		term(2, 300, 200, 640, 480),
	)
	eng := startEngine(t, testConfig(), f)

	if err := eng.FrontWindow(ipc.WindowRef{ID: 0}); err != nil {
		t.Fatalf("FrontWindow: %v", err)
	}
	wd, _ := eng.ListWindows()
	if wd.Windows[0].ID != 1 || wd.Windows[1].ID != 0 {
		t.Fatalf("stack order = %d,%d, want 1,0", wd.Windows[0].ID, wd.Windows[1].ID)
	}
	if wd.Windows[0].Priority != 1 || wd.Windows[1].Priority != 2 {
		t.Fatalf("priorities = %d,%d", wd.Windows[0].Priority, wd.Windows[1].Priority)
	}
	if len(f.raised) == 0 || f.raised[len(f.raised)-1] != 1 {
		t.Fatalf("raised = %v, want client 1 last", f.raised)
	}
	if len(f.focused) != 1 || f.focused[0] != 1 {
		t.Fatalf("focused = %v", f.focused)
	}
}

func TestFrontActiveWindow(t *testing.T) {
	f := newFakeBackend(
		term(1, 100, 100, 800, 600),
		term(2, 300, 200, 640, 480),
	)
	f.active = 1
	eng := startEngine(t, testConfig(), f)

	eng.FrontActiveWindow()
	wd, _ := eng.ListWindows()
	if wd.Windows[1].ID != 0 {
		t.Fatalf("front window id = %d, want 0", wd.Windows[1].ID)
	}
}

func TestCloseWindowIsPolite(t *testing.T) {
	f := newFakeBackend(term(1, 100, 100, 800, 600))
	eng := startEngine(t, testConfig(), f)

	if err := eng.CloseWindow(ipc.WindowRef{ID: 0}); err != nil {
		t.Fatalf("CloseWindow: %v", err)
	}
	if len(f.closed) != 1 || f.closed[0] != 1 {
		t.Fatalf("closed = %v", f.closed)
	}
	// The window leaves only once the client actually goes away.
	if st, _ := eng.Status(); st.WindowCount != 1 {
		t.Fatalf("window count = %d, want 1", st.WindowCount)
	}
	f.hooks.DestroyWindow(1)
	if st, _ := eng.Status(); st.WindowCount != 0 {
		t.Fatalf("window count after destroy = %d, want 0", st.WindowCount)
	}
}

func TestListWindowsCarriesClientDetails(t *testing.T) {
	f := newFakeBackend(term(1, 100, 100, 800, 600))
	eng := startEngine(t, testConfig(), f)

	wd, err := eng.ListWindows()
	if err != nil {
		t.Fatalf("ListWindows: %v", err)
	}
	if len(wd.Windows) != 1 {
		t.Fatalf("windows = %d, want 1", len(wd.Windows))
	}
	info := wd.Windows[0]
	if info.Class != "Alacritty" || info.Title != "shell" {
		t.Fatalf("client details = %q/%q", info.Class, info.Title)
	}
	if info.X != 100 || info.Y != 100 || info.Width != 800 || info.Height != 600 {
		t.Fatalf("rect = %+v", info)
	}
	if info.PixelX != 100 || info.PixelWidth != 800 {
		t.Fatalf("pixel rect = %+v", info)
	}
}

func TestListLayouts(t *testing.T) {
	f := newFakeBackend()
	eng := startEngine(t, testConfig(), f)

	ld, err := eng.ListLayouts()
	if err != nil {
		t.Fatalf("ListLayouts: %v", err)
	}
	want := []string{"clamped", "dialog", "floating", "grid-2x2", "grid-3x3"}
	if len(ld.Layouts) != len(want) {
		t.Fatalf("layouts = %v", ld.Layouts)
	}
	for i, name := range want {
		if ld.Layouts[i] != name {
			t.Fatalf("layouts = %v, want %v", ld.Layouts, want)
		}
	}
	if ld.DefaultLayout != "floating" || ld.ActiveLayout != "floating" {
		t.Fatalf("defaults = %q/%q", ld.DefaultLayout, ld.ActiveLayout)
	}
}

func TestMonitorsPassthrough(t *testing.T) {
	f := newFakeBackend()
	eng := startEngine(t, testConfig(), f)

	md, err := eng.Monitors()
	if err != nil {
		t.Fatalf("Monitors: %v", err)
	}
	if len(md.Monitors) != 1 {
		t.Fatalf("monitors = %+v", md.Monitors)
	}
	mon := md.Monitors[0]
	if mon.Name != "eDP-1" || mon.Width != 1920 || mon.Height != 1080 || !mon.Primary {
		t.Fatalf("monitor = %+v", mon)
	}
}

func TestInteractiveMoveDrag(t *testing.T) {
	f := newFakeBackend(term(1, 100, 100, 800, 600))
	eng := startEngine(t, testConfig(), f)
	ms := eng.sched.(*gesture.ManualScheduler)
	hooks := f.grabs[1]["Mod4-1"]

	if !hooks.Begin(500, 400) {
		t.Fatal("press rejected")
	}
	hooks.Step(560, 430)
	ms.Fire()
	if got := f.placements[1]; got != (geom.Rect{X: 160, Y: 130, Width: 800, Height: 600}) {
		t.Fatalf("first frame = %+v", got)
	}

	hooks.Step(600, 430)
	ms.Fire()
	if got := f.placements[1]; got != (geom.Rect{X: 200, Y: 130, Width: 800, Height: 600}) {
		t.Fatalf("second frame = %+v", got)
	}

	hooks.End(600, 430)
	w, _ := eng.col.GetWindow(0)
	if w.Dragging() {
		t.Fatal("drag still active after release")
	}
}

func TestInteractiveResizeDragPicksEdge(t *testing.T) {
	cfg := testConfig()
	cfg.DefaultLayout = "clamped"
	f := newFakeBackend(term(1, 100, 100, 800, 600))
	eng := startEngine(t, cfg, f)
	ms := eng.sched.(*gesture.ManualScheduler)
	hooks := f.grabs[1]["Mod4-Shift-1"]

	// Grab in the right edge's grip band, pull 60px outward.
	if !hooks.Begin(898, 400) {
		t.Fatal("press rejected")
	}
	hooks.Step(958, 400)
	ms.Fire()
	if got := f.placements[1]; got != (geom.Rect{X: 100, Y: 100, Width: 860, Height: 600}) {
		t.Fatalf("resized = %+v, want only the right edge moved", got)
	}
	hooks.End(958, 400)
}

func TestDragRefusedWhenLayoutForbids(t *testing.T) {
	f := newFakeBackend(term(1, 100, 100, 800, 600))
	eng := startEngine(t, testConfig(), f)

	if err := eng.SetWindowLayout(ipc.WindowRef{ID: 0}, "dialog"); err != nil {
		t.Fatalf("SetWindowLayout: %v", err)
	}
	if f.grabs[1]["Mod4-1"].Begin(500, 400) {
		t.Fatal("press accepted under an immovable layout")
	}
}

func TestReloadAppliesPresetsAndPadding(t *testing.T) {
	cfg := testConfig()
	cfg.DefaultLayout = "clamped"
	next := testConfig()
	next.DefaultLayout = "clamped"
	next.ScreenPadding = config.Margins{Top: 40}

	f := newFakeBackend(term(1, 100, 100, 800, 600))
	eng, err := New(Options{
		Config:       cfg,
		Backend:      f,
		Logger:       discardLogger(),
		ReloadConfig: func() (*config.Config, error) { return next, nil },
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	eng.sched = &gesture.ManualScheduler{}
	if err := eng.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	if err := eng.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if got := f.placements[1]; got != (geom.Rect{X: 1200, Y: 40, Width: 720, Height: 480}) {
		t.Fatalf("placement after reload = %+v", got)
	}
	if st, _ := eng.Status(); st.ActiveLayout != "clamped" {
		t.Fatalf("active after reload = %q", st.ActiveLayout)
	}
}

func TestReloadWithoutLoaderFails(t *testing.T) {
	f := newFakeBackend()
	eng := startEngine(t, testConfig(), f)

	if err := eng.Reload(); err == nil {
		t.Fatal("expected an error without a config loader")
	}
}

func TestStopDetachesEverything(t *testing.T) {
	f := newFakeBackend(
		term(1, 100, 100, 800, 600),
		term(2, 300, 200, 640, 480),
	)
	eng := startEngine(t, testConfig(), f)

	eng.Stop()
	if len(f.detached) != 2 {
		t.Fatalf("detached = %v, want both clients", f.detached)
	}
}

func TestWorkAreaOf(t *testing.T) {
	mon := &x11.Monitor{X: 1920, Y: 0, Width: 2560, Height: 1440}
	got := workAreaOf(mon, config.Margins{Top: 30, Left: 10, Right: 10, Bottom: 8})
	want := geom.Rect{X: 1930, Y: 30, Width: 2540, Height: 1402}
	if got != want {
		t.Fatalf("workAreaOf = %+v, want %+v", got, want)
	}
}
