package server

import (
	"image"
	"net/http"
	"strconv"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"photohunt-server/internal/domain"
	"photohunt-server/internal/engine"
)

const (
	blockSize = 8
	maxScale  = 8
)

// DebugHandler предоставляет доступ к внутреннему состоянию движка
type DebugHandler struct {
	Service *engine.GameService
}

func NewDebugHandler(s *engine.GameService) *DebugHandler {
	return &DebugHandler{Service: s}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/world", enableCORS(h.handleWorld))
	mux.HandleFunc("/debug/world.png", h.handleWorldPNG)
}

// worldDump - копия мира, снятая между тиками (включая скрытую тревогу зверей)
type worldDump struct {
	Phase        string         `json:"phase"`
	Level        int            `json:"level"`
	Width        int            `json:"width"`
	Height       int            `json:"height"`
	QueuedEvents int            `json:"queued_events"`
	Sessions     []sessionDump  `json:"sessions"`
	Creatures    []creatureDump `json:"creatures"`

	rows []string
}

type sessionDump struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Facing string `json:"facing"`
	Score  int    `json:"score"`
}

type creatureDump struct {
	ID      int    `json:"id"`
	Tier    string `json:"tier"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Facing  string `json:"facing"`
	Alert   int    `json:"alert"`
	Fleeing bool   `json:"fleeing"`
}

func (h *DebugHandler) snapshot(r *http.Request) (worldDump, error) {
	var dump worldDump
	err := h.Service.Inspect(r.Context(), func(w *engine.World, phase engine.Phase) {
		m := w.Map()
		dump = worldDump{
			Phase:        phase.String(),
			Level:        w.Level(),
			Width:        m.Width,
			Height:       m.Height,
			QueuedEvents: w.Events.Len(),
			rows:         m.Rows(),
		}
		for _, s := range w.Sessions() {
			dump.Sessions = append(dump.Sessions, sessionDump{
				ID:     s.ID.String(),
				Name:   s.Name,
				X:      s.Pos.X,
				Y:      s.Pos.Y,
				Facing: s.Facing.String(),
				Score:  s.Score(),
			})
		}
		for _, c := range w.Creatures() {
			dump.Creatures = append(dump.Creatures, creatureDump{
				ID:      int(c.ID),
				Tier:    c.Tier.String(),
				X:       c.Pos.X,
				Y:       c.Pos.Y,
				Facing:  c.Facing.String(),
				Alert:   c.Alert,
				Fleeing: c.IsFleeing(),
			})
		}
	})
	return dump, err
}

// /debug/world - дамп мира в JSON
func (h *DebugHandler) handleWorld(w http.ResponseWriter, r *http.Request) {
	dump, err := h.snapshot(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, dump)
}

// /debug/world.png?scale=2 - картинка карты с охотниками и зверями
func (h *DebugHandler) handleWorldPNG(w http.ResponseWriter, r *http.Request) {
	scale := 1
	if v := r.URL.Query().Get("scale"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxScale {
			http.Error(w, "scale must be 1..8", http.StatusBadRequest)
			return
		}
		scale = n
	}

	dump, err := h.snapshot(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	img := renderWorld(dump, blockSize)
	if scale > 1 {
		b := img.Bounds()
		img = imaging.Resize(img, b.Dx()*scale, b.Dy()*scale, imaging.NearestNeighbor)
	}

	w.Header().Set("Content-Type", "image/png")
	if err := imaging.Encode(w, img, imaging.PNG); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

var tileColors = map[domain.Tile][3]float64{
	domain.TileEmpty: {0.85, 0.93, 0.75},
	domain.TileTree:  {0.13, 0.45, 0.2},
	domain.TileRock:  {0.5, 0.5, 0.5},
	domain.TileBush:  {0.45, 0.7, 0.3},
}

// renderWorld рисует клетку размером block пикселей; засвет - сторона, куда смотрит фигура
func renderWorld(dump worldDump, block int) image.Image {
	dc := gg.NewContext(dump.Width*block, dump.Height*block)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	for y, row := range dump.rows {
		for x, r := range row {
			tile, _ := domain.ParseTile(r)
			c := tileColors[tile]
			dc.SetRGB(c[0], c[1], c[2])
			dc.DrawRectangle(float64(x*block), float64(y*block), float64(block), float64(block))
			dc.Fill()
		}
	}

	drawFigure := func(x, y int, facing string, r, g, b float64) {
		cx := float64(x*block) + float64(block)/2
		cy := float64(y*block) + float64(block)/2
		dc.SetRGB(r, g, b)
		dc.DrawCircle(cx, cy, float64(block)*0.4)
		dc.Fill()

		if d, ok := domain.ParseDirection(facing); ok {
			dx, dy := d.Vector()
			dc.SetRGB(1, 1, 1)
			dc.DrawLine(cx, cy, cx+float64(dx*block)/2, cy+float64(dy*block)/2)
			dc.Stroke()
		}
	}

	for _, c := range dump.Creatures {
		red := 0.8
		if c.Fleeing {
			red = 1
		}
		drawFigure(c.X, c.Y, c.Facing, red, 0.4, 0.1)
	}
	for _, s := range dump.Sessions {
		drawFigure(s.X, s.Y, s.Facing, 0.1, 0.2, 0.8)
	}
	return dc.Image()
}
