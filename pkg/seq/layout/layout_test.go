package layout

import (
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/seqgram/pkg/errors"
	"github.com/matzehuels/seqgram/pkg/seq/canvas"
	"github.com/matzehuels/seqgram/pkg/seq/model"
	"github.com/matzehuels/seqgram/pkg/seq/parse"
)

func mustDiagram(t *testing.T, src string) *model.Diagram {
	t.Helper()
	stmts, err := parse.Parse(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	d, err := model.Build(stmts)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return d
}

func centersOf(g *Geometry) []int {
	out := make([]int, len(g.Participants))
	for i, p := range g.Participants {
		out[i] = p.CenterX
	}
	return out
}

func TestComputeGeometry(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		centers []int
		width   int
		height  int
	}{
		{
			name:    "client server",
			src:     "Client -> Server: GET /api/data\nServer -> Client: JSONResponse",
			centers: []int{5, 21},
			width:   28,
			height:  15,
		},
		{
			name:    "three participant chain",
			src:     "A -> B: x\nB -> C: y",
			centers: []int{3, 8, 13},
			width:   17,
			height:  15,
		},
		{
			name:    "empty label",
			src:     "A -> B:\nB -> A: ok",
			centers: []int{3, 8},
			width:   12,
			height:  14,
		},
		{
			name:    "skipping message widens span",
			src:     "A -> B: x\nB -> C: y\nA -> C: a long label here",
			centers: []int{3, 8, 23},
			width:   27,
			height:  18,
		},
		{
			name:    "self message on last participant",
			src:     "A -> B: x\nB -> B: think\nB -> A: y",
			centers: []int{3, 8},
			width:   16,
			height:  19,
		},
		{
			name:    "self message pushes next column",
			src:     "Alice -> Alice: loop\nAlice -> Bob: hi",
			centers: []int{5, 13},
			width:   18,
			height:  16,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Compute(mustDiagram(t, tt.src), DefaultConfig())
			if err != nil {
				t.Fatalf("Compute() error: %v", err)
			}
			if got := centersOf(g); !reflect.DeepEqual(got, tt.centers) {
				t.Errorf("centers = %v, want %v", got, tt.centers)
			}
			if g.Width != tt.width {
				t.Errorf("Width = %d, want %d", g.Width, tt.width)
			}
			if g.Height != tt.height {
				t.Errorf("Height = %d, want %d", g.Height, tt.height)
			}
		})
	}
}

func TestComputeClientServerDetails(t *testing.T) {
	g, err := Compute(mustDiagram(t, "Client -> Server: GET /api/data\nServer -> Client: JSONResponse"), DefaultConfig())
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}

	client := g.Participants[0]
	if client.BoxWidth != 10 || client.Left != 1 || client.Right != 10 || client.NameX() != 3 {
		t.Errorf("client = %+v (NameX %d)", client, client.NameX())
	}
	if client.TopY != 1 || client.BottomY != 11 {
		t.Errorf("client rows = %d/%d, want 1/11", client.TopY, client.BottomY)
	}

	want := []MessageGeometry{
		{Row: 0, From: 0, To: 1, Direction: DirectionRight, StartX: 6, EndX: 20, ArrowY: 6, Label: "GET /api/data", LabelX: 7, LabelY: 5},
		{Row: 1, From: 1, To: 0, Direction: DirectionLeft, StartX: 6, EndX: 20, ArrowY: 9, Label: "JSONResponse", LabelX: 7, LabelY: 8},
	}
	if !reflect.DeepEqual(g.Messages, want) {
		t.Errorf("Messages = %+v\nwant %+v", g.Messages, want)
	}

	for _, l := range g.Lifelines {
		if l.StartY != 4 || l.EndY != 10 {
			t.Errorf("lifeline %+v, want rows 4..10", l)
		}
	}
}

func TestRowsFollowInputOrder(t *testing.T) {
	g, err := Compute(mustDiagram(t, "A -> B: 1\nB -> C: 2\nC -> A: 3\nA -> B:"), DefaultConfig())
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	prev := -1
	for k, m := range g.Messages {
		if m.Row != k {
			t.Errorf("message %d Row = %d", k, m.Row)
		}
		if m.ArrowY <= prev {
			t.Errorf("message %d ArrowY %d not below previous %d", k, m.ArrowY, prev)
		}
		if m.HasLabel() && m.LabelY != m.ArrowY-1 {
			t.Errorf("message %d label row %d should precede arrow row %d", k, m.LabelY, m.ArrowY)
		}
		prev = m.ArrowY
	}
	if g.Messages[3].HasLabel() {
		t.Error("empty label should not allocate a label row")
	}
}

func TestLabelsFitTheirSpan(t *testing.T) {
	src := strings.Join([]string{
		"A -> B: short",
		"B -> C: a considerably longer label",
		"A -> D: skipping over two lifelines with a long label",
		"D -> C: x",
		"C <- A: back",
		"A -> B: abcdef",
		"A -> C: abcdefghijkl",
		"B <- D: 你好世界",
	}, "\n")

	noPadding := DefaultConfig()
	noPadding.MessagePaddingX = 0
	wide := DefaultConfig()
	wide.MessagePaddingX = 3

	tests := []struct {
		name string
		cfg  Config
	}{
		{"default", DefaultConfig()},
		{"no message padding", noPadding},
		{"wide message padding", wide},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Compute(mustDiagram(t, src), tt.cfg)
			if err != nil {
				t.Fatalf("Compute() error: %v", err)
			}
			for _, m := range g.Messages {
				if !m.HasLabel() {
					continue
				}
				end := m.LabelX + canvas.StringWidth(m.Label) - 1
				if m.LabelX < m.StartX || end > m.EndX {
					t.Errorf("label %q at [%d,%d] outside span [%d,%d]", m.Label, m.LabelX, end, m.StartX, m.EndX)
				}
			}
		})
	}
}

func TestLabelFillingSpanWithoutPadding(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MessagePaddingX = 0

	g, err := Compute(mustDiagram(t, "A -> B: abcdef"), cfg)
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	m := g.Messages[0]
	if m.EndX-m.StartX+1 != 6 {
		t.Fatalf("span [%d,%d], want exactly six cells", m.StartX, m.EndX)
	}
	if m.LabelX != m.StartX {
		t.Errorf("LabelX = %d, want %d", m.LabelX, m.StartX)
	}
}

func TestColumnsDoNotOverlap(t *testing.T) {
	g, err := Compute(mustDiagram(t, "Alpha -> B: x\nB -> Gamma Delta: y\nGamma Delta -> E:"), DefaultConfig())
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	for i := 1; i < len(g.Participants); i++ {
		if g.Participants[i].Left <= g.Participants[i-1].Right {
			t.Errorf("box %d overlaps box %d", i, i-1)
		}
	}
	if last := g.Participants[len(g.Participants)-1]; last.Right >= g.Width {
		t.Errorf("last box right %d outside width %d", last.Right, g.Width)
	}
}

func TestBoxWidthMonotonic(t *testing.T) {
	cfg := DefaultConfig()
	prev := 0
	for n := 1; n <= 20; n++ {
		name := strings.Repeat("x", n)
		g, err := Compute(mustDiagram(t, name+" -> Other: m"), cfg)
		if err != nil {
			t.Fatalf("Compute() error: %v", err)
		}
		w := g.Participants[0].BoxWidth
		if w < prev {
			t.Errorf("name length %d gives box width %d < %d", n, w, prev)
		}
		if w != n+4 {
			t.Errorf("name length %d box width = %d, want %d", n, w, n+4)
		}
		prev = w
	}
}

func TestConfigIsThreaded(t *testing.T) {
	d := mustDiagram(t, "A -> B: x")

	cfg := DefaultConfig()
	cfg.MinNameWidth = 6
	cfg.BoxGap = 3
	cfg.MarginTop = 0
	cfg.EdgeSpacing = 2

	g, err := Compute(d, cfg)
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	if got := g.Participants[0].BoxWidth; got != 10 {
		t.Errorf("BoxWidth = %d, want 10", got)
	}
	if gap := g.Participants[1].Left - g.Participants[0].Right - 1; gap != 3 {
		t.Errorf("gap between boxes = %d, want 3", gap)
	}
	if g.Participants[0].TopY != 0 {
		t.Errorf("TopY = %d, want 0", g.Participants[0].TopY)
	}
	if m := g.Messages[0]; m.LabelY != 5 {
		t.Errorf("LabelY = %d, want 5", m.LabelY)
	}

	// The default config must be untouched by the run above.
	if DefaultConfig().MinNameWidth != 0 {
		t.Error("DefaultConfig was mutated")
	}
}

func TestWideRunes(t *testing.T) {
	g, err := Compute(mustDiagram(t, "客户 -> Server: 你好"), DefaultConfig())
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	if got := g.Participants[0].NameWidth; got != 4 {
		t.Errorf("NameWidth = %d, want 4", got)
	}
	if got := g.Participants[0].BoxWidth; got != 8 {
		t.Errorf("BoxWidth = %d, want 8", got)
	}
}

func TestComputeErrors(t *testing.T) {
	if _, err := Compute(nil, DefaultConfig()); !errors.Is(err, errors.ErrCodeNoParticipants) {
		t.Errorf("Compute(nil) error = %v", err)
	}

	cfg := DefaultConfig()
	cfg.EdgeSpacing = -1
	if _, err := Compute(mustDiagram(t, "A -> B: x"), cfg); !errors.Is(err, errors.ErrCodeInvalidLayout) {
		t.Errorf("negative spacing error = %v", err)
	}
}

func TestCheckColumnsDegenerate(t *testing.T) {
	g := &Geometry{Participants: []ParticipantGeometry{
		{Name: "A", CenterX: 3, Left: 1, Right: 5},
		{Name: "B", CenterX: 3, Left: 1, Right: 5},
	}}
	err := checkColumns(g)
	if !errors.Is(err, errors.ErrCodeDegenerateSpan) {
		t.Fatalf("checkColumns() = %v, want %s", err, errors.ErrCodeDegenerateSpan)
	}
	if !errors.IsLayout(err) {
		t.Error("IsLayout() = false")
	}
}

func TestComputeDeterministic(t *testing.T) {
	d := mustDiagram(t, "A -> B: x\nB -> C: y\nC -> A: z")
	g1, _ := Compute(d, DefaultConfig())
	g2, _ := Compute(d, DefaultConfig())
	if !reflect.DeepEqual(g1, g2) {
		t.Error("Compute is not deterministic")
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	g, err := Compute(mustDiagram(t, "A -> B: x\nB -> B: self"), DefaultConfig())
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	data, err := Marshal(g)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	back, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if !reflect.DeepEqual(g, back) {
		t.Errorf("round trip mismatch:\n%+v\n%+v", g, back)
	}

	if _, err := Unmarshal([]byte("{")); err == nil {
		t.Error("Unmarshal of invalid JSON should fail")
	}
}
