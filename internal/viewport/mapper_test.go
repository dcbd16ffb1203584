package viewport

import "testing"

func TestMapperIdentityWhenDisabled(t *testing.T) {
	m := NewMapper(1280, 960)

	for _, v := range []int{-17, 0, 1, 99, 640, 12345} {
		if got := m.MapX(v); got != v {
			t.Errorf("MapX(%d): expected %d, got %d", v, v, got)
		}
		if got := m.MapY(v); got != v {
			t.Errorf("MapY(%d): expected %d, got %d", v, v, got)
		}
		if got := m.MapWidth(v); got != v {
			t.Errorf("MapWidth(%d): expected %d, got %d", v, v, got)
		}
		if got := m.MapHeight(v); got != v {
			t.Errorf("MapHeight(%d): expected %d, got %d", v, v, got)
		}
	}

	m.SetVirtualSize(640, 480)
	m.SetVirtualSize(0, 0)
	if got := m.MapX(100); got != 100 {
		t.Errorf("Expected identity after disabling, got %d", got)
	}
	if got := m.MapWidth(50); got != 50 {
		t.Errorf("Expected identity width after disabling, got %d", got)
	}
}

func TestMapperDoubleScale(t *testing.T) {
	m := NewMapper(1280, 960)
	m.SetVirtualSize(640, 480)

	if got := m.MapX(100); got != 200 {
		t.Errorf("Expected MapX(100) == 200, got %d", got)
	}
	if got := m.MapWidth(50); got != 100 {
		t.Errorf("Expected MapWidth(50) == 100, got %d", got)
	}
	if got := m.MapY(10); got != 20 {
		t.Errorf("Expected MapY(10) == 20, got %d", got)
	}
}

func TestMapperRounding(t *testing.T) {
	// 1000 / 300 = 3.333...
	m := NewMapper(1000, 1000)
	m.SetVirtualSize(300, 300)

	if got := m.MapX(1); got != 3 {
		t.Errorf("Expected positions to floor to 3, got %d", got)
	}
	if got := m.MapWidth(1); got != 4 {
		t.Errorf("Expected extents to ceil to 4, got %d", got)
	}

	// Adjacent rectangles must never leave a gap.
	for x := 0; x < 300; x++ {
		end := m.MapX(x) + m.MapWidth(1)
		next := m.MapX(x + 1)
		if end < next {
			t.Fatalf("Gap between virtual columns %d and %d: %d < %d", x, x+1, end, next)
		}
	}
}

func TestMapperSingleAxisDisabled(t *testing.T) {
	m := NewMapper(800, 600)
	m.SetVirtualSize(400, 0)

	if got := m.MapX(10); got != 20 {
		t.Errorf("Expected x axis mapped to 20, got %d", got)
	}
	if got := m.MapY(10); got != 10 {
		t.Errorf("Expected y axis unmapped, got %d", got)
	}
	w, h := m.Size()
	if w != 400 || h != 600 {
		t.Errorf("Expected drawing size 400x600, got %dx%d", w, h)
	}
}

func TestMapperResizeRecomputes(t *testing.T) {
	m := NewMapper(640, 480)
	m.SetVirtualSize(320, 240)
	if got := m.MapX(10); got != 20 {
		t.Fatalf("Expected 20 before resize, got %d", got)
	}

	m.Resize(1280, 960)
	if got := m.MapX(10); got != 40 {
		t.Errorf("Expected 40 after resize, got %d", got)
	}

	// SetVirtualSize works against the size known at call time.
	m.SetVirtualSize(640, 480)
	if got := m.MapX(10); got != 20 {
		t.Errorf("Expected 20 after new virtual size, got %d", got)
	}
}

func TestMapScaled(t *testing.T) {
	m := NewMapper(1280, 960)
	m.SetVirtualSize(640, 480)
	m.SetUserScale(1.5, 0.5)

	if got := m.MapScaledWidth(10); got != 30 {
		t.Errorf("Expected MapScaledWidth(10) == 30, got %d", got)
	}
	if got := m.MapScaledHeight(11); got != 11 {
		t.Errorf("Expected MapScaledHeight(11) == 11, got %d", got)
	}
}

func TestUnmap(t *testing.T) {
	m := NewMapper(1280, 960)
	m.SetVirtualSize(640, 480)

	if got := m.UnmapX(201); got != 100 {
		t.Errorf("Expected UnmapX(201) == 100, got %d", got)
	}
	if got := m.UnmapY(960); got != 480 {
		t.Errorf("Expected UnmapY(960) == 480, got %d", got)
	}
}
