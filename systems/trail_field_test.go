package systems

import (
	"math/rand"
	"testing"
)

func TestTrailFieldWrap(t *testing.T) {
	f := NewTrailField(7, 5)
	rng := rand.New(rand.NewSource(1))
	for y := 0; y < 5; y++ {
		for x := 0; x < 7; x++ {
			f.Set(y, x, uint8(rng.Intn(256)))
		}
	}

	for y := 0; y < 5; y++ {
		for x := 0; x < 7; x++ {
			want := f.Get(y, x)
			for k := -3; k <= 3; k++ {
				if got := f.Get(y+k*5, x+k*7); got != want {
					t.Fatalf("Get(%d, %d) = %d, want %d (k=%d)", y+k*5, x+k*7, got, want, k)
				}
			}
		}
	}

	if c := f.Wrap(-1, -1); c != (Cell{Y: 4, X: 6}) {
		t.Errorf("Wrap(-1, -1) = %+v, want {4 6}", c)
	}
	if c := f.Wrap(5, 7); c != (Cell{}) {
		t.Errorf("Wrap(5, 7) = %+v, want {0 0}", c)
	}
}

func TestDepositSaturating(t *testing.T) {
	f := NewTrailField(4, 4)

	c := f.DepositSaturating(1, 2, 100)
	if c != (Cell{Y: 1, X: 2}) {
		t.Errorf("deposit cell = %+v, want {1 2}", c)
	}
	if got := f.Get(1, 2); got != 100 {
		t.Errorf("after first deposit got %d, want 100", got)
	}

	f.DepositSaturating(1, 2, 100)
	if got := f.Get(1, 2); got != 200 {
		t.Errorf("after second deposit got %d, want 200", got)
	}

	f.DepositSaturating(1, 2, 100)
	if got := f.Get(1, 2); got != 255 {
		t.Errorf("expected saturation at 255, got %d", got)
	}

	f.DepositSaturating(1, 2, 255)
	if got := f.Get(1, 2); got != 255 {
		t.Errorf("deposit on saturated cell changed it to %d", got)
	}

	// Out-of-range coordinates land on the wrapped cell.
	c = f.DepositSaturating(-1, 4, 9)
	if c != (Cell{Y: 3, X: 0}) || f.Get(3, 0) != 9 {
		t.Errorf("wrapped deposit landed at %+v with value %d", c, f.Get(3, 0))
	}
}

func TestTrailFieldSwapBuffers(t *testing.T) {
	f := NewTrailField(3, 3)
	f.Set(0, 0, 42)
	f.SwapBuffers()
	if f.Get(0, 0) != 0 {
		t.Errorf("expected blank buffer after swap, got %d", f.Get(0, 0))
	}
	f.SwapBuffers()
	if f.Get(0, 0) != 42 {
		t.Errorf("expected original buffer after second swap, got %d", f.Get(0, 0))
	}
}

func TestBoxSumWraps(t *testing.T) {
	f := NewTrailField(5, 5)
	f.Set(0, 0, 10)
	f.Set(4, 4, 20)

	// The 3x3 box around the corner covers both opposite corners.
	if got := f.BoxSum(0, 0, 1); got != 30 {
		t.Errorf("BoxSum(0,0,1) = %d, want 30", got)
	}
	if got := f.BoxSum(2, 2, 1); got != 0 {
		t.Errorf("BoxSum(2,2,1) = %d, want 0", got)
	}
	if got := f.BoxSum(2, 2, 0); got != 0 {
		t.Errorf("BoxSum(2,2,0) = %d, want 0", got)
	}
	if got := f.BoxSum(4, 4, 0); got != 20 {
		t.Errorf("BoxSum(4,4,0) = %d, want 20", got)
	}
}

func TestNewTrailFieldPanicsOnBadSize(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for zero width")
		}
	}()
	NewTrailField(0, 4)
}
