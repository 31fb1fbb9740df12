package kiln

import "testing"

func TestPickingColorRoundTrip(t *testing.T) {
	for group := 0; group <= 2; group++ {
		for id := 0; id <= 253-group; id++ {
			color := PickingColor(group, id)
			if color[0] != 1.0 || color[1] != 1.0 {
				t.Fatalf("group %d id %d: red/green must stay at full intensity, got %v", group, id, color)
			}
			// what an 8-bit framebuffer stores for the blue channel
			blue := uint8(color[2]*255.0 + 0.5)
			if got := PickingID(group, blue); got != id {
				t.Errorf("group %d id %d: decoded %d", group, id, got)
			}
		}
	}
}

func TestPickingBackgroundDecodesToNone(t *testing.T) {
	if got := PickingIDFromBlue(255); got != PickingIDNone {
		t.Errorf("background blue must decode to none, got %d", got)
	}
	if got := PickingID(2, 255); got != PickingIDNone {
		t.Errorf("background blue must decode to none for any group, got %d", got)
	}
}

func TestPickingNeverEncodesBackground(t *testing.T) {
	for group := 0; group <= 2; group++ {
		for id := 0; id <= 253-group; id++ {
			blue := uint8(PickingColor(group, id)[2]*255.0 + 0.5)
			if blue == 255 {
				t.Fatalf("group %d id %d encodes the reserved background value", group, id)
			}
		}
	}
}
