package kiln

// Hit-testing uses an off-screen pass where every handle is drawn in a
// flat unique color; the host reads one pixel back under the cursor and
// decodes the handle index from the blue channel. Red and green stay at
// full intensity so handle colors never collide with scene geometry.

// PickingIDNone is the decoded id for the background (blue channel 255).
const PickingIDNone = -1

// pickingBase is the highest encodable blue value; ids count down from it.
const pickingBase = 254

// PickingColor encodes (group, id) as an RGB triple in [0,1]. Valid ids
// per group are 0..253; the blue value 255 is reserved for "no hit".
func PickingColor(group, id int) [3]float32 {
	return [3]float32{1.0, 1.0, float32(pickingBase-id-group) / 255.0}
}

// PickingIDFromBlue decodes the grabber id from a sampled 8-bit blue
// channel for an ungrouped gizmo. 255 decodes to PickingIDNone.
func PickingIDFromBlue(blue uint8) int {
	return PickingID(0, blue)
}

// PickingID decodes the grabber id for the given group ordinal. Values
// that fall outside the encodable range decode to PickingIDNone.
func PickingID(group int, blue uint8) int {
	if blue == 255 {
		return PickingIDNone
	}
	id := pickingBase - int(blue) - group
	if id < 0 {
		return PickingIDNone
	}
	return id
}
