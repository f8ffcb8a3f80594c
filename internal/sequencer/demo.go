package sequencer

// DemoPattern returns an eight-channel pattern bank with channel 0
// playing a short bass-line test phrase and the rest silent, the same
// shape used to exercise a freshly wired patch bank end to end.
func DemoPattern() [MusicChannelCount]Pattern {
	lead := Pattern{Entries: []PatternEntry{
		{PatchIndex: 0, KeyState: Pressed(61)},
		{PatchIndex: -1, KeyState: Held},
		{PatchIndex: -1, KeyState: Held},
		{PatchIndex: -1, KeyState: Released},
		{PatchIndex: -1, KeyState: Pressed(61)},
		{PatchIndex: -1, KeyState: Held},
		{PatchIndex: -1, KeyState: Held},
		{PatchIndex: -1, KeyState: Released},
		{PatchIndex: -1, KeyState: Pressed(57)},
		{PatchIndex: -1, KeyState: Held},
		{PatchIndex: -1, KeyState: Held},
		{PatchIndex: -1, KeyState: Released},
		{PatchIndex: -1, KeyState: Pressed(57)},
		{PatchIndex: -1, KeyState: Released},
		{PatchIndex: -1, KeyState: Pressed(59)},
		{PatchIndex: -1, KeyState: Held},
		{PatchIndex: -1, KeyState: Held},
		{PatchIndex: -1, KeyState: Released},
		{PatchIndex: -1, KeyState: Pressed(59)},
		{PatchIndex: -1, KeyState: Held},
		{PatchIndex: -1, KeyState: Held},
		{PatchIndex: -1, KeyState: Released},
		{PatchIndex: -1, KeyState: Pressed(59)},
		{PatchIndex: -1, KeyState: Held},
		{PatchIndex: -1, KeyState: Held},
		{PatchIndex: -1, KeyState: Released},
		{PatchIndex: -1, KeyState: Pressed(59)},
		{PatchIndex: -1, KeyState: Held},
		{PatchIndex: -1, KeyState: Held},
		{PatchIndex: -1, KeyState: Released},
		{PatchIndex: -1, KeyState: Pressed(59)},
		{PatchIndex: -1, KeyState: Released},
	}}

	var patterns [MusicChannelCount]Pattern
	patterns[0] = lead
	for ch := 1; ch < MusicChannelCount; ch++ {
		patterns[ch] = NewPattern(lead.Len())
	}
	return patterns
}
